package annotation

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/image-annotator/internal/colors"
)

func TestDominantBoxColors(t *testing.T) {
	// left half red, right half blue
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				img.Set(x, y, color.RGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{0, 0, 255, 255})
			}
		}
	}

	d := New(FileData{})
	d.NewBox(0, 0, 40, 40, "red only")
	d.NewBox(30, 0, 70, 10, "split")
	d.NewBox(20, 0, 80, 10, "mostly equal")

	tests := []struct {
		name     string
		index    int
		count    int
		wantHex  []string
		wantPcts []float64
	}{
		{"single color", 0, 5, []string{"#f00000"}, []float64{100}},
		{"two colors", 1, 5, []string{"#0000f0", "#f00000"}, []float64{50, 50}},
		{"count limit", 2, 1, []string{"#0000f0"}, []float64{50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := DominantBoxColors(img, d, tt.index, tt.count)
			if err != nil {
				t.Fatalf("DominantBoxColors failed: %v", err)
			}
			if len(res.Dominant) != len(tt.wantHex) {
				t.Fatalf("got %d colors, want %d: %+v", len(res.Dominant), len(tt.wantHex), res.Dominant)
			}
			for i, c := range res.Dominant {
				if c.Hex != tt.wantHex[i] {
					t.Errorf("color %d: got %s, want %s", i, c.Hex, tt.wantHex[i])
				}
				if c.Percentage != tt.wantPcts[i] {
					t.Errorf("color %d percentage: got %v, want %v", i, c.Percentage, tt.wantPcts[i])
				}
			}
			if res.SuggestedColor != colors.PaletteColor(res.SuggestedIndex) {
				t.Errorf("SuggestedColor %s does not match index %d", res.SuggestedColor, res.SuggestedIndex)
			}
		})
	}
}

func TestDominantBoxColors_Errors(t *testing.T) {
	img := createInMemoryImage(50, 50, color.White)
	d := New(FileData{})
	d.NewBox(100, 100, 150, 150, "outside")

	if _, err := DominantBoxColors(img, d, 3, 5); !errors.Is(err, ErrBoxIndex) {
		t.Errorf("bad index: got %v, want ErrBoxIndex", err)
	}
	if _, err := DominantBoxColors(img, d, 0, 0); err == nil {
		t.Error("count 0 should fail")
	}
	if _, err := DominantBoxColors(img, d, 0, 5); err == nil {
		t.Error("box outside the image should fail")
	}
}
