package annotation

import (
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/image-annotator/internal/colors"
)

// ColorShare is one quantized color found under a box.
type ColorShare struct {
	Hex        string  `json:"hex"`
	RGB        RGB     `json:"rgb"`
	Percentage float64 `json:"percentage"`
}

// BoxColors summarizes the pixels under a box.
type BoxColors struct {
	Index    int          `json:"index"`
	Dominant []ColorShare `json:"dominant"`
	// SuggestedIndex is the palette entry that stands out most against the
	// most common color, for use as the box color.
	SuggestedIndex int    `json:"suggested_index"`
	SuggestedColor string `json:"suggested_color"`
}

// DominantBoxColors returns up to count of the most common colors under box
// i, most common first.
//
// Components are quantized to multiples of 16 before counting so that
// near-identical shades group together. The box is clamped to the image the
// same way CropBox clamps it.
func DominantBoxColors(img image.Image, d *AnnotatedImageData, i, count int) (*BoxColors, error) {
	if i < 0 || i >= len(d.Boxes) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrBoxIndex, i, len(d.Boxes))
	}
	if count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", count)
	}

	bounds := img.Bounds()
	rect := d.Boxes[i].Rect().Add(bounds.Min).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("box %d lies outside image bounds %dx%d", i, bounds.Dx(), bounds.Dy())
	}

	counts := make(map[RGB]int)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			q := RGB{uint8((r >> 8) &^ 15), uint8((g >> 8) &^ 15), uint8((b >> 8) &^ 15)}
			counts[q]++
		}
	}

	total := float64(rect.Dx() * rect.Dy())
	shares := make([]ColorShare, 0, len(counts))
	for c, n := range counts {
		shares = append(shares, ColorShare{
			Hex:        c.Hex(),
			RGB:        c,
			Percentage: round(float64(n)/total*100, 2),
		})
	}
	sort.Slice(shares, func(a, b int) bool {
		if shares[a].Percentage != shares[b].Percentage {
			return shares[a].Percentage > shares[b].Percentage
		}
		return shares[a].Hex < shares[b].Hex
	})
	if len(shares) > count {
		shares = shares[:count]
	}

	suggested := colors.ContrastingIndex(shares[0].RGB.ToRGBA())
	return &BoxColors{
		Index:          i,
		Dominant:       shares,
		SuggestedIndex: suggested,
		SuggestedColor: colors.PaletteColor(suggested),
	}, nil
}
