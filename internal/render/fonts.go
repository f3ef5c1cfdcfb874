package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/ironsheep/image-annotator/internal/drawing"
)

// The label fonts name Arial; the Go fonts stand in for it, since no
// system fonts are read. Parsed fonts are immutable and shared; faces are
// created per render because a face is not safe for concurrent use.
var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			return
		}
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
	})
	return fontsErr
}

// newFace builds a face for a CSS-style font spec, treating px as points
// at 72 DPI.
func newFace(spec string) (font.Face, error) {
	fs, err := drawing.ParseFont(spec)
	if err != nil {
		return nil, err
	}
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}

	f := regularFont
	if fs.Bold {
		f = boldFont
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fs.SizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
