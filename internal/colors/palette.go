package colors

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// palette is the ordered set of colors assigned to successive boxes or
// classes. Read it through Colors and PaletteColor.
var palette = [...]string{
	"rgb(255, 168, 77)",
	"rgb(92, 172, 238)",
	"rgb(255, 99, 71)",
	"rgb(118, 238, 118)",
	"rgb(255, 145, 164)",
	"rgb(0, 191, 255)",
	"rgb(255, 218, 185)",
	"rgb(255, 69, 0)",
	"rgb(34, 139, 34)",
	"rgb(255, 240, 245)",
	"rgb(255, 193, 37)",
	"rgb(255, 193, 7)",
	"rgb(255, 250, 138)",
}

// PaletteSize is the number of palette entries.
const PaletteSize = len(palette)

// paletteRGBA holds the palette pre-parsed; built once at init.
var paletteRGBA = func() [PaletteSize]color.RGBA {
	var out [PaletteSize]color.RGBA
	for i, s := range palette {
		c, err := ParseCSS(s)
		if err != nil {
			panic("colors: bad palette entry " + s)
		}
		out[i] = c
	}
	return out
}()

// Colors returns a copy of the palette in order.
func Colors() []string {
	out := make([]string, PaletteSize)
	copy(out, palette[:])
	return out
}

// PaletteColor returns the palette entry for index i, cycling through the
// palette. Negative indexes wrap from the end.
func PaletteColor(i int) string {
	return palette[paletteIndex(i)]
}

// PaletteRGBA is PaletteColor as a parsed, opaque color.
func PaletteRGBA(i int) color.RGBA {
	return paletteRGBA[paletteIndex(i)]
}

func paletteIndex(i int) int {
	n := PaletteSize
	return ((i % n) + n) % n
}

// ContrastingIndex returns the index of the palette entry perceptually
// farthest from c, measured in CIE L*a*b*. Ties go to the lower index.
func ContrastingIndex(c color.RGBA) int {
	target, _ := colorful.MakeColor(opaque(c))
	best, bestDist := 0, -1.0
	for i, p := range paletteRGBA {
		pc, _ := colorful.MakeColor(p)
		if d := target.DistanceLab(pc); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
