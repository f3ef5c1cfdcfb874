package drawing

import (
	"fmt"
	"strconv"
	"strings"
)

// FontSpec is a parsed CSS-style font shorthand such as "bold 14px Arial".
type FontSpec struct {
	Bold   bool
	SizePx float64
	Family string
}

// ParseFont parses the subset of the CSS font shorthand used by the
// constants: an optional "bold" or "normal" weight, a size in px, and a
// family name (which may contain spaces).
func ParseFont(spec string) (FontSpec, error) {
	fields := strings.Fields(spec)
	var fs FontSpec

	i := 0
	for ; i < len(fields); i++ {
		f := strings.ToLower(fields[i])
		if f == "bold" {
			fs.Bold = true
			continue
		}
		if f == "normal" {
			continue
		}
		break
	}

	if i >= len(fields) || !strings.HasSuffix(strings.ToLower(fields[i]), "px") {
		return FontSpec{}, fmt.Errorf("font %q: missing px size", spec)
	}
	size, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(fields[i]), "px"), 64)
	if err != nil || size <= 0 {
		return FontSpec{}, fmt.Errorf("font %q: invalid size %q", spec, fields[i])
	}
	fs.SizePx = size

	fs.Family = strings.Join(fields[i+1:], " ")
	if fs.Family == "" {
		return FontSpec{}, fmt.Errorf("font %q: missing family", spec)
	}
	return fs, nil
}
