package annotation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/ironsheep/image-annotator/internal/colors"
	"github.com/ironsheep/image-annotator/internal/drawing"
)

// FileData references an image held by the host application.
type FileData struct {
	Path     string `json:"path,omitempty"`
	URL      string `json:"url,omitempty"`
	OrigName string `json:"orig_name,omitempty"`
	Size     int64  `json:"size,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

// UnmarshalJSON accepts either an object or a bare path/URL string.
func (f *FileData) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FileDataFromString(s)
		return nil
	}

	type plain FileData
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = FileData(p)
	return nil
}

// FileDataFromString builds a reference from a path or an http(s) URL.
func FileDataFromString(s string) FileData {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return FileData{URL: s}
	}
	return FileData{Path: s}
}

// IsEmpty reports whether the reference points nowhere.
func (f FileData) IsEmpty() bool {
	return f.Path == "" && f.URL == ""
}

// RGB is a box color. It marshals as a [r, g, b] array and unmarshals from
// either an array or a color string ("#RRGGBB", "rgb(...)", "rgba(...)").
type RGB [3]uint8

// MarshalJSON emits [r, g, b].
func (c RGB) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d,%d]", c[0], c[1], c[2])), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *RGB) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := colors.ParseCSS(s)
		if err != nil {
			return err
		}
		*c = RGB{parsed.R, parsed.G, parsed.B}
		return nil
	}

	var arr []int
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("%w: color must be [r, g, b] or a string", colors.ErrInvalidFormat)
	}
	if len(arr) != 3 {
		return fmt.Errorf("%w: color needs 3 components, got %d", colors.ErrInvalidFormat, len(arr))
	}
	for i, v := range arr {
		if v < 0 || v > 255 {
			return fmt.Errorf("%w: component %d outside 0-255", colors.ErrInvalidFormat, v)
		}
		c[i] = uint8(v)
	}
	return nil
}

// ToRGBA returns the color as an opaque color.RGBA.
func (c RGB) ToRGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// Hex returns the color as lowercase "#rrggbb".
func (c RGB) Hex() string {
	return colors.FormatHex(c.ToRGBA())
}

// RGBFromHex parses "#RRGGBB".
func RGBFromHex(hex string) (RGB, error) {
	parsed, err := colors.ParseHex(hex)
	if err != nil {
		return RGB{}, err
	}
	return RGB{parsed.R, parsed.G, parsed.B}, nil
}

// Box is one rectangular annotation.
type Box struct {
	XMin  int    `json:"xmin"`
	YMin  int    `json:"ymin"`
	XMax  int    `json:"xmax"`
	YMax  int    `json:"ymax"`
	Label string `json:"label,omitempty"`
	Color *RGB   `json:"color,omitempty"`
}

// Width returns XMax - XMin.
func (b Box) Width() int { return b.XMax - b.XMin }

// Height returns YMax - YMin.
func (b Box) Height() int { return b.YMax - b.YMin }

// Rect returns the box as an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.XMin, b.YMin, b.XMax, b.YMax)
}

// MeetsMinSize reports whether both sides reach drawing.MinSize.
func (b Box) MeetsMinSize() bool {
	return b.Width() >= drawing.MinSize && b.Height() >= drawing.MinSize
}

func (b Box) clone() Box {
	if b.Color != nil {
		c := *b.Color
		b.Color = &c
	}
	return b
}
