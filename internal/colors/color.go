package colors

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidFormat is returned (wrapped) when a color string cannot be parsed.
var ErrInvalidFormat = errors.New("invalid color format")

var (
	hexPattern       = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	componentPattern = regexp.MustCompile(`(\d+(\.\d+)?)`)
)

// HexToRGB converts a "#RRGGBB" color to its "rgb(R, G, B)" form.
//
// The hex digits may be upper or lower case. Any other shape, including the
// 3-digit shorthand and 8-digit hex with alpha, is rejected with
// ErrInvalidFormat.
//
// # Example
//
//	s, _ := colors.HexToRGB("#FFA84D") // "rgb(255, 168, 77)"
func HexToRGB(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return FormatRGB(c), nil
}

// RGBAToHex converts an "rgb(...)" or "rgba(...)" color to lowercase "#rrggbb".
//
// The first three numeric components are taken as R, G and B. Decimal
// components are truncated toward zero and a fourth (alpha) component is
// ignored. The result is packed as 1<<24 | R<<16 | G<<8 | B with the
// leading 1 dropped, which zero-pads every channel to two digits.
//
// Returns ErrInvalidFormat when fewer than three components are found or a
// component exceeds 255.
func RGBAToHex(rgba string) (string, error) {
	r, g, b, _, err := parseComponents(rgba)
	if err != nil {
		return "", err
	}
	packed := 1<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	return "#" + strconv.FormatUint(uint64(packed), 16)[1:], nil
}

// ParseHex parses a strict "#RRGGBB" string into an opaque color.
func ParseHex(hex string) (color.RGBA, error) {
	if !hexPattern.MatchString(hex) {
		return color.RGBA{}, fmt.Errorf("%w: %q is not #RRGGBB", ErrInvalidFormat, hex)
	}
	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// ParseCSS parses either a hex color or an rgb()/rgba() expression.
//
// For rgba() the alpha component is read as a 0-1 opacity and scaled to
// 0-255. Without alpha the color is opaque.
func ParseCSS(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return ParseHex(s)
	}

	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "rgb(") && !strings.HasPrefix(lower, "rgba(") {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	r, g, b, rest, err := parseComponents(s)
	if err != nil {
		return color.RGBA{}, err
	}

	alpha := 1.0
	if len(rest) > 0 {
		a, convErr := strconv.ParseFloat(rest[0], 64)
		if convErr != nil || a > 1 {
			return color.RGBA{}, fmt.Errorf("%w: alpha %q outside [0,1]", ErrInvalidFormat, rest[0])
		}
		alpha = a
	}
	return color.RGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}, nil
}

// ToRGBA converts a hex color to "rgba(R, G, B, A)" with the given opacity.
//
// The canvas uses this form to render a stored hex color at partial opacity.
// alpha must lie within [0, 1].
func ToRGBA(hex string, alpha float64) (string, error) {
	if alpha < 0 || alpha > 1 {
		return "", fmt.Errorf("%w: alpha %v outside [0,1]", ErrInvalidFormat, alpha)
	}
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B,
		strconv.FormatFloat(alpha, 'f', -1, 64)), nil
}

// FormatRGB renders c as "rgb(R, G, B)". Alpha is ignored.
func FormatRGB(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// FormatHex renders c as lowercase "#rrggbb". Alpha is ignored.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend mixes a toward b by t (0 = a, 1 = b) in RGB space.
// The result is opaque.
func Blend(a, b color.RGBA, t float64) color.RGBA {
	ca, _ := colorful.MakeColor(opaque(a))
	cb, _ := colorful.MakeColor(opaque(b))
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 255}
}

// parseComponents extracts R, G, B from the numeric substrings of s and
// returns any substrings after the third unparsed.
func parseComponents(s string) (r, g, b uint8, rest []string, err error) {
	matches := componentPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return 0, 0, 0, nil, fmt.Errorf("%w: no numeric components in %q", ErrInvalidFormat, s)
	}
	if len(matches) < 3 {
		return 0, 0, 0, nil, fmt.Errorf("%w: need 3 components, got %d in %q", ErrInvalidFormat, len(matches), s)
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		whole, _, _ := strings.Cut(matches[i], ".")
		v, convErr := strconv.Atoi(whole)
		if convErr != nil || v > 255 {
			return 0, 0, 0, nil, fmt.Errorf("%w: component %q outside 0-255", ErrInvalidFormat, matches[i])
		}
		rgb[i] = uint8(v)
	}

	return rgb[0], rgb[1], rgb[2], matches[3:], nil
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 255
	return c
}
