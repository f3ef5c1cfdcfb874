// Package drawing holds the fixed styling values a box renderer uses:
// label fonts, stroke widths, fill opacity, handle and minimum box sizes.
//
// The values are Go constants, so no consumer can change them for another.
// Properties returns the same table as a value for callers that need to
// serialize it.
package drawing

// Box styling constants.
const (
	// FontNormal is the label font for unselected boxes.
	FontNormal = "12px Arial"
	// FrontSelected is the label font for the selected box.
	FrontSelected = "bold 14px Arial"
	// Color is the default label text color.
	Color = "rgb(255,255,255)"
	// Alpha is the fill opacity of box interiors.
	Alpha = 0.5
	// MinSize is the smallest width or height, in pixels, a box may have.
	MinSize = 25
	// HandleSize is the side, in pixels, of a resize handle.
	HandleSize = 5
	// Thickness is the border width of unselected boxes.
	Thickness = 2
	// SelectedThickness is the border width of the selected box.
	SelectedThickness = 3
	// ScaleFactor multiplies canvas-to-image coordinates.
	ScaleFactor = 1
	// DefaultColor is given to new boxes when no color is chosen.
	DefaultColor = "#00FF00"
)

// BoxProperties is the constant table as a value.
type BoxProperties struct {
	FontNormal        string  `json:"font_normal"`
	FrontSelected     string  `json:"front_selected"`
	Color             string  `json:"color"`
	Alpha             float64 `json:"alpha"`
	MinSize           int     `json:"min_size"`
	HandleSize        int     `json:"handle_size"`
	Thickness         int     `json:"thickness"`
	SelectedThickness int     `json:"selected_thickness"`
	ScaleFactor       float64 `json:"scale_factor"`
	DefaultColor      string  `json:"default_color"`
}

// Properties returns a fresh copy of the styling table.
func Properties() BoxProperties {
	return BoxProperties{
		FontNormal:        FontNormal,
		FrontSelected:     FrontSelected,
		Color:             Color,
		Alpha:             Alpha,
		MinSize:           MinSize,
		HandleSize:        HandleSize,
		Thickness:         Thickness,
		SelectedThickness: SelectedThickness,
		ScaleFactor:       ScaleFactor,
		DefaultColor:      DefaultColor,
	}
}

// BorderWidth returns the stroke width for a box.
func BorderWidth(selected bool) int {
	if selected {
		return SelectedThickness
	}
	return Thickness
}

// LabelFont returns the label font spec for a box.
func LabelFont(selected bool) string {
	if selected {
		return FrontSelected
	}
	return FontNormal
}
