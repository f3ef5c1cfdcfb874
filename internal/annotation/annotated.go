package annotation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/image-annotator/internal/colors"
	"github.com/ironsheep/image-annotator/internal/drawing"
)

var (
	// ErrInvalidBox is returned when a box has an empty or negative extent.
	ErrInvalidBox = errors.New("invalid box")

	// ErrBoxIndex is returned when a box index is out of range.
	ErrBoxIndex = errors.New("box index out of range")

	// ErrInvalidCalibration is returned for negative or non-finite ratios.
	ErrInvalidCalibration = errors.New("invalid calibration ratio")
)

// AnnotatedImageData is an image reference with its boxes and calibration.
type AnnotatedImageData struct {
	Image            FileData   `json:"image"`
	Boxes            []Box      `json:"boxes"`
	CalibrationRatio [2]float64 `json:"calibration_ratio"`
}

// New returns a record for img with no boxes and no calibration.
func New(img FileData) *AnnotatedImageData {
	return &AnnotatedImageData{
		Image: img,
		Boxes: []Box{},
	}
}

// Prepare builds a record from a loosely-typed payload. It reads
// "file_path" (default ""), "boxes" (default none) and "calibration_ratio"
// (default [0, 0]).
func Prepare(payload map[string]interface{}) (*AnnotatedImageData, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	var in struct {
		FilePath         string      `json:"file_path"`
		Boxes            []Box       `json:"boxes"`
		CalibrationRatio []float64 `json:"calibration_ratio"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	data := New(FileDataFromString(in.FilePath))
	if in.Boxes != nil {
		data.Boxes = in.Boxes
	}
	if in.CalibrationRatio != nil {
		if err := data.setCalibrationSlice(in.CalibrationRatio); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// UnmarshalJSON rejects a calibration_ratio that is not exactly two
// non-negative finite numbers.
func (d *AnnotatedImageData) UnmarshalJSON(data []byte) error {
	type plain AnnotatedImageData
	aux := struct {
		*plain
		CalibrationRatio []float64 `json:"calibration_ratio"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.CalibrationRatio == nil {
		d.CalibrationRatio = [2]float64{}
		return nil
	}
	return d.setCalibrationSlice(aux.CalibrationRatio)
}

func (d *AnnotatedImageData) setCalibrationSlice(v []float64) error {
	if len(v) != 2 {
		return fmt.Errorf("%w: want 2 values, got %d", ErrInvalidCalibration, len(v))
	}
	return d.SetCalibrationRatio(v[0], v[1])
}

// MarshalJSON always emits "boxes" as an array, never null.
func (d AnnotatedImageData) MarshalJSON() ([]byte, error) {
	type plain AnnotatedImageData
	p := plain(d)
	if p.Boxes == nil {
		p.Boxes = []Box{}
	}
	return json.Marshal(p)
}

// AddBox appends b, placing it on top of existing boxes, and returns its index.
func (d *AnnotatedImageData) AddBox(b Box) int {
	d.Boxes = append(d.Boxes, b.clone())
	return len(d.Boxes) - 1
}

// NewBox appends a box with drawing.DefaultColor and returns its index.
func (d *AnnotatedImageData) NewBox(xmin, ymin, xmax, ymax int, label string) int {
	c, err := RGBFromHex(drawing.DefaultColor)
	if err != nil {
		panic("annotation: bad default color " + drawing.DefaultColor)
	}
	return d.AddBox(Box{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax, Label: label, Color: &c})
}

// RemoveBox deletes the box at i, keeping the order of the rest.
func (d *AnnotatedImageData) RemoveBox(i int) error {
	if i < 0 || i >= len(d.Boxes) {
		return fmt.Errorf("%w: %d (have %d)", ErrBoxIndex, i, len(d.Boxes))
	}
	d.Boxes = append(d.Boxes[:i], d.Boxes[i+1:]...)
	return nil
}

// Clone returns a deep copy that shares no box with d.
func (d *AnnotatedImageData) Clone() *AnnotatedImageData {
	out := &AnnotatedImageData{
		Image:            d.Image,
		Boxes:            make([]Box, len(d.Boxes)),
		CalibrationRatio: d.CalibrationRatio,
	}
	for i, b := range d.Boxes {
		out.Boxes[i] = b.clone()
	}
	return out
}

// Validate checks every box has a non-empty extent inside the positive
// quadrant.
func (d *AnnotatedImageData) Validate() error {
	for i, b := range d.Boxes {
		if b.XMin < 0 || b.YMin < 0 {
			return fmt.Errorf("%w: box %d has negative origin (%d,%d)", ErrInvalidBox, i, b.XMin, b.YMin)
		}
		if b.XMin >= b.XMax || b.YMin >= b.YMax {
			return fmt.Errorf("%w: box %d is empty (%d,%d)-(%d,%d)", ErrInvalidBox, i, b.XMin, b.YMin, b.XMax, b.YMax)
		}
	}
	return nil
}

// IsCalibrated reports whether the ratio is usable. (0, 0) and any ratio
// with a zero component count as uncalibrated.
func (d *AnnotatedImageData) IsCalibrated() bool {
	return d.CalibrationRatio[0] > 0 && d.CalibrationRatio[1] > 0
}

// SetCalibrationRatio stores the horizontal and vertical units-per-pixel.
// Passing (0, 0) clears the calibration.
func (d *AnnotatedImageData) SetCalibrationRatio(x, y float64) error {
	for _, v := range []float64{x, y} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: (%v, %v)", ErrInvalidCalibration, x, y)
		}
	}
	d.CalibrationRatio = [2]float64{x, y}
	return nil
}

// BoxColor returns the color of box i: its own color if set, otherwise
// the palette entry for i.
func (d *AnnotatedImageData) BoxColor(i int) (RGB, error) {
	if i < 0 || i >= len(d.Boxes) {
		return RGB{}, fmt.Errorf("%w: %d (have %d)", ErrBoxIndex, i, len(d.Boxes))
	}
	if c := d.Boxes[i].Color; c != nil {
		return *c, nil
	}
	p := colors.PaletteRGBA(i)
	return RGB{p.R, p.G, p.B}, nil
}
