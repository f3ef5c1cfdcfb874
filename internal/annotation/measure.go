package annotation

import (
	"fmt"
	"math"
)

// BoxMeasurement contains a box's size in pixels and, when the record is
// calibrated, in physical units.
type BoxMeasurement struct {
	Index        int     `json:"index"`
	Label        string  `json:"label,omitempty"`
	WidthPixels  int     `json:"width_pixels"`
	HeightPixels int     `json:"height_pixels"`
	Calibrated   bool    `json:"calibrated"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Area         float64 `json:"area,omitempty"`
}

// Measure reports the size of box i.
//
// Physical width is WidthPixels * CalibrationRatio[0] and physical height is
// HeightPixels * CalibrationRatio[1]. For an uncalibrated record only the
// pixel fields are filled and Calibrated is false.
func Measure(d *AnnotatedImageData, i int) (*BoxMeasurement, error) {
	if i < 0 || i >= len(d.Boxes) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrBoxIndex, i, len(d.Boxes))
	}
	m := measureBox(d, i)
	return &m, nil
}

// MeasureAll measures every box in draw order.
func MeasureAll(d *AnnotatedImageData) []BoxMeasurement {
	out := make([]BoxMeasurement, 0, len(d.Boxes))
	for i := range d.Boxes {
		out = append(out, measureBox(d, i))
	}
	return out
}

// measureBox requires 0 <= i < len(d.Boxes).
func measureBox(d *AnnotatedImageData, i int) BoxMeasurement {
	b := d.Boxes[i]
	m := BoxMeasurement{
		Index:        i,
		Label:        b.Label,
		WidthPixels:  b.Width(),
		HeightPixels: b.Height(),
	}
	if !d.IsCalibrated() {
		return m
	}

	w := float64(m.WidthPixels) * d.CalibrationRatio[0]
	h := float64(m.HeightPixels) * d.CalibrationRatio[1]
	m.Calibrated = true
	m.Width = round(w, 3)
	m.Height = round(h, 3)
	m.Area = round(w*h, 3)
	return m
}

// DistanceResult contains the distance between two box centers.
type DistanceResult struct {
	DistancePixels float64 `json:"distance_pixels"`
	DeltaX         float64 `json:"delta_x"`
	DeltaY         float64 `json:"delta_y"`
	AngleDegrees   float64 `json:"angle_degrees"`
	Calibrated     bool    `json:"calibrated"`
	Distance       float64 `json:"distance,omitempty"`
}

// CenterDistance measures from the center of box i to the center of box j.
// Angle is in degrees, 0 pointing right and 90 pointing down.
func CenterDistance(d *AnnotatedImageData, i, j int) (*DistanceResult, error) {
	for _, idx := range []int{i, j} {
		if idx < 0 || idx >= len(d.Boxes) {
			return nil, fmt.Errorf("%w: %d (have %d)", ErrBoxIndex, idx, len(d.Boxes))
		}
	}
	a, b := d.Boxes[i], d.Boxes[j]

	dx := float64(b.XMin+b.XMax)/2 - float64(a.XMin+a.XMax)/2
	dy := float64(b.YMin+b.YMax)/2 - float64(a.YMin+a.YMax)/2

	res := &DistanceResult{
		DistancePixels: round(math.Hypot(dx, dy), 2),
		DeltaX:         dx,
		DeltaY:         dy,
		AngleDegrees:   round(math.Atan2(dy, dx)*180/math.Pi, 1),
	}
	if d.IsCalibrated() {
		res.Calibrated = true
		res.Distance = round(math.Hypot(dx*d.CalibrationRatio[0], dy*d.CalibrationRatio[1]), 3)
	}
	return res, nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
