// Package render paints an AnnotatedImageData onto its image the way the
// box editor shows it: translucent fills, solid borders, a label tab per
// box, and resize handles on the selected box.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/image-annotator/internal/annotation"
	"github.com/ironsheep/image-annotator/internal/colors"
	"github.com/ironsheep/image-annotator/internal/drawing"
)

// labelPadding is the horizontal gap between a label tab edge and its text.
const labelPadding = 2

// Options controls an overlay render.
type Options struct {
	// Selected is the index of the selected box, or -1 for none.
	Selected int
	// ShowLabels draws a label tab for every box with a non-empty label.
	ShowLabels bool
	// Scale resizes the output. Zero means drawing.ScaleFactor.
	Scale float64
}

// DefaultOptions returns options with no selection, labels on, and the
// default scale.
func DefaultOptions() Options {
	return Options{Selected: -1, ShowLabels: true, Scale: drawing.ScaleFactor}
}

// Overlay draws every box of d over img, in slice order, and returns a new
// image. img is not modified.
//
// Box coordinates are relative to img.Bounds().Min; the output always has
// its origin at (0,0). Boxes without a color use the palette entry for
// their index.
func Overlay(img image.Image, d *annotation.AnnotatedImageData, opts Options) (*image.RGBA, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	if d == nil {
		return nil, errors.New("nil annotation data")
	}

	base := imaging.Clone(img)
	bounds := base.Bounds()

	boxColors := make([]color.RGBA, len(d.Boxes))
	for i := range d.Boxes {
		c, err := d.BoxColor(i)
		if err != nil {
			return nil, err
		}
		boxColors[i] = c.ToRGBA()
	}

	// Fills are drawn opaque on their own layer, later boxes on top, and the
	// layer is composited once at drawing.Alpha. Pixels outside every box
	// stay transparent in the layer and leave the photo untouched.
	fill := image.NewNRGBA(bounds)
	for i, b := range d.Boxes {
		draw.Draw(fill, b.Rect().Intersect(bounds), image.NewUniform(boxColors[i]), image.Point{}, draw.Src)
	}
	filled := imaging.Overlay(base, fill, image.Point{}, drawing.Alpha)
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, filled, bounds.Min, draw.Src)

	for i, b := range d.Boxes {
		strokeRect(canvas, b.Rect(), drawing.BorderWidth(i == opts.Selected), boxColors[i])
	}

	if opts.ShowLabels {
		textColor, err := colors.ParseCSS(drawing.Color)
		if err != nil {
			return nil, fmt.Errorf("label color: %w", err)
		}
		for i, b := range d.Boxes {
			if b.Label == "" {
				continue
			}
			if err := drawLabel(canvas, b, drawing.LabelFont(i == opts.Selected), boxColors[i], textColor); err != nil {
				return nil, err
			}
		}
	}

	if opts.Selected >= 0 && opts.Selected < len(d.Boxes) {
		c := boxColors[opts.Selected]
		drawHandles(canvas, d.Boxes[opts.Selected].Rect(), colors.Blend(c, color.RGBA{255, 255, 255, 255}, 0.5), c)
	}

	scale := opts.Scale
	if scale == 0 {
		scale = drawing.ScaleFactor
	}
	if scale != 1 && scale > 0 {
		w := int(float64(canvas.Bounds().Dx()) * scale)
		h := int(float64(canvas.Bounds().Dy()) * scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("scale %v produces an empty image", scale)
		}
		resized := imaging.Resize(canvas, w, h, imaging.Lanczos)
		canvas = image.NewRGBA(resized.Bounds())
		draw.Draw(canvas, canvas.Bounds(), resized, image.Point{}, draw.Src)
	}

	return canvas, nil
}

// strokeRect draws an inset border of the given width along r's edges.
func strokeRect(dst *image.RGBA, r image.Rectangle, width int, c color.RGBA) {
	if width > r.Dx()/2 {
		width = r.Dx() / 2
	}
	if width > r.Dy()/2 {
		width = r.Dy() / 2
	}
	if width < 1 {
		width = 1
	}

	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), // top
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), // bottom
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), // left
		image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), // right
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
	}
}

// drawHandles draws HandleSize squares at the corners and edge midpoints.
func drawHandles(dst *image.RGBA, r image.Rectangle, fillColor, edgeColor color.RGBA) {
	half := drawing.HandleSize / 2
	midX := (r.Min.X + r.Max.X) / 2
	midY := (r.Min.Y + r.Max.Y) / 2
	points := []image.Point{
		{r.Min.X, r.Min.Y}, {midX, r.Min.Y}, {r.Max.X - 1, r.Min.Y},
		{r.Min.X, midY}, {r.Max.X - 1, midY},
		{r.Min.X, r.Max.Y - 1}, {midX, r.Max.Y - 1}, {r.Max.X - 1, r.Max.Y - 1},
	}

	fill := image.NewUniform(fillColor)
	for _, p := range points {
		h := image.Rect(p.X-half, p.Y-half, p.X-half+drawing.HandleSize, p.Y-half+drawing.HandleSize)
		draw.Draw(dst, h.Intersect(dst.Bounds()), fill, image.Point{}, draw.Src)
		strokeRect(dst, h, 1, edgeColor)
	}
}

// drawLabel draws a tab filled with the box color holding the label text.
// The tab sits above the box, or just inside its top edge when there is
// no room above.
func drawLabel(dst *image.RGBA, b annotation.Box, fontSpec string, tabColor, textColor color.RGBA) error {
	face, err := newFace(fontSpec)
	if err != nil {
		return fmt.Errorf("label font %q: %w", fontSpec, err)
	}
	defer face.Close()

	metrics := face.Metrics()
	textW := font.MeasureString(face, b.Label).Ceil()
	tabH := metrics.Height.Ceil()
	tabW := textW + 2*labelPadding

	top := b.YMin - tabH
	if top < dst.Bounds().Min.Y {
		top = b.YMin
	}
	tab := image.Rect(b.XMin, top, b.XMin+tabW, top+tabH)
	draw.Draw(dst, tab.Intersect(dst.Bounds()), image.NewUniform(tabColor), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot:  fixed.P(tab.Min.X+labelPadding, tab.Min.Y+metrics.Ascent.Ceil()),
	}
	d.DrawString(b.Label)
	return nil
}
