package annotation

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropBox extracts the pixels under box i from img.
//
// Box coordinates are taken relative to img.Bounds().Min. The box is
// clamped to the image; a box lying entirely outside it is an error.
// scale resizes the crop with Lanczos resampling when it is positive and
// not 1.
func CropBox(img image.Image, d *AnnotatedImageData, i int, scale float64) (*image.NRGBA, error) {
	if i < 0 || i >= len(d.Boxes) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrBoxIndex, i, len(d.Boxes))
	}

	bounds := img.Bounds()
	rect := d.Boxes[i].Rect().Add(bounds.Min).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("box %d (%d,%d)-(%d,%d) outside image bounds %dx%d",
			i, d.Boxes[i].XMin, d.Boxes[i].YMin, d.Boxes[i].XMax, d.Boxes[i].YMax, bounds.Dx(), bounds.Dy())
	}

	cropped := imaging.Crop(img, rect)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return cropped, nil
}
