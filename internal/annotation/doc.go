// Package annotation defines the annotated-image record exchanged with the
// box editor, and the helpers that operate on it.
//
// # Data Model
//
// An AnnotatedImageData bundles:
//   - Image: a FileData reference to image bytes owned elsewhere. This
//     package never opens it.
//   - Boxes: the ordered boxes. Slice order is draw order, so later boxes
//     paint over earlier ones.
//   - CalibrationRatio: horizontal and vertical units-per-pixel. The zero
//     value (0, 0) means uncalibrated.
//
// Boxes are stored by value, so a record can never hold a nil box. Clone
// deep-copies a record so that no box is shared between two records.
//
// # Coordinate System
//
// Box coordinates are image pixels with (0,0) at the top-left corner.
// (XMin, YMin) is inclusive and (XMax, YMax) is exclusive, matching
// image.Rectangle.
//
// # JSON
//
// The JSON shape matches the editor's payload:
//
//	{
//	  "image": {"path": "...", "url": "..."},
//	  "boxes": [{"xmin": 1, "ymin": 2, "xmax": 30, "ymax": 40, "label": "Person", "color": [0, 255, 0]}],
//	  "calibration_ratio": [0, 0]
//	}
//
// "image" may also be a bare string (a path or an http(s) URL) and a box
// "color" may be a hex or rgb()/rgba() string instead of an array.
package annotation
