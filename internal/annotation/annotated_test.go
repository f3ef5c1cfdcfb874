package annotation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ironsheep/image-annotator/internal/colors"
)

func TestNew_Defaults(t *testing.T) {
	d := New(FileData{Path: "/tmp/base.png"})

	if d.Boxes == nil {
		t.Fatal("Boxes should be an empty slice, not nil")
	}
	if len(d.Boxes) != 0 {
		t.Errorf("Boxes: got %d, want 0", len(d.Boxes))
	}
	if d.CalibrationRatio != [2]float64{0, 0} {
		t.Errorf("CalibrationRatio: got %v, want [0 0]", d.CalibrationRatio)
	}
	if d.IsCalibrated() {
		t.Error("fresh record should be uncalibrated")
	}
	if d.Image.Path != "/tmp/base.png" {
		t.Errorf("Image.Path: got %q", d.Image.Path)
	}
}

func TestAnnotatedImageData_MarshalJSON(t *testing.T) {
	d := New(FileData{URL: "https://example.com/base.png"})
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `"boxes":[]`) {
		t.Errorf("expected empty boxes array, got %s", s)
	}
	if !strings.Contains(s, `"calibration_ratio":[0,0]`) {
		t.Errorf("expected zero calibration ratio, got %s", s)
	}

	var zero AnnotatedImageData
	out, err = json.Marshal(zero)
	if err != nil {
		t.Fatalf("Marshal zero failed: %v", err)
	}
	if !strings.Contains(string(out), `"boxes":[]`) {
		t.Errorf("zero value should marshal boxes as [], got %s", out)
	}
}

func TestAnnotatedImageData_UnmarshalJSON(t *testing.T) {
	payload := `{
		"image": "https://gradio-builds.s3.amazonaws.com/demo-files/base.png",
		"boxes": [
			{"xmin": 636, "ymin": 575, "xmax": 801, "ymax": 697, "label": "Vehicle", "color": [255, 0, 0]},
			{"xmin": 360, "ymin": 615, "xmax": 386, "ymax": 702, "label": "Person", "color": "#00ff00"},
			{"xmin": 1, "ymin": 2, "xmax": 30, "ymax": 40}
		],
		"calibration_ratio": [0.5, 0.25]
	}`

	var d AnnotatedImageData
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if d.Image.URL == "" || d.Image.Path != "" {
		t.Errorf("string image should become a URL reference, got %+v", d.Image)
	}
	if len(d.Boxes) != 3 {
		t.Fatalf("Boxes: got %d, want 3", len(d.Boxes))
	}
	if d.Boxes[0].Label != "Vehicle" || *d.Boxes[0].Color != (RGB{255, 0, 0}) {
		t.Errorf("box 0: got %+v", d.Boxes[0])
	}
	if *d.Boxes[1].Color != (RGB{0, 255, 0}) {
		t.Errorf("box 1 color: got %v", *d.Boxes[1].Color)
	}
	if d.Boxes[2].Color != nil {
		t.Errorf("box 2 color should be nil, got %v", *d.Boxes[2].Color)
	}
	if d.CalibrationRatio != [2]float64{0.5, 0.25} {
		t.Errorf("CalibrationRatio: got %v", d.CalibrationRatio)
	}
}

func TestRGB_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []string{`[1, 2]`, `[1, 2, 300]`, `"blue"`, `{"r": 1}`, `[-1, 0, 0]`}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			var c RGB
			err := json.Unmarshal([]byte(in), &c)
			if !errors.Is(err, colors.ErrInvalidFormat) {
				t.Errorf("Unmarshal(%s): got err %v, want ErrInvalidFormat", in, err)
			}
		})
	}
}

func TestRGB_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Box{XMin: 1, YMin: 2, XMax: 3, YMax: 4, Color: &RGB{10, 20, 30}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(out), `"color":[10,20,30]`) {
		t.Errorf("got %s", out)
	}
	if (RGB{255, 168, 77}).Hex() != "#ffa84d" {
		t.Errorf("Hex: got %s", (RGB{255, 168, 77}).Hex())
	}
}

func TestPrepare(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		d, err := Prepare(map[string]interface{}{})
		if err != nil {
			t.Fatalf("Prepare failed: %v", err)
		}
		if !d.Image.IsEmpty() {
			t.Errorf("Image: got %+v, want empty", d.Image)
		}
		if d.Boxes == nil || len(d.Boxes) != 0 {
			t.Errorf("Boxes: got %v, want []", d.Boxes)
		}
		if d.CalibrationRatio != [2]float64{0, 0} {
			t.Errorf("CalibrationRatio: got %v", d.CalibrationRatio)
		}
	})

	t.Run("populated", func(t *testing.T) {
		d, err := Prepare(map[string]interface{}{
			"file_path": "/data/base.png",
			"boxes": []interface{}{
				map[string]interface{}{"xmin": 30, "ymin": 70, "xmax": 530, "ymax": 500, "color": []int{100, 200, 255}},
			},
			"calibration_ratio": []float64{0.1, 0.2},
		})
		if err != nil {
			t.Fatalf("Prepare failed: %v", err)
		}
		if d.Image.Path != "/data/base.png" {
			t.Errorf("Image.Path: got %q", d.Image.Path)
		}
		if len(d.Boxes) != 1 || d.Boxes[0].XMax != 530 {
			t.Errorf("Boxes: got %+v", d.Boxes)
		}
		if *d.Boxes[0].Color != (RGB{100, 200, 255}) {
			t.Errorf("color: got %v", *d.Boxes[0].Color)
		}
		if !d.IsCalibrated() {
			t.Error("expected calibrated record")
		}
	})

	t.Run("negative ratio", func(t *testing.T) {
		_, err := Prepare(map[string]interface{}{"calibration_ratio": []float64{-1, 1}})
		if !errors.Is(err, ErrInvalidCalibration) {
			t.Errorf("got err %v, want ErrInvalidCalibration", err)
		}
	})

	t.Run("wrong ratio length", func(t *testing.T) {
		for _, ratio := range [][]float64{{}, {0.5}, {0.5, 0.25, 9}} {
			_, err := Prepare(map[string]interface{}{"calibration_ratio": ratio})
			if !errors.Is(err, ErrInvalidCalibration) {
				t.Errorf("ratio %v: got err %v, want ErrInvalidCalibration", ratio, err)
			}
		}
	})
}

func TestAnnotatedImageData_UnmarshalJSON_Calibration(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    [2]float64
		wantErr bool
	}{
		{"absent", `{"boxes": []}`, [2]float64{0, 0}, false},
		{"pair", `{"calibration_ratio": [0.5, 0.25]}`, [2]float64{0.5, 0.25}, false},
		{"one value", `{"calibration_ratio": [0.5]}`, [2]float64{}, true},
		{"three values", `{"calibration_ratio": [0.5, 0.25, 9]}`, [2]float64{}, true},
		{"negative", `{"calibration_ratio": [0.5, -1]}`, [2]float64{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d AnnotatedImageData
			err := json.Unmarshal([]byte(tt.json), &d)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCalibration) {
					t.Errorf("got err %v, want ErrInvalidCalibration", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if d.CalibrationRatio != tt.want {
				t.Errorf("CalibrationRatio: got %v, want %v", d.CalibrationRatio, tt.want)
			}
		})
	}
}

func TestAddRemoveBox_PreservesOrder(t *testing.T) {
	d := New(FileData{})
	for i, label := range []string{"a", "b", "c", "d"} {
		if got := d.AddBox(Box{XMin: i, YMin: i, XMax: i + 10, YMax: i + 10, Label: label}); got != i {
			t.Fatalf("AddBox index: got %d, want %d", got, i)
		}
	}

	if err := d.RemoveBox(1); err != nil {
		t.Fatalf("RemoveBox failed: %v", err)
	}

	var labels []string
	for _, b := range d.Boxes {
		labels = append(labels, b.Label)
	}
	if strings.Join(labels, "") != "acd" {
		t.Errorf("order after remove: got %v, want [a c d]", labels)
	}

	for _, bad := range []int{-1, 3, 10} {
		if err := d.RemoveBox(bad); !errors.Is(err, ErrBoxIndex) {
			t.Errorf("RemoveBox(%d): got err %v, want ErrBoxIndex", bad, err)
		}
	}
}

func TestNewBox_UsesDefaultColor(t *testing.T) {
	d := New(FileData{})
	i := d.NewBox(0, 0, 50, 50, "thing")
	if d.Boxes[i].Color == nil || *d.Boxes[i].Color != (RGB{0, 255, 0}) {
		t.Errorf("NewBox color: got %v, want [0 255 0]", d.Boxes[i].Color)
	}
}

func TestAddBox_DoesNotShareColor(t *testing.T) {
	c := RGB{1, 2, 3}
	b := Box{XMax: 10, YMax: 10, Color: &c}

	d1 := New(FileData{})
	d2 := New(FileData{})
	d1.AddBox(b)
	d2.AddBox(b)

	d1.Boxes[0].Color[0] = 99
	if d2.Boxes[0].Color[0] != 1 || c[0] != 1 {
		t.Error("boxes added from the same value share a color")
	}
}

func TestClone_Independent(t *testing.T) {
	d := New(FileData{Path: "x.png"})
	d.NewBox(0, 0, 30, 30, "one")
	_ = d.SetCalibrationRatio(1, 2)

	c := d.Clone()
	c.Boxes[0].Label = "changed"
	c.Boxes[0].Color[1] = 7
	c.AddBox(Box{XMax: 1, YMax: 1})
	c.CalibrationRatio[0] = 5

	if d.Boxes[0].Label != "one" || d.Boxes[0].Color[1] != 255 {
		t.Errorf("original box changed: %+v", d.Boxes[0])
	}
	if len(d.Boxes) != 1 {
		t.Errorf("original box count changed: %d", len(d.Boxes))
	}
	if d.CalibrationRatio[0] != 1 {
		t.Errorf("original ratio changed: %v", d.CalibrationRatio)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		box     Box
		wantErr bool
	}{
		{"valid", Box{XMin: 0, YMin: 0, XMax: 10, YMax: 10}, false},
		{"zero width", Box{XMin: 5, YMin: 0, XMax: 5, YMax: 10}, true},
		{"inverted", Box{XMin: 10, YMin: 10, XMax: 0, YMax: 0}, true},
		{"negative origin", Box{XMin: -1, YMin: 0, XMax: 10, YMax: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(FileData{})
			d.AddBox(tt.box)
			err := d.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidBox) {
				t.Errorf("got err %v, want ErrInvalidBox", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMeetsMinSize(t *testing.T) {
	if !(Box{XMax: 25, YMax: 25}).MeetsMinSize() {
		t.Error("25x25 should meet the minimum size")
	}
	if (Box{XMax: 24, YMax: 100}).MeetsMinSize() {
		t.Error("24 wide should not meet the minimum size")
	}
}

func TestSetCalibrationRatio(t *testing.T) {
	d := New(FileData{})

	if err := d.SetCalibrationRatio(0.5, 0); err != nil {
		t.Fatalf("SetCalibrationRatio failed: %v", err)
	}
	if d.IsCalibrated() {
		t.Error("ratio with a zero component should be uncalibrated")
	}

	if err := d.SetCalibrationRatio(0.5, 0.5); err != nil {
		t.Fatalf("SetCalibrationRatio failed: %v", err)
	}
	if !d.IsCalibrated() {
		t.Error("expected calibrated")
	}

	if err := d.SetCalibrationRatio(-0.5, 1); !errors.Is(err, ErrInvalidCalibration) {
		t.Errorf("negative: got err %v, want ErrInvalidCalibration", err)
	}
	if d.CalibrationRatio != [2]float64{0.5, 0.5} {
		t.Errorf("failed set should leave ratio unchanged, got %v", d.CalibrationRatio)
	}
}

func TestBoxColor(t *testing.T) {
	d := New(FileData{})
	d.AddBox(Box{XMax: 10, YMax: 10})
	d.AddBox(Box{XMax: 10, YMax: 10, Color: &RGB{1, 2, 3}})
	d.AddBox(Box{XMax: 10, YMax: 10})

	c0, err := d.BoxColor(0)
	if err != nil {
		t.Fatalf("BoxColor failed: %v", err)
	}
	if c0 != (RGB{255, 168, 77}) {
		t.Errorf("box 0 should use palette[0], got %v", c0)
	}

	c1, _ := d.BoxColor(1)
	if c1 != (RGB{1, 2, 3}) {
		t.Errorf("box 1 should use its own color, got %v", c1)
	}

	c2, _ := d.BoxColor(2)
	p2 := colors.PaletteRGBA(2)
	if c2 != (RGB{p2.R, p2.G, p2.B}) {
		t.Errorf("box 2 should use palette[2], got %v", c2)
	}

	if _, err := d.BoxColor(3); !errors.Is(err, ErrBoxIndex) {
		t.Errorf("got err %v, want ErrBoxIndex", err)
	}
}

func TestFileDataFromString(t *testing.T) {
	if f := FileDataFromString("http://host/a.png"); f.URL == "" {
		t.Errorf("http URL: got %+v", f)
	}
	if f := FileDataFromString("/abs/a.png"); f.Path != "/abs/a.png" {
		t.Errorf("path: got %+v", f)
	}
	if !FileDataFromString("").IsEmpty() {
		t.Error("empty string should give empty reference")
	}
}
