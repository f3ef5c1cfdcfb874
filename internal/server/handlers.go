package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-annotator/internal/annotation"
	"github.com/ironsheep/image-annotator/internal/colors"
	"github.com/ironsheep/image-annotator/internal/drawing"
	"github.com/ironsheep/image-annotator/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "color_hex_to_rgb", "annotation_render").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Color Operations
	case "color_hex_to_rgb":
		return s.handleColorHexToRGB(args)
	case "color_rgba_to_hex":
		return s.handleColorRGBAToHex(args)
	case "color_to_rgba":
		return s.handleColorToRGBA(args)
	case "color_palette":
		return s.handleColorPalette(args)

	// Drawing
	case "drawing_constants":
		return drawing.Properties(), nil

	// Annotation Operations
	case "annotation_prepare":
		return s.handleAnnotationPrepare(args)
	case "annotation_validate":
		return s.handleAnnotationValidate(args)
	case "annotation_measure":
		return s.handleAnnotationMeasure(args)
	case "annotation_crop":
		return s.handleAnnotationCrop(args)
	case "annotation_render":
		return s.handleAnnotationRender(args)
	case "annotation_box_colors":
		return s.handleAnnotationBoxColors(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// ImageResult contains an encoded output image
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// decodeImage decodes a base64 image. A "data:...;base64," prefix is allowed.
func decodeImage(b64 string) (image.Image, error) {
	if b64 == "" {
		return nil, fmt.Errorf("image_base64 is required")
	}
	if i := strings.Index(b64, ";base64,"); i >= 0 && strings.HasPrefix(b64, "data:") {
		b64 = b64[i+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// encodeImage encodes img as base64 PNG.
func encodeImage(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// === Color Operation Handlers ===

type colorHexArgs struct {
	Hex string `json:"hex"`
}

type colorResult struct {
	Hex  string `json:"hex,omitempty"`
	RGB  string `json:"rgb,omitempty"`
	RGBA string `json:"rgba,omitempty"`
}

func (s *Server) handleColorHexToRGB(args json.RawMessage) (interface{}, error) {
	var a colorHexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	rgb, err := colors.HexToRGB(a.Hex)
	if err != nil {
		return nil, err
	}
	return &colorResult{Hex: a.Hex, RGB: rgb}, nil
}

type colorRGBAArgs struct {
	RGBA string `json:"rgba"`
}

func (s *Server) handleColorRGBAToHex(args json.RawMessage) (interface{}, error) {
	var a colorRGBAArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	hex, err := colors.RGBAToHex(a.RGBA)
	if err != nil {
		return nil, err
	}
	return &colorResult{Hex: hex, RGBA: a.RGBA}, nil
}

type colorToRGBAArgs struct {
	Hex   string   `json:"hex"`
	Alpha *float64 `json:"alpha"`
}

func (s *Server) handleColorToRGBA(args json.RawMessage) (interface{}, error) {
	var a colorToRGBAArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	alpha := drawing.Alpha
	if a.Alpha != nil {
		alpha = *a.Alpha
	}
	rgba, err := colors.ToRGBA(a.Hex, alpha)
	if err != nil {
		return nil, err
	}
	return &colorResult{Hex: a.Hex, RGBA: rgba}, nil
}

type colorPaletteArgs struct {
	Index *int `json:"index"`
}

type paletteResult struct {
	Colors []string `json:"colors"`
	Index  *int     `json:"index,omitempty"`
	Color  string   `json:"color,omitempty"`
	Hex    string   `json:"hex,omitempty"`
}

func (s *Server) handleColorPalette(args json.RawMessage) (interface{}, error) {
	var a colorPaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res := &paletteResult{Colors: colors.Colors()}
	if a.Index != nil {
		res.Index = a.Index
		res.Color = colors.PaletteColor(*a.Index)
		res.Hex = colors.FormatHex(colors.PaletteRGBA(*a.Index))
	}
	return res, nil
}

// === Annotation Operation Handlers ===

func (s *Server) handleAnnotationPrepare(args json.RawMessage) (interface{}, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, err
	}
	return annotation.Prepare(payload)
}

type annotationArgs struct {
	Annotation *annotation.AnnotatedImageData `json:"annotation"`
}

func (a annotationArgs) data() (*annotation.AnnotatedImageData, error) {
	if a.Annotation == nil {
		return nil, fmt.Errorf("annotation is required")
	}
	if a.Annotation.Boxes == nil {
		a.Annotation.Boxes = []annotation.Box{}
	}
	return a.Annotation, nil
}

type validateResult struct {
	Valid      bool   `json:"valid"`
	Error      string `json:"error,omitempty"`
	BoxCount   int    `json:"box_count"`
	Undersized []int  `json:"undersized"`
	Calibrated bool   `json:"calibrated"`
}

func (s *Server) handleAnnotationValidate(args json.RawMessage) (interface{}, error) {
	var a annotationArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := a.data()
	if err != nil {
		return nil, err
	}

	res := &validateResult{
		Valid:      true,
		BoxCount:   len(d.Boxes),
		Undersized: []int{},
		Calibrated: d.IsCalibrated(),
	}
	if err := d.Validate(); err != nil {
		res.Valid = false
		res.Error = err.Error()
	}
	for i, b := range d.Boxes {
		if !b.MeetsMinSize() {
			res.Undersized = append(res.Undersized, i)
		}
	}
	return res, nil
}

type annotationMeasureArgs struct {
	annotationArgs
	Index   *int `json:"index"`
	ToIndex *int `json:"to_index"`
}

type measureResult struct {
	Measurements []annotation.BoxMeasurement `json:"measurements"`
	Distance     *annotation.DistanceResult  `json:"distance,omitempty"`
}

func (s *Server) handleAnnotationMeasure(args json.RawMessage) (interface{}, error) {
	var a annotationMeasureArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := a.data()
	if err != nil {
		return nil, err
	}

	res := &measureResult{}
	if a.Index == nil {
		res.Measurements = annotation.MeasureAll(d)
	} else {
		m, err := annotation.Measure(d, *a.Index)
		if err != nil {
			return nil, err
		}
		res.Measurements = []annotation.BoxMeasurement{*m}
	}

	if a.ToIndex != nil {
		from := 0
		if a.Index != nil {
			from = *a.Index
		}
		dist, err := annotation.CenterDistance(d, from, *a.ToIndex)
		if err != nil {
			return nil, err
		}
		res.Distance = dist
	}
	return res, nil
}

type annotationCropArgs struct {
	annotationArgs
	ImageBase64 string  `json:"image_base64"`
	Index       int     `json:"index"`
	Scale       float64 `json:"scale"`
}

func (s *Server) handleAnnotationCrop(args json.RawMessage) (interface{}, error) {
	var a annotationCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	d, err := a.data()
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(a.ImageBase64)
	if err != nil {
		return nil, err
	}
	cropped, err := annotation.CropBox(img, d, a.Index, a.Scale)
	if err != nil {
		return nil, err
	}
	return encodeImage(cropped)
}

type annotationRenderArgs struct {
	annotationArgs
	ImageBase64 string  `json:"image_base64"`
	Selected    *int    `json:"selected"`
	ShowLabels  *bool   `json:"show_labels"`
	Scale       float64 `json:"scale"`
}

func (s *Server) handleAnnotationRender(args json.RawMessage) (interface{}, error) {
	var a annotationRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := a.data()
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(a.ImageBase64)
	if err != nil {
		return nil, err
	}

	opts := render.DefaultOptions()
	opts.ShowLabels = s.cfg.ShowLabels
	opts.Scale = s.cfg.RenderScale
	if a.Selected != nil {
		opts.Selected = *a.Selected
	}
	if a.ShowLabels != nil {
		opts.ShowLabels = *a.ShowLabels
	}
	if a.Scale > 0 {
		opts.Scale = a.Scale
	}

	out, err := render.Overlay(img, d, opts)
	if err != nil {
		return nil, err
	}
	return encodeImage(out)
}

type annotationBoxColorsArgs struct {
	annotationArgs
	ImageBase64 string `json:"image_base64"`
	Index       int    `json:"index"`
	Count       int    `json:"count"`
}

func (s *Server) handleAnnotationBoxColors(args json.RawMessage) (interface{}, error) {
	var a annotationBoxColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	d, err := a.data()
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(a.ImageBase64)
	if err != nil {
		return nil, err
	}
	return annotation.DominantBoxColors(img, d, a.Index, a.Count)
}
