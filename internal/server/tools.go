package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// annotationSchema describes an AnnotatedImageData argument.
var annotationSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"image": map[string]interface{}{
			"description": "Image reference: a path/URL string or an object with path, url, orig_name",
		},
		"boxes": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"xmin":  map[string]interface{}{"type": "integer"},
					"ymin":  map[string]interface{}{"type": "integer"},
					"xmax":  map[string]interface{}{"type": "integer"},
					"ymax":  map[string]interface{}{"type": "integer"},
					"label": map[string]interface{}{"type": "string"},
					"color": map[string]interface{}{
						"description": "[r, g, b] array or a '#RRGGBB' / 'rgb(...)' string",
					},
				},
				"required": []string{"xmin", "ymin", "xmax", "ymax"},
			},
			"description": "Boxes in draw order",
		},
		"calibration_ratio": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "number"},
			"description": "Horizontal and vertical units per pixel; [0, 0] means uncalibrated",
		},
	},
	"description": "Annotated image record",
}

var imageBase64Schema = map[string]interface{}{
	"type":        "string",
	"description": "Base64-encoded PNG, JPEG, GIF or WebP image",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Color Operations
		{
			Name:        "color_hex_to_rgb",
			Description: "Convert a '#RRGGBB' hex color to 'rgb(R, G, B)'.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hex": map[string]interface{}{
						"type":        "string",
						"description": "Color as '#' followed by 6 hex digits",
					},
				},
				"required": []string{"hex"},
			},
		},
		{
			Name:        "color_rgba_to_hex",
			Description: "Convert an 'rgb(...)' or 'rgba(...)' color to lowercase '#rrggbb'. Alpha is dropped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rgba": map[string]interface{}{
						"type":        "string",
						"description": "Color such as 'rgba(255, 168, 77, 0.5)'",
					},
				},
				"required": []string{"rgba"},
			},
		},
		{
			Name:        "color_to_rgba",
			Description: "Convert a hex color and an opacity to 'rgba(R, G, B, A)'.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hex": map[string]interface{}{
						"type":        "string",
						"description": "Color as '#RRGGBB'",
					},
					"alpha": map[string]interface{}{
						"type":        "number",
						"description": "Opacity 0-1 (default 0.5, the box fill opacity)",
						"default":     0.5,
					},
				},
				"required": []string{"hex"},
			},
		},
		{
			Name:        "color_palette",
			Description: "Return the box color palette. With an index, also return the color assigned to that index (cycling).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Optional box or class index",
					},
				},
			},
		},

		// Drawing
		{
			Name:        "drawing_constants",
			Description: "Return the box styling constants: fonts, label color, fill alpha, minimum and handle sizes, border thicknesses, scale factor and default color.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Annotation Operations
		{
			Name:        "annotation_prepare",
			Description: "Build an annotated image record from file_path, boxes and calibration_ratio, applying defaults for missing fields.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"file_path": map[string]interface{}{
						"type":        "string",
						"description": "Image path or URL (default empty)",
					},
					"boxes": map[string]interface{}{
						"type":        "array",
						"description": "Boxes in draw order (default none)",
					},
					"calibration_ratio": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"description": "Units per pixel (default [0, 0])",
					},
				},
			},
		},
		{
			Name:        "annotation_validate",
			Description: "Check that every box has a non-empty extent and report boxes smaller than the minimum size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"annotation": annotationSchema,
				},
				"required": []string{"annotation"},
			},
		},
		{
			Name:        "annotation_measure",
			Description: "Measure boxes in pixels and, when calibrated, in physical units. Optionally measure the distance between two box centers.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"annotation": annotationSchema,
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Box to measure. If omitted, all boxes are measured.",
					},
					"to_index": map[string]interface{}{
						"type":        "integer",
						"description": "Optional second box; adds the center-to-center distance from index",
					},
				},
				"required": []string{"annotation"},
			},
		},
		{
			Name:        "annotation_crop",
			Description: "Crop the region under one box and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"annotation":   annotationSchema,
					"image_base64": imageBase64Schema,
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Box to crop (default 0)",
						"default":     0,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"annotation", "image_base64"},
			},
		},
		{
			Name:        "annotation_render",
			Description: "Draw all boxes over the image with translucent fills, borders, labels and selection handles. Returns base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"annotation":   annotationSchema,
					"image_base64": imageBase64Schema,
					"selected": map[string]interface{}{
						"type":        "integer",
						"description": "Index of the selected box (default -1, none)",
						"default":     -1,
					},
					"show_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to draw label tabs (default from server config)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Output scale (default from server config)",
					},
				},
				"required": []string{"annotation", "image_base64"},
			},
		},
		{
			Name:        "annotation_box_colors",
			Description: "Find the most common colors under one box and suggest the palette color that contrasts most with them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"annotation":   annotationSchema,
					"image_base64": imageBase64Schema,
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Box to analyze (default 0)",
						"default":     0,
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum colors to return (default 5)",
						"default":     5,
					},
				},
				"required": []string{"annotation", "image_base64"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
