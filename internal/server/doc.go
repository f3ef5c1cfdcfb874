// Package server implements an MCP (Model Context Protocol) server exposing
// the annotation helpers as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Color Operations:
//   - color_hex_to_rgb: "#RRGGBB" to "rgb(R, G, B)"
//   - color_rgba_to_hex: "rgb(...)"/"rgba(...)" to "#rrggbb"
//   - color_to_rgba: hex plus opacity to "rgba(R, G, B, A)"
//   - color_palette: the box palette, or one entry by index
//
// Drawing:
//   - drawing_constants: the box styling table
//
// Annotation Operations:
//   - annotation_prepare: build a record from file_path/boxes/calibration_ratio
//   - annotation_validate: check box extents and minimum size
//   - annotation_measure: box sizes in pixels and calibrated units
//   - annotation_crop: crop the region under one box
//   - annotation_render: draw all boxes over the image
//   - annotation_box_colors: dominant colors under a box and a contrasting palette color
//
// # Images
//
// The server never opens files. Tools that need pixels take the image
// inline as base64 (PNG, JPEG, GIF or WebP) in "image_base64" and return
// base64 PNG.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
