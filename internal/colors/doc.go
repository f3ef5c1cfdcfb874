// Package colors converts between the textual color forms used by the
// annotator and holds the palette assigned to successive boxes.
//
// # Formats
//
// Two text forms are understood:
//   - Hex: exactly "#RRGGBB", hex digits in either case
//   - CSS functional: "rgb(R, G, B)" or "rgba(R, G, B, A)", integer or
//     decimal components separated by commas
//
// HexToRGB always emits "rgb(R, G, B)" with ", " separators. RGBAToHex
// always emits lowercase "#rrggbb" and drops any alpha component.
//
// # Error Handling
//
// Every parse failure wraps ErrInvalidFormat, so callers can test with
// errors.Is regardless of which function reported it. Components outside
// 0-255 are rejected rather than folded into the output.
//
// # Palette
//
// Colors is fixed for the life of the process. PaletteColor indexes it
// modulo its length, so any integer index is valid.
package colors
