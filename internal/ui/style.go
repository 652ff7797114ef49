package ui

import (
	"image/color"
	"strconv"
	"strings"
)

// ComputedStyle is a node's style after the stylesheet is applied. Sizes are pixels.
// A percentage position places the node that far across the free space; when it is
// negative the pixel Left/Top apply. Margin is the gap below a node in the popup flow.
type ComputedStyle struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Padding    int32
	Margin     int32
	FontSize   int32
}

var (
	white       = color.RGBA{255, 255, 255, 255}
	black       = color.RGBA{0, 0, 0, 255}
	transparent = color.RGBA{}
)

const defaultFontSize = 20

// DefaultComputedStyle is the style of a node no rule matches: white text on nothing.
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Background: transparent,
		Color:      white,
		Border:     black,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
		FontSize:   defaultFontSize,
	}
}

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA. Returns black and false on parse error.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return black, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return black, false
		}
	}
	switch len(hex) {
	case 3:
		return color.RGBA{hexByte(hex[0]) * 17, hexByte(hex[1]) * 17, hexByte(hex[2]) * 17, 255}, true
	case 6:
		return color.RGBA{hexPair(hex[0:2]), hexPair(hex[2:4]), hexPair(hex[4:6]), 255}, true
	case 8:
		return color.RGBA{hexPair(hex[0:2]), hexPair(hex[2:4]), hexPair(hex[4:6]), hexPair(hex[6:8])}, true
	}
	return black, false
}

func hexPair(s string) uint8 {
	return hexByte(s[0])<<4 + hexByte(s[1])
}

func hexByte(c byte) uint8 {
	v, _ := hexDigit(c)
	return v
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParsePx parses "12px" or a bare "12".
func ParsePx(s string) (int32, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px")))
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses a percentage such as "50%"; values outside [0, 100] are rejected.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps applies lowercased CSS properties over DefaultComputedStyle. Unknown
// properties and unparsable values are ignored.
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			if c, ok := ParseHexColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "margin", "margin-bottom":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Margin = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}
