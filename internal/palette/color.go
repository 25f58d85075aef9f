package palette

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with 8-bit components.
type Color struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSB is the hue/saturation/brightness view of a Color.
type HSB struct {
	H float64 `json:"h"` // Hue: 0-360 degrees
	S float64 `json:"s"` // Saturation: 0-1
	B float64 `json:"b"` // Brightness: 0-1
}

// Fixed colors used when no vibrant candidate survives.
var (
	FallbackBlue = Color{R: 0, G: 122, B: 255}
	FallbackGray = Color{R: 142, G: 142, B: 147}
)

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// HSB converts the color to hue, saturation and brightness.
//
// Brightness is the largest channel divided by 255. Saturation is
// (max-min)/max and is 0 for black. Gray colors report hue 0.
func (c Color) HSB() HSB {
	h, s, v := c.colorful().Hsv()
	return HSB{H: h, S: s, B: v}
}

// FromHSB builds a Color from hue, saturation and brightness. Saturation and
// brightness are clamped to [0, 1] first.
func FromHSB(hsb HSB) Color {
	c := colorful.Hsv(hsb.H, clampUnit(hsb.S), clampUnit(hsb.B))
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// WithBrightness returns the color shifted by delta in brightness, clamped
// to [0, 1]. Hue and saturation are kept.
func (c Color) WithBrightness(delta float64) Color {
	hsb := c.HSB()
	hsb.B = clampUnit(hsb.B + delta)
	return FromHSB(hsb)
}

// Hex formats the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// NRGBA returns the color as an opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Less orders colors by ascending R, then G, then B.
func (c Color) Less(o Color) bool {
	if c.R != o.R {
		return c.R < o.R
	}
	if c.G != o.G {
		return c.G < o.G
	}
	return c.B < o.B
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (Color, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
