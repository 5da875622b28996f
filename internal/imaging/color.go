package imaging

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/rgb-tools-mcp/internal/rgb"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// SampleColor returns the color at (row, col) in hex, RGB and HSL form.
// Coordinates outside the image yield rgb.ErrRange.
func SampleColor(img *rgb.Image, row, col int) (*ColorResult, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image to sample", rgb.ErrType)
	}
	p, err := img.GetPixel(row, col)
	if err != nil {
		return nil, err
	}
	return describe(p), nil
}

func describe(p rgb.Pixel) *ColorResult {
	c := colorful.Color{
		R: float64(p[0]) / 255,
		G: float64(p[1]) / 255,
		B: float64(p[2]) / 255,
	}
	h, s, l := c.Hsl()

	return &ColorResult{
		Hex: fmt.Sprintf("#%02X%02X%02X", p[0], p[1], p[2]),
		RGB: RGBColor{R: p[0], G: p[1], B: p[2]},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

// ParseColor converts "#RRGGBB" or "#RGB" (the leading '#' is optional) to
// a pixel. Malformed strings yield rgb.ErrType.
func ParseColor(s string) (rgb.Pixel, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return rgb.Pixel{}, fmt.Errorf("%w: invalid color %q", rgb.ErrType, s)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return rgb.Pixel{}, fmt.Errorf("%w: invalid color %q", rgb.ErrType, s)
	}
	r, g, b := c.RGB255()
	return rgb.Pixel{r, g, b}, nil
}
