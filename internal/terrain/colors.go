package terrain

import (
	"fmt"
	"math"
	"strings"
)

// ColorScheme selects the height gradient used for vertex colours.
type ColorScheme int

const (
	ColorNone ColorScheme = iota
	ColorGreenGray
	ColorYellowRed
)

// RGB is a colour with components in [0, 1].
type RGB [3]float32

var schemeStops = map[ColorScheme][2]RGB{
	ColorGreenGray: {
		{51.0 / 255, 128.0 / 255, 26.0 / 255},
		{204.0 / 255, 204.0 / 255, 204.0 / 255},
	},
	ColorYellowRed: {
		{1, 204.0 / 255, 0},
		{204.0 / 255, 0, 0},
	},
}

// IsolineColor is drawn over the gradient on contour lines.
var IsolineColor = RGB{0, 0, 0}

// isolineWidth is the half-width of a contour band as a fraction of spacing.
const isolineWidth = 0.02

// ParseColorScheme parses "green-gray", "yellow-red" or "none".
func ParseColorScheme(s string) (ColorScheme, error) {
	switch strings.ToLower(s) {
	case "green-gray", "greengray", "":
		return ColorGreenGray, nil
	case "yellow-red", "yellowred":
		return ColorYellowRed, nil
	case "none":
		return ColorNone, nil
	default:
		return ColorNone, fmt.Errorf("unknown color scheme %q", s)
	}
}

// String returns the scheme name.
func (s ColorScheme) String() string {
	switch s {
	case ColorGreenGray:
		return "green-gray"
	case ColorYellowRed:
		return "yellow-red"
	default:
		return "none"
	}
}

// Gradient returns the colour for t in [0, 1], clamped.
func (s ColorScheme) Gradient(t float64) RGB {
	stops, ok := schemeStops[s]
	if !ok {
		return RGB{1, 1, 1}
	}
	t = clampf(t, 0, 1)
	var c RGB
	for i := range c {
		c[i] = stops[0][i] + (stops[1][i]-stops[0][i])*float32(t)
	}
	return c
}

// Colorizer maps heights to colours over a fixed height range.
type Colorizer struct {
	Scheme         ColorScheme
	Min            float64
	Max            float64
	Isolines       bool
	IsolineSpacing float64
}

// Color returns the colour for raw height h.
func (c Colorizer) Color(h float64) RGB {
	if c.Isolines && c.IsolineSpacing > 0 {
		band := c.IsolineSpacing * isolineWidth
		m := math.Mod(h, c.IsolineSpacing)
		if m < 0 {
			m += c.IsolineSpacing
		}
		if m < band || m > c.IsolineSpacing-band {
			return IsolineColor
		}
	}

	t := 0.0
	if c.Max > c.Min {
		t = (h - c.Min) / (c.Max - c.Min)
	}
	return c.Scheme.Gradient(t)
}
