package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette endpoints: cells that were never sunny render as deep shade blue,
// always-sunny cells as full-sun yellow.
var (
	shadeColor = colorful.Color{R: 0.09, G: 0.12, B: 0.34}
	sunColor   = colorful.Color{R: 1.00, G: 0.84, B: 0.20}
)

// heatPalette maps every cell value to its false color, precomputed once so
// per-pixel rendering is a table lookup.
var heatPalette = buildHeatPalette()

func buildHeatPalette() [256]color.RGBA {
	var p [256]color.RGBA
	for v := 0; v < 256; v++ {
		c := shadeColor.BlendHcl(sunColor, float64(v)/255).Clamped()
		r, g, b := c.RGB255()
		p[v] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p
}

// HeatColor returns the false color for a single cell value.
func HeatColor(v uint8) color.RGBA {
	return heatPalette[v]
}
