package render

import (
	"image"
	"image/color"
)

// Legend strip geometry, in unscaled grid pixels.
const (
	legendBarWidth = 12
	legendMargin   = 4
	legendWidth    = legendBarWidth + 2*legendMargin
)

// drawLegend paints a vertical gradient bar into img occupying the columns
// [x0, x0+legendWidth), full sun at the top and full shade at the bottom,
// with percentage labels beside the bar.
func drawLegend(img *image.RGBA, x0, height int) {
	top := legendMargin
	bottom := height - legendMargin
	// A gradient needs at least two rows; skip the legend on maps too short
	// to hold one.
	if bottom-top < 2 {
		return
	}

	for y := top; y < bottom; y++ {
		// Map row to exposure value, 255 at the top of the bar.
		v := uint8(255 * (bottom - 1 - y) / (bottom - 1 - top))
		c := heatPalette[v]
		for x := x0 + legendMargin; x < x0+legendMargin+legendBarWidth; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	labelFg := color.RGBA{255, 255, 255, 255}
	labelBg := color.RGBA{0, 0, 0, 180}
	drawLabel(img, x0+legendMargin, top+1, "100%", labelFg, labelBg)
	drawLabel(img, x0+legendMargin, bottom-labelHeight, "0%", labelFg, labelBg)
}

// Simple 3x5 pixel font for legend labels.
var labelGlyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'%': {"101", "001", "010", "100", "101"},
}

const (
	glyphWidth  = 4 // 3px glyph plus 1px spacing
	labelHeight = 7 // 5px glyph plus background padding
)

// drawLabel draws a small text label with a darkened background, clipping to
// the image bounds. Characters without a glyph are skipped.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	bounds := img.Bounds()
	labelWidth := len(text) * glyphWidth

	for dy := -1; dy < labelHeight-1; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.SetRGBA(px, py, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := labelGlyphs[ch]
		if !ok {
			cx += glyphWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				px, py := cx+col, y+row
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					img.SetRGBA(px, py, fg)
				}
			}
		}
		cx += glyphWidth
	}
}
