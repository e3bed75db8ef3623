package exposure

import (
	"fmt"
	"image"
	"image/color"
)

// Grid is the per-pixel sun-exposure map produced by Build. Each cell holds
// the sunny-image count for that coordinate, rescaled to [0, 255]. A Grid is
// immutable: Build hands out a fully-populated grid or nothing at all.
type Grid struct {
	width  int
	height int
	cells  []uint8
	images int // number of source buffers aggregated
}

// NewGrid reconstructs a grid from raw row-major cell values, as previously
// obtained from Pixels. This lets a collaborator rehydrate an exported map
// (or synthesize one) without re-running aggregation. The cells slice is
// copied.
func NewGrid(width, height int, cells []uint8) (*Grid, error) {
	if width <= 0 || height <= 0 || len(cells) != width*height {
		return nil, fmt.Errorf("grid needs %d cells for %dx%d, got %d",
			width*height, width, height, len(cells))
	}
	c := make([]uint8, len(cells))
	copy(c, cells)
	return &Grid{width: width, height: height, cells: c}, nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Images returns the number of source buffers that were aggregated.
func (g *Grid) Images() int { return g.images }

// At returns the cell value at (x, y). Coordinates outside the grid return
// 0, mirroring the zero-value convention of the standard image types, which
// lets rectangle scoring clip to grid bounds without special cases.
func (g *Grid) At(x, y int) uint8 {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0
	}
	return g.cells[y*g.width+x]
}

// Contains reports whether (x, y) lies within the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Pixels returns a copy of the raw cell values in row-major order. The copy
// keeps the grid immutable while letting an exporting collaborator read
// every value in one call.
func (g *Grid) Pixels() []uint8 {
	out := make([]uint8, len(g.cells))
	copy(out, g.cells)
	return out
}

// Gray renders the grid as a grayscale image, one pixel per cell.
func (g *Grid) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.width, g.height))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			img.SetGray(x, y, color.Gray{Y: g.cells[y*g.width+x]})
		}
	}
	return img
}
