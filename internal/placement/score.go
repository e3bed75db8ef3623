package placement

import "github.com/greenshed/sunmap/internal/exposure"

// Score sums the exposure grid cell values under the rectangle's footprint.
// The footprint is clipped to the grid; cells outside contribute 0. The
// maximum possible score is 255 * Width * Height.
func Score(grid *exposure.Grid, r Rect) int {
	x0, y0, x1, y1 := r.Footprint()

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > grid.Width() {
		x1 = grid.Width()
	}
	if y1 > grid.Height() {
		y1 = grid.Height()
	}

	sum := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			sum += int(grid.At(x, y))
		}
	}
	return sum
}

// Percentage rescales a score to the fraction of the maximum exposure a
// width × height rectangle could collect, in [0, 100].
func Percentage(score, width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return float64(score) / float64(width*height) / 255 * 100
}
