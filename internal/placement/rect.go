package placement

import "fmt"

// Rect is an axis-aligned candidate bed footprint, positioned by its center
// in grid pixel units.
type Rect struct {
	CenterX int `json:"center_x"`
	CenterY int `json:"center_y"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

// Footprint returns the half-open cell bounds [x0, x1) × [y0, y1) covered by
// the rectangle. The left/top edge is the floor of center − size/2, so a
// rectangle always covers exactly Width × Height cells and even and odd
// sizes follow the same convention.
func (r Rect) Footprint() (x0, y0, x1, y1 int) {
	x0 = r.CenterX - r.Width/2
	y0 = r.CenterY - r.Height/2
	return x0, y0, x0 + r.Width, y0 + r.Height
}

// Shifted returns the rectangle moved by (dx, dy).
func (r Rect) Shifted(dx, dy int) Rect {
	r.CenterX += dx
	r.CenterY += dy
	return r
}

// Inside reports whether the footprint lies fully within a gridWidth ×
// gridHeight grid.
func (r Rect) Inside(gridWidth, gridHeight int) bool {
	x0, y0, x1, y1 := r.Footprint()
	return x0 >= 0 && y0 >= 0 && x1 <= gridWidth && y1 <= gridHeight
}

// Outside reports whether the footprint lies entirely outside a gridWidth ×
// gridHeight grid, with no overlapping cell at all.
func (r Rect) Outside(gridWidth, gridHeight int) bool {
	x0, y0, x1, y1 := r.Footprint()
	return x1 <= 0 || y1 <= 0 || x0 >= gridWidth || y0 >= gridHeight
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Width, r.Height, r.CenterX, r.CenterY)
}
