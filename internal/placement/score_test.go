package placement

import (
	"math"
	"testing"

	"github.com/greenshed/sunmap/internal/exposure"
)

// uniformGrid builds a width × height grid with every cell set to value.
func uniformGrid(t *testing.T, width, height int, value uint8) *exposure.Grid {
	t.Helper()
	cells := make([]uint8, width*height)
	for i := range cells {
		cells[i] = value
	}
	grid, err := exposure.NewGrid(width, height, cells)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	return grid
}

// gridWithCells builds a grid from explicit row-major cell values.
func gridWithCells(t *testing.T, width, height int, cells []uint8) *exposure.Grid {
	t.Helper()
	grid, err := exposure.NewGrid(width, height, cells)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	return grid
}

func TestRect_Footprint(t *testing.T) {
	tests := []struct {
		name           string
		rect           Rect
		x0, y0, x1, y1 int
	}{
		{"even size", Rect{CenterX: 5, CenterY: 5, Width: 2, Height: 2}, 4, 4, 6, 6},
		{"odd size", Rect{CenterX: 5, CenterY: 5, Width: 3, Height: 3}, 4, 4, 7, 7},
		{"single cell", Rect{CenterX: 2, CenterY: 3, Width: 1, Height: 1}, 2, 3, 3, 4},
		{"mixed", Rect{CenterX: 10, CenterY: 4, Width: 4, Height: 3}, 8, 3, 12, 6},
		{"negative center", Rect{CenterX: 0, CenterY: 0, Width: 4, Height: 4}, -2, -2, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1 := tt.rect.Footprint()
			if x0 != tt.x0 || y0 != tt.y0 || x1 != tt.x1 || y1 != tt.y1 {
				t.Errorf("Footprint: got (%d,%d)-(%d,%d), want (%d,%d)-(%d,%d)",
					x0, y0, x1, y1, tt.x0, tt.y0, tt.x1, tt.y1)
			}
			if (x1-x0) != tt.rect.Width || (y1-y0) != tt.rect.Height {
				t.Errorf("footprint covers %dx%d cells, want %dx%d",
					x1-x0, y1-y0, tt.rect.Width, tt.rect.Height)
			}
		})
	}
}

func TestScore_FullContainment(t *testing.T) {
	grid := uniformGrid(t, 10, 10, 100)

	// 2x2 rectangle centered at (5,5) covers cells (4,4)-(5,5): 4 * 100.
	got := Score(grid, Rect{CenterX: 5, CenterY: 5, Width: 2, Height: 2})
	if got != 400 {
		t.Errorf("Score: got %d, want 400", got)
	}
}

func TestScore_CornerClipping(t *testing.T) {
	grid := uniformGrid(t, 10, 10, 10)

	tests := []struct {
		name string
		rect Rect
		want int
	}{
		// 4x4 at the origin: footprint (-2,-2)-(2,2), only 2x2 on-grid.
		{"top-left corner", Rect{CenterX: 0, CenterY: 0, Width: 4, Height: 4}, 40},
		// Footprint (8,8)-(12,12): 2x2 on-grid.
		{"bottom-right corner", Rect{CenterX: 10, CenterY: 10, Width: 4, Height: 4}, 40},
		// Footprint (-2,3)-(2,7): 2 wide, 4 tall on-grid.
		{"left edge", Rect{CenterX: 0, CenterY: 5, Width: 4, Height: 4}, 80},
		{"fully outside", Rect{CenterX: 50, CenterY: 50, Width: 4, Height: 4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(grid, tt.rect); got != tt.want {
				t.Errorf("Score: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScore_MatchesDirectCellSum(t *testing.T) {
	cells := []uint8{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	}
	grid := gridWithCells(t, 4, 3, cells)

	// 3x3 centered at (1,1): cells (0,0)-(2,2).
	want := 1 + 2 + 3 + 5 + 6 + 7 + 9 + 10 + 11
	if got := Score(grid, Rect{CenterX: 1, CenterY: 1, Width: 3, Height: 3}); got != want {
		t.Errorf("Score: got %d, want %d", got, want)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name   string
		score  int
		w, h   int
		want   float64
	}{
		{"max exposure", 255 * 4, 2, 2, 100},
		{"zero", 0, 2, 2, 0},
		{"half", 255 * 2, 2, 2, 50},
		{"uniform 100", 400, 2, 2, 100.0 / 255 * 100},
		{"degenerate footprint", 100, 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(tt.score, tt.w, tt.h)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Percentage: got %v, want %v", got, tt.want)
			}
		})
	}
}
