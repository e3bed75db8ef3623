package placement

import "fmt"

// OutOfBoundsError is returned when a requested rectangle lies entirely
// outside the exposure grid. Such rectangles are rejected, not clamped.
type OutOfBoundsError struct {
	Rect       Rect
	GridWidth  int
	GridHeight int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("rectangle %s lies entirely outside %dx%d grid",
		e.Rect, e.GridWidth, e.GridHeight)
}
