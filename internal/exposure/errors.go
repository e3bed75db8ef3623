package exposure

import (
	"errors"
	"fmt"
	"image"
)

// ErrEmptyInput is returned by Build when it is given zero buffers. The
// caller must be told explicitly rather than receiving an all-zero grid that
// could be mistaken for "never sunny".
var ErrEmptyInput = errors.New("no pixel buffers to aggregate")

// DimensionMismatchError is returned by Build when an input buffer does not
// match the dimensions of the first buffer. The build is abandoned rather
// than truncating or stretching any input.
type DimensionMismatchError struct {
	Index int         // position of the offending buffer in the input
	Want  image.Point // dimensions of the first buffer
	Got   image.Point // dimensions of the offending buffer
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("buffer %d is %dx%d, want %dx%d",
		e.Index, e.Got.X, e.Got.Y, e.Want.X, e.Want.Y)
}
