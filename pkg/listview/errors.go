package listview

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is matched by every BoundsError.
	ErrOutOfBounds = errors.New("listview: flat index out of bounds")
	// ErrRowNotVisible is returned by IndexOf for rows hidden by a collapsed
	// group or missing from the grouped result.
	ErrRowNotVisible = errors.New("listview: row not visible")
)

// BoundsError reports a flat index outside [0, Count).
type BoundsError struct {
	Index int
	Count int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("listview: flat index %d out of bounds [0, %d)", e.Index, e.Count)
}

// Is makes errors.Is(err, ErrOutOfBounds) hold.
func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
