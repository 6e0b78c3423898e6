package level

import "errors"

var (
	ErrSectorNotFound    = errors.New("sector not found")
	ErrSpriteNotFound    = errors.New("sprite not found")
	ErrTooFewVertices    = errors.New("sector needs at least 3 vertices")
	ErrDuplicateSectorID = errors.New("duplicate sector ID")
	ErrUnknownParent     = errors.New("nested sector references unknown parent")
	ErrSectorClosed      = errors.New("sector is already closed")
	ErrPointOutside      = errors.New("point is outside the sector")
)

var errNonFinitePlane = errors.New("plane has non-finite coefficients")

var errNestingCycle = errors.New("nesting would create a parent cycle")
