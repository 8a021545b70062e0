package raster

import "errors"

var (
	// ErrInvalidGrid is returned for a descriptor with non-positive dimensions.
	ErrInvalidGrid = errors.New("raster: invalid grid dimensions")

	// ErrWindowOutOfBounds is returned by sources and sinks asked for a
	// window that is not fully inside the grid.
	ErrWindowOutOfBounds = errors.New("raster: window out of bounds")

	// ErrShapeMismatch is returned when an array's shape differs from the
	// window it is paired with.
	ErrShapeMismatch = errors.New("raster: array shape does not match window")
)
