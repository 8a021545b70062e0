package parallel

import "errors"

var (
	// ErrInvalidTileSize is returned when a tile dimension is not positive.
	ErrInvalidTileSize = errors.New("parallel: tile width and height must be > 0")

	// ErrInvalidNeighborhood is returned for an even or non-positive
	// neighborhood size.
	ErrInvalidNeighborhood = errors.New("parallel: neighborhood size must be odd and >= 1")

	// ErrPartition describes write windows that do not tile the grid.
	// Plan never returns it; it panics instead, since a bad partition is a
	// planner defect. VerifyPartition returns it for external checks.
	ErrPartition = errors.New("parallel: write windows do not partition the grid")

	// ErrTaskPanicked matches the *TaskPanic returned by ExecuteAll.
	ErrTaskPanicked = errors.New("parallel: task panicked")
)
