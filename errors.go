package focal

import (
	"errors"
	"fmt"

	"github.com/gogpu/focal/raster"
)

// Configuration errors, reported by New and Config.Validate before any I/O.
var (
	ErrInvalidNeighborhood = errors.New("focal: neighborhood size must be odd and >= 1")
	ErrInvalidTileSize     = errors.New("focal: tile width and height must be > 0")
	ErrInvalidReducer      = errors.New("focal: invalid reducer")
	ErrInvalidChunkTarget  = errors.New("focal: chunk target must be >= 0")
	ErrNilSource           = errors.New("focal: nil source")
	ErrNilSink             = errors.New("focal: nil sink")
)

// ErrRunning is returned by Run when the engine is already running.
var ErrRunning = errors.New("focal: engine is already running")

// Errors shared with raster sources and sinks.
var (
	ErrInvalidGrid       = raster.ErrInvalidGrid
	ErrWindowOutOfBounds = raster.ErrWindowOutOfBounds
	ErrShapeMismatch     = raster.ErrShapeMismatch
)

// TileError reports a read or write failure for one window.
// It unwraps to the underlying cause.
type TileError struct {
	// Index is the tile's position in the plan; -1 for a whole-grid run.
	Index int

	// Window is the window being read or written.
	Window raster.Window

	// Op is "read", "reduce" or "write".
	Op string

	Err error
}

func (e *TileError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("focal: %s %v: %v", e.Op, e.Window, e.Err)
	}
	return fmt.Sprintf("focal: %s tile %d %v: %v", e.Op, e.Index, e.Window, e.Err)
}

func (e *TileError) Unwrap() error {
	return e.Err
}
