package focal

import (
	"context"

	"github.com/gogpu/focal/raster"
)

// RasterSource provides random-window reads from a grid.
//
// ReadWindow must return an array of exactly win's shape and fail with
// ErrWindowOutOfBounds if win is not inside the grid. The engine takes
// ownership of the returned array and may modify it.
type RasterSource interface {
	Descriptor() raster.GridDescriptor
	ReadWindow(ctx context.Context, win raster.Window) (raster.Array, error)
}

// RasterSink stores windows of the output grid.
//
// data always has win's shape. Writes must be idempotent: a resumed run may
// write the same window with the same data again.
type RasterSink interface {
	WriteWindow(ctx context.Context, win raster.Window, data raster.Array) error
}

// BlockSizer is implemented by sources with a native storage block. The
// engine uses it as the default tile size and as the minimum sub-chunk size.
type BlockSizer interface {
	BlockSize() (width, height int)
}

// blockSize returns src's native block, or the default when it has none.
func blockSize(src RasterSource) (width, height int) {
	if bs, ok := src.(BlockSizer); ok {
		w, h := bs.BlockSize()
		if w > 0 && h > 0 {
			return w, h
		}
	}
	return defaultBlockSize, defaultBlockSize
}
