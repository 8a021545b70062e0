// Package focal computes focal (moving-window) statistics over 2D grids that
// are too large, or too slow, to process in a single pass.
//
// # Overview
//
// An Engine reads a grid from a RasterSource, evaluates a reducer such as
// the standard deviation over the n x n neighborhood of every cell, and
// writes a float64 grid of the same extent to a RasterSink. Cells whose
// value is at or below the grid's no-data sentinel (plus an offset) are
// treated as missing.
//
// # Quick Start
//
//	src, err := gridio.NewMemGrid(desc, data)
//	if err != nil {
//	    return err
//	}
//	dst := gridio.NewMemGridLike(desc)
//
//	eng, err := focal.New(src, dst,
//	    focal.WithSize(5),
//	    focal.WithReducer(focal.StdDev),
//	    focal.WithWorkers(8),
//	)
//	if err != nil {
//	    return err
//	}
//	res, err := eng.Run(ctx)
//
// # Execution strategies
//
// The worker count picks one of three strategies, fixed for the run:
//
//   - workers < 1: WholeGrid. One read, one kernel pass, one write.
//   - workers == 1: SequentialTiled. Tiles in row-major order, one at a time.
//   - workers > 1: ChunkParallelTiled. Same tile loop, but each tile is split
//     into halo-padded sub-chunks evaluated on a worker pool.
//
// All three produce identical output. Tiles are never processed
// concurrently, so peak memory stays around one tile plus its halo
// regardless of worker count.
//
// # Tiling
//
// Write windows partition the grid. Each read window is its write window
// grown by the neighborhood radius and clipped to the grid; the result is
// trimmed back by the tile's margins before writing.
//
// # Errors
//
// Configuration errors are reported by New before any I/O. A failed read or
// write stops the run with a *TileError naming the window; tiles already
// written stay written and the run can be resumed with WithResume.
package focal
