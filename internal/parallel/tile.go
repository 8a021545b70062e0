// Package parallel provides the tiling and parallel execution machinery of
// the focal engine.
//
// A grid is split into write tiles that partition it exactly, each paired
// with a read window grown by the neighborhood radius. Within one tile, the
// HaloExecutor splits the array into sub-chunks, pads each with a halo and
// runs the kernel on a WorkerPool. Key pieces:
//
//   - Plan / PlanWindows: row-major tile planning with clipped overlap
//   - HaloExecutor / PlanChunks: halo-padded sub-chunk execution
//   - WorkerPool: per-worker queues with work stealing
//   - BufferPool: sync.Pool backed reuse of chunk buffers
//   - TileLedger: lock-free bitmap of written tiles
//
// Thread safety: planning functions are pure. WorkerPool, BufferPool and
// TileLedger are safe for concurrent use. HaloExecutor may be shared but
// processes one tile per Execute call.
package parallel

import (
	"fmt"

	"github.com/gogpu/focal/raster"
)

// DefaultBlockSize is the tile edge used when a source does not report a
// native storage block.
const DefaultBlockSize = 256

// Tile is one unit of work: the window read from the source, the window
// written to the sink, and the margins separating them.
//
// Write windows across a plan partition the grid. Read is Write grown by
// the neighborhood radius on every edge and clipped to the grid, so an edge
// margin is zero wherever the grid boundary cut the growth short.
type Tile struct {
	// Index is the tile's position in planner (row-major) order.
	Index int

	// Read is the halo-expanded window fetched from the source.
	Read raster.Window

	// Write is the non-overlapping window stored to the sink.
	Write raster.Window

	// Margins trims a Read-shaped result down to Write.
	Margins raster.Margins
}

// Cells returns the number of cells the tile writes.
func (t Tile) Cells() int {
	return t.Write.Area()
}

// ReadCells returns the number of cells the tile reads.
func (t Tile) ReadCells() int {
	return t.Read.Area()
}

func (t Tile) String() string {
	return fmt.Sprintf("Tile#%d(read=%v write=%v)", t.Index, t.Read, t.Write)
}
