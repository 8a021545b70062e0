package parallel

import (
	"math"

	"github.com/gogpu/focal/internal/filter"
	"github.com/gogpu/focal/raster"
)

// DefaultChunkTarget is the approximate number of sub-chunks a tile is
// split into for parallel execution.
const DefaultChunkTarget = 100

// Chunk is one sub-block of a tile array, in the array's local coordinates.
type Chunk struct {
	// Interior is the region this chunk produces output for. Interiors of a
	// plan partition the tile array.
	Interior raster.Window

	// Padded is Interior grown by the halo on every edge. It may extend
	// past the tile array; those cells are filled, not read.
	Padded raster.Window
}

// ChunkPlan is the row-major arrangement of sub-chunks covering one tile.
type ChunkPlan struct {
	Rows, Cols       int
	ChunksX, ChunksY int
	Halo             int
	Chunks           []Chunk
}

// PlanChunks splits a rows x cols tile array into sub-chunks.
//
// Every interior is at least blockW x blockH (or the whole dimension, when
// the array is smaller than a block) and the chunk count does not exceed
// target. Extents are split as evenly as possible; leftover cells go to the
// leading chunks.
func PlanChunks(rows, cols, blockW, blockH, target, halo int) ChunkPlan {
	plan := ChunkPlan{Rows: rows, Cols: cols, Halo: halo}
	if rows <= 0 || cols <= 0 {
		return plan
	}
	blockW = max(blockW, 1)
	blockH = max(blockH, 1)
	target = max(target, 1)

	maxX := max(cols/blockW, 1)
	maxY := max(rows/blockH, 1)

	side := max(int(math.Sqrt(float64(target))), 1)
	nx := min(maxX, side)
	ny := min(maxY, max(target/nx, 1))
	// Give unused budget back to the other axis.
	nx = min(maxX, max(target/ny, 1))

	plan.ChunksX = nx
	plan.ChunksY = ny
	plan.Chunks = make([]Chunk, 0, nx*ny)

	colOffs := splitExtent(cols, nx)
	rowOffs := splitExtent(rows, ny)
	for j := range ny {
		for i := range nx {
			interior := raster.NewWindow(colOffs[i], rowOffs[j], colOffs[i+1]-colOffs[i], rowOffs[j+1]-rowOffs[j])
			plan.Chunks = append(plan.Chunks, Chunk{
				Interior: interior,
				Padded:   interior.Expand(halo),
			})
		}
	}
	return plan
}

// splitExtent returns k+1 boundaries dividing n cells into k near-equal runs.
func splitExtent(n, k int) []int {
	offs := make([]int, k+1)
	base, rem := n/k, n%k
	for i := range k {
		size := base
		if i < rem {
			size++
		}
		offs[i+1] = offs[i] + size
	}
	return offs
}

// HaloExecutor evaluates the focal kernel over one tile by splitting it into
// halo-padded sub-chunks and running them on a WorkerPool.
//
// Halos never reach outside the tile array: cells beyond it are NaN filler
// that the kernel is told to exclude, so results match running the kernel on
// the whole tile directly. Tiles already overlap at the grid level, which is
// where cross-tile neighborhoods come from.
type HaloExecutor struct {
	pool    *WorkerPool
	buffers *BufferPool
	blockW  int
	blockH  int
	target  int
}

// NewHaloExecutor creates an executor that runs on pool. blockW and blockH
// are the minimum chunk interior; target bounds the chunks per tile (0 means
// DefaultChunkTarget).
func NewHaloExecutor(pool *WorkerPool, blockW, blockH, target int) *HaloExecutor {
	if target <= 0 {
		target = DefaultChunkTarget
	}
	return &HaloExecutor{
		pool:    pool,
		buffers: NewBufferPool(),
		blockW:  blockW,
		blockH:  blockH,
		target:  target,
	}
}

// Plan returns the chunk plan Execute would use for a rows x cols tile.
func (e *HaloExecutor) Plan(rows, cols, size int) ChunkPlan {
	return PlanChunks(rows, cols, e.blockW, e.blockH, e.target, filter.Radius(size))
}

// Execute runs the kernel over tile and returns an array of the same shape.
// It blocks until every sub-chunk has finished. A sub-chunk that panics
// fails the whole tile with a *TaskPanic.
func (e *HaloExecutor) Execute(tile raster.Array, size int, r filter.Reducer, policy filter.NaNPolicy) (raster.Array, error) {
	if tile.Empty() {
		return raster.Array{}, nil
	}

	plan := e.Plan(tile.Rows, tile.Cols, size)
	halo := plan.Halo
	trim := raster.Margins{Left: halo, Right: halo, Top: halo, Bottom: halo}
	tileBounds := raster.Full(tile.Cols, tile.Rows)

	results := make([]raster.Array, len(plan.Chunks))
	work := make([]func(), len(plan.Chunks))
	for i, c := range plan.Chunks {
		work[i] = func() {
			buf := e.buffers.Get(c.Padded.Height, c.Padded.Width)
			defer e.buffers.Put(buf)

			inTile := c.Padded.Intersect(tileBounds)
			local := inTile.Relative(c.Padded)
			buf.Paste(local, tile.Window(inTile))

			padded := filter.FocalClipped(buf, local, size, r, policy)
			results[i] = raster.Trim(padded, trim)
		}
	}

	if err := e.pool.ExecuteAll(work); err != nil {
		return raster.Array{}, err
	}

	out := raster.NewArray(tile.Rows, tile.Cols)
	for i, c := range plan.Chunks {
		out.Paste(c.Interior, results[i])
	}
	return out, nil
}
