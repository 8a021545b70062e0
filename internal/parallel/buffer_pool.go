package parallel

import (
	"math"
	"sync"

	"github.com/gogpu/focal/raster"
)

// BufferPool recycles the padded sub-chunk arrays used by HaloExecutor.
//
// Buffers are pooled per shape, since a tile's chunks come in at most four
// distinct sizes and neighboring tiles repeat them.
//
// Thread safety: BufferPool is safe for concurrent use.
type BufferPool struct {
	// pools holds one sync.Pool per shape.
	// Key format: (rows << 32) | cols
	pools sync.Map
}

// NewBufferPool creates an empty buffer pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{}
}

// Get returns a rows x cols array with every cell set to NaN.
// Returns an empty array for non-positive dimensions.
func (p *BufferPool) Get(rows, cols int) raster.Array {
	if rows <= 0 || cols <= 0 {
		return raster.Array{}
	}
	a := p.poolFor(rows, cols).Get().(*raster.Array)
	a.Fill(math.NaN())
	return *a
}

// Put returns a buffer for reuse. Empty arrays are ignored.
func (p *BufferPool) Put(a raster.Array) {
	if a.Empty() || len(a.Data) != a.Rows*a.Cols {
		return
	}
	if pool, ok := p.pools.Load(bufferKey(a.Rows, a.Cols)); ok {
		pool.(*sync.Pool).Put(&a)
	}
	// If pool doesn't exist, let GC reclaim the buffer
}

// bufferKey packs a shape into a map key.
func bufferKey(rows, cols int) uint64 {
	return uint64(rows)<<32 | uint64(uint32(cols)) //nolint:gosec // dimensions are positive
}

func (p *BufferPool) poolFor(rows, cols int) *sync.Pool {
	key := bufferKey(rows, cols)
	if pool, ok := p.pools.Load(key); ok {
		return pool.(*sync.Pool)
	}

	newPool := &sync.Pool{
		New: func() any {
			a := raster.NewArray(rows, cols)
			return &a
		},
	}

	// Try to store; if another goroutine beat us, use theirs
	actual, _ := p.pools.LoadOrStore(key, newPool)
	return actual.(*sync.Pool)
}
