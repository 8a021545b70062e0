package filter

import (
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/focal/raster"
)

// Focal computes r over the size x size neighborhood of every cell of src
// and returns an array of the same shape.
//
// Windows are clipped to the array: cells outside src are left out of the
// sample set rather than padded, so edge and corner cells reduce over a
// partial window. Padding, when wanted, is the caller's job.
//
// size must be odd and positive. A size of 1 is the identity and returns a
// copy of src whatever the reducer.
func Focal(src raster.Array, size int, r Reducer, policy NaNPolicy) raster.Array {
	return FocalClipped(src, raster.Full(src.Cols, src.Rows), size, r, policy)
}

// FocalClipped is Focal with windows clipped to clip instead of to the
// array bounds. clip is in src's local coordinates. Cells of src outside clip
// never contribute a sample, and their output is NaN.
//
// This lets a caller pad a region with filler cells and still get exactly
// the values Focal would produce on the unpadded region.
func FocalClipped(src raster.Array, clip raster.Window, size int, r Reducer, policy NaNPolicy) raster.Array {
	checkSize(size)
	if !r.Valid() {
		panic(fmt.Sprintf("filter: invalid reducer %v", r))
	}
	if src.Empty() {
		return raster.Array{}
	}
	clip = clip.Clip(src.Cols, src.Rows)

	out := raster.NewArrayFilled(src.Rows, src.Cols, math.NaN())
	if clip.Empty() {
		return out
	}

	if size == 1 {
		out.Paste(clip, src.Window(clip))
		return out
	}

	radius := size / 2
	buf := getSampleBuffer(size * size)
	defer putSampleBuffer(buf)

	for row := clip.RowOff; row < clip.Bottom(); row++ {
		r0 := max(row-radius, clip.RowOff)
		r1 := min(row+radius+1, clip.Bottom())
		for col := clip.ColOff; col < clip.Right(); col++ {
			c0 := max(col-radius, clip.ColOff)
			c1 := min(col+radius+1, clip.Right())

			samples, ok := gather(buf.data[:0], src, r0, r1, c0, c1, policy)
			if !ok {
				continue // NaN already in place
			}
			out.Data[row*src.Cols+col] = r.Reduce(samples)
		}
	}
	return out
}

// gather appends the window [r0,r1) x [c0,c1) to dst in row-major order.
// Under Propagate it stops at the first NaN and reports false.
func gather(dst []float64, src raster.Array, r0, r1, c0, c1 int, policy NaNPolicy) ([]float64, bool) {
	for rr := r0; rr < r1; rr++ {
		row := src.Data[rr*src.Cols+c0 : rr*src.Cols+c1]
		for _, v := range row {
			if math.IsNaN(v) {
				if policy == Propagate {
					return dst, false
				}
				continue
			}
			dst = append(dst, v)
		}
	}
	return dst, true
}

func checkSize(size int) {
	if size < 1 || size%2 == 0 {
		panic(fmt.Sprintf("filter: neighborhood size %d must be odd and >= 1", size))
	}
}

// Radius returns the half-width of a size x size neighborhood.
func Radius(size int) int {
	return size / 2
}

// sampleBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type sampleBuffer struct {
	data []float64
}

var sampleBufferPool = sync.Pool{
	New: func() any {
		return &sampleBuffer{data: make([]float64, 0, 49)} // 7x7
	},
}

// getSampleBuffer returns a buffer with capacity for at least n samples.
func getSampleBuffer(n int) *sampleBuffer {
	b := sampleBufferPool.Get().(*sampleBuffer)
	if cap(b.data) < n {
		b.data = make([]float64, 0, n)
	}
	return b
}

func putSampleBuffer(b *sampleBuffer) {
	// Huge neighborhoods are rare; don't keep their buffers alive.
	if cap(b.data) <= 1<<16 {
		b.data = b.data[:0]
		sampleBufferPool.Put(b)
	}
}
