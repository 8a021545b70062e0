package raster

import "math"

// MaskNoData replaces every cell at or below noData+offset with NaN, in place,
// and returns the number of cells it masked. Cells that are already NaN are
// left alone and not counted.
//
// An offset of 0 masks exact matches and anything below the sentinel.
func MaskNoData(a Array, noData, offset float64) int {
	threshold := noData + offset
	n := 0
	for i, v := range a.Data {
		if v <= threshold {
			a.Data[i] = math.NaN()
			n++
		}
	}
	return n
}

// MaskGrid applies MaskNoData using the descriptor's sentinel. It is a no-op
// for grids without a no-data value.
func MaskGrid(a Array, g GridDescriptor, offset float64) int {
	if !g.HasNoData {
		return 0
	}
	return MaskNoData(a, g.NoData, offset)
}
