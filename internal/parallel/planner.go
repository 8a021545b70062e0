package parallel

import (
	"fmt"
	"slices"

	"github.com/gogpu/focal/raster"
)

// PlanWindows divides a width x height grid into tileW x tileH tiles in
// row-major order (left-to-right, top-to-bottom).
//
// Each nominal tile is grown by overlap cells on every edge and then clipped
// to the grid. Tiles in the last column and row are smaller when the grid is
// not a multiple of the tile size. No empty window is ever produced.
//
// Returns nil for non-positive dimensions or a negative overlap.
func PlanWindows(width, height, tileW, tileH, overlap int) []raster.Window {
	if width <= 0 || height <= 0 || tileW <= 0 || tileH <= 0 || overlap < 0 {
		return nil
	}

	tilesX := (width + tileW - 1) / tileW
	tilesY := (height + tileH - 1) / tileH

	windows := make([]raster.Window, 0, tilesX*tilesY)
	for ty := range tilesY {
		for tx := range tilesX {
			w := raster.NewWindow(tx*tileW, ty*tileH, tileW, tileH)
			if overlap > 0 {
				w = w.Expand(overlap)
			}
			windows = append(windows, w.Clip(width, height))
		}
	}
	return windows
}

// Plan builds the tile sequence for a grid, a tile size and an odd
// neighborhood size.
//
// Read windows are planned with an overlap of size/2 and write windows with
// none, from the same tile size, and paired by position. That positional
// pairing is what ties each read to its write; the returned slice must be
// consumed in order and never reordered piecewise.
//
// Configuration problems are returned as errors. A plan that fails its own
// partition check panics.
func Plan(grid raster.GridDescriptor, tileW, tileH, size int) ([]Tile, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTileSize, tileW, tileH)
	}
	if size < 1 || size%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNeighborhood, size)
	}

	reads := PlanWindows(grid.Width, grid.Height, tileW, tileH, size/2)
	writes := PlanWindows(grid.Width, grid.Height, tileW, tileH, 0)
	if len(reads) != len(writes) {
		panic(fmt.Sprintf("parallel: %d read windows for %d write windows", len(reads), len(writes)))
	}

	tiles := make([]Tile, len(writes))
	for i := range writes {
		tiles[i] = Tile{
			Index:   i,
			Read:    reads[i],
			Write:   writes[i],
			Margins: raster.MarginsOf(reads[i], writes[i]),
		}
	}

	if err := VerifyPartition(tiles, grid.Width, grid.Height); err != nil {
		panic(err.Error())
	}
	return tiles, nil
}

// VerifyPartition checks that the write windows of tiles cover the grid
// exactly once and that every tile's margins shrink its read window to its
// write window.
//
// The check works on the coarse grid formed by all distinct tile edges, so
// its cost scales with the number of tiles rather than the number of cells.
func VerifyPartition(tiles []Tile, width, height int) error {
	bounds := raster.Full(width, height)
	xs := []int{0, width}
	ys := []int{0, height}

	for _, t := range tiles {
		w := t.Write
		if !bounds.Contains(w) {
			return fmt.Errorf("%w: tile %d write %v outside %dx%d grid", ErrPartition, t.Index, w, width, height)
		}
		if !t.Read.Contains(w) {
			return fmt.Errorf("%w: tile %d read %v does not enclose write %v", ErrPartition, t.Index, t.Read, w)
		}
		m := t.Margins
		if t.Read.Width-m.Left-m.Right != w.Width || t.Read.Height-m.Top-m.Bottom != w.Height {
			return fmt.Errorf("%w: tile %d margins %+v do not map %v onto %v", ErrPartition, t.Index, m, t.Read, w)
		}
		xs = append(xs, w.ColOff, w.Right())
		ys = append(ys, w.RowOff, w.Bottom())
	}

	slices.Sort(xs)
	xs = slices.Compact(xs)
	slices.Sort(ys)
	ys = slices.Compact(ys)

	cols := len(xs) - 1
	cover := make([]int32, cols*(len(ys)-1))

	for _, t := range tiles {
		w := t.Write
		i0, _ := slices.BinarySearch(xs, w.ColOff)
		i1, _ := slices.BinarySearch(xs, w.Right())
		j0, _ := slices.BinarySearch(ys, w.RowOff)
		j1, _ := slices.BinarySearch(ys, w.Bottom())
		for j := j0; j < j1; j++ {
			for i := i0; i < i1; i++ {
				cover[j*cols+i]++
				if cover[j*cols+i] > 1 {
					return fmt.Errorf("%w: tile %d write %v overlaps another tile", ErrPartition, t.Index, w)
				}
			}
		}
	}

	for idx, c := range cover {
		if c == 0 {
			i, j := idx%cols, idx/cols
			gap := raster.NewWindow(xs[i], ys[j], xs[i+1]-xs[i], ys[j+1]-ys[j])
			return fmt.Errorf("%w: %v is not covered", ErrPartition, gap)
		}
	}
	return nil
}
