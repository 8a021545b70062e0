package raster

import "fmt"

// Window is a rectangular region of a grid in index space.
//
// A window used against a concrete grid must satisfy
// ColOff+Width <= grid width and RowOff+Height <= grid height.
type Window struct {
	ColOff int
	RowOff int
	Width  int
	Height int
}

// NewWindow returns the window with the given offsets and size.
func NewWindow(colOff, rowOff, width, height int) Window {
	return Window{ColOff: colOff, RowOff: rowOff, Width: width, Height: height}
}

// Full returns the window covering a whole width x height grid.
func Full(width, height int) Window {
	return Window{Width: width, Height: height}
}

// Right returns the exclusive right column.
func (w Window) Right() int { return w.ColOff + w.Width }

// Bottom returns the exclusive bottom row.
func (w Window) Bottom() int { return w.RowOff + w.Height }

// Empty reports whether the window covers no cells.
func (w Window) Empty() bool {
	return w.Width <= 0 || w.Height <= 0
}

// Area returns the number of cells in the window, or 0 if it is empty.
func (w Window) Area() int {
	if w.Empty() {
		return 0
	}
	return w.Width * w.Height
}

// Expand grows the window by n cells on every edge. Offsets may become
// negative; use Clip or Intersect to bring the result back into a grid.
func (w Window) Expand(n int) Window {
	return Window{
		ColOff: w.ColOff - n,
		RowOff: w.RowOff - n,
		Width:  w.Width + 2*n,
		Height: w.Height + 2*n,
	}
}

// Intersect returns the overlap of w and o. The result is the zero
// Window when they do not overlap.
func (w Window) Intersect(o Window) Window {
	x1 := max(w.ColOff, o.ColOff)
	y1 := max(w.RowOff, o.RowOff)
	x2 := min(w.Right(), o.Right())
	y2 := min(w.Bottom(), o.Bottom())
	if x1 >= x2 || y1 >= y2 {
		return Window{}
	}
	return Window{ColOff: x1, RowOff: y1, Width: x2 - x1, Height: y2 - y1}
}

// Clip intersects the window with a width x height grid.
func (w Window) Clip(width, height int) Window {
	return w.Intersect(Full(width, height))
}

// Contains reports whether o lies entirely inside w.
// An empty o is never contained.
func (w Window) Contains(o Window) bool {
	if o.Empty() || w.Empty() {
		return false
	}
	return o.ColOff >= w.ColOff && o.RowOff >= w.RowOff &&
		o.Right() <= w.Right() && o.Bottom() <= w.Bottom()
}

// Translate shifts the window by (dx, dy).
func (w Window) Translate(dx, dy int) Window {
	w.ColOff += dx
	w.RowOff += dy
	return w
}

// Relative returns w expressed in the local coordinates of origin,
// i.e. translated so that origin's top-left corner becomes (0,0).
func (w Window) Relative(origin Window) Window {
	return w.Translate(-origin.ColOff, -origin.RowOff)
}

func (w Window) String() string {
	return fmt.Sprintf("Window(col=%d row=%d %dx%d)", w.ColOff, w.RowOff, w.Width, w.Height)
}
