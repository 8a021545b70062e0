package raster

import "fmt"

// Margins are the per-edge trim amounts that shrink a halo-expanded read
// region back down to its write region.
type Margins struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// MarginsOf derives the margins between a read window and the write window
// it was expanded from.
//
// A negative edge means read does not enclose write, which can only come
// from a planning defect, so MarginsOf panics instead of returning an error.
func MarginsOf(read, write Window) Margins {
	m := Margins{
		Left:   write.ColOff - read.ColOff,
		Top:    write.RowOff - read.RowOff,
		Right:  read.Right() - write.Right(),
		Bottom: read.Bottom() - write.Bottom(),
	}
	if m.Left < 0 || m.Right < 0 || m.Top < 0 || m.Bottom < 0 {
		panic(fmt.Sprintf("raster: read %v does not enclose write %v (margins %+v)", read, write, m))
	}
	return m
}

// Zero reports whether no trimming is needed.
func (m Margins) Zero() bool {
	return m == Margins{}
}

// Inner returns the window left after trimming m from a rows x cols array,
// in the array's local coordinates.
func (m Margins) Inner(rows, cols int) Window {
	return Window{
		ColOff: m.Left,
		RowOff: m.Top,
		Width:  cols - m.Left - m.Right,
		Height: rows - m.Top - m.Bottom,
	}
}

// Trim returns a copy of a[m.Top : rows-m.Bottom, m.Left : cols-m.Right].
// Zero margins return a itself. It panics if the margins consume the whole
// array.
func Trim(a Array, m Margins) Array {
	if m.Zero() {
		return a
	}
	inner := m.Inner(a.Rows, a.Cols)
	if inner.Empty() || m.Left < 0 || m.Top < 0 || m.Right < 0 || m.Bottom < 0 {
		panic(fmt.Sprintf("raster: margins %+v do not fit a %dx%d array", m, a.Rows, a.Cols))
	}
	return a.Window(inner)
}
