package raster

import (
	"fmt"
	"math"
)

// Array is a dense row-major 2D array of float64 values.
type Array struct {
	Rows int
	Cols int
	Data []float64
}

// NewArray allocates a zeroed rows x cols array.
// Non-positive dimensions yield an empty array.
func NewArray(rows, cols int) Array {
	if rows <= 0 || cols <= 0 {
		return Array{}
	}
	return Array{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// NewArrayFilled allocates a rows x cols array with every cell set to v.
func NewArrayFilled(rows, cols int, v float64) Array {
	a := NewArray(rows, cols)
	a.Fill(v)
	return a
}

// FromRows builds an array from a slice of equal-length rows.
// It panics if the rows are ragged.
func FromRows(rows [][]float64) Array {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Array{}
	}
	a := NewArray(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != a.Cols {
			panic(fmt.Sprintf("raster: row %d has %d columns, want %d", r, len(row), a.Cols))
		}
		copy(a.Data[r*a.Cols:], row)
	}
	return a
}

// Shape returns (rows, cols).
func (a Array) Shape() (rows, cols int) {
	return a.Rows, a.Cols
}

// Empty reports whether the array holds no cells.
func (a Array) Empty() bool {
	return a.Rows <= 0 || a.Cols <= 0
}

// SameShape reports whether a matches the extent of win.
func (a Array) SameShape(win Window) bool {
	return a.Rows == win.Height && a.Cols == win.Width && len(a.Data) == win.Area()
}

// At returns the value at (row, col). It panics when out of range,
// like a slice index.
func (a Array) At(row, col int) float64 {
	return a.Data[a.offset(row, col)]
}

// Set stores v at (row, col).
func (a Array) Set(row, col int, v float64) {
	a.Data[a.offset(row, col)] = v
}

func (a Array) offset(row, col int) int {
	if row < 0 || row >= a.Rows || col < 0 || col >= a.Cols {
		panic(fmt.Sprintf("raster: index (%d,%d) out of range for %dx%d array", row, col, a.Rows, a.Cols))
	}
	return row*a.Cols + col
}

// Row returns the backing slice for one row.
func (a Array) Row(row int) []float64 {
	start := a.offset(row, 0)
	return a.Data[start : start+a.Cols]
}

// Fill sets every cell to v.
func (a Array) Fill(v float64) {
	for i := range a.Data {
		a.Data[i] = v
	}
}

// Clone returns a deep copy.
func (a Array) Clone() Array {
	if a.Empty() {
		return Array{}
	}
	c := NewArray(a.Rows, a.Cols)
	copy(c.Data, a.Data)
	return c
}

// Window copies the cells of win, given in a's local coordinates,
// into a new array. It panics if win is not inside a.
func (a Array) Window(win Window) Array {
	if !Full(a.Cols, a.Rows).Contains(win) {
		panic(fmt.Sprintf("raster: %v outside %dx%d array", win, a.Rows, a.Cols))
	}
	out := NewArray(win.Height, win.Width)
	for r := range win.Height {
		src := (win.RowOff+r)*a.Cols + win.ColOff
		copy(out.Data[r*win.Width:(r+1)*win.Width], a.Data[src:src+win.Width])
	}
	return out
}

// Paste copies src into a at the position of win (a's local coordinates).
// src must have win's shape.
func (a Array) Paste(win Window, src Array) {
	if !src.SameShape(win) {
		panic(fmt.Sprintf("raster: paste of %dx%d array into %v", src.Rows, src.Cols, win))
	}
	if !Full(a.Cols, a.Rows).Contains(win) {
		panic(fmt.Sprintf("raster: %v outside %dx%d array", win, a.Rows, a.Cols))
	}
	for r := range win.Height {
		dst := (win.RowOff+r)*a.Cols + win.ColOff
		copy(a.Data[dst:dst+win.Width], src.Data[r*win.Width:(r+1)*win.Width])
	}
}

// CountNaN returns how many cells hold NaN.
func (a Array) CountNaN() int {
	n := 0
	for _, v := range a.Data {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}
