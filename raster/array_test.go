package raster

import (
	"math"
	"slices"
	"testing"
)

func seq(rows, cols int) Array {
	a := NewArray(rows, cols)
	for i := range a.Data {
		a.Data[i] = float64(i)
	}
	return a
}

func TestNewArray(t *testing.T) {
	a := NewArray(2, 3)
	if a.Rows != 2 || a.Cols != 3 || len(a.Data) != 6 {
		t.Fatalf("NewArray(2, 3) = %dx%d len %d", a.Rows, a.Cols, len(a.Data))
	}
	if !NewArray(0, 3).Empty() || !NewArray(3, -1).Empty() {
		t.Error("non-positive dimensions should give an empty array")
	}
	f := NewArrayFilled(2, 2, math.NaN())
	if f.CountNaN() != 4 {
		t.Errorf("CountNaN() = %d, want 4", f.CountNaN())
	}
}

func TestFromRows(t *testing.T) {
	a := FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	if r, c := a.Shape(); r != 3 || c != 2 {
		t.Fatalf("Shape() = %d, %d", r, c)
	}
	if a.At(2, 1) != 6 {
		t.Errorf("At(2, 1) = %v", a.At(2, 1))
	}

	defer func() {
		if recover() == nil {
			t.Error("ragged rows should panic")
		}
	}()
	FromRows([][]float64{{1, 2}, {3}})
}

func TestArray_AtOutOfRangePanics(t *testing.T) {
	a := NewArray(2, 2)
	for _, idx := range [][2]int{{-1, 0}, {2, 0}, {0, 2}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("At(%d, %d) did not panic", idx[0], idx[1])
				}
			}()
			a.At(idx[0], idx[1])
		}()
	}
}

func TestArray_WindowPaste(t *testing.T) {
	a := seq(4, 5)
	win := NewWindow(1, 1, 3, 2)

	sub := a.Window(win)
	if want := []float64{6, 7, 8, 11, 12, 13}; !slices.Equal(sub.Data, want) {
		t.Errorf("Window = %v, want %v", sub.Data, want)
	}

	sub.Data[0] = -1
	if a.At(1, 1) != 6 {
		t.Error("Window must copy")
	}

	b := NewArray(4, 5)
	b.Paste(win, a.Window(win))
	if b.At(2, 3) != 13 || b.At(0, 0) != 0 || b.At(3, 4) != 0 {
		t.Errorf("Paste wrote outside %v: %v", win, b.Data)
	}
}

func TestArray_PasteShapeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Paste with wrong shape should panic")
		}
	}()
	NewArray(3, 3).Paste(NewWindow(0, 0, 2, 2), NewArray(3, 1))
}

func TestArray_RowAndClone(t *testing.T) {
	a := seq(3, 3)
	if got := a.Row(1); !slices.Equal(got, []float64{3, 4, 5}) {
		t.Errorf("Row(1) = %v", got)
	}
	c := a.Clone()
	c.Set(0, 0, 99)
	if a.At(0, 0) != 0 {
		t.Error("Clone must not share storage")
	}
	if !(Array{}).Clone().Empty() {
		t.Error("Clone of empty array should be empty")
	}
}

func TestArray_SameShape(t *testing.T) {
	a := NewArray(2, 3)
	if !a.SameShape(NewWindow(5, 5, 3, 2)) {
		t.Error("2x3 array should match a 3-wide 2-high window")
	}
	if a.SameShape(NewWindow(0, 0, 2, 3)) {
		t.Error("transposed window should not match")
	}
}
