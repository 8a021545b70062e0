package raster

import (
	"slices"
	"testing"
)

func TestMarginsOf(t *testing.T) {
	tests := []struct {
		name  string
		read  Window
		write Window
		want  Margins
	}{
		{"interior", NewWindow(3, 3, 6, 6), NewWindow(4, 4, 4, 4), Margins{1, 1, 1, 1}},
		{"top left", NewWindow(0, 0, 5, 5), NewWindow(0, 0, 4, 4), Margins{Right: 1, Bottom: 1}},
		{"bottom right", NewWindow(7, 7, 3, 3), NewWindow(8, 8, 2, 2), Margins{Left: 1, Top: 1}},
		{"identical", NewWindow(1, 2, 3, 4), NewWindow(1, 2, 3, 4), Margins{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MarginsOf(tt.read, tt.write)
			if m != tt.want {
				t.Errorf("MarginsOf = %+v, want %+v", m, tt.want)
			}
			inner := m.Inner(tt.read.Height, tt.read.Width)
			if got := inner.Translate(tt.read.ColOff, tt.read.RowOff); got != tt.write {
				t.Errorf("Inner maps back to %v, want %v", got, tt.write)
			}
		})
	}
}

func TestMarginsOf_NotEnclosingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MarginsOf should panic when read does not enclose write")
		}
	}()
	MarginsOf(NewWindow(1, 1, 3, 3), NewWindow(0, 1, 2, 2))
}

func TestTrim(t *testing.T) {
	a := seq(4, 5)

	got := Trim(a, Margins{Left: 1, Right: 2, Top: 1, Bottom: 1})
	if r, c := got.Shape(); r != 2 || c != 2 {
		t.Fatalf("Trim shape = %dx%d, want 2x2", r, c)
	}
	if want := []float64{6, 7, 11, 12}; !slices.Equal(got.Data, want) {
		t.Errorf("Trim = %v, want %v", got.Data, want)
	}

	same := Trim(a, Margins{})
	if &same.Data[0] != &a.Data[0] {
		t.Error("zero margins should return the input")
	}
}

func TestTrim_ConsumesArrayPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Trim should panic when margins leave nothing")
		}
	}()
	Trim(NewArray(3, 3), Margins{Left: 2, Right: 1})
}
