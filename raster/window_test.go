package raster

import "testing"

func TestWindow_Edges(t *testing.T) {
	w := NewWindow(2, 3, 4, 5)
	if w.Right() != 6 || w.Bottom() != 8 {
		t.Errorf("Right/Bottom = %d/%d, want 6/8", w.Right(), w.Bottom())
	}
	if w.Area() != 20 {
		t.Errorf("Area() = %d, want 20", w.Area())
	}
	if got := w.String(); got != "Window(col=2 row=3 4x5)" {
		t.Errorf("String() = %q", got)
	}
}

func TestWindow_Empty(t *testing.T) {
	tests := []struct {
		w    Window
		want bool
	}{
		{Window{Width: 1, Height: 1}, false},
		{Window{Width: 0, Height: 3}, true},
		{Window{Width: 3, Height: -1}, true},
		{Window{}, true},
	}
	for _, tt := range tests {
		if got := tt.w.Empty(); got != tt.want {
			t.Errorf("%v.Empty() = %v, want %v", tt.w, got, tt.want)
		}
		if tt.want && tt.w.Area() != 0 {
			t.Errorf("%v.Area() = %d, want 0", tt.w, tt.w.Area())
		}
	}
}

func TestWindow_ExpandClip(t *testing.T) {
	tests := []struct {
		name string
		w    Window
		n    int
		want Window
	}{
		{"interior", NewWindow(4, 4, 2, 2), 1, NewWindow(3, 3, 4, 4)},
		{"top left corner", NewWindow(0, 0, 3, 3), 2, NewWindow(0, 0, 5, 5)},
		{"bottom right corner", NewWindow(8, 7, 2, 3), 1, NewWindow(7, 6, 3, 4)},
		{"larger than grid", NewWindow(4, 4, 1, 1), 50, NewWindow(0, 0, 10, 10)},
		{"zero", NewWindow(1, 2, 3, 4), 0, NewWindow(1, 2, 3, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Expand(tt.n).Clip(10, 10); got != tt.want {
				t.Errorf("Expand(%d).Clip = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestWindow_Intersect(t *testing.T) {
	a := NewWindow(0, 0, 5, 5)
	if got := a.Intersect(NewWindow(3, 4, 5, 5)); got != NewWindow(3, 4, 2, 1) {
		t.Errorf("overlap = %v", got)
	}
	if got := a.Intersect(NewWindow(5, 0, 2, 2)); got != (Window{}) {
		t.Errorf("touching windows should not intersect, got %v", got)
	}
}

func TestWindow_Contains(t *testing.T) {
	outer := NewWindow(2, 2, 6, 6)
	tests := []struct {
		o    Window
		want bool
	}{
		{outer, true},
		{NewWindow(3, 3, 1, 1), true},
		{NewWindow(1, 3, 2, 2), false},
		{NewWindow(7, 7, 2, 1), false},
		{NewWindow(3, 3, 0, 1), false},
	}
	for _, tt := range tests {
		if got := outer.Contains(tt.o); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.o, got, tt.want)
		}
	}
}

func TestWindow_Relative(t *testing.T) {
	origin := NewWindow(10, 20, 50, 50)
	w := NewWindow(12, 25, 3, 4)
	if got := w.Relative(origin); got != NewWindow(2, 5, 3, 4) {
		t.Errorf("Relative = %v", got)
	}
	if got := w.Relative(origin).Translate(10, 20); got != w {
		t.Errorf("Translate did not undo Relative: %v", got)
	}
}
