package parallel

import (
	"sync"
	"testing"
)

func TestTileLedger_New(t *testing.T) {
	if NewTileLedger(0) != nil {
		t.Error("NewTileLedger(0) should be nil")
	}
	l := NewTileLedger(130)
	if l.Len() != 130 {
		t.Errorf("Len() = %d, want 130", l.Len())
	}
	if l.Count() != 0 {
		t.Errorf("new ledger Count() = %d, want 0", l.Count())
	}
}

func TestTileLedger_MarkAndDone(t *testing.T) {
	l := NewTileLedger(130)

	for _, i := range []int{0, 63, 64, 129} {
		l.Mark(i)
	}
	l.Mark(-1)  // ignored
	l.Mark(130) // ignored

	for i := range 130 {
		want := i == 0 || i == 63 || i == 64 || i == 129
		if l.Done(i) != want {
			t.Errorf("Done(%d) = %v, want %v", i, l.Done(i), want)
		}
	}
	if l.Count() != 4 {
		t.Errorf("Count() = %d, want 4", l.Count())
	}
	if l.Done(500) {
		t.Error("Done(out of range) should be false")
	}
}

func TestTileLedger_ForEachPending(t *testing.T) {
	l := NewTileLedger(70)
	for i := range 70 {
		if i != 3 && i != 65 && i != 69 {
			l.Mark(i)
		}
	}

	var got []int
	l.ForEachPending(func(i int) { got = append(got, i) })

	want := []int{3, 65, 69}
	if len(got) != len(want) {
		t.Fatalf("pending = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pending = %v, want %v", got, want)
			break
		}
	}

	l.ForEachPending(nil) // must not panic
}

func TestTileLedger_CompleteAndClear(t *testing.T) {
	l := NewTileLedger(3)
	l.Mark(0)
	l.Mark(1)
	if l.Complete() {
		t.Error("Complete() with one tile pending")
	}
	l.Mark(2)
	if !l.Complete() {
		t.Error("Complete() = false with all tiles marked")
	}
	l.Clear()
	if l.Count() != 0 {
		t.Errorf("Count() after Clear = %d", l.Count())
	}
}

func TestTileLedger_ConcurrentMark(t *testing.T) {
	l := NewTileLedger(1000)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := g; i < 1000; i += 8 {
				l.Mark(i)
			}
		}()
	}
	wg.Wait()

	if !l.Complete() {
		t.Errorf("Count() = %d, want 1000", l.Count())
	}
}
