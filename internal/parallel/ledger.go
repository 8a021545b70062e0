package parallel

import (
	"math/bits"
	"sync/atomic"
)

// TileLedger records which tiles of a plan have been written, using an
// atomic bitmap with one bit per tile index.
//
// All methods are safe for concurrent use without external synchronization.
// A ledger lets a failed run be resumed without rewriting finished tiles.
type TileLedger struct {
	// words packs 64 tiles per word. Bit index = tile index.
	words []atomic.Uint64

	n int
}

// NewTileLedger creates a ledger for n tiles, all initially pending.
// Returns nil if n is not positive.
func NewTileLedger(n int) *TileLedger {
	if n <= 0 {
		return nil
	}
	return &TileLedger{
		words: make([]atomic.Uint64, (n+63)/64),
		n:     n,
	}
}

// Mark records tile i as written. Out-of-range indices are ignored.
func (l *TileLedger) Mark(i int) {
	if i < 0 || i >= l.n {
		return
	}
	l.words[i/64].Or(1 << (i & 63))
}

// Done reports whether tile i has been written.
func (l *TileLedger) Done(i int) bool {
	if i < 0 || i >= l.n {
		return false
	}
	return l.words[i/64].Load()&(1<<(i&63)) != 0
}

// Count returns the number of written tiles.
func (l *TileLedger) Count() int {
	count := 0
	for i := range l.words {
		count += bits.OnesCount64(l.words[i].Load())
	}
	return count
}

// Complete reports whether every tile has been written.
func (l *TileLedger) Complete() bool {
	return l.Count() == l.n
}

// Clear marks every tile as pending again.
func (l *TileLedger) Clear() {
	for i := range l.words {
		l.words[i].Store(0)
	}
}

// Len returns the number of tiles tracked.
func (l *TileLedger) Len() int {
	return l.n
}

// ForEachPending calls fn with the index of every tile not yet written,
// in ascending order.
func (l *TileLedger) ForEachPending(fn func(i int)) {
	if fn == nil {
		return
	}
	for wordIdx := range l.words {
		// Invert so pending tiles become set bits.
		word := ^l.words[wordIdx].Load()
		for word != 0 {
			bitIdx := bits.TrailingZeros64(word)
			i := wordIdx*64 + bitIdx
			if i >= l.n {
				// Beyond valid tiles (in partial last word)
				break
			}
			fn(i)
			word &^= 1 << bitIdx
		}
	}
}
