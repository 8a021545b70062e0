// Package filter implements the focal statistics kernel: a moving-window
// reducer evaluated at every cell of an in-memory array.
//
// The kernel is NaN-aware. Callers mask no-data cells to NaN first; the
// NaNPolicy then decides whether a window touching a NaN is invalid
// (Propagate) or reduced over its remaining samples (Ignore).
//
// Supported statistics:
//   - Mean, Variance, StdDev (population, two-pass accumulation)
//   - Min, Max, Range
//
// The kernel is a pure function of its inputs and is safe to call from many
// goroutines at once.
package filter
