// Package raster defines the value types shared by the focal engine:
// windows in grid index space, per-edge margins, dense float arrays and
// the grid descriptor.
//
// Everything here works in integer row/column space. Column offsets grow to
// the right and row offsets grow downward, with (0,0) the top-left cell,
// matching the coordinate convention used across gogpu.
//
// Arrays are row-major: the cell at (row, col) lives at Data[row*Cols+col].
package raster
