package raster

import "fmt"

// DType names the numeric storage kind of a source grid.
type DType uint8

// Supported storage kinds. Engine output is always Float64.
const (
	Float64 DType = iota
	Float32
	Int32
	Int16
	Uint16
	Uint8
)

// String returns the conventional lower-case name of the kind.
func (d DType) String() string {
	switch d {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int32:
		return "int32"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Uint8:
		return "uint8"
	default:
		return fmt.Sprintf("DType(%d)", uint8(d))
	}
}

// GridDescriptor describes a full grid. It is read-only for the duration
// of a run.
type GridDescriptor struct {
	Width  int
	Height int

	// NoData is the sentinel value marking missing cells. It is only
	// meaningful when HasNoData is set.
	NoData    float64
	HasNoData bool

	DType DType
}

// Bounds returns the window covering the whole grid.
func (g GridDescriptor) Bounds() Window {
	return Full(g.Width, g.Height)
}

// Cells returns Width*Height.
func (g GridDescriptor) Cells() int64 {
	return int64(g.Width) * int64(g.Height)
}

// Validate reports whether the grid has usable dimensions.
func (g GridDescriptor) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, g.Width, g.Height)
	}
	return nil
}
