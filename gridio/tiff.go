package gridio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"golang.org/x/image/tiff"

	"github.com/gogpu/focal/raster"
)

// ErrNoFiniteValues is returned by SaveTIFF for an array with no finite cell.
var ErrNoFiniteValues = errors.New("gridio: array has no finite values")

// LoadTIFF decodes a TIFF image into a grid. 8- and 16-bit grayscale images
// keep their raw sample values; any other color model is converted to
// 16-bit luminance.
func LoadTIFF(r io.Reader) (*MemGrid, error) {
	img, err := tiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("gridio: decode tiff: %w", err)
	}

	b := img.Bounds()
	desc := raster.GridDescriptor{Width: b.Dx(), Height: b.Dy()}
	data := raster.NewArray(desc.Height, desc.Width)

	switch m := img.(type) {
	case *image.Gray:
		desc.DType = raster.Uint8
		for y := range desc.Height {
			for x := range desc.Width {
				data.Set(y, x, float64(m.GrayAt(b.Min.X+x, b.Min.Y+y).Y))
			}
		}
	case *image.Gray16:
		desc.DType = raster.Uint16
		for y := range desc.Height {
			for x := range desc.Width {
				data.Set(y, x, float64(m.Gray16At(b.Min.X+x, b.Min.Y+y).Y))
			}
		}
	default:
		desc.DType = raster.Uint16
		for y := range desc.Height {
			for x := range desc.Width {
				c := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
				data.Set(y, x, float64(c.Y))
			}
		}
	}

	return NewMemGrid(desc, data)
}

// ReadTIFFFile opens path and decodes it with LoadTIFF.
func ReadTIFFFile(path string) (*MemGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gridio: %w", err)
	}
	defer f.Close()
	return LoadTIFF(f)
}

// Scale maps 16-bit TIFF samples back to grid values:
// value = Min + (sample-1) * (Max-Min) / 65534. Sample 0 is NaN.
type Scale struct {
	Min float64
	Max float64
}

// Value converts a stored sample back to a grid value.
func (s Scale) Value(sample uint16) float64 {
	if sample == 0 {
		return math.NaN()
	}
	if s.Max == s.Min {
		return s.Min
	}
	return s.Min + float64(sample-1)*(s.Max-s.Min)/65534
}

func (s Scale) sample(v float64) uint16 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if s.Max == s.Min {
		return 1
	}
	return uint16(1 + math.Round((v-s.Min)/(s.Max-s.Min)*65534))
}

// SaveTIFF writes a as a Deflate-compressed 16-bit grayscale TIFF. Finite
// values are scaled linearly onto 1..65535 and NaN becomes 0. The returned
// Scale inverts the mapping.
func SaveTIFF(w io.Writer, a raster.Array) (Scale, error) {
	s := Scale{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range a.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	if s.Min > s.Max {
		return Scale{}, ErrNoFiniteValues
	}

	img := image.NewGray16(image.Rect(0, 0, a.Cols, a.Rows))
	for y := range a.Rows {
		for x := range a.Cols {
			img.SetGray16(x, y, color.Gray16{Y: s.sample(a.At(y, x))})
		}
	}

	if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return Scale{}, fmt.Errorf("gridio: encode tiff: %w", err)
	}
	return s, nil
}

// WriteTIFFFile writes a to path with SaveTIFF.
func WriteTIFFFile(path string, a raster.Array) (s Scale, err error) {
	f, err := os.Create(path)
	if err != nil {
		return Scale{}, fmt.Errorf("gridio: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("gridio: %w", cerr)
		}
	}()
	return SaveTIFF(f, a)
}
