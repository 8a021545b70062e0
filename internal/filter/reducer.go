package filter

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Reducer selects the statistic computed over each neighborhood.
//
// The set is closed: every switch over Reducer in this package is exhaustive
// and an unknown value panics.
type Reducer uint8

const (
	// Mean is the arithmetic mean of the window.
	Mean Reducer = iota

	// Variance is the population variance (divisor n).
	Variance

	// StdDev is the population standard deviation.
	StdDev

	// Min is the smallest value in the window.
	Min

	// Max is the largest value in the window.
	Max

	// Range is Max - Min.
	Range

	numReducers
)

var reducerNames = [numReducers]string{
	Mean:     "mean",
	Variance: "variance",
	StdDev:   "std",
	Min:      "min",
	Max:      "max",
	Range:    "range",
}

// String returns the short name used on the command line and in configs.
func (r Reducer) String() string {
	if r.Valid() {
		return reducerNames[r]
	}
	return fmt.Sprintf("Reducer(%d)", uint8(r))
}

// Valid reports whether r is one of the declared reducers.
func (r Reducer) Valid() bool {
	return r < numReducers
}

// ParseReducer maps a name (case-insensitive) to a Reducer.
// "stddev" and "var" are accepted as aliases.
func ParseReducer(name string) (Reducer, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "stddev":
		return StdDev, nil
	case "var":
		return Variance, nil
	default:
		for i, s := range reducerNames {
			if s == n {
				return Reducer(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownReducer, name)
}

// Reduce applies r to samples. An empty sample set yields NaN.
//
// Variance and StdDev use gonum's two-pass corrected algorithm, which stays
// accurate when the values share a large common offset.
func (r Reducer) Reduce(samples []float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	switch r {
	case Mean:
		return stat.Mean(samples, nil)
	case Variance:
		_, v := stat.PopMeanVariance(samples, nil)
		return v
	case StdDev:
		_, v := stat.PopMeanVariance(samples, nil)
		return math.Sqrt(v)
	case Min:
		return floats.Min(samples)
	case Max:
		return floats.Max(samples)
	case Range:
		return floats.Max(samples) - floats.Min(samples)
	default:
		panic(fmt.Sprintf("filter: unhandled %v", r))
	}
}

// NaNPolicy controls how a window that is only partly NaN is reduced.
type NaNPolicy uint8

const (
	// Propagate makes any NaN in a window produce NaN for that cell.
	Propagate NaNPolicy = iota

	// Ignore reduces over the non-NaN samples only. A window with no
	// finite samples still produces NaN.
	Ignore
)

func (p NaNPolicy) String() string {
	switch p {
	case Propagate:
		return "propagate"
	case Ignore:
		return "ignore"
	default:
		return fmt.Sprintf("NaNPolicy(%d)", uint8(p))
	}
}

// MarshalText implements encoding.TextMarshaler so reducers read naturally
// in JSON configs.
func (r Reducer) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownReducer, uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseReducer.
func (r *Reducer) UnmarshalText(text []byte) error {
	parsed, err := ParseReducer(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
