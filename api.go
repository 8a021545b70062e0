package focal

import (
	"github.com/gogpu/focal/internal/filter"
	"github.com/gogpu/focal/internal/parallel"
)

// Tile is one unit of work in a plan: its read window, write window and
// margins. See Engine.Plan.
type Tile = parallel.Tile

// Reducer selects the statistic computed over each neighborhood.
type Reducer = filter.Reducer

// Available reducers. Variance and StdDev are population statistics.
const (
	Mean     = filter.Mean
	Variance = filter.Variance
	StdDev   = filter.StdDev
	Min      = filter.Min
	Max      = filter.Max
	Range    = filter.Range
)

// ParseReducer maps a reducer name such as "std" or "mean" to a Reducer.
func ParseReducer(name string) (Reducer, error) {
	return filter.ParseReducer(name)
}

// defaultBlockSize is the tile edge used when a source reports no block.
const defaultBlockSize = parallel.DefaultBlockSize
