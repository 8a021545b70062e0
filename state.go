package focal

import "fmt"

// State is an engine's position in its run lifecycle:
//
//	Idle -> Planning -> {WholeGrid | SequentialTiled | ChunkParallelTiled} -> Done
//
// Failed is reachable from every state except Idle.
type State int32

const (
	Idle State = iota
	Planning
	WholeGrid
	SequentialTiled
	ChunkParallelTiled
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Planning:
		return "planning"
	case WholeGrid:
		return "whole-grid"
	case SequentialTiled:
		return "sequential-tiled"
	case ChunkParallelTiled:
		return "chunk-parallel-tiled"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

// Mode is an execution strategy.
type Mode uint8

const (
	// ModeWholeGrid reads, reduces and writes the grid in one pass.
	ModeWholeGrid Mode = iota

	// ModeSequential processes tiles one at a time on the calling goroutine.
	ModeSequential

	// ModeChunkParallel processes tiles one at a time, splitting each into
	// sub-chunks run on a worker pool.
	ModeChunkParallel
)

// ModeFor maps a worker count to its strategy.
func ModeFor(workers int) Mode {
	switch {
	case workers < 1:
		return ModeWholeGrid
	case workers == 1:
		return ModeSequential
	default:
		return ModeChunkParallel
	}
}

// State returns the running state the mode executes in.
func (m Mode) State() State {
	switch m {
	case ModeWholeGrid:
		return WholeGrid
	case ModeSequential:
		return SequentialTiled
	case ModeChunkParallel:
		return ChunkParallelTiled
	default:
		panic(fmt.Sprintf("focal: unhandled %v", m))
	}
}

func (m Mode) String() string {
	switch m {
	case ModeWholeGrid:
		return "whole-grid"
	case ModeSequential:
		return "sequential"
	case ModeChunkParallel:
		return "chunk-parallel"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}
