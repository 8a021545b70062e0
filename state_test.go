package focal

import "testing"

func TestModeFor(t *testing.T) {
	tests := []struct {
		workers int
		mode    Mode
		state   State
	}{
		{-5, ModeWholeGrid, WholeGrid},
		{0, ModeWholeGrid, WholeGrid},
		{1, ModeSequential, SequentialTiled},
		{2, ModeChunkParallel, ChunkParallelTiled},
		{64, ModeChunkParallel, ChunkParallelTiled},
	}
	for _, tt := range tests {
		m := ModeFor(tt.workers)
		if m != tt.mode {
			t.Errorf("ModeFor(%d) = %v, want %v", tt.workers, m, tt.mode)
		}
		if m.State() != tt.state {
			t.Errorf("%v.State() = %v, want %v", m, m.State(), tt.state)
		}
	}
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		Idle:               "idle",
		Planning:           "planning",
		WholeGrid:          "whole-grid",
		SequentialTiled:    "sequential-tiled",
		ChunkParallelTiled: "chunk-parallel-tiled",
		Done:               "done",
		Failed:             "failed",
		State(42):          "State(42)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int32(s), got, want)
		}
	}
}

func TestState_Terminal(t *testing.T) {
	for _, s := range []State{Idle, Planning, WholeGrid, SequentialTiled, ChunkParallelTiled} {
		if s.Terminal() {
			t.Errorf("%v.Terminal() = true", s)
		}
	}
	if !Done.Terminal() || !Failed.Terminal() {
		t.Error("Done and Failed must be terminal")
	}
}

func TestMode_String(t *testing.T) {
	if got := Mode(9).String(); got != "Mode(9)" {
		t.Errorf("Mode(9).String() = %q", got)
	}
	if got := ModeChunkParallel.String(); got != "chunk-parallel" {
		t.Errorf("ModeChunkParallel.String() = %q", got)
	}
}
