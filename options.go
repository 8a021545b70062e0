package focal

import "log/slog"

// Option configures an Engine during creation.
//
// Example:
//
//	eng, err := focal.New(src, dst,
//	    focal.WithSize(7),
//	    focal.WithTileSize(512, 512),
//	    focal.WithWorkers(runtime.NumCPU()),
//	)
type Option func(*options)

// options holds everything New needs beyond the source and sink.
type options struct {
	cfg      Config
	logger   *slog.Logger
	progress ProgressFunc
}

// defaultOptions returns DefaultConfig with the package logger.
func defaultOptions() options {
	return options{
		cfg:    DefaultConfig(),
		logger: nil, // resolved to Logger() in New
	}
}

// WithConfig replaces the whole configuration. Options after it still
// apply on top.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithSize sets the neighborhood size n (odd, >= 1).
func WithSize(n int) Option {
	return func(o *options) {
		o.cfg.Size = n
	}
}

// WithTileSize sets the write tile dimensions.
func WithTileSize(width, height int) Option {
	return func(o *options) {
		o.cfg.TileWidth = width
		o.cfg.TileHeight = height
	}
}

// WithWorkers sets the worker count, which selects the strategy.
// See Config.Workers.
//
// Chunk-parallel mode splits each tile into sub-chunks of at least one
// native block, so a tile of one block (the default tile size) runs as a
// single chunk. Use WithTileSize with tiles several blocks wide to give the
// workers something to share.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.cfg.Workers = n
	}
}

// WithNoDataOffset sets how far above the no-data sentinel values are still
// treated as missing.
func WithNoDataOffset(offset float64) Option {
	return func(o *options) {
		o.cfg.NoDataOffset = offset
	}
}

// WithReducer selects the statistic.
func WithReducer(r Reducer) Option {
	return func(o *options) {
		o.cfg.Reducer = r
	}
}

// WithIgnoreNaN reduces partly-missing windows over their valid cells.
func WithIgnoreNaN(ignore bool) Option {
	return func(o *options) {
		o.cfg.IgnoreNaN = ignore
	}
}

// WithChunkTarget bounds the number of sub-chunks per tile.
func WithChunkTarget(n int) Option {
	return func(o *options) {
		o.cfg.ChunkTarget = n
	}
}

// WithResume makes Run skip tiles written by a previous run of the
// same engine.
func WithResume(resume bool) Option {
	return func(o *options) {
		o.cfg.Resume = resume
	}
}

// WithLogger sets the logger for this engine, overriding the package
// logger. Pass nil to use the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithProgress registers a callback invoked after every write with the
// cells written so far and the total.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}
