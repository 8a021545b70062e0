package focal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/focal/internal/filter"
	"github.com/gogpu/focal/internal/parallel"
	"github.com/gogpu/focal/raster"
)

// Engine runs a focal statistic from a RasterSource to a RasterSink.
//
// The configuration, grid descriptor and strategy are fixed by New. An
// engine can be run more than once (for example to resume after a failure)
// but not concurrently.
type Engine struct {
	src  RasterSource
	dst  RasterSink
	cfg  Config
	log  *slog.Logger
	grid raster.GridDescriptor
	mode Mode

	tileW, tileH   int
	blockW, blockH int

	planOnce sync.Once
	tiles    []parallel.Tile
	planErr  error
	ledger   *parallel.TileLedger

	state    atomic.Int32
	running  atomic.Bool
	progress progress
}

// Result summarizes one Run.
type Result struct {
	RunID string
	Mode  Mode

	// Tiles is the number of tiles in the plan (1 for a whole-grid run).
	Tiles        int
	TilesWritten int
	TilesSkipped int
	CellsWritten int64
	Elapsed      time.Duration
}

// kernelFunc turns a masked read-window array into a result of the same
// shape.
type kernelFunc func(raster.Array) (raster.Array, error)

// New validates the configuration against the source grid and returns an
// idle engine. No I/O happens here.
func New(src RasterSource, dst RasterSink, opts ...Option) (*Engine, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if dst == nil {
		return nil, ErrNilSink
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	grid := src.Descriptor()
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	log := o.logger
	if log == nil {
		log = Logger()
	}

	e := &Engine{
		src:  src,
		dst:  dst,
		cfg:  o.cfg,
		log:  log,
		grid: grid,
		mode: o.cfg.Mode(),
	}
	e.blockW, e.blockH = blockSize(src)
	e.tileW, e.tileH = o.cfg.TileWidth, o.cfg.TileHeight
	if e.tileW == 0 {
		e.tileW = e.blockW
	}
	if e.tileH == 0 {
		e.tileH = e.blockH
	}
	e.progress.fn = o.progress
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Grid returns the source grid descriptor.
func (e *Engine) Grid() raster.GridDescriptor { return e.grid }

// Mode returns the strategy chosen from the worker count.
func (e *Engine) Mode() Mode { return e.mode }

// TileSize returns the resolved write tile size.
func (e *Engine) TileSize() (width, height int) { return e.tileW, e.tileH }

// State returns the current lifecycle state. Safe to call during Run.
func (e *Engine) State() State { return State(e.state.Load()) }

// Progress returns cells written by the current or last run and the total.
func (e *Engine) Progress() (done, total int64) {
	return e.progress.done.Load(), e.progress.total.Load()
}

// TilesWritten returns how many tiles of the plan have been written across
// runs since the ledger was last reset. Safe to call during Run.
func (e *Engine) TilesWritten() int {
	if _, err := e.plan(); err != nil {
		return 0
	}
	return e.ledger.Count()
}

// Plan returns the tile plan the tiled strategies iterate. The plan is
// computed once per engine and the returned slice is a copy.
func (e *Engine) Plan() ([]Tile, error) {
	tiles, err := e.plan()
	if err != nil {
		return nil, err
	}
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	return out, nil
}

func (e *Engine) plan() ([]parallel.Tile, error) {
	e.planOnce.Do(func() {
		e.tiles, e.planErr = parallel.Plan(e.grid, e.tileW, e.tileH, e.cfg.Size)
		if e.planErr == nil {
			e.ledger = parallel.NewTileLedger(len(e.tiles))
		}
	})
	return e.tiles, e.planErr
}

func (e *Engine) setState(s State, log *slog.Logger) {
	prev := State(e.state.Swap(int32(s)))
	log.Debug("state transition", "from", prev, "to", s)
}

// Run executes the configured strategy. It returns after the last write,
// on the first failed read or write, or once ctx is cancelled.
//
// Cancellation is only observed between tiles: a tile that has started is
// always written completely first.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	if !e.running.CompareAndSwap(false, true) {
		return Result{}, ErrRunning
	}
	defer e.running.Store(false)

	start := time.Now()
	res := Result{RunID: uuid.NewString(), Mode: e.mode}
	log := e.log.With("run_id", res.RunID, "mode", e.mode.String())

	e.setState(Planning, log)
	e.progress.reset(e.grid.Cells())
	log.Info("run started",
		"grid", fmt.Sprintf("%dx%d", e.grid.Width, e.grid.Height),
		"size", e.cfg.Size,
		"reducer", e.cfg.Reducer.String(),
		"workers", e.cfg.Workers,
	)

	err := e.run(ctx, log, &res)
	res.Elapsed = time.Since(start)

	if err != nil {
		e.setState(Failed, log)
		log.Warn("run failed", "error", err, "tiles_written", res.TilesWritten, "elapsed", res.Elapsed)
		return res, err
	}

	e.setState(Done, log)
	log.Info("run complete",
		"tiles", res.Tiles,
		"tiles_written", res.TilesWritten,
		"tiles_skipped", res.TilesSkipped,
		"cells", res.CellsWritten,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

func (e *Engine) run(ctx context.Context, log *slog.Logger, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	size, reducer, policy := e.cfg.Size, e.cfg.Reducer, e.cfg.nanPolicy()
	direct := func(a raster.Array) (raster.Array, error) {
		return filter.Focal(a, size, reducer, policy), nil
	}

	if e.mode == ModeWholeGrid {
		res.Tiles = 1
		e.setState(WholeGrid, log)
		return e.runWholeGrid(ctx, direct, res)
	}

	tiles, err := e.plan()
	if err != nil {
		return err
	}
	res.Tiles = len(tiles)
	log.Debug("plan ready", "tiles", len(tiles), "tile_width", e.tileW, "tile_height", e.tileH)

	if !e.cfg.Resume {
		e.ledger.Clear()
	}

	kernel := direct
	if e.mode == ModeChunkParallel {
		pool := parallel.NewWorkerPool(e.cfg.Workers)
		defer pool.Close()
		exec := parallel.NewHaloExecutor(pool, e.blockW, e.blockH, e.cfg.ChunkTarget)
		kernel = func(a raster.Array) (raster.Array, error) {
			return exec.Execute(a, size, reducer, policy)
		}
		if first := exec.Plan(tiles[0].Read.Height, tiles[0].Read.Width, size); len(first.Chunks) == 1 {
			log.Debug("tiles fit in one chunk; use tiles several blocks wide for sub-chunk parallelism",
				"tile_width", e.tileW, "tile_height", e.tileH,
				"block_width", e.blockW, "block_height", e.blockH)
		}
	}

	e.setState(e.mode.State(), log)
	return e.runTiled(ctx, log, tiles, kernel, res)
}

func (e *Engine) runWholeGrid(ctx context.Context, kernel kernelFunc, res *Result) error {
	win := e.grid.Bounds()
	data, err := e.read(ctx, -1, win)
	if err != nil {
		return err
	}
	raster.MaskGrid(data, e.grid, e.cfg.NoDataOffset)

	out, err := kernel(data)
	if err != nil {
		return &TileError{Index: -1, Window: win, Op: "reduce", Err: err}
	}
	if err := e.write(ctx, -1, win, out); err != nil {
		return err
	}

	res.TilesWritten = 1
	res.CellsWritten = int64(win.Area())
	e.progress.add(res.CellsWritten)
	return nil
}

func (e *Engine) runTiled(ctx context.Context, log *slog.Logger, tiles []parallel.Tile, kernel kernelFunc, res *Result) error {
	for _, tile := range tiles {
		if err := ctx.Err(); err != nil {
			return err
		}

		if e.cfg.Resume && e.ledger.Done(tile.Index) {
			res.TilesSkipped++
			e.progress.add(int64(tile.Cells()))
			log.Debug("tile already written", "tile", tile.Index, "write", tile.Write)
			continue
		}

		if err := e.processTile(ctx, tile, kernel); err != nil {
			return err
		}
		e.ledger.Mark(tile.Index)

		res.TilesWritten++
		res.CellsWritten += int64(tile.Cells())
		e.progress.add(int64(tile.Cells()))
		log.Debug("tile written", "tile", tile.Index, "write", tile.Write)
	}

	if res.TilesSkipped > 0 {
		log.Warn("resumed run skipped written tiles", "skipped", res.TilesSkipped)
	}
	return nil
}

// processTile reads, masks, reduces, trims and writes one tile.
func (e *Engine) processTile(ctx context.Context, tile parallel.Tile, kernel kernelFunc) error {
	data, err := e.read(ctx, tile.Index, tile.Read)
	if err != nil {
		return err
	}
	raster.MaskGrid(data, e.grid, e.cfg.NoDataOffset)

	reduced, err := kernel(data)
	if err != nil {
		return &TileError{Index: tile.Index, Window: tile.Read, Op: "reduce", Err: err}
	}
	return e.write(ctx, tile.Index, tile.Write, raster.Trim(reduced, tile.Margins))
}

func (e *Engine) read(ctx context.Context, index int, win raster.Window) (raster.Array, error) {
	data, err := e.src.ReadWindow(ctx, win)
	if err != nil {
		return raster.Array{}, &TileError{Index: index, Window: win, Op: "read", Err: err}
	}
	if !data.SameShape(win) {
		return raster.Array{}, &TileError{
			Index:  index,
			Window: win,
			Op:     "read",
			Err:    fmt.Errorf("%w: source returned %dx%d", ErrShapeMismatch, data.Rows, data.Cols),
		}
	}
	return data, nil
}

func (e *Engine) write(ctx context.Context, index int, win raster.Window, data raster.Array) error {
	if err := e.dst.WriteWindow(ctx, win, data); err != nil {
		return &TileError{Index: index, Window: win, Op: "write", Err: err}
	}
	return nil
}
