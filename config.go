package focal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/focal/internal/filter"
	"github.com/gogpu/focal/internal/parallel"
)

// Config holds the recognized engine settings. The zero value is not
// useful; start from DefaultConfig.
type Config struct {
	// Size is the neighborhood edge n (odd, >= 1). n = 1 is the identity.
	Size int `json:"size"`

	// TileWidth and TileHeight set the write tile size. 0 means the
	// source's native block size.
	TileWidth  int `json:"tile_width"`
	TileHeight int `json:"tile_height"`

	// Workers selects the strategy: < 1 whole-grid, 1 sequential tiles,
	// > 1 chunk-parallel tiles with that many workers.
	Workers int `json:"workers"`

	// NoDataOffset widens the no-data test: cells <= nodata+offset are
	// treated as missing.
	NoDataOffset float64 `json:"nodata_offset"`

	Reducer Reducer `json:"reducer"`

	// IgnoreNaN reduces partly-missing windows over their valid cells
	// instead of marking the whole window missing.
	IgnoreNaN bool `json:"ignore_nan"`

	// ChunkTarget bounds the sub-chunks per tile in chunk-parallel mode.
	// 0 means the default of 100.
	ChunkTarget int `json:"chunk_target"`

	// Resume skips tiles already written by an earlier run of the same
	// engine.
	Resume bool `json:"resume"`
}

// DefaultConfig returns the default settings: a 3x3 standard deviation,
// native-block tiles, one worker and a no-data offset of 1.
func DefaultConfig() Config {
	return Config{
		Size:         3,
		Workers:      1,
		NoDataOffset: 1,
		Reducer:      filter.StdDev,
		ChunkTarget:  parallel.DefaultChunkTarget,
	}
}

// Validate checks every field and returns the first problem found,
// wrapped with the offending value.
func (c Config) Validate() error {
	if c.Size < 1 || c.Size%2 == 0 {
		return fmt.Errorf("%w: size=%d", ErrInvalidNeighborhood, c.Size)
	}
	if c.TileWidth < 0 || c.TileHeight < 0 {
		return fmt.Errorf("%w: tile=%dx%d", ErrInvalidTileSize, c.TileWidth, c.TileHeight)
	}
	if !c.Reducer.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidReducer, c.Reducer)
	}
	if c.ChunkTarget < 0 {
		return fmt.Errorf("%w: chunk_target=%d", ErrInvalidChunkTarget, c.ChunkTarget)
	}
	return nil
}

// Mode returns the strategy selected by Workers.
func (c Config) Mode() Mode {
	return ModeFor(c.Workers)
}

func (c Config) nanPolicy() filter.NaNPolicy {
	if c.IgnoreNaN {
		return filter.Ignore
	}
	return filter.Propagate
}

// maxConfigSize caps the config file size.
const maxConfigSize = 1 << 20

// LoadConfig reads a JSON config file over DefaultConfig and validates it.
// Fields omitted from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("focal: config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("focal: stat config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return Config{}, fmt.Errorf("focal: config file too large: %d bytes (max %d)", info.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("focal: read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("focal: parse config %s: %w", cleanPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
