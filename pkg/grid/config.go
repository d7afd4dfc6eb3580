package grid

import (
	"math"

	"github.com/matzehuels/gridboard/pkg/errors"
)

// Default grid configuration, matching the dashboard's 150px cells.
const (
	DefaultCellSize = 150
	DefaultGap      = 12
	DefaultMinCols  = 4
	DefaultMaxCols  = 12
)

// Config is the immutable per-session grid geometry. Rows are as tall as
// cells are wide.
type Config struct {
	CellSize int `json:"cell_size"`
	Gap      int `json:"gap"`
	MinCols  int `json:"min_cols"`
	MaxCols  int `json:"max_cols"`
}

// DefaultConfig returns the default grid geometry.
func DefaultConfig() Config {
	return Config{
		CellSize: DefaultCellSize,
		Gap:      DefaultGap,
		MinCols:  DefaultMinCols,
		MaxCols:  DefaultMaxCols,
	}
}

// Validate checks that the geometry is usable.
func (c Config) Validate() error {
	if c.CellSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cell size must be positive, got %d", c.CellSize)
	}
	if c.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gap cannot be negative, got %d", c.Gap)
	}
	if c.MinCols <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min columns must be positive, got %d", c.MinCols)
	}
	if c.MaxCols < c.MinCols {
		return errors.New(errors.ErrCodeInvalidConfig, "max columns (%d) below min columns (%d)", c.MaxCols, c.MinCols)
	}
	return nil
}

// pitch is the distance between the origins of two adjacent cells.
func (c Config) pitch() int { return c.CellSize + c.Gap }

// ComputeColumns returns the number of columns that fit a container of the
// given width in pixels. The container is padded by one gap on each side, so
// n columns need n*cellSize + (n-1)*gap pixels of the remaining width.
//
// Widths of zero or less (a container that has not been laid out yet) yield
// MinCols. The result is always clamped to [MinCols, MaxCols].
func ComputeColumns(containerWidth int, cfg Config) int {
	if containerWidth <= 0 {
		return cfg.MinCols
	}
	available := containerWidth - 2*cfg.Gap
	cols := (available + cfg.Gap) / cfg.pitch()
	return clamp(cols, cfg.MinCols, cfg.MaxCols)
}

// PixelRect is a rectangle in container pixels.
type PixelRect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GridToPixel projects a cell rectangle into container pixels.
//
//	left  = gap + x*(cellSize+gap)
//	width = w*(cellSize+gap) - gap
func GridToPixel(r Rect, cfg Config) PixelRect {
	p := cfg.pitch()
	return PixelRect{
		Left:   cfg.Gap + r.X*p,
		Top:    cfg.Gap + r.Y*p,
		Width:  r.W*p - cfg.Gap,
		Height: r.H*p - cfg.Gap,
	}
}

// PixelToCell converts a container pixel offset to the nearest cell index.
// It is the inverse of the Left/Top projection in [GridToPixel].
func PixelToCell(px int, cfg Config) int {
	return int(math.Round(float64(px-cfg.Gap) / float64(cfg.pitch())))
}

// DeltaToCells converts a pointer delta in pixels to a whole number of cells.
func DeltaToCells(delta int, cfg Config) int {
	return int(math.Round(float64(delta) / float64(cfg.pitch())))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
