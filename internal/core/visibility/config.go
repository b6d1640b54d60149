package visibility

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidConfig is returned by New for unusable tuning
	ErrInvalidConfig = errors.New("invalid visibility config")
	// ErrInvalidInput is returned by Update for a non-finite reference or viewport
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyBuilt is returned by a second Build call
	ErrAlreadyBuilt = errors.New("index already built")
)

// Mode selects the inclusion test
type Mode int

const (
	// ModeViewport keeps objects whose bounds intersect the viewport centered on the reference
	ModeViewport Mode = iota
	// ModeRadius keeps objects whose bounds lie within Radius of the reference
	ModeRadius
)

func (m Mode) String() string {
	switch m {
	case ModeViewport:
		return "viewport"
	case ModeRadius:
		return "radius"
	default:
		return "unknown"
	}
}

// ParseMode maps "viewport" or "radius" to a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "viewport":
		return ModeViewport, nil
	case "radius":
		return ModeRadius, nil
	default:
		return ModeViewport, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
	}
}

// Config tunes when and how the visible set is recomputed
type Config struct {
	Mode Mode

	// RecomputeThreshold is how far the reference must move before the visible
	// set is recomputed
	RecomputeThreshold float64

	// ViewportMargin inflates the viewport rectangle on every side (ModeViewport)
	ViewportMargin float64

	// Radius is the inclusion distance (ModeRadius)
	Radius float64

	// CellSize enables a uniform-grid broad phase when set. Cells are at
	// least one world unit.
	CellSize float64
}

// DefaultConfig returns camera-relative viewport culling
func DefaultConfig() Config {
	return Config{
		Mode:               ModeViewport,
		RecomputeThreshold: 200,
	}
}

// Validate checks the tuning values
func (c Config) Validate() error {
	switch {
	case c.Mode != ModeViewport && c.Mode != ModeRadius:
		return fmt.Errorf("%w: mode %d", ErrInvalidConfig, c.Mode)
	case !(c.RecomputeThreshold >= 0) || math.IsInf(c.RecomputeThreshold, 0):
		return fmt.Errorf("%w: recompute threshold %v", ErrInvalidConfig, c.RecomputeThreshold)
	case math.IsNaN(c.ViewportMargin) || math.IsInf(c.ViewportMargin, 0):
		return fmt.Errorf("%w: viewport margin %v", ErrInvalidConfig, c.ViewportMargin)
	case c.Mode == ModeRadius && (!(c.Radius > 0) || math.IsInf(c.Radius, 0)):
		return fmt.Errorf("%w: radius %v", ErrInvalidConfig, c.Radius)
	case !(c.CellSize == 0 || c.CellSize >= 1) || math.IsInf(c.CellSize, 0):
		return fmt.Errorf("%w: cell size %v", ErrInvalidConfig, c.CellSize)
	}
	return nil
}
