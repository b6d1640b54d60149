// Package simulation provides the tuning for movement, visibility, audio and
// camera. Values are loaded from data files so each world can adjust its feel.
package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"chosenoffset.com/thornvale/internal/core/actor"
	"chosenoffset.com/thornvale/internal/core/visibility"
)

// ErrInvalidConfig is returned by Validate and LoadConfig for unusable values
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds all tuning for a world
type Config struct {
	Movement   MovementConfig   `json:"movement"`
	Visibility VisibilityConfig `json:"visibility"`
	Audio      AudioConfig      `json:"audio"`
	Camera     CameraConfig     `json:"camera"`
}

// MovementConfig defines how stick input becomes actions and displacement
type MovementConfig struct {
	RunThreshold     float64 `json:"run_threshold"`     // Stick magnitude above which the actor runs
	AngleEpsilon     float64 `json:"angle_epsilon"`     // Magnitudes at or below this count as no input
	Speed            float64 `json:"speed"`             // World units per second at full deflection
	LockedSpeed      float64 `json:"locked_speed"`      // Speed multiplier while attacking or blocking
	InitialDirection string  `json:"initial_direction"` // e.g., "down"
}

// VisibilityConfig defines when the visible object set is recomputed
type VisibilityConfig struct {
	Mode               string  `json:"mode"`                // "viewport" or "radius"
	RecomputeThreshold float64 `json:"recompute_threshold"` // World units moved before recomputing
	ViewportMargin     float64 `json:"viewport_margin"`     // Extra border around the viewport
	Radius             float64 `json:"radius"`              // Inclusion distance in radius mode
	CellSize           float64 `json:"cell_size"`           // Broad-phase grid cell, 0 disables
}

// AudioConfig defines playback settings
type AudioConfig struct {
	SampleRate  int     `json:"sample_rate"`
	Music       string  `json:"music"` // Path relative to the world directory, empty for none
	MusicVolume float64 `json:"music_volume"`
	Disabled    bool    `json:"disabled"`
}

// CameraConfig defines how the view follows the player
type CameraConfig struct {
	ClampToMap bool `json:"clamp_to_map"`
}

// DefaultConfig returns the tuning the sample world is built for
func DefaultConfig() *Config {
	return &Config{
		Movement: MovementConfig{
			RunThreshold:     0.5,
			AngleEpsilon:     1e-4,
			Speed:            200,
			LockedSpeed:      0,
			InitialDirection: "down",
		},
		Visibility: VisibilityConfig{
			Mode:               "viewport",
			RecomputeThreshold: 200,
			ViewportMargin:     0,
			Radius:             1200,
			CellSize:           0,
		},
		Audio: AudioConfig{
			SampleRate:  48000,
			MusicVolume: 0.1,
		},
		Camera: CameraConfig{
			ClampToMap: true,
		},
	}
}

// LoadConfig loads simulation config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	m := c.Movement
	switch {
	case !finite(m.RunThreshold) || m.RunThreshold <= 0:
		return fmt.Errorf("%w: run_threshold %v", ErrInvalidConfig, m.RunThreshold)
	case !finite(m.AngleEpsilon) || m.AngleEpsilon < 0:
		return fmt.Errorf("%w: angle_epsilon %v", ErrInvalidConfig, m.AngleEpsilon)
	case !finite(m.Speed) || m.Speed < 0:
		return fmt.Errorf("%w: speed %v", ErrInvalidConfig, m.Speed)
	case !finite(m.LockedSpeed) || m.LockedSpeed < 0 || m.LockedSpeed > 1:
		return fmt.Errorf("%w: locked_speed %v", ErrInvalidConfig, m.LockedSpeed)
	}
	if _, err := c.ActorConfig(); err != nil {
		return err
	}
	if _, err := c.VisibilityConfig(); err != nil {
		return err
	}

	a := c.Audio
	if a.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate %d", ErrInvalidConfig, a.SampleRate)
	}
	if !finite(a.MusicVolume) || a.MusicVolume < 0 || a.MusicVolume > 1 {
		return fmt.Errorf("%w: music_volume %v", ErrInvalidConfig, a.MusicVolume)
	}
	return nil
}

// ActorConfig converts the movement section for the action controller
func (c *Config) ActorConfig() (actor.Config, error) {
	dir := actor.Down
	if c.Movement.InitialDirection != "" {
		d, ok := actor.ParseDirection(c.Movement.InitialDirection)
		if !ok {
			return actor.Config{}, fmt.Errorf("%w: initial_direction %q", ErrInvalidConfig, c.Movement.InitialDirection)
		}
		dir = d
	}
	return actor.Config{
		RunThreshold:     c.Movement.RunThreshold,
		AngleEpsilon:     c.Movement.AngleEpsilon,
		InitialDirection: dir,
	}, nil
}

// VisibilityConfig converts the visibility section for the visibility index
func (c *Config) VisibilityConfig() (visibility.Config, error) {
	mode, err := visibility.ParseMode(c.Visibility.Mode)
	if err != nil {
		return visibility.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg := visibility.Config{
		Mode:               mode,
		RecomputeThreshold: c.Visibility.RecomputeThreshold,
		ViewportMargin:     c.Visibility.ViewportMargin,
		Radius:             c.Visibility.Radius,
		CellSize:           c.Visibility.CellSize,
	}
	if err := cfg.Validate(); err != nil {
		return visibility.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
