package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fcurrie/microbit-led-golang/internal/periodic"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// MinRefreshHz is the slowest full-frame refresh that still reads as one
// steady image
const MinRefreshHz = 60

// ErrInvalid is returned for a configuration that cannot drive the matrix
var ErrInvalid = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	Display   types.DisplayConfig   `json:"display"`
	Animation types.AnimationConfig `json:"animation"`
	Sensor    types.SensorConfig    `json:"sensor"`
	Console   types.ConsoleConfig   `json:"console"`
}

// LoadConfig loads the configuration from a file. Fields the file leaves out
// keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns the default configuration: the simulated matrix
// scrolling a short message at the reference rates.
func DefaultConfig() *Config {
	return &Config{
		Display: types.DisplayConfig{
			Backend:      types.BackendSim,
			Chip:         "gpiochip0",
			ColActiveLow: true,
			RefreshHz:    MinRefreshHz,
		},
		Animation: types.AnimationConfig{
			Mode:     types.ModeScroll,
			TickHz:   16,
			Message:  "ABCDEFGH",
			Capacity: 64,
		},
		Sensor: types.SensorConfig{
			PollTimeoutTicks: 8,
			PunchThreshold:   300,
			PunchWindowTicks: 10,
			PunchHoldTicks:   32,
		},
		Console: types.ConsoleConfig{
			Enabled:    true,
			BufferSize: 14,
		},
	}
}

// Validate checks that the configuration can drive the matrix
func (c *Config) Validate() error {
	d := c.Display
	if d.RefreshHz < MinRefreshHz {
		return fmt.Errorf("%w: refresh_hz %d is below %d", ErrInvalid, d.RefreshHz, MinRefreshHz)
	}

	switch d.Backend {
	case types.BackendSim:
	case types.BackendGPIOCDev, types.BackendMMap:
		if len(d.RowPins) != types.Rows || len(d.ColPins) != types.Cols {
			return fmt.Errorf("%w: %s needs %d row pins and %d column pins, got %d and %d",
				ErrInvalid, d.Backend, types.Rows, types.Cols, len(d.RowPins), len(d.ColPins))
		}
		if d.Backend == types.BackendGPIOCDev && d.Chip == "" {
			return fmt.Errorf("%w: gpiocdev needs a chip name", ErrInvalid)
		}
	case types.BackendPeriph:
		if len(d.RowNames) != types.Rows || len(d.ColNames) != types.Cols {
			return fmt.Errorf("%w: periph needs %d row names and %d column names, got %d and %d",
				ErrInvalid, types.Rows, types.Cols, len(d.RowNames), len(d.ColNames))
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, d.Backend)
	}

	a := c.Animation
	switch a.Mode {
	case types.ModeScroll, types.ModeRoulette, types.ModeCompass, types.ModePunch:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalid, a.Mode)
	}
	if _, err := periodic.Prescaler(a.TickHz); err != nil {
		return fmt.Errorf("%w: tick_hz: %v", ErrInvalid, err)
	}
	if a.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalid)
	}

	s := c.Sensor
	if s.PollTimeoutTicks <= 0 || s.PunchWindowTicks <= 0 || s.PunchHoldTicks <= 0 {
		return fmt.Errorf("%w: sensor tick counts must be positive", ErrInvalid)
	}

	if c.Console.BufferSize <= 0 {
		return fmt.Errorf("%w: console buffer_size must be positive", ErrInvalid)
	}
	return nil
}
