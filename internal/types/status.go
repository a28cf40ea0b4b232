package types

import "fmt"

// Reading is one 3-axis sample delivered by the sensor collaborator
type Reading struct {
	X int32
	Y int32
	Z int32
}

// String formats the reading the way the serial console prints it
func (r Reading) String() string {
	return fmt.Sprintf("(%d, %d, %d)", r.X, r.Y, r.Z)
}

// Backend names a line driver implementation
type Backend string

const (
	// Possible line drivers
	BackendSim      Backend = "sim"
	BackendGPIOCDev Backend = "gpiocdev"
	BackendPeriph   Backend = "periph"
	BackendMMap     Backend = "mmap"
)

// Mode names what the animation tick drives
type Mode string

const (
	// Possible animation modes
	ModeScroll   Mode = "scroll"
	ModeRoulette Mode = "roulette"
	ModeCompass  Mode = "compass"
	ModePunch    Mode = "punch"
)

// DisplayConfig represents the configuration for the LED matrix lines
type DisplayConfig struct {
	Backend      Backend  `json:"backend"`
	Chip         string   `json:"chip"`
	RowPins      []int    `json:"row_pins"`
	ColPins      []int    `json:"col_pins"`
	RowNames     []string `json:"row_names"`
	ColNames     []string `json:"col_names"`
	ColActiveLow bool     `json:"col_active_low"`
	RefreshHz    int      `json:"refresh_hz"`
	Preview      bool     `json:"preview"`
}

// AnimationConfig represents the configuration for the animation tick
type AnimationConfig struct {
	Mode     Mode   `json:"mode"`
	TickHz   int    `json:"tick_hz"`
	Message  string `json:"message"`
	Capacity int    `json:"capacity"`
	Splash   string `json:"splash"`
}

// SensorConfig represents the configuration for the sensor collaborator
type SensorConfig struct {
	PollTimeoutTicks int   `json:"poll_timeout_ticks"`
	PunchThreshold   int32 `json:"punch_threshold"`
	PunchWindowTicks int   `json:"punch_window_ticks"`
	PunchHoldTicks   int   `json:"punch_hold_ticks"`
	OffsetX          int32 `json:"offset_x"`
	OffsetY          int32 `json:"offset_y"`
}

// ConsoleConfig represents the configuration for the serial command console
type ConsoleConfig struct {
	Enabled    bool `json:"enabled"`
	BufferSize int  `json:"buffer_size"`
}
