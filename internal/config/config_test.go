package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"refresh too slow", func(c *Config) { c.Display.RefreshHz = 59 }, true},
		{"unknown backend", func(c *Config) { c.Display.Backend = "hub75" }, true},
		{"gpiocdev without pins", func(c *Config) { c.Display.Backend = types.BackendGPIOCDev }, true},
		{"gpiocdev with pins", func(c *Config) {
			c.Display.Backend = types.BackendGPIOCDev
			c.Display.RowPins = []int{2, 3, 4, 17, 27}
			c.Display.ColPins = []int{5, 6, 13, 19, 26}
		}, false},
		{"gpiocdev without chip", func(c *Config) {
			c.Display.Backend = types.BackendGPIOCDev
			c.Display.Chip = ""
			c.Display.RowPins = []int{2, 3, 4, 17, 27}
			c.Display.ColPins = []int{5, 6, 13, 19, 26}
		}, true},
		{"periph with names", func(c *Config) {
			c.Display.Backend = types.BackendPeriph
			c.Display.RowNames = []string{"GPIO2", "GPIO3", "GPIO4", "GPIO17", "GPIO27"}
			c.Display.ColNames = []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19", "GPIO26"}
		}, false},
		{"periph with pins only", func(c *Config) {
			c.Display.Backend = types.BackendPeriph
			c.Display.RowPins = []int{2, 3, 4, 17, 27}
			c.Display.ColPins = []int{5, 6, 13, 19, 26}
		}, true},
		{"unknown mode", func(c *Config) { c.Animation.Mode = "fireworks" }, true},
		{"tick too slow for the prescaler", func(c *Config) { c.Animation.TickHz = 1 }, true},
		{"zero capacity", func(c *Config) { c.Animation.Capacity = 0 }, true},
		{"zero poll timeout", func(c *Config) { c.Sensor.PollTimeoutTicks = 0 }, true},
		{"zero hold", func(c *Config) { c.Sensor.PunchHoldTicks = 0 }, true},
		{"zero console buffer", func(c *Config) { c.Console.BufferSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"animation": {"mode": "roulette", "tick_hz": 8}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c.Animation.Mode != types.ModeRoulette || c.Animation.TickHz != 8 {
		t.Errorf("animation = %+v, want roulette at 8 Hz", c.Animation)
	}
	if c.Animation.Message != DefaultConfig().Animation.Message {
		t.Errorf("Message = %q, want the default", c.Animation.Message)
	}
	if !c.Console.Enabled {
		t.Error("Console.Enabled = false, want the default true")
	}
	if c.Display.RefreshHz != MinRefreshHz {
		t.Errorf("RefreshHz = %d, want %d", c.Display.RefreshHz, MinRefreshHz)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadConfig() of a missing file did not return error")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"display": `), 0o644)
	if _, err := LoadConfig(bad); err == nil {
		t.Error("LoadConfig() of truncated JSON did not return error")
	}

	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"display": {"refresh_hz": 10}}`), 0o644)
	if _, err := LoadConfig(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalid", err)
	}
}
