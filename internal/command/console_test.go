package command

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fcurrie/microbit-led-golang/internal/sensor"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

func newConsole(t *testing.T, size int) (*Console, *bytes.Buffer) {
	t.Helper()
	mag, err := sensor.NewPoller(sensor.NewFixed(types.Reading{X: 12, Y: -34, Z: 56}), 8)
	if err != nil {
		t.Fatal(err)
	}
	acc, err := sensor.NewPoller(sensor.NewFixed(types.Reading{X: 1, Y: 2, Z: 1000}), 8)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	c, err := New(&out, mag, acc, size)
	if err != nil {
		t.Fatal(err)
	}
	return c, &out
}

func TestServe(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "magnetometer",
			input: "magnetometer\r",
			want:  "Magnetic field: (x, y, z) = (12, -34, 56)\r\n",
		},
		{
			name:  "accelerometer fills the buffer exactly",
			input: "accelerometer\r",
			want:  "Acceleration: (x, y, z) = (1, 2, 1000)\r\n",
		},
		{
			name:  "surrounding spaces are trimmed",
			input: " magnetometer\r",
			want:  "Magnetic field: (x, y, z) = (12, -34, 56)\r\n",
		},
		{
			name:  "unknown command",
			input: "compass\r",
			want:  "error: [compass] wrong command\r\n",
		},
		{
			name:  "empty line",
			input: "\r",
			want:  "error: [] wrong command\r\n",
		},
		{
			name:  "extra arguments",
			input: "mag netometer\r",
			want:  "error: [mag netometer] wrong command\r\n",
		},
		{
			name:  "terminator does not fit",
			input: "accelerometers\rmagnetometer\r",
			want:  "error: buffer full\r\nMagnetic field: (x, y, z) = (12, -34, 56)\r\n",
		},
		{
			name:  "rest of an overlong line is dropped",
			input: "accelerometer-accelerometer\rcompass\r",
			want:  "error: buffer full\r\nerror: [compass] wrong command\r\n",
		},
		{
			name:  "unterminated input gets no answer",
			input: "magnetometer",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newConsole(t, DefaultBufferSize)
			if err := c.Serve(context.Background(), strings.NewReader(tt.input)); err != nil {
				t.Fatalf("Serve() error = %v", err)
			}
			if got := out.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServeCancelled(t *testing.T) {
	c, _ := newConsole(t, DefaultBufferSize)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Serve(ctx, strings.NewReader("magnetometer\r")); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}

type deaf struct{}

func (deaf) Ready() (bool, error)         { return false, nil }
func (deaf) Read() (types.Reading, error) { return types.Reading{}, nil }

func TestExecuteTimeout(t *testing.T) {
	p, _ := sensor.NewPoller(deaf{}, 3)
	var out bytes.Buffer
	c, err := New(&out, p, p, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := "error: " + sensor.ErrTimeout.Error()
	if got := c.Execute(Magnetometer); got != want {
		t.Errorf("Execute() = %q, want %q", got, want)
	}
}

func TestNewInvalid(t *testing.T) {
	p, _ := sensor.NewPoller(deaf{}, 3)
	if _, err := New(nil, p, p, 0); err == nil {
		t.Error("New() with nil writer did not return error")
	}
	if _, err := New(&bytes.Buffer{}, nil, p, 0); err == nil {
		t.Error("New() with nil sensor did not return error")
	}
}

func TestFromConfig(t *testing.T) {
	p, _ := sensor.NewPoller(deaf{}, 3)
	tests := []struct {
		name    string
		cfg     types.ConsoleConfig
		wantErr error
		wantCap int
	}{
		{"enabled", types.ConsoleConfig{Enabled: true, BufferSize: 20}, nil, 20},
		{"default size", types.ConsoleConfig{Enabled: true}, nil, DefaultBufferSize},
		{"disabled", types.ConsoleConfig{BufferSize: 20}, ErrDisabled, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := FromConfig(&bytes.Buffer{}, p, p, tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FromConfig() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && cap(c.buf) != tt.wantCap {
				t.Errorf("buffer size = %d, want %d", cap(c.buf), tt.wantCap)
			}
		})
	}
}
