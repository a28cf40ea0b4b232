// Package command implements the line based sensor console: the client
// sends a command terminated by a carriage return and gets one CRLF
// terminated response.
package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"

	"github.com/fcurrie/microbit-led-golang/internal/sensor"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// DefaultBufferSize is the line buffer size, terminator included
const DefaultBufferSize = 14

// Commands
const (
	Magnetometer  = "magnetometer"
	Accelerometer = "accelerometer"
)

const terminator = '\r'

// ErrDisabled is returned by FromConfig when the console is switched off
var ErrDisabled = errors.New("command: console disabled")

// Console reads commands byte by byte into a bounded buffer
type Console struct {
	out      io.Writer
	mag      *sensor.Poller
	acc      *sensor.Poller
	buf      []byte
	overflow bool
}

// New creates a console answering on out. size <= 0 selects
// DefaultBufferSize.
func New(out io.Writer, mag, acc *sensor.Poller, size int) (*Console, error) {
	if out == nil {
		return nil, errors.New("command: nil writer")
	}
	if mag == nil || acc == nil {
		return nil, errors.New("command: nil sensor")
	}
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Console{
		out: out,
		mag: mag,
		acc: acc,
		buf: make([]byte, 0, size),
	}, nil
}

// FromConfig creates the console described by cfg, or returns ErrDisabled
func FromConfig(out io.Writer, mag, acc *sensor.Poller, cfg types.ConsoleConfig) (*Console, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	return New(out, mag, acc, cfg.BufferSize)
}

// Feed consumes one input byte. A full buffer answers "error: buffer full"
// and the rest of that line is dropped.
func (c *Console) Feed(b byte) error {
	if c.overflow {
		if b == terminator {
			c.overflow = false
		}
		return nil
	}

	if len(c.buf) == cap(c.buf) {
		c.buf = c.buf[:0]
		c.overflow = b != terminator
		return c.reply("error: buffer full")
	}
	c.buf = append(c.buf, b)
	if b != terminator {
		return nil
	}

	line := string(c.buf)
	c.buf = c.buf[:0]
	return c.reply(c.Execute(line))
}

// Serve feeds every byte read from r until EOF or ctx is done
func (c *Console) Serve(ctx context.Context, r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		b, err := br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("command: read: %w", err)
		}
		if err := c.Feed(b); err != nil {
			return err
		}
	}
}

// Execute runs one command line and returns the response without the
// line terminator
func (c *Console) Execute(line string) string {
	cmd := strings.TrimSpace(line)
	fields, err := shlex.Split(cmd)
	if err != nil || len(fields) != 1 {
		return fmt.Sprintf("error: [%s] wrong command", cmd)
	}

	switch fields[0] {
	case Magnetometer:
		r, err := wait(c.mag)
		if err != nil {
			return "error: " + err.Error()
		}
		return "Magnetic field: " + formatReading(r)
	case Accelerometer:
		r, err := wait(c.acc)
		if err != nil {
			return "error: " + err.Error()
		}
		return "Acceleration: " + formatReading(r)
	default:
		return fmt.Sprintf("error: [%s] wrong command", cmd)
	}
}

// wait polls until the sensor has data or the poller times out
func wait(p *sensor.Poller) (types.Reading, error) {
	for {
		r, ok, err := p.Poll()
		if err != nil {
			return types.Reading{}, err
		}
		if ok {
			return r, nil
		}
	}
}

func formatReading(r types.Reading) string {
	return "(x, y, z) = " + r.String()
}

func (c *Console) reply(s string) error {
	if _, err := io.WriteString(c.out, s+"\r\n"); err != nil {
		return fmt.Errorf("command: write: %w", err)
	}
	return nil
}
