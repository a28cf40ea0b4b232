package sensor

import (
	"errors"
	"testing"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

func TestLatest(t *testing.T) {
	var l Latest
	p, err := NewPoller(&l, 3)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, err := p.Poll(); ok || err != nil {
		t.Fatalf("Poll() before Publish = %v, %v, want no data", ok, err)
	}

	l.Publish(types.Reading{X: 1}, nil)
	l.Publish(types.Reading{X: 2}, nil)
	r, ok, err := p.Poll()
	if !ok || err != nil || r.X != 2 {
		t.Fatalf("Poll() = %+v, %v, %v, want the newest reading", r, ok, err)
	}
	if _, ok, _ := p.Poll(); ok {
		t.Error("a published reading was consumed twice")
	}

	bus := errors.New("i2c nack")
	l.Publish(types.Reading{}, bus)
	if _, _, err := p.Poll(); !errors.Is(err, bus) {
		t.Errorf("Poll() error = %v, want %v", err, bus)
	}
	if _, ok, err := p.Poll(); ok || err != nil {
		t.Errorf("Poll() after the error = %v, %v, want no data", ok, err)
	}

	if _, err := l.Read(); !errors.Is(err, ErrNoReading) {
		t.Errorf("Read() of an empty cache error = %v, want ErrNoReading", err)
	}
}

func TestLatestTimeout(t *testing.T) {
	var l Latest
	p, _ := NewPoller(&l, 2)
	p.Poll()
	if _, _, err := p.Poll(); !errors.Is(err, ErrTimeout) {
		t.Errorf("Poll() error = %v, want ErrTimeout when nothing is published", err)
	}
}
