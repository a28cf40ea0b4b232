//go:build tinygo && microbit_v2

// Command firmware runs the matrix on a micro:bit v2. Build with
//
//	tinygo flash -target=microbit-v2 ./cmd/firmware
package main

import (
	"time"

	"github.com/fcurrie/microbit-led-golang/internal/board"
	"github.com/fcurrie/microbit-led-golang/internal/scroll"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

func main() {
	err := board.Start(board.Firmware{
		Mode:             types.ModeScroll,
		Message:          "HELLO FROM THE MICRO:BIT",
		Capacity:         scroll.DefaultCapacity,
		RefreshHz:        60,
		TickHz:           16,
		PollTimeoutTicks: 8,
	})
	if err != nil {
		println("Failed to start:", err.Error())
		return
	}

	// Sensor transfers and printing stay off the interrupt path. One
	// transfer per pass matches the 10 Hz sensor data rate.
	for {
		board.Sample()
		if peak, ok := board.TakeReport(); ok {
			println("Max acceleration: (x) =", peak)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
