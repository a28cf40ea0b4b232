// Command sensor-console answers magnetometer and accelerometer commands
// read from stdin, one per carriage return terminated line.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fcurrie/microbit-led-golang/internal/command"
	"github.com/fcurrie/microbit-led-golang/internal/config"
	"github.com/fcurrie/microbit-led-golang/internal/sensor"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load config from %s: %v", *configPath, err)
		log.Printf("Using default configuration")
		cfg = config.DefaultConfig()
	}

	mag, err := sensor.NewPoller(sensor.NewField(64), cfg.Sensor.PollTimeoutTicks)
	if err != nil {
		log.Fatalf("Failed to create magnetometer: %v", err)
	}
	acc, err := sensor.NewPoller(sensor.NewAccel(), cfg.Sensor.PollTimeoutTicks)
	if err != nil {
		log.Fatalf("Failed to create accelerometer: %v", err)
	}

	console, err := command.FromConfig(os.Stdout, mag, acc, cfg.Console)
	if err != nil {
		log.Fatalf("Failed to create console: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := console.Serve(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.Fatalf("Console failed: %v", err)
	}
}
