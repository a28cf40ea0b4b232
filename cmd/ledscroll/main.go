package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fcurrie/microbit-led-golang/internal/board"
	"github.com/fcurrie/microbit-led-golang/internal/config"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	mode := flag.String("mode", "", "Animation: scroll, roulette, compass or punch")
	text := flag.String("text", "", "Message to scroll")
	backend := flag.String("backend", "", "Line driver: sim, gpiocdev, periph or mmap")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load config from %s: %v", *configPath, err)
		log.Printf("Using default configuration")
		cfg = config.DefaultConfig()
	}
	if *mode != "" {
		cfg.Animation.Mode = types.Mode(*mode)
	}
	if *text != "" {
		cfg.Animation.Message = *text
	}
	if *backend != "" {
		cfg.Display.Backend = types.Backend(*backend)
	}

	b, err := board.Setup(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to set up board: %v", err)
	}

	// Handle shutdown gracefully
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("Running %s on the %s backend", cfg.Animation.Mode, cfg.Display.Backend)
	if err := b.Run(ctx); err != nil {
		log.Fatalf("Failed to run board: %v", err)
	}

	ticks, refreshes := b.Stats()
	log.Printf("Shut down after %d ticks and %d refresh events", ticks, refreshes)
}
