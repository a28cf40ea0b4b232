// Command gpio-test checks the matrix wiring: it requests each row and
// column line on its own and toggles it until terminated.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/fcurrie/microbit-led-golang/internal/config"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	interval := flag.Duration("interval", time.Second, "Time each line stays high")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	d := cfg.Display
	pins := append(append([]int(nil), d.RowPins...), d.ColPins...)
	if len(pins) == 0 {
		log.Fatalf("No row or column pins configured")
	}

	// Set up signal handler for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Println("Starting GPIO test...")

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for i := 0; ; i = (i + 1) % len(pins) {
		offset := pins[i]
		line, err := gpiocdev.RequestLine(d.Chip, offset, gpiocdev.AsOutput(1), gpiocdev.WithConsumer("gpio-test"))
		if err != nil {
			log.Fatalf("Failed to request line %d on %s: %v", offset, d.Chip, err)
		}
		log.Printf("Line %d high", offset)

		select {
		case <-sigChan:
			line.SetValue(0)
			line.Close()
			log.Println("Shutting down...")
			return
		case <-ticker.C:
		}

		if err := line.SetValue(0); err != nil {
			log.Printf("Failed to set value: %v", err)
		}
		line.Close()
	}
}
