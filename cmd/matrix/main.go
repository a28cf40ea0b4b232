// Command matrix shows a few test patterns on the configured line driver,
// multiplexing in the foreground without the interrupt machinery.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fcurrie/microbit-led-golang/internal/board"
	"github.com/fcurrie/microbit-led-golang/internal/config"
	"github.com/fcurrie/microbit-led-golang/internal/display"
	"github.com/fcurrie/microbit-led-golang/internal/icon"
	"github.com/fcurrie/microbit-led-golang/internal/types"
	"github.com/fcurrie/microbit-led-golang/pkg/termmatrix"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	hold := flag.Duration("hold", 2*time.Second, "how long each pattern is shown")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load config from %s: %v", *configPath, err)
		log.Printf("Using default configuration")
		cfg = config.DefaultConfig()
	}

	lines, _, err := board.OpenLines(cfg.Display)
	if err != nil {
		log.Fatalf("Failed to open lines: %v", err)
	}
	defer lines.Close()

	var all, checker types.Frame
	for y := 0; y < types.Rows; y++ {
		for x := 0; x < types.Cols; x++ {
			all.Set(x, y, true)
			checker.Set(x, y, (x+y)%2 == 0)
		}
	}
	patterns := []struct {
		name  string
		frame types.Frame
	}{
		{"all on", all},
		{"checkerboard", checker},
		{"heart", icon.Must(icon.Heart)},
		{"check", icon.Must(icon.Check)},
	}

	preview := termmatrix.NewTerminal(os.Stdout)
	slot := display.SlotDuration(cfg.Display.RefreshHz)
	for _, p := range patterns {
		log.Printf("Showing %s", p.name)
		if err := preview.Paint(p.frame); err != nil {
			log.Printf("Failed to paint preview: %v", err)
		}
		for start := time.Now(); time.Since(start) < *hold; {
			for row := 0; row < types.Rows; row++ {
				if err := lines.Drive(row, p.frame.Row(row)); err != nil {
					log.Fatalf("Failed to drive row %d: %v", row, err)
				}
				time.Sleep(slot)
			}
		}
	}

	// Clear the matrix
	log.Println("Clearing matrix")
	if err := lines.Blank(); err != nil {
		log.Fatalf("Failed to clear matrix: %v", err)
	}

	fmt.Println("Test completed successfully")
}
