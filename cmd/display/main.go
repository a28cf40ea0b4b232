// Command display runs the matrix like ledscroll and serves its state over
// HTTP: /health, /frame (the installed frame as rows of '#' and '.') and
// /stats.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fcurrie/microbit-led-golang/internal/board"
	"github.com/fcurrie/microbit-led-golang/internal/config"
)

var (
	port       = flag.Int("port", 8080, "Port to listen on")
	configPath = flag.String("config", "config.json", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load config from %s: %v", *configPath, err)
		log.Printf("Using default configuration")
		cfg = config.DefaultConfig()
	}

	b, err := board.Setup(cfg, nil)
	if err != nil {
		log.Fatalf("Failed to set up board: %v", err)
	}

	// Create context that is cancelled on shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/frame", func(w http.ResponseWriter, r *http.Request) {
		f, ok := b.State.Snapshot()
		if !ok {
			http.Error(w, "display not installed", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, f)
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		ticks, refreshes := b.Stats()
		fmt.Fprintf(w, "ticks %d\nrefreshes %d\nfaults %d\n", ticks, refreshes, b.State.Faults())
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	if err := b.Run(ctx); err != nil {
		log.Printf("Board stopped: %v", err)
	}
	log.Println("Shutting down...")

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server: %v", err)
	}
}
