package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	port := flag.Int("port", 0, "Port to serve on (default: RT_PORT or 8080)")
	workers := flag.Int("workers", 0, "Worker goroutines per render (default: NumCPU)")
	flag.Parse()
	cfg.Resolve(config.Flags{Port: *port, Workers: *workers})

	level, err := cfg.Level()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("path tracer web server", "url", fmt.Sprintf("http://localhost:%d", cfg.Port))
	if err := server.NewServer(cfg, logger).Start(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
