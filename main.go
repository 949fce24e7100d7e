package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	flags, list, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	if list {
		printScenes(os.Stdout)
		return
	}

	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Error("render failed", "scene", cfg.Scene, "error", err)
		os.Exit(1)
	}
	logger.Info("image saved", "path", path)
}

// parseFlags parses the command line. list reports whether -list was given.
func parseFlags(args []string) (flags config.Flags, list bool, err error) {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.StringVar(&flags.Scene, "scene", "", "Scene to render (see -list)")
	fs.IntVar(&flags.Width, "width", 0, "Image width; height follows the scene aspect ratio (default: scene)")
	fs.IntVar(&flags.Samples, "samples", 0, "Samples per pixel (default: scene)")
	fs.IntVar(&flags.Depth, "depth", 0, "Maximum path depth (default: scene)")
	fs.Int64Var(&flags.Seed, "seed", 0, "Random seed for a reproducible render (default: time based)")
	fs.IntVar(&flags.Workers, "workers", 0, "Number of worker goroutines (default: NumCPU)")
	fs.StringVar(&flags.Format, "format", "", "Output format: png, webp or ppm")
	fs.StringVar(&flags.OutputDir, "output", "", "Output directory (default: output)")
	fs.BoolVar(&list, "list", false, "List available scenes and exit")

	err = fs.Parse(args)
	return flags, list, err
}

// printScenes writes the scene catalogue grouped by category
func printScenes(w io.Writer) {
	for _, group := range scene.ListAllScenes().Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-20s %s\n", info.ID, info.Description)
		}
	}
}

// outputPath returns output/<scene>/<renderID>.<ext>
func outputPath(dir, sceneID, renderID string, format output.Format) string {
	return filepath.Join(dir, sceneID, renderID+format.Extension())
}

// run builds the configured scene, renders it and saves the image
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (string, error) {
	format, err := cfg.OutputFormat()
	if err != nil {
		return "", err
	}

	s, err := scene.Build(cfg.Scene, cfg.SceneOptions())
	if err != nil {
		return "", err
	}
	logger.Info("scene ready",
		"scene", s.Name,
		"width", s.SamplingConfig.Width,
		"height", s.SamplingConfig.Height,
		"samples", s.SamplingConfig.SamplesPerPixel,
		"depth", s.SamplingConfig.MaxDepth,
		"objects", len(s.Objects),
		"lights", len(s.Lights),
		"bvh_nodes", s.BVHStats.Nodes,
		"bvh_depth", s.BVHStats.MaxDepth)

	rt := renderer.NewRaytracer(s, renderer.Config{
		TileSize:   cfg.TileSize,
		NumWorkers: cfg.Workers,
		Seed:       cfg.Seed,
	}, core.NewSlogLogger(logger))

	result, err := rt.Render(ctx, func(tile renderer.TileCompletionResult) {
		logger.Debug("tile done", "tile", tile.TileNumber, "of", tile.TotalTiles)
	})
	if err != nil {
		return "", err
	}

	path := outputPath(cfg.OutputDir, s.Name, result.ID, format)
	if err := output.Save(path, result.Image, format); err != nil {
		return "", err
	}
	return path, nil
}
