package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Config controls how the image is split up and scheduled
type Config struct {
	TileSize   int    // Edge length of square tiles
	NumWorkers int    // Parallel workers (0 = use CPU count)
	Seed       int64  // Base seed; tile i uses Seed+i. 0 derives one from the clock
	ID         string // Render ID; empty generates one
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   DefaultTileSize,
		NumWorkers: 0,
		Seed:       0,
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	TileImage *image.RGBA // Image data for just this tile

	// Progress information
	TileNumber int // Tiles completed so far (1-based)
	TotalTiles int // Total number of tiles in the image
}

// Result is a finished render
type Result struct {
	ID    string
	Image *image.RGBA
	Stats RenderStats
	Seed  int64 // Base seed actually used, to reproduce the render
}

// Raytracer renders a preprocessed scene in parallel tiles
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
	width      int
	height     int
	pixelStats [][]PixelStats // Shared pixel statistics array (image coordinates)
}

// NewRaytracer creates a raytracer using path tracing. A nil logger discards output.
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if logger == nil {
		logger = core.DiscardLogger()
	}

	return &Raytracer{
		scene:      s,
		integrator: integrator.NewPathTracingIntegrator(s.SamplingConfig),
		config:     config,
		logger:     logger,
		width:      s.SamplingConfig.Width,
		height:     s.SamplingConfig.Height,
	}
}

// Render takes SamplesPerPixel samples for every pixel and returns the image.
// tileCallback, if set, is called from the calling goroutine as tiles finish.
// Cancelling ctx stops the render between tiles and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*Result, error) {
	if rt.scene.World == nil || rt.scene.Camera == nil {
		return nil, errors.New("scene must be preprocessed before rendering")
	}

	renderID := rt.config.ID
	if renderID == "" {
		renderID = NewRenderID()
	}
	seed := rt.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	samplesPerPixel := rt.scene.SamplingConfig.SamplesPerPixel

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt.pixelStats = make([][]PixelStats, rt.height)
	for y := range rt.pixelStats {
		rt.pixelStats[y] = make([]PixelStats, rt.width)
	}

	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize)
	pool := NewWorkerPool(NewTileRenderer(rt.scene, rt.integrator), len(tiles), rt.config.NumWorkers)

	rt.logger.Printf("Render %s: scene %s at %dx%d, %d samples/pixel, max depth %d (%d tiles, %d workers, seed %d)\n",
		renderID, rt.scene.Name, rt.width, rt.height, samplesPerPixel, rt.scene.SamplingConfig.MaxDepth,
		len(tiles), pool.GetNumWorkers(), seed)

	startTime := time.Now()
	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:            tile,
			TaskID:          i,
			Seed:            seed + int64(tile.ID),
			SamplesPerPixel: samplesPerPixel,
			PixelStats:      rt.pixelStats,
		})
	}

	var firstErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
				cancel() // Remaining tiles finish immediately
			}
			continue
		}

		if tileCallback != nil && firstErr == nil {
			tile := tiles[result.TaskID]
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / rt.config.TileSize,
				TileY:      tile.Bounds.Min.Y / rt.config.TileSize,
				TileImage:  rt.extractTileImage(tile),
				TileNumber: i + 1,
				TotalTiles: len(tiles),
			})
		}
	}
	pool.Stop()

	if firstErr != nil {
		rt.logger.Printf("Render %s failed: %v\n", renderID, firstErr)
		return nil, firstErr
	}

	img, stats := rt.assembleImage()
	stats.Tiles = len(tiles)
	stats.SamplesPerPixel = samplesPerPixel
	stats.Duration = time.Since(startTime)

	rt.logger.Printf("Render %s completed in %v (%.0f samples/s, average luminance %.3f)\n",
		renderID, stats.Duration, stats.SamplesPerSecond(), CalculateAverageLuminance(img))

	return &Result{ID: renderID, Image: img, Stats: stats, Seed: seed}, nil
}

// PixelStats returns the per-pixel accumulators of the last render
func (rt *Raytracer) PixelStats() [][]PixelStats {
	return rt.pixelStats
}

// extractTileImage builds an image of a single finished tile
func (rt *Raytracer) extractTileImage(tile *Tile) *image.RGBA {
	bounds := tile.Bounds
	tileImage := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &rt.pixelStats[y][x]
			tileImage.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, ProcessColor(ps.ColorAccum, ps.SampleCount))
		}
	}

	return tileImage
}

// assembleImage creates the image from the pixel stats and totals the samples
func (rt *Raytracer) assembleImage() (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	stats := RenderStats{TotalPixels: rt.width * rt.height}

	for y := 0; y < rt.height; y++ {
		for x := 0; x < rt.width; x++ {
			ps := &rt.pixelStats[y][x]
			img.SetRGBA(x, y, ProcessColor(ps.ColorAccum, ps.SampleCount))
			stats.TotalSamples += ps.SampleCount
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return img, stats
}
