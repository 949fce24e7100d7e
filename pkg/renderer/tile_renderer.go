package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
	}
}

// RenderTileBounds takes samplesPerPixel samples for every pixel within bounds and
// accumulates them into pixelStats, indexed [y][x] in image coordinates with y=0
// at the top. Only the pixels inside bounds are written.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, samplesPerPixel int) RenderStats {
	camera := tr.scene.Camera
	width := float64(tr.scene.SamplingConfig.Width)
	height := tr.scene.SamplingConfig.Height

	stats := RenderStats{
		TotalPixels:     bounds.Dx() * bounds.Dy(),
		SamplesPerPixel: samplesPerPixel,
		Tiles:           1,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Film coordinates run bottom to top
		row := float64(height - 1 - y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixelStats[y][x]
			for sample := 0; sample < samplesPerPixel; sample++ {
				jitter := sampler.Get2D()
				s := (float64(x) + jitter.X) / width
				t := (row + jitter.Y) / float64(height)

				ray := camera.GetRay(s, t, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
			}
			stats.TotalSamples += samplesPerPixel
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}
