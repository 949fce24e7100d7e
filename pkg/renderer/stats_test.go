package renderer

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red 0.2126 + green 0.7152 + blue 0.0722 + black 0 = 1.0, averaged over 4
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_Empty(t *testing.T) {
	if got := CalculateAverageLuminance(image.NewRGBA(image.Rect(0, 0, 0, 0))); got != 0 {
		t.Errorf("Expected 0 for an empty image, got %f", got)
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != (core.Vec3{}) {
		t.Errorf("Expected black for no samples, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 2, 3))
	ps.AddSample(core.NewVec3(3, 2, 1))

	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	if got := ps.GetColor(); got != core.NewVec3(2, 2, 2) {
		t.Errorf("Expected average (2,2,2), got %v", got)
	}
}

func TestSamplesPerSecond(t *testing.T) {
	stats := RenderStats{TotalSamples: 500, Duration: 2 * time.Second}
	if got := stats.SamplesPerSecond(); got != 250 {
		t.Errorf("Expected 250 samples/s, got %f", got)
	}
	if got := (RenderStats{TotalSamples: 5}).SamplesPerSecond(); got != 0 {
		t.Errorf("Expected 0 for zero duration, got %f", got)
	}
}
