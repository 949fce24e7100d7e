package scene

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

const tolerance = 1e-9

func vecNear(a, b core.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestPreprocessEmptyScene(t *testing.T) {
	s := newScene("empty", cornellCamera(), 100, 1, 1)
	if err := s.Preprocess(core.NewSeededSampler(1)); err == nil {
		t.Error("Expected error for scene without objects, got nil")
	}
}

func TestPreprocessInvalidSize(t *testing.T) {
	s := newScene("tiny", cornellCamera(), 0, 1, 1)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	if err := s.Preprocess(core.NewSeededSampler(1)); err == nil {
		t.Error("Expected error for zero width, got nil")
	}
}

func TestPreprocessDefaults(t *testing.T) {
	s := newScene("single", cornellCamera(), 100, 1, 1)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	if err := s.Preprocess(core.NewSeededSampler(1)); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	if s.LightList != nil {
		t.Error("Expected nil light list for a scene without lights")
	}
	if got := s.Background.Color(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); got != (core.Vec3{}) {
		t.Errorf("Expected black default background, got %v", got)
	}
	if s.BVHStats.Nodes != 1 || s.BVHStats.Leaves != 1 {
		t.Errorf("Expected one node aliasing one leaf, got %+v", s.BVHStats)
	}
}

func TestCornellWorldHit(t *testing.T) {
	s := NewCornellScene()
	if err := s.Preprocess(core.NewSeededSampler(3)); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	if len(s.Objects) != 8 {
		t.Errorf("Expected 8 objects (6 rects and 2 blocks), got %d", len(s.Objects))
	}
	if len(s.Lights) != 1 {
		t.Errorf("Expected 1 light, got %d", len(s.Lights))
	}

	// Above the tall block, straight to the back wall
	ray := core.NewRay(core.NewVec3(278, 500, -800), core.NewVec3(0, 0, 1))
	hit, ok := s.World.Hit(ray, 0.001, math.Inf(1), core.NewSeededSampler(1))
	if !ok {
		t.Fatal("Expected ray to hit the back wall")
	}
	if math.Abs(hit.T-1355) > 1e-6 {
		t.Errorf("Expected t=1355, got %f", hit.T)
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 0, -1), tolerance) {
		t.Errorf("Expected normal facing the camera, got %v", hit.Normal)
	}
}

func TestCornellLightIsVisibleFromBelow(t *testing.T) {
	s := NewCornellScene()
	if err := s.Preprocess(core.NewSeededSampler(3)); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	ray := core.NewRay(core.NewVec3(278, 500, 278), core.NewVec3(0, 1, 0))
	hit, ok := s.World.Hit(ray, 0.001, math.Inf(1), core.NewSeededSampler(1))
	if !ok {
		t.Fatal("Expected ray to hit the ceiling light")
	}

	emitter, isEmitter := hit.Material.(material.Emitter)
	if !isEmitter {
		t.Fatalf("Expected emissive material, got %T", hit.Material)
	}
	if got := emitter.Emitted(ray, hit); got != core.NewVec3(15, 15, 15) {
		t.Errorf("Expected light to emit downward, got %v", got)
	}

	// The sampled copy reports a density toward itself
	pdf := s.LightList.PDFValue(ray.Origin, ray.Direction, core.NewSeededSampler(1))
	if pdf <= 0 {
		t.Errorf("Expected positive light density, got %f", pdf)
	}
}

func TestGradientBackground(t *testing.T) {
	top := core.NewVec3(0.5, 0.7, 1.0)
	bottom := core.NewVec3(1, 1, 1)
	bg := NewGradientBackground(top, bottom)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"Straight up", core.NewVec3(0, 3, 0), top},
		{"Straight down", core.NewVec3(0, -2, 0), bottom},
		{"Horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bg.Color(core.NewRay(core.Vec3{}, tt.direction))
			if !vecNear(got, tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSetImageWidth(t *testing.T) {
	s := newScene("square", cornellCamera(), 100, 1, 1)
	s.SetImageWidth(250)

	if s.SamplingConfig.Width != 250 || s.SamplingConfig.Height != 250 {
		t.Errorf("Expected 250x250, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
	if s.CameraConfig.Width != 250 {
		t.Errorf("Expected camera width 250, got %d", s.CameraConfig.Width)
	}
}
