package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestBox_Hit(t *testing.T) {
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3), DummyMaterial{})
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
		expectedT float64
	}{
		{"From +X", core.NewRay(core.NewVec3(5, 1, 1), core.NewVec3(-1, 0, 0)), true, 4},
		{"From -Y", core.NewRay(core.NewVec3(0.5, -3, 1), core.NewVec3(0, 1, 0)), true, 3},
		{"From +Z", core.NewRay(core.NewVec3(0.5, 1, 10), core.NewVec3(0, 0, -1)), true, 7},
		{"From inside", core.NewRay(core.NewVec3(0.5, 1, 1), core.NewVec3(0, 0, 1)), true, 2},
		{"Miss", core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(1, 0, 0)), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := box.Hit(tt.ray, 0.001, 100, sampler)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, ok)
			}
			if ok && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestBox_BoundingBox(t *testing.T) {
	p0 := core.NewVec3(-1, 0, 2)
	p1 := core.NewVec3(1, 3, 4)
	box := NewBox(p0, p1, DummyMaterial{})

	bbox, ok := box.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected a bounding box")
	}
	if bbox.Min != p0 || bbox.Max != p1 {
		t.Errorf("Expected %v-%v, got %v-%v", p0, p1, bbox.Min, bbox.Max)
	}
}
