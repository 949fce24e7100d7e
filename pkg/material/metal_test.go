package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Negative fuzzness", -0.5, 0.0},
		{"Valid fuzzness", 0.3, 0.3},
		{"Excessive fuzzness", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), tt.input)
			if metal.Fuzzness != tt.expected {
				t.Errorf("Expected fuzzness %f, got %f", tt.expected, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.8, 0.7), 0)
	sampler := core.NewSeededSampler(42)

	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), FrontFace: true}
	ray := core.NewRayAtTime(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0), 0.25)

	scatter, ok := metal.Scatter(ray, hit, sampler)
	if !ok {
		t.Fatal("Expected reflection")
	}
	if !scatter.IsSpecular {
		t.Error("Metal scatter should be specular")
	}

	expected := core.NewVec3(1, 1, 0).Normalize()
	if scatter.SpecularRay.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected direction %v, got %v", expected, scatter.SpecularRay.Direction)
	}
	if scatter.SpecularRay.Time != 0.25 {
		t.Errorf("Expected scattered ray to keep time 0.25, got %f", scatter.SpecularRay.Time)
	}
	if scatter.Attenuation != metal.Albedo {
		t.Errorf("Expected attenuation %v, got %v", metal.Albedo, scatter.Attenuation)
	}
}

func TestMetal_FuzzyReflectionAboveSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := core.NewSeededSampler(7)

	normal := core.NewVec3(0, 1, 0)
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal, FrontFace: true}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 200; i++ {
		scatter, ok := metal.Scatter(ray, hit, sampler)
		if !ok {
			// Head-on reflection plus a hemisphere perturbation never goes below the surface
			t.Fatal("Expected head-on fuzzy reflection to scatter")
		}
		if scatter.SpecularRay.Direction.Dot(normal) <= 0 {
			t.Fatalf("Scattered direction %v below surface", scatter.SpecularRay.Direction)
		}
	}
}

func TestMetal_ScatterAbsorption(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0)
	sampler := core.NewSeededSampler(1)

	// Ray travelling along the surface reflects to itself, dot with normal is 0
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}
	ray := core.NewRay(core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0))

	if _, ok := metal.Scatter(ray, hit, sampler); ok {
		t.Error("Expected grazing ray to be absorbed")
	}
}

func TestMetal_ReflectionMirrorsNormalComponent(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 0)
	sampler := core.NewSeededSampler(7)

	for i := 0; i < 100; i++ {
		normal := core.RandomUnitVector(sampler.Get2D())
		d := core.RandomUnitVector(sampler.Get2D())
		if d.Dot(normal) > 0 {
			d = d.Negate()
		}
		if d.Dot(normal) > -1e-3 {
			continue // Grazing, the reflection may be absorbed
		}

		hit := &HitRecord{Normal: normal, FrontFace: true}
		scatter, ok := metal.Scatter(core.NewRay(core.Vec3{}, d), hit, sampler)
		if !ok {
			t.Fatalf("Expected reflection for d=%v n=%v", d, normal)
		}

		got := scatter.SpecularRay.Direction.Dot(normal)
		if math.Abs(got+d.Dot(normal)) > 1e-9 {
			t.Errorf("Expected reflected·n = %f, got %f", -d.Dot(normal), got)
		}
	}
}
