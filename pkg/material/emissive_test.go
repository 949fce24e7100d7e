package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDiffuseLight_NeverScatters(t *testing.T) {
	light := NewDiffuseLight(core.NewVec3(4, 4, 4))
	hit := &HitRecord{Normal: core.NewVec3(0, -1, 0), FrontFace: true}
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))

	if _, ok := light.Scatter(ray, hit, core.NewSeededSampler(1)); ok {
		t.Error("Lights should not scatter")
	}
}

func TestDiffuseLight_Emitted(t *testing.T) {
	emission := core.NewVec3(15, 15, 15)
	light := NewDiffuseLight(emission)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))

	tests := []struct {
		name      string
		frontFace bool
		expected  core.Vec3
	}{
		{"Front face emits", true, emission},
		{"Back face is dark", false, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := &HitRecord{FrontFace: tt.frontFace}
			if got := light.Emitted(ray, hit); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDiffuseLight_InterfaceCompliance(t *testing.T) {
	var m Material = NewDiffuseLight(core.NewVec3(1, 1, 1))
	if _, ok := m.(Emitter); !ok {
		t.Error("DiffuseLight should implement Emitter")
	}

	var l Material = NewLambertian(core.NewVec3(1, 1, 1))
	if _, ok := l.(Emitter); ok {
		t.Error("Lambertian should not implement Emitter")
	}
}
