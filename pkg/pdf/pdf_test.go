package pdf

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// constantTarget reports a fixed density and always samples the same direction
type constantTarget struct {
	density   float64
	direction core.Vec3
	calls     int
}

func (c *constantTarget) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	c.calls++
	return c.density
}

func (c *constantTarget) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return c.direction
}

func TestCosine_Normalization(t *testing.T) {
	// E[pdf(x)/pdf(x)] over samples drawn from the pdf is 1; integrating the density over
	// the hemisphere with uniform samples should also give 1.
	sampler := core.NewSeededSampler(42)
	normal := core.NewVec3(0.3, 1, -0.2).Normalize()
	p := NewCosine(normal)
	uniform := NewUniform(normal)

	const n = 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		dir := uniform.Generate(sampler)
		sum += p.Value(dir) / uniform.Value(dir)
	}
	estimate := sum / n
	if math.Abs(estimate-1) > 0.02 {
		t.Errorf("Expected cosine pdf to integrate to 1, got %f", estimate)
	}
}

func TestCosine_GenerateAboveSurface(t *testing.T) {
	sampler := core.NewSeededSampler(1)
	normal := core.NewVec3(0, 0, -1)
	p := NewCosine(normal)

	for i := 0; i < 1000; i++ {
		dir := p.Generate(sampler)
		if dir.Dot(normal) < 0 {
			t.Fatalf("Generated direction %v below surface", dir)
		}
		if p.Value(dir) <= 0 {
			t.Fatalf("Expected positive density for generated direction %v", dir)
		}
	}
}

func TestCosine_Value(t *testing.T) {
	p := NewCosine(core.NewVec3(0, 1, 0))

	tests := []struct {
		name      string
		direction core.Vec3
		expected  float64
	}{
		{"Along normal", core.NewVec3(0, 2, 0), 1 / math.Pi},
		{"Grazing", core.NewVec3(1, 0, 0), 0},
		{"Below surface", core.NewVec3(0, -1, 0), 0},
		{"45 degrees", core.NewVec3(1, 1, 0), math.Sqrt(0.5) / math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Value(tt.direction); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestUniformAndSphere_Values(t *testing.T) {
	if v := NewUniform(core.NewVec3(0, 1, 0)).Value(core.NewVec3(1, 0, 0)); math.Abs(v-1/(2*math.Pi)) > 1e-12 {
		t.Errorf("Expected 1/(2π), got %f", v)
	}
	if v := NewSphere().Value(core.NewVec3(0, -1, 0)); math.Abs(v-1/(4*math.Pi)) > 1e-12 {
		t.Errorf("Expected 1/(4π), got %f", v)
	}
}

func TestHittable_Delegates(t *testing.T) {
	target := &constantTarget{density: 3, direction: core.NewVec3(0, 1, 0)}
	sampler := core.NewSeededSampler(2)
	p := NewHittable(target, core.NewVec3(0, 0, 0), sampler)

	if v := p.Value(core.NewVec3(1, 0, 0)); v != 3 {
		t.Errorf("Expected delegated density 3, got %f", v)
	}
	if d := p.Generate(sampler); d != target.direction {
		t.Errorf("Expected delegated direction %v, got %v", target.direction, d)
	}
	if target.calls != 1 {
		t.Errorf("Expected 1 density call, got %d", target.calls)
	}
}

func TestMixture(t *testing.T) {
	a := &constantTarget{density: 2, direction: core.NewVec3(1, 0, 0)}
	b := &constantTarget{density: 4, direction: core.NewVec3(0, 1, 0)}
	sampler := core.NewSeededSampler(3)
	origin := core.NewVec3(0, 0, 0)
	m := NewMixture(NewHittable(a, origin, sampler), NewHittable(b, origin, sampler))

	if v := m.Value(core.NewVec3(0, 0, 1)); v != 3 {
		t.Errorf("Expected mean density 3, got %f", v)
	}

	countA := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if m.Generate(sampler) == a.direction {
			countA++
		}
	}
	if frac := float64(countA) / n; math.Abs(frac-0.5) > 0.03 {
		t.Errorf("Expected about half the samples from the first pdf, got %f", frac)
	}
}
