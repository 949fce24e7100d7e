package core

import (
	"math"
	"testing"
)

func TestONB_Orthonormal(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(0, -1, 0),
		NewVec3(0.95, 0.1, 0.3),
		NewVec3(-0.3, 0.4, -2),
	}

	const tolerance = 1e-9
	for _, n := range normals {
		onb := NewONB(n)
		if math.Abs(onb.U.Length()-1) > tolerance || math.Abs(onb.V.Length()-1) > tolerance || math.Abs(onb.W.Length()-1) > tolerance {
			t.Errorf("Basis for %v is not unit length: %v", n, onb)
		}
		if math.Abs(onb.U.Dot(onb.V)) > tolerance || math.Abs(onb.U.Dot(onb.W)) > tolerance || math.Abs(onb.V.Dot(onb.W)) > tolerance {
			t.Errorf("Basis for %v is not orthogonal: %v", n, onb)
		}
		if onb.W.Subtract(n.Normalize()).Length() > tolerance {
			t.Errorf("Expected W aligned with %v, got %v", n, onb.W)
		}
		if local := onb.Local(0, 0, 1); local.Subtract(onb.W).Length() > tolerance {
			t.Errorf("Expected Local(0,0,1) == W, got %v", local)
		}
	}
}

func TestRandomCosineDirection(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		d := RandomCosineDirection(sampler.Get2D())
		if d.Z < 0 {
			t.Fatalf("Expected direction in +Z hemisphere, got %v", d)
		}
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", d.Length())
		}
	}
}

func TestRandomToSphere(t *testing.T) {
	sampler := NewSeededSampler(7)
	radius := 1.0
	distSq := 16.0
	cosThetaMax := math.Sqrt(1 - radius*radius/distSq)

	for i := 0; i < 1000; i++ {
		d := RandomToSphere(radius, distSq, sampler.Get2D())
		if d.Z < cosThetaMax-1e-9 {
			t.Fatalf("Direction %v outside cone (cos %f)", d, cosThetaMax)
		}
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", d.Length())
		}
	}
}

func TestRandomInUnitSphereAndDisk(t *testing.T) {
	sampler := NewSeededSampler(1)
	for i := 0; i < 1000; i++ {
		if p := RandomInUnitSphere(sampler); p.LengthSquared() >= 1 {
			t.Fatalf("Point %v outside unit sphere", p)
		}
		p := RandomInUnitDisk(sampler)
		if p.LengthSquared() >= 1 || p.Z != 0 {
			t.Fatalf("Point %v outside unit disk", p)
		}
	}
}

func TestRandomInHemisphere(t *testing.T) {
	sampler := NewSeededSampler(3)
	normal := NewVec3(0, 1, 0)
	for i := 0; i < 1000; i++ {
		if p := RandomInHemisphere(normal, sampler); p.Dot(normal) < 0 {
			t.Fatalf("Point %v below hemisphere", p)
		}
	}
}

func TestRandomUnitVector(t *testing.T) {
	sampler := NewSeededSampler(5)
	var sum Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		v := RandomUnitVector(sampler.Get2D())
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit vector, got length %f", v.Length())
		}
		sum = sum.Add(v)
	}
	// Uniform sphere sampling has zero mean
	if mean := sum.Divide(n); mean.Length() > 0.05 {
		t.Errorf("Expected mean near zero, got %v", mean)
	}
}

func TestSeededSamplerDeterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)
	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Expected identical sequences for identical seeds")
		}
	}
}

func TestRandomInt(t *testing.T) {
	sampler := NewSeededSampler(11)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		n := RandomInt(sampler, 0, 2)
		if n < 0 || n > 2 {
			t.Fatalf("RandomInt out of range: %d", n)
		}
		seen[n] = true
	}
	if len(seen) != 3 {
		t.Errorf("Expected all of 0..2 to be drawn, saw %v", seen)
	}
}
