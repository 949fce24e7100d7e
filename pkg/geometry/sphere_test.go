package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestSphere_Hit(t *testing.T) {
	tests := []struct {
		name           string
		center         core.Vec3
		origin         core.Vec3
		direction      core.Vec3
		expectHit      bool
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "Hit from outside",
			center:         core.NewVec3(0, 0, -5),
			origin:         core.NewVec3(0, 0, 0),
			direction:      core.NewVec3(0, 0, -1),
			expectHit:      true,
			expectedT:      4,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:      "Miss",
			center:    core.NewVec3(5, 5, 5),
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(0, 0, -1),
			expectHit: false,
		},
		{
			name:           "Hit from inside",
			center:         core.NewVec3(0, 0, 0),
			origin:         core.NewVec3(0, 0, 0),
			direction:      core.NewVec3(0, 0, 1),
			expectHit:      true,
			expectedT:      1,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:      "Sphere behind the ray",
			center:    core.NewVec3(0, 0, 5),
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(0, 0, -1),
			expectHit: false,
		},
	}

	sampler := core.NewSeededSampler(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, 1, DummyMaterial{})
			hit, ok := sphere.Hit(core.NewRay(tt.origin, tt.direction), 0.001, 1000, sampler)

			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !vecNear(hit.Normal, tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_OpenInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1, DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	sampler := core.NewSeededSampler(1)

	// Near root at exactly tMax is excluded
	if _, ok := sphere.Hit(ray, 0.001, 4, sampler); ok {
		t.Error("Expected hit at t == tMax to be rejected")
	}

	// Near root at exactly tMin falls through to the far root
	hit, ok := sphere.Hit(ray, 4, 100, sampler)
	if !ok || math.Abs(hit.T-6) > 1e-9 {
		t.Errorf("Expected far root t=6, got %v", hit)
	}
}

func TestSphere_UV(t *testing.T) {
	tests := []struct {
		name      string
		point     core.Vec3
		expectedU float64
		expectedV float64
	}{
		{"+X", core.NewVec3(1, 0, 0), 0.5, 0.5},
		{"+Y", core.NewVec3(0, 1, 0), 0.5, 1.0},
		{"-Y", core.NewVec3(0, -1, 0), 0.5, 0.0},
		{"-X", core.NewVec3(-1, 0, 0), 0.0, 0.5},
		{"+Z", core.NewVec3(0, 0, 1), 0.25, 0.5},
		{"-Z", core.NewVec3(0, 0, -1), 0.75, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := sphereUV(tt.point)
			// -X sits on the seam, atan2 may land on either side
			if tt.name == "-X" {
				if math.Abs(u) > 1e-9 && math.Abs(u-1) > 1e-9 {
					t.Errorf("Expected u on the seam, got %f", u)
				}
			} else if math.Abs(u-tt.expectedU) > 1e-9 {
				t.Errorf("Expected u=%f, got %f", tt.expectedU, u)
			}
			if math.Abs(v-tt.expectedV) > 1e-9 {
				t.Errorf("Expected v=%f, got %f", tt.expectedV, v)
			}
		})
	}
}

func TestSphere_PDFValueMatchesSampling(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -4), 1, DummyMaterial{})
	origin := core.NewVec3(0, 0, 0)
	sampler := core.NewSeededSampler(5)

	cosThetaMax := math.Sqrt(1 - 1.0/16.0)
	expected := 1 / (2 * math.Pi * (1 - cosThetaMax))

	for i := 0; i < 200; i++ {
		dir := sphere.Random(origin, sampler)
		if got := sphere.PDFValue(origin, dir, sampler); math.Abs(got-expected) > 1e-9 {
			t.Fatalf("Expected density %f for sampled direction %v, got %f", expected, dir, got)
		}
	}

	if got := sphere.PDFValue(origin, core.NewVec3(0, 1, 0), sampler); got != 0 {
		t.Errorf("Expected zero density for a direction that misses, got %f", got)
	}
}

func TestMovingSphere(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, -5), core.NewVec3(0, 2, -5), 0, 1, 0.5, DummyMaterial{})
	sampler := core.NewSeededSampler(1)

	if c := sphere.Center(0.5); !vecNear(c, core.NewVec3(0, 1, -5), 1e-12) {
		t.Errorf("Expected center (0,1,-5) at t=0.5, got %v", c)
	}

	ray := core.NewRayAtTime(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)
	if _, ok := sphere.Hit(ray, 0.001, 100, sampler); !ok {
		t.Error("Expected hit at time 0")
	}
	ray.Time = 1
	if _, ok := sphere.Hit(ray, 0.001, 100, sampler); ok {
		t.Error("Expected miss at time 1 after the sphere moved up")
	}

	box, ok := sphere.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected a bounding box")
	}
	if box.Min != core.NewVec3(-0.5, -0.5, -5.5) || box.Max != core.NewVec3(0.5, 2.5, -4.5) {
		t.Errorf("Unexpected box %v", box)
	}
}
