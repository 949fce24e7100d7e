package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// DummyMaterial for testing
type DummyMaterial struct{}

func (d DummyMaterial) Scatter(rayIn core.Ray, hit *material.HitRecord, sampler core.Sampler) (material.ScatterRecord, bool) {
	return material.ScatterRecord{}, false
}

func (d DummyMaterial) ScatteringPDF(rayIn core.Ray, hit *material.HitRecord, scattered core.Ray) float64 {
	return 0
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}
