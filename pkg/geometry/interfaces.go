package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays
type Hittable interface {
	// Hit returns the closest intersection with t in the open interval (tMin, tMax).
	// The sampler is used by primitives whose boundary is probabilistic.
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool)

	// BoundingBox returns a box valid for ray times in [time0, time1]
	BoundingBox(time0, time1 float64) (core.AABB, bool)

	// PDFValue is the solid-angle density of sampling direction from origin toward
	// this object. Zero for objects that are never sampled as lights.
	PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64

	// Random returns a direction from origin toward a point on this object
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// nonLight provides the light-sampling half of Hittable for objects that are
// never importance sampled
type nonLight struct{}

func (nonLight) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	return 0
}

func (nonLight) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.NewVec3(1, 0, 0)
}

// outwardNormal recovers the geometric normal from a hit whose normal was
// oriented against the ray
func outwardNormal(hit *material.HitRecord) core.Vec3 {
	if hit.FrontFace {
		return hit.Normal
	}
	return hit.Normal.Negate()
}
