package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter decides what happens to a ray hitting the surface.
	// Returns false when the ray is absorbed.
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool)

	// ScatteringPDF is the density of the material's own scattering distribution
	// in the direction of scattered. Only called for non-specular scatters.
	ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3
}

// ScatterRecord contains the result of material scattering
type ScatterRecord struct {
	SpecularRay core.Ray  // Outgoing ray for specular scatters
	IsSpecular  bool      // Deterministic direction, bypasses importance sampling
	Attenuation core.Vec3 // Color attenuation
	PDF         pdf.PDF   // Sampling strategy for diffuse scatters, nil for specular
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always against the incident ray
	T         float64   // Parameter t along the ray
	U, V      float64   // Surface coordinates
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
