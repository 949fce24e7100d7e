package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PDF is a sampling strategy over outgoing directions together with its
// solid-angle density
type PDF interface {
	Value(direction core.Vec3) float64
	Generate(sampler core.Sampler) core.Vec3
}

// Uniform samples the hemisphere around a normal with constant density
type Uniform struct {
	normal core.Vec3
}

// NewUniform creates a uniform hemisphere PDF about normal
func NewUniform(normal core.Vec3) *Uniform {
	return &Uniform{normal: normal}
}

// Value returns 1/(2π) for every direction
func (p *Uniform) Value(direction core.Vec3) float64 {
	return 1.0 / (2.0 * math.Pi)
}

// Generate returns a random direction in the hemisphere about the normal
func (p *Uniform) Generate(sampler core.Sampler) core.Vec3 {
	return core.RandomInHemisphere(p.normal, sampler)
}

// Cosine samples directions proportionally to the cosine with the normal
type Cosine struct {
	uvw core.ONB
}

// NewCosine creates a cosine-weighted PDF about normal
func NewCosine(normal core.Vec3) *Cosine {
	return &Cosine{uvw: core.NewONB(normal)}
}

// Value returns cosθ/π, or zero below the surface
func (p *Cosine) Value(direction core.Vec3) float64 {
	cosine := direction.Normalize().Dot(p.uvw.W)
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}

// Generate returns a cosine-weighted direction in world space
func (p *Cosine) Generate(sampler core.Sampler) core.Vec3 {
	return p.uvw.LocalVec(core.RandomCosineDirection(sampler.Get2D()))
}

// Sphere samples the full sphere of directions uniformly
type Sphere struct{}

// NewSphere creates a uniform sphere PDF
func NewSphere() *Sphere {
	return &Sphere{}
}

// Value returns 1/(4π) for every direction
func (p *Sphere) Value(direction core.Vec3) float64 {
	return 1.0 / (4.0 * math.Pi)
}

// Generate returns a uniformly distributed unit direction
func (p *Sphere) Generate(sampler core.Sampler) core.Vec3 {
	return core.RandomUnitVector(sampler.Get2D())
}

// Target is anything that can be importance sampled from a point,
// typically a light or a list of lights
type Target interface {
	PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// Hittable delegates density and generation to a sampled target as seen from origin
type Hittable struct {
	target  Target
	origin  core.Vec3
	sampler core.Sampler
}

// NewHittable creates a PDF that samples target from origin.
// The sampler is kept for density evaluations that need to trace the target.
func NewHittable(target Target, origin core.Vec3, sampler core.Sampler) *Hittable {
	return &Hittable{target: target, origin: origin, sampler: sampler}
}

// Value returns the target's solid-angle density toward direction
func (p *Hittable) Value(direction core.Vec3) float64 {
	return p.target.PDFValue(p.origin, direction, p.sampler)
}

// Generate returns a direction from origin toward the target
func (p *Hittable) Generate(sampler core.Sampler) core.Vec3 {
	return p.target.Random(p.origin, sampler)
}

// Mixture combines two PDFs with equal weight
type Mixture struct {
	p [2]PDF
}

// NewMixture creates a 50/50 mixture of p0 and p1
func NewMixture(p0, p1 PDF) *Mixture {
	return &Mixture{p: [2]PDF{p0, p1}}
}

// Value returns the mean of both densities
func (m *Mixture) Value(direction core.Vec3) float64 {
	return 0.5*m.p[0].Value(direction) + 0.5*m.p[1].Value(direction)
}

// Generate picks one of the two strategies at random and samples it
func (m *Mixture) Generate(sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.p[0].Generate(sampler)
	}
	return m.p[1].Generate(sampler)
}
