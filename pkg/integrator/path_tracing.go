package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/pdf"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const (
	// Scattered rays start this far along their direction to avoid re-hitting their origin surface
	rayEpsilon = 0.001
	// Mixture densities at or below this end the path instead of dividing by them
	minPDF = 1e-12
)

// PathTracingIntegrator implements unidirectional path tracing with a hard depth limit.
// Diffuse bounces mix material sampling with importance sampling of the scene lights.
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor follows a single path through the scene. The estimate is the sum of the
// emission found at each vertex weighted by the throughput accumulated before it.
// The path ends on a miss, on absorption, or after MaxDepth vertices, in which case
// nothing more is gathered.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	color := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for depth := pt.config.MaxDepth; depth > 0; depth-- {
		hit, isHit := s.World.Hit(ray, rayEpsilon, math.Inf(1), sampler)
		if !isHit {
			return color.Add(throughput.MultiplyVec(s.Background.Color(ray)))
		}

		color = color.Add(throughput.MultiplyVec(emittedLight(ray, hit)))

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter {
			return color
		}

		if scatter.IsSpecular {
			throughput = throughput.MultiplyVec(scatter.Attenuation)
			ray = scatter.SpecularRay
			continue
		}

		scattered, weight, ok := pt.sampleDiffuse(ray, hit, scatter, s, sampler)
		if !ok {
			return color
		}
		throughput = throughput.MultiplyVec(weight)
		ray = scattered
	}

	return color
}

// sampleDiffuse draws the next direction from an equal mixture of the light PDF and
// the material PDF and returns the ray with its throughput factor
// attenuation·scatteringPDF/mixturePDF. It reports false when the mixture density
// is too small to divide by.
func (pt *PathTracingIntegrator) sampleDiffuse(ray core.Ray, hit *material.HitRecord, scatter material.ScatterRecord, s *scene.Scene, sampler core.Sampler) (core.Ray, core.Vec3, bool) {
	materialPDF := scatter.PDF
	if materialPDF == nil {
		materialPDF = pdf.NewUniform(hit.Normal)
	}

	sampling := materialPDF
	if s.LightList != nil {
		lightPDF := pdf.NewHittable(s.LightList, hit.Point, sampler)
		sampling = pdf.NewMixture(lightPDF, materialPDF)
	}

	direction := sampling.Generate(sampler)
	if direction.NearZero() {
		direction = hit.Normal
	}
	scattered := core.NewRayAtTime(hit.Point, direction, ray.Time)

	pdfValue := sampling.Value(direction)
	if math.IsNaN(pdfValue) || pdfValue <= minPDF {
		return core.Ray{}, core.Vec3{}, false
	}

	scatteringPDF := hit.Material.ScatteringPDF(ray, hit, scattered)
	return scattered, scatter.Attenuation.Multiply(scatteringPDF / pdfValue), true
}

// emittedLight returns the light emitted at the hit, zero for non-emissive materials
func emittedLight(ray core.Ray, hit *material.HitRecord) core.Vec3 {
	if emitter, isEmissive := hit.Material.(material.Emitter); isEmissive {
		return emitter.Emitted(ray, hit)
	}
	return core.Vec3{}
}
