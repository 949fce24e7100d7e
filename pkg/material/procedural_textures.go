package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// NoiseTexture is a marble-like pattern driven by Perlin turbulence
type NoiseTexture struct {
	Noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a noise texture. Higher scale gives finer bands.
func NewNoiseTexture(noise *Perlin, scale float64) *NoiseTexture {
	return &NoiseTexture{Noise: noise, Scale: scale}
}

// Value returns a grey level of 0.5·(1 + sin(scale·z + 10·turb(p)))
func (n *NoiseTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	grey := 0.5 * (1 + math.Sin(n.Scale*p.Z+10*n.Noise.Turb(p)))
	return core.NewVec3(grey, grey, grey)
}
