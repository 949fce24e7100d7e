package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides a color for a surface point with coordinates (u, v)
type Texture interface {
	Value(u, v float64, p core.Vec3) core.Vec3
}

// SolidColor provides a constant color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the constant color
func (s *SolidColor) Value(u, v float64, p core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two textures in a 3D sine pattern
type CheckerTexture struct {
	Odd  Texture
	Even Texture
}

// NewCheckerTexture creates a checker pattern from two solid colors
func NewCheckerTexture(odd, even core.Vec3) *CheckerTexture {
	return &CheckerTexture{Odd: NewSolidColor(odd), Even: NewSolidColor(even)}
}

// Value picks odd or even by the sign of sin(10x)·sin(10y)·sin(10z)
func (c *CheckerTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	sines := math.Sin(10*p.X) * math.Sin(10*p.Y) * math.Sin(10*p.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, p)
	}
	return c.Even.Value(u, v, p)
}
