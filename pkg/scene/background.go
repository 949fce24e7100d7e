package scene

import "github.com/df07/go-pathtracer/pkg/core"

// Background returns the radiance seen by rays that leave the scene
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// SolidBackground is a constant color in every direction
type SolidBackground struct {
	Radiance core.Vec3
}

// NewSolidBackground creates a constant background
func NewSolidBackground(radiance core.Vec3) *SolidBackground {
	return &SolidBackground{Radiance: radiance}
}

// Color returns the constant radiance
func (b *SolidBackground) Color(ray core.Ray) core.Vec3 {
	return b.Radiance
}

// GradientBackground blends from BottomColor to TopColor with the height of the
// normalized ray direction
type GradientBackground struct {
	TopColor    core.Vec3
	BottomColor core.Vec3
}

// NewGradientBackground creates a vertical gradient background
func NewGradientBackground(top, bottom core.Vec3) *GradientBackground {
	return &GradientBackground{TopColor: top, BottomColor: bottom}
}

// NewSkyBackground is the white to light blue sky used by the outdoor scenes
func NewSkyBackground() *GradientBackground {
	return NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1, 1, 1))
}

// Color interpolates on t = (y+1)/2 of the unit direction
func (b *GradientBackground) Color(ray core.Ray) core.Vec3 {
	unit := ray.Direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return b.BottomColor.Multiply(1.0 - t).Add(b.TopColor.Multiply(t))
}
