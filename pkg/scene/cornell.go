package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

// cornellCamera positions the camera outside the open side of the box
func cornellCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        40.0,
		Time0:       0.0,
		Time1:       1.0,
	}
}

// addCornellWalls adds the five walls and a ceiling light spanning [x0,x1]x[z0,z1].
// The light faces down and is registered for importance sampling.
func addCornellWalls(s *Scene, emission core.Vec3, x0, x1, z0, z1 float64) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(emission)

	s.Add(
		geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green), // left wall, as seen by the camera
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white),       // floor
		geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white), // ceiling
		geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white), // back wall
		geometry.NewFlipFace(geometry.NewXZRect(x0, x1, z0, z1, boxSize-1, light)),
	)

	// The sampled copy only needs the shape
	s.AddLight(geometry.NewXZRect(x0, x1, z0, z1, boxSize-1, nil))
}

// cornellBlock returns a box with its corner at the origin, rotated about Y and moved into place
func cornellBlock(size core.Vec3, angle float64, offset core.Vec3, mat material.Material) geometry.Hittable {
	var block geometry.Hittable = geometry.NewBox(core.NewVec3(0, 0, 0), size, mat)
	block = geometry.NewRotateY(block, angle)
	return geometry.NewTranslate(block, offset)
}

// NewCornellScene creates the classic Cornell box with two rotated blocks
func NewCornellScene() *Scene {
	s := newScene("cornell-box", cornellCamera(), 400, 100, 50)
	s.Background = NewSolidBackground(core.Vec3{})

	addCornellWalls(s, core.NewVec3(15, 15, 15), 213, 343, 227, 332)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	s.Add(
		cornellBlock(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), white),
		cornellBlock(core.NewVec3(165, 165, 165), -18, core.NewVec3(130, 0, 65), white),
	)

	return s
}

// NewCornellSmokeScene replaces the blocks with dark and light smoke of the same shape
func NewCornellSmokeScene() *Scene {
	s := newScene("cornell-smoke", cornellCamera(), 400, 200, 50)
	s.Background = NewSolidBackground(core.Vec3{})

	addCornellWalls(s, core.NewVec3(7, 7, 7), 113, 443, 127, 432)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	tall := cornellBlock(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), white)
	short := cornellBlock(core.NewVec3(165, 165, 165), -18, core.NewVec3(130, 0, 65), white)

	s.Add(
		geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	return s
}

// NewCornellGlassScene has an aluminum block and a glass sphere. The sphere is
// also sampled as a light so caustics through it converge faster.
func NewCornellGlassScene() *Scene {
	s := newScene("cornell-glass", cornellCamera(), 400, 100, 50)
	s.Background = NewSolidBackground(core.Vec3{})

	addCornellWalls(s, core.NewVec3(15, 15, 15), 213, 343, 227, 332)

	aluminum := material.NewMetal(core.NewVec3(0.8, 0.85, 0.88), 0.0)
	s.Add(cornellBlock(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), aluminum))

	glass := geometry.NewSphere(core.NewVec3(190, 90, 190), 90, material.NewDielectric(1.5))
	s.Add(glass)
	s.AddLight(geometry.NewSphere(core.NewVec3(190, 90, 190), 90, nil))

	return s
}
