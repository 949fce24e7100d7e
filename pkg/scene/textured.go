package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// outdoorCamera is the camera shared by the small texture showcase scenes
func outdoorCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}
}

// NewTwoSpheresScene creates two large checkered spheres touching at the origin
func NewTwoSpheresScene() *Scene {
	s := newScene("two-spheres", outdoorCamera(), 400, 50, 50)
	s.Background = NewSkyBackground()

	checker := material.NewCheckerTexture(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	checkerMat := material.NewTexturedLambertian(checker)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checkerMat),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checkerMat),
	)
	return s
}

// NewTwoPerlinSpheresScene creates a marble-like ground and sphere from Perlin turbulence
func NewTwoPerlinSpheresScene(sampler core.Sampler) *Scene {
	s := newScene("two-perlin-spheres", outdoorCamera(), 400, 50, 50)
	s.Background = NewSkyBackground()

	noise := material.NewNoiseTexture(material.NewPerlin(sampler), 4)
	noiseMat := material.NewTexturedLambertian(noise)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, noiseMat),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, noiseMat),
	)
	return s
}

// NewEarthScene creates a single globe wrapped in an image texture
func NewEarthScene(earth *loaders.ImageData) *Scene {
	camera := outdoorCamera()
	camera.Aperture = 0.1
	camera.FocusDistance = 12.0

	s := newScene("earth", camera, 400, 50, 50)
	s.Background = NewSkyBackground()

	surface := material.NewTexturedLambertian(imageTexture(earth))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, surface))
	return s
}

// NewSimpleLightScene creates the Perlin spheres lit only by a rectangle and a
// sphere light in an otherwise black world
func NewSimpleLightScene(sampler core.Sampler) *Scene {
	camera := geometry.CameraConfig{
		Center:      core.NewVec3(26, 3, 6),
		LookAt:      core.NewVec3(0, 2, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        20.0,
		Time0:       0.0,
		Time1:       1.0,
	}
	s := newScene("simple-light", camera, 400, 100, 50)
	s.Background = NewSolidBackground(core.Vec3{})

	noise := material.NewNoiseTexture(material.NewPerlin(sampler), 4)
	noiseMat := material.NewTexturedLambertian(noise)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, noiseMat),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, noiseMat),
	)

	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	rect := geometry.NewXYRect(3, 5, 1, 3, -2, light)
	bulb := geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light)
	s.Add(rect, bulb)
	s.AddLight(rect)
	s.AddLight(bulb)

	return s
}

// imageTexture wraps decoded image data. Nil data yields the missing-texture color.
func imageTexture(data *loaders.ImageData) *material.ImageTexture {
	if data == nil {
		return material.NewImageTexture(0, 0, nil)
	}
	return material.NewImageTexture(data.Width, data.Height, data.Pix)
}
