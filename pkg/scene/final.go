package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewFinalScene combines every primitive, material and texture: a field of
// boxes, a moving sphere, glass, fuzzed metal, subsurface and global fog,
// the earth, marble and a rotated cluster of small spheres.
func NewFinalScene(sampler core.Sampler, earth *loaders.ImageData) *Scene {
	camera := geometry.CameraConfig{
		Center:      core.NewVec3(478, 278, -600),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        40.0,
		Time0:       0.0,
		Time1:       1.0,
	}
	s := newScene("final", camera, 400, 200, 50)
	s.Background = NewSolidBackground(core.Vec3{})

	// Ground of boxes with random heights
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	boxes := make([]geometry.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := core.RandomRange(sampler, 1, 101)
			boxes = append(boxes, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	s.Add(geometry.NewBVH(boxes, 0, 1, sampler))

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	s.Add(geometry.NewFlipFace(geometry.NewXZRect(123, 423, 147, 412, 554, light)))
	s.AddLight(geometry.NewXZRect(123, 423, 147, 412, 554, nil))

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	s.Add(geometry.NewMovingSphere(center1, center2, 0, 1, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	s.Add(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass shell filled with blue subsurface medium
	shell := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Add(shell, geometry.NewConstantMedium(shell, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin fog over everything
	fog := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	s.Add(geometry.NewConstantMedium(fog, 0.0001, core.NewVec3(1, 1, 1)))

	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(imageTexture(earth))))

	marble := material.NewNoiseTexture(material.NewPerlin(sampler), 0.1)
	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(marble)))

	// Cluster of small white spheres
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	const clusterSize = 1000
	cluster := make([]geometry.Hittable, 0, clusterSize)
	for i := 0; i < clusterSize; i++ {
		center := randomVec(sampler, 0, 165)
		cluster = append(cluster, geometry.NewSphere(center, 10, white))
	}
	var clump geometry.Hittable = geometry.NewBVH(cluster, 0, 1, sampler)
	clump = geometry.NewRotateY(clump, 15)
	s.Add(geometry.NewTranslate(clump, core.NewVec3(-100, 270, 395)))

	return s
}
