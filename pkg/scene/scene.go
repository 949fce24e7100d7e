package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Objects        []geometry.Hittable // Everything rays can hit
	Lights         []geometry.Hittable // Emitters to importance sample, also present in Objects
	Background     Background
	SamplingConfig SamplingConfig

	World     geometry.Hittable      // Acceleration structure over Objects, built by Preprocess
	LightList *geometry.HittableList // Nil when the scene has no sampled lights
	BVHStats  geometry.BVHStats
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// AddLight appends an emitter that the integrator should sample directly.
// The light must also be added with Add (or wrapped, e.g. by FlipFace) to be visible.
func (s *Scene) AddLight(light geometry.Hittable) {
	s.Lights = append(s.Lights, light)
}

// Preprocess builds the camera, the BVH and the light list. The scene is
// read-only afterwards and may be shared between render workers.
func (s *Scene) Preprocess(sampler core.Sampler) error {
	if len(s.Objects) == 0 {
		return fmt.Errorf("scene %q has no objects", s.Name)
	}
	if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
		return fmt.Errorf("scene %q has invalid image size %dx%d",
			s.Name, s.SamplingConfig.Width, s.SamplingConfig.Height)
	}

	s.CameraConfig.Width = s.SamplingConfig.Width
	s.Camera = geometry.NewCamera(s.CameraConfig)

	bvh := geometry.NewBVH(s.Objects, s.CameraConfig.Time0, s.CameraConfig.Time1, sampler)
	s.World = bvh
	s.BVHStats = bvh.Stats()

	s.LightList = nil
	if len(s.Lights) > 0 {
		s.LightList = geometry.NewHittableList(s.Lights...)
	}

	if s.Background == nil {
		s.Background = NewSolidBackground(core.Vec3{})
	}

	return nil
}

// SetImageWidth changes the output width and derives the height from the camera aspect ratio
func (s *Scene) SetImageWidth(width int) {
	aspect := s.CameraConfig.AspectRatio
	if aspect <= 0 {
		aspect = 1
	}
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = int(float64(width) / aspect)
	s.CameraConfig.Width = width
}

// newScene creates an empty scene with the given camera and sampling defaults
func newScene(name string, camera geometry.CameraConfig, width, samplesPerPixel, maxDepth int) *Scene {
	s := &Scene{
		Name:         name,
		CameraConfig: camera,
		SamplingConfig: SamplingConfig{
			SamplesPerPixel: samplesPerPixel,
			MaxDepth:        maxDepth,
		},
	}
	s.SetImageWidth(width)
	return s
}
