package scene

import (
	"fmt"
	"sort"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	NeedsImage  bool   `json:"needsImage"`  // Loads the earth texture
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// Options adjust a scene when it is built
type Options struct {
	Width           int    // Overrides the scene's image width when > 0
	SamplesPerPixel int    // Overrides samples per pixel when > 0
	MaxDepth        int    // Overrides the bounce limit when > 0
	Seed            int64  // Seeds random placement, Perlin tables and BVH axes; 0 picks one from the clock
	EarthTexture    string // Path of the image used by scenes that need the earth texture
}

// DefaultEarthTexture is used when Options.EarthTexture is empty
const DefaultEarthTexture = "assets/earthmap.jpg"

type builder func(sampler core.Sampler, earth *loaders.ImageData) *Scene

type entry struct {
	info  SceneInfo
	build builder
}

var builtinScenes = []entry{
	{
		info: SceneInfo{ID: "random-spheres", DisplayName: "Random Spheres", Group: "Spheres",
			Description: "Hundreds of small diffuse, metal and glass spheres with motion blur and depth of field"},
		build: func(sampler core.Sampler, _ *loaders.ImageData) *Scene { return NewRandomSpheresScene(sampler) },
	},
	{
		info: SceneInfo{ID: "two-spheres", DisplayName: "Two Checkered Spheres", Group: "Textures",
			Description: "Two large spheres with a 3D checker texture"},
		build: func(core.Sampler, *loaders.ImageData) *Scene { return NewTwoSpheresScene() },
	},
	{
		info: SceneInfo{ID: "two-perlin-spheres", DisplayName: "Perlin Spheres", Group: "Textures",
			Description: "Marble texture from Perlin turbulence"},
		build: func(sampler core.Sampler, _ *loaders.ImageData) *Scene { return NewTwoPerlinSpheresScene(sampler) },
	},
	{
		info: SceneInfo{ID: "earth", DisplayName: "Earth", Group: "Textures", NeedsImage: true,
			Description: "A globe with an image texture"},
		build: func(_ core.Sampler, earth *loaders.ImageData) *Scene { return NewEarthScene(earth) },
	},
	{
		info: SceneInfo{ID: "simple-light", DisplayName: "Simple Light", Group: "Lights",
			Description: "Perlin spheres lit by a rectangle and a sphere light"},
		build: func(sampler core.Sampler, _ *loaders.ImageData) *Scene { return NewSimpleLightScene(sampler) },
	},
	{
		info: SceneInfo{ID: "cornell-box", DisplayName: "Cornell Box", Group: "Cornell Box",
			Description: "Classic Cornell box with two rotated blocks"},
		build: func(core.Sampler, *loaders.ImageData) *Scene { return NewCornellScene() },
	},
	{
		info: SceneInfo{ID: "cornell-smoke", DisplayName: "Cornell Smoke", Group: "Cornell Box",
			Description: "Cornell box with blocks of dark and light smoke"},
		build: func(core.Sampler, *loaders.ImageData) *Scene { return NewCornellSmokeScene() },
	},
	{
		info: SceneInfo{ID: "cornell-glass", DisplayName: "Cornell Glass", Group: "Cornell Box",
			Description: "Cornell box with an aluminum block and a glass sphere"},
		build: func(core.Sampler, *loaders.ImageData) *Scene { return NewCornellGlassScene() },
	},
	{
		info: SceneInfo{ID: "final", DisplayName: "Final Scene", Group: "Showcase", NeedsImage: true,
			Description: "Every primitive, material and texture in one scene"},
		build: func(sampler core.Sampler, earth *loaders.ImageData) *Scene { return NewFinalScene(sampler, earth) },
	},
}

// ListScenes returns the built-in scenes in registration order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtinScenes))
	for i, e := range builtinScenes {
		scenes[i] = e.info
	}
	return scenes
}

// Lookup returns the description of a built-in scene
func Lookup(id string) (SceneInfo, bool) {
	for _, e := range builtinScenes {
		if e.info.ID == id {
			return e.info, true
		}
	}
	return SceneInfo{}, false
}

// Build creates the scene with the given id, applies the option overrides and
// preprocesses it so it is ready to render
func Build(id string, opts Options) (*Scene, error) {
	var found *entry
	for i := range builtinScenes {
		if builtinScenes[i].info.ID == id {
			found = &builtinScenes[i]
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("unknown scene %q", id)
	}

	var earth *loaders.ImageData
	if found.info.NeedsImage {
		path := opts.EarthTexture
		if path == "" {
			path = DefaultEarthTexture
		}
		var err error
		earth, err = loaders.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", id, err)
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sampler := core.NewSeededSampler(seed)

	s := found.build(sampler, earth)
	if opts.Width > 0 {
		s.SetImageWidth(opts.Width)
	}
	if opts.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.SamplesPerPixel
	}
	if opts.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = opts.MaxDepth
	}

	if err := s.Preprocess(sampler); err != nil {
		return nil, err
	}
	return s, nil
}

// ListAllScenes returns the built-in scenes grouped by category, groups in
// alphabetical order
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, info := range ListScenes() {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	groupNames := make([]string, 0, len(groupMap))
	for name := range groupMap {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   name,
			Scenes: groupMap[name],
		})
	}

	return response
}
