package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes a material. Textured values are sampled at the hit.
func extractMaterialInfo(mat material.Material, hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		albedo := m.Albedo.Value(hit.U, hit.V, hit.Point)
		properties["albedo"] = vec(albedo)
		properties["color"] = hexColor(albedo)
		properties["texture"] = textureType(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vec(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		emission := m.Emit.Value(hit.U, hit.V, hit.Point)
		properties["emission"] = vec(emission)
		properties["color"] = hexColor(emission)
		return "diffuse_light", properties

	case *material.Isotropic:
		albedo := m.Albedo.Value(hit.U, hit.V, hit.Point)
		properties["albedo"] = vec(albedo)
		properties["color"] = hexColor(albedo)
		return "isotropic", properties

	default:
		return "unknown", properties
	}
}

// textureType names the texture behind a material
func textureType(t material.Texture) string {
	switch t.(type) {
	case *material.SolidColor:
		return "solid"
	case *material.CheckerTexture:
		return "checker"
	case *material.NoiseTexture:
		return "noise"
	case *material.ImageTexture:
		return "image"
	default:
		return "unknown"
	}
}

// extractGeometryInfo describes a scene object, following transforms down to the shape
func extractGeometryInfo(obj geometry.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := obj.(type) {
	case *geometry.Sphere:
		properties["center"] = vec(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.MovingSphere:
		properties["center0"] = vec(geom.Center0)
		properties["center1"] = vec(geom.Center1)
		properties["radius"] = geom.Radius
		return "moving_sphere", properties

	case *geometry.AARect:
		properties["plane"] = [...]string{"xy", "xz", "yz"}[geom.Plane]
		properties["a"] = [2]float64{geom.A0, geom.A1}
		properties["b"] = [2]float64{geom.B0, geom.B1}
		properties["k"] = geom.K
		properties["area"] = geom.Area()
		return "rect", properties

	case *geometry.Box:
		properties["min"] = vec(geom.Min)
		properties["max"] = vec(geom.Max)
		return "box", properties

	case *geometry.Translate:
		properties["offset"] = vec(geom.Offset)
		properties["object"] = nestedGeometry(geom.Object)
		return "translate", properties

	case *geometry.RotateY:
		properties["object"] = nestedGeometry(geom.Object)
		return "rotate_y", properties

	case *geometry.FlipFace:
		properties["object"] = nestedGeometry(geom.Object)
		return "flip_face", properties

	case *geometry.ConstantMedium:
		properties["boundary"] = nestedGeometry(geom.Boundary)
		return "constant_medium", properties

	case *geometry.BVHNode:
		if box, ok := geom.BoundingBox(0, 1); ok {
			properties["boundingBox"] = map[string]interface{}{"min": vec(box.Min), "max": vec(box.Max)}
		}
		return "bvh", properties

	default:
		return "unknown", properties
	}
}

func nestedGeometry(obj geometry.Hittable) map[string]interface{} {
	geomType, props := extractGeometryInfo(obj)
	return map[string]interface{}{"type": geomType, "properties": props}
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Object    geometry.Hittable // Top-level scene object that was hit, nil if not identified
}

// inspectPixel casts a ray through the center of the given pixel and returns the first hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	width := float64(sceneObj.SamplingConfig.Width)
	height := sceneObj.SamplingConfig.Height

	// Fixed seed so lens sampling is repeatable
	sampler := core.NewSeededSampler(0)
	u := (float64(pixelX) + 0.5) / width
	v := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := sceneObj.Camera.GetRay(u, v, sampler)

	hit, isHit := sceneObj.World.Hit(ray, 0.001, math.Inf(1), sampler)
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The BVH does not report the object, so find the one hit at the same distance
	for _, obj := range sceneObj.Objects {
		if objHit, ok := obj.Hit(ray, 0.001, hit.T+0.001, core.NewSeededSampler(0)); ok && math.Abs(objHit.T-hit.T) < 1e-9 {
			return InspectResult{Hit: true, HitRecord: hit, Object: obj}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.buildScene(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sampling := sceneObj.SamplingConfig
	if pixelX < 0 || pixelX >= sampling.Width || pixelY < 0 || pixelY >= sampling.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material, result.HitRecord)
	geometryType, geometryProps := "unknown", map[string]interface{}{}
	if result.Object != nil {
		geometryType, geometryProps = extractGeometryInfo(result.Object)
	}

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vec(result.HitRecord.Point),
		Normal:       vec(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
