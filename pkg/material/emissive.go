package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseLight represents a light-emitting material. It emits from its front face only.
type DiffuseLight struct {
	Emit Texture
}

// NewDiffuseLight creates a new light with a solid emission color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emit: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a new light whose emission comes from a texture
func NewTexturedDiffuseLight(emit Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// Scatter implements the Material interface - lights never scatter
func (d *DiffuseLight) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{}, false
}

// ScatteringPDF is zero since lights do not scatter
func (d *DiffuseLight) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

// Emitted implements the Emitter interface
func (d *DiffuseLight) Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3 {
	if !hit.FrontFace {
		return core.Vec3{}
	}
	return d.Emit.Value(hit.U, hit.V, hit.Point)
}
