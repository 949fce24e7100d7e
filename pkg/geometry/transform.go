package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate moves an object by a fixed offset. Rays are moved into the object's
// frame instead of moving the object.
type Translate struct {
	Object Hittable
	Offset core.Vec3
}

// NewTranslate wraps object with an offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit tests the moved ray and moves the hit point back
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, ok := t.Object.Hit(moved, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	hit.SetFaceNormal(moved, outwardNormal(hit))

	return hit, true
}

// BoundingBox is the child's box shifted by the offset
func (t *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := t.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(t.Offset), true
}

// PDFValue delegates to the child from the moved origin
func (t *Translate) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	return t.Object.PDFValue(origin.Subtract(t.Offset), direction, sampler)
}

// Random delegates to the child from the moved origin
func (t *Translate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return t.Object.Random(origin.Subtract(t.Offset), sampler)
}

// RotateY rotates an object about the Y axis by a fixed angle
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	box      core.AABB
	hasBox   bool
}

// NewRotateY wraps object with a rotation of angle degrees about Y.
// The bounding box is computed once from the corners of the child's box over [0, 1].
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := core.DegreesToRadians(angle)
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	box, ok := object.BoundingBox(0, 1)
	r.hasBox = ok
	if !ok {
		return r
	}

	min := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	max := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)

				x := fi*box.Max.X + (1-fi)*box.Min.X
				y := fj*box.Max.Y + (1-fj)*box.Min.Y
				z := fk*box.Max.Z + (1-fk)*box.Min.Z

				newX := r.cosTheta*x + r.sinTheta*z
				newZ := -r.sinTheta*x + r.cosTheta*z

				tester := core.NewVec3(newX, y, newZ)
				min = core.NewVec3(math.Min(min.X, tester.X), math.Min(min.Y, tester.Y), math.Min(min.Z, tester.Z))
				max = core.NewVec3(math.Max(max.X, tester.X), math.Max(max.Y, tester.Y), math.Max(max.Z, tester.Z))
			}
		}
	}

	r.box = core.NewAABB(min, max)
	return r
}

// toLocal applies the inverse rotation
func (r *RotateY) toLocal(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld applies the rotation
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into the object's frame and the hit back into world space
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toLocal(ray.Origin), r.toLocal(ray.Direction), ray.Time)

	hit, ok := r.Object.Hit(rotated, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	normal := r.toWorld(outwardNormal(hit))
	hit.Point = r.toWorld(hit.Point)
	hit.SetFaceNormal(ray, normal)

	return hit, true
}

// BoundingBox returns the box computed at construction
func (r *RotateY) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return r.box, r.hasBox
}

// PDFValue delegates to the child in its local frame
func (r *RotateY) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	return r.Object.PDFValue(r.toLocal(origin), r.toLocal(direction), sampler)
}

// Random samples in the child's frame and rotates the direction back
func (r *RotateY) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return r.toWorld(r.Object.Random(r.toLocal(origin), sampler))
}

// FlipFace inverts which side of its child counts as the front face.
// Used to make one-sided lights face the other way.
type FlipFace struct {
	Object Hittable
}

// NewFlipFace wraps object
func NewFlipFace(object Hittable) *FlipFace {
	return &FlipFace{Object: object}
}

// Hit returns the child's hit with the front face flag inverted
func (f *FlipFace) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	hit, ok := f.Object.Hit(ray, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.FrontFace = !hit.FrontFace
	return hit, true
}

// BoundingBox delegates to the child
func (f *FlipFace) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return f.Object.BoundingBox(time0, time1)
}

// PDFValue delegates to the child
func (f *FlipFace) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	return f.Object.PDFValue(origin, direction, sampler)
}

// Random delegates to the child
func (f *FlipFace) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return f.Object.Random(origin, sampler)
}
