package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Plane identifies which pair of axes an AARect spans
type Plane int

const (
	PlaneXY Plane = iota // Spans X and Y at fixed Z
	PlaneXZ              // Spans X and Z at fixed Y
	PlaneYZ              // Spans Y and Z at fixed X
)

// axes returns the two in-plane axes and the fixed axis
func (p Plane) axes() (a, b, k int) {
	switch p {
	case PlaneXY:
		return 0, 1, 2
	case PlaneXZ:
		return 0, 2, 1
	default:
		return 1, 2, 0
	}
}

// point builds a world-space point from in-plane coordinates and the fixed coordinate
func (p Plane) point(a, b, k float64) core.Vec3 {
	switch p {
	case PlaneXY:
		return core.NewVec3(a, b, k)
	case PlaneXZ:
		return core.NewVec3(a, k, b)
	default:
		return core.NewVec3(k, a, b)
	}
}

const rectPadding = 0.0001

// AARect is an axis-aligned rectangle [A0,A1]×[B0,B1] lying at K on the fixed axis.
// Its outward normal is the positive fixed axis.
type AARect struct {
	Plane    Plane
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material material.Material
}

// NewXYRect creates a rectangle spanning [x0,x1]×[y0,y1] at z=k
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *AARect {
	return &AARect{Plane: PlaneXY, A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: mat}
}

// NewXZRect creates a rectangle spanning [x0,x1]×[z0,z1] at y=k
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *AARect {
	return &AARect{Plane: PlaneXZ, A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: mat}
}

// NewYZRect creates a rectangle spanning [y0,y1]×[z0,z1] at x=k
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *AARect {
	return &AARect{Plane: PlaneYZ, A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: mat}
}

// Hit solves for the crossing of the fixed plane and checks the in-plane bounds
func (r *AARect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	aAxis, bAxis, kAxis := r.Plane.axes()

	t := (r.K - ray.Origin.Axis(kAxis)) / ray.Direction.Axis(kAxis)
	if math.IsNaN(t) || t <= tMin || t >= tMax {
		return nil, false
	}

	a := ray.Origin.Axis(aAxis) + t*ray.Direction.Axis(aAxis)
	b := ray.Origin.Axis(bAxis) + t*ray.Direction.Axis(bAxis)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		U:        (a - r.A0) / (r.A1 - r.A0),
		V:        (b - r.B0) / (r.B1 - r.B0),
		Material: r.Material,
	}
	hit.SetFaceNormal(ray, r.Plane.point(0, 0, 1))

	return hit, true
}

// BoundingBox pads the rectangle along the fixed axis so the box has volume
func (r *AARect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(
		r.Plane.point(r.A0, r.B0, r.K-rectPadding),
		r.Plane.point(r.A1, r.B1, r.K+rectPadding),
	), true
}

// Area returns the area of the rectangle
func (r *AARect) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

// PDFValue converts the uniform area density to solid angle: dist² / (|cos|·area)
func (r *AARect) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction), 0.001, math.Inf(1), sampler)
	if !ok {
		return 0
	}

	distanceSquared := hit.T * hit.T * direction.LengthSquared()
	cosine := math.Abs(direction.Dot(hit.Normal) / direction.Length())

	return distanceSquared / (cosine * r.Area())
}

// Random returns the direction from origin to a uniformly chosen point on the rectangle
func (r *AARect) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	s := sampler.Get2D()
	point := r.Plane.point(
		r.A0+s.X*(r.A1-r.A0),
		r.B0+s.Y*(r.B1-r.B0),
		r.K,
	)
	return point.Subtract(origin)
}
