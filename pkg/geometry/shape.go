package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HittableList is a flat collection of objects tested one by one
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list from the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit among all objects, shrinking the search
// interval every time a closer hit is found
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar, sampler); ok {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of the members' boxes. Members without a box are skipped.
func (l *HittableList) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	var result core.AABB
	found := false

	for _, object := range l.Objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			continue
		}
		if found {
			result = core.SurroundingBox(result, box)
		} else {
			result = box
			found = true
		}
	}

	return result, found
}

// PDFValue is the unweighted average of the members' densities
func (l *HittableList) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	if len(l.Objects) == 0 {
		return 0
	}

	weight := 1.0 / float64(len(l.Objects))
	sum := 0.0
	for _, object := range l.Objects {
		sum += weight * object.PDFValue(origin, direction, sampler)
	}
	return sum
}

// Random picks a member uniformly and samples a direction toward it
func (l *HittableList) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if len(l.Objects) == 0 {
		return core.NewVec3(1, 0, 0)
	}
	index := core.RandomInt(sampler, 0, len(l.Objects)-1)
	return l.Objects[index].Random(origin, sampler)
}
