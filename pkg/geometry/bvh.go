package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode is a node in the Bounding Volume Hierarchy. A node built from a single
// object stores that same object as both children.
type BVHNode struct {
	nonLight
	Left  Hittable
	Right Hittable
	Box   core.AABB
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Nodes    int // Internal nodes
	Leaves   int // Distinct leaf references (an aliased leaf counts once)
	MaxDepth int
}

// NewBVH builds a hierarchy over objects valid for ray times in [time0, time1].
// Split axes are drawn from sampler. Panics if objects is empty or any object
// has no bounding box.
func NewBVH(objects []Hittable, time0, time1 float64, sampler core.Sampler) *BVHNode {
	if len(objects) == 0 {
		panic("bvh: cannot build a hierarchy with no objects")
	}

	// Sorting happens in place, so work on a copy of the caller's slice
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, time0, time1, sampler)
}

func buildBVH(objects []Hittable, time0, time1 float64, sampler core.Sampler) *BVHNode {
	axis := core.RandomInt(sampler, 0, 2)
	less := func(a, b Hittable) bool {
		return boxMin(a, axis, time0, time1) < boxMin(b, axis, time0, time1)
	}

	node := &BVHNode{}
	switch len(objects) {
	case 1:
		node.Left = objects[0]
		node.Right = objects[0]
	case 2:
		if less(objects[0], objects[1]) {
			node.Left, node.Right = objects[0], objects[1]
		} else {
			node.Left, node.Right = objects[1], objects[0]
		}
	default:
		sort.Slice(objects, func(i, j int) bool {
			return less(objects[i], objects[j])
		})

		mid := len(objects) / 2
		node.Left = buildBVH(objects[:mid], time0, time1, sampler)
		node.Right = buildBVH(objects[mid:], time0, time1, sampler)
	}

	boxLeft, okLeft := node.Left.BoundingBox(time0, time1)
	boxRight, okRight := node.Right.BoundingBox(time0, time1)
	if !okLeft || !okRight {
		panic("bvh: object without a bounding box")
	}
	node.Box = core.SurroundingBox(boxLeft, boxRight)

	return node
}

func boxMin(object Hittable, axis int, time0, time1 float64) float64 {
	box, ok := object.BoundingBox(time0, time1)
	if !ok {
		panic("bvh: object without a bounding box")
	}
	return box.Min.Axis(axis)
}

// Hit tests the left subtree, then the right subtree limited to the left hit,
// so the nearer of the two wins
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax, sampler)
	if hitLeft {
		tMax = leftHit.T
	}

	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax, sampler); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the cached union of both children
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, true
}

// Stats walks the hierarchy and reports its size
func (n *BVHNode) Stats() BVHStats {
	var stats BVHStats
	n.collectStats(&stats, 1)
	return stats
}

func (n *BVHNode) collectStats(stats *BVHStats, depth int) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	children := []Hittable{n.Left}
	if n.Right != n.Left {
		children = append(children, n.Right)
	}
	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(stats, depth+1)
		} else {
			stats.Leaves++
		}
	}
}
