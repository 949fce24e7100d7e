package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestHittableList_PDFValueAveragesMembers(t *testing.T) {
	small := NewXZRect(-1, 1, -1, 1, 2, DummyMaterial{})
	large := NewXZRect(-3, 3, -3, 3, 5, DummyMaterial{})
	lights := NewHittableList(small, large)
	sampler := core.NewSeededSampler(1)

	origin := core.NewVec3(0, 0, 0)
	up := core.NewVec3(0, 1, 0)

	smallPDF := small.PDFValue(origin, up, sampler)
	largePDF := large.PDFValue(origin, up, sampler)
	if math.Abs(smallPDF-1) > 1e-9 {
		t.Errorf("Expected small rect density 1, got %f", smallPDF)
	}
	if math.Abs(largePDF-25.0/36.0) > 1e-9 {
		t.Errorf("Expected large rect density 25/36, got %f", largePDF)
	}

	expected := 0.5 * (smallPDF + largePDF)
	if got := lights.PDFValue(origin, up, sampler); math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected mean density %f, got %f", expected, got)
	}

	// Misses the small rect, so only the large one contributes its half
	side := core.NewVec3(1.1, 2, 0)
	if small.PDFValue(origin, side, sampler) != 0 {
		t.Fatal("Expected the small rect to be missed")
	}
	expected = 0.5 * large.PDFValue(origin, side, sampler)
	if expected <= 0 {
		t.Fatal("Expected the large rect to be hit")
	}
	if got := lights.PDFValue(origin, side, sampler); math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected %f off axis, got %f", expected, got)
	}
}

func TestHittableList_RandomPicksMembersUniformly(t *testing.T) {
	heights := []float64{2, 5, 8}
	lights := NewHittableList(
		NewXZRect(-1, 1, -1, 1, heights[0], DummyMaterial{}),
		NewXZRect(-4, 4, -4, 4, heights[1], DummyMaterial{}),
		NewXZRect(-0.1, 0.1, -0.1, 0.1, heights[2], DummyMaterial{}),
	)
	sampler := core.NewSeededSampler(7)
	origin := core.NewVec3(0, 0, 0)

	const samples = 30000
	counts := make([]int, len(heights))
	for i := 0; i < samples; i++ {
		dir := lights.Random(origin, sampler)
		found := false
		for j, h := range heights {
			if math.Abs(dir.Y-h) < 1e-9 {
				counts[j]++
				found = true
			}
		}
		if !found {
			t.Fatalf("Sampled direction %v does not end on any member", dir)
		}
	}

	for j, count := range counts {
		fraction := float64(count) / samples
		if math.Abs(fraction-1.0/3.0) > 0.02 {
			t.Errorf("Member %d picked %.3f of the time, expected about 1/3", j, fraction)
		}
	}
}

func TestHittableList_Empty(t *testing.T) {
	list := NewHittableList()
	sampler := core.NewSeededSampler(1)

	box, ok := list.BoundingBox(0, 1)
	if ok {
		t.Error("Expected no bounding box for an empty list")
	}
	if box != (core.AABB{}) {
		t.Errorf("Expected zero box, got %v", box)
	}

	if got := list.PDFValue(core.Vec3{}, core.NewVec3(0, 1, 0), sampler); got != 0 {
		t.Errorf("Expected zero density, got %f", got)
	}
	if _, hit := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), 0.001, math.Inf(1), sampler); hit {
		t.Error("Expected empty list to miss")
	}
}
