package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", a.Divide(2), NewVec3(0.5, 1, 1.5)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"AddScalar", a.AddScalar(1), NewVec3(2, 3, 4)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	v := NewVec3(3, 4, 0)
	if v.Length() != 5 {
		t.Errorf("Expected length 5, got %f", v.Length())
	}
	if v.LengthSquared() != 25 {
		t.Errorf("Expected squared length 25, got %f", v.LengthSquared())
	}
	if d := v.Dot(NewVec3(1, 1, 1)); d != 7 {
		t.Errorf("Expected dot 7, got %f", d)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(0, 3, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}

	// Zero vector has no direction; callers rely on NaN being sanitized later
	if !NewVec3(0, 0, 0).Normalize().IsNaN() {
		t.Error("Expected NaN components when normalizing the zero vector")
	}
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-7, 0, 0).NearZero() {
		t.Error("Expected 1e-7 component to not be near zero")
	}
}

func TestReflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	r := Reflect(v, n)
	expected := NewVec3(1, 1, 0)
	if r.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, r)
	}
}

func TestRefract(t *testing.T) {
	tests := []struct {
		name     string
		uv       Vec3
		etaRatio float64
		expected Vec3
	}{
		{
			name:     "Normal incidence passes straight through",
			uv:       NewVec3(0, -1, 0),
			etaRatio: 1.0 / 1.5,
			expected: NewVec3(0, -1, 0),
		},
		{
			name:     "Matched indices do not bend",
			uv:       NewVec3(1, -1, 0).Normalize(),
			etaRatio: 1.0,
			expected: NewVec3(1, -1, 0).Normalize(),
		},
	}

	n := NewVec3(0, 1, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Refract(tt.uv, n, tt.etaRatio)
			if result.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	uv := NewVec3(math.Sin(math.Pi/6), -math.Cos(math.Pi/6), 0)
	n := NewVec3(0, 1, 0)
	eta := 1.0 / 1.5

	result := Refract(uv, n, eta)
	sinOut := result.X / result.Length()
	if math.Abs(sinOut-eta*math.Sin(math.Pi/6)) > 1e-9 {
		t.Errorf("Expected sin(theta_t) %f, got %f", eta*math.Sin(math.Pi/6), sinOut)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		x, expected float64
	}{
		{-1, 0},
		{0.5, 0.5},
		{2, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.x, 0, 1); got != tt.expected {
			t.Errorf("Clamp(%f): expected %f, got %f", tt.x, tt.expected, got)
		}
	}
}
