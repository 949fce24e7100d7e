package core

import "math"

// ONB is an orthonormal basis whose W axis is aligned with a given direction
type ONB struct {
	U, V, W Vec3
}

// NewONB builds a basis around w. The helper axis is whichever of Y or X is
// less parallel to w so the cross product never degenerates.
func NewONB(w Vec3) ONB {
	unitW := w.Normalize()

	var a Vec3
	if math.Abs(unitW.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	} else {
		a = NewVec3(1, 0, 0)
	}

	v := unitW.Cross(a).Normalize()
	u := unitW.Cross(v)

	return ONB{U: u, V: v, W: unitW}
}

// Local maps coordinates (a, b, c) expressed in this basis to world space
func (o ONB) Local(a, b, c float64) Vec3 {
	return o.U.Multiply(a).Add(o.V.Multiply(b)).Add(o.W.Multiply(c))
}

// LocalVec maps a vector expressed in this basis to world space
func (o ONB) LocalVec(v Vec3) Vec3 {
	return o.Local(v.X, v.Y, v.Z)
}
