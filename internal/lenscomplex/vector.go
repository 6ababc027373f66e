package lenscomplex

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// unitVec returns v scaled to unit length; ok is false for zero or non-finite vectors.
func unitVec(v r3.Vec) (u r3.Vec, ok bool) {
	l := r3.Norm(v)
	if l == 0 || !isFinite(l) {
		return r3.Vec{}, false
	}
	return r3.Scale(1/l, v), true
}

// lengthScale is the magnitude used to turn relative thresholds into absolute ones.
func lengthScale(ps ...r3.Vec) float64 {
	s := 0.0
	for _, p := range ps {
		s = math.Max(s, r3.Norm(p))
	}
	if s == 0 {
		return 1
	}
	return s
}

// vecEqualWithin compares component-wise with absolute and relative tolerance tol.
func vecEqualWithin(a, b r3.Vec, tol float64) bool {
	return scalar.EqualWithinAbsOrRel(a.X, b.X, tol, tol) &&
		scalar.EqualWithinAbsOrRel(a.Y, b.Y, tol, tol) &&
		scalar.EqualWithinAbsOrRel(a.Z, b.Z, tol, tol)
}

func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
