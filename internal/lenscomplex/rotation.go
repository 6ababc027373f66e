package lenscomplex

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// rotXZ turns about the y axis (the omnidirectional lens axis), carrying x towards z.
func rotXZ(a float64) r3.Rotation { return r3.NewRotation(-a, r3.Vec{Y: 1}) }

// rotYZ tilts about the x axis, carrying y towards z.
func rotYZ(a float64) r3.Rotation { return r3.NewRotation(a, r3.Vec{X: 1}) }

// viewRotation spins by spin radians about y, then tilts by tilt radians.
func viewRotation(spin, tilt float64) *r3.Mat {
	q := quat.Mul(quat.Number(rotYZ(tilt)), quat.Number(rotXZ(spin)))
	return r3.Rotation(q).Mat()
}
