package lenscomplex

import (
	"math"

	"cogentcore.org/core/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// Bounds is the axis-aligned box around the physical vertex positions.
func (c *Complex) Bounds() math32.Box3 {
	b := math32.B3Empty()
	for _, v := range c.vertices {
		b.ExpandByPoint(toVector3(v.Position))
	}
	return b
}

// boundingSphere returns the box center and the largest vertex distance from it.
func (c *Complex) boundingSphere() (center r3.Vec, radius float64) {
	bc := c.Bounds().Center()
	center = r3.Vec{X: float64(bc.X), Y: float64(bc.Y), Z: float64(bc.Z)}
	for _, v := range c.vertices {
		radius = math.Max(radius, r3.Norm(r3.Sub(v.Position, center)))
	}
	if radius == 0 {
		radius = 1
	}
	return center, radius
}
