package lenscomplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func baseSurface(t *testing.T) *PlanarHomogeneousSurface {
	t.Helper()
	s, err := NewPlanarHomogeneousSurface(vec(0, 0, 11), vec(0, -2, 0), vec(0, 0.3, 10), vec(0, 0.1, 10))
	require.NoError(t, err)
	return s
}

func TestPlanarHomogeneousParameters(t *testing.T) {
	s := baseSurface(t)
	assert.Equal(t, KindPlanarHomogeneous, s.Kind())
	assert.Equal(t, vec(0, 0, 11), s.PointOnPlane())
	assertVecNear(t, vec(0, -1, 0), s.Normal(), 0)
	assertVecNear(t, vec(0, 2.0/3, 0), s.Shear(), 1e-12)
	assert.InDelta(t, 1.0/3, s.Determinant(), 1e-12)
}

func TestPlanarHomogeneousImaging(t *testing.T) {
	s := baseSurface(t)
	assertVecNear(t, vec(0, 0.1, 10), s.ImagePosition(vec(0, 0.3, 10), Outward), 1e-12)
	assertVecNear(t, vec(0.2, 0.2, 10), s.ImagePosition(vec(0.2, 0.6, 10), Outward), 1e-12)
	assertVecNear(t, vec(0.2, 0.6, 10), s.ImagePosition(vec(0.2, 0.2, 10), Inward), 1e-12)
	// The plane is fixed pointwise.
	assertVecNear(t, vec(0.4, 0, 9.1), s.ImagePosition(vec(0.4, 0, 9.1), Outward), 1e-12)
}

func TestPlanarHomogeneousMatrices(t *testing.T) {
	s := baseSurface(t)
	var prod mat.Dense
	prod.Mul(s.Matrix(Outward), s.Matrix(Inward))
	assert.True(t, mat.EqualApprox(&prod, eye4(), 1e-12), "forward * inverse:\n%v", mat.Formatted(&prod))

	// Matrix returns a copy.
	m := s.Matrix(Outward)
	m.Set(0, 0, 42)
	assert.InDelta(t, 1.0/3, s.Determinant(), 1e-12)
}

func TestPlanarHomogeneousDegenerate(t *testing.T) {
	tests := []struct {
		name                   string
		point, normal, in, out Point3
	}{
		{"zero normal", Point3{0, 0, 10}, Point3{0, 0, 0}, Point3{0, 0.3, 10}, Point3{0, 0.1, 10}},
		{"coincident", Point3{0, 0, 10}, Point3{0, 1, 0}, Point3{0, 0.3, 10}, Point3{0, 0.3, 10}},
		{"inside in plane", Point3{0, 0, 10}, Point3{0, 1, 0}, Point3{0.5, 0, 10}, Point3{0, 0.1, 10}},
		{"outside in plane", Point3{0, 0, 10}, Point3{0, 1, 0}, Point3{0, 0.3, 10}, Point3{0.5, 0, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewPlanarHomogeneousSurface(tt.point.Vec(), tt.normal.Vec(), tt.in.Vec(), tt.out.Vec())
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrImagingDegenerate)
		})
	}
}

func eye4() *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 1)
	}
	return m
}
