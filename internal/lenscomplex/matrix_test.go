package lenscomplex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestAffineShear(t *testing.T) {
	p, n, w := vec(1, 2, 3), vec(0, 0, 1), vec(0.5, 0, 1)
	m := affineShear(p, n, w)
	q := vec(4, 5, 7)
	// x' = x + ((x - p)·n) w = q + 4 w
	assertVecNear(t, vec(6, 5, 11), applyHomogeneous(m, q), 1e-12)
	assert.InDelta(t, 2, mat.Det(m), 1e-12)
}

func TestApplyHomogeneousAtInfinity(t *testing.T) {
	m := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		1, 0, 0, 0,
	})
	got := applyHomogeneous(m, vec(0, 1, 1))
	assert.True(t, math.IsInf(got.X, 1))
}

func TestToMatrix4ColumnMajor(t *testing.T) {
	m := affineShear(vec(0, 0, 0), vec(0, 1, 0), vec(0, 0, 0))
	m.Set(0, 3, 7) // translation x
	m4 := toMatrix4(m)
	assert.Equal(t, float32(7), m4[12])
	assert.Equal(t, float32(1), m4[0])
	assert.Equal(t, float32(1), m4[15])
}
