package lenscomplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainToExterior(t *testing.T) {
	c := newOmni(t)
	tests := []struct {
		face int
		want []int
	}{
		{3, []int{3}},
		{12, []int{12}},
		{0, []int{0, 3}},
		{6, []int{6, 12}},
		{10, []int{10, 14}},
		{11, []int{11, 15}},
		{4, []int{4, 0, 3}},
		{5, []int{5, 1, 3}},
		{7, []int{7, 1, 3}},
	}
	for _, tt := range tests {
		got, err := c.ChainToExterior(tt.face)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "face %d", tt.face)
	}
	_, err := c.ChainToExterior(-1)
	assert.ErrorIs(t, err, ErrTopologyInconsistency)
}

func TestCellChain(t *testing.T) {
	c := newOmni(t)
	chain, err := c.CellChain(Exterior)
	require.NoError(t, err)
	assert.Empty(t, chain)

	want := [][]int{{3}, {2, 3}, {0, 3}, {1, 3}, {12}, {14}, {15}}
	for ci, w := range want {
		got, err := c.CellChain(ci)
		require.NoError(t, err)
		assert.Equal(t, w, got, "cell %d", ci)
	}
	_, err = c.CellChain(7)
	assert.ErrorIs(t, err, ErrInvalidCell)
}

func TestChainCycle(t *testing.T) {
	c := cyclicOmni(t)
	// 4 -> 7 stays at distance 2, so the walk stops before it can loop.
	_, err := c.ChainToExterior(4)
	assert.ErrorIs(t, err, ErrTopologyInconsistency)
	_, err = c.CellChain(2)
	assert.ErrorIs(t, err, ErrTopologyInconsistency)

	// Faces outside the ring still reach the exterior.
	chain, err := c.ChainToExterior(10)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 14}, chain)
}

func TestChainSameDistanceStep(t *testing.T) {
	// Face 6 {0,1,5} turned to point into cell 1, whose outward face 2 is also at
	// distance 1.
	c := flippedOmni(t, 6)
	_, err := c.ChainToExterior(6)
	require.ErrorIs(t, err, ErrTopologyInconsistency)
	assert.Contains(t, err.Error(), "face 6 (distance 1) to face 2 (distance 1)")

	chain, err := c.CellChain(4)
	require.NoError(t, err)
	assert.Equal(t, []int{12}, chain)
}
