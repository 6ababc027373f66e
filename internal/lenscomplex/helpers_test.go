package lenscomplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func vec(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

func newOmni(t *testing.T) *Complex {
	t.Helper()
	c, err := NewOmnidirectionalLens(DefaultOmniLensCfg())
	require.NoError(t, err)
	return c
}

func calibratedOmni(t *testing.T, kind ElementKind) *Complex {
	t.Helper()
	c := newOmni(t)
	require.NoError(t, Calibrator{Kind: kind}.Calibrate(c))
	return c
}

func assertVecNear(t *testing.T, want, got r3.Vec, tol float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tol, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, tol, msgAndArgs...)
}

// singleTet is a provider-style topology of one tetrahedron with all faces on the
// boundary, face k opposite vertex k.
func singleTet() ([]Vertex, []Edge, []Face, []Cell) {
	vertices := []Vertex{
		{Position: vec(0, 0, 0)},
		{Position: vec(1, 0, 0)},
		{Position: vec(0, 1, 0)},
		{Position: vec(0, 0, 1)},
	}
	edges := []Edge{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	faces := []Face{
		{Vertices: [3]int{1, 2, 3}, Inner: 0, Outer: Exterior},
		{Vertices: [3]int{0, 2, 3}, Inner: 0, Outer: Exterior},
		{Vertices: [3]int{0, 1, 3}, Inner: 0, Outer: Exterior},
		{Vertices: [3]int{0, 1, 2}, Inner: 0, Outer: Exterior},
	}
	cells := []Cell{{Vertices: [4]int{0, 1, 2, 3}, Faces: [4]int{0, 1, 2, 3}}}
	return vertices, edges, faces, cells
}

// omniWithVirtual rebuilds the omnidirectional lens with vertex v's virtual position replaced.
func omniWithVirtual(t *testing.T, v int, virtual r3.Vec) *Complex {
	t.Helper()
	src := newOmni(t)
	vertices := src.Vertices()
	vertices[v].Virtual = &virtual
	cells := make([][4]int, src.NumCells())
	for i := range cells {
		cells[i] = src.Cell(i).Vertices
	}
	c, err := NewComplexFromCells(vertices, cells)
	require.NoError(t, err)
	return c
}

// cyclicOmni reorients the ring around the inner axis so that chains through the
// middle cells run in a circle.
func cyclicOmni(t *testing.T) *Complex {
	t.Helper()
	src := newOmni(t)
	faces := src.Faces()
	set := func(f, inner, outer int) {
		faces[f].Inner, faces[f].Outer = inner, outer
	}
	set(4, 1, 2) // {1,4,5}
	set(7, 2, 3) // {2,4,5}
	set(5, 3, 1) // {0,4,5}
	set(0, 0, 2) // {1,2,4}
	set(1, 0, 3) // {0,2,4}
	set(2, 0, 1) // {0,1,4}
	set(6, 4, 1) // {0,1,5}
	set(8, 5, 2) // {1,2,5}
	set(9, 6, 3) // {2,0,5}
	c, err := NewComplex(src.Vertices(), src.Edges(), faces, src.Cells())
	require.NoError(t, err)
	return c
}

// flippedOmni rebuilds the omnidirectional lens through NewComplex with the given
// faces turned inside out.
func flippedOmni(t *testing.T, flip ...int) *Complex {
	t.Helper()
	src := newOmni(t)
	faces := src.Faces()
	for _, f := range flip {
		faces[f].Inner, faces[f].Outer = faces[f].Outer, faces[f].Inner
	}
	c, err := NewComplex(src.Vertices(), src.Edges(), faces, src.Cells())
	require.NoError(t, err)
	return c
}

// focusTet is a calibrated single-tetrahedron lens whose face 0 {0,1,2} lies in z=0
// and images vertex 3 (0,0,1) to (0,0,-1): the principal point is the origin, the
// axis is -z and f = 0.5, so the plane z=0.5 has no finite image outward and z=-0.5
// none inward.
func focusTet(t *testing.T) *Complex {
	t.Helper()
	virtual := func(x, y, z float64) *r3.Vec {
		v := vec(x, y, z)
		return &v
	}
	vertices := []Vertex{
		{Position: vec(0, 0, 0), Virtual: virtual(0.125, 0.125, 0.125)},
		{Position: vec(1, 0, 0), Virtual: virtual(0.625, 0.125, 0.125)},
		{Position: vec(0, 1, 0), Virtual: virtual(0.125, 0.625, 0.125)},
		{Position: vec(0, 0, 1), Virtual: virtual(0, 0, -1)},
	}
	edges := []Edge{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	faces := []Face{
		{Vertices: [3]int{0, 1, 2}, Inner: 0, Outer: Exterior},
		{Vertices: [3]int{1, 2, 3}, Inner: 0, Outer: Exterior},
		{Vertices: [3]int{0, 2, 3}, Inner: 0, Outer: Exterior},
		{Vertices: [3]int{0, 1, 3}, Inner: 0, Outer: Exterior},
	}
	cells := []Cell{{Vertices: [4]int{0, 1, 2, 3}, Faces: [4]int{0, 1, 2, 3}}}
	c, err := NewComplex(vertices, edges, faces, cells)
	require.NoError(t, err)
	require.NoError(t, Calibrator{Kind: KindIdealThinLens}.Calibrate(c))
	return c
}
