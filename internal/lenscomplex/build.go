package lenscomplex

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// localFaces lists, for local face k of a tetrahedron, its corners in cell order;
// face k is opposite local vertex k.
var localFaces = [4][3]int{
	{1, 2, 3},
	{0, 2, 3},
	{0, 1, 3},
	{0, 1, 2},
}

// localEdges lists the six local vertex pairs of a tetrahedron.
var localEdges = [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

type faceKey [3]int

func keyOf(tri [3]int) faceKey {
	k := faceKey(tri)
	sort.Ints(k[:])
	return k
}

// NewComplexFromCells derives faces, edges and face orientation from tetrahedra.
//
// Faces are matched through their sorted vertex triples; a face seen once is a boundary
// face (Outer = Exterior), a face seen twice joins two cells, a third occurrence is a
// non-manifold topology error. After layering, every interior face is oriented so that
// its Outer cell is the neighbour closer to the exterior (ties keep the lower cell index
// as Inner).
func NewComplexFromCells(vertices []Vertex, cells [][4]int) (*Complex, error) {
	nv := len(vertices)
	if nv == 0 || len(cells) == 0 {
		return nil, fmt.Errorf("%w: need vertices and cells (got %d, %d)", ErrTopologyInconsistency, nv, len(cells))
	}

	var (
		faces    []Face
		edges    []Edge
		outCells = make([]Cell, len(cells))
		faceIdx  = make(map[faceKey]int, 2*len(cells))
		edgeSeen = make(map[Edge]bool, 2*len(cells))
	)
	for ci, cv := range cells {
		for k, v := range cv {
			if !inRange(v, nv) {
				return nil, fmt.Errorf("%w: cell %d has invalid vertex %d", ErrTopologyInconsistency, ci, v)
			}
			for _, w := range cv[:k] {
				if w == v {
					return nil, fmt.Errorf("%w: cell %d repeats vertex %d", ErrTopologyInconsistency, ci, v)
				}
			}
		}
		if err := checkVolume(ci, vertices, cv); err != nil {
			return nil, err
		}
		outCells[ci].Vertices = cv
		for k, lf := range localFaces {
			tri := [3]int{cv[lf[0]], cv[lf[1]], cv[lf[2]]}
			key := keyOf(tri)
			fi, ok := faceIdx[key]
			if !ok {
				fi = len(faces)
				faceIdx[key] = fi
				faces = append(faces, Face{Vertices: tri, Inner: ci, Outer: Exterior, Distance: -1})
			} else {
				if faces[fi].Outer != Exterior {
					return nil, fmt.Errorf("%w: face %v is shared by more than two cells (%d, %d, %d)",
						ErrTopologyInconsistency, key, faces[fi].Inner, faces[fi].Outer, ci)
				}
				faces[fi].Outer = ci
			}
			outCells[ci].Faces[k] = fi
		}
		for _, le := range localEdges {
			e := Edge{cv[le[0]], cv[le[1]]}
			if e[0] > e[1] {
				e[0], e[1] = e[1], e[0]
			}
			if !edgeSeen[e] {
				edgeSeen[e] = true
				edges = append(edges, e)
			}
		}
	}

	c, err := NewComplex(vertices, edges, faces, outCells)
	if err != nil {
		return nil, err
	}
	if err := c.layerFaces(); err != nil {
		return nil, err
	}
	c.orientFaces()
	if err := c.assignOutwardFaces(); err != nil {
		return nil, err
	}
	DebugLog("Built complex from %d cells: %d faces, %d edges, %d layers", len(cells), len(faces), len(edges), c.maxDistance+1)
	return c, nil
}

// checkVolume rejects tetrahedra whose signed volume vanishes relative to their size.
func checkVolume(ci int, vertices []Vertex, cv [4]int) error {
	a := vertices[cv[0]].Position
	u := r3.Sub(vertices[cv[1]].Position, a)
	v := r3.Sub(vertices[cv[2]].Position, a)
	w := r3.Sub(vertices[cv[3]].Position, a)
	vol6 := r3.Dot(u, r3.Cross(v, w))
	s := math.Max(r3.Norm(u), math.Max(r3.Norm(v), r3.Norm(w)))
	if !isFinite(vol6) || math.Abs(vol6) <= DegenerateEps*s*s*s {
		return fmt.Errorf("%w: cell %d has zero volume", ErrTopologyInconsistency, ci)
	}
	return nil
}

// orientFaces puts the neighbour closer to the exterior on the Outer side.
func (c *Complex) orientFaces() {
	for i := range c.faces {
		f := &c.faces[i]
		if f.Outer == Exterior {
			continue
		}
		if c.cellDist[f.Inner] < c.cellDist[f.Outer] {
			f.Inner, f.Outer = f.Outer, f.Inner
		}
	}
}
