package lenscomplex

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is a physical-space position with an optional designated virtual-space position.
type Vertex struct {
	Position r3.Vec
	Virtual  *r3.Vec // nil when the vertex does not move between the two spaces
}

// VirtualPosition returns the designated virtual-space position, or the physical one.
func (v Vertex) VirtualPosition() r3.Vec {
	if v.Virtual != nil {
		return *v.Virtual
	}
	return v.Position
}

func (v Vertex) clone() Vertex {
	if v.Virtual != nil {
		p := *v.Virtual
		v.Virtual = &p
	}
	return v
}

// Edge is a pair of vertex indices.
type Edge [2]int

// Face is a triangle between an inner cell and an outer cell; Outer may be Exterior.
// Distance is the topological distance to the exterior (-1 until layers are computed).
type Face struct {
	Vertices [3]int
	Inner    int
	Outer    int
	Distance int
}

// Has reports whether vertex v is a corner of the face.
func (f Face) Has(v int) bool {
	return f.Vertices[0] == v || f.Vertices[1] == v || f.Vertices[2] == v
}

// Boundary reports whether the face is adjacent to the exterior.
func (f Face) Boundary() bool { return f.Outer == Exterior }

// Cell is a tetrahedron: four vertex indices and its four bounding faces.
type Cell struct {
	Vertices [4]int
	Faces    [4]int
}

// Complex is an index-based simplicial complex. Faces are stored in an arena of stable
// indices; calibration fills a parallel slot of imaging elements, one per face.
type Complex struct {
	name     string
	vertices []Vertex
	edges    []Edge
	faces    []Face
	cells    []Cell

	layered     bool
	maxDistance int
	cellDist    []int
	outward     []int // per cell: face leading toward the exterior

	elements   []ImagingElement // nil until calibrated
	cellChains [][]int
}

// NewComplex takes a provider-supplied topology, validates index ranges and cell/face
// back references, and returns an uncalibrated complex. Inputs are copied.
func NewComplex(vertices []Vertex, edges []Edge, faces []Face, cells []Cell) (*Complex, error) {
	nv, nf, nc := len(vertices), len(faces), len(cells)
	if nv == 0 || nf == 0 || nc == 0 {
		return nil, fmt.Errorf("%w: complex needs vertices, faces and cells (got %d, %d, %d)", ErrTopologyInconsistency, nv, nf, nc)
	}
	for i, e := range edges {
		if !inRange(e[0], nv) || !inRange(e[1], nv) || e[0] == e[1] {
			return nil, fmt.Errorf("%w: edge %d has invalid vertices %v", ErrTopologyInconsistency, i, e)
		}
	}
	boundary := 0
	for i, f := range faces {
		a, b, c := f.Vertices[0], f.Vertices[1], f.Vertices[2]
		if !inRange(a, nv) || !inRange(b, nv) || !inRange(c, nv) || a == b || b == c || a == c {
			return nil, fmt.Errorf("%w: face %d has invalid vertices %v", ErrTopologyInconsistency, i, f.Vertices)
		}
		if !inRange(f.Inner, nc) {
			return nil, fmt.Errorf("%w: face %d has invalid inner cell %d", ErrTopologyInconsistency, i, f.Inner)
		}
		if f.Outer != Exterior && !inRange(f.Outer, nc) {
			return nil, fmt.Errorf("%w: face %d has invalid outer cell %d", ErrTopologyInconsistency, i, f.Outer)
		}
		if f.Inner == f.Outer {
			return nil, fmt.Errorf("%w: face %d has the same cell %d on both sides", ErrTopologyInconsistency, i, f.Inner)
		}
		if f.Outer == Exterior {
			boundary++
		}
	}
	if boundary == 0 {
		return nil, fmt.Errorf("%w: no face is adjacent to the exterior", ErrTopologyInconsistency)
	}
	for ci, cl := range cells {
		for k, v := range cl.Vertices {
			if !inRange(v, nv) {
				return nil, fmt.Errorf("%w: cell %d has invalid vertex %d", ErrTopologyInconsistency, ci, v)
			}
			for _, w := range cl.Vertices[:k] {
				if w == v {
					return nil, fmt.Errorf("%w: cell %d repeats vertex %d", ErrTopologyInconsistency, ci, v)
				}
			}
		}
		for _, fi := range cl.Faces {
			if !inRange(fi, nf) {
				return nil, fmt.Errorf("%w: cell %d has invalid face %d", ErrTopologyInconsistency, ci, fi)
			}
			if f := faces[fi]; f.Inner != ci && f.Outer != ci {
				return nil, fmt.Errorf("%w: cell %d lists face %d which does not reference it", ErrTopologyInconsistency, ci, fi)
			}
		}
	}
	for i, f := range faces {
		for _, ci := range [2]int{f.Inner, f.Outer} {
			if ci == Exterior {
				continue
			}
			if !cells[ci].hasFace(i) {
				return nil, fmt.Errorf("%w: face %d references cell %d which does not list it", ErrTopologyInconsistency, i, ci)
			}
		}
		if f.Outer != Exterior {
			for _, v := range f.Vertices {
				if !cells[f.Outer].hasVertex(v) {
					return nil, fmt.Errorf("%w: face %d vertex %d is not a vertex of its outer cell %d", ErrTopologyInconsistency, i, v, f.Outer)
				}
			}
		}
	}

	c := &Complex{
		vertices: make([]Vertex, nv),
		edges:    append([]Edge(nil), edges...),
		faces:    append([]Face(nil), faces...),
		cells:    append([]Cell(nil), cells...),
	}
	for i, v := range vertices {
		c.vertices[i] = v.clone()
	}
	for i := range c.faces {
		c.faces[i].Distance = -1
	}
	DebugLog("Created complex: vertices=%d edges=%d faces=%d cells=%d", nv, len(edges), nf, nc)
	return c, nil
}

func inRange(i, n int) bool { return i >= 0 && i < n }

func (cl Cell) hasVertex(v int) bool {
	return cl.Vertices[0] == v || cl.Vertices[1] == v || cl.Vertices[2] == v || cl.Vertices[3] == v
}

func (cl Cell) hasFace(f int) bool {
	return cl.Faces[0] == f || cl.Faces[1] == f || cl.Faces[2] == f || cl.Faces[3] == f
}

// Name labels the complex in events and reports.
func (c *Complex) Name() string        { return c.name }
func (c *Complex) SetName(name string) { c.name = name }

func (c *Complex) NumVertices() int { return len(c.vertices) }
func (c *Complex) NumEdges() int    { return len(c.edges) }
func (c *Complex) NumFaces() int    { return len(c.faces) }
func (c *Complex) NumCells() int    { return len(c.cells) }

func (c *Complex) Vertex(i int) Vertex { return c.vertices[i].clone() }
func (c *Complex) Edge(i int) Edge     { return c.edges[i] }
func (c *Complex) Face(i int) Face     { return c.faces[i] }
func (c *Complex) Cell(i int) Cell     { return c.cells[i] }

// Vertices returns a copy of the vertex table.
func (c *Complex) Vertices() []Vertex {
	out := make([]Vertex, len(c.vertices))
	for i, v := range c.vertices {
		out[i] = v.clone()
	}
	return out
}

// Edges returns a copy of the edge table.
func (c *Complex) Edges() []Edge { return append([]Edge(nil), c.edges...) }

// Faces returns a copy of the face table.
func (c *Complex) Faces() []Face { return append([]Face(nil), c.faces...) }

// Cells returns a copy of the cell table.
func (c *Complex) Cells() []Cell { return append([]Cell(nil), c.cells...) }

// InnerVertex returns the unique vertex of the face's inner cell that is not on the face.
func (c *Complex) InnerVertex(face int) (int, error) {
	if !inRange(face, len(c.faces)) {
		return -1, fmt.Errorf("%w: face %d out of range", ErrTopologyInconsistency, face)
	}
	f := c.faces[face]
	found, n := -1, 0
	for _, v := range c.cells[f.Inner].Vertices {
		if !f.Has(v) {
			found = v
			n++
		}
	}
	if n != 1 {
		return -1, fmt.Errorf("%w: inner cell %d of face %d has %d vertices off the face, want 1", ErrTopologyInconsistency, f.Inner, face, n)
	}
	return found, nil
}

// cellWithEdge returns the first cell containing both vertices, or Exterior.
func (c *Complex) cellWithEdge(e Edge) int {
	for ci, cl := range c.cells {
		a, b := false, false
		for _, v := range cl.Vertices {
			a = a || v == e[0]
			b = b || v == e[1]
		}
		if a && b {
			return ci
		}
	}
	return Exterior
}
