package lenscomplex

import (
	"cmp"
	"fmt"
	"slices"
)

// ComputeLayers assigns every face its distance to the exterior by breadth-first search
// seeded at the exterior-adjacent faces (layer 0); two faces are neighbours when they
// bound a common cell. It then picks, for every cell, the outward face its chain to the
// exterior starts with.
func (c *Complex) ComputeLayers() error {
	if err := c.layerFaces(); err != nil {
		return err
	}
	return c.assignOutwardFaces()
}

func (c *Complex) layerFaces() error {
	n := len(c.faces)
	dist := make([]int, n)
	queue := make([]int, 0, n)
	for i, f := range c.faces {
		dist[i] = -1
		if f.Outer == Exterior {
			dist[i] = 0
			queue = append(queue, i)
		}
	}
	if len(queue) == 0 {
		return fmt.Errorf("%w: no face is adjacent to the exterior", ErrTopologyInconsistency)
	}
	for h := 0; h < len(queue); h++ {
		fi := queue[h]
		f := c.faces[fi]
		for _, ci := range [2]int{f.Inner, f.Outer} {
			if ci == Exterior {
				continue
			}
			for _, g := range c.cells[ci].Faces {
				if dist[g] < 0 {
					dist[g] = dist[fi] + 1
					queue = append(queue, g)
				}
			}
		}
	}

	maxDist := 0
	for i, d := range dist {
		if d < 0 {
			return fmt.Errorf("%w: face %d is not connected to the exterior", ErrChainUnreachable, i)
		}
		c.faces[i].Distance = d
		maxDist = imax(maxDist, d)
	}
	c.maxDistance = maxDist

	c.cellDist = make([]int, len(c.cells))
	for ci, cl := range c.cells {
		m := dist[cl.Faces[0]]
		for _, g := range cl.Faces[1:] {
			m = min(m, dist[g])
		}
		c.cellDist[ci] = m
	}
	DebugLog("Layered %d faces into %d layers", n, maxDist+1)
	return nil
}

// assignOutwardFaces picks, per cell, the closest-to-exterior face that has the cell as
// its inner side (ties: lowest face index).
func (c *Complex) assignOutwardFaces() error {
	c.outward = make([]int, len(c.cells))
	for ci, cl := range c.cells {
		best := -1
		for _, g := range cl.Faces {
			if c.faces[g].Inner != ci {
				continue
			}
			if best < 0 || c.faces[g].Distance < c.faces[best].Distance ||
				(c.faces[g].Distance == c.faces[best].Distance && g < best) {
				best = g
			}
		}
		if best < 0 {
			return fmt.Errorf("%w: cell %d is the inner cell of none of its faces", ErrTopologyInconsistency, ci)
		}
		c.outward[ci] = best
	}
	c.layered = true
	return nil
}

func (c *Complex) ensureLayers() error {
	if c.layered {
		return nil
	}
	return c.ComputeLayers()
}

// Layers groups face indices by distance to the exterior.
func (c *Complex) Layers() ([][]int, error) {
	if err := c.ensureLayers(); err != nil {
		return nil, err
	}
	out := make([][]int, c.maxDistance+1)
	for i, f := range c.faces {
		out[f.Distance] = append(out[f.Distance], i)
	}
	return out, nil
}

// CellDistance is the smallest distance-to-exterior among the cell's faces.
func (c *Complex) CellDistance(cell int) (int, error) {
	if err := c.ensureLayers(); err != nil {
		return 0, err
	}
	if cell == Exterior {
		return -1, nil
	}
	if !inRange(cell, len(c.cells)) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCell, cell)
	}
	return c.cellDist[cell], nil
}

// OutwardFace is the face a cell's chain to the exterior starts with.
func (c *Complex) OutwardFace(cell int) (int, error) {
	if err := c.ensureLayers(); err != nil {
		return 0, err
	}
	if !inRange(cell, len(c.cells)) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCell, cell)
	}
	return c.outward[cell], nil
}

// calibrationOrder lists faces by non-decreasing distance, ties by index.
func (c *Complex) calibrationOrder() []int {
	order := make([]int, len(c.faces))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(c.faces[a].Distance, c.faces[b].Distance)
	})
	return order
}
