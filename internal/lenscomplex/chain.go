package lenscomplex

import "fmt"

// ChainToExterior returns the faces crossed when leaving the complex through face:
// the face itself, then the outward face of its outer cell, and so on until a face
// adjacent to the exterior. Every step must move strictly closer to the exterior;
// an orientation that breaks that is a topology inconsistency.
func (c *Complex) ChainToExterior(face int) ([]int, error) {
	if err := c.ensureLayers(); err != nil {
		return nil, err
	}
	if !inRange(face, len(c.faces)) {
		return nil, fmt.Errorf("%w: face %d out of range", ErrTopologyInconsistency, face)
	}
	chain := []int{face}
	for cur := face; c.faces[cur].Outer != Exterior; {
		if len(chain) == len(c.faces) {
			return nil, fmt.Errorf("%w: walk from face %d did not reach the exterior within %d faces", ErrChainUnreachable, face, len(c.faces))
		}
		next := c.outward[c.faces[cur].Outer]
		if c.faces[next].Distance >= c.faces[cur].Distance {
			return nil, fmt.Errorf("%w: chain from face %d steps from face %d (distance %d) to face %d (distance %d)",
				ErrTopologyInconsistency, face, cur, c.faces[cur].Distance, next, c.faces[next].Distance)
		}
		cur = next
		chain = append(chain, cur)
	}
	return chain, nil
}

// CellChain is the chain of the cell's outward face; empty for the exterior.
func (c *Complex) CellChain(cell int) ([]int, error) {
	if cell == Exterior {
		return nil, nil
	}
	f, err := c.OutwardFace(cell)
	if err != nil {
		return nil, err
	}
	return c.ChainToExterior(f)
}
