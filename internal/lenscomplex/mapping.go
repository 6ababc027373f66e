package lenscomplex

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

func (c *Complex) calibratedChain(cell int) ([]int, error) {
	if c.elements == nil {
		return nil, ErrNotCalibrated
	}
	if !inRange(cell, len(c.cells)) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCell, cell)
	}
	return c.cellChains[cell], nil
}

// MapToOutside returns where a point inside cell appears when seen from the exterior.
// A point on the focal plane of a lens along the way has no finite image and yields
// ErrImagingDegenerate.
func (c *Complex) MapToOutside(cell int, p r3.Vec) (r3.Vec, error) {
	if cell == Exterior {
		return p, nil
	}
	chain, err := c.calibratedChain(cell)
	if err != nil {
		return r3.Vec{}, err
	}
	for _, f := range chain {
		if p = c.elements[f].ImagePosition(p, Outward); !finiteVec(p) {
			return r3.Vec{}, fmt.Errorf("%w: face %d images the point to infinity", ErrImagingDegenerate, f)
		}
	}
	return p, nil
}

// MapFromOutside is the inverse of MapToOutside.
func (c *Complex) MapFromOutside(cell int, p r3.Vec) (r3.Vec, error) {
	if cell == Exterior {
		return p, nil
	}
	chain, err := c.calibratedChain(cell)
	if err != nil {
		return r3.Vec{}, err
	}
	for k := len(chain) - 1; k >= 0; k-- {
		if p = c.elements[chain[k]].ImagePosition(p, Inward); !finiteVec(p) {
			return r3.Vec{}, fmt.Errorf("%w: face %d images the point to infinity", ErrImagingDegenerate, chain[k])
		}
	}
	return p, nil
}

// CheckConsistency verifies, for every face, that its inner vertex seen from outside
// through the face's chain lands on the vertex's virtual position, and that every cell's
// centroid survives a round trip through MapToOutside and MapFromOutside.
func (c *Complex) CheckConsistency(tol float64) error {
	if c.elements == nil {
		return ErrNotCalibrated
	}
	for fi := range c.faces {
		iv, err := c.InnerVertex(fi)
		if err != nil {
			return err
		}
		chain, err := c.ChainToExterior(fi)
		if err != nil {
			return err
		}
		p := c.vertices[iv].Position
		for _, g := range chain {
			p = c.elements[g].ImagePosition(p, Outward)
		}
		if want := c.vertices[iv].VirtualPosition(); !vecEqualWithin(p, want, tol) {
			return fmt.Errorf("%w: face %d images vertex %d to %v, want %v", ErrInconsistent, fi, iv, p, want)
		}
	}
	for ci, cl := range c.cells {
		var centroid r3.Vec
		for _, v := range cl.Vertices {
			centroid = r3.Add(centroid, c.vertices[v].Position)
		}
		centroid = r3.Scale(0.25, centroid)
		out, err := c.MapToOutside(ci, centroid)
		if err != nil {
			return err
		}
		back, err := c.MapFromOutside(ci, out)
		if err != nil {
			return err
		}
		if !vecEqualWithin(back, centroid, tol) {
			return fmt.Errorf("%w: cell %d round trip %v -> %v", ErrInconsistent, ci, centroid, back)
		}
	}
	return nil
}
