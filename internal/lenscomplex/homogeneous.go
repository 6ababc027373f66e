package lenscomplex

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// PlanarHomogeneousSurface is the affine collineation that fixes its plane pointwise:
//
//	x' = x + ((x - p)·n) w
//
// It stretches distances from the plane by 1 + w·n and shears parallel to the plane.
type PlanarHomogeneousSurface struct {
	pointOnPlane r3.Vec
	normal       r3.Vec // unit, pointing outside
	shear        r3.Vec
	forward      *mat.Dense
	inverse      *mat.Dense
}

// NewPlanarHomogeneousSurface builds the unique plane-fixing affine map taking inside
// onto outside. It fails when either point lies in the plane: the map is then undefined
// (inside) or singular (outside).
func NewPlanarHomogeneousSurface(pointOnPlane, normal, inside, outside r3.Vec) (*PlanarHomogeneousSurface, error) {
	n, ok := unitVec(normal)
	if !ok {
		return nil, fmt.Errorf("%w: plane normal %v has no direction", ErrImagingDegenerate, normal)
	}
	if err := checkConjugates(inside, outside); err != nil {
		return nil, err
	}
	scale := lengthScale(inside, outside, pointOnPlane)
	si := r3.Dot(r3.Sub(inside, pointOnPlane), n)
	so := r3.Dot(r3.Sub(outside, pointOnPlane), n)
	if math.Abs(si) <= DegenerateEps*scale {
		return nil, fmt.Errorf("%w: inside point %v lies in the plane", ErrImagingDegenerate, inside)
	}
	if math.Abs(so) <= DegenerateEps*scale {
		return nil, fmt.Errorf("%w: outside point %v lies in the plane, the map would be singular", ErrImagingDegenerate, outside)
	}
	w := r3.Scale(1/si, r3.Sub(outside, inside))

	fwd := affineShear(pointOnPlane, n, w)
	var inv mat.Dense
	if err := inv.Inverse(fwd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImagingDegenerate, err)
	}
	DebugLog("Planar homogeneous surface: p=%v n=%v w=%v det=%.6g", pointOnPlane, n, w, so/si)
	return &PlanarHomogeneousSurface{
		pointOnPlane: pointOnPlane,
		normal:       n,
		shear:        w,
		forward:      fwd,
		inverse:      &inv,
	}, nil
}

func (s *PlanarHomogeneousSurface) PointOnPlane() r3.Vec { return s.pointOnPlane }
func (s *PlanarHomogeneousSurface) Normal() r3.Vec       { return s.normal }
func (s *PlanarHomogeneousSurface) Shear() r3.Vec        { return s.shear }
func (s *PlanarHomogeneousSurface) Kind() ElementKind    { return KindPlanarHomogeneous }
func (s *PlanarHomogeneousSurface) imagingElement()      {}

// Determinant of the outward map; the factor by which normal distances scale.
func (s *PlanarHomogeneousSurface) Determinant() float64 { return mat.Det(s.forward) }

// Matrix returns a copy of the homogeneous 4x4 map for the given direction.
func (s *PlanarHomogeneousSurface) Matrix(dir Direction) *mat.Dense {
	if dir == Outward {
		return mat.DenseCopyOf(s.forward)
	}
	return mat.DenseCopyOf(s.inverse)
}

func (s *PlanarHomogeneousSurface) ImagePosition(p r3.Vec, dir Direction) r3.Vec {
	if dir == Outward {
		return applyHomogeneous(s.forward, p)
	}
	return applyHomogeneous(s.inverse, p)
}

func (s *PlanarHomogeneousSurface) ToRenderableSurface(transmission float64, castsShadow bool) RenderSurface {
	return RenderSurface{
		Kind:         KindPlanarHomogeneous,
		Transmission: float32(clamp01(transmission)),
		CastsShadow:  castsShadow,
		PlanePoint:   toVector3(s.pointOnPlane),
		Normal:       toVector3(s.normal),
		Transform:    toMatrix4(s.forward),
	}
}
