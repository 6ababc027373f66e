package lenscomplex

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// IdealThinLens images every point through its principal point: a point at axial
// distance u from the lens plane is imaged to axial distance v with 1/v - 1/u = 1/f,
// and its transverse offset is scaled by the magnification m = v/u.
//
// Axial distances are measured along the optical axis, which points from the inside
// of the face to the outside.
type IdealThinLens struct {
	principalPoint r3.Vec
	axis           r3.Vec // unit
	focalLength    float64
}

// NewIdealThinLens builds the lens in the plane through pointOnPlane perpendicular to
// axis that images inside onto outside. The principal point is where the line through
// the two conjugate points crosses the lens plane.
func NewIdealThinLens(pointOnPlane, axis, inside, outside r3.Vec) (*IdealThinLens, error) {
	a, ok := unitVec(axis)
	if !ok {
		return nil, fmt.Errorf("%w: optical axis %v has no direction", ErrImagingDegenerate, axis)
	}
	if err := checkConjugates(inside, outside); err != nil {
		return nil, err
	}
	d := r3.Sub(outside, inside)
	den := r3.Dot(d, a)
	if math.Abs(den) <= DegenerateEps*r3.Norm(d) {
		return nil, fmt.Errorf("%w: conjugate points %v, %v lie on a line parallel to the lens plane", ErrImagingDegenerate, inside, outside)
	}
	t := r3.Dot(r3.Sub(pointOnPlane, inside), a) / den
	p := r3.Add(inside, r3.Scale(t, d))

	scale := lengthScale(inside, outside, pointOnPlane)
	u := r3.Dot(r3.Sub(inside, p), a)
	v := r3.Dot(r3.Sub(outside, p), a)
	if math.Abs(u) <= DegenerateEps*scale || math.Abs(v) <= DegenerateEps*scale {
		return nil, fmt.Errorf("%w: conjugate point lies in the lens plane (u=%g, v=%g)", ErrImagingDegenerate, u, v)
	}
	f := u * v / (u - v)
	if !isFinite(f) {
		return nil, fmt.Errorf("%w: focal length is not finite (u=%g, v=%g)", ErrImagingDegenerate, u, v)
	}
	DebugLog("Ideal thin lens: P=%v axis=%v u=%.6g v=%.6g f=%.6g", p, a, u, v, f)
	return &IdealThinLens{principalPoint: p, axis: a, focalLength: f}, nil
}

func (l *IdealThinLens) PrincipalPoint() r3.Vec { return l.principalPoint }
func (l *IdealThinLens) Axis() r3.Vec           { return l.axis }
func (l *IdealThinLens) FocalLength() float64   { return l.focalLength }
func (l *IdealThinLens) Kind() ElementKind      { return KindIdealThinLens }
func (l *IdealThinLens) imagingElement()        {}

// Magnification returns v/u for an object at axial distance u on the inside.
func (l *IdealThinLens) Magnification(u float64) float64 {
	return l.focalLength / (u + l.focalLength)
}

// ImagePosition splits p - P into an axial and a transverse part and applies the lens
// law. Points in the focal plane on the source side are imaged to infinity.
func (l *IdealThinLens) ImagePosition(p r3.Vec, dir Direction) r3.Vec {
	r := r3.Sub(p, l.principalPoint)
	x := r3.Dot(r, l.axis)
	tr := r3.Sub(r, r3.Scale(x, l.axis))
	var m float64
	if dir == Outward {
		m = l.focalLength / (x + l.focalLength)
	} else {
		m = l.focalLength / (l.focalLength - x)
	}
	return r3.Add(l.principalPoint, r3.Add(r3.Scale(m*x, l.axis), r3.Scale(m, tr)))
}

// Matrix is the lens as a 4x4 projective map in homogeneous coordinates.
func (l *IdealThinLens) Matrix(dir Direction) *mat.Dense {
	f := l.focalLength
	if dir == Inward {
		f = -f
	}
	return lensProjective(l.principalPoint, l.axis, f)
}

func (l *IdealThinLens) ToRenderableSurface(transmission float64, castsShadow bool) RenderSurface {
	return RenderSurface{
		Kind:           KindIdealThinLens,
		Transmission:   float32(clamp01(transmission)),
		CastsShadow:    castsShadow,
		PlanePoint:     toVector3(l.principalPoint),
		Normal:         toVector3(l.axis),
		PrincipalPoint: toVector3(l.principalPoint),
		FocalLength:    float32(l.focalLength),
		Transform:      toMatrix4(l.Matrix(Outward)),
	}
}
