package lenscomplex

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Direction selects which side of an imaging element a point is imaged to.
type Direction uint8

const (
	Inward  Direction = iota // outside space -> inside space
	Outward                  // inside space -> outside space
)

func (d Direction) String() string {
	if d == Outward {
		return "outward"
	}
	return "inward"
}

// Opposite returns the inverse direction.
func (d Direction) Opposite() Direction {
	if d == Outward {
		return Inward
	}
	return Outward
}

// ElementKind enumerates the imaging element variants.
type ElementKind uint8

const (
	KindIdealThinLens ElementKind = iota
	KindPlanarHomogeneous
)

func (k ElementKind) String() string {
	switch k {
	case KindIdealThinLens:
		return "ideal-thin-lens"
	case KindPlanarHomogeneous:
		return "planar-homogeneous"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseElementKind accepts the String() names and the short forms "lens" and "homogeneous".
func ParseElementKind(s string) (ElementKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ideal-thin-lens", "lens", "thin-lens":
		return KindIdealThinLens, nil
	case "planar-homogeneous", "homogeneous":
		return KindPlanarHomogeneous, nil
	}
	return 0, fmt.Errorf("unknown imaging element kind %q", s)
}

func (k ElementKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ElementKind) UnmarshalText(b []byte) error {
	v, err := ParseElementKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ImagingElement is a planar optical transformation attached to a face. The set of
// implementations is closed: *IdealThinLens and *PlanarHomogeneousSurface.
//
// ImagePosition(p, Outward) and ImagePosition(p, Inward) are inverses of each other.
type ImagingElement interface {
	ImagePosition(p r3.Vec, dir Direction) r3.Vec
	ToRenderableSurface(transmission float64, castsShadow bool) RenderSurface
	Kind() ElementKind
	imagingElement()
}

// NewImagingElement builds the element of the given kind that fixes the plane through
// pointOnPlane with normal (pointing to the outside) and maps inside onto outside.
func NewImagingElement(kind ElementKind, pointOnPlane, normal, inside, outside r3.Vec) (ImagingElement, error) {
	switch kind {
	case KindIdealThinLens:
		l, err := NewIdealThinLens(pointOnPlane, normal, inside, outside)
		if err != nil {
			return nil, err
		}
		return l, nil
	case KindPlanarHomogeneous:
		s, err := NewPlanarHomogeneousSurface(pointOnPlane, normal, inside, outside)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported imaging element kind %v", kind)
}

// checkConjugates rejects coinciding or non-finite conjugate points.
func checkConjugates(inside, outside r3.Vec) error {
	if !finiteVec(inside) || !finiteVec(outside) {
		return fmt.Errorf("%w: non-finite conjugate points %v, %v", ErrImagingDegenerate, inside, outside)
	}
	if r3.Norm(r3.Sub(outside, inside)) <= DegenerateEps*lengthScale(inside, outside) {
		return fmt.Errorf("%w: conjugate points coincide at %v", ErrImagingDegenerate, inside)
	}
	return nil
}
