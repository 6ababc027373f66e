package lenscomplex

import (
	"cogentcore.org/core/math32"
)

// RenderSurface is what a renderer needs to draw a calibrated face as an optical
// surface. Transform is the outward map, column-major.
type RenderSurface struct {
	Kind           ElementKind
	Transmission   float32 // in [0,1]
	CastsShadow    bool
	PlanePoint     math32.Vector3
	Normal         math32.Vector3
	PrincipalPoint math32.Vector3 // lens only
	FocalLength    float32        // lens only
	Transform      math32.Matrix4
}

// ImagingFace pairs a calibrated face with its element.
type ImagingFace struct {
	Index   int
	Face    Face
	Element ImagingElement
}

// RenderableFace is a face triangle together with its render surface.
type RenderableFace struct {
	Face     int
	Triangle math32.Triangle
	Surface  RenderSurface
}

// RGB stores color components; each should be in [0,1].
type RGB struct {
	R, G, B float64
}

// clamp01 clamps each channel to [0,1].
func (c RGB) clamp01() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func clamp01(x float64) float64 {
	if x < 0 || x != x {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// RenderableFaces lists every calibrated face with its physical triangle.
func (c *Complex) RenderableFaces(transmission float64, castsShadow bool) ([]RenderableFace, error) {
	faces, err := c.ImagingFaces()
	if err != nil {
		return nil, err
	}
	out := make([]RenderableFace, 0, len(faces))
	for _, f := range faces {
		v := f.Face.Vertices
		out = append(out, RenderableFace{
			Face: f.Index,
			Triangle: math32.NewTriangle(
				toVector3(c.vertices[v[0]].Position),
				toVector3(c.vertices[v[1]].Position),
				toVector3(c.vertices[v[2]].Position),
			),
			Surface: f.Element.ToRenderableSurface(transmission, castsShadow),
		})
	}
	return out, nil
}
