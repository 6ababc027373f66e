package lenscomplex

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Calibrator derives an imaging element for every face of a complex.
type Calibrator struct {
	Kind     ElementKind
	Observer Observer // optional
}

// Calibrate layers the complex and visits its faces in non-decreasing distance to the
// exterior. Each face gets the element that maps its inner vertex's physical position
// onto the position the already calibrated faces further out require, so that seen
// from outside the vertex appears at its virtual position.
//
// Elements are committed only when every face succeeded; on error the complex is left
// uncalibrated.
func (cb Calibrator) Calibrate(c *Complex) error {
	if c.elements != nil {
		return ErrAlreadyCalibrated
	}
	fail := func(face int, err error) error {
		notify(cb.Observer, Event{Category: CalibrationFailed, Complex: c.name, Face: face, Kind: cb.Kind, Err: err})
		return err
	}
	if err := c.ComputeLayers(); err != nil {
		return fail(-1, err)
	}
	notify(cb.Observer, Event{Category: LayersComputed, Complex: c.name, Face: -1, Layers: c.maxDistance + 1})

	staged := make([]ImagingElement, len(c.faces))
	for _, fi := range c.calibrationOrder() {
		el, err := c.calibrateFace(fi, cb.Kind, staged)
		if err != nil {
			return fail(fi, err)
		}
		staged[fi] = el
		notify(cb.Observer, Event{Category: FaceCalibrated, Complex: c.name, Face: fi, Distance: c.faces[fi].Distance, Kind: cb.Kind})
	}

	chains := make([][]int, len(c.cells))
	for ci := range c.cells {
		ch, err := c.CellChain(ci)
		if err != nil {
			return fail(c.outward[ci], err)
		}
		chains[ci] = ch
	}
	c.elements = staged
	c.cellChains = chains
	DebugLog("Calibrated %d faces as %v", len(staged), cb.Kind)
	notify(cb.Observer, Event{Category: ComplexCalibrated, Complex: c.name, Face: -1, Kind: cb.Kind, Layers: c.maxDistance + 1})
	return nil
}

func (c *Complex) calibrateFace(fi int, kind ElementKind, staged []ImagingElement) (ImagingElement, error) {
	iv, err := c.InnerVertex(fi)
	if err != nil {
		return nil, &FaceError{Face: fi, Stage: StageInnerVertex, Err: err}
	}
	chain, err := c.ChainToExterior(fi)
	if err != nil {
		return nil, &FaceError{Face: fi, Stage: StageChain, Err: err}
	}

	target := c.vertices[iv].VirtualPosition()
	for k := len(chain) - 1; k >= 1; k-- {
		el := staged[chain[k]]
		if el == nil {
			return nil, &FaceError{Face: fi, Stage: StageChain,
				Err: fmt.Errorf("%w: chain face %d is not closer to the exterior", ErrTopologyInconsistency, chain[k])}
		}
		target = el.ImagePosition(target, Inward)
	}
	if !finiteVec(target) {
		return nil, &FaceError{Face: fi, Stage: StageTarget,
			Err: fmt.Errorf("%w: vertex %d target is imaged to infinity", ErrImagingDegenerate, iv)}
	}

	point, normal := c.outwardPlane(fi, iv)
	el, err := NewImagingElement(kind, point, normal, c.vertices[iv].Position, target)
	if err != nil {
		return nil, &FaceError{Face: fi, Stage: StageElement, Err: err}
	}
	DebugLog("Face %d (d=%d): vertex %d %v -> %v", fi, c.faces[fi].Distance, iv, c.vertices[iv].Position, target)
	return el, nil
}

// outwardPlane returns the face's first corner and its normal, turned away from the
// inner vertex.
func (c *Complex) outwardPlane(fi, iv int) (point, normal r3.Vec) {
	v := c.faces[fi].Vertices
	a, b, d := c.vertices[v[0]].Position, c.vertices[v[1]].Position, c.vertices[v[2]].Position
	n := r3.Cross(r3.Sub(b, a), r3.Sub(d, a))
	if r3.Dot(r3.Sub(c.vertices[iv].Position, a), n) > 0 {
		n = r3.Scale(-1, n)
	}
	return a, n
}

// CalibrateAll calibrates independent complexes concurrently, one goroutine per
// complex. The first error cancels complexes that have not started yet.
func CalibrateAll(ctx context.Context, complexes []*Complex, cb Calibrator) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range complexes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := cb.Calibrate(c); err != nil {
				return fmt.Errorf("complex %d (%s): %w", i, c.name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (c *Complex) Calibrated() bool { return c.elements != nil }

// Element returns the imaging element of a calibrated face.
func (c *Complex) Element(face int) (ImagingElement, error) {
	if c.elements == nil {
		return nil, ErrNotCalibrated
	}
	if !inRange(face, len(c.faces)) {
		return nil, fmt.Errorf("%w: face %d out of range", ErrTopologyInconsistency, face)
	}
	return c.elements[face], nil
}

// ImagingFaces lists every face with its element, in face index order.
func (c *Complex) ImagingFaces() ([]ImagingFace, error) {
	if c.elements == nil {
		return nil, ErrNotCalibrated
	}
	out := make([]ImagingFace, len(c.faces))
	for i, f := range c.faces {
		out[i] = ImagingFace{Index: i, Face: f, Element: c.elements[i]}
	}
	return out, nil
}
