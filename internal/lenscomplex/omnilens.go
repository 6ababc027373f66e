package lenscomplex

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// OmniLensCfg describes the omnidirectional lens: a triangular base of radius Radius in
// the plane y = Center.y, an apex Height above its center, and two inner vertices on
// the axis between them. Heights are measured from the base plane along +y.
type OmniLensCfg struct {
	Center       Point3  `json:"center" yaml:"center" toml:"center"`
	Radius       float64 `json:"radius,omitempty" yaml:"radius,omitempty" toml:"radius,omitempty"`
	Height       float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	Lower        float64 `json:"lower,omitempty" yaml:"lower,omitempty" toml:"lower,omitempty"`
	LowerVirtual float64 `json:"lowerVirtual,omitempty" yaml:"lowerVirtual,omitempty" toml:"lowerVirtual,omitempty"`
	Upper        float64 `json:"upper,omitempty" yaml:"upper,omitempty" toml:"upper,omitempty"`
	UpperVirtual float64 `json:"upperVirtual,omitempty" yaml:"upperVirtual,omitempty" toml:"upperVirtual,omitempty"`
}

// Vertex indices of the omnidirectional lens.
const (
	OmniBase0 = iota
	OmniBase1
	OmniBase2
	OmniApex
	OmniLower
	OmniUpper
)

func DefaultOmniLensCfg() OmniLensCfg {
	return OmniLensCfg{
		Center:       Point3{0, 0, 10},
		Radius:       1,
		Height:       1,
		Lower:        0.3,
		LowerVirtual: 0.1,
		Upper:        0.6,
		UpperVirtual: 0.9,
	}
}

// withDefaults fills zero sizes and heights; the center is taken as given.
func (o OmniLensCfg) withDefaults() OmniLensCfg {
	d := DefaultOmniLensCfg()
	if o.Radius == 0 {
		o.Radius = d.Radius
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.Lower == 0 {
		o.Lower = d.Lower
	}
	if o.LowerVirtual == 0 {
		o.LowerVirtual = d.LowerVirtual
	}
	if o.Upper == 0 {
		o.Upper = d.Upper
	}
	if o.UpperVirtual == 0 {
		o.UpperVirtual = d.UpperVirtual
	}
	return o
}

func (o OmniLensCfg) validate() error {
	if o.Radius <= 0 || o.Height <= 0 {
		return fmt.Errorf("omnidirectional lens needs positive radius and height, got %g, %g", o.Radius, o.Height)
	}
	if !(0 < o.Lower && o.Lower < o.Upper && o.Upper < o.Height) {
		return fmt.Errorf("omnidirectional lens needs 0 < lower < upper < height, got %g, %g, %g", o.Lower, o.Upper, o.Height)
	}
	for _, h := range []float64{o.LowerVirtual, o.UpperVirtual} {
		if h <= 0 || h >= o.Height {
			return fmt.Errorf("omnidirectional lens virtual height %g outside (0, %g)", h, o.Height)
		}
	}
	return nil
}

// NewOmnidirectionalLens builds the 6-vertex, 7-cell complex: one tetrahedron between
// the base and the lower vertex, three around the axis segment between the inner
// vertices and three under the apex. The inner vertices carry virtual positions.
func NewOmnidirectionalLens(cfg OmniLensCfg) (*Complex, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	c := cfg.Center.Vec()
	up := func(h float64) r3.Vec { return r3.Add(c, r3.Vec{Y: h}) }

	vertices := make([]Vertex, 6)
	for k := 0; k < 3; k++ {
		th := math.Pi/2 + 2*math.Pi*float64(k)/3
		vertices[OmniBase0+k] = Vertex{Position: r3.Add(c, r3.Vec{X: cfg.Radius * math.Cos(th), Z: cfg.Radius * math.Sin(th)})}
	}
	lowerV, upperV := up(cfg.LowerVirtual), up(cfg.UpperVirtual)
	vertices[OmniApex] = Vertex{Position: up(cfg.Height)}
	vertices[OmniLower] = Vertex{Position: up(cfg.Lower), Virtual: &lowerV}
	vertices[OmniUpper] = Vertex{Position: up(cfg.Upper), Virtual: &upperV}

	cells := [][4]int{{OmniBase0, OmniBase1, OmniBase2, OmniLower}}
	ring := [3][2]int{{OmniBase0, OmniBase1}, {OmniBase1, OmniBase2}, {OmniBase2, OmniBase0}}
	for _, r := range ring {
		cells = append(cells, [4]int{r[0], r[1], OmniLower, OmniUpper})
	}
	for _, r := range ring {
		cells = append(cells, [4]int{r[0], r[1], OmniUpper, OmniApex})
	}
	cx, err := NewComplexFromCells(vertices, cells)
	if err != nil {
		return nil, err
	}
	cx.SetName("omnidirectional")
	return cx, nil
}
