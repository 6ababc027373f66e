package lenscomplex

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// FaceReport holds the derived parameters of one calibrated face.
type FaceReport struct {
	Face           int         `json:"face" yaml:"face" toml:"face"`
	Distance       int         `json:"distance" yaml:"distance" toml:"distance"`
	Inner          int         `json:"inner" yaml:"inner" toml:"inner"`
	Outer          int         `json:"outer" yaml:"outer" toml:"outer"`
	InnerVertex    int         `json:"innerVertex" yaml:"innerVertex" toml:"innerVertex"`
	Chain          []int       `json:"chain" yaml:"chain,flow" toml:"chain"`
	Kind           ElementKind `json:"kind" yaml:"kind" toml:"kind"`
	PlanePoint     Point3      `json:"planePoint" yaml:"planePoint,flow" toml:"planePoint"`
	Normal         Point3      `json:"normal" yaml:"normal,flow" toml:"normal"`
	PrincipalPoint *Point3     `json:"principalPoint,omitempty" yaml:"principalPoint,omitempty,flow" toml:"principalPoint,omitempty"`
	FocalLength    *float64    `json:"focalLength,omitempty" yaml:"focalLength,omitempty" toml:"focalLength,omitempty"`
	Determinant    *float64    `json:"determinant,omitempty" yaml:"determinant,omitempty" toml:"determinant,omitempty"`
	Transmission   float32     `json:"transmission" yaml:"transmission" toml:"transmission"`
	CastsShadow    bool        `json:"castsShadow" yaml:"castsShadow" toml:"castsShadow"`
}

// Report summarises one calibration run.
type Report struct {
	RunID    string       `json:"runId" yaml:"runId" toml:"runId"`
	Name     string       `json:"name" yaml:"name" toml:"name"`
	Kind     ElementKind  `json:"kind" yaml:"kind" toml:"kind"`
	Vertices int          `json:"vertices" yaml:"vertices" toml:"vertices"`
	Edges    int          `json:"edges" yaml:"edges" toml:"edges"`
	Cells    int          `json:"cells" yaml:"cells" toml:"cells"`
	Layers   [][]int      `json:"layers" yaml:"layers" toml:"layers"`
	Faces    []FaceReport `json:"faces" yaml:"faces" toml:"faces"`
}

func point3(v r3.Vec) Point3 { return Point3{v.X, v.Y, v.Z} }

// NewReport describes a calibrated complex under a fresh run ID; the render
// parameters are recorded as the faces' surfaces would carry them.
func NewReport(c *Complex, transmission float64, castsShadow bool) (*Report, error) {
	faces, err := c.ImagingFaces()
	if err != nil {
		return nil, err
	}
	surfaces, err := c.RenderableFaces(transmission, castsShadow)
	if err != nil {
		return nil, err
	}
	layers, err := c.Layers()
	if err != nil {
		return nil, err
	}
	r := &Report{
		RunID:    uuid.New().String(),
		Name:     c.name,
		Vertices: len(c.vertices),
		Edges:    len(c.edges),
		Cells:    len(c.cells),
		Layers:   layers,
		Faces:    make([]FaceReport, 0, len(faces)),
	}
	for i, f := range faces {
		iv, err := c.InnerVertex(f.Index)
		if err != nil {
			return nil, err
		}
		chain, err := c.ChainToExterior(f.Index)
		if err != nil {
			return nil, err
		}
		fr := FaceReport{
			Face:         f.Index,
			Distance:     f.Face.Distance,
			Inner:        f.Face.Inner,
			Outer:        f.Face.Outer,
			InnerVertex:  iv,
			Chain:        chain,
			Kind:         f.Element.Kind(),
			Transmission: surfaces[i].Surface.Transmission,
			CastsShadow:  surfaces[i].Surface.CastsShadow,
		}
		switch el := f.Element.(type) {
		case *IdealThinLens:
			pp, fl := point3(el.PrincipalPoint()), el.FocalLength()
			fr.PlanePoint, fr.Normal = pp, point3(el.Axis())
			fr.PrincipalPoint, fr.FocalLength = &pp, &fl
		case *PlanarHomogeneousSurface:
			det := el.Determinant()
			fr.PlanePoint, fr.Normal = point3(el.PointOnPlane()), point3(el.Normal())
			fr.Determinant = &det
		}
		r.Kind = fr.Kind
		r.Faces = append(r.Faces, fr)
	}
	return r, nil
}

// Encode writes the report as json, yaml or toml.
func (r *Report) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(r)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// ReportSet wraps several reports so that formats without document streams can hold
// them; in TOML it is an array of tables under "reports".
type ReportSet struct {
	Reports []*Report `json:"reports" yaml:"reports" toml:"reports"`
}

// EncodeReports writes reports in one format. A single report is written as by
// Encode. Several reports become a JSON value stream, a YAML multi-document stream
// or one TOML ReportSet.
func EncodeReports(w io.Writer, format string, reports []*Report) error {
	if len(reports) == 1 {
		return reports[0].Encode(w, format)
	}
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		for _, r := range reports {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, r := range reports {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(ReportSet{Reports: reports})
	}
	return fmt.Errorf("unknown report format %q", format)
}
