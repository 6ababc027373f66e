package lenscomplex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// Point3 is a position written as [x, y, z] in config files.
type Point3 [3]float64

func (p Point3) Vec() r3.Vec { return r3.Vec{X: p[0], Y: p[1], Z: p[2]} }

type VertexCfg struct {
	Position Point3  `json:"position" yaml:"position" toml:"position"`
	Virtual  *Point3 `json:"virtual,omitempty" yaml:"virtual,omitempty" toml:"virtual,omitempty"`
}

// ComplexCfg describes one complex: either a preset or explicit vertices and
// tetrahedra, plus the element kind and render parameters.
type ComplexCfg struct {
	Name         string       `json:"name" yaml:"name" toml:"name"`
	Preset       string       `json:"preset,omitempty" yaml:"preset,omitempty" toml:"preset,omitempty"`
	Omni         *OmniLensCfg `json:"omni,omitempty" yaml:"omni,omitempty" toml:"omni,omitempty"`
	Vertices     []VertexCfg  `json:"vertices,omitempty" yaml:"vertices,omitempty" toml:"vertices,omitempty"`
	Cells        [][4]int     `json:"cells,omitempty" yaml:"cells,omitempty" toml:"cells,omitempty"`
	Element      ElementKind  `json:"element" yaml:"element" toml:"element"`
	Transmission float64      `json:"transmission,omitempty" yaml:"transmission,omitempty" toml:"transmission,omitempty"`
	CastsShadow  bool         `json:"castsShadow,omitempty" yaml:"castsShadow,omitempty" toml:"castsShadow,omitempty"`
}

const PresetOmnidirectional = "omnidirectional"

// Build validates and constructs the complex; it is not calibrated yet.
func (cc ComplexCfg) Build() (*Complex, error) {
	var (
		c   *Complex
		err error
	)
	switch strings.ToLower(cc.Preset) {
	case PresetOmnidirectional, "omni":
		omni := DefaultOmniLensCfg()
		if cc.Omni != nil {
			omni = *cc.Omni
		}
		c, err = NewOmnidirectionalLens(omni)
	case "":
		if len(cc.Vertices) == 0 || len(cc.Cells) == 0 {
			return nil, fmt.Errorf("complex %q has neither a preset nor vertices and cells", cc.Name)
		}
		vertices := make([]Vertex, len(cc.Vertices))
		for i, vc := range cc.Vertices {
			vertices[i].Position = vc.Position.Vec()
			if vc.Virtual != nil {
				v := vc.Virtual.Vec()
				vertices[i].Virtual = &v
			}
		}
		c, err = NewComplexFromCells(vertices, cc.Cells)
	default:
		return nil, fmt.Errorf("complex %q: unknown preset %q", cc.Name, cc.Preset)
	}
	if err != nil {
		return nil, err
	}
	if cc.Name != "" {
		c.SetName(cc.Name)
	}
	return c, nil
}

// LoadComplexCfg reads a complex description; the format follows the file extension
// (.yaml/.yml, .toml, anything else JSON).
func LoadComplexCfg(path string) (*ComplexCfg, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg ComplexCfg
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// Defaults
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if cfg.Transmission <= 0 {
		cfg.Transmission = Transmission
	}
	DebugLog("Loaded complex config from %s: name=%s preset=%q vertices=%d cells=%d element=%v", path, cfg.Name, cfg.Preset, len(cfg.Vertices), len(cfg.Cells), cfg.Element)
	return &cfg, nil
}
