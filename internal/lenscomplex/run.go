package lenscomplex

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RunCfg drives one command-line run.
type RunCfg struct {
	Inputs    []string     // complex description files; empty means Preset
	Preset    string       // used when Inputs is empty
	Element   string       // overrides the element kind of every complex when set
	Tolerance float64      // consistency tolerance
	Format    string       // report format: json, yaml or toml
	Report    io.Writer    // nil: no report
	Preview   string       // preview path (.gif, .png or .webp); empty: none
	Opts      PreviewOpts  // preview settings
	Observer  Observer     // optional
	Stats     io.Writer    // event statistics, written when Debug is set
	Configs   []ComplexCfg // appended after Inputs, used by callers that build configs in memory
}

// Run builds every requested complex, calibrates them concurrently, verifies them,
// then writes previews and reports in input order. Several reports share one
// document, see EncodeReports.
func Run(ctx context.Context, cfg RunCfg) error {
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = Tolerance
	}
	if cfg.Format == "" {
		cfg.Format = ReportFormat
	}

	ccs := make([]ComplexCfg, 0, len(cfg.Inputs)+len(cfg.Configs)+1)
	for _, in := range cfg.Inputs {
		cc, err := LoadComplexCfg(in)
		if err != nil {
			return err
		}
		ccs = append(ccs, *cc)
	}
	ccs = append(ccs, cfg.Configs...)
	if len(ccs) == 0 {
		preset := cfg.Preset
		if preset == "" {
			preset = PresetOmnidirectional
		}
		ccs = append(ccs, ComplexCfg{Name: preset, Preset: preset, Transmission: Transmission})
	}
	if cfg.Element != "" {
		kind, err := ParseElementKind(cfg.Element)
		if err != nil {
			return err
		}
		for i := range ccs {
			ccs[i].Element = kind
		}
	}

	complexes := make([]*Complex, len(ccs))
	byKind := make(map[ElementKind][]*Complex)
	for i, cc := range ccs {
		c, err := cc.Build()
		if err != nil {
			return err
		}
		complexes[i] = c
		byKind[cc.Element] = append(byKind[cc.Element], c)
	}

	log := NewEventLog()
	obs := MultiObserver{log, cfg.Observer}
	start := time.Now()
	for _, kind := range []ElementKind{KindIdealThinLens, KindPlanarHomogeneous} {
		if len(byKind[kind]) == 0 {
			continue
		}
		if err := CalibrateAll(ctx, byKind[kind], Calibrator{Kind: kind, Observer: obs}); err != nil {
			return err
		}
	}
	DebugLog("Calibrated %d complexes in %s", len(complexes), time.Since(start))
	if Debug && cfg.Stats != nil {
		log.Stats(cfg.Stats)
	}

	var reports []*Report
	for i, c := range complexes {
		if err := c.CheckConsistency(cfg.Tolerance); err != nil {
			return fmt.Errorf("complex %s: %w", c.Name(), err)
		}
		if cfg.Report != nil {
			tc := ccs[i].Transmission
			if tc <= 0 {
				tc = Transmission
			}
			r, err := NewReport(c, tc, ccs[i].CastsShadow)
			if err != nil {
				return err
			}
			reports = append(reports, r)
		}
		if cfg.Preview != "" {
			path := previewPath(cfg.Preview, c.Name(), len(complexes) > 1)
			if err := savePreview(c, path, cfg.Opts); err != nil {
				return err
			}
			DebugLog("Saved preview #%d: %s", i, path)
		}
	}
	if cfg.Report != nil {
		return EncodeReports(cfg.Report, cfg.Format, reports)
	}
	return nil
}

// previewPath inserts the complex name before the extension when several complexes
// share one preview path.
func previewPath(path, name string, many bool) string {
	if !many {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + name + ext
}

func savePreview(c *Complex, path string, opts PreviewOpts) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return SavePreviewPNG(c, path, opts)
	case ".webp":
		return SavePreviewWebP(c, path, opts)
	case ".gif":
		return SavePreviewGIF(c, path, opts)
	}
	return fmt.Errorf("unsupported preview format %q", path)
}
