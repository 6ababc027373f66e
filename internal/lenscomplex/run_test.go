package lenscomplex

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRunPreset(t *testing.T) {
	var report bytes.Buffer
	preview := filepath.Join(t.TempDir(), "omni.png")
	err := Run(context.Background(), RunCfg{
		Report:  &report,
		Preview: preview,
		Opts:    smallPreview,
	})
	require.NoError(t, err)

	var r Report
	require.NoError(t, yaml.Unmarshal(report.Bytes(), &r))
	assert.Equal(t, "omnidirectional", r.Name)
	assert.Equal(t, KindIdealThinLens, r.Kind)
	assert.Len(t, r.Faces, 16)

	_, err = os.Stat(preview)
	assert.NoError(t, err)
}

func TestRunInputsAndConfigs(t *testing.T) {
	in := writeFile(t, "tet.json", tetJSON)
	dir := t.TempDir()
	var report, stats bytes.Buffer
	log := NewEventLog()

	Debug = true
	defer func() { Debug = false }()
	err := Run(context.Background(), RunCfg{
		Inputs:   []string{in},
		Configs:  []ComplexCfg{{Name: "omni", Preset: "omni", Element: KindIdealThinLens}},
		Format:   "json",
		Report:   &report,
		Preview:  filepath.Join(dir, "p.gif"),
		Opts:     smallPreview,
		Observer: log,
		Stats:    &stats,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(report.String(), `"runId"`))
	assert.Contains(t, report.String(), `"name": "tet"`)
	assert.Contains(t, report.String(), `"kind": "planar-homogeneous"`)
	for _, name := range []string{"p_tet.gif", "p_omni.gif"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	assert.Equal(t, 4, log.Count("tet", FaceCalibrated))
	assert.Equal(t, 16, log.Count("omni", FaceCalibrated))
	assert.Contains(t, stats.String(), "Complex omni: 18 events")
	assert.Contains(t, stats.String(), "Complex tet: 6 events")
}

func TestRunSeveralReports(t *testing.T) {
	configs := []ComplexCfg{
		{Name: "left", Preset: "omni", Element: KindIdealThinLens},
		{Name: "right", Preset: "omni", Element: KindPlanarHomogeneous},
	}

	var tomlOut bytes.Buffer
	require.NoError(t, Run(context.Background(), RunCfg{Configs: configs, Format: "toml", Report: &tomlOut}))
	var set ReportSet
	require.NoError(t, toml.Unmarshal(tomlOut.Bytes(), &set), tomlOut.String())
	require.Len(t, set.Reports, 2)
	assert.Equal(t, "left", set.Reports[0].Name)
	assert.Equal(t, KindIdealThinLens, set.Reports[0].Kind)
	assert.Equal(t, "right", set.Reports[1].Name)
	assert.Equal(t, KindPlanarHomogeneous, set.Reports[1].Kind)
	assert.Len(t, set.Reports[1].Faces, 16)

	var yamlOut bytes.Buffer
	require.NoError(t, Run(context.Background(), RunCfg{Configs: configs, Format: "yaml", Report: &yamlOut}))
	dec := yaml.NewDecoder(&yamlOut)
	var names []string
	for {
		var r Report
		if err := dec.Decode(&r); err != nil {
			break
		}
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"left", "right"}, names)
}

func TestRunElementOverride(t *testing.T) {
	var report bytes.Buffer
	require.NoError(t, Run(context.Background(), RunCfg{Element: "homogeneous", Format: "toml", Report: &report}))
	assert.Contains(t, report.String(), "planar-homogeneous")
	assert.NotContains(t, report.String(), "ideal-thin-lens")

	assert.Error(t, Run(context.Background(), RunCfg{Element: "mirror"}))
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, Run(ctx, RunCfg{Inputs: []string{filepath.Join(t.TempDir(), "none.yaml")}}))
	assert.Error(t, Run(ctx, RunCfg{Preset: "cube"}))
	assert.Error(t, Run(ctx, RunCfg{Preview: filepath.Join(t.TempDir(), "p.tiff")}))

	bad := ComplexCfg{Name: "flat", Preset: "omni", Omni: &OmniLensCfg{LowerVirtual: 0.3, Lower: 0.3}}
	err := Run(ctx, RunCfg{Configs: []ComplexCfg{bad}})
	assert.ErrorIs(t, err, ErrImagingDegenerate)
	assert.Contains(t, err.Error(), "flat")
}
