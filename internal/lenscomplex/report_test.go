package lenscomplex

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewReportLens(t *testing.T) {
	c := calibratedOmni(t, KindIdealThinLens)
	r, err := NewReport(c, Transmission, true)
	require.NoError(t, err)

	_, err = uuid.Parse(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, "omnidirectional", r.Name)
	assert.Equal(t, KindIdealThinLens, r.Kind)
	assert.Equal(t, 6, r.Vertices)
	assert.Equal(t, 14, r.Edges)
	assert.Equal(t, 7, r.Cells)
	assert.Equal(t, [][]int{{3, 12, 14, 15}, {0, 1, 2, 6, 8, 9, 10, 11, 13}, {4, 5, 7}}, r.Layers)
	require.Len(t, r.Faces, 16)

	f := r.Faces[3]
	assert.Equal(t, 3, f.Face)
	assert.Equal(t, 0, f.Distance)
	assert.Equal(t, 0, f.Inner)
	assert.Equal(t, Exterior, f.Outer)
	assert.Equal(t, OmniLower, f.InnerVertex)
	assert.Equal(t, []int{3}, f.Chain)
	require.NotNil(t, f.FocalLength)
	assert.InDelta(t, -0.15, *f.FocalLength, 1e-12)
	require.NotNil(t, f.PrincipalPoint)
	assert.InDelta(t, 10, f.PrincipalPoint[2], 1e-12)
	assert.Nil(t, f.Determinant)
	assert.InDelta(t, Transmission, f.Transmission, 1e-6)
	assert.True(t, f.CastsShadow)

	assert.Equal(t, []int{4, 0, 3}, r.Faces[4].Chain)
}

func TestNewReportHomogeneous(t *testing.T) {
	c := calibratedOmni(t, KindPlanarHomogeneous)
	r, err := NewReport(c, 0.5, false)
	require.NoError(t, err)
	f := r.Faces[0]
	assert.Nil(t, f.FocalLength)
	assert.Nil(t, f.PrincipalPoint)
	require.NotNil(t, f.Determinant)
	assert.InDelta(t, 8, *f.Determinant, 1e-9)
	assertVecNear(t, vec(0, -1, 0), r.Faces[3].Normal.Vec(), 1e-12)

	r2, err := NewReport(c, 0.5, false)
	require.NoError(t, err)
	assert.NotEqual(t, r.RunID, r2.RunID)
}

func TestNewReportNotCalibrated(t *testing.T) {
	_, err := NewReport(newOmni(t), Transmission, true)
	assert.ErrorIs(t, err, ErrNotCalibrated)
}

func TestReportEncode(t *testing.T) {
	r, err := NewReport(calibratedOmni(t, KindPlanarHomogeneous), Transmission, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf, "json"))
	var fromJSON Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Equal(t, r.RunID, fromJSON.RunID)
	assert.Equal(t, KindPlanarHomogeneous, fromJSON.Kind)
	assert.Contains(t, buf.String(), `"kind": "planar-homogeneous"`)

	buf.Reset()
	require.NoError(t, r.Encode(&buf, "yaml"))
	var fromYAML Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, r.Layers, fromYAML.Layers)
	assert.Contains(t, buf.String(), "chain: [4, 0, 3]")

	buf.Reset()
	require.NoError(t, r.Encode(&buf, "TOML"))
	var fromTOML Report
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &fromTOML))
	assert.Len(t, fromTOML.Faces, 16)

	assert.ErrorContains(t, r.Encode(&buf, "xml"), "unknown report format")
}

func TestEncodeReports(t *testing.T) {
	c := calibratedOmni(t, KindIdealThinLens)
	a, err := NewReport(c, Transmission, true)
	require.NoError(t, err)
	b, err := NewReport(c, Transmission, false)
	require.NoError(t, err)

	var one bytes.Buffer
	require.NoError(t, EncodeReports(&one, "toml", []*Report{a}))
	var single Report
	require.NoError(t, toml.Unmarshal(one.Bytes(), &single))
	assert.Equal(t, a.RunID, single.RunID)

	var many bytes.Buffer
	require.NoError(t, EncodeReports(&many, "toml", []*Report{a, b}))
	assert.Equal(t, 2, strings.Count(many.String(), "[[reports]]"))
	var set ReportSet
	require.NoError(t, toml.Unmarshal(many.Bytes(), &set))
	require.Len(t, set.Reports, 2)
	assert.Equal(t, b.RunID, set.Reports[1].RunID)
	assert.False(t, set.Reports[1].Faces[0].CastsShadow)

	many.Reset()
	require.NoError(t, EncodeReports(&many, "json", []*Report{a, b}))
	dec := json.NewDecoder(&many)
	for _, want := range []*Report{a, b} {
		var got Report
		require.NoError(t, dec.Decode(&got))
		assert.Equal(t, want.RunID, got.RunID)
	}

	assert.ErrorContains(t, EncodeReports(&many, "xml", []*Report{a, b}), "unknown report format")
}
