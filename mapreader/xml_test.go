package mapreader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0"?>
<map>
  <georeferencing>
    <ref_point lat="60.1" lon="24.9" x="0" y="0"/>
    <bounds u_min="0" v_min="0" u_max="100" v_max="100"/>
    <scale denominator="10000"/>
  </georeferencing>
  <layers>
    <layer name="terrain">
      <object symbol="406" kind="polygon">
        <ring hole="false">
          <pt x="0" y="0"/>
          <pt x="10" y="0"/>
          <pt x="10" y="10"/>
          <pt x="0" y="10"/>
        </ring>
        <ring hole="true">
          <pt x="2" y="2"/>
          <pt x="4" y="2"/>
          <pt x="4" y="4"/>
          <pt x="2" y="4"/>
        </ring>
      </object>
      <object symbol="201" kind="point">
        <pt x="5" y="5"/>
      </object>
    </layer>
    <layer name="courses">
      <object symbol="710" kind="polyline">
        <ring hole="false">
          <pt x="1" y="1" gap="false"/>
          <pt x="2" y="1" gap="true"/>
          <pt x="3" y="1" dash="true"/>
        </ring>
      </object>
    </layer>
  </layers>
</map>
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadParsesGeoreferencing(t *testing.T) {
	path := writeTemp(t, sampleDoc)

	_, _, geo, err := Read(path, []string{"terrain", "courses"})
	require.NoError(t, err)

	assert.True(t, geo.Present)
	assert.Equal(t, 60.1, geo.RefLat)
	assert.Equal(t, 24.9, geo.RefLon)
	assert.Equal(t, 10000.0, geo.ScaleDenominator)
	assert.Equal(t, 0.01, geo.MetersPerUnit())
}

func TestReadFiltersByLayer(t *testing.T) {
	path := writeTemp(t, sampleDoc)

	features, _, _, err := Read(path, []string{"terrain"})
	require.NoError(t, err)

	for _, f := range features {
		assert.Equal(t, "terrain", f.Layer)
	}
	assert.Len(t, features, 2)
}

func TestReadParsesPolygonOuterAndHole(t *testing.T) {
	path := writeTemp(t, sampleDoc)

	features, _, _, err := Read(path, []string{"terrain"})
	require.NoError(t, err)

	var polygon *Feature
	for i := range features {
		if features[i].Kind == KindPolygon {
			polygon = &features[i]
		}
	}
	require.NotNil(t, polygon)
	assert.Len(t, polygon.Outer.Segments, 4)
	require.Len(t, polygon.Holes, 1)
	assert.Len(t, polygon.Holes[0].Segments, 4)
}

func TestReadCarriesGapAndDashFlagsPerSegment(t *testing.T) {
	path := writeTemp(t, sampleDoc)

	features, _, _, err := Read(path, []string{"courses"})
	require.NoError(t, err)
	require.Len(t, features, 1)

	segs := features[0].Outer.Segments
	require.Len(t, segs, 2)
	assert.False(t, segs[0].Gap)
	assert.True(t, segs[1].Gap)
}

func TestReadReportsUnknownObjectKindAsWarning(t *testing.T) {
	doc := `<map><layers><layer name="x"><object symbol="999" kind="bogus"/></layer></layers></map>`
	path := writeTemp(t, doc)

	features, warnings, _, err := Read(path, []string{"x"})
	require.NoError(t, err)
	assert.Empty(t, features)
	require.Len(t, warnings, 1)
	assert.Equal(t, "999", warnings[0].SymbolCode)
}

func TestReadFailsFatallyOnMissingFile(t *testing.T) {
	_, _, _, err := Read(filepath.Join(t.TempDir(), "missing.xml"), nil)
	assert.Error(t, err)
}
