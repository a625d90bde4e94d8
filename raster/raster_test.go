package raster

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlojensen/terracore/cost"
	"github.com/arlojensen/terracore/gridmodel"
	"github.com/arlojensen/terracore/internal/obslog"
	"github.com/arlojensen/terracore/mapreader"
)

func square(x0, y0, x1, y1 float64) mapreader.Ring {
	pts := []orb.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	var ring mapreader.Ring
	for i := 0; i < len(pts); i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		ring.Segments = append(ring.Segments, mapreader.Segment{A: a, B: b})
	}
	return ring
}

func mustNorm(t *testing.T, w, h int) gridmodel.NormalizationRecord {
	t.Helper()
	n, err := gridmodel.Normalize(0, 0, float64(w), float64(h), w, h)
	require.NoError(t, err)
	return n
}

func TestRasterizeFillsPolygonInterior(t *testing.T) {
	features := []mapreader.Feature{
		{SymbolCode: "406", Layer: "terrain", Kind: mapreader.KindPolygon, Outer: square(2, 2, 8, 8)},
	}
	cfg := gridmodel.ObstacleConfig{"406": cost.Impassable}
	norm := mustNorm(t, 10, 10)

	grid, _, err := Rasterize(context.Background(), features, cfg, norm, 10, 10, 1.0, Options{Workers: 1, Logger: obslog.Nop()})
	require.NoError(t, err)

	assert.True(t, grid.At(5, 5).Multiplier.IsImpassable())
	assert.False(t, grid.At(0, 0).Multiplier.IsImpassable())
}

func TestRasterizePrecedenceImpassableDominates(t *testing.T) {
	features := []mapreader.Feature{
		{SymbolCode: "open", Layer: "a", Kind: mapreader.KindPolygon, Outer: square(0, 0, 10, 10)},
		{SymbolCode: "wall", Layer: "b", Kind: mapreader.KindPolygon, Outer: square(0, 0, 10, 10)},
	}
	cfg := gridmodel.ObstacleConfig{"open": cost.Multiplier(2.0), "wall": cost.Impassable}
	norm := mustNorm(t, 10, 10)

	grid, _, err := Rasterize(context.Background(), features, cfg, norm, 10, 10, 1.0, Options{Workers: 1, Logger: obslog.Nop()})
	require.NoError(t, err)

	assert.True(t, grid.At(5, 5).Multiplier.IsImpassable())
}

func TestRasterizeLastWriteInLayerOrderWinsAmongFiniteMultipliers(t *testing.T) {
	features := []mapreader.Feature{
		{SymbolCode: "low", Layer: "a", Kind: mapreader.KindPolygon, Outer: square(0, 0, 10, 10)},
		{SymbolCode: "high", Layer: "b", Kind: mapreader.KindPolygon, Outer: square(0, 0, 10, 10)},
	}
	cfg := gridmodel.ObstacleConfig{"low": cost.Multiplier(1.5), "high": cost.Multiplier(3.0)}
	norm := mustNorm(t, 10, 10)

	grid, _, err := Rasterize(context.Background(), features, cfg, norm, 10, 10, 1.0, Options{Workers: 1, Logger: obslog.Nop()})
	require.NoError(t, err)

	assert.Equal(t, cost.Multiplier(3.0), grid.At(5, 5).Multiplier)
}

func TestRasterizeParallelMatchesSerial(t *testing.T) {
	features := []mapreader.Feature{
		{SymbolCode: "a", Layer: "1", Kind: mapreader.KindPolygon, Outer: square(1, 1, 9, 9)},
		{SymbolCode: "b", Layer: "2", Kind: mapreader.KindPolygon, Outer: square(3, 0, 7, 15)},
		{SymbolCode: "c", Layer: "3", Kind: mapreader.KindPoint, Point: orb.Point{0, 0}},
	}
	cfg := gridmodel.ObstacleConfig{"a": cost.Multiplier(2.0), "b": cost.Impassable, "c": cost.Multiplier(5.0)}
	norm := mustNorm(t, 16, 16)

	serial, _, err := Rasterize(context.Background(), features, cfg, norm, 16, 16, 1.0, Options{Workers: 1, Logger: obslog.Nop()})
	require.NoError(t, err)

	parallel, _, err := Rasterize(context.Background(), features, cfg, norm, 16, 16, 1.0, Options{Workers: 8, Logger: obslog.Nop()})
	require.NoError(t, err)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			assert.Equal(t, serial.At(x, y).Multiplier, parallel.At(x, y).Multiplier, "cell (%d,%d)", x, y)
		}
	}
}

func TestRasterizeUnconfiguredSymbolProducesWarning(t *testing.T) {
	features := []mapreader.Feature{
		{SymbolCode: "unknown", Layer: "a", Kind: mapreader.KindPoint, Point: orb.Point{1, 1}},
	}
	norm := mustNorm(t, 10, 10)

	_, warnings, err := Rasterize(context.Background(), features, gridmodel.ObstacleConfig{}, norm, 10, 10, 1.0, Options{Workers: 1, Logger: obslog.Nop()})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "unknown", warnings[0].SymbolCode)
}
