package gridmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlojensen/terracore/cost"
)

func TestNewRejectsNonPositiveDimensions(t *testing.T) {
	_, err := New(0, 5, 1.0)
	assert.Error(t, err)

	_, err = New(5, 0, 1.0)
	assert.Error(t, err)
}

func TestNewDefaultsEveryCellToOpenTerrain(t *testing.T) {
	g, err := New(3, 2, 1.0)
	require.NoError(t, err)

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, DefaultMultiplier, g.At(x, y).Multiplier)
		}
	}
}

func TestIdxAndXYRoundTrip(t *testing.T) {
	g, err := New(4, 3, 1.0)
	require.NoError(t, err)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			idx := g.Idx(x, y)
			gotX, gotY := g.XY(idx)
			assert.Equal(t, x, gotX)
			assert.Equal(t, y, gotY)
		}
	}
}

func TestBuilderSetIsVisibleThroughGrid(t *testing.T) {
	b, err := NewBuilder(2, 2, 1.0)
	require.NoError(t, err)

	b.Set(1, 1, Cell{Multiplier: cost.Impassable, SymbolCode: "306"})
	g := b.Grid()

	assert.True(t, g.At(1, 1).Multiplier.IsImpassable())
	assert.Equal(t, "306", g.At(1, 1).SymbolCode)
	assert.False(t, g.At(0, 0).Multiplier.IsImpassable())
}

func TestInBoundsRejectsOutOfRangeCoordinates(t *testing.T) {
	g, err := New(2, 2, 1.0)
	require.NoError(t, err)

	assert.True(t, g.InBounds(0, 0))
	assert.True(t, g.InBounds(1, 1))
	assert.False(t, g.InBounds(-1, 0))
	assert.False(t, g.InBounds(2, 0))
	assert.False(t, g.InBounds(0, 2))
}

func TestMultiplierAtAndLogCellMSatisfyPathfindCostGrid(t *testing.T) {
	g, err := New(1, 1, 2.5)
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), g.LogCellM())
	assert.Equal(t, DefaultMultiplier, g.MultiplierAt(0, 0))
}
