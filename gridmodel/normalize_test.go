package gridmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlojensen/terracore/internal/terraerr"
)

func TestNormalizeComputesResolution(t *testing.T) {
	n, err := Normalize(0, 0, 100, 50, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 10.0, n.ResX)
	assert.Equal(t, 10.0, n.ResY)
}

func TestNormalizeRejectsDegenerateWidth(t *testing.T) {
	_, err := Normalize(5, 0, 5, 50, 10, 5)
	require.Error(t, err)
	assert.True(t, terraerr.Is(err, terraerr.KindDegenerateBounds))
}

func TestNormalizeRejectsDegenerateHeight(t *testing.T) {
	_, err := Normalize(0, 5, 100, 5, 10, 5)
	require.Error(t, err)
	assert.True(t, terraerr.Is(err, terraerr.KindDegenerateBounds))
}

func TestToGridRoundTripsThroughToMap(t *testing.T) {
	n, err := Normalize(0, 0, 100, 100, 10, 10)
	require.NoError(t, err)

	x, y := n.ToGrid(35, 72)
	u, v := n.ToMap(x, y)
	x2, y2 := n.ToGrid(u, v)

	assert.Equal(t, x, x2)
	assert.Equal(t, y, y2)
}

func TestToGridHandlesNegativeCoordinates(t *testing.T) {
	n, err := Normalize(-50, -50, 50, 50, 10, 10)
	require.NoError(t, err)

	x, y := n.ToGrid(-49, -49)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y = n.ToGrid(-1, -1)
	assert.Equal(t, 4, x)
	assert.Equal(t, 4, y)
}

func TestToGridFPreservesFractionalPosition(t *testing.T) {
	n, err := Normalize(0, 0, 100, 100, 10, 10)
	require.NoError(t, err)

	x, y := n.ToGridF(25, 75)
	assert.InDelta(t, 2.5, x, 1e-9)
	assert.InDelta(t, 7.5, y, 1e-9)
}
