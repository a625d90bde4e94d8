package gridmodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlojensen/terracore/cost"
)

func TestParseObstacleConfigSkipsBlankAndCommentLines(t *testing.T) {
	src := "# comment\n\n306: 2.5\n"
	cfg, err := ParseObstacleConfig(strings.NewReader(src))
	require.NoError(t, err)

	m, ok := cfg.Lookup("306")
	require.True(t, ok)
	assert.Equal(t, cost.Multiplier(2.5), m)
}

func TestParseObstacleConfigMapsMinusOneToImpassable(t *testing.T) {
	cfg, err := ParseObstacleConfig(strings.NewReader("201: -1\n"))
	require.NoError(t, err)

	m, ok := cfg.Lookup("201")
	require.True(t, ok)
	assert.True(t, m.IsImpassable())
}

func TestParseObstacleConfigRejectsMalformedLine(t *testing.T) {
	_, err := ParseObstacleConfig(strings.NewReader("not a valid line\n"))
	assert.Error(t, err)
}

func TestParseObstacleConfigRejectsZeroOrNegativeOtherThanSentinel(t *testing.T) {
	_, err := ParseObstacleConfig(strings.NewReader("306: 0\n"))
	assert.Error(t, err)

	_, err = ParseObstacleConfig(strings.NewReader("306: -2\n"))
	assert.Error(t, err)
}

func TestLookupMissReturnsFalse(t *testing.T) {
	cfg, err := ParseObstacleConfig(strings.NewReader("306: 2.0\n"))
	require.NoError(t, err)

	_, ok := cfg.Lookup("999")
	assert.False(t, ok)
}
