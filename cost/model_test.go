package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constSampler float32

func (c constSampler) ElevationAt(x, y float32) float32 { return float32(c) }

type funcSampler func(x, y float32) float32

func (f funcSampler) ElevationAt(x, y float32) float32 { return f(x, y) }

func TestImpassableIsPositiveInfinity(t *testing.T) {
	require.True(t, Impassable.IsImpassable())
	assert.False(t, Multiplier(1.0).IsImpassable())
	assert.False(t, Multiplier(0).IsImpassable())
}

func TestSlopePenaltyIsMaximalAtPreferredDescent(t *testing.T) {
	// Tobler's shift favors a slight descent (-0.05 slope): the penalty
	// should peak there, not at zero slope.
	atShift := SlopePenalty(-0.05)
	atZero := SlopePenalty(0)
	atSteepClimb := SlopePenalty(0.5)

	assert.Greater(t, atShift, atZero)
	assert.Greater(t, atZero, atSteepClimb)
}

func TestSlopePenaltyAtPreferredDescentEqualsOneWithinEpsilon(t *testing.T) {
	// The shift is the slope at which Tobler's penalty peaks at exactly 1.0
	// (exp(0) == 1): edge_cost across a slope of exactly -0.05 reduces to
	// distance_m * terrain / 1.0, per the documented boundary behavior.
	got := SlopePenalty(-toblerShift)
	assert.InDelta(t, float32(1.0), got, float64(Epsilon))
}

func TestEdgeCostAtPreferredDescentSlopeEqualsDistanceTimesTerrain(t *testing.T) {
	m := Model{LogCellM: 1.0}
	// elevB - elevA over distanceM must equal -toblerShift exactly.
	sampler := funcSampler(func(x, y float32) float32 {
		if x == 0 {
			return 0
		}
		return -toblerShift
	})

	got := m.EdgeCost(Point{0, 0.5}, Point{1, 0.5}, Multiplier(2.0), Multiplier(2.0), 1, sampler)
	want := float32(1.0) * float32(2.0) // distance_m * terrain, penalty == 1
	assert.InDelta(t, want, got, float64(Epsilon)*10)
}

func TestEdgeCostImpassableEndpointIsInfinite(t *testing.T) {
	m := Model{LogCellM: 1.0}
	sampler := constSampler(100)

	cost := m.EdgeCost(Point{0, 0}, Point{1, 0}, Impassable, Multiplier(1.0), 1, sampler)
	assert.True(t, Multiplier(cost).IsImpassable())
}

func TestEdgeCostFlatGroundEqualsDistanceTimesTerrain(t *testing.T) {
	m := Model{LogCellM: 2.0}
	sampler := constSampler(100) // no slope anywhere

	got := m.EdgeCost(Point{0, 0}, Point{1, 0}, Multiplier(1.0), Multiplier(3.0), 1, sampler)

	// distance_m = 2, terrain = mean(1,3) = 2, slope = 0 so penalty = exp(-3.5*0.05)
	wantPenalty := SlopePenalty(0)
	want := float32(2) * float32(2) / wantPenalty
	assert.InDelta(t, want, got, 1e-3)
}

func TestEdgeCostZeroDistanceIsZero(t *testing.T) {
	m := Model{LogCellM: 1.0}
	sampler := constSampler(0)
	got := m.EdgeCost(Point{0, 0}, Point{0, 0}, Multiplier(1.0), Multiplier(1.0), 0, sampler)
	assert.Zero(t, got)
}

func TestLineOfSightCostMatchesSingleEdgeForAdjacentCells(t *testing.T) {
	m := Model{LogCellM: 1.0}
	sampler := constSampler(50)
	multiplierAt := func(x, y float32) Multiplier { return Multiplier(1.0) }

	direct := m.EdgeCost(Point{0.5, 0.5}, Point{1.5, 0.5}, Multiplier(1.0), Multiplier(1.0), 1, sampler)
	los := m.LineOfSightCost(Point{0.5, 0.5}, Point{1.5, 0.5}, multiplierAt, sampler)

	assert.InDelta(t, direct, los, 1e-3)
}

func TestLineOfSightCostIsInfiniteThroughImpassableSample(t *testing.T) {
	m := Model{LogCellM: 1.0}
	sampler := constSampler(0)
	multiplierAt := func(x, y float32) Multiplier {
		if int(x) == 2 {
			return Impassable
		}
		return Multiplier(1.0)
	}

	got := m.LineOfSightCost(Point{0.5, 0.5}, Point{4.5, 0.5}, multiplierAt, sampler)
	assert.True(t, Multiplier(got).IsImpassable())
}
