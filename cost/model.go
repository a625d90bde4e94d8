// Package cost implements the pure edge-cost function shared by every
// pathfinder: a combination of geometric distance, terrain multiplier, and a
// slope penalty derived from Tobler's hiking function. It has no knowledge
// of the grid, rasterizer, or map reader — it only knows how to price a move
// between two sampled points, which keeps it trivially safe to call
// concurrently from many pathfinder goroutines.
//
// All arithmetic is float32, per the numeric policy of the cost model: the
// terrain and elevation inputs that feed it are themselves float32, and
// mixing precisions would just hide rounding rather than improve it.
package cost

import (
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r2"
)

// Multiplier is a cell's base terrain cost multiplier. Impassable is a
// sentinel distinct from any finite multiplier.
type Multiplier float32

// Impassable marks a cell that cannot be traversed. It is represented as
// +Inf so that any arithmetic combining it with a finite multiplier (sum,
// average, product) naturally yields +Inf. EdgeCost still checks both
// endpoints with IsImpassable before doing any arithmetic.
var Impassable = Multiplier(math32.Inf(1))

// IsImpassable reports whether m is the Impassable sentinel.
func (m Multiplier) IsImpassable() bool {
	return math32.IsInf(float32(m), 1)
}

// Epsilon is the tolerance used wherever the cost model tests float32
// values for equality.
const Epsilon float32 = 1e-6

// Sampler supplies elevation in meters at a real-valued point in the
// logical grid's coordinate system. Implementations must be safe for
// concurrent use.
type Sampler interface {
	ElevationAt(x, y float32) float32
}

// Point is a real-valued location in logical grid cell units.
type Point struct {
	X, Y float32
}

// Model prices moves between points on a grid whose cells are LogCellM
// meters on a side.
type Model struct {
	// LogCellM is the real-world length, in meters, of one logical grid
	// cell's side.
	LogCellM float32
}

// toblerShift is the slope shift in Tobler's hiking function as adapted by
// this model: a small positive shift that favors slight descents. This is
// preserved verbatim from the source formula and must not be "corrected".
const toblerShift = 0.05

// toblerSteepness is the exponential steepness coefficient in the slope
// penalty.
const toblerSteepness = 3.5

// SlopePenalty returns the Tobler-derived multiplicative penalty for a
// slope (rise over run, dimensionless).
func SlopePenalty(slope float32) float32 {
	return math32.Exp(-toblerSteepness * math32.Abs(slope+toblerShift))
}

// EdgeCost computes the cost of moving from a to b, distanceCells apart (1
// for a 4-neighbor step, √2 for a diagonal step, or any positive value for
// an any-angle sub-segment). ma and mb are the terrain multipliers of the
// two endpoints. Returns +Inf if the move is not traversable.
func (m Model) EdgeCost(a, b Point, ma, mb Multiplier, distanceCells float32, sampler Sampler) float32 {
	if ma.IsImpassable() || mb.IsImpassable() {
		return float32(math32.Inf(1))
	}

	distanceM := distanceCells * m.LogCellM
	if distanceM <= 0 {
		return 0
	}

	elevA := sampler.ElevationAt(a.X, a.Y)
	elevB := sampler.ElevationAt(b.X, b.Y)
	slope := (elevB - elevA) / distanceM

	terrain := 0.5 * (float32(ma) + float32(mb))
	penalty := SlopePenalty(slope)

	return distanceM * terrain / penalty
}

// LineOfSightCost integrates EdgeCost along the straight segment from a to
// b, sampling at a stride of at most one logical cell and aggregating with
// the trapezoidal rule: each sub-segment is priced as an adjacent-cell edge
// between its own endpoints. multiplierAt supplies the terrain multiplier
// at an arbitrary sample point (typically a grid lookup by floor(x),
// floor(y)). Returns +Inf if any sampled point is impassable.
func (m Model) LineOfSightCost(a, b Point, multiplierAt func(x, y float32) Multiplier, sampler Sampler) float32 {
	origin := r2.Vec{X: float64(a.X), Y: float64(a.Y)}
	target := r2.Vec{X: float64(b.X), Y: float64(b.Y)}
	segment := r2.Sub(target, origin)
	length := float32(r2.Norm(segment))
	if length == 0 {
		return 0
	}

	steps := int(math32.Ceil(length))
	if steps < 1 {
		steps = 1
	}

	var total float32
	prev := a
	prevM := multiplierAt(a.X, a.Y)
	if prevM.IsImpassable() {
		return float32(math32.Inf(1))
	}

	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		sample := r2.Add(origin, r2.Scale(t, segment))
		cur := Point{X: float32(sample.X), Y: float32(sample.Y)}
		curM := multiplierAt(cur.X, cur.Y)
		if curM.IsImpassable() {
			return float32(math32.Inf(1))
		}

		subDistanceCells := length / float32(steps)
		total += m.EdgeCost(prev, cur, prevM, curM, subDistanceCells, sampler)

		prev = cur
		prevM = curM
	}

	return total
}
