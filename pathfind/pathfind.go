// Package pathfind generalizes the teacher's single-algorithm A* machinery
// (github.com/edgejay/go-pathfinding's algo.AStar) into a closed family of
// pathfinders — BFS, Dijkstra, A*, Theta*, and Lazy Theta* — sharing one
// entry point, one per-cell state machine, and one priority queue, selected
// by an algorithm tag rather than by swapping concrete types.
package pathfind

import (
	"context"

	"github.com/chewxy/math32"

	"github.com/arlojensen/terracore/cost"
)

// Algorithm is a closed tag selecting the search strategy. Unlike the
// teacher's Pathfinder interface (one concrete type per algorithm, wired by
// the caller), callers here select by value so a CLI or config file can name
// an algorithm without the core performing open-ended dynamic dispatch.
type Algorithm int

const (
	AStar Algorithm = iota
	Dijkstra
	BFS
	ThetaStar
	LazyThetaStar
)

func (a Algorithm) String() string {
	switch a {
	case AStar:
		return "astar"
	case Dijkstra:
		return "dijkstra"
	case BFS:
		return "bfs"
	case ThetaStar:
		return "theta_star"
	case LazyThetaStar:
		return "lazy_theta_star"
	default:
		return "unknown"
	}
}

// GetAlgorithmByName resolves a tag by its wire name, generalizing the
// teacher's GetHeuristicByName/GetSupportedHeuristics registry pair to
// algorithms.
func GetAlgorithmByName(name string) (Algorithm, bool) {
	for _, a := range GetSupportedAlgorithms() {
		if a.String() == name {
			return a, true
		}
	}
	return 0, false
}

// GetSupportedAlgorithms lists every algorithm tag this package implements.
func GetSupportedAlgorithms() []Algorithm {
	return []Algorithm{AStar, Dijkstra, BFS, ThetaStar, LazyThetaStar}
}

// Heuristic selects the distance estimate used by A*, Theta*, and Lazy
// Theta*. Dijkstra and BFS ignore it.
type Heuristic int

const (
	Euclidean Heuristic = iota
	Manhattan
	Octile
	MinCost
)

func (h Heuristic) String() string {
	switch h {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	case Octile:
		return "octile"
	case MinCost:
		return "min_cost"
	default:
		return "unknown"
	}
}

// GetHeuristicByName resolves a tag by its wire name.
func GetHeuristicByName(name string) (Heuristic, bool) {
	for _, h := range GetSupportedHeuristics() {
		if h.String() == name {
			return h, true
		}
	}
	return 0, false
}

// GetSupportedHeuristics lists every heuristic tag this package implements.
func GetSupportedHeuristics() []Heuristic {
	return []Heuristic{Euclidean, Manhattan, Octile, MinCost}
}

// minCostFactor is the empirical lower bound on combined terrain ×
// slope_penalty used to scale octile distance into an admissible heuristic.
const minCostFactor = 0.8

// sqrt2 is precomputed to avoid a math32.Sqrt call per heuristic evaluation.
const sqrt2 = 1.4142135

func heuristicCost(h Heuristic, dx, dy, logCellM float32) float32 {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	switch h {
	case Euclidean:
		return math32.Sqrt(dx*dx+dy*dy) * logCellM
	case Manhattan:
		return (dx + dy) * logCellM
	case Octile:
		return octile(dx, dy) * logCellM
	case MinCost:
		return octile(dx, dy) * logCellM * minCostFactor
	default:
		return 0
	}
}

func octile(dx, dy float32) float32 {
	var minD, maxD float32
	if dx < dy {
		minD, maxD = dx, dy
	} else {
		minD, maxD = dy, dx
	}
	return minD + maxD + (sqrt2-2)*minD
}

// Cell identifies a grid coordinate the pathfinder searches over.
type Cell struct {
	X, Y int
}

// CostGrid is the minimal surface a grid implementation must expose for
// pathfinding: bounds checks, per-cell terrain multiplier lookup, and the
// cell size needed to convert grid distances into meters. gridmodel.Grid
// satisfies this interface directly.
type CostGrid interface {
	InBounds(x, y int) bool
	MultiplierAt(x, y int) cost.Multiplier
	LogCellM() float32
}

// Options configures a single find-path call.
type Options struct {
	Algorithm Algorithm
	Heuristic Heuristic
}

// Path is the ordered sequence of cells from start to end, inclusive.
type Path struct {
	Cells []Cell
	// Cost is the total accumulated edge cost of the path.
	Cost float32
}

// ErrNotFound is returned when no path exists between start and end, or
// either endpoint is invalid. It carries no payload: callers compare with
// errors.Is.
var ErrNotFound = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "pathfind: no path found" }

// FindPath implements the shared contract of every pathfinder: find_path(Grid,
// ElevationSampler, start, end, options) -> Path | NotFound. If start == end,
// returns a single-cell Path. If either endpoint is out of bounds or
// impassable, returns ErrNotFound. ctx is checked once per expanded node;
// a cancelled context yields ctx.Err() (context.Canceled or
// context.DeadlineExceeded) unwrapped.
func FindPath(ctx context.Context, grid CostGrid, sampler cost.Sampler, start, end Cell, opts Options) (Path, error) {
	if !grid.InBounds(start.X, start.Y) || !grid.InBounds(end.X, end.Y) {
		return Path{}, ErrNotFound
	}
	if grid.MultiplierAt(start.X, start.Y).IsImpassable() || grid.MultiplierAt(end.X, end.Y).IsImpassable() {
		return Path{}, ErrNotFound
	}
	if start == end {
		return Path{Cells: []Cell{start}}, nil
	}

	s := newSearch(grid, sampler, end, opts)
	return s.run(ctx, start, end)
}
