// Package orchestrate chains the Pathfinder over a list of waypoints,
// joining consecutive segment results into one continuous route. It is
// grounded in the teacher's path-reconstruction style (concatenating node
// chains walked from parent pointers) generalized from a single start/goal
// pair to an ordered waypoint list.
package orchestrate

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arlojensen/terracore/cost"
	"github.com/arlojensen/terracore/internal/terraerr"
	"github.com/arlojensen/terracore/pathfind"
)

// Route is the concatenated result of pathfinding over every consecutive
// waypoint pair.
type Route struct {
	Cells []pathfind.Cell
	Cost  float32
}

// Run pathfinds between every consecutive pair in waypoints and concatenates
// the results in order. If waypoints has fewer than two entries, an
// InvalidWaypoint error is reported. Duplicate cells at a segment seam (the
// first cell of segment i+1 equal to the last cell already appended) are
// dropped; a seam mismatch (the segments don't actually touch, implying an
// upstream bug) is logged as a warning and the cell is appended anyway. If
// any segment is unreachable, the whole call aborts and discards partial
// results, reporting SegmentUnreachable(i, w_i, w_{i+1}).
func Run(ctx context.Context, grid pathfind.CostGrid, sampler cost.Sampler, waypoints []pathfind.Cell, opts pathfind.Options, logger zerolog.Logger) (Route, error) {
	if len(waypoints) < 2 {
		return Route{}, terraerr.InvalidWaypoint(0, 0, 0)
	}
	for i, w := range waypoints {
		if !grid.InBounds(w.X, w.Y) || grid.MultiplierAt(w.X, w.Y).IsImpassable() {
			return Route{}, terraerr.InvalidWaypoint(i, w.X, w.Y)
		}
	}

	var route Route
	for i := 0; i < len(waypoints)-1; i++ {
		a, b := waypoints[i], waypoints[i+1]

		segment, err := pathfind.FindPath(ctx, grid, sampler, a, b, opts)
		if err != nil {
			if err == ctx.Err() && ctx.Err() != nil {
				return Route{}, terraerr.Cancelled()
			}
			return Route{}, terraerr.SegmentUnreachable(i, indexOf(grid, a), indexOf(grid, b))
		}

		appendSegment(&route, segment, i, logger)
	}

	return route, nil
}

func appendSegment(route *Route, segment pathfind.Path, segmentIndex int, logger zerolog.Logger) {
	route.Cost += segment.Cost

	if len(route.Cells) == 0 {
		route.Cells = append(route.Cells, segment.Cells...)
		return
	}

	last := route.Cells[len(route.Cells)-1]
	first := segment.Cells[0]

	if last == first {
		route.Cells = append(route.Cells, segment.Cells[1:]...)
		return
	}

	logger.Warn().
		Int("segment", segmentIndex).
		Interface("expected_seam", last).
		Interface("actual_seam", first).
		Msg("segment endpoints do not match running result; appending anyway")
	route.Cells = append(route.Cells, segment.Cells...)
}

// indexOf maps a cell back to its row-major grid index for the error
// taxonomy's (from, to) reporting. Grids that expose Idx are linearized
// with it; for any other CostGrid the value falls back to the deterministic
// but non-canonical y*1_000_000 + x, which is informational only.
func indexOf(grid pathfind.CostGrid, c pathfind.Cell) int {
	type indexer interface {
		Idx(x, y int) int
	}
	if g, ok := grid.(indexer); ok {
		return g.Idx(c.X, c.Y)
	}
	return c.Y*1_000_000 + c.X
}
