package pathfind

import (
	"context"

	"github.com/chewxy/math32"

	"github.com/arlojensen/terracore/cost"
)

// cellStatus is the per-cell state machine: Unseen -> Open on first
// relaxation, Open -> Closed on pop, Open -> Open on an improved g. Terminal
// states are popping the goal (success) or draining the open set (NotFound).
type cellStatus int

const (
	unseen cellStatus = iota
	open
	closed
)

// nodeState is one cell's search bookkeeping: its g/h/f scores, its current
// parent (for path reconstruction and Theta*'s any-angle shortcuts), and its
// position in the open-set heap.
type nodeState struct {
	cell Cell

	status cellStatus
	g      float32
	h      float32
	f      float32

	parent    Cell
	hasParent bool

	// verified is used only by Lazy Theta*: false means the edge to parent
	// has not yet had its line-of-sight checked.
	verified bool

	heapIndex int
	seq       int
}

// eightNeighbors lists the 8-connected offsets in a fixed order so that, for
// equal f-costs, expansion order is stable run to run.
var eightNeighbors = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

func stepDistance(dx, dy int) float32 {
	if dx != 0 && dy != 0 {
		return sqrt2
	}
	return 1
}

// search holds the state for one FindPath call.
type search struct {
	grid    CostGrid
	sampler cost.Sampler
	model   cost.Model
	end     Cell
	opts    Options
	states  map[Cell]*nodeState
	pq      *pqueue
	nextSeq int
}

func newSearch(grid CostGrid, sampler cost.Sampler, end Cell, opts Options) *search {
	return &search{
		grid:    grid,
		sampler: sampler,
		model:   cost.Model{LogCellM: grid.LogCellM()},
		end:     end,
		opts:    opts,
		states:  make(map[Cell]*nodeState),
		pq:      newPQueue(),
	}
}

func (s *search) stateFor(c Cell) *nodeState {
	n, ok := s.states[c]
	if !ok {
		n = &nodeState{cell: c, status: unseen, heapIndex: -1}
		s.states[c] = n
	}
	return n
}

func (s *search) heuristic(c Cell) float32 {
	if s.opts.Algorithm == Dijkstra || s.opts.Algorithm == BFS {
		return 0
	}
	dx := float32(c.X - s.end.X)
	dy := float32(c.Y - s.end.Y)
	return heuristicCost(s.opts.Heuristic, dx, dy, s.grid.LogCellM())
}

func (s *search) multiplierAt(x, y float32) cost.Multiplier {
	cx, cy := int(x), int(y)
	if !s.grid.InBounds(cx, cy) {
		return cost.Impassable
	}
	return s.grid.MultiplierAt(cx, cy)
}

func (s *search) centerOf(c Cell) cost.Point {
	return cost.Point{X: float32(c.X) + 0.5, Y: float32(c.Y) + 0.5}
}

// edgeCost prices the direct 8-neighbor step from a to b.
func (s *search) edgeCost(a, b Cell) float32 {
	ma := s.grid.MultiplierAt(a.X, a.Y)
	mb := s.grid.MultiplierAt(b.X, b.Y)
	dist := stepDistance(b.X-a.X, b.Y-a.Y)
	return s.model.EdgeCost(s.centerOf(a), s.centerOf(b), ma, mb, dist, s.sampler)
}

// lineOfSight reports whether a straight segment from a to b is fully
// traversable, and its aggregated cost if so.
func (s *search) lineOfSight(a, b Cell) (clear bool, lineCost float32) {
	c := s.model.LineOfSightCost(s.centerOf(a), s.centerOf(b), s.multiplierAt, s.sampler)
	if math32.IsInf(c, 1) {
		return false, 0
	}
	return true, c
}

// run executes the selected algorithm and returns the reconstructed Path.
func (s *search) run(ctx context.Context, start, end Cell) (Path, error) {
	startState := s.stateFor(start)
	startState.g = 0
	startState.h = s.heuristic(start)
	startState.f = startState.g + startState.h
	startState.status = open
	startState.hasParent = false

	s.pq.push(startState)

	useTheta := s.opts.Algorithm == ThetaStar
	useLazyTheta := s.opts.Algorithm == LazyThetaStar

	for s.pq.Len() > 0 {
		select {
		case <-ctx.Done():
			return Path{}, ctx.Err()
		default:
		}

		current := s.pq.pop()
		if current.status == closed {
			continue
		}
		current.status = closed

		if useLazyTheta && current.hasParent && !current.verified {
			s.lazyVerify(current)
		}

		if current.cell == end {
			return s.reconstruct(current), nil
		}

		for _, d := range eightNeighbors {
			nc := Cell{X: current.cell.X + d[0], Y: current.cell.Y + d[1]}
			if !s.grid.InBounds(nc.X, nc.Y) {
				continue
			}
			if s.grid.MultiplierAt(nc.X, nc.Y).IsImpassable() {
				continue
			}
			ns := s.stateFor(nc)
			if ns.status == closed {
				continue
			}

			switch {
			case useTheta && current.hasParent:
				s.relaxTheta(current, ns)
			case useLazyTheta:
				s.relaxLazyTheta(current, ns)
			default:
				s.relaxDirect(current, ns)
			}
		}
	}

	return Path{}, ErrNotFound
}

// relaxDirect is the BFS/Dijkstra/A* neighbor update: standard edge relaxation
// from current to neighbor.
func (s *search) relaxDirect(current, neighbor *nodeState) {
	var step float32
	if s.opts.Algorithm == BFS {
		step = 1
	} else {
		step = s.edgeCost(current.cell, neighbor.cell)
	}
	newG := current.g + step
	if neighbor.status == unseen || newG < neighbor.g {
		neighbor.g = newG
		neighbor.h = s.heuristic(neighbor.cell)
		neighbor.f = neighbor.g + neighbor.h
		neighbor.parent = current.cell
		neighbor.hasParent = true
		neighbor.verified = true
		neighbor.status = open
		neighbor.seq = s.nextSeq
		s.nextSeq++
		s.pq.push(neighbor)
	}
}

// relaxTheta implements Theta*'s any-angle shortcut: try parent(current) ->
// neighbor directly when line-of-sight is clear, falling back to the normal
// A* update otherwise.
func (s *search) relaxTheta(current, neighbor *nodeState) {
	parentState := s.states[current.parent]
	if parentState != nil {
		if clear, losCost := s.lineOfSight(parentState.cell, neighbor.cell); clear {
			newG := parentState.g + losCost
			if neighbor.status == unseen || newG < neighbor.g {
				neighbor.g = newG
				neighbor.h = s.heuristic(neighbor.cell)
				neighbor.f = neighbor.g + neighbor.h
				neighbor.parent = parentState.cell
				neighbor.hasParent = true
				neighbor.verified = true
				neighbor.status = open
				neighbor.seq = s.nextSeq
				s.nextSeq++
				s.pq.push(neighbor)
				return
			}
		}
	}
	s.relaxDirect(current, neighbor)
}

// relaxLazyTheta tentatively assigns neighbor's parent to parent(current)
// without verifying line-of-sight; verification is deferred to the moment
// neighbor itself is popped for expansion (see lazyVerify).
func (s *search) relaxLazyTheta(current, neighbor *nodeState) {
	candidateParent := current
	if current.hasParent {
		if p := s.states[current.parent]; p != nil {
			candidateParent = p
		}
	}

	// parent(current) need not be adjacent to neighbor, so the tentative
	// step is priced over the straight-line distance between the two cells.
	pc, nc := candidateParent.cell, neighbor.cell
	dx, dy := float32(nc.X-pc.X), float32(nc.Y-pc.Y)
	step := s.model.EdgeCost(s.centerOf(pc), s.centerOf(nc), s.grid.MultiplierAt(pc.X, pc.Y), s.grid.MultiplierAt(nc.X, nc.Y), math32.Sqrt(dx*dx+dy*dy), s.sampler)
	newG := candidateParent.g + step
	if neighbor.status == unseen || newG < neighbor.g {
		neighbor.g = newG
		neighbor.h = s.heuristic(neighbor.cell)
		neighbor.f = neighbor.g + neighbor.h
		neighbor.parent = candidateParent.cell
		neighbor.hasParent = true
		neighbor.verified = false
		neighbor.status = open
		neighbor.seq = s.nextSeq
		s.nextSeq++
		s.pq.push(neighbor)
	}
}

// lazyVerify checks line-of-sight from n's assumed parent at the moment n is
// expanded. If occluded, it repairs n's parent to the already-closed
// 8-neighbor that minimizes its g plus the direct step cost to n; no
// line-of-sight check is made for that neighbor.
func (s *search) lazyVerify(n *nodeState) {
	parentState := s.states[n.parent]
	if parentState == nil {
		n.verified = true
		return
	}
	if clear, losCost := s.lineOfSight(parentState.cell, n.cell); clear {
		n.g = parentState.g + losCost
		n.f = n.g + n.h
		n.verified = true
		return
	}

	var bestG float32
	var bestParent Cell
	found := false
	for _, d := range eightNeighbors {
		nc := Cell{X: n.cell.X + d[0], Y: n.cell.Y + d[1]}
		cand, ok := s.states[nc]
		if !ok || cand.status != closed {
			continue
		}
		g := cand.g + s.edgeCost(cand.cell, n.cell)
		if !found || g < bestG {
			bestG = g
			bestParent = cand.cell
			found = true
		}
	}
	if found {
		n.g = bestG
		n.parent = bestParent
		n.f = n.g + n.h
	}
	n.verified = true
}

func (s *search) reconstruct(goalState *nodeState) Path {
	var cells []Cell
	totalCost := goalState.g
	cur := goalState
	for {
		cells = append(cells, cur.cell)
		if !cur.hasParent {
			break
		}
		cur = s.states[cur.parent]
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return Path{Cells: cells, Cost: totalCost}
}
