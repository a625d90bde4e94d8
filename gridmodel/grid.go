// Package gridmodel holds the rasterized cost grid and the affine
// normalization that maps map-internal coordinates onto it. It generalizes
// the teacher's Grid/Node split (github.com/edgejay/go-pathfinding's
// algo.Grid) from a node-pointer grid of obstacle flags to a flat,
// immutable-after-construction array of weighted Cells.
package gridmodel

import (
	"fmt"

	"github.com/arlojensen/terracore/cost"
)

// Cell stores one grid square's rasterized state: a base cost multiplier
// (cost.Impassable is a sentinel forbidding traversal), the symbol code of
// the feature that last wrote it (kept for debugging/introspection), and
// the layer tag that feature belonged to.
type Cell struct {
	Multiplier cost.Multiplier
	SymbolCode string
	Layer      string
}

// DefaultMultiplier is open terrain's cost multiplier, the value every cell
// starts at before rasterization writes anything.
const DefaultMultiplier cost.Multiplier = 1.0

// Grid is an immutable-once-built W×H array of Cells in row-major order.
type Grid struct {
	W, H     int
	logCellM float32
	cells    []Cell
}

// New allocates a W×H grid with every cell defaulted to open terrain
// (multiplier 1.0, no symbol code, no layer). W and H must each be >= 1.
// logCellM is the real-world size, in meters, of one grid cell's side; the
// Cost Model and Pathfinder use it to convert grid distances into meters.
func New(w, h int, logCellM float32) (*Grid, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("gridmodel: grid dimensions must be >= 1, got %dx%d", w, h)
	}
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i].Multiplier = DefaultMultiplier
	}
	return &Grid{W: w, H: h, logCellM: logCellM, cells: cells}, nil
}

// MultiplierAt returns the cost multiplier at (x, y). Satisfies
// pathfind.CostGrid.
func (g *Grid) MultiplierAt(x, y int) cost.Multiplier {
	return g.At(x, y).Multiplier
}

// LogCellM returns the real-world size, in meters, of one grid cell's side.
// Satisfies pathfind.CostGrid.
func (g *Grid) LogCellM() float32 {
	return g.logCellM
}

// Idx returns the row-major index of cell (x, y). Callers must check
// InBounds first; Idx does not validate its input.
func (g *Grid) Idx(x, y int) int {
	return y*g.W + x
}

// XY returns the (x, y) coordinates for a row-major index.
func (g *Grid) XY(idx int) (x, y int) {
	return idx % g.W, idx / g.W
}

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the cell at (x, y). Panics if out of bounds, matching slice
// indexing semantics; callers on an untrusted coordinate should check
// InBounds first.
func (g *Grid) At(x, y int) Cell {
	return g.cells[g.Idx(x, y)]
}

// AtIndex returns the cell at row-major index idx.
func (g *Grid) AtIndex(idx int) Cell {
	return g.cells[idx]
}

// set is unexported: the grid is immutable once Rasterize returns it, so
// cells are mutated only through a Builder (Builder.Set/SetIndex) during
// construction.
func (g *Grid) set(idx int, c Cell) {
	g.cells[idx] = c
}

// Builder exposes the narrow mutation surface the rasterizer needs while
// constructing a Grid, keeping Grid itself immutable to every other caller.
type Builder struct {
	grid *Grid
}

// NewBuilder starts building a W×H grid with the given cell size in meters.
func NewBuilder(w, h int, logCellM float32) (*Builder, error) {
	g, err := New(w, h, logCellM)
	if err != nil {
		return nil, err
	}
	return &Builder{grid: g}, nil
}

// Set writes cell c at (x, y). x, y must be in bounds.
func (b *Builder) Set(x, y int, c Cell) {
	b.grid.set(b.grid.Idx(x, y), c)
}

// SetIndex writes cell c at row-major index idx.
func (b *Builder) SetIndex(idx int, c Cell) {
	b.grid.set(idx, c)
}

// At returns the current cell at (x, y), for precedence comparisons during
// rasterization.
func (b *Builder) At(x, y int) Cell {
	return b.grid.At(x, y)
}

// Grid returns the built, now-immutable grid.
func (b *Builder) Grid() *Grid {
	return b.grid
}

// String renders the grid as a debug grid of '#' (impassable) and '.'
// (passable), matching the teacher's Grid.String() debug convention.
func (g *Grid) String() string {
	out := fmt.Sprintf("Grid %dx%d:\n", g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y).Multiplier.IsImpassable() {
				out += "#"
			} else {
				out += "."
			}
		}
		out += "\n"
	}
	return out
}
