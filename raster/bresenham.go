package raster

import (
	"math"
	"sort"
)

// bresenhamLine returns every integer grid cell touched by the line from
// (x0, y0) to (x1, y1), using the standard integer Bresenham algorithm
// (spec: "integer Bresenham sampling").
func bresenhamLine(x0, y0, x1, y1 int) [][2]int {
	var cells [][2]int

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		cells = append(cells, [2]int{x, y})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}

	return cells
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// scanlineEdge is one ring edge in continuous grid-space coordinates.
type scanlineEdge struct {
	x0, y0, x1, y1 float64
}

// scanFillRow returns the sorted list of cell-x ranges to fill at row y
// (tested at the scanline y + 0.5), applying the even-odd rule across every
// edge supplied — outer boundary and holes combined into one sorted
// intersection list, per spec §4.3.
func scanFillRow(edges []scanlineEdge, y int, w int) [][2]int {
	scanY := float64(y) + 0.5

	var xs []float64
	for _, e := range edges {
		y0, y1 := e.y0, e.y1
		if y0 == y1 {
			continue
		}
		lo, hi := y0, y1
		if lo > hi {
			lo, hi = hi, lo
		}
		if scanY < lo || scanY >= hi {
			continue
		}
		t := (scanY - e.y0) / (e.y1 - e.y0)
		x := e.x0 + t*(e.x1-e.x0)
		xs = append(xs, x)
	}

	sort.Float64s(xs)

	var ranges [][2]int
	for i := 0; i+1 < len(xs); i += 2 {
		xa, xb := xs[i], xs[i+1]
		startCell := int(math.Floor(xa))
		endCell := int(math.Floor(xb))
		if startCell < 0 {
			startCell = 0
		}
		if endCell > w-1 {
			endCell = w - 1
		}
		if startCell > endCell {
			continue
		}
		ranges = append(ranges, [2]int{startCell, endCell})
	}
	return ranges
}
