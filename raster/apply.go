package raster

import (
	"github.com/arlojensen/terracore/gridmodel"
	"github.com/arlojensen/terracore/mapreader"
)

// writeCell applies the precedence rule at a single cell: impassable
// dominates any finite multiplier regardless of write order; among finite
// multipliers, the later write (in the caller's layer/document order) wins.
// Because applyFeatureBoundary/applyFeatureFill are invoked in that order by
// rasterizeBand, a plain "overwrite unless already impassable" check
// realizes both halves of the rule.
func writeCell(builder *gridmodel.Builder, x, y int, cell gridmodel.Cell) {
	if !builder.At(x, y).Multiplier.IsImpassable() || cell.Multiplier.IsImpassable() {
		builder.Set(x, y, cell)
	}
}

func inRowRange(y, yStart, yEnd int) bool {
	return y >= yStart && y < yEnd
}

// applyFeatureBoundary rasterizes a Feature's boundary (Pass 1): point
// features stamp one cell, polylines and polygon rings are walked with
// integer Bresenham sampling. Gap segments are skipped; dash segments are
// rasterized solid, producing a Warning per spec's documented minimal-
// conforming fallback.
func applyFeatureBoundary(builder *gridmodel.Builder, f mapreader.Feature, norm gridmodel.NormalizationRecord, w, yStart, yEnd int, cell gridmodel.Cell) []mapreader.Warning {
	var warnings []mapreader.Warning

	if f.Kind == mapreader.KindPoint {
		x, y := norm.ToGrid(f.Point[0], f.Point[1])
		if x >= 0 && x < w && inRowRange(y, yStart, yEnd) {
			writeCell(builder, x, y, cell)
		}
		return warnings
	}

	rings := append([]mapreader.Ring{f.Outer}, f.Holes...)
	sawDash := false
	for _, ring := range rings {
		for _, seg := range ring.Segments {
			if seg.Gap {
				continue
			}
			if seg.Dash {
				sawDash = true
			}

			x0, y0 := norm.ToGrid(seg.A[0], seg.A[1])
			x1, y1 := norm.ToGrid(seg.B[0], seg.B[1])
			for _, c := range bresenhamLine(x0, y0, x1, y1) {
				cx, cy := c[0], c[1]
				if cx < 0 || cx >= w || !inRowRange(cy, yStart, yEnd) {
					continue
				}
				writeCell(builder, cx, cy, cell)
			}
		}
	}

	if sawDash {
		warnings = append(warnings, mapreader.Warning{
			SymbolCode: f.SymbolCode,
			Message:    "dashed boundary rasterized as solid",
		})
	}

	return warnings
}

// applyFeatureFill rasterizes a polygon Feature's interior (Pass 2):
// scanline fill at y+0.5 with the even-odd rule, holes included in the same
// sorted intersection list. Non-polygon features and degenerate (zero-area)
// rings are skipped.
func applyFeatureFill(builder *gridmodel.Builder, f mapreader.Feature, norm gridmodel.NormalizationRecord, w, yStart, yEnd int, cell gridmodel.Cell) []mapreader.Warning {
	if f.Kind != mapreader.KindPolygon {
		return nil
	}

	edges := ringEdges(f.Outer, norm)
	for _, hole := range f.Holes {
		edges = append(edges, ringEdges(hole, norm)...)
	}
	if len(edges) == 0 {
		return nil
	}

	for y := yStart; y < yEnd; y++ {
		for _, r := range scanFillRow(edges, y, w) {
			for x := r[0]; x <= r[1]; x++ {
				writeCell(builder, x, y, cell)
			}
		}
	}

	return nil
}

func ringEdges(ring mapreader.Ring, norm gridmodel.NormalizationRecord) []scanlineEdge {
	edges := make([]scanlineEdge, 0, len(ring.Segments))
	for _, seg := range ring.Segments {
		x0, y0 := norm.ToGridF(seg.A[0], seg.A[1])
		x1, y1 := norm.ToGridF(seg.B[0], seg.B[1])
		edges = append(edges, scanlineEdge{x0: x0, y0: y0, x1: x1, y1: y1})
	}
	return edges
}
