package gridmodel

import (
	"github.com/arlojensen/terracore/internal/terraerr"
)

// NormalizationRecord maps a map-internal coordinate (u, v) onto a grid
// cell (x, y) via the affine transform:
//
//	x = floor((u - MinX) / ResX)
//	y = floor((v - MinY) / ResY)
type NormalizationRecord struct {
	MinX, MinY float64
	ResX, ResY float64
}

// Normalize computes the NormalizationRecord mapping the feature bounding
// rectangle (uMin, vMin)-(uMax, vMax) onto a W×H grid. Returns
// terraerr.DegenerateBounds if the rectangle has zero width or height.
func Normalize(uMin, vMin, uMax, vMax float64, w, h int) (NormalizationRecord, error) {
	if uMax == uMin || vMax == vMin {
		return NormalizationRecord{}, terraerr.DegenerateBounds(uMin, uMax, vMin, vMax)
	}
	return NormalizationRecord{
		MinX: uMin,
		MinY: vMin,
		ResX: (uMax - uMin) / float64(w),
		ResY: (vMax - vMin) / float64(h),
	}, nil
}

// ToGrid maps a map-internal coordinate to its grid cell.
func (n NormalizationRecord) ToGrid(u, v float64) (x, y int) {
	x = int(floorDiv(u-n.MinX, n.ResX))
	y = int(floorDiv(v-n.MinY, n.ResY))
	return x, y
}

// ToGridF maps a map-internal coordinate to continuous grid-space
// coordinates, without flooring to a cell. The Rasterizer's scanline pass
// needs the fractional part to find edge/scanline intersections precisely;
// ToGrid's integer cell is only appropriate for Bresenham boundary sampling.
func (n NormalizationRecord) ToGridF(u, v float64) (x, y float64) {
	x = (u - n.MinX) / n.ResX
	y = (v - n.MinY) / n.ResY
	return x, y
}

// ToMap maps a grid cell back to the map-internal coordinate of its
// lower-left corner. Composing ToGrid then ToMap then ToGrid again is
// idempotent on the cell coordinate, satisfying the round-trip invariant.
func (n NormalizationRecord) ToMap(x, y int) (u, v float64) {
	u = n.MinX + float64(x)*n.ResX
	v = n.MinY + float64(y)*n.ResY
	return u, v
}

func floorDiv(numerator, denominator float64) float64 {
	q := numerator / denominator
	fq := float64(int64(q))
	if q < 0 && fq != q {
		return fq - 1
	}
	return fq
}
