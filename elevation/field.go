// Package elevation wraps a regular 2D elevation raster and exposes
// bilinear-interpolated elevation queries at arbitrary real-valued points in
// the logical grid's coordinate system. It mirrors the read-only, clamp-at-
// edge retrieval style of aurel42-phileasgo's ElevationProvider, generalized
// from nearest-sample lookup to bilinear interpolation and from a fixed
// global raster to an arbitrarily offset, arbitrarily scaled field.
package elevation

import "math"

// Field is a regular 2D grid of elevation samples in meters. EW and EH are
// the field's own dimensions, which may differ from the logical cost grid's
// dimensions; CellM is the real-world side length, in meters, of one field
// cell. OriginPX, OriginPY is the projected-CRS coordinate of the field's
// (0,0) cell corner.
type Field struct {
	EW, EH           int
	Values           []float32
	OriginPX, OriginPY float64
	CellM            float64
}

// NewUniformField builds a flat field of the given elevation, used when no
// real elevation data is supplied. A single-cell field is sufficient since
// every sample will return the same value regardless of cell size.
func NewUniformField(elevationM float32, cellM float64) *Field {
	return &Field{
		EW: 1, EH: 1,
		Values: []float32{elevationM},
		CellM:  cellM,
	}
}

func (f *Field) at(x, y int) float32 {
	if x < 0 {
		x = 0
	}
	if x >= f.EW {
		x = f.EW - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= f.EH {
		y = f.EH - 1
	}
	return f.Values[y*f.EW+x]
}

// Sampler bilinearly interpolates a Field at points expressed in a
// different (logical) grid's coordinate system. The affine transform from
// logical grid cell units to field cell units is:
//
//	fieldCol = (logicalX*LogCellM + OffsetX) / field.CellM
//	fieldRow = (logicalY*LogCellM + OffsetY) / field.CellM
//
// where OffsetX/OffsetY translate the logical grid's (0,0) origin into the
// field's own coordinate system. Sampler is stateless and therefore safe to
// call concurrently from many pathfinder goroutines.
type Sampler struct {
	Field             *Field
	LogCellM          float32
	OffsetX, OffsetY  float64
}

// NewSampler builds a Sampler over field, given the logical grid's cell
// size and the offset translating the logical grid's (0,0) into the
// field's coordinate system.
func NewSampler(field *Field, logCellM float32, offsetX, offsetY float64) *Sampler {
	return &Sampler{Field: field, LogCellM: logCellM, OffsetX: offsetX, OffsetY: offsetY}
}

// ElevationAt returns the bilinearly interpolated elevation, in meters, at
// the real-valued logical grid point (x, y). Out-of-field queries clamp to
// the nearest edge.
func (s *Sampler) ElevationAt(x, y float32) float32 {
	f := s.Field
	if f.EW <= 1 && f.EH <= 1 {
		return f.Values[0]
	}

	fCol := (float64(x)*float64(s.LogCellM) + s.OffsetX) / f.CellM
	fRow := (float64(y)*float64(s.LogCellM) + s.OffsetY) / f.CellM

	x0 := int(math.Floor(fCol))
	y0 := int(math.Floor(fRow))
	x1 := x0 + 1
	y1 := y0 + 1

	tx := float32(fCol - float64(x0))
	ty := float32(fRow - float64(y0))

	// Clamp fractional weights when the integer part already clamped at an
	// edge, so extrapolation beyond the field does not occur.
	if x0 < 0 {
		x0, x1, tx = 0, 0, 0
	} else if x0 >= f.EW-1 {
		x0, x1, tx = f.EW-1, f.EW-1, 0
	}
	if y0 < 0 {
		y0, y1, ty = 0, 0, 0
	} else if y0 >= f.EH-1 {
		y0, y1, ty = f.EH-1, f.EH-1, 0
	}

	v00 := f.at(x0, y0)
	v10 := f.at(x1, y0)
	v01 := f.at(x0, y1)
	v11 := f.at(x1, y1)

	top := v00 + (v10-v00)*tx
	bot := v01 + (v11-v01)*tx
	return top + (bot-top)*ty
}
