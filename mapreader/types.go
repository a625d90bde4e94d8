// Package mapreader parses an ISOM-2017-2 XML map document into the
// in-memory Features the rasterizer consumes. It is the only component in
// the pipeline that performs I/O (reading the map file); everything it
// produces is then immutable for the rest of the run.
package mapreader

import (
	"math"

	"github.com/paulmach/orb"
)

// Kind distinguishes the three map primitives ISOM symbols render as.
type Kind int

const (
	KindPoint Kind = iota
	KindPolyline
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindPolyline:
		return "polyline"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Segment is one edge of a polyline or polygon ring, carrying the gap/dash
// flags inherited from the source document. A gap segment is never
// rasterized; a dash segment is rasterized as solid by this implementation
// per the spec's conservative dashed-boundary policy (see DESIGN.md).
type Segment struct {
	A, B orb.Point
	Gap  bool
	Dash bool
}

// Ring is a closed or open chain of Segments. Polygon outer boundaries and
// holes are always closed (last segment's B equals the first segment's A);
// polyline rings need not be.
type Ring struct {
	Segments []Segment
}

// Bound returns the axis-aligned bounding box of every point visited by the
// ring's segments.
func (r Ring) Bound() orb.Bound {
	b := orb.Bound{Min: orb.Point{math.MaxFloat64, math.MaxFloat64}, Max: orb.Point{-math.MaxFloat64, -math.MaxFloat64}}
	first := true
	for _, s := range r.Segments {
		for _, p := range [2]orb.Point{s.A, s.B} {
			if first {
				b = orb.Bound{Min: p, Max: p}
				first = false
				continue
			}
			b = b.Extend(p)
		}
	}
	return b
}

// Feature is a single parsed map primitive: a Point, Polyline, or Polygon
// (with optional holes), tagged by the ISOM symbol code and source layer
// that produced it.
type Feature struct {
	SymbolCode string
	Layer      string
	Kind       Kind

	// Point is populated when Kind == KindPoint.
	Point orb.Point

	// Outer is populated when Kind == KindPolyline (an open or closed
	// chain) or KindPolygon (the outer boundary, always closed).
	Outer Ring

	// Holes is populated only when Kind == KindPolygon.
	Holes []Ring
}

// Bound returns the feature's axis-aligned bounding box in map-internal
// units.
func (f Feature) Bound() orb.Bound {
	switch f.Kind {
	case KindPoint:
		return orb.Bound{Min: f.Point, Max: f.Point}
	default:
		return f.Outer.Bound()
	}
}

// Georeference carries the optional georeferencing metadata a map document
// may supply. A caller that needs uniform elevation when none is available
// decides that fallback itself; the map reader only reports whether
// georeferencing was present.
type Georeference struct {
	Present bool

	// RefLat, RefLon is the reference latitude/longitude.
	RefLat, RefLon float64

	// AnchorX, AnchorY is RefLat/RefLon's anchor in internal units.
	AnchorX, AnchorY float64

	// Bounds is the raw bounding rectangle of all features, in internal
	// units.
	Bounds orb.Bound

	// ScaleDenominator is the map scale denominator (e.g. 10000 for
	// 1:10000).
	ScaleDenominator float64
}

// MetersPerUnit returns how many meters one internal coordinate unit
// represents, per §6: "One internal unit equals scale / 1,000,000 meters."
func (g Georeference) MetersPerUnit() float64 {
	return g.ScaleDenominator / 1_000_000
}

// Warning records a non-fatal condition encountered while parsing or
// rasterizing, returned alongside the result rather than failing the call.
type Warning struct {
	SymbolCode string
	Message    string
}
