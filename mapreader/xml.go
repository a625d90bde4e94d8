package mapreader

import (
	"encoding/xml"
	"os"
	"sort"

	"github.com/paulmach/orb"

	"github.com/arlojensen/terracore/internal/terraerr"
)

// xmlMap is the root element of the ISOM-2017-2 document this reader
// understands. The schema is a deliberately compact XML dialect: a
// georeferencing block plus one or more named layers, each holding objects
// tagged by symbol code. Curve-start points are retained as a flag on the
// point and rasterized as straight segments to the next point, per the
// Map Reader's documented lossy policy on unsupported geometry.
type xmlMap struct {
	XMLName        xml.Name    `xml:"map"`
	Georeferencing *xmlGeoref  `xml:"georeferencing"`
	Layers         []xmlLayer  `xml:"layers>layer"`
}

type xmlGeoref struct {
	RefPoint *xmlRefPoint `xml:"ref_point"`
	Bounds   *xmlBounds   `xml:"bounds"`
	Scale    *xmlScale    `xml:"scale"`
}

type xmlRefPoint struct {
	Lat float64 `xml:"lat,attr"`
	Lon float64 `xml:"lon,attr"`
	X   float64 `xml:"x,attr"`
	Y   float64 `xml:"y,attr"`
}

type xmlBounds struct {
	UMin float64 `xml:"u_min,attr"`
	VMin float64 `xml:"v_min,attr"`
	UMax float64 `xml:"u_max,attr"`
	VMax float64 `xml:"v_max,attr"`
}

type xmlScale struct {
	Denominator float64 `xml:"denominator,attr"`
}

type xmlLayer struct {
	Name    string      `xml:"name,attr"`
	Objects []xmlObject `xml:"object"`
}

type xmlObject struct {
	Symbol string    `xml:"symbol,attr"`
	Kind   string    `xml:"kind,attr"`
	Rings  []xmlRing `xml:"ring"`
	Pt     *xmlPt    `xml:"pt"`
}

type xmlRing struct {
	Hole bool    `xml:"hole,attr"`
	Pts  []xmlPt `xml:"pt"`
}

type xmlPt struct {
	X     float64 `xml:"x,attr"`
	Y     float64 `xml:"y,attr"`
	Gap   bool    `xml:"gap,attr"`
	Dash  bool    `xml:"dash,attr"`
	Curve bool    `xml:"curve,attr"`
}

// Read parses the map document at path, restricting Features to the
// caller-supplied set of layer names (unknown/unlisted layers are ignored;
// an empty set selects every layer). Features are returned in the order of
// the caller's layer list, then document order within a layer; with an
// empty list, layers keep their document order. Returns the parsed features, any non-fatal warnings, and the optional
// georeferencing metadata. A malformed document or unreadable file is
// fatal and reported as terraerr.KindMapLoad.
func Read(path string, layers []string) ([]Feature, []Warning, Georeference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, Georeference{}, terraerr.MapLoad(path, err)
	}
	defer f.Close()

	var doc xmlMap
	dec := xml.NewDecoder(f)
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, Georeference{}, terraerr.MapLoad(path, err)
	}

	wanted := make(map[string]bool, len(layers))
	for _, l := range layers {
		wanted[l] = true
	}

	// Order layers by their first position in the caller's list; the stable
	// sort keeps document order among equally ranked layers.
	rank := make(map[string]int, len(layers))
	for i := len(layers) - 1; i >= 0; i-- {
		rank[layers[i]] = i
	}
	sort.SliceStable(doc.Layers, func(i, j int) bool {
		return rank[doc.Layers[i].Name] < rank[doc.Layers[j].Name]
	})

	var features []Feature
	var warnings []Warning
	for _, layer := range doc.Layers {
		if len(wanted) > 0 && !wanted[layer.Name] {
			continue
		}
		for _, obj := range layer.Objects {
			feat, warn, ok := convertObject(layer.Name, obj)
			if warn != nil {
				warnings = append(warnings, *warn)
			}
			if ok {
				features = append(features, feat)
			}
		}
	}

	geo := convertGeoref(doc.Georeferencing)

	return features, warnings, geo, nil
}

func convertGeoref(g *xmlGeoref) Georeference {
	if g == nil {
		return Georeference{Present: false}
	}
	geo := Georeference{Present: true}
	if g.RefPoint != nil {
		geo.RefLat = g.RefPoint.Lat
		geo.RefLon = g.RefPoint.Lon
		geo.AnchorX = g.RefPoint.X
		geo.AnchorY = g.RefPoint.Y
	}
	if g.Bounds != nil {
		geo.Bounds = orb.Bound{
			Min: orb.Point{g.Bounds.UMin, g.Bounds.VMin},
			Max: orb.Point{g.Bounds.UMax, g.Bounds.VMax},
		}
	}
	if g.Scale != nil {
		geo.ScaleDenominator = g.Scale.Denominator
	}
	return geo
}

func convertObject(layer string, obj xmlObject) (Feature, *Warning, bool) {
	feat := Feature{SymbolCode: obj.Symbol, Layer: layer}

	switch obj.Kind {
	case "point":
		if obj.Pt == nil {
			return Feature{}, &Warning{SymbolCode: obj.Symbol, Message: "point object missing <pt>"}, false
		}
		feat.Kind = KindPoint
		feat.Point = orb.Point{obj.Pt.X, obj.Pt.Y}
		return feat, nil, true

	case "polyline":
		if len(obj.Rings) == 0 {
			return Feature{}, &Warning{SymbolCode: obj.Symbol, Message: "polyline object missing <ring>"}, false
		}
		feat.Kind = KindPolyline
		feat.Outer = ringFromPts(obj.Rings[0].Pts, false)
		return feat, nil, true

	case "polygon":
		if len(obj.Rings) == 0 {
			return Feature{}, &Warning{SymbolCode: obj.Symbol, Message: "polygon object missing <ring>"}, false
		}
		feat.Kind = KindPolygon
		for _, r := range obj.Rings {
			ring := ringFromPts(r.Pts, true)
			if r.Hole {
				feat.Holes = append(feat.Holes, ring)
			} else {
				feat.Outer = ring
			}
		}
		return feat, nil, true

	default:
		return Feature{}, &Warning{SymbolCode: obj.Symbol, Message: "unknown object kind " + obj.Kind}, false
	}
}

// ringFromPts converts a sequence of XML points into segments, carrying
// each point's gap/dash flag onto the segment that follows it. Curve-start
// flags are dropped: the segment to the next point is emitted as a straight
// line, the documented lossy policy for unsupported Bezier geometry. If
// closed, an implicit closing segment is added from the last point back to
// the first.
func ringFromPts(pts []xmlPt, closed bool) Ring {
	var ring Ring
	n := len(pts)
	if n < 2 {
		return ring
	}
	for i := 0; i < n-1; i++ {
		ring.Segments = append(ring.Segments, xmlSegment(pts[i], pts[i+1]))
	}
	if closed {
		ring.Segments = append(ring.Segments, xmlSegment(pts[n-1], pts[0]))
	}
	return ring
}

func xmlSegment(a, b xmlPt) Segment {
	return Segment{
		A:    orb.Point{a.X, a.Y},
		B:    orb.Point{b.X, b.Y},
		Gap:  a.Gap,
		Dash: a.Dash,
	}
}
