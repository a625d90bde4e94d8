package raster

import (
	"github.com/dhconnelly/rtreego"

	"github.com/arlojensen/terracore/gridmodel"
	"github.com/arlojensen/terracore/mapreader"
)

// orderedFeature pairs a Feature with its rank in the caller-supplied
// layer/document order, the total order the precedence rule is defined
// over.
type orderedFeature struct {
	feature mapreader.Feature
	order   int
	minY    float64
	maxY    float64
	rect    rtreego.Rect
}

// Bounds implements rtreego.Spatial, grounded in the bounding-box wrapper
// pattern of the pack's R-tree-indexed chart reader.
func (f *orderedFeature) Bounds() rtreego.Rect {
	return f.rect
}

// spatialIndex buckets features by their grid-space bounding box so the
// bounded worker pool can, for a given row band, fetch only the features
// that could possibly touch it instead of scanning the full feature list.
type spatialIndex struct {
	tree     *rtreego.Rtree
	features []*orderedFeature
}

// minSpatialExtent is the minimum rect side rtreego requires for a
// zero-area (point) feature, in grid cells.
const minSpatialExtent = 0.5

func newSpatialIndex(features []mapreader.Feature, norm gridmodel.NormalizationRecord) *spatialIndex {
	tree := rtreego.NewTree(2, 25, 50)
	idx := &spatialIndex{tree: tree, features: make([]*orderedFeature, 0, len(features))}

	for i, f := range features {
		b := f.Bound()
		x0, y0 := norm.ToGridF(b.Min[0], b.Min[1])
		x1, y1 := norm.ToGridF(b.Max[0], b.Max[1])
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		if y1 < y0 {
			y0, y1 = y1, y0
		}

		w := x1 - x0
		// Boundary sampling writes row floor(y1), which spans up to
		// floor(y1)+1; the extra row keeps a band starting at y1 intersecting.
		h := y1 - y0 + 1
		if w < minSpatialExtent {
			w = minSpatialExtent
		}
		if h < minSpatialExtent {
			h = minSpatialExtent
		}

		rect, err := rtreego.NewRect(rtreego.Point{x0, y0}, []float64{w, h})
		if err != nil {
			continue
		}

		of := &orderedFeature{feature: f, order: i, minY: y0, maxY: y0 + h, rect: rect}
		idx.features = append(idx.features, of)
		tree.Insert(of)
	}

	return idx
}

// queryRowBand returns every indexed feature whose bounding box intersects
// the half-open row range [yStart, yEnd), sorted by their global layer/
// document order so callers can apply the precedence rule directly.
func (idx *spatialIndex) queryRowBand(yStart, yEnd int) []*orderedFeature {
	rect, err := rtreego.NewRect(rtreego.Point{-1e12, float64(yStart)}, []float64{2e12, float64(yEnd - yStart)})
	if err != nil {
		return nil
	}

	hits := idx.tree.SearchIntersect(rect)
	result := make([]*orderedFeature, 0, len(hits))
	for _, h := range hits {
		result = append(result, h.(*orderedFeature))
	}
	sortByOrder(result)
	return result
}

func sortByOrder(fs []*orderedFeature) {
	for i := 1; i < len(fs); i++ {
		for j := i; j > 0 && fs[j].order < fs[j-1].order; j-- {
			fs[j], fs[j-1] = fs[j-1], fs[j]
		}
	}
}
