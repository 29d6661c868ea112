package rwg

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

func coord(x r3.Vec, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return x.X
	case 1:
		return x.Y
	default:
		return x.Z
	}
}

// panelPoint is a panel centroid stored in the k-d tree
type panelPoint struct {
	X     r3.Vec
	Panel int
}

func (p panelPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return coord(p.X, d) - coord(c.(panelPoint).X, d)
}

func (p panelPoint) Dims() int { return 3 }

// Distance is the squared distance between centroids
func (p panelPoint) Distance(c kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(p.X, c.(panelPoint).X))
}

type panelPoints []panelPoint

func (p panelPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p panelPoints) Len() int                              { return len(p) }
func (p panelPoints) Pivot(d kdtree.Dim) int                { return panelPlane{panelPoints: p, Dim: d}.Pivot() }
func (p panelPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

type panelPlane struct {
	kdtree.Dim
	panelPoints
}

func (p panelPlane) Less(i, j int) bool {
	return coord(p.panelPoints[i].X, p.Dim) < coord(p.panelPoints[j].X, p.Dim)
}
func (p panelPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p panelPlane) Slice(start, end int) kdtree.SortSlicer {
	p.panelPoints = p.panelPoints[start:end]
	return p
}
func (p panelPlane) Swap(i, j int) {
	p.panelPoints[i], p.panelPoints[j] = p.panelPoints[j], p.panelPoints[i]
}

type panelTree struct {
	tree      *kdtree.Tree
	maxRadius float64
}

func newPanelTree(panels []Panel) *panelTree {
	if len(panels) == 0 {
		return nil
	}
	var (
		pts = make(panelPoints, len(panels))
		pt  = &panelTree{}
	)
	for np := range panels {
		pts[np] = panelPoint{X: panels[np].Centroid, Panel: np}
		pt.maxRadius = math.Max(pt.maxRadius, panels[np].Radius)
	}
	pt.tree = kdtree.New(pts, false)
	return pt
}

// NearestPanel returns the panel whose centroid is closest to x, or -1 for
// an object without panels
func (obj *RWGObject) NearestPanel(x r3.Vec) (np int, dist float64) {
	if obj.panelIndex == nil {
		return -1, math.Inf(1)
	}
	c, d2 := obj.panelIndex.tree.Nearest(panelPoint{X: x})
	if c == nil {
		return -1, math.Inf(1)
	}
	return c.(panelPoint).Panel, math.Sqrt(d2)
}

// PanelsWithin returns the panels whose bounding sphere comes within
// distance r of x
func (obj *RWGObject) PanelsWithin(x r3.Vec, r float64) (panels []int) {
	if obj.panelIndex == nil || r < 0 {
		return
	}
	var (
		reach = r + obj.panelIndex.maxRadius
		keep  = kdtree.NewDistKeeper(reach * reach)
	)
	obj.panelIndex.tree.NearestSet(keep, panelPoint{X: x})
	for _, cd := range keep.Heap {
		if cd.Comparable == nil {
			continue
		}
		np := cd.Comparable.(panelPoint).Panel
		if math.Sqrt(cd.Dist) <= r+obj.Panels[np].Radius {
			panels = append(panels, np)
		}
	}
	sort.Ints(panels)
	return
}
