package rwg

import (
	"errors"
	"fmt"

	"github.com/notargets/gorwg/geometry3D"
)

var ErrNonManifold = errors.New("non-manifold edge")

type edgeKey [2]int

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

type edgeIncidence struct {
	panel, local int // local is the index of the vertex opposite the edge
}

// InitEdgeList derives the internal (basis function) and exterior edges
// from the panel list. The edge opposite local vertex i of a panel runs from
// VI[(i+1)%3] to VI[(i+2)%3]. Edges are numbered in order of first
// appearance; the first incident panel is the plus panel.
func (obj *RWGObject) InitEdgeList() error {
	var (
		incidence = make(map[edgeKey][]edgeIncidence, 3*len(obj.Panels)/2)
		order     = make([]edgeKey, 0, 3*len(obj.Panels)/2)
	)
	for np := range obj.Panels {
		vi := obj.Panels[np].VI
		for i := 0; i < 3; i++ {
			key := newEdgeKey(vi[(i+1)%3], vi[(i+2)%3])
			inc, exists := incidence[key]
			if !exists {
				order = append(order, key)
			}
			incidence[key] = append(inc, edgeIncidence{panel: np, local: i})
		}
	}

	obj.Edges = obj.Edges[:0]
	obj.ExteriorEdges = obj.ExteriorEdges[:0]
	obj.PanelEdges = make([][]int, len(obj.Panels))
	for _, key := range order {
		inc := incidence[key]
		switch len(inc) {
		case 1:
			obj.ExteriorEdges = append(obj.ExteriorEdges, obj.newBoundaryEdge(inc[0]))
		case 2:
			e := obj.newEdge(inc[0], inc[1])
			e.Index = len(obj.Edges)
			obj.Edges = append(obj.Edges, e)
			obj.PanelEdges[e.IPPanel] = append(obj.PanelEdges[e.IPPanel], e.Index)
			obj.PanelEdges[e.IMPanel] = append(obj.PanelEdges[e.IMPanel], e.Index)
		default:
			return fmt.Errorf("%w: vertices (%d,%d) are shared by %d panels",
				ErrNonManifold, key[0], key[1], len(inc))
		}
	}
	obj.NumEdges = len(obj.Edges)
	obj.NumExteriorEdges = len(obj.ExteriorEdges)
	return nil
}

func (obj *RWGObject) newEdge(plus, minus edgeIncidence) (e Edge) {
	var (
		pvi = obj.Panels[plus.panel].VI
		mvi = obj.Panels[minus.panel].VI
	)
	e.IPPanel, e.PIndex, e.IQP = plus.panel, plus.local, pvi[plus.local]
	e.IMPanel, e.MIndex, e.IQM = minus.panel, minus.local, mvi[minus.local]
	e.IV1, e.IV2 = pvi[(plus.local+1)%3], pvi[(plus.local+2)%3]
	var (
		v1, v2 = obj.Vertices[e.IV1], obj.Vertices[e.IV2]
	)
	e.Length = geometry3D.Distance(v1, v2)
	e.Centroid = geometry3D.Centroid(v1, v2)
	e.Radius = geometry3D.BoundingRadius(e.Centroid, v1, v2,
		obj.Vertices[e.IQP], obj.Vertices[e.IQM])
	return
}

func (obj *RWGObject) newBoundaryEdge(inc edgeIncidence) (be BoundaryEdge) {
	vi := obj.Panels[inc.panel].VI
	be.IPanel, be.PIndex, be.IQP = inc.panel, inc.local, vi[inc.local]
	be.IV1, be.IV2 = vi[(inc.local+1)%3], vi[(inc.local+2)%3]
	v1, v2 := obj.Vertices[be.IV1], obj.Vertices[be.IV2]
	be.Length = geometry3D.Distance(v1, v2)
	be.Centroid = geometry3D.Centroid(v1, v2)
	return
}
