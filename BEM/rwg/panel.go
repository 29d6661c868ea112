package rwg

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gorwg/geometry3D"
)

// NewPanel builds the panel on vertices iV1, iV2, iV3 and computes its geometry
func NewPanel(vertices []r3.Vec, iV1, iV2, iV3 int) (p Panel) {
	p.VI = [3]int{iV1, iV2, iV3}
	InitPanel(&p, vertices)
	return
}

// InitPanel recomputes the centroid, bounding radius, normal and area of a
// panel from the current vertex positions. Curling the fingers of the right
// hand along V0->V1->V2 points the thumb along ZHat.
func InitPanel(p *Panel, vertices []r3.Vec) {
	var (
		v0 = vertices[p.VI[0]]
		v1 = vertices[p.VI[1]]
		v2 = vertices[p.VI[2]]
	)
	p.Centroid = geometry3D.Centroid(v0, v1, v2)
	p.Radius = geometry3D.BoundingRadius(p.Centroid, v0, v1, v2)
	p.ZHat, p.Area = geometry3D.TriangleNormal(v0, v1, v2)
}

func (obj *RWGObject) initPanels() {
	for np := range obj.Panels {
		InitPanel(&obj.Panels[np], obj.Vertices)
	}
}
