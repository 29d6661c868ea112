package rwg

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/gorwg/geometry3D"
)

// Transform moves the object by delta: vertices and edge centroids are
// transformed, panel data are recomputed, and delta is composed onto the
// accumulated transformation so that UnTransform can undo it.
func (obj *RWGObject) Transform(delta geometry3D.Transform) {
	delta.ApplyAll(obj.Vertices)
	for ne := range obj.Edges {
		obj.Edges[ne].Centroid = delta.Apply(obj.Edges[ne].Centroid)
	}
	for ne := range obj.ExteriorEdges {
		obj.ExteriorEdges[ne].Centroid = delta.Apply(obj.ExteriorEdges[ne].Centroid)
	}
	obj.initPanels()
	obj.panelIndex = newPanelTree(obj.Panels)

	if obj.gt.active {
		obj.gt.gt = geometry3D.Compose(obj.gt.gt, delta)
	} else {
		obj.gt = accumulatedTransform{active: true, gt: delta}
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(log.Fields{
			"label": obj.Label,
			"delta": delta.String(),
		}).Debug("transformed RWG object")
	}
}

// TransformString parses a transformation such as
// "DISPLACED 0 0 1 ROTATED 30 ABOUT 0 0 1" and applies it
func (obj *RWGObject) TransformString(format string, args ...interface{}) error {
	delta, err := geometry3D.ParseTransform(fmt.Sprintf(format, args...))
	if err != nil {
		return err
	}
	obj.Transform(delta)
	return nil
}

// UnTransform returns the object to its untransformed position. It does
// nothing when the object has not been transformed.
func (obj *RWGObject) UnTransform() {
	if !obj.gt.active {
		return
	}
	gt := obj.gt.gt
	gt.UnApplyAll(obj.Vertices)
	for ne := range obj.Edges {
		obj.Edges[ne].Centroid = gt.UnApply(obj.Edges[ne].Centroid)
	}
	for ne := range obj.ExteriorEdges {
		obj.ExteriorEdges[ne].Centroid = gt.UnApply(obj.ExteriorEdges[ne].Centroid)
	}
	obj.initPanels()
	obj.panelIndex = newPanelTree(obj.Panels)
	obj.gt = accumulatedTransform{}
	log.WithField("label", obj.Label).Debug("untransformed RWG object")
}
