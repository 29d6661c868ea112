package rwg

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gorwg/BEM/material"
	"github.com/notargets/gorwg/BEM/mesh"
	"github.com/notargets/gorwg/geometry3D"
)

// Panel is a triangular face of the surface. VI is in winding order, the
// remaining fields are derived from the vertex positions by InitPanel.
type Panel struct {
	VI       [3]int  // Vertex indices
	Centroid r3.Vec  //
	Radius   float64 // Max distance from centroid to a vertex
	ZHat     r3.Vec  // Unit outward normal
	Area     float64 //
	Index    int     // Position within RWGObject.Panels
}

// Edge is an internal edge shared by a plus and a minus panel. It carries
// one RWG basis function.
type Edge struct {
	IV1, IV2         int     // Vertices of the shared edge, in plus panel order
	IQP, IQM         int     // Vertices opposite the edge in the plus/minus panel
	IPPanel, IMPanel int     // Plus/minus panel indices
	PIndex, MIndex   int     // Local index (0,1,2) of QP/QM within its panel
	Length           float64 //
	Centroid         r3.Vec  // Midpoint of V1 and V2
	Radius           float64 // Max distance from centroid to V1, V2, QP, QM
	Index            int     // Position within RWGObject.Edges
}

// BoundaryEdge is an edge with a single incident panel
type BoundaryEdge struct {
	IV1, IV2 int
	IQP      int // Vertex opposite the edge
	IPanel   int
	PIndex   int
	Length   float64
	Centroid r3.Vec
}

type accumulatedTransform struct {
	active bool
	gt     geometry3D.Transform
}

// RWGObject is a discretized surface: the vertices, panels and RWG basis
// functions of one object. Panels and edges refer to each other only by
// index into the slices owned here.
type RWGObject struct {
	Label                 string
	MeshFileName          string
	ContainingObjectLabel string // Resolved by the owner of the object list
	MP                    *material.MatProp

	Vertices      []r3.Vec
	Panels        []Panel
	Edges         []Edge
	ExteriorEdges []BoundaryEdge
	PanelEdges    [][]int // Internal edges touching each panel

	NumVertices, NumPanels, NumEdges, NumExteriorEdges int
	NumBFs                                             int

	gt         accumulatedTransform
	panelIndex *panelTree
}

// NewRWGObject reads an object from a mesh file. The label defaults to
// "NoLabel", an empty material is PEC, and otgt is a one-time transformation
// applied to the geometry as it is loaded; its zero value does nothing.
func NewRWGObject(meshFileName, label, materialName string, otgt geometry3D.Transform) (obj *RWGObject, err error) {
	return NewRWGObjectFromConfig(ObjectConfig{
		Label:    label,
		MeshFile: meshFileName,
		Material: materialName,
		OTGT:     otgt,
	})
}

// NewRWGObjectFromConfig builds the object described by a decoded OBJECT block
func NewRWGObjectFromConfig(cfg ObjectConfig) (obj *RWGObject, err error) {
	var (
		mp *material.MatProp
		sm *mesh.SurfaceMesh
	)
	if len(cfg.MeshFile) == 0 {
		return nil, &ParseError{Msg: "OBJECT section must include a MESHFILE specification"}
	}
	if mp, err = material.NewMatProp(cfg.Material); err != nil {
		return nil, err
	}
	if sm, err = mesh.ReadMeshFile(cfg.MeshFile); err != nil {
		return nil, err
	}
	label := cfg.Label
	if len(label) == 0 {
		label = "NoLabel"
	}
	if obj, err = newRWGObject(sm.Vertices, sm.Triangles, label, cfg.MeshFile, mp, cfg.OTGT); err != nil {
		return nil, err
	}
	obj.ContainingObjectLabel = cfg.Inside
	return
}

// NewRWGObjectFromLists builds a PEC object from explicit vertex and panel lists
func NewRWGObjectFromLists(vertices []r3.Vec, panelVertexIndices [][3]int) (obj *RWGObject, err error) {
	sm := &mesh.SurfaceMesh{Vertices: vertices, Triangles: panelVertexIndices}
	if err = sm.Validate(); err != nil {
		return nil, &mesh.LoadError{File: "ByHand.msh", Err: err}
	}
	mp, _ := material.NewMatProp("PEC")
	return newRWGObject(vertices, panelVertexIndices, "ByHand", "ByHand.msh", mp, geometry3D.Identity())
}

func newRWGObject(vertices []r3.Vec, tris [][3]int, label, meshFileName string,
	mp *material.MatProp, otgt geometry3D.Transform) (obj *RWGObject, err error) {
	obj = &RWGObject{
		Label:        label,
		MeshFileName: meshFileName,
		MP:           mp,
		NumVertices:  len(vertices),
		NumPanels:    len(tris),
	}
	obj.Vertices = make([]r3.Vec, len(vertices))
	copy(obj.Vertices, vertices)
	if !otgt.IsIdentity() {
		otgt.ApplyAll(obj.Vertices)
	}

	obj.Panels = make([]Panel, obj.NumPanels)
	for np, tri := range tris {
		obj.Panels[np] = NewPanel(obj.Vertices, tri[0], tri[1], tri[2])
		obj.Panels[np].Index = np
	}

	if err = obj.InitEdgeList(); err != nil {
		log.WithFields(log.Fields{
			"label": label,
			"mesh":  meshFileName,
		}).Warn(err)
		return nil, &mesh.LoadError{File: meshFileName, Err: err}
	}

	// Penetrable objects carry an electric and a magnetic current per edge
	if mp.IsPEC() {
		obj.NumBFs = obj.NumEdges
	} else {
		obj.NumBFs = 2 * obj.NumEdges
	}
	obj.panelIndex = newPanelTree(obj.Panels)

	log.WithFields(log.Fields{
		"label":         obj.Label,
		"mesh":          obj.MeshFileName,
		"material":      mp.Name(),
		"vertices":      obj.NumVertices,
		"panels":        obj.NumPanels,
		"edges":         obj.NumEdges,
		"exteriorEdges": obj.NumExteriorEdges,
		"numBFs":        obj.NumBFs,
	}).Debug("created RWG object")
	return
}

// AccumulatedTransform returns the transformation currently applied to the
// object and whether there is one
func (obj *RWGObject) AccumulatedTransform() (gt geometry3D.Transform, ok bool) {
	return obj.gt.gt, obj.gt.active
}

// IsTransformed reports whether an accumulated transformation is in effect
func (obj *RWGObject) IsTransformed() bool { return obj.gt.active }

// PanelVertices returns the positions of the three vertices of a panel
func (obj *RWGObject) PanelVertices(np int) (v0, v1, v2 r3.Vec) {
	vi := obj.Panels[np].VI
	return obj.Vertices[vi[0]], obj.Vertices[vi[1]], obj.Vertices[vi[2]]
}

func (obj *RWGObject) String() string {
	return fmt.Sprintf("%s (%s): %d vertices, %d panels, %d edges (%d exterior), %d basis functions",
		obj.Label, obj.MeshFileName, obj.NumVertices, obj.NumPanels, obj.NumEdges,
		obj.NumExteriorEdges, obj.NumBFs)
}
