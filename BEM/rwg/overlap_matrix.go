package rwg

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gorwg/utils"
)

// neighborEdges lists every edge whose basis function shares a panel with
// edge ne, including ne itself
func (obj *RWGObject) neighborEdges(ne int, buf []int) []int {
	buf = buf[:0]
	e := &obj.Edges[ne]
	for _, np := range [2]int{e.IPPanel, e.IMPanel} {
	next:
		for _, nb := range obj.PanelEdges[np] {
			for _, seen := range buf {
				if seen == nb {
					continue next
				}
			}
			buf = append(buf, nb)
		}
	}
	return buf
}

// OverlapMatrices assembles the NumEdges x NumEdges matrices of GetOverlap
// values and oTimes values. Rows are split across parallelDegree goroutines;
// only pairs sharing a panel are evaluated. The object must not be
// transformed while this runs.
func (obj *RWGObject) OverlapMatrices(parallelDegree int) (overlap, oTimes *sparse.CSR, err error) {
	var (
		pm  = utils.NewPartitionMap(parallelDegree, obj.NumEdges)
		oT  = make([][]utils.Triplet, pm.ParallelDegree)
		xT  = make([][]utils.Triplet, pm.ParallelDegree)
		OM  = utils.NewDOK(obj.NumEdges, obj.NumEdges)
		OXM = utils.NewDOK(obj.NumEdges, obj.NumEdges)
	)
	err = pm.Run(func(bn, kMin, kMax int) error {
		var nbrs = make([]int, 0, 5)
		for neA := kMin; neA < kMax; neA++ {
			nbrs = obj.neighborEdges(neA, nbrs)
			for _, neB := range nbrs {
				o, x, err := obj.GetOverlap(neA, neB)
				if err != nil {
					return err
				}
				if o != 0 {
					oT[bn] = append(oT[bn], utils.Triplet{I: neA, J: neB, Val: o})
				}
				if x != 0 {
					xT[bn] = append(xT[bn], utils.Triplet{I: neA, J: neB, Val: x})
				}
			}
		}
		return nil
	})
	if err != nil {
		return
	}
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		if err = OM.AddTriplets(oT[bn]); err != nil {
			return
		}
		if err = OXM.AddTriplets(xT[bn]); err != nil {
			return
		}
	}
	return OM.ToCSR(), OXM.ToCSR(), nil
}
