package rwg

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// GetOverlap computes the overlap integral between the RWG basis functions of
// edges neAlpha and neBeta,
//
//	overlap = <f_alpha, f_beta>
//	oTimes  = <f_alpha, nHat x f_beta>
//
// Both are zero when the basis functions share no panel. GetOverlap only reads
// the object and may be called concurrently with itself.
func (obj *RWGObject) GetOverlap(neAlpha, neBeta int) (overlap, oTimes float64, err error) {
	if neAlpha < 0 || neAlpha >= obj.NumEdges || neBeta < 0 || neBeta >= obj.NumEdges {
		err = fmt.Errorf("%s: edge pair (%d,%d) out of range [0,%d)", obj.Label, neAlpha, neBeta, obj.NumEdges)
		return
	}
	var (
		eA = &obj.Edges[neAlpha]
		eB = &obj.Edges[neBeta]
		V  = obj.Vertices
	)

	if neAlpha == neBeta {
		var (
			QP, V1, V2, QM = V[eA.IQP], V[eA.IV1], V[eA.IV2], V[eA.IQM]
			PArea          = obj.Panels[eA.IPPanel].Area
			MArea          = obj.Panels[eA.IMPanel].Area
			lA2            = eA.Length * eA.Length
			LA             = r3.Sub(V2, V1)
			LBP            = r3.Sub(V1, QP)
			LBM            = r3.Sub(V1, QM)
		)
		overlap = lA2 * ((lA2+3*r3.Norm2(LBP)+3*r3.Dot(LA, LBP))/PArea +
			(lA2+3*r3.Norm2(LBM)+3*r3.Dot(LA, LBM))/MArea) / 24.
		return
	}

	// Locate the shared panel, if any
	var (
		sign           float64
		area           float64
		iQA, iQB       int
		indexA, indexB int
	)
	switch {
	case eA.IPPanel == eB.IPPanel:
		sign, area = 1, obj.Panels[eA.IPPanel].Area
		iQA, iQB, indexA, indexB = eA.IQP, eB.IQP, eA.PIndex, eB.PIndex
	case eA.IPPanel == eB.IMPanel:
		sign, area = -1, obj.Panels[eA.IPPanel].Area
		iQA, iQB, indexA, indexB = eA.IQP, eB.IQM, eA.PIndex, eB.MIndex
	case eA.IMPanel == eB.IPPanel:
		sign, area = -1, obj.Panels[eA.IMPanel].Area
		iQA, iQB, indexA, indexB = eA.IQM, eB.IQP, eA.MIndex, eB.PIndex
	case eA.IMPanel == eB.IMPanel:
		sign, area = 1, obj.Panels[eA.IMPanel].Area
		iQA, iQB, indexA, indexB = eA.IQM, eB.IQM, eA.MIndex, eB.MIndex
	default:
		return
	}

	// QI is the vertex common to both edges
	var iQI int
	switch iQB {
	case eA.IV1:
		iQI = eA.IV2
	case eA.IV2:
		iQI = eA.IV1
	default:
		err = fmt.Errorf("%s: edges %d and %d share a panel but no vertex", obj.Label, neAlpha, neBeta)
		return
	}

	var (
		lA, lB     = eA.Length, eB.Length
		QA, QB, QI = V[iQA], V[iQB], V[iQI]
		dot        = r3.Dot(r3.Sub(QI, QA), r3.Sub(QB, QI))
		signPrime  = -1.
	)
	if (indexB-indexA+3)%3 == 2 {
		signPrime = 1
	}
	oTimes = sign * signPrime * lA * lB / 6.
	overlap = -sign * lA * lB * (lA*lA + lB*lB + 3*dot) / (24. * area)
	return
}
