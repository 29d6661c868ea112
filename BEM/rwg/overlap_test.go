package rwg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// rwgField evaluates the basis function of edge ne at point x of panel np
func rwgField(obj *RWGObject, ne, np int, x r3.Vec) r3.Vec {
	e := obj.Edges[ne]
	area := obj.Panels[np].Area
	switch np {
	case e.IPPanel:
		return r3.Scale(e.Length/(2*area), r3.Sub(x, obj.Vertices[e.IQP]))
	case e.IMPanel:
		return r3.Scale(e.Length/(2*area), r3.Sub(obj.Vertices[e.IQM], x))
	}
	return r3.Vec{}
}

// quadratureOverlap integrates the overlap with the edge midpoint rule,
// exact for the quadratic integrands involved
func quadratureOverlap(obj *RWGObject, a, b int) (overlap, oTimes float64) {
	for np := range obj.Panels {
		var (
			p          = obj.Panels[np]
			v0, v1, v2 = obj.PanelVertices(np)
			mids       = [3]r3.Vec{
				r3.Scale(0.5, r3.Add(v0, v1)),
				r3.Scale(0.5, r3.Add(v1, v2)),
				r3.Scale(0.5, r3.Add(v2, v0)),
			}
		)
		for _, x := range mids {
			fa, fb := rwgField(obj, a, np, x), rwgField(obj, b, np, x)
			overlap += p.Area / 3 * r3.Dot(fa, fb)
			oTimes += p.Area / 3 * r3.Dot(fa, r3.Cross(p.ZHat, fb))
		}
	}
	return
}

func TestOverlapSquare(t *testing.T) {
	obj := newByHand(t, squareMesh)
	o, x, err := obj.GetOverlap(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2./3., o, tol)
	assert.Equal(t, 0., x)
}

func TestOverlapFan(t *testing.T) {
	var (
		obj   = newByHand(t, fanMesh)
		self  = 0.3409366408930672
		cross = 0.0802203860924864
	)
	require.Equal(t, 4, obj.NumEdges)
	type pair struct{ a, b int }
	expected := map[pair][2]float64{
		{0, 1}: {-cross, -0.09},
		{0, 2}: {cross, -0.09},
		{1, 3}: {-cross, -0.09},
		{2, 3}: {cross, -0.09},
		{0, 3}: {0, 0},
		{1, 2}: {0, 0},
	}
	for ne := 0; ne < obj.NumEdges; ne++ {
		o, x, err := obj.GetOverlap(ne, ne)
		require.NoError(t, err)
		assert.InDelta(t, self, o, tol)
		assert.Equal(t, 0., x)
	}
	for p, val := range expected {
		o, x, err := obj.GetOverlap(p.a, p.b)
		require.NoError(t, err)
		assert.InDeltaf(t, val[0], o, tol, "overlap(%d,%d)", p.a, p.b)
		assert.InDeltaf(t, val[1], x, tol, "oTimes(%d,%d)", p.a, p.b)
		o, x, err = obj.GetOverlap(p.b, p.a)
		require.NoError(t, err)
		assert.InDeltaf(t, val[0], o, tol, "overlap(%d,%d)", p.b, p.a)
		assert.InDeltaf(t, -val[1], x, tol, "oTimes(%d,%d)", p.b, p.a)
	}
}

func TestOverlapSymmetry(t *testing.T) {
	for name, build := range map[string]func() ([]r3.Vec, [][3]int){
		"fan": fanMesh, "octahedron": octahedronMesh,
	} {
		t.Run(name, func(t *testing.T) {
			obj := newByHand(t, build)
			for a := 0; a < obj.NumEdges; a++ {
				for b := 0; b < obj.NumEdges; b++ {
					oab, xab, err := obj.GetOverlap(a, b)
					require.NoError(t, err)
					oba, xba, err := obj.GetOverlap(b, a)
					require.NoError(t, err)
					assert.InDelta(t, oab, oba, tol)
					assert.InDelta(t, -xab, xba, tol)

					ea, eb := obj.Edges[a], obj.Edges[b]
					sharePanel := ea.IPPanel == eb.IPPanel || ea.IPPanel == eb.IMPanel ||
						ea.IMPanel == eb.IPPanel || ea.IMPanel == eb.IMPanel
					if !sharePanel {
						assert.Equal(t, 0., oab)
						assert.Equal(t, 0., xab)
					}
				}
			}
		})
	}
}

func TestOverlapQuadrature(t *testing.T) {
	for name, build := range map[string]func() ([]r3.Vec, [][3]int){
		"square": squareMesh, "fan": fanMesh, "octahedron": octahedronMesh,
	} {
		t.Run(name, func(t *testing.T) {
			obj := newByHand(t, build)
			for a := 0; a < obj.NumEdges; a++ {
				for b := 0; b < obj.NumEdges; b++ {
					o, x, err := obj.GetOverlap(a, b)
					require.NoError(t, err)
					qo, qx := quadratureOverlap(obj, a, b)
					assert.InDeltaf(t, qo, o, 1.e-10, "overlap(%d,%d)", a, b)
					assert.InDeltaf(t, qx, x, 1.e-10, "oTimes(%d,%d)", a, b)
				}
			}
		})
	}
}

func TestOverlapOutOfRange(t *testing.T) {
	obj := newByHand(t, squareMesh)
	for _, p := range [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -3}} {
		_, _, err := obj.GetOverlap(p[0], p[1])
		assert.Error(t, err)
	}
}

func TestOverlapMatrices(t *testing.T) {
	obj := newByHand(t, octahedronMesh)
	for _, pd := range []int{1, 3, 64} {
		OM, OXM, err := obj.OverlapMatrices(pd)
		require.NoError(t, err)
		nr, nc := OM.Dims()
		assert.Equal(t, obj.NumEdges, nr)
		assert.Equal(t, obj.NumEdges, nc)
		assert.True(t, mat.EqualApprox(OM, OM.T(), tol))
		var sum mat.Dense
		sum.Add(OXM, OXM.T())
		assert.InDelta(t, 0., mat.Norm(&sum, 1), tol)
		for a := 0; a < obj.NumEdges; a++ {
			for b := 0; b < obj.NumEdges; b++ {
				o, x, err := obj.GetOverlap(a, b)
				require.NoError(t, err)
				assert.Equal(t, o, OM.At(a, b))
				assert.Equal(t, x, OXM.At(a, b))
			}
		}
	}
}
