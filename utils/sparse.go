package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Triplet is one (row, column, value) entry of a sparse matrix
type Triplet struct {
	I, J int
	Val  float64
}

// DOK accumulates sparse entries before conversion to a compressed format
type DOK struct {
	M *sparse.DOK
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{sparse.NewDOK(nr, nc)}
	return
}

// Dims and At minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }
func (m DOK) NNZ() int            { return m.M.NNZ() }

func (m DOK) Set(i, j int, val float64) {
	m.M.Set(i, j, val)
}

// AddTriplets stores every triplet, later duplicates overwrite earlier ones
func (m DOK) AddTriplets(tt []Triplet) error {
	nr, nc := m.Dims()
	for _, t := range tt {
		if t.I < 0 || t.I >= nr || t.J < 0 || t.J >= nc {
			return fmt.Errorf("entry (%d,%d) outside %dx%d matrix", t.I, t.J, nr, nc)
		}
		m.M.Set(t.I, t.J, t.Val)
	}
	return nil
}

func (m DOK) ToCSR() *sparse.CSR {
	return m.M.ToCSR()
}
