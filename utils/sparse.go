package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK is a sparse matrix under assembly, entries are accumulated with Add
type DOK struct {
	M    *sparse.DOK
	name string
}

func NewDOK(nr, nc int, nameO ...string) (R DOK) {
	R = DOK{
		M:    sparse.NewDOK(nr, nc),
		name: "unnamed",
	}
	if len(nameO) > 0 {
		R.name = nameO[0]
	}
	return
}

// Dims and At minimally satisfy the mat.Matrix interface together with T.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) {
	m.checkBounds(i, j)
	m.M.Set(i, j, val)
}

// Add sums val into the (i,j) entry
func (m DOK) Add(i, j int, val float64) {
	m.checkBounds(i, j)
	m.M.Set(i, j, m.M.At(i, j)+val)
}

func (m DOK) checkBounds(i, j int) {
	nr, nc := m.Dims()
	if i < 0 || i >= nr || j < 0 || j >= nc {
		panic(fmt.Errorf("index [%d,%d] out of range for %dx%d matrix named: \"%v\"", i, j, nr, nc, m.name))
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
}

// CSR is the compressed, read only form used for products
type CSR struct {
	M    *sparse.CSR
	name string
}

func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }

// MulVec returns A*x
func (m CSR) MulVec(x []float64) (y []float64) {
	nr, nc := m.Dims()
	if len(x) != nc {
		panic(fmt.Errorf("length of x = %d, expected %d for matrix named: \"%v\"", len(x), nc, m.name))
	}
	y = make([]float64, nr)
	m.M.DoNonZero(func(i, j int, v float64) {
		y[i] += v * x[j]
	})
	return
}

// MulTransVec returns A^T*x
func (m CSR) MulTransVec(x []float64) (y []float64) {
	nr, nc := m.Dims()
	if len(x) != nr {
		panic(fmt.Errorf("length of x = %d, expected %d for matrix named: \"%v\"", len(x), nr, m.name))
	}
	y = make([]float64, nc)
	m.M.DoNonZero(func(i, j int, v float64) {
		y[j] += v * x[i]
	})
	return
}

// RowSums returns the sum of each row
func (m CSR) RowSums() (s []float64) {
	nr, _ := m.Dims()
	s = make([]float64, nr)
	m.M.DoNonZero(func(i, j int, v float64) {
		s[i] += v
	})
	return
}
