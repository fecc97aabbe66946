// SPDX-License-Identifier: MIT

// Package sparse - compressed sparse column storage.
// CSC is the input layout of Factorize: a left-looking LU consumes the
// system matrix one column at a time.
package sparse

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var _ mat.Matrix = (*CSC)(nil)

// CSC is a compressed sparse column matrix of float64 values.
type CSC struct {
	r, c   int
	colptr []int
	rowidx []int
	data   []float64
}

// NewCSC validates and wraps raw compressed-column arrays, taking
// ownership of the slices. Errors mirror NewCSR.
func NewCSC(r, c int, colptr, rowidx []int, data []float64) (*CSC, error) {
	if err := validateCompressed(c, r, colptr, rowidx, data); err != nil {
		return nil, sparseErrorf("NewCSC", err)
	}

	return &CSC{r: r, c: c, colptr: colptr, rowidx: rowidx, data: data}, nil
}

// Dims returns the number of rows and columns.
func (m *CSC) Dims() (r, c int) { return m.r, m.c }

// NNZ returns the number of stored entries.
func (m *CSC) NNZ() int { return len(m.data) }

// At returns the element at (i, j) and panics on invalid indices.
func (m *CSC) At(i, j int) float64 {
	v, err := m.Value(i, j)
	if err != nil {
		panic(err)
	}

	return v
}

// Value returns the element at (i, j), or ErrOutOfRange.
func (m *CSC) Value(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, sparseErrorf("CSC.Value", fmt.Errorf("(%d,%d) in %d×%d: %w", i, j, m.r, m.c, ErrOutOfRange))
	}
	lo, hi := m.colptr[j], m.colptr[j+1]
	k := lo + sort.SearchInts(m.rowidx[lo:hi], i)
	if k < hi && m.rowidx[k] == i {
		return m.data[k], nil
	}

	return 0, nil
}

// T returns the implicit transpose of m.
func (m *CSC) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// Col returns the row indices and values stored in column j (aliases m).
func (m *CSC) Col(j int) (rows []int, vals []float64) {
	lo, hi := m.colptr[j], m.colptr[j+1]
	return m.rowidx[lo:hi], m.data[lo:hi]
}

// DoNonZero calls fn for every stored entry in column-major order.
func (m *CSC) DoNonZero(fn func(i, j int, v float64)) {
	for j := 0; j < m.c; j++ {
		for p := m.colptr[j]; p < m.colptr[j+1]; p++ {
			fn(m.rowidx[p], j, m.data[p])
		}
	}
}

// MulVec computes dst = m·x. dst and x must not alias.
func (m *CSC) MulVec(dst, x []float64) error {
	if err := ValidateVecLen(x, m.c); err != nil {
		return sparseErrorf("CSC.MulVec: x", err)
	}
	if err := ValidateVecLen(dst, m.r); err != nil {
		return sparseErrorf("CSC.MulVec: dst", err)
	}
	for i := range dst {
		dst[i] = 0
	}
	var xj float64
	for j := 0; j < m.c; j++ {
		xj = x[j]
		if xj == 0 {
			continue
		}
		for p := m.colptr[j]; p < m.colptr[j+1]; p++ {
			dst[m.rowidx[p]] += m.data[p] * xj
		}
	}

	return nil
}

// ToCSR returns the same matrix in compressed-row storage.
func (m *CSC) ToCSR() *CSR {
	ptr, idx, data := transposeCompressed(m.c, m.r, m.colptr, m.rowidx, m.data)
	return &CSR{r: m.r, c: m.c, indptr: ptr, indices: idx, data: data}
}
