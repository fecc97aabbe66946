// SPDX-License-Identifier: MIT

// Package sparse - compressed sparse row storage.
//
// Purpose:
//   - Row-oriented storage for adjacency matrices: row i lists the
//     out-links of node i, so row sums are weighted out-degrees.
//   - Safe accessors at the public surface (Value returns errors) plus the
//     panicking At required by gonum's mat.Matrix.
//
// Invariants (checked by NewCSR, guaranteed by Builder):
//   - len(indptr) == r+1, indptr[0] == 0, indptr non-decreasing.
//   - column indices within a row are strictly increasing and in [0,c).
//   - len(indices) == len(data) == indptr[r].
//
// Complexity quicksheet:
//   - At/Value: O(log d) (binary search within the row).
//   - RowSums, MulVec, MulVecTrans, Transpose, DoNonZero: O(r + nnz).
package sparse

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var _ mat.Matrix = (*CSR)(nil)

// CSR is a compressed sparse row matrix of float64 values.
// A CSR is read-only after construction and safe for concurrent readers.
type CSR struct {
	r, c    int
	indptr  []int
	indices []int
	data    []float64
}

// NewCSR validates and wraps raw compressed-row arrays. NewCSR takes
// ownership of the slices; the caller must not modify them afterwards.
//
// Errors: ErrBadShape for negative dimensions, ErrMalformed for any
// structural inconsistency (see the package invariants above).
func NewCSR(r, c int, indptr, indices []int, data []float64) (*CSR, error) {
	if err := validateCompressed(r, c, indptr, indices, data); err != nil {
		return nil, sparseErrorf("NewCSR", err)
	}

	return &CSR{r: r, c: c, indptr: indptr, indices: indices, data: data}, nil
}

// validateCompressed checks the shared invariants of CSR (major=rows) and
// CSC (major=cols) storage.
func validateCompressed(nMajor, nMinor int, ptr, idx []int, data []float64) error {
	if nMajor < 0 || nMinor < 0 {
		return ErrBadShape
	}
	if len(ptr) != nMajor+1 || ptr[0] != 0 {
		return fmt.Errorf("pointer array length %d for %d groups: %w", len(ptr), nMajor, ErrMalformed)
	}
	if ptr[nMajor] != len(idx) || len(idx) != len(data) {
		return fmt.Errorf("nnz %d, %d indices, %d values: %w", ptr[nMajor], len(idx), len(data), ErrMalformed)
	}
	for i := 0; i < nMajor; i++ {
		if ptr[i] > ptr[i+1] {
			return fmt.Errorf("pointer array decreases at %d: %w", i, ErrMalformed)
		}
		for p := ptr[i]; p < ptr[i+1]; p++ {
			if idx[p] < 0 || idx[p] >= nMinor {
				return fmt.Errorf("index %d at group %d: %w", idx[p], i, ErrOutOfRange)
			}
			if p > ptr[i] && idx[p] <= idx[p-1] {
				return fmt.Errorf("unsorted or duplicate index %d at group %d: %w", idx[p], i, ErrMalformed)
			}
		}
	}

	return nil
}

// Dims returns the number of rows and columns.
func (m *CSR) Dims() (r, c int) { return m.r, m.c }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.data) }

// At returns the element at (i, j). It panics on out-of-range indices,
// matching the mat.Matrix contract; use Value for an error-returning form.
func (m *CSR) At(i, j int) float64 {
	v, err := m.Value(i, j)
	if err != nil {
		panic(err)
	}

	return v
}

// Value returns the element at (i, j), or ErrOutOfRange.
// Complexity: O(log d) where d is the number of entries in row i.
func (m *CSR) Value(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, sparseErrorf("CSR.Value", fmt.Errorf("(%d,%d) in %d×%d: %w", i, j, m.r, m.c, ErrOutOfRange))
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	k := lo + sort.SearchInts(m.indices[lo:hi], j)
	if k < hi && m.indices[k] == j {
		return m.data[k], nil
	}

	return 0, nil
}

// T returns the implicit transpose of m as a mat.Matrix (no copy).
// Use Transpose for a materialized CSR.
func (m *CSR) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// Row returns the column indices and values stored in row i.
// The returned slices alias m and must not be modified.
// Panics if i is out of range.
func (m *CSR) Row(i int) (cols []int, vals []float64) {
	lo, hi := m.indptr[i], m.indptr[i+1]
	return m.indices[lo:hi], m.data[lo:hi]
}

// DoNonZero calls fn for every stored entry in row-major order.
func (m *CSR) DoNonZero(fn func(i, j int, v float64)) {
	for i := 0; i < m.r; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			fn(i, m.indices[p], m.data[p])
		}
	}
}

// RowSums returns r[i] = Σ_j m[i,j].
// Complexity: O(r + nnz).
func (m *CSR) RowSums() []float64 {
	sums := make([]float64, m.r)
	var sum float64
	for i := 0; i < m.r; i++ {
		sum = 0
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			sum += m.data[p]
		}
		sums[i] = sum
	}

	return sums
}

// MulVec computes dst = m·x. dst must have length r and x length c;
// dst and x must not alias.
func (m *CSR) MulVec(dst, x []float64) error {
	if err := ValidateVecLen(x, m.c); err != nil {
		return sparseErrorf("CSR.MulVec: x", err)
	}
	if err := ValidateVecLen(dst, m.r); err != nil {
		return sparseErrorf("CSR.MulVec: dst", err)
	}
	var sum float64
	for i := 0; i < m.r; i++ {
		sum = 0
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			sum += m.data[p] * x[m.indices[p]]
		}
		dst[i] = sum
	}

	return nil
}

// MulVecTrans computes dst = mᵀ·x without materializing the transpose.
// dst must have length c and x length r; dst and x must not alias.
func (m *CSR) MulVecTrans(dst, x []float64) error {
	if err := ValidateVecLen(x, m.r); err != nil {
		return sparseErrorf("CSR.MulVecTrans: x", err)
	}
	if err := ValidateVecLen(dst, m.c); err != nil {
		return sparseErrorf("CSR.MulVecTrans: dst", err)
	}
	for j := range dst {
		dst[j] = 0
	}
	var xi float64
	for i := 0; i < m.r; i++ {
		xi = x[i]
		if xi == 0 {
			continue
		}
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			dst[m.indices[p]] += m.data[p] * xi
		}
	}

	return nil
}

// Transpose returns mᵀ as a new CSR. Column indices of the result are
// sorted because rows of m are scanned in increasing order.
// Complexity: O(r + c + nnz).
func (m *CSR) Transpose() *CSR {
	ptr, idx, data := transposeCompressed(m.r, m.c, m.indptr, m.indices, m.data)
	return &CSR{r: m.c, c: m.r, indptr: ptr, indices: idx, data: data}
}

// ToCSC returns the same matrix in compressed-column storage.
// Complexity: O(r + c + nnz).
func (m *CSR) ToCSC() *CSC {
	ptr, idx, data := transposeCompressed(m.r, m.c, m.indptr, m.indices, m.data)
	return &CSC{r: m.r, c: m.c, colptr: ptr, rowidx: idx, data: data}
}

// Clone returns a deep copy of m.
func (m *CSR) Clone() *CSR {
	return &CSR{
		r:       m.r,
		c:       m.c,
		indptr:  append([]int(nil), m.indptr...),
		indices: append([]int(nil), m.indices...),
		data:    append([]float64(nil), m.data...),
	}
}

// transposeCompressed swaps the major/minor roles of compressed storage
// with a counting pass over minor indices.
func transposeCompressed(nMajor, nMinor int, ptr, idx []int, data []float64) ([]int, []int, []float64) {
	tptr := make([]int, nMinor+1)
	for _, j := range idx {
		tptr[j+1]++
	}
	for j := 0; j < nMinor; j++ {
		tptr[j+1] += tptr[j]
	}

	tidx := make([]int, len(idx))
	tdata := make([]float64, len(data))
	next := make([]int, nMinor)
	copy(next, tptr[:nMinor])
	var q int
	for i := 0; i < nMajor; i++ {
		for p := ptr[i]; p < ptr[i+1]; p++ {
			q = next[idx[p]]
			tidx[q] = i
			tdata[q] = data[p]
			next[idx[p]]++
		}
	}

	return tptr, tidx, tdata
}
