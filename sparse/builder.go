// SPDX-License-Identifier: MIT

// Package sparse - coordinate (triplet) builder.
//
// Purpose:
//   - Accumulate (i, j, v) entries in any order, then compress them once into
//     CSR or CSC storage.
//   - Duplicate coordinates are summed in insertion order; entries whose sum
//     is exactly zero are dropped, so "stored" always means "non-zero".
//
// Complexity quicksheet:
//   - Add: amortized O(1).
//   - BuildCSR / BuildCSC: O(nnz log d + r + c), d = longest row/column.
package sparse

import (
	"fmt"
	"math"
	"sort"
)

// Builder collects matrix entries in coordinate form.
// The zero value is not usable; call NewBuilder.
type Builder struct {
	r, c int
	rows []int
	cols []int
	vals []float64
}

// NewBuilder returns an empty r×c builder. r and c may be zero.
// Returns ErrBadShape if either dimension is negative.
func NewBuilder(r, c int) (*Builder, error) {
	if r < 0 || c < 0 {
		return nil, sparseErrorf("NewBuilder", fmt.Errorf("%d×%d: %w", r, c, ErrBadShape))
	}

	return &Builder{r: r, c: c}, nil
}

// Dims returns the shape of the matrix under construction.
func (b *Builder) Dims() (r, c int) { return b.r, b.c }

// Len returns the number of accumulated triplets (duplicates counted separately).
func (b *Builder) Len() int { return len(b.vals) }

// Grow reserves capacity for n additional triplets.
func (b *Builder) Grow(n int) {
	if n <= 0 {
		return
	}
	if cap(b.vals)-len(b.vals) >= n {
		return
	}
	rows := make([]int, len(b.rows), len(b.rows)+n)
	cols := make([]int, len(b.cols), len(b.cols)+n)
	vals := make([]float64, len(b.vals), len(b.vals)+n)
	copy(rows, b.rows)
	copy(cols, b.cols)
	copy(vals, b.vals)
	b.rows, b.cols, b.vals = rows, cols, vals
}

// Add records v at (i, j). Repeated coordinates are summed on Build.
// Returns ErrOutOfRange for invalid indices and ErrNaNInf for non-finite v.
func (b *Builder) Add(i, j int, v float64) error {
	if i < 0 || i >= b.r || j < 0 || j >= b.c {
		return sparseErrorf("Builder.Add", fmt.Errorf("(%d,%d) in %d×%d: %w", i, j, b.r, b.c, ErrOutOfRange))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sparseErrorf("Builder.Add", fmt.Errorf("(%d,%d)=%v: %w", i, j, v, ErrNaNInf))
	}
	b.rows = append(b.rows, i)
	b.cols = append(b.cols, j)
	b.vals = append(b.vals, v)

	return nil
}

// BuildCSR compresses the accumulated entries into a new CSR matrix.
// The builder is left untouched and may keep accumulating.
func (b *Builder) BuildCSR() *CSR {
	ptr, idx, data := compress(b.r, b.rows, b.cols, b.vals)
	return &CSR{r: b.r, c: b.c, indptr: ptr, indices: idx, data: data}
}

// BuildCSC compresses the accumulated entries into a new CSC matrix.
func (b *Builder) BuildCSC() *CSC {
	ptr, idx, data := compress(b.c, b.cols, b.rows, b.vals)
	return &CSC{r: b.r, c: b.c, colptr: ptr, rowidx: idx, data: data}
}

// compress groups triplets by their major index (row for CSR, column for
// CSC), orders minor indices within each group, sums duplicates and drops
// exact zeros.
//
// Implementation:
//   - Stage 1: counting sort by major index (stable w.r.t. insertion order).
//   - Stage 2: per group, stable sort by minor index, merge runs, drop zeros.
//
// Determinism: duplicates are summed in insertion order.
func compress(nMajor int, major, minor []int, vals []float64) ([]int, []int, []float64) {
	ptr := make([]int, nMajor+1)
	for _, m := range major {
		ptr[m+1]++
	}
	for i := 0; i < nMajor; i++ {
		ptr[i+1] += ptr[i]
	}

	idx := make([]int, len(major))
	data := make([]float64, len(major))
	next := make([]int, nMajor)
	copy(next, ptr[:nMajor])
	var k, p, m int
	for k, m = range major {
		p = next[m]
		idx[p] = minor[k]
		data[p] = vals[k]
		next[m]++
	}

	// Stage 2. ptr[i] is rewritten to the compacted start of group i once
	// group i has been read; hi keeps the original end before it is lost.
	var out, lo, hi, start, w int
	for i := 0; i < nMajor; i++ {
		hi = ptr[i+1]
		sort.Stable(byIndex{idx: idx[lo:hi], data: data[lo:hi]})

		start = out
		for p = lo; p < hi; p++ {
			if out > start && idx[out-1] == idx[p] {
				data[out-1] += data[p]
				continue
			}
			idx[out] = idx[p]
			data[out] = data[p]
			out++
		}

		w = start
		for p = start; p < out; p++ {
			if data[p] == 0 {
				continue
			}
			idx[w] = idx[p]
			data[w] = data[p]
			w++
		}
		out = w

		ptr[i] = start
		lo = hi
	}
	ptr[nMajor] = out

	return ptr, idx[:out:out], data[:out:out]
}

// byIndex sorts a segment of parallel index/value slices by index.
type byIndex struct {
	idx  []int
	data []float64
}

func (s byIndex) Len() int           { return len(s.idx) }
func (s byIndex) Less(i, j int) bool { return s.idx[i] < s.idx[j] }
func (s byIndex) Swap(i, j int) {
	s.idx[i], s.idx[j] = s.idx[j], s.idx[i]
	s.data[i], s.data[j] = s.data[j], s.data[i]
}
