// SPDX-License-Identifier: MIT

// Package sparse - sparse diagonal matrices.
//
// A Diagonal stores only the indices that carry a non-zero value. For the
// inverse-degree operator D⁻¹ this means dangling nodes (zero degree) have
// no entry at all: they are never divided by and contribute nothing when
// the diagonal is applied.
package sparse

import (
	"fmt"
	"math"
	"sort"
)

// Diagonal is an n×n diagonal matrix with sparse storage.
// Indices are strictly increasing.
type Diagonal struct {
	n   int
	idx []int
	val []float64
}

// NewDiagonal builds a diagonal from a dense vector, skipping zeros.
// Returns ErrNaNInf if d holds a non-finite value.
func NewDiagonal(d []float64) (*Diagonal, error) {
	diag := &Diagonal{n: len(d)}
	for i, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, sparseErrorf("NewDiagonal", fmt.Errorf("d[%d]=%v: %w", i, v, ErrNaNInf))
		}
		if v == 0 {
			continue
		}
		diag.idx = append(diag.idx, i)
		diag.val = append(diag.val, v)
	}

	return diag, nil
}

// NewInverseDiagonal returns D⁻¹ for the degree vector deg: entry i holds
// 1/deg[i] when deg[i] != 0 and is absent otherwise.
// Returns ErrNaNInf for non-finite degrees.
// Complexity: O(n).
func NewInverseDiagonal(deg []float64) (*Diagonal, error) {
	diag := &Diagonal{n: len(deg)}
	for i, v := range deg {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, sparseErrorf("NewInverseDiagonal", fmt.Errorf("deg[%d]=%v: %w", i, v, ErrNaNInf))
		}
		if v == 0 {
			continue // zero degree: no entry, no division
		}
		diag.idx = append(diag.idx, i)
		diag.val = append(diag.val, 1/v)
	}

	return diag, nil
}

// Dim returns n.
func (d *Diagonal) Dim() int { return d.n }

// Len returns the number of stored (non-zero) entries.
func (d *Diagonal) Len() int { return len(d.idx) }

// At returns the i-th diagonal value (0 for absent entries).
// Panics if i is out of range.
func (d *Diagonal) At(i int) float64 {
	if i < 0 || i >= d.n {
		panic(sparseErrorf("Diagonal.At", fmt.Errorf("%d of %d: %w", i, d.n, ErrOutOfRange)))
	}
	k := sort.SearchInts(d.idx, i)
	if k < len(d.idx) && d.idx[k] == i {
		return d.val[k]
	}

	return 0
}

// Has reports whether index i carries a stored entry.
func (d *Diagonal) Has(i int) bool {
	k := sort.SearchInts(d.idx, i)
	return k < len(d.idx) && d.idx[k] == i
}

// Do calls fn for each stored entry in increasing index order.
func (d *Diagonal) Do(fn func(i int, v float64)) {
	for k, i := range d.idx {
		fn(i, d.val[k])
	}
}

// MulVec computes dst = D·x; entries of dst at absent indices are zero.
// dst may alias x.
func (d *Diagonal) MulVec(dst, x []float64) error {
	if err := ValidateVecLen(x, d.n); err != nil {
		return sparseErrorf("Diagonal.MulVec: x", err)
	}
	if err := ValidateVecLen(dst, d.n); err != nil {
		return sparseErrorf("Diagonal.MulVec: dst", err)
	}
	next := 0
	for i := 0; i < d.n; i++ {
		if next < len(d.idx) && d.idx[next] == i {
			dst[i] = d.val[next] * x[i]
			next++
			continue
		}
		dst[i] = 0
	}

	return nil
}
