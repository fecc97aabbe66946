// SPDX-License-Identifier: MIT

package pagerank

import "github.com/katalvlaran/fastrank/sparse"

// transition is the damped link-following operator W = p·Aᵀ·D⁻¹.
//
// Column i of W is row i of A scaled by p/degree[i]; dangling rows have no
// D⁻¹ entry and therefore contribute an empty column. W is never
// materialized: Apply scatters over the rows of A and DoNonZero enumerates
// the scaled entries for the exact solver's assembly.
type transition struct {
	a   *sparse.CSR
	inv *sparse.Diagonal
	p   float64
}

func newTransition(g *preparedGraph, p float64) *transition {
	return &transition{a: g.a, inv: g.inv, p: p}
}

// Apply computes dst = W·x. dst and x must have length n and must not alias.
// Complexity: O(n + nnz).
func (t *transition) Apply(dst, x []float64) {
	for j := range dst {
		dst[j] = 0
	}
	t.inv.Do(func(i int, d float64) {
		xi := t.p * d * x[i]
		if xi == 0 {
			return
		}
		cols, vals := t.a.Row(i)
		for k, j := range cols {
			dst[j] += vals[k] * xi
		}
	})
}

// DoNonZero calls fn(j, i, W[j,i]) for every stored entry of W, column by
// column in increasing i.
func (t *transition) DoNonZero(fn func(j, i int, v float64)) {
	t.inv.Do(func(i int, d float64) {
		scale := t.p * d
		cols, vals := t.a.Row(i)
		for k, j := range cols {
			fn(j, i, vals[k]*scale)
		}
	})
}
