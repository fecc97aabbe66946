// SPDX-License-Identifier: MIT

package pagerank

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fastrank/sparse"
)

// preparedGraph is the per-call view of the input: the working adjacency
// (already transposed for reverse ranking), its weighted out-degrees, the
// sparse inverse-degree diagonal and the dangling mask.
// Nothing here outlives one solver call.
type preparedGraph struct {
	a         *sparse.CSR
	degrees   []float64
	inv       *sparse.Diagonal // 1/degree for non-dangling nodes only
	dangling  []bool
	nDangling int
}

// n returns the number of nodes.
func (g *preparedGraph) n() int { return len(g.degrees) }

// isNilAdjacency also catches typed nil pointers of the package's own
// matrix types, which compare unequal to a nil interface.
func isNilAdjacency(adj Adjacency) bool {
	switch m := adj.(type) {
	case nil:
		return true
	case *sparse.CSR:
		return m == nil
	case *sparse.CSC:
		return m == nil
	}

	return false
}

// checkAdjacency validates the shape and returns n.
func checkAdjacency(adj Adjacency) (int, error) {
	if isNilAdjacency(adj) {
		return 0, ErrNilAdjacency
	}
	if err := sparse.ValidateSquare(adj); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}
	n, _ := adj.Dims()

	return n, nil
}

// checkWeights enforces the edge-weight policy: finite and ≥ 0.
func checkWeights(adj Adjacency) error {
	if err := sparse.ValidateNonNegative(adj); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWeight, err)
	}

	return nil
}

// toCSR returns adj as CSR storage. A *sparse.CSR is used as is (it is
// never modified); any other Adjacency is compressed through a Builder.
func toCSR(adj Adjacency) (*sparse.CSR, error) {
	if m, ok := adj.(*sparse.CSR); ok {
		return m, nil
	}
	if m, ok := adj.(*sparse.CSC); ok {
		return m.ToCSR(), nil
	}

	r, c := adj.Dims()
	b, err := sparse.NewBuilder(r, c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}
	var addErr error
	adj.DoNonZero(func(i, j int, v float64) {
		if addErr == nil {
			addErr = b.Add(i, j, v)
		}
	})
	switch {
	case errors.Is(addErr, sparse.ErrOutOfRange):
		return nil, fmt.Errorf("%w: %w", ErrInvalidShape, addErr)
	case addErr != nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalidWeight, addErr)
	}

	return b.BuildCSR(), nil
}

// prepare derives everything the solvers need from a validated adjacency.
//
// Steps:
//  1. Convert to CSR; transpose when reverse is set. Row sums are taken
//     after the transpose, so reverse ranking uses in-degrees of A.
//  2. degrees = row sums; dangling = rows whose sum is exactly zero.
//  3. inv = D⁻¹ over non-dangling rows (no division by zero ever happens).
//
// Complexity: O(n + nnz) time and memory.
func prepare(adj Adjacency, reverse bool) (*preparedGraph, error) {
	a, err := toCSR(adj)
	if err != nil {
		return nil, err
	}
	if reverse {
		a = a.Transpose()
	}

	degrees := a.RowSums()
	inv, err := sparse.NewInverseDiagonal(degrees)
	if err != nil {
		// Finite non-negative weights can still overflow when summed.
		return nil, fmt.Errorf("%w: %w", ErrInvalidWeight, err)
	}

	g := &preparedGraph{
		a:        a,
		degrees:  degrees,
		inv:      inv,
		dangling: make([]bool, len(degrees)),
	}
	for i, d := range degrees {
		if d == 0 {
			g.dangling[i] = true
			g.nDangling++
		}
	}

	return g, nil
}
