// SPDX-License-Identifier: MIT

package pagerank

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/fastrank/sparse"
)

// Exact computes PageRank by solving (I − p·Aᵀ·D⁻¹)·x = s and normalizing
// x to sum to one.
//
// The system matrix is assembled in compressed-column form and factorized
// with a sparse LU (or gonum's dense LU when WithFactorization(DenseLU) is
// given). It is strictly column diagonally dominant for every p in (0,1),
// so ErrSingularSystem signals a numerical breakdown rather than a bad graph.
//
// n = 0 returns an empty, non-nil slice.
// Complexity: O(n + nnz + fill) time and memory for SparseLU, O(n³) for DenseLU.
func Exact(adj Adjacency, opts ...Option) ([]float64, error) {
	return ExactContext(context.Background(), adj, opts...)
}

// ExactContext is Exact with cancellation checked once, before the
// factorization starts.
func ExactContext(ctx context.Context, adj Adjacency, opts ...Option) ([]float64, error) {
	pb, err := setup(adj, opts)
	if err != nil {
		return nil, pagerankErrorf("Exact", err)
	}
	if pb == nil {
		return []float64{}, nil
	}
	if err = ctx.Err(); err != nil {
		return nil, pagerankErrorf("Exact", err)
	}

	m, err := systemMatrix(pb)
	if err != nil {
		return nil, pagerankErrorf("Exact", err)
	}
	x := make([]float64, pb.n)
	switch pb.opts.Factorization {
	case DenseLU:
		err = solveDense(m, pb.tp.s, x)
	default:
		err = solveSparse(m, pb.tp.s, x, pb.opts.PivotTolerance, pb.log)
	}
	if err != nil {
		return nil, pagerankErrorf("Exact", err)
	}
	normalize(x)

	pb.log.WithField("factorization", pb.opts.Factorization).Debug("pagerank: exact solve done")

	return x, nil
}

// systemMatrix assembles M = I − W in CSC storage. Self-loops fold into
// the diagonal through the builder's duplicate summation.
// An entry the builder rejects means the prepared graph and n disagree;
// it is reported as ErrSingularSystem instead of assembling a wrong system.
func systemMatrix(pb *problem) (*sparse.CSC, error) {
	b, err := sparse.NewBuilder(pb.n, pb.n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}
	b.Grow(pb.n + pb.g.a.NNZ())
	for i := 0; i < pb.n; i++ {
		if err = b.Add(i, i, 1); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSingularSystem, err)
		}
	}
	pb.op.DoNonZero(func(j, i int, v float64) {
		if err == nil {
			err = b.Add(j, i, -v)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSingularSystem, err)
	}

	return b.BuildCSC(), nil
}

// solveSparse factorizes m with the left-looking sparse LU and solves m·x = s.
func solveSparse(m *sparse.CSC, s, x []float64, pivotTol float64, log logrus.FieldLogger) error {
	f, err := sparse.Factorize(m, pivotTol)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSingularSystem, err)
	}
	nl, nu := f.NNZ()
	log.WithFields(logrus.Fields{"nnz_l": nl, "nnz_u": nu}).Debug("pagerank: sparse LU factorized")

	if err = f.Solve(x, s); err != nil {
		return fmt.Errorf("%w: %w", ErrSingularSystem, err)
	}

	return nil
}

// solveDense copies m into a gonum Dense and solves with mat.LU. A
// condition-number failure is reported as ErrSingularSystem.
func solveDense(m *sparse.CSC, s, x []float64) error {
	n, _ := m.Dims()
	var lu mat.LU
	lu.Factorize(mat.DenseCopyOf(m))

	dst := mat.NewVecDense(n, x)
	if err := lu.SolveVecTo(dst, false, mat.NewVecDense(n, s)); err != nil {
		return fmt.Errorf("%w: %w", ErrSingularSystem, err)
	}

	return nil
}
