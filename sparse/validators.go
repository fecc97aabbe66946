// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Single source of truth for shape and value checks shared by the
//     kernels in this package and by callers assembling operators.
//   - Return plain sentinels wrapped with a validator tag; callers match
//     with errors.Is.
//
// Determinism & Performance:
//   - All checks are pure and allocate nothing beyond the error value.
//   - Value checks stop at the first violation in storage order.

package sparse

import (
	"fmt"
	"math"
)

// Shaped is anything that reports a matrix shape (CSR, CSC, Builder, mat.Matrix).
type Shaped interface {
	Dims() (r, c int)
}

// NonZeroDoer iterates the stored entries of a sparse matrix.
type NonZeroDoer interface {
	DoNonZero(fn func(i, j int, v float64))
}

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
func ValidateNotNil(m Shaped) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks Rows == Cols. Assumes m is non-nil.
// Complexity: O(1).
func ValidateSquare(m Shaped) error {
	r, c := m.Dims()
	if r != c {
		return validatorErrorf("ValidateSquare", fmt.Errorf("%d×%d: %w", r, c, ErrNonSquare))
	}

	return nil
}

// ValidateVecLen ensures len(x) == n.
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", fmt.Errorf("length %d, want %d: %w", len(x), n, ErrDimensionMismatch))
	}

	return nil
}

// ValidateFinite ensures every stored entry of m is finite.
// Complexity: O(nnz).
func ValidateFinite(m NonZeroDoer) error {
	var bad error
	m.DoNonZero(func(i, j int, v float64) {
		if bad == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			bad = fmt.Errorf("(%d,%d)=%v: %w", i, j, v, ErrNaNInf)
		}
	})
	if bad != nil {
		return validatorErrorf("ValidateFinite", bad)
	}

	return nil
}

// ValidateNonNegative ensures every stored entry of m is finite and ≥ 0,
// the numeric policy for edge weights.
// Complexity: O(nnz).
func ValidateNonNegative(m NonZeroDoer) error {
	var bad error
	m.DoNonZero(func(i, j int, v float64) {
		if bad != nil {
			return
		}
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			bad = fmt.Errorf("(%d,%d)=%v: %w", i, j, v, ErrNaNInf)
		case v < 0:
			bad = fmt.Errorf("(%d,%d)=%v: %w", i, j, v, ErrNegativeValue)
		}
	})
	if bad != nil {
		return validatorErrorf("ValidateNonNegative", bad)
	}

	return nil
}
