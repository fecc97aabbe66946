// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// Every message is prefixed with "sparse: ..." so log lines are easy to grep.
// Call sites wrap these with an operation tag (sparseErrorf); callers match
// them with errors.Is.

package sparse

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape has a negative dimension.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("sparse: matrix is not square")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates incompatible operand sizes (e.g. MulVec
	// with a vector whose length differs from the column count).
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")

	// ErrNegativeValue signals a negative entry where only non-negative
	// values are allowed (edge weights).
	ErrNegativeValue = errors.New("sparse: negative value encountered")

	// ErrMalformed indicates inconsistent compressed storage (pointer array
	// not monotone, unsorted or duplicated indices, length mismatch).
	ErrMalformed = errors.New("sparse: malformed compressed storage")

	// ErrNilMatrix indicates that a nil matrix was passed.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrSingular is returned by Factorize when no usable pivot exists for a column.
	ErrSingular = errors.New("sparse: singular matrix")

	// ErrPivotTolerance is returned when the pivot threshold is outside (0,1].
	ErrPivotTolerance = errors.New("sparse: pivot tolerance must be in (0,1]")
)

// sparseErrorf wraps err with an operation tag: "<tag>: <err>".
// Use only when err != nil.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
