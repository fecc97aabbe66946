// SPDX-License-Identifier: MIT

package pagerank

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// teleportation holds the two vectors of the random-jump model.
//
//	s: personalization rescaled to Σs = n (mean 1), the jump target.
//	z: per-node jump probability, (1−p)/n for linked nodes and 1/n for
//	   dangling ones (a surfer on a dangling node always jumps).
type teleportation struct {
	s []float64
	z []float64
}

// checkPersonalization validates the teleportation weights for n nodes.
// nil is accepted (uniform). A length mismatch is ErrDimensionMismatch;
// negative or non-finite entries, or a non-positive sum, are
// ErrInvalidParameter.
func checkPersonalization(v []float64, n int) error {
	if v == nil {
		return nil
	}
	if len(v) != n {
		return fmt.Errorf("length %d, want %d: %w", len(v), n, ErrDimensionMismatch)
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return fmt.Errorf("personalization[%d]=%v: %w", i, x, ErrInvalidParameter)
		}
	}
	if n == 0 {
		return nil
	}
	if sum := floats.Sum(v); sum <= 0 || math.IsInf(sum, 0) {
		return fmt.Errorf("personalization sums to %v: %w", sum, ErrInvalidParameter)
	}

	return nil
}

// newTeleportation builds s and z. personalize must already have passed
// checkPersonalization; it is copied, never modified.
// Complexity: O(n).
func newTeleportation(personalize []float64, p float64, dangling []bool) *teleportation {
	n := len(dangling)
	s := make([]float64, n)
	if personalize == nil {
		for i := range s {
			s[i] = 1
		}
	} else {
		// Divide before scaling: n/sum overflows for subnormal sums.
		sum, nf := floats.Sum(personalize), float64(n)
		for i, v := range personalize {
			s[i] = v / sum * nf
		}
	}

	z := make([]float64, n)
	linked, jump := (1-p)/float64(n), 1/float64(n)
	for j, d := range dangling {
		if d {
			z[j] = jump
			continue
		}
		z[j] = linked
	}

	return &teleportation{s: s, z: z}
}
