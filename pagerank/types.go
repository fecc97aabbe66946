// SPDX-License-Identifier: MIT

// Package pagerank defines core types and configuration options for the
// exact and power-iteration PageRank solvers.
//
// Options:
//
//	– Damping:         probability p of following a link; must be in (0,1).
//	– Personalization: teleportation weights, one per node; nil means uniform.
//	– Reverse:         rank the graph with every edge flipped.
//	– MaxIter:         iteration cap of the power method; must be > 0.
//	– Tolerance:       L2 stopping threshold of the power method; must be ≥ 0.
//	– Factorization:   SparseLU (default) or DenseLU for the exact solver.
//	– PivotTolerance:  diagonal preference threshold of the sparse LU, in (0,1].
//	– Logger:          logrus.FieldLogger for debug/warn diagnostics.
//
// Errors (sentinel):
//
//	– ErrNilAdjacency      if the adjacency is nil.
//	– ErrInvalidShape      if the adjacency is not square.
//	– ErrDimensionMismatch if len(Personalization) != n.
//	– ErrInvalidParameter  for out-of-range options or personalization values.
//	– ErrInvalidWeight     for negative or non-finite edge weights.
//	– ErrSingularSystem    if the exact linear system cannot be solved.
package pagerank

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fastrank/sparse"
)

// Sentinel errors returned by the solvers.
var (
	// ErrNilAdjacency indicates that a nil adjacency was passed.
	ErrNilAdjacency = errors.New("pagerank: adjacency is nil")

	// ErrInvalidShape indicates that the adjacency matrix is not square.
	ErrInvalidShape = errors.New("pagerank: adjacency matrix is not square")

	// ErrDimensionMismatch indicates a personalization vector whose length
	// differs from the number of nodes.
	ErrDimensionMismatch = errors.New("pagerank: personalization length does not match node count")

	// ErrInvalidParameter indicates an option outside its domain, or a
	// personalization vector that cannot be normalized.
	ErrInvalidParameter = errors.New("pagerank: invalid parameter")

	// ErrInvalidWeight indicates a negative, NaN or infinite edge weight.
	ErrInvalidWeight = errors.New("pagerank: invalid edge weight")

	// ErrSingularSystem indicates that the exact linear system could not be solved.
	ErrSingularSystem = errors.New("pagerank: linear system is singular")
)

// Defaults.
const (
	DefaultDamping        = 0.85
	DefaultMaxIter        = 100
	DefaultTolerance      = 1e-6
	DefaultPivotTolerance = sparse.DefaultPivotTolerance
)

// Adjacency is the read-only view of a weighted directed graph the solvers
// consume: entry (i, j) with value v > 0 is a link i→j of weight v.
// *sparse.CSR and *sparse.CSC satisfy it.
type Adjacency interface {
	Dims() (r, c int)
	DoNonZero(fn func(i, j int, v float64))
}

// Factorization selects how Exact solves its linear system.
type Factorization int

const (
	// SparseLU factorizes the system in compressed-column form without densifying it.
	SparseLU Factorization = iota

	// DenseLU copies the system into a gonum mat.Dense and uses mat.LU.
	// Memory is O(n²); meant for small graphs and cross-checks.
	DenseLU
)

// String returns "sparse" or "dense".
func (f Factorization) String() string {
	switch f {
	case SparseLU:
		return "sparse"
	case DenseLU:
		return "dense"
	default:
		return fmt.Sprintf("Factorization(%d)", int(f))
	}
}

// ParseFactorization maps "sparse" / "dense" (case-insensitive) to a Factorization.
func ParseFactorization(s string) (Factorization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sparse", "":
		return SparseLU, nil
	case "dense":
		return DenseLU, nil
	default:
		return SparseLU, fmt.Errorf("factorization %q: %w", s, ErrInvalidParameter)
	}
}

// State is the terminal state of a power iteration.
type State int

const (
	// StateInit means no iteration has run (n = 0 or validation failed).
	StateInit State = iota

	// StateConverged means the last step moved x by at most Tolerance.
	StateConverged

	// StateMaxIterReached means the loop stopped on MaxIter before converging.
	StateMaxIterReached
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateConverged:
		return "converged"
	case StateMaxIterReached:
		return "max_iter_reached"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PowerStats reports how a power iteration ended.
type PowerStats struct {
	Iterations int     // number of x ← Wx + s(z·x) steps taken
	Residual   float64 // ‖x − prev‖₂ of the last step, before normalization
	State      State
}

// Converged reports whether the tolerance was met.
func (s PowerStats) Converged() bool { return s.State == StateConverged }

// Options configures both solvers. Fields a solver does not use are ignored
// (MaxIter/Tolerance by Exact, Factorization/PivotTolerance by Power).
type Options struct {
	Damping         float64            // p in (0,1)
	Personalization []float64          // nil = uniform; normalized internally
	Reverse         bool               // rank Aᵀ instead of A
	MaxIter         int                // > 0
	Tolerance       float64            // ≥ 0
	Factorization   Factorization      // SparseLU or DenseLU
	PivotTolerance  float64            // (0,1], sparse LU only
	Logger          logrus.FieldLogger // nil = logrus.StandardLogger()
}

// Option represents a functional option for configuring the solvers.
// Option constructors never panic; values are validated by the entry point.
type Option func(*Options)

// WithDamping sets the damping factor p.
func WithDamping(p float64) Option {
	return func(o *Options) {
		o.Damping = p
	}
}

// WithPersonalization sets the teleportation weights. The slice is read,
// never modified, and need not sum to one.
func WithPersonalization(v []float64) Option {
	return func(o *Options) {
		o.Personalization = v
	}
}

// WithReverse enables reverse PageRank: every edge i→j is treated as j→i.
func WithReverse(reverse bool) Option {
	return func(o *Options) {
		o.Reverse = reverse
	}
}

// WithMaxIter caps the number of power iterations.
func WithMaxIter(n int) Option {
	return func(o *Options) {
		o.MaxIter = n
	}
}

// WithTolerance sets the L2 stopping threshold of the power method.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		o.Tolerance = tol
	}
}

// WithFactorization selects the exact solver's factorization.
func WithFactorization(f Factorization) Option {
	return func(o *Options) {
		o.Factorization = f
	}
}

// WithPivotTolerance sets the sparse LU threshold; 1.0 is plain partial pivoting.
func WithPivotTolerance(tol float64) Option {
	return func(o *Options) {
		o.PivotTolerance = tol
	}
}

// WithLogger routes solver diagnostics to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithOptions replaces the whole configuration, e.g. with a value loaded
// from a config file. Later options still override individual fields.
func WithOptions(src Options) Option {
	return func(o *Options) {
		*o = src
	}
}

// DefaultOptions returns the default configuration:
//
//   - Damping:        0.85
//   - Personalization: nil (uniform)
//   - Reverse:        false
//   - MaxIter:        100
//   - Tolerance:      1e-6
//   - Factorization:  SparseLU
//   - PivotTolerance: 0.1
//   - Logger:         logrus.StandardLogger()
func DefaultOptions() Options {
	return Options{
		Damping:        DefaultDamping,
		MaxIter:        DefaultMaxIter,
		Tolerance:      DefaultTolerance,
		Factorization:  SparseLU,
		PivotTolerance: DefaultPivotTolerance,
		Logger:         logrus.StandardLogger(),
	}
}

// newOptions applies opts over the defaults and validates the result.
func newOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}

	return o, o.validate()
}

// validate checks every scalar option. Personalization values are checked
// separately, once n is known.
func (o Options) validate() error {
	switch {
	case math.IsNaN(o.Damping) || o.Damping <= 0 || o.Damping >= 1:
		return fmt.Errorf("damping %v not in (0,1): %w", o.Damping, ErrInvalidParameter)
	case o.MaxIter <= 0:
		return fmt.Errorf("max iterations %d must be positive: %w", o.MaxIter, ErrInvalidParameter)
	case math.IsNaN(o.Tolerance) || o.Tolerance < 0:
		return fmt.Errorf("tolerance %v must be non-negative: %w", o.Tolerance, ErrInvalidParameter)
	case math.IsNaN(o.PivotTolerance) || o.PivotTolerance <= 0 || o.PivotTolerance > 1:
		return fmt.Errorf("pivot tolerance %v not in (0,1]: %w", o.PivotTolerance, ErrInvalidParameter)
	case o.Factorization != SparseLU && o.Factorization != DenseLU:
		return fmt.Errorf("%v: %w", o.Factorization, ErrInvalidParameter)
	}

	return nil
}

// pagerankErrorf wraps err with an operation tag: "<tag>: <err>".
func pagerankErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
