// SPDX-License-Identifier: MIT

package pagerank

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// problem is one validated solver call: the prepared graph, the
// teleportation model and the operator built over them.
type problem struct {
	n    int
	g    *preparedGraph
	tp   *teleportation
	op   *transition
	opts Options
	log  logrus.FieldLogger
}

// setup performs all validation and preparation shared by both solvers.
//
// Order:
//  1. options (damping, iteration cap, tolerances, factorization);
//  2. adjacency: non-nil, square;
//  3. personalization: length, then values;
//  4. n == 0 returns a nil problem and no error;
//  5. edge weights: finite, non-negative;
//  6. prepare → teleportation → transition.
//
// No numeric work happens before every check has passed.
func setup(adj Adjacency, opts []Option) (*problem, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	n, err := checkAdjacency(adj)
	if err != nil {
		return nil, err
	}
	if err = checkPersonalization(o.Personalization, n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if err = checkWeights(adj); err != nil {
		return nil, err
	}

	g, err := prepare(adj, o.Reverse)
	if err != nil {
		return nil, err
	}
	pb := &problem{
		n:    n,
		g:    g,
		tp:   newTeleportation(o.Personalization, o.Damping, g.dangling),
		op:   newTransition(g, o.Damping),
		opts: o,
	}
	pb.log = o.Logger.WithFields(logrus.Fields{
		"n":        n,
		"nnz":      g.a.NNZ(),
		"dangling": g.nDangling,
		"damping":  o.Damping,
		"reverse":  o.Reverse,
	})

	return pb, nil
}

// normalize rescales x in place so that Σx = 1.
func normalize(x []float64) {
	floats.Scale(1/floats.Sum(x), x)
}
