// SPDX-License-Identifier: MIT

package converters

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/fastrank/sparse"
)

var (
	// ErrNilGraph indicates that a nil graph or matrix was passed.
	ErrNilGraph = errors.New("converters: graph is nil")

	// ErrSelfLoop indicates a diagonal entry that gonum simple graphs cannot hold.
	ErrSelfLoop = errors.New("converters: self-loop not representable")
)

// weighter is the part of graph.Weighted that FromGonum needs.
type weighter interface {
	Weight(xid, yid int64) (w float64, ok bool)
}

// FromGonum converts a directed gonum graph into a CSR adjacency.
//
// Nodes are indexed in increasing ID order and ids[i] is the gonum ID of
// node i. Edge weights come from g.Weight when g is weighted and are 1
// otherwise. Negative or non-finite weights wrap ErrBadWeight.
//
// Complexity: O(V log V + E log d).
func FromGonum(g graph.Directed) (m *sparse.CSR, ids []int64, err error) {
	if g == nil {
		return nil, nil, ErrNilGraph
	}

	// 1) Stable node order.
	nodes := graph.NodesOf(g.Nodes())
	ids = make([]int64, len(nodes))
	for i, u := range nodes {
		ids[i] = u.ID()
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	index := make(map[int64]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	// 2) Edges.
	wg, weighted := g.(weighter)
	n := len(ids)
	b, _ := sparse.NewBuilder(n, n) // n ≥ 0
	for i, uid := range ids {
		to := g.From(uid)
		for to.Next() {
			vid := to.Node().ID()
			w := 1.0
			if weighted {
				if v, ok := wg.Weight(uid, vid); ok {
					w = v
				}
			}
			if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				return nil, nil, fmt.Errorf("converters: edge %d→%d weight %v: %w", uid, vid, w, ErrBadWeight)
			}
			_ = b.Add(i, index[vid], w) // error not expected: both ends indexed, weight checked
		}
	}

	return b.BuildCSR(), ids, nil
}

// ToGonum builds a gonum weighted directed graph with nodes 0..n-1 and one
// edge per stored entry of m. Self-loops wrap ErrSelfLoop.
func ToGonum(m *sparse.CSR) (*simple.WeightedDirectedGraph, error) {
	if m == nil {
		return nil, ErrNilGraph
	}
	if err := sparse.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("converters: %w", err)
	}

	n, _ := m.Dims()
	g := simple.NewWeightedDirectedGraph(0, 0)
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(int64(i)))
	}

	var loop error
	m.DoNonZero(func(i, j int, v float64) {
		if loop != nil {
			return
		}
		if i == j {
			loop = fmt.Errorf("converters: node %d: %w", i, ErrSelfLoop)
			return
		}
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(int64(i)), simple.Node(int64(j)), v))
	})
	if loop != nil {
		return nil, loop
	}

	return g, nil
}
