// SPDX-License-Identifier: MIT

package converters

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/fastrank/sparse"
)

// Sentinel errors returned by the text readers.
var (
	// ErrSyntax indicates a line that does not match the expected layout.
	ErrSyntax = errors.New("converters: syntax error")

	// ErrBadWeight indicates a weight or value that is not a finite,
	// non-negative number.
	ErrBadWeight = errors.New("converters: invalid weight")

	// ErrNilEdgeList indicates that a nil *EdgeList was passed.
	ErrNilEdgeList = errors.New("converters: edge list is nil")

	// ErrUnknownLabel indicates a label that is not a node of the edge list.
	ErrUnknownLabel = errors.New("converters: unknown node label")
)

// EdgeList is a graph read from text: a square adjacency matrix plus the
// label of every node index.
type EdgeList struct {
	Matrix *sparse.CSR
	Labels []string // Labels[i] is the name of node i

	index map[string]int
}

// Len returns the number of nodes.
func (e *EdgeList) Len() int { return len(e.Labels) }

// Index returns the node index of label.
func (e *EdgeList) Index(label string) (int, bool) {
	i, ok := e.index[label]
	return i, ok
}

// ReadEdgeList parses one edge per line:
//
//	src dst [weight]
//
// Fields are separated by whitespace or commas. '#' starts a comment that
// runs to the end of the line; blank lines are skipped. The weight
// defaults to 1 and repeated edges are summed. Nodes are indexed in order
// of first appearance.
//
// Errors carry the 1-based line number and wrap ErrSyntax or ErrBadWeight.
// Complexity: O(L + E log d) for L input bytes and E edges.
func ReadEdgeList(r io.Reader) (*EdgeList, error) {
	var (
		srcs, dsts []int
		weights    []float64
		el         = &EdgeList{index: make(map[string]int)}
		sc         = bufio.NewScanner(r)
		line       int
	)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line++
		fields, ok := splitLine(sc.Text())
		if !ok {
			continue
		}
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("converters: line %d: %d fields, want 2 or 3: %w", line, len(fields), ErrSyntax)
		}

		w := 1.0
		if len(fields) == 3 {
			v, err := parseWeight(fields[2])
			if err != nil {
				return nil, fmt.Errorf("converters: line %d: %w", line, err)
			}
			w = v
		}
		srcs = append(srcs, el.intern(fields[0]))
		dsts = append(dsts, el.intern(fields[1]))
		weights = append(weights, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("converters: read edge list: %w", err)
	}

	n := el.Len()
	b, _ := sparse.NewBuilder(n, n) // n ≥ 0
	b.Grow(len(weights))
	for k := range weights {
		_ = b.Add(srcs[k], dsts[k], weights[k]) // error not expected: indices interned, weights checked
	}
	el.Matrix = b.BuildCSR()

	return el, nil
}

// ReadPersonalization parses "label value" lines into a vector indexed like
// el. Nodes that are not mentioned get 0; repeated labels are summed.
// A label that is not a node of el wraps ErrUnknownLabel.
func ReadPersonalization(r io.Reader, el *EdgeList) ([]float64, error) {
	if el == nil {
		return nil, ErrNilEdgeList
	}
	v := make([]float64, el.Len())
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields, ok := splitLine(sc.Text())
		if !ok {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("converters: line %d: %d fields, want 2: %w", line, len(fields), ErrSyntax)
		}
		i, found := el.Index(fields[0])
		if !found {
			return nil, fmt.Errorf("converters: line %d: %q: %w", line, fields[0], ErrUnknownLabel)
		}
		w, err := parseWeight(fields[1])
		if err != nil {
			return nil, fmt.Errorf("converters: line %d: %w", line, err)
		}
		v[i] += w
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("converters: read personalization: %w", err)
	}

	return v, nil
}

// intern returns the index of label, assigning the next one on first sight.
func (e *EdgeList) intern(label string) int {
	if i, ok := e.index[label]; ok {
		return i
	}
	i := len(e.Labels)
	e.index[label] = i
	e.Labels = append(e.Labels, label)

	return i
}

// splitLine returns the fields of a data line with any '#' comment removed;
// ok is false when nothing is left.
func splitLine(s string) ([]string, bool) {
	if k := strings.IndexByte(s, '#'); k >= 0 {
		s = s[:k]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	return fields, len(fields) > 0
}

func parseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrBadWeight)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0, fmt.Errorf("%v: %w", w, ErrBadWeight)
	}

	return w, nil
}
