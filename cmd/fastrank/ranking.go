package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/fastrank/converters"
	"github.com/katalvlaran/fastrank/internal/config"
	"github.com/katalvlaran/fastrank/pagerank"
)

// scored is one ranked node.
type scored struct {
	Label string
	Score float64
}

// ranking is the outcome of one run over an edge-list file.
type ranking struct {
	Graph  *converters.EdgeList
	Scores []float64
	Config config.Config
}

// rankFile loads the configuration, reads the graph (and personalization
// file, if any) and runs the configured solver.
func rankFile(path string) (*ranking, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.RankOptions()
	if err != nil {
		return nil, err
	}

	el, err := readEdgeList(path)
	if err != nil {
		return nil, err
	}
	if cfg.Personalize != "" {
		v, err := readPersonalization(cfg.Personalize, el)
		if err != nil {
			return nil, err
		}
		opts.Personalization = v
	}

	log := logrus.WithFields(logrus.Fields{"graph": path, "method": cfg.Method, "nodes": el.Len()})
	opts.Logger = log

	var x []float64
	switch cfg.Method {
	case config.MethodPower:
		var stats pagerank.PowerStats
		x, stats, err = pagerank.Power(el.Matrix, pagerank.WithOptions(opts))
		if err == nil {
			log.WithFields(logrus.Fields{"iterations": stats.Iterations, "state": stats.State}).Debug("ranked")
		}
	default:
		x, err = pagerank.Exact(el.Matrix, pagerank.WithOptions(opts))
	}
	if err != nil {
		return nil, fmt.Errorf("rank %s: %w", path, err)
	}

	return &ranking{Graph: el, Scores: x, Config: cfg}, nil
}

// scoreTol is the relative gap below which two scores count as a tie.
// The LU solve leaves a few ulps of noise on mathematically equal ranks.
const scoreTol = 1e-12

// Top returns nodes by descending score, ties broken by label; k <= 0
// keeps all of them.
func (r *ranking) Top(k int) []scored {
	out := make([]scored, len(r.Scores))
	for i, s := range r.Scores {
		out[i] = scored{Label: r.Graph.Labels[i], Score: s}
	}
	sort.Slice(out, func(a, b int) bool {
		if !scalar.EqualWithinAbsOrRel(out[a].Score, out[b].Score, scoreTol, scoreTol) {
			return out[a].Score > out[b].Score
		}
		return out[a].Label < out[b].Label
	})
	if k > 0 && k < len(out) {
		out = out[:k]
	}

	return out
}

func readEdgeList(path string) (*converters.EdgeList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	el, err := converters.ReadEdgeList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return el, nil
}

func readPersonalization(path string, el *converters.EdgeList) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	v, err := converters.ReadPersonalization(f, el)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}
