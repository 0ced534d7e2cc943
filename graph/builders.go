package graph

import (
	"github.com/smallnest/policygraph/metrics"
)

// LinearGraph returns the policy graph of a linear multistage problem: root
// 0, nodes 1..stages and a deterministic chain edge between consecutive
// stages. stages may be zero, yielding a root-only graph.
func LinearGraph(stages int) (*Graph[int], error) {
	if stages < 0 {
		return nil, ErrNegativeStages
	}
	g := New(0)
	for t := 1; t <= stages; t++ {
		if err := g.AddNode(t); err != nil {
			return nil, err
		}
		if err := g.AddEdge(t-1, t, 1.0); err != nil {
			return nil, err
		}
	}
	metrics.GraphsBuilt.WithLabelValues("linear").Inc()
	return g, nil
}

// MarkovNode indexes one node of a Markov-chain policy graph. Stage is
// 1-based over the transition matrices, State is 1-based over the columns of
// the matrix at that stage. The root is {0, 1}.
type MarkovNode struct {
	Stage int
	State int
}

// MarkovianGraph returns the policy graph of a Markov-chain problem.
// matrices[s][i][j] is the probability of moving from Markov state i+1 at
// stage s to state j+1 at stage s+1. Zero entries produce no edge, so
// consumers must not assume an edge exists for every matrix cell.
func MarkovianGraph(matrices [][][]float64) (*Graph[MarkovNode], error) {
	if len(matrices) > 0 && len(matrices[0]) != 1 {
		return nil, &RootTransitionShapeError{Rows: len(matrices[0])}
	}
	for s, matrix := range matrices {
		for i, row := range matrix {
			for j, p := range row {
				if p < 0 {
					return nil, &NegativeProbabilityError{Stage: s + 1, Row: i + 1, Column: j + 1, Value: p}
				}
			}
		}
	}
	for s, matrix := range matrices {
		for i, row := range matrix {
			sum := 0.0
			for _, p := range row {
				sum += p
			}
			if sum < 0.0 || sum > 1.0 {
				return nil, &ProbabilityRangeError{Node: MarkovNode{Stage: s, State: i + 1}, Sum: sum}
			}
		}
	}
	for s := 1; s < len(matrices); s++ {
		prevCols := 0
		if len(matrices[s-1]) > 0 {
			prevCols = len(matrices[s-1][0])
		}
		if len(matrices[s]) != prevCols {
			return nil, &DimensionMismatchError{Stage: s + 1, Rows: len(matrices[s]), PrevCols: prevCols}
		}
	}

	var nodes []MarkovNode
	var edges []Edge[MarkovNode]
	for s, matrix := range matrices {
		if len(matrix) == 0 {
			continue
		}
		stage := s + 1
		for j := range matrix[0] {
			nodes = append(nodes, MarkovNode{Stage: stage, State: j + 1})
		}
		for i, row := range matrix {
			for j, p := range row {
				if p > 0 {
					edges = append(edges, Edge[MarkovNode]{
						From:        MarkovNode{Stage: stage - 1, State: i + 1},
						To:          MarkovNode{Stage: stage, State: j + 1},
						Probability: p,
					})
				}
			}
		}
	}
	g, err := NewGraph(MarkovNode{Stage: 0, State: 1}, nodes, edges)
	if err != nil {
		return nil, err
	}
	metrics.GraphsBuilt.WithLabelValues("markovian").Inc()
	return g, nil
}

// MarkovianChainGraph returns the policy graph of a homogeneous Markov chain
// with a distinct initial transition: rootTransition reshaped as a 1×N row
// vector followed by stages-1 copies of transition.
func MarkovianChainGraph(stages int, transition [][]float64, rootTransition []float64) (*Graph[MarkovNode], error) {
	if stages < 1 {
		return nil, ErrNoStages
	}
	matrices := make([][][]float64, 0, stages)
	matrices = append(matrices, [][]float64{rootTransition})
	for s := 1; s < stages; s++ {
		matrices = append(matrices, transition)
	}
	return MarkovianGraph(matrices)
}
