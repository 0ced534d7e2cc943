package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearGraph(t *testing.T) {
	t.Run("Negative stages fails", func(t *testing.T) {
		_, err := LinearGraph(-1)
		assert.ErrorIs(t, err, ErrNegativeStages)
	})

	t.Run("Zero stages yields root-only graph", func(t *testing.T) {
		g, err := LinearGraph(0)
		require.NoError(t, err)
		assert.Equal(t, 1, g.Len())
		assert.Empty(t, g.Children(0))
	})

	t.Run("Chain structure", func(t *testing.T) {
		const stages = 5
		g, err := LinearGraph(stages)
		require.NoError(t, err)

		assert.Equal(t, stages+1, g.Len())
		for tt := 0; tt < stages; tt++ {
			children := g.Children(tt)
			require.Len(t, children, 1, "node %d", tt)
			assert.Equal(t, Noise[int]{Term: tt + 1, Probability: 1.0}, children[0])
		}
		assert.Empty(t, g.Children(stages))
		assert.NoError(t, g.Validate())
	})
}

func TestMarkovianGraph(t *testing.T) {
	t.Run("First matrix must have one row", func(t *testing.T) {
		_, err := MarkovianGraph([][][]float64{
			{{0.5, 0.5}, {0.3, 0.7}},
		})
		var shapeErr *RootTransitionShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, 2, shapeErr.Rows)
	})

	t.Run("Negative entry fails", func(t *testing.T) {
		_, err := MarkovianGraph([][][]float64{
			{{1.0}},
			{{-0.5, 1.5}},
		})
		var negErr *NegativeProbabilityError
		require.ErrorAs(t, err, &negErr)
		assert.Equal(t, 2, negErr.Stage)
		assert.Equal(t, 1, negErr.Row)
		assert.Equal(t, 1, negErr.Column)
		assert.Equal(t, -0.5, negErr.Value)
	})

	t.Run("Row sum above one fails", func(t *testing.T) {
		_, err := MarkovianGraph([][][]float64{
			{{1.0}},
			{{0.6, 0.6}},
		})
		var rangeErr *ProbabilityRangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.InDelta(t, 1.2, rangeErr.Sum, 1e-12)
	})

	t.Run("Dimension mismatch between stages fails", func(t *testing.T) {
		_, err := MarkovianGraph([][][]float64{
			{{0.5, 0.5}},
			{{1.0}}, // needs two rows to consume the two states of stage 1
		})
		var dimErr *DimensionMismatchError
		require.ErrorAs(t, err, &dimErr)
		assert.Equal(t, 2, dimErr.Stage)
		assert.Equal(t, 1, dimErr.Rows)
		assert.Equal(t, 2, dimErr.PrevCols)
	})

	t.Run("Empty stage matrices do not panic", func(t *testing.T) {
		// A 1×0 root row yields no Markov states, so every later stage
		// must be empty too; the whole sequence collapses to a root-only
		// graph.
		g, err := MarkovianGraph([][][]float64{
			{{}},
			{},
			{},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, g.Len())
	})

	t.Run("Rows after an empty stage fail the dimension check", func(t *testing.T) {
		_, err := MarkovianGraph([][][]float64{
			{{}},
			{},
			{{0.5, 0.5}},
		})
		var dimErr *DimensionMismatchError
		require.ErrorAs(t, err, &dimErr)
		assert.Equal(t, 3, dimErr.Stage)
		assert.Equal(t, 1, dimErr.Rows)
		assert.Equal(t, 0, dimErr.PrevCols)
	})

	t.Run("Zero entries produce no edge", func(t *testing.T) {
		g, err := MarkovianGraph([][][]float64{
			{{1.0, 0.0}},
			{{0.5, 0.5}, {0.0, 1.0}},
		})
		require.NoError(t, err)

		// (1,2) exists as a node but the root never reaches it.
		assert.True(t, g.Has(MarkovNode{Stage: 1, State: 2}))
		root := g.Children(MarkovNode{Stage: 0, State: 1})
		require.Len(t, root, 1)
		assert.Equal(t, MarkovNode{Stage: 1, State: 1}, root[0].Term)

		// (1,2) only transitions to (2,2).
		children := g.Children(MarkovNode{Stage: 1, State: 2})
		require.Len(t, children, 1)
		assert.Equal(t, Noise[MarkovNode]{Term: MarkovNode{Stage: 2, State: 2}, Probability: 1.0}, children[0])
	})

	t.Run("No two edges share a parent-child pair", func(t *testing.T) {
		g, err := MarkovianGraph([][][]float64{
			{{0.4, 0.6}},
			{{0.5, 0.5}, {0.2, 0.8}},
		})
		require.NoError(t, err)

		seen := make(map[[2]MarkovNode]bool)
		for _, parent := range g.Nodes() {
			for _, edge := range g.Children(parent) {
				key := [2]MarkovNode{parent, edge.Term}
				assert.False(t, seen[key], "duplicate edge %v", key)
				seen[key] = true
			}
		}
	})
}

func TestMarkovianChainGraph(t *testing.T) {
	t.Run("Requires at least one stage", func(t *testing.T) {
		_, err := MarkovianChainGraph(0, [][]float64{{1.0}}, []float64{1.0})
		assert.ErrorIs(t, err, ErrNoStages)
	})

	t.Run("Empty transition and root vectors yield a root-only graph", func(t *testing.T) {
		g, err := MarkovianChainGraph(3, [][]float64{}, []float64{})
		require.NoError(t, err)
		assert.Equal(t, 1, g.Len())
		assert.Empty(t, g.Children(MarkovNode{Stage: 0, State: 1}))
	})

	t.Run("Two-stage chain", func(t *testing.T) {
		g, err := MarkovianChainGraph(2, [][]float64{{0.5, 0.5}}, []float64{1.0})
		require.NoError(t, err)

		want := []MarkovNode{
			{Stage: 0, State: 1},
			{Stage: 1, State: 1},
			{Stage: 2, State: 1},
			{Stage: 2, State: 2},
		}
		assert.ElementsMatch(t, want, g.Nodes())

		root := g.Children(MarkovNode{Stage: 0, State: 1})
		require.Len(t, root, 1)
		assert.Equal(t, Noise[MarkovNode]{Term: MarkovNode{Stage: 1, State: 1}, Probability: 1.0}, root[0])

		children := g.Children(MarkovNode{Stage: 1, State: 1})
		assert.Equal(t, []Noise[MarkovNode]{
			{Term: MarkovNode{Stage: 2, State: 1}, Probability: 0.5},
			{Term: MarkovNode{Stage: 2, State: 2}, Probability: 0.5},
		}, children)

		assert.NoError(t, g.Validate())
	})
}
