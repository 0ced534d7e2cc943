package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/policygraph/graph"
)

// fakeVar is a stand-in for an external solver variable handle.
type fakeVar struct {
	fixedTo *float64
	fixErr  error
}

func (v *fakeVar) Fix(value float64) error {
	if v.fixErr != nil {
		return v.fixErr
	}
	v.fixedTo = &value
	return nil
}

// buildOne assembles a single-node policy graph and returns its node.
func buildOne(t *testing.T, build BuildFunc[int]) *Node[int] {
	t.Helper()
	g, err := graph.LinearGraph(1)
	require.NoError(t, err)
	pg, err := New(g, build, Options[int]{})
	require.NoError(t, err)
	return pg.Node(1)
}

func TestAddStateVariable(t *testing.T) {
	t.Run("Registers state and fixes incoming to zero", func(t *testing.T) {
		in, out := &fakeVar{}, &fakeVar{}
		node := buildOne(t, func(sp *Subproblem[int], index int) error {
			return sp.AddStateVariable("volume", in, out)
		})

		require.Contains(t, node.States, "volume")
		assert.Same(t, VariableRef(in), node.States["volume"].Incoming)
		assert.Same(t, VariableRef(out), node.States["volume"].Outgoing)
		require.NotNil(t, in.fixedTo)
		assert.Equal(t, 0.0, *in.fixedTo)
		assert.Nil(t, out.fixedTo)
	})

	t.Run("Duplicate name fails", func(t *testing.T) {
		g, err := graph.LinearGraph(1)
		require.NoError(t, err)

		_, err = New(g, func(sp *Subproblem[int], index int) error {
			if err := sp.AddStateVariable("volume", &fakeVar{}, &fakeVar{}); err != nil {
				return err
			}
			return sp.AddStateVariable("volume", &fakeVar{}, &fakeVar{})
		}, Options[int]{})

		var dup *DuplicateStateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "volume", dup.Name)
	})

	t.Run("Many distinct states are allowed", func(t *testing.T) {
		node := buildOne(t, func(sp *Subproblem[int], index int) error {
			for _, name := range []string{"volume", "spill", "inflow"} {
				if err := sp.AddStateVariable(name, &fakeVar{}, &fakeVar{}); err != nil {
					return err
				}
			}
			return nil
		})
		assert.Len(t, node.States, 3)
	})

	t.Run("Fix failure propagates", func(t *testing.T) {
		g, err := graph.LinearGraph(1)
		require.NoError(t, err)

		boom := errors.New("variable deleted")
		_, err = New(g, func(sp *Subproblem[int], index int) error {
			return sp.AddStateVariable("volume", &fakeVar{fixErr: boom}, &fakeVar{})
		}, Options[int]{})
		assert.ErrorIs(t, err, boom)
	})
}

func TestParameterize(t *testing.T) {
	t.Run("Explicit probabilities", func(t *testing.T) {
		var applied any
		node := buildOne(t, func(sp *Subproblem[int], index int) error {
			return sp.Parameterize([]any{10.0, 20.0}, []float64{0.3, 0.7}, func(w any) error {
				applied = w
				return nil
			})
		})

		assert.Equal(t, []graph.Noise[any]{
			{Term: 10.0, Probability: 0.3},
			{Term: 20.0, Probability: 0.7},
		}, node.NoiseTerms)

		require.NoError(t, node.Parameterize(20.0))
		assert.Equal(t, 20.0, applied)
	})

	t.Run("Nil probabilities means uniform", func(t *testing.T) {
		node := buildOne(t, func(sp *Subproblem[int], index int) error {
			return sp.Parameterize([]any{"lo", "mid", "hi"}, nil, func(any) error { return nil })
		})

		require.Len(t, node.NoiseTerms, 3)
		for _, term := range node.NoiseTerms {
			assert.InDelta(t, 1.0/3.0, term.Probability, 1e-12)
		}
	})

	t.Run("Length mismatch fails", func(t *testing.T) {
		g, err := graph.LinearGraph(1)
		require.NoError(t, err)

		_, err = New(g, func(sp *Subproblem[int], index int) error {
			return sp.Parameterize([]any{1.0, 2.0}, []float64{1.0}, func(any) error { return nil })
		}, Options[int]{})

		var mismatch *LengthMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 2, mismatch.Realizations)
		assert.Equal(t, 1, mismatch.Probabilities)
	})

	t.Run("Second call fails", func(t *testing.T) {
		g, err := graph.LinearGraph(1)
		require.NoError(t, err)

		_, err = New(g, func(sp *Subproblem[int], index int) error {
			if err := sp.Parameterize([]any{1.0}, nil, func(any) error { return nil }); err != nil {
				return err
			}
			return sp.Parameterize([]any{2.0}, nil, func(any) error { return nil })
		}, Options[int]{})

		var dup *DuplicateParameterizeError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, 1, dup.Node)
	})
}

func TestSetStageObjective(t *testing.T) {
	t.Run("Sets sense and expression", func(t *testing.T) {
		node := buildOne(t, func(sp *Subproblem[int], index int) error {
			return sp.SetStageObjective(Maximize, "2x + y")
		})
		assert.Equal(t, Maximize, node.Sense)
		assert.Equal(t, "2x + y", node.StageObjective)
	})

	t.Run("Last write wins", func(t *testing.T) {
		node := buildOne(t, func(sp *Subproblem[int], index int) error {
			if err := sp.SetStageObjective(Maximize, "x"); err != nil {
				return err
			}
			return sp.SetStageObjective(Minimize, "y")
		})
		assert.Equal(t, Minimize, node.Sense)
		assert.Equal(t, "y", node.StageObjective)
	})

	t.Run("Invalid sense fails", func(t *testing.T) {
		g, err := graph.LinearGraph(1)
		require.NoError(t, err)

		_, err = New(g, func(sp *Subproblem[int], index int) error {
			return sp.SetStageObjective(Sense(42), "x")
		}, Options[int]{})

		var invalid *InvalidSenseError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, Sense(42), invalid.Sense)
	})
}

func TestSenseString(t *testing.T) {
	assert.Equal(t, "Min", Minimize.String())
	assert.Equal(t, "Max", Maximize.String())
	assert.Equal(t, "invalid", Sense(7).String())
}
