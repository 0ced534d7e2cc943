package policy

import (
	"github.com/smallnest/policygraph/graph"
)

// Sense is the direction of a stage objective.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

// String returns the string representation of a Sense.
func (s Sense) String() string {
	switch s {
	case Minimize:
		return "Min"
	case Maximize:
		return "Max"
	default:
		return "invalid"
	}
}

// VariableRef is an externally owned handle to one decision variable. The
// only operation the assembly performs on a handle is fixing it to a value:
// incoming state variables are exogenous input at construction time.
type VariableRef interface {
	Fix(value float64) error
}

// State pairs the incoming and outgoing handles of one physical state
// variable, observed at the start and end of a stage.
type State struct {
	Incoming VariableRef
	Outgoing VariableRef
}

// ParameterizeFunc mutates a subproblem's model for one sampled noise
// realization. It is stored at construction time and invoked later by the
// simulation layer.
type ParameterizeFunc func(realization any) error

// Node is the runtime record for one non-root graph node.
type Node[T comparable] struct {
	// Index is the graph index this node was assembled from.
	Index T

	// Subproblem wraps the externally owned optimization model.
	Subproblem *Subproblem[T]

	// Children are the resolved outgoing transitions, in graph edge order.
	// Populated by the second assembly pass.
	Children []graph.Noise[T]

	// NoiseTerms are the stagewise-independent realizations. A node that was
	// never parameterized holds a single nil realization with probability 1.
	NoiseTerms []graph.Noise[any]

	// Parameterize applies one sampled realization to the model. Defaults to
	// a no-op.
	Parameterize ParameterizeFunc

	// States maps state-variable names to their handles.
	States map[string]State

	// StageObjective is the objective expression over the model's variables,
	// nil until set.
	StageObjective any

	// Sense is the optimization direction of the stage objective.
	Sense Sense

	// BellmanFunction is the value produced by the external Bellman
	// initializer, nil until the second assembly pass.
	BellmanFunction any
}
