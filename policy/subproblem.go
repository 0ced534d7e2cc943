package policy

import (
	"fmt"

	"github.com/google/uuid"
)

// OptimizerFactory constructs a solver backend instance.
type OptimizerFactory func() (any, error)

// SubproblemConfig selects the solver backend for new subproblems. Direct
// mode binds the model to a live solver instance at creation; deferred mode
// (the default) leaves the binding to the solving layer.
type SubproblemConfig struct {
	Optimizer OptimizerFactory
	Direct    bool
}

// ModelProvider creates the externally owned optimization model for one
// subproblem. The assembly never inspects the returned value; it only
// threads it through to the build callback and the node record.
type ModelProvider interface {
	Create(cfg SubproblemConfig) (any, error)
}

// ProviderFunc adapts a function to the ModelProvider interface.
type ProviderFunc func(cfg SubproblemConfig) (any, error)

func (f ProviderFunc) Create(cfg SubproblemConfig) (any, error) {
	return f(cfg)
}

// placeholderModel is the inert model produced when no provider is
// configured. It lets structure-only callers assemble a policy graph
// without an optimization backend.
type placeholderModel struct {
	ID string
}

func placeholderProvider(cfg SubproblemConfig) (any, error) {
	if cfg.Direct && cfg.Optimizer == nil {
		return nil, ErrMissingOptimizer
	}
	return &placeholderModel{ID: uuid.NewString()}, nil
}

// Subproblem wraps one node's externally owned model together with
// back-references to its node and owning policy graph. The back-references
// are what let the mutators recover the node under construction from the
// subproblem alone inside a build callback.
type Subproblem[T comparable] struct {
	// Model is the external optimization model, opaque to this package.
	Model any

	node  *Node[T]
	owner *PolicyGraph[T]
}

// Node returns the node this subproblem belongs to.
func (sp *Subproblem[T]) Node() *Node[T] {
	return sp.node
}

// PolicyGraph returns the policy graph that owns this subproblem.
func (sp *Subproblem[T]) PolicyGraph() *PolicyGraph[T] {
	return sp.owner
}

// AddStateVariable registers a state variable under name. The incoming
// handle is fixed to zero: it is exogenous input supplied by the training
// passes, not a decision variable at construction time. Names must be unique
// per node; there is no bound on the number of states.
func (sp *Subproblem[T]) AddStateVariable(name string, incoming, outgoing VariableRef) error {
	node := sp.node
	if _, ok := node.States[name]; ok {
		return &DuplicateStateError{Name: name}
	}
	if err := incoming.Fix(0); err != nil {
		return fmt.Errorf("fix incoming state %q: %w", name, err)
	}
	node.States[name] = State{Incoming: incoming, Outgoing: outgoing}
	return nil
}

// Parameterize registers the node's stagewise-independent noise terms and
// the procedure that applies one sampled realization to the model. A nil
// probabilities slice means the uniform distribution. At most one call per
// node is allowed.
func (sp *Subproblem[T]) Parameterize(realizations []any, probabilities []float64, modify ParameterizeFunc) error {
	node := sp.node
	if len(node.NoiseTerms) > 0 {
		return &DuplicateParameterizeError{Node: node.Index}
	}
	if probabilities == nil {
		probabilities = make([]float64, len(realizations))
		for i := range probabilities {
			probabilities[i] = 1.0 / float64(len(realizations))
		}
	}
	if len(realizations) != len(probabilities) {
		return &LengthMismatchError{Realizations: len(realizations), Probabilities: len(probabilities)}
	}
	for i, realization := range realizations {
		node.NoiseTerms = append(node.NoiseTerms, noise(realization, probabilities[i]))
	}
	node.Parameterize = modify
	return nil
}

// SetStageObjective sets the node's stage objective and optimization sense.
// Unlike the other mutators it may be called repeatedly; the last write
// wins.
func (sp *Subproblem[T]) SetStageObjective(sense Sense, expression any) error {
	if sense != Minimize && sense != Maximize {
		return &InvalidSenseError{Sense: sense}
	}
	sp.node.Sense = sense
	sp.node.StageObjective = expression
	return nil
}
