package policy

import (
	"errors"
	"fmt"
)

// ErrMissingOptimizer is returned when a subproblem is requested in direct
// mode without an optimizer factory.
var ErrMissingOptimizer = errors.New("cannot use direct mode without an optimizer")

// DuplicateStateError is returned when two state variables are registered
// under the same name on one node.
type DuplicateStateError struct {
	Name string
}

func (e *DuplicateStateError) Error() string {
	return fmt.Sprintf("state variable %q already registered on this node", e.Name)
}

// DuplicateParameterizeError is returned when Parameterize is called more
// than once on the same node.
type DuplicateParameterizeError struct {
	Node any
}

func (e *DuplicateParameterizeError) Error() string {
	return fmt.Sprintf("node %v is already parameterized", e.Node)
}

// LengthMismatchError is returned when the realization and probability
// vectors passed to Parameterize have different lengths.
type LengthMismatchError struct {
	Realizations  int
	Probabilities int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("got %d realizations but %d probabilities", e.Realizations, e.Probabilities)
}

// InvalidSenseError is returned when SetStageObjective receives a sense
// other than Minimize or Maximize.
type InvalidSenseError struct {
	Sense Sense
}

func (e *InvalidSenseError) Error() string {
	return fmt.Sprintf("invalid optimization sense %d, must be Minimize or Maximize", int(e.Sense))
}
