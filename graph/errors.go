package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeStages is returned by LinearGraph for a negative stage count.
	ErrNegativeStages = errors.New("number of stages must be non-negative")

	// ErrNoStages is returned by MarkovianChainGraph when stages < 1.
	ErrNoStages = errors.New("number of stages must be at least 1")
)

// DuplicateNodeError is returned when adding a node whose index already
// exists, or equals the root.
type DuplicateNodeError struct {
	// Node is the offending index. It is typed any so the error can be
	// matched with errors.As regardless of the graph's index type.
	Node any
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("node %v already exists in the graph", e.Node)
}

// UnknownNodeError is returned when an edge references an index that has not
// been added to the graph.
type UnknownNodeError struct {
	Node any
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("node %v does not exist in the graph", e.Node)
}

// RootAsChildError is returned when an edge points at the root.
type RootAsChildError struct {
	Root any
}

func (e *RootAsChildError) Error() string {
	return fmt.Sprintf("cannot add an edge into the root node %v", e.Root)
}

// ProbabilityRangeError is returned when a node's outgoing probabilities, or
// a transition-matrix row, sum to a value outside [0, 1].
type ProbabilityRangeError struct {
	Node any
	Sum  float64
}

func (e *ProbabilityRangeError) Error() string {
	return fmt.Sprintf("outgoing probabilities of node %v sum to %v, expected a value in [0, 1]", e.Node, e.Sum)
}

// RootTransitionShapeError is returned when the first transition matrix has
// more than one row: the root occupies a single Markov state.
type RootTransitionShapeError struct {
	Rows int
}

func (e *RootTransitionShapeError) Error() string {
	return fmt.Sprintf("first transition matrix must have exactly one row, got %d", e.Rows)
}

// NegativeProbabilityError is returned when a transition-matrix entry is
// negative. Stage, Row and Column are 1-based.
type NegativeProbabilityError struct {
	Stage  int
	Row    int
	Column int
	Value  float64
}

func (e *NegativeProbabilityError) Error() string {
	return fmt.Sprintf("transition matrix %d entry (%d, %d) is %v, probabilities must be non-negative",
		e.Stage, e.Row, e.Column, e.Value)
}

// DimensionMismatchError is returned when the row count of one transition
// matrix does not match the column count of its predecessor.
type DimensionMismatchError struct {
	Stage    int
	Rows     int
	PrevCols int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("transition matrix %d has %d rows but matrix %d has %d columns",
		e.Stage, e.Rows, e.Stage-1, e.PrevCols)
}
