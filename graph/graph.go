package graph

// Noise is a probability-weighted term. Depending on where it appears it is
// either a transition to a child node (Term is a node index) or a
// stagewise-independent random realization (Term is an arbitrary value).
type Noise[T any] struct {
	Term        T
	Probability float64
}

// Edge is a directed transition between two node indices.
type Edge[T comparable] struct {
	From        T
	To          T
	Probability float64
}

// Graph is a directed graph over node indices of type T with
// probability-weighted edges. The root is implicit: it exists from
// construction and may never appear as the child of an edge. An outgoing
// probability sum below 1.0 represents residual probability of leaving the
// process (absorption).
type Graph[T comparable] struct {
	root  T
	nodes map[T][]Noise[T]
	order []T // insertion order, root first
}

// New creates a graph containing only the root node.
func New[T comparable](root T) *Graph[T] {
	return &Graph[T]{
		root:  root,
		nodes: map[T][]Noise[T]{root: nil},
		order: []T{root},
	}
}

// Root returns the root index.
func (g *Graph[T]) Root() T {
	return g.root
}

// Nodes returns all node indices, root first, then in insertion order.
func (g *Graph[T]) Nodes() []T {
	out := make([]T, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of nodes, including the root.
func (g *Graph[T]) Len() int {
	return len(g.nodes)
}

// Has reports whether node is present (the root counts).
func (g *Graph[T]) Has(node T) bool {
	_, ok := g.nodes[node]
	return ok
}

// Children returns the outgoing edges of node in the order they were added.
// Parallel edges to the same child are kept as separate entries.
func (g *Graph[T]) Children(node T) []Noise[T] {
	edges := g.nodes[node]
	out := make([]Noise[T], len(edges))
	copy(out, edges)
	return out
}

// AddNode inserts a new node with no outgoing edges. Inserting an index that
// already exists, or that equals the root, fails with a DuplicateNodeError.
func (g *Graph[T]) AddNode(node T) error {
	if _, ok := g.nodes[node]; ok {
		return &DuplicateNodeError{Node: node}
	}
	g.nodes[node] = nil
	g.order = append(g.order, node)
	return nil
}

// AddEdge appends a directed edge from parent to child. Both endpoints must
// already exist, and the root may never be a child. The probability is not
// range-checked here; that is deferred to Validate so partial sums can be
// accumulated edge by edge.
func (g *Graph[T]) AddEdge(parent, child T, probability float64) error {
	if child == g.root {
		return &RootAsChildError{Root: g.root}
	}
	if _, ok := g.nodes[parent]; !ok {
		return &UnknownNodeError{Node: parent}
	}
	if _, ok := g.nodes[child]; !ok {
		return &UnknownNodeError{Node: child}
	}
	g.nodes[parent] = append(g.nodes[parent], Noise[T]{Term: child, Probability: probability})
	return nil
}

// Validate checks that every node's outgoing probabilities sum to a value in
// [0, 1]. It reports the first offending node together with the computed sum.
func (g *Graph[T]) Validate() error {
	for _, node := range g.order {
		sum := 0.0
		for _, edge := range g.nodes[node] {
			sum += edge.Probability
		}
		if sum < 0.0 || sum > 1.0 {
			return &ProbabilityRangeError{Node: node, Sum: sum}
		}
	}
	return nil
}

// NewGraph builds a graph from a root, a node list and an edge list, in that
// order. It fails on the first duplicate node or invalid edge.
func NewGraph[T comparable](root T, nodes []T, edges []Edge[T]) (*Graph[T], error) {
	g := New(root)
	for _, node := range nodes {
		if err := g.AddNode(node); err != nil {
			return nil, err
		}
	}
	for _, edge := range edges {
		if err := g.AddEdge(edge.From, edge.To, edge.Probability); err != nil {
			return nil, err
		}
	}
	return g, nil
}
