package policy

import (
	"fmt"
	"time"

	"github.com/smallnest/policygraph/graph"
	"github.com/smallnest/policygraph/log"
	"github.com/smallnest/policygraph/metrics"
)

// BuildFunc is the user-supplied construction callback. It receives the
// fresh subproblem and the node's graph index, and is expected to register
// states, noise and the stage objective through the Subproblem mutators.
// Node creation order across the first assembly pass is not stable and must
// not be relied upon.
type BuildFunc[T comparable] func(sp *Subproblem[T], index T) error

// BellmanInitializer produces the value-function approximation object for
// one node. It runs exactly once per node, after the node's children and
// noise terms are final, and its result is stored verbatim.
type BellmanInitializer[T comparable] func(pg *PolicyGraph[T], node *Node[T]) (any, error)

// Options configures policy-graph assembly.
type Options[T comparable] struct {
	// Provider creates the external model for each subproblem. When nil, an
	// inert placeholder provider is used.
	Provider ModelProvider

	// Config is passed through to the provider for every node.
	Config SubproblemConfig

	// Bellman initializes each node's Bellman function in the second pass.
	// When nil, BellmanFunction is left nil.
	Bellman BellmanInitializer[T]

	// Logger overrides the package-level default logger.
	Logger log.Logger
}

// PolicyGraph holds one assembled runtime record per non-root graph node,
// plus the root's outgoing transitions. Individual nodes stay mutable for
// the training and simulation layers; the graph itself should be treated as
// immutable once returned.
type PolicyGraph[T comparable] struct {
	// Root is the root index of the source graph.
	Root T

	// RootChildren are the root's outgoing transitions, in edge order.
	RootChildren []graph.Noise[T]

	// Nodes maps each non-root index to its runtime record.
	Nodes map[T]*Node[T]
}

// Node returns the runtime record for index, or nil if index is the root or
// unknown.
func (pg *PolicyGraph[T]) Node(index T) *Node[T] {
	return pg.Nodes[index]
}

func noise(term any, probability float64) graph.Noise[any] {
	return graph.Noise[any]{Term: term, Probability: probability}
}

func noop(any) error { return nil }

// New assembles a PolicyGraph from a validated graph in two passes. The
// first pass creates a node and subproblem per non-root index and runs the
// build callback; the second wires children and Bellman functions, which
// requires every sibling node to already exist. Any failure aborts the whole
// construction: there is no partial-success state, callers must discard and
// retry with corrected input.
//
// Validation is the graph builder's responsibility; New performs no further
// structural checks.
func New[T comparable](g *graph.Graph[T], build BuildFunc[T], opts Options[T]) (*PolicyGraph[T], error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	provider := opts.Provider
	if provider == nil {
		provider = ProviderFunc(placeholderProvider)
	}

	start := time.Now()
	pg, err := assemble(g, build, provider, opts, logger)
	if err != nil {
		metrics.AssemblyFailures.Inc()
		return nil, err
	}
	metrics.AssemblyDuration.Observe(float64(time.Since(start).Milliseconds()))
	logger.Info("assembled policy graph with %d nodes in %v", len(pg.Nodes), time.Since(start))
	return pg, nil
}

func assemble[T comparable](g *graph.Graph[T], build BuildFunc[T], provider ModelProvider, opts Options[T], logger log.Logger) (*PolicyGraph[T], error) {
	root := g.Root()
	pg := &PolicyGraph[T]{
		Root:  root,
		Nodes: make(map[T]*Node[T], g.Len()-1),
	}

	for _, index := range g.Nodes() {
		if index == root {
			continue
		}
		model, err := provider.Create(opts.Config)
		if err != nil {
			return nil, fmt.Errorf("create subproblem for node %v: %w", index, err)
		}
		node := &Node[T]{
			Index:        index,
			Parameterize: noop,
			States:       make(map[string]State),
			Sense:        Minimize,
		}
		sp := &Subproblem[T]{Model: model, node: node, owner: pg}
		node.Subproblem = sp
		pg.Nodes[index] = node

		if build != nil {
			if err := build(sp, index); err != nil {
				return nil, fmt.Errorf("build subproblem for node %v: %w", index, err)
			}
		}
		// Deterministic stages still get one realization to sample.
		if len(node.NoiseTerms) == 0 {
			node.NoiseTerms = append(node.NoiseTerms, noise(nil, 1.0))
		}
		metrics.NodesAssembled.Inc()
		logger.Debug("assembled node %v: %d states, %d noise terms", index, len(node.States), len(node.NoiseTerms))
	}

	for index, node := range pg.Nodes {
		node.Children = append(node.Children, g.Children(index)...)
		if opts.Bellman != nil {
			bf, err := opts.Bellman(pg, node)
			if err != nil {
				return nil, fmt.Errorf("initialize Bellman function for node %v: %w", index, err)
			}
			node.BellmanFunction = bf
		}
	}

	pg.RootChildren = append(pg.RootChildren, g.Children(root)...)
	return pg, nil
}
