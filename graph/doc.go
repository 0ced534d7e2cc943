// Package graph provides the probabilistic policy graph underlying a
// multistage stochastic decision process.
//
// A policy graph is a directed graph over stage or state indices whose edges
// carry transition probabilities. It generalizes linear time-staged problems
// and Markov-chain-indexed problems into one representation; each node is
// later bound to a decision subproblem by the policy package.
//
// # Building a graph
//
// Graphs can be built by hand:
//
//	g := graph.New(0)
//	g.AddNode(1)
//	g.AddNode(2)
//	g.AddEdge(0, 1, 1.0)
//	g.AddEdge(1, 2, 0.9) // 0.1 chance of termination after stage 1
//	if err := g.Validate(); err != nil {
//		// a node's outgoing probabilities fall outside [0, 1]
//	}
//
// or with one of the canonical builders:
//
//	lin, _ := graph.LinearGraph(3)
//	mkv, _ := graph.MarkovianChainGraph(3, [][]float64{{0.4, 0.6}, {0.3, 0.7}}, []float64{1.0})
//
// Builders return graphs that are valid by construction; hand-built graphs
// should be validated explicitly before assembly.
//
// Graphs marshal to and from JSON, so they can be persisted through the
// store package, and can be exported as Mermaid diagrams or styled terminal
// output through Exporter.
package graph
