// Package policy assembles the runtime policy graph consumed by a
// multistage stochastic optimization solver.
//
// Given a validated graph.Graph, New walks every non-root node, requests an
// opaque optimization model from a ModelProvider, and invokes the caller's
// build callback with a Subproblem handle. The callback registers state
// variables, noise realizations and the stage objective through the
// Subproblem mutators:
//
//	pg, err := policy.New(g, func(sp *policy.Subproblem[int], t int) error {
//		if err := sp.AddStateVariable("volume", in, out); err != nil {
//			return err
//		}
//		if err := sp.Parameterize([]any{0.0, 50.0, 100.0}, nil, func(w any) error {
//			return applyInflow(sp.Model, w)
//		}); err != nil {
//			return err
//		}
//		return sp.SetStageObjective(policy.Minimize, cost)
//	}, policy.Options[int]{})
//
// A second pass then wires each node's children from the graph edges and
// runs the optional Bellman initializer, and the root's transitions are
// copied into PolicyGraph.RootChildren. Construction is single-threaded and
// fail-fast: the first error aborts the whole assembly.
package policy
