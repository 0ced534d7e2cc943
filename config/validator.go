package config

import (
	"fmt"
	"strings"
)

// Validate checks the config for:
//   - Required fields (version, name)
//   - Exactly one graph form set
//   - Form-specific argument errors that would otherwise only surface when
//     the graph is built
func Validate(cfg *GraphConfig) error {
	var errs []string
	if cfg.Version == "" {
		errs = append(errs, "version is required")
	}
	if cfg.Name == "" {
		errs = append(errs, "name is required")
	}

	forms := 0
	if cfg.Linear != nil {
		forms++
		if cfg.Linear.Stages < 0 {
			errs = append(errs, fmt.Sprintf("linear: stages must be non-negative, got %d", cfg.Linear.Stages))
		}
	}
	if cfg.Markovian != nil {
		forms++
		m := cfg.Markovian
		if len(m.Matrices) == 0 {
			if m.Stages < 1 {
				errs = append(errs, fmt.Sprintf("markovian: stages must be at least 1, got %d", m.Stages))
			}
			if len(m.TransitionMatrix) == 0 {
				errs = append(errs, "markovian: transition_matrix is required when matrices is not given")
			}
			if len(m.RootTransition) == 0 {
				errs = append(errs, "markovian: root_transition is required when matrices is not given")
			}
		}
	}
	if cfg.Explicit != nil {
		forms++
		e := cfg.Explicit
		if e.Root == "" {
			errs = append(errs, "explicit: root is required")
		}
		seen := map[string]bool{e.Root: true}
		for i, node := range e.Nodes {
			if node == "" {
				errs = append(errs, fmt.Sprintf("explicit.nodes[%d]: empty node index", i))
				continue
			}
			if seen[node] {
				errs = append(errs, fmt.Sprintf("explicit.nodes[%d]: duplicate node %q", i, node))
			}
			seen[node] = true
		}
		for i, edge := range e.Edges {
			if !seen[edge.From] {
				errs = append(errs, fmt.Sprintf("explicit.edges[%d]: unknown node %q", i, edge.From))
			}
			if !seen[edge.To] {
				errs = append(errs, fmt.Sprintf("explicit.edges[%d]: unknown node %q", i, edge.To))
			}
			if edge.To == e.Root {
				errs = append(errs, fmt.Sprintf("explicit.edges[%d]: root %q cannot be a child", i, e.Root))
			}
		}
	}
	if forms != 1 {
		errs = append(errs, fmt.Sprintf("exactly one of linear/markovian/explicit must be set, got %d", forms))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
