package config

// GraphConfig is the top-level YAML structure describing a policy graph.
// Exactly one of Linear, Markovian or Explicit must be set.
type GraphConfig struct {
	Version   string         `yaml:"version"`
	Name      string         `yaml:"name"`
	Linear    *LinearConf    `yaml:"linear,omitempty"`
	Markovian *MarkovianConf `yaml:"markovian,omitempty"`
	Explicit  *ExplicitConf  `yaml:"explicit,omitempty"`
}

// LinearConf describes a linear chain graph.
type LinearConf struct {
	Stages int `yaml:"stages"`
}

// MarkovianConf describes a Markov-chain graph. Either Matrices gives the
// full per-stage matrix sequence, or Stages/TransitionMatrix/RootTransition
// give the homogeneous-chain form.
type MarkovianConf struct {
	Matrices         [][][]float64 `yaml:"matrices,omitempty"`
	Stages           int           `yaml:"stages,omitempty"`
	TransitionMatrix [][]float64   `yaml:"transition_matrix,omitempty"`
	RootTransition   []float64     `yaml:"root_transition,omitempty"`
}

// ExplicitConf describes a graph by its node and edge lists, over string
// indices.
type ExplicitConf struct {
	Root  string     `yaml:"root"`
	Nodes []string   `yaml:"nodes"`
	Edges []EdgeConf `yaml:"edges"`
}

// EdgeConf is one probability-weighted transition.
type EdgeConf struct {
	From        string  `yaml:"from"`
	To          string  `yaml:"to"`
	Probability float64 `yaml:"probability"`
}
