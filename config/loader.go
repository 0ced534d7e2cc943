// Package config loads policy-graph definitions from YAML files, validates
// them and builds graphs from them. It supports hot-reload of the file
// through fsnotify.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/smallnest/policygraph/graph"
)

// Loader reads a YAML graph definition and watches it for changes.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  *GraphConfig
	onChange []func(*GraphConfig)
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

// Config returns the current (latest) configuration.
func (l *Loader) Config() *GraphConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the config reloads.
func (l *Loader) OnChange(fn func(*GraphConfig)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that hot-reloads the config on file
// changes. Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", l.path, err)
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					cfg, err := l.load()
					if err != nil {
						// Keep serving the old config on a bad write.
						continue
					}
					l.mu.Lock()
					l.current = cfg
					callbacks := make([]func(*GraphConfig), len(l.onChange))
					copy(callbacks, l.onChange)
					l.mu.Unlock()
					for _, fn := range callbacks {
						fn(cfg)
					}
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }, nil
}

func (l *Loader) load() (*GraphConfig, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", l.path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML graph definition.
func Parse(data []byte) (*GraphConfig, error) {
	var cfg GraphConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BuildLinear builds the linear graph described by cfg.
func BuildLinear(cfg *GraphConfig) (*graph.Graph[int], error) {
	if cfg.Linear == nil {
		return nil, fmt.Errorf("config %q does not describe a linear graph", cfg.Name)
	}
	return graph.LinearGraph(cfg.Linear.Stages)
}

// BuildMarkovian builds the Markov-chain graph described by cfg.
func BuildMarkovian(cfg *GraphConfig) (*graph.Graph[graph.MarkovNode], error) {
	if cfg.Markovian == nil {
		return nil, fmt.Errorf("config %q does not describe a markovian graph", cfg.Name)
	}
	m := cfg.Markovian
	if len(m.Matrices) > 0 {
		return graph.MarkovianGraph(m.Matrices)
	}
	return graph.MarkovianChainGraph(m.Stages, m.TransitionMatrix, m.RootTransition)
}

// BuildExplicit builds the node/edge graph described by cfg and validates
// its probability sums.
func BuildExplicit(cfg *GraphConfig) (*graph.Graph[string], error) {
	if cfg.Explicit == nil {
		return nil, fmt.Errorf("config %q does not describe an explicit graph", cfg.Name)
	}
	e := cfg.Explicit
	edges := make([]graph.Edge[string], 0, len(e.Edges))
	for _, edge := range e.Edges {
		edges = append(edges, graph.Edge[string]{From: edge.From, To: edge.To, Probability: edge.Probability})
	}
	g, err := graph.NewGraph(e.Root, e.Nodes, edges)
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
