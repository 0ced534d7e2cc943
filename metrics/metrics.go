// Package metrics exposes Prometheus instrumentation for graph construction
// and policy-graph assembly, registered on the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GraphsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "policygraph_graphs_built_total",
		Help: "Total number of graphs produced, labelled by builder.",
	}, []string{"builder"})

	NodesAssembled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "policygraph_nodes_assembled_total",
		Help: "Total number of policy-graph nodes assembled.",
	})

	AssemblyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "policygraph_assembly_failures_total",
		Help: "Total number of policy-graph assemblies aborted by an error.",
	})

	AssemblyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "policygraph_assembly_duration_ms",
		Help:    "Wall-clock duration of policy-graph assembly in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})
)
