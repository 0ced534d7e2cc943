package graph

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Exporter renders a graph in formats useful for documentation and
// debugging.
type Exporter[T comparable] struct {
	graph *Graph[T]
}

// NewExporter creates an exporter for the given graph.
func NewExporter[T comparable](g *Graph[T]) *Exporter[T] {
	return &Exporter[T]{graph: g}
}

// MermaidOptions configures Mermaid diagram generation.
type MermaidOptions struct {
	// Direction of the flowchart, e.g. "TD" or "LR". Defaults to "LR".
	Direction string
}

// DrawMermaid generates a Mermaid flowchart of the graph with probability
// edge labels, using default options.
func (e *Exporter[T]) DrawMermaid() string {
	return e.DrawMermaidWithOptions(MermaidOptions{})
}

// DrawMermaidWithOptions generates a Mermaid flowchart with custom options.
// Nodes appear in insertion order, so output is deterministic.
func (e *Exporter[T]) DrawMermaidWithOptions(opts MermaidOptions) string {
	direction := opts.Direction
	if direction == "" {
		direction = "LR"
	}

	ids := make(map[T]string, e.graph.Len())
	for i, node := range e.graph.Nodes() {
		ids[node] = fmt.Sprintf("n%d", i)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("flowchart %s\n", direction))
	root := e.graph.Root()
	sb.WriteString(fmt.Sprintf("    %s([\"%v\"])\n", ids[root], root))
	sb.WriteString(fmt.Sprintf("    style %s fill:#90EE90\n", ids[root]))
	for _, node := range e.graph.Nodes() {
		if node == root {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s[\"%v\"]\n", ids[node], node))
	}
	for _, node := range e.graph.Nodes() {
		for _, edge := range e.graph.Children(node) {
			sb.WriteString(fmt.Sprintf("    %s -->|%v| %s\n", ids[node], edge.Probability, ids[edge.Term]))
		}
	}
	return sb.String()
}

var (
	rootStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	nodeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	probStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// DrawTerminal renders a styled textual summary of the graph for terminal
// output: one line per node followed by its outgoing transitions.
func (e *Exporter[T]) DrawTerminal() string {
	var sb strings.Builder
	root := e.graph.Root()
	for _, node := range e.graph.Nodes() {
		if node == root {
			sb.WriteString(rootStyle.Render(fmt.Sprintf("%v (root)", node)))
		} else {
			sb.WriteString(nodeStyle.Render(fmt.Sprintf("%v", node)))
		}
		sb.WriteString("\n")
		for _, edge := range e.graph.Children(node) {
			sb.WriteString(fmt.Sprintf("  └─ %v %s\n", edge.Term, probStyle.Render(fmt.Sprintf("p=%v", edge.Probability))))
		}
	}
	return sb.String()
}
