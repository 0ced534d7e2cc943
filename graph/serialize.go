package graph

import (
	"encoding/json"
	"fmt"
)

// serializedGraph is the persisted form of a Graph. Nodes are stored as an
// array instead of a JSON object so index types other than string survive a
// round trip.
type serializedGraph[T comparable] struct {
	Root  T                   `json:"root"`
	Nodes []serializedNode[T] `json:"nodes"`
}

type serializedNode[T comparable] struct {
	Index    T                  `json:"index"`
	Children []serializedArc[T] `json:"children,omitempty"`
}

type serializedArc[T comparable] struct {
	Term        T       `json:"term"`
	Probability float64 `json:"probability"`
}

// MarshalJSON encodes the graph with nodes in insertion order. The index
// type must itself be JSON-marshalable.
func (g *Graph[T]) MarshalJSON() ([]byte, error) {
	doc := serializedGraph[T]{Root: g.root}
	for _, node := range g.order {
		sn := serializedNode[T]{Index: node}
		for _, edge := range g.nodes[node] {
			sn.Children = append(sn.Children, serializedArc[T]{Term: edge.Term, Probability: edge.Probability})
		}
		doc.Nodes = append(doc.Nodes, sn)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a graph previously produced by MarshalJSON. The
// structural rules of AddNode and AddEdge apply, so a corrupted document
// (duplicate nodes, edges into the root) is rejected.
func (g *Graph[T]) UnmarshalJSON(data []byte) error {
	var doc serializedGraph[T]
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode graph: %w", err)
	}
	decoded := New(doc.Root)
	for _, node := range doc.Nodes {
		if node.Index == doc.Root {
			continue
		}
		if err := decoded.AddNode(node.Index); err != nil {
			return err
		}
	}
	for _, node := range doc.Nodes {
		for _, arc := range node.Children {
			if err := decoded.AddEdge(node.Index, arc.Term, arc.Probability); err != nil {
				return err
			}
		}
	}
	*g = *decoded
	return nil
}
