// Package flow builds the screen-navigation graph from an adjacency list and
// renders it as boxes and connectors.
//
// Nodes sit at caller supplied coordinates; there is no automatic layout.
// A connection to a name that is not a node is a dangling edge: [Build]
// leaves it out of the graph and reports it in [Graph.Dangling], and
// [Graph.Err] turns the report into an error for strict callers.
package flow

import (
	"fmt"
	"strings"

	"github.com/matzehuels/screenforge/pkg/errors"
)

// Node is one screen box of the flow map.
type Node struct {
	Name       string   `yaml:"name" json:"name" validate:"required,name"`
	X          float64  `yaml:"x" json:"x" validate:"gte=0"`
	Y          float64  `yaml:"y" json:"y" validate:"gte=0"`
	ConnectsTo []string `yaml:"connects_to" json:"connects_to,omitempty" validate:"dive,required"`
}

// Edge is a directed connection between two node names.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (e Edge) String() string { return e.From + " -> " + e.To }

// Graph is the resolved flow graph.
type Graph struct {
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
	Dangling []Edge `json:"dangling,omitempty"`
}

// Build resolves every ConnectsTo entry against the node names. Edges keep
// the order of their source nodes and targets; repeated edges are kept
// once. Nodes with a duplicate name after the first are ignored.
func Build(nodes []Node) Graph {
	g := Graph{}
	index := make(map[string]int, len(nodes))
	for _, n := range nodes {
		if _, dup := index[n.Name]; dup {
			continue
		}
		index[n.Name] = len(g.Nodes)
		g.Nodes = append(g.Nodes, n)
	}

	seen := make(map[Edge]bool)
	for _, n := range g.Nodes {
		for _, target := range n.ConnectsTo {
			e := Edge{From: n.Name, To: target}
			if seen[e] {
				continue
			}
			seen[e] = true
			if _, ok := index[target]; !ok {
				g.Dangling = append(g.Dangling, e)
				continue
			}
			g.Edges = append(g.Edges, e)
		}
	}
	return g
}

// Node returns the node with the given name.
func (g Graph) Node(name string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// Err returns a *DanglingEdgeError when the graph has dangling edges.
func (g Graph) Err() error {
	if len(g.Dangling) == 0 {
		return nil
	}
	return &DanglingEdgeError{Edges: g.Dangling}
}

// DanglingEdgeError lists connections to unknown nodes.
type DanglingEdgeError struct {
	Edges []Edge
}

func (e *DanglingEdgeError) Error() string {
	parts := make([]string, len(e.Edges))
	for i, d := range e.Edges {
		parts[i] = d.String()
	}
	return fmt.Sprintf("%d dangling flow edge(s): %s", len(e.Edges), strings.Join(parts, ", "))
}

// Code maps the error onto the structured error taxonomy.
func (e *DanglingEdgeError) Code() errors.Code { return errors.ErrCodeDanglingFlowEdge }
