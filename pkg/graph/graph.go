package graph

import (
	"fmt"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/control"
	"github.com/aretw0/metachem/pkg/domain"
)

// Edge is a control edge. Option is the position of the edge among the
// successors of From.
type Edge struct {
	From   string
	To     string
	Option int
}

// Graph is a validated, immutable MetaChem graph.
type Graph struct {
	name           string
	containers     map[string]container.Container
	containerOrder []string
	nodes          map[string]control.Node
	nodeOrder      []string
	successors     map[string][]string
}

// Name returns the graph name given to the builder.
func (g *Graph) Name() string { return g.name }

// Node returns the control node with the given id.
func (g *Graph) Node(id string) (control.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Container returns the container with the given name.
func (g *Graph) Container(name string) (container.Container, bool) {
	c, ok := g.containers[name]
	return c, ok
}

// Nodes returns the control nodes in declaration order.
func (g *Graph) Nodes() []control.Node {
	out := make([]control.Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

// Containers returns the containers in declaration order.
func (g *Graph) Containers() []container.Container {
	out := make([]container.Container, 0, len(g.containerOrder))
	for _, name := range g.containerOrder {
		out = append(out, g.containers[name])
	}
	return out
}

// Successors returns the ids of the successors of id in option order.
func (g *Graph) Successors(id string) []string {
	return append([]string(nil), g.successors[id]...)
}

// Successor returns the successor of id at the given position.
func (g *Graph) Successor(id string, option int) (control.Node, error) {
	succ := g.successors[id]
	if option < 0 || option >= len(succ) {
		return nil, fmt.Errorf("node '%s' chose option %d of %d: %w", id, option, len(succ), domain.ErrOptionOutOfRange)
	}
	return g.nodes[succ[option]], nil
}

// Edges returns every control edge, grouped by source in declaration order.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, from := range g.nodeOrder {
		for i, to := range g.successors[from] {
			out = append(out, Edge{From: from, To: to, Option: i})
		}
	}
	return out
}
