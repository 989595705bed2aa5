package graph

import (
	"fmt"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/control"
	"github.com/aretw0/metachem/pkg/domain"
)

// Builder collects the vertices and edges of a graph. Every declaration is
// validated immediately; Build performs the checks that need the whole graph.
type Builder struct {
	name           string
	containers     map[string]container.Container
	containerOrder []string
	nodes          map[string]control.Node
	nodeOrder      []string
	successors     map[string][]string
}

// NewBuilder creates an empty builder.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:       name,
		containers: make(map[string]container.Container),
		nodes:      make(map[string]control.Node),
		successors: make(map[string][]string),
	}
}

// AddContainer registers containers. Names must be unique across containers
// and nodes.
func (b *Builder) AddContainer(cs ...container.Container) error {
	for _, c := range cs {
		if c == nil {
			return &domain.ConfigError{Err: domain.ErrUnknownVertex, Reason: "nil container"}
		}
		if err := b.claim(c.Name()); err != nil {
			return &domain.ConfigError{Container: c.Name(), Err: err}
		}
		b.containers[c.Name()] = c
		b.containerOrder = append(b.containerOrder, c.Name())
	}
	return nil
}

// AddNode registers control nodes and their access edges. Every container a
// node touches must already be registered with the builder.
func (b *Builder) AddNode(nodes ...control.Node) error {
	for _, n := range nodes {
		if n == nil {
			return &domain.ConfigError{Err: domain.ErrUnknownVertex, Reason: "nil node"}
		}
		if err := checkShape(n); err != nil {
			return err
		}
		if err := b.checkAccess(n); err != nil {
			return err
		}
		if err := b.claim(n.ID()); err != nil {
			return &domain.ConfigError{Node: n.ID(), Err: err}
		}
		b.nodes[n.ID()] = n
		b.nodeOrder = append(b.nodeOrder, n.ID())
	}
	return nil
}

// Connect declares a control edge from one node to another. For decisions
// the order of Connect calls fixes the option index of each successor.
func (b *Builder) Connect(from, to string) error {
	src, ok := b.nodes[from]
	if !ok {
		return &domain.ConfigError{Node: from, Err: domain.ErrUnknownVertex, Reason: "control edge source is not a node"}
	}
	if _, ok := b.nodes[to]; !ok {
		return &domain.ConfigError{Node: to, Err: domain.ErrUnknownVertex, Reason: "control edge target is not a node"}
	}

	limit := allowedSuccessors(src)
	if len(b.successors[from]) >= limit {
		return &domain.ConfigError{
			Node:   from,
			Err:    domain.ErrInvalidEdge,
			Reason: fmt.Sprintf("%s allows %d successor(s), cannot add '%s'", src.Role(), limit, to),
		}
	}
	b.successors[from] = append(b.successors[from], to)
	return nil
}

// Chain connects each node to the next one.
func (b *Builder) Chain(ids ...string) error {
	for i := 1; i < len(ids); i++ {
		if err := b.Connect(ids[i-1], ids[i]); err != nil {
			return err
		}
	}
	return nil
}

// Build checks successor counts and returns an immutable graph.
func (b *Builder) Build() (*Graph, error) {
	if len(b.nodes) == 0 {
		return nil, &domain.ConfigError{Err: domain.ErrUnknownVertex, Reason: fmt.Sprintf("graph '%s' has no control nodes", b.name)}
	}
	for _, id := range b.nodeOrder {
		n := b.nodes[id]
		want, got := allowedSuccessors(n), len(b.successors[id])
		if got != want {
			return nil, &domain.ConfigError{
				Node:   id,
				Err:    domain.ErrInvalidEdge,
				Reason: fmt.Sprintf("%s needs %d successor(s), has %d", n.Role(), want, got),
			}
		}
	}
	return b.snapshot(), nil
}

func (b *Builder) snapshot() *Graph {
	g := &Graph{
		name:           b.name,
		containers:     make(map[string]container.Container, len(b.containers)),
		containerOrder: append([]string(nil), b.containerOrder...),
		nodes:          make(map[string]control.Node, len(b.nodes)),
		nodeOrder:      append([]string(nil), b.nodeOrder...),
		successors:     make(map[string][]string, len(b.successors)),
	}
	for k, v := range b.containers {
		g.containers[k] = v
	}
	for k, v := range b.nodes {
		g.nodes[k] = v
	}
	for k, v := range b.successors {
		g.successors[k] = append([]string(nil), v...)
	}
	return g
}

func (b *Builder) claim(id string) error {
	if id == "" {
		return domain.ErrEmptyID
	}
	if _, ok := b.containers[id]; ok {
		return domain.ErrDuplicateVertex
	}
	if _, ok := b.nodes[id]; ok {
		return domain.ErrDuplicateVertex
	}
	return nil
}

func (b *Builder) checkAccess(n control.Node) error {
	return n.Access().Each(func(mode domain.AccessMode, c container.Container) error {
		registered, ok := b.containers[c.Name()]
		if !ok || registered != c {
			return &domain.ConfigError{Node: n.ID(), Container: c.Name(), Err: domain.ErrUnknownVertex, Reason: "container not registered with the graph"}
		}
		if err := domain.CheckAccess(n.Role(), c.Kind(), mode); err != nil {
			return &domain.ConfigError{Node: n.ID(), Container: c.Name(), Err: domain.ErrIncompatibleRole, Reason: err.Error()}
		}
		return nil
	})
}

func checkShape(n control.Node) error {
	var ok bool
	switch n.Role() {
	case domain.RoleTermination:
		ok = true
	case domain.RoleDecision:
		_, ok = n.(control.Decider)
	default:
		_, ok = n.(control.Lifecycle)
	}
	if !ok {
		return &domain.ConfigError{Node: n.ID(), Err: domain.ErrIncompatibleRole, Reason: fmt.Sprintf("%s does not implement its lifecycle", n.Role())}
	}
	return nil
}

func allowedSuccessors(n control.Node) int {
	switch n.Role() {
	case domain.RoleTermination:
		return 0
	case domain.RoleDecision:
		if d, ok := n.(control.Decider); ok {
			return d.Options()
		}
		return 0
	default:
		return 1
	}
}
