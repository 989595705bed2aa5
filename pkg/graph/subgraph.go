package graph

import (
	"fmt"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/control"
	"github.com/aretw0/metachem/pkg/domain"
)

// Subgraph is a reusable fragment such as a bond template. Control enters at
// Entry and leaves from Exit, whose successors are declared by the host.
// Containers the fragment shares with the host are Links, bound by the host.
type Subgraph struct {
	name           string
	entry, exit    string
	containers     map[string]container.Container
	containerOrder []string
	nodes          map[string]control.Node
	nodeOrder      []string
	successors     map[string][]string
}

// Subgraph freezes the builder into a fragment. Every node except exit must
// have its full set of successors; exit must have none.
func (b *Builder) Subgraph(entry, exit string) (*Subgraph, error) {
	for _, id := range []string{entry, exit} {
		if _, ok := b.nodes[id]; !ok {
			return nil, &domain.ConfigError{Node: id, Err: domain.ErrUnknownVertex, Reason: fmt.Sprintf("not a node of subgraph '%s'", b.name)}
		}
	}
	if b.nodes[exit].Role() == domain.RoleTermination {
		return nil, &domain.ConfigError{Node: exit, Err: domain.ErrInvalidEdge, Reason: "subgraph exit cannot be a termination"}
	}
	for _, id := range b.nodeOrder {
		want, got := allowedSuccessors(b.nodes[id]), len(b.successors[id])
		if id == exit {
			want = 0
		}
		if got != want {
			return nil, &domain.ConfigError{
				Node:   id,
				Err:    domain.ErrInvalidEdge,
				Reason: fmt.Sprintf("subgraph node needs %d successor(s), has %d", want, got),
			}
		}
	}
	g := b.snapshot()
	return &Subgraph{
		name:           g.name,
		entry:          entry,
		exit:           exit,
		containers:     g.containers,
		containerOrder: g.containerOrder,
		nodes:          g.nodes,
		nodeOrder:      g.nodeOrder,
		successors:     g.successors,
	}, nil
}

// Name returns the subgraph name.
func (s *Subgraph) Name() string { return s.name }

// Entry returns the id of the node control enters through.
func (s *Subgraph) Entry() string { return s.entry }

// Exit returns the id of the node control leaves from.
func (s *Subgraph) Exit() string { return s.exit }

// Links returns the link containers of the fragment in declaration order.
func (s *Subgraph) Links() []*container.Link {
	var out []*container.Link
	for _, name := range s.containerOrder {
		if l, ok := s.containers[name].(*container.Link); ok {
			out = append(out, l)
		}
	}
	return out
}

// Link returns the named link container.
func (s *Subgraph) Link(name string) (*container.Link, bool) {
	l, ok := s.containers[name].(*container.Link)
	return l, ok
}

// Embed copies the containers, nodes and edges of sub into the builder. The
// host then connects into sub.Entry() and out of sub.Exit().
func (b *Builder) Embed(sub *Subgraph) error {
	if sub == nil {
		return &domain.ConfigError{Err: domain.ErrUnknownVertex, Reason: "nil subgraph"}
	}
	for _, name := range sub.containerOrder {
		if err := b.claim(name); err != nil {
			return &domain.ConfigError{Container: name, Err: err, Reason: fmt.Sprintf("embedding '%s'", sub.name)}
		}
	}
	for _, id := range sub.nodeOrder {
		if err := b.claim(id); err != nil {
			return &domain.ConfigError{Node: id, Err: err, Reason: fmt.Sprintf("embedding '%s'", sub.name)}
		}
	}
	for _, name := range sub.containerOrder {
		b.containers[name] = sub.containers[name]
		b.containerOrder = append(b.containerOrder, name)
	}
	for _, id := range sub.nodeOrder {
		b.nodes[id] = sub.nodes[id]
		b.nodeOrder = append(b.nodeOrder, id)
		if succ := sub.successors[id]; len(succ) > 0 {
			b.successors[id] = append([]string(nil), succ...)
		}
	}
	return nil
}
