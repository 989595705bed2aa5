package container

import (
	"fmt"

	"github.com/aretw0/metachem/pkg/domain"
)

// Link forwards every data operation to its currently bound target.
// Binding is separate from the data operations so a sub-graph can be wired
// against a link and later attached to different concrete containers.
type Link struct {
	base
	target Container
}

// NewLink creates an unbound link of the given kind.
func NewLink(name string, kind domain.Kind) *Link {
	return &Link{base: newBase(name, kind)}
}

// Bind points the link at target. The target must have the link's kind so
// that access edges validated against the link stay valid.
func (l *Link) Bind(target Container) error {
	if target == nil {
		return &domain.ConfigError{Container: l.name, Err: domain.ErrNoTarget, Reason: "cannot bind to nil"}
	}
	if target == Container(l) {
		return &domain.ConfigError{Container: l.name, Err: domain.ErrInvalidEdge, Reason: "link cannot target itself"}
	}
	if target.Kind() != l.kind {
		return &domain.ConfigError{
			Container: l.name,
			Err:       domain.ErrIncompatibleRole,
			Reason:    fmt.Sprintf("link of kind %s cannot target %s '%s'", l.kind, target.Kind(), target.Name()),
		}
	}
	l.target = target
	return nil
}

// Unbind clears the target. Later data operations fail with domain.ErrNoTarget.
func (l *Link) Unbind() {
	l.target = nil
}

// Target returns the bound container, or nil.
func (l *Link) Target() Container {
	return l.target
}

func (l *Link) Read() (Snapshot, error) {
	t, err := l.resolve()
	if err != nil {
		return Snapshot{}, err
	}
	return t.Read()
}

func (l *Link) Add(items any) error {
	t, err := l.resolve()
	if err != nil {
		return err
	}
	return t.Add(items)
}

func (l *Link) Remove(items any) error {
	t, err := l.resolve()
	if err != nil {
		return err
	}
	return t.Remove(items)
}

func (l *Link) resolve() (Container, error) {
	if l.target == nil {
		return nil, fmt.Errorf("%s: %w", l.name, domain.ErrNoTarget)
	}
	return l.target, nil
}
