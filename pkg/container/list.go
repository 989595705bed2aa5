package container

import (
	"fmt"

	"github.com/aretw0/metachem/pkg/domain"
)

// List grows by appending and removes items from any position.
type List struct {
	base
	items []any
}

// NewList creates an empty list container of the given kind.
func NewList(name string, kind domain.Kind) *List {
	return &List{base: newBase(name, kind)}
}

func (l *List) Read() (Snapshot, error) {
	return Snapshot{Items: deepCopy(l.items).([]any)}, nil
}

func (l *List) Add(items any) error {
	l.items = append(l.items, Normalize(items)...)
	return nil
}

func (l *List) Remove(items any) error {
	next, err := removeAll(l.items, Normalize(items))
	if err != nil {
		return fmt.Errorf("remove from %s: %w", l.name, err)
	}
	l.items = next
	return nil
}

// Len returns the number of items held.
func (l *List) Len() int {
	return len(l.items)
}

// Stack grows by prepending, so the most recently added items sit at the front.
type Stack struct {
	List
}

// NewStack creates an empty stack container of the given kind.
func NewStack(name string, kind domain.Kind) *Stack {
	return &Stack{List: List{base: newBase(name, kind)}}
}

// Add places the items in front of the current contents, keeping their order.
func (s *Stack) Add(items any) error {
	units := Normalize(items)
	s.items = append(units, s.items...)
	return nil
}

// Remove takes len(units) items from the front after checking that the
// requested items are exactly the ones at the top of the stack. Items held
// further down fail with domain.ErrNotOnTop, absent items with
// domain.ErrNotFound.
func (s *Stack) Remove(items any) error {
	units := Normalize(items)
	if _, err := removeAll(s.items, units); err != nil {
		return fmt.Errorf("remove from %s: %w", s.name, err)
	}
	if _, err := removeAll(s.items[:len(units)], units); err != nil {
		return fmt.Errorf("remove from %s: %w: only the top %d items can be removed", s.name, domain.ErrNotOnTop, len(units))
	}
	s.items = append([]any(nil), s.items[len(units):]...)
	return nil
}

// Pop removes and returns the item on top of the stack.
func (s *Stack) Pop() (any, error) {
	if len(s.items) == 0 {
		return nil, fmt.Errorf("pop from %s: %w", s.name, domain.ErrEmpty)
	}
	top := s.items[0]
	s.items = s.items[1:]
	return top, nil
}

// Queue grows by appending and is consumed first-in-first-out through Pop.
// Remove deletes arbitrary items like a List.
type Queue struct {
	List
}

// NewQueue creates an empty queue container of the given kind.
func NewQueue(name string, kind domain.Kind) *Queue {
	return &Queue{List: List{base: newBase(name, kind)}}
}

// Pop removes and returns the oldest item.
func (q *Queue) Pop() (any, error) {
	if len(q.items) == 0 {
		return nil, fmt.Errorf("pop from %s: %w", q.name, domain.ErrEmpty)
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, nil
}
