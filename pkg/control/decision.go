package control

import (
	"fmt"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/domain"
)

// CounterDecision routes to option 1 once an integer counter reaches a
// threshold, and to option 0 before that.
type CounterDecision struct {
	DecisionBase

	counter   *Variable
	threshold int
	value     int
}

// NewCounterDecision creates a two-way counter decision. It reads exactly one
// container holding the counter.
func NewCounterDecision(id string, options, threshold int, reads ...container.Container) (*CounterDecision, error) {
	base, err := newTwoWayDecision(id, options, reads)
	if err != nil {
		return nil, err
	}
	return &CounterDecision{DecisionBase: base, counter: NewVariable(reads[0]), threshold: threshold}, nil
}

func (d *CounterDecision) Read() error {
	n, err := d.counter.LoadInt()
	if err != nil {
		return err
	}
	d.value = n
	return nil
}

func (d *CounterDecision) Process() (int, error) {
	if d.value >= d.threshold {
		return 1, nil
	}
	return 0, nil
}

// EmptyDecision routes to option 1 while its container holds something, and
// to option 0 once it is empty.
type EmptyDecision struct {
	DecisionBase

	watched container.Container
	empty   bool
}

// NewEmptyDecision creates a two-way emptiness decision over one container.
func NewEmptyDecision(id string, options int, reads ...container.Container) (*EmptyDecision, error) {
	base, err := newTwoWayDecision(id, options, reads)
	if err != nil {
		return nil, err
	}
	return &EmptyDecision{DecisionBase: base, watched: reads[0]}, nil
}

func (d *EmptyDecision) Read() error {
	snap, err := d.watched.Read()
	if err != nil {
		return err
	}
	d.empty = snap.Empty()
	return nil
}

func (d *EmptyDecision) Process() (int, error) {
	if d.empty {
		return 0, nil
	}
	return 1, nil
}

func newTwoWayDecision(id string, options int, reads []container.Container) (DecisionBase, error) {
	if options != 2 {
		return DecisionBase{}, &domain.ConfigError{Node: id, Err: domain.ErrOptionCount, Reason: fmt.Sprintf("two-way decision declared with %d options", options)}
	}
	if len(reads) != 1 || reads[0] == nil {
		return DecisionBase{}, &domain.ConfigError{Node: id, Err: domain.ErrReadShape, Reason: fmt.Sprintf("expected exactly one read container, got %d", len(reads))}
	}
	return NewDecisionBase(id, options, reads...)
}
