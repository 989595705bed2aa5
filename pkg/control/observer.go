package control

import (
	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/domain"
)

// ClockObserver adds a fixed increment to an integer variable held in an
// Environment container.
type ClockObserver struct {
	ObserverBase
	settings

	clock     *Variable
	increment int
	value     int
}

// NewClockObserver creates a clock over env. env must hold one integer.
func NewClockObserver(id string, env container.Container, increment int, opts ...Option) (*ClockObserver, error) {
	if env == nil {
		return nil, &domain.ConfigError{Node: id, Err: domain.ErrReadShape, Reason: "clock needs an environment container"}
	}
	base, err := NewObserverBase(id, Access{Reads: []container.Container{env}, MutatesIn: []container.Container{env}, MutatesOut: []container.Container{env}})
	if err != nil {
		return nil, err
	}
	return &ClockObserver{ObserverBase: base, settings: newSettings(opts), clock: NewVariable(env), increment: increment}, nil
}

func (o *ClockObserver) Read() error {
	n, err := o.clock.LoadInt()
	if err != nil {
		return err
	}
	o.value = n
	return nil
}

func (o *ClockObserver) Pull() error { return o.clock.Take() }

func (o *ClockObserver) Process() error {
	o.value += o.increment
	return nil
}

func (o *ClockObserver) Push() error { return o.clock.Put(o.value) }

// ClockResetObserver sets an integer variable back to a fixed value.
type ClockResetObserver struct {
	ObserverBase
	settings

	clock *Variable
	reset int
}

// NewClockResetObserver creates a reset node over env.
func NewClockResetObserver(id string, env container.Container, reset int, opts ...Option) (*ClockResetObserver, error) {
	if env == nil {
		return nil, &domain.ConfigError{Node: id, Err: domain.ErrReadShape, Reason: "clock needs an environment container"}
	}
	base, err := NewObserverBase(id, Access{Reads: []container.Container{env}, MutatesIn: []container.Container{env}, MutatesOut: []container.Container{env}})
	if err != nil {
		return nil, err
	}
	return &ClockResetObserver{ObserverBase: base, settings: newSettings(opts), clock: NewVariable(env), reset: reset}, nil
}

func (o *ClockResetObserver) Read() error {
	_, err := o.clock.Load()
	return err
}

func (o *ClockResetObserver) Pull() error { return o.clock.Take() }

func (o *ClockResetObserver) Process() error { return nil }

func (o *ClockResetObserver) Push() error { return o.clock.Put(o.reset) }
