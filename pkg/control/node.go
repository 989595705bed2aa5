package control

import (
	"fmt"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/domain"
)

// Node is a control vertex. It can only be implemented by embedding one of
// the role bases of this package.
type Node interface {
	ID() string
	Role() domain.Role
	Access() Access
	sealed()
}

// Lifecycle is implemented by Samplers, Observers and Actions.
type Lifecycle interface {
	Node
	// Read observes the containers the node depends on.
	Read() error
	// Check returns the skip threshold. The node runs when Check() < u.
	Check() float64
	// Pull removes the content to work on from its mutate-in containers.
	Pull() error
	// Process transforms the pulled content.
	Process() error
	// Push writes the results to its mutate-out containers.
	Push() error
}

// Decider is implemented by Decision nodes.
type Decider interface {
	Node
	Read() error
	// Process returns the 0-based index of the successor to follow.
	Process() (int, error)
	// Options is the number of successors the decision routes between.
	Options() int
}

// Access lists the containers a node touches, by mode.
type Access struct {
	Reads      []container.Container
	MutatesIn  []container.Container
	MutatesOut []container.Container
}

// Each calls fn for every container and its mode, reads first.
func (a Access) Each(fn func(domain.AccessMode, container.Container) error) error {
	for _, c := range a.Reads {
		if err := fn(domain.AccessRead, c); err != nil {
			return err
		}
	}
	for _, c := range a.MutatesIn {
		if err := fn(domain.AccessMutateIn, c); err != nil {
			return err
		}
	}
	for _, c := range a.MutatesOut {
		if err := fn(domain.AccessMutateOut, c); err != nil {
			return err
		}
	}
	return nil
}

// Empty reports whether the node touches no container at all.
func (a Access) Empty() bool {
	return len(a.Reads) == 0 && len(a.MutatesIn) == 0 && len(a.MutatesOut) == 0
}

type nodeBase struct {
	id     string
	role   domain.Role
	access Access
}

func newNodeBase(id string, role domain.Role, access Access) (nodeBase, error) {
	if id == "" {
		return nodeBase{}, &domain.ConfigError{Err: domain.ErrEmptyID, Reason: role.String() + " declared without id"}
	}
	err := access.Each(func(mode domain.AccessMode, c container.Container) error {
		if c == nil {
			return &domain.ConfigError{Node: id, Err: domain.ErrUnknownVertex, Reason: fmt.Sprintf("nil %s container", mode)}
		}
		if err := domain.CheckAccess(role, c.Kind(), mode); err != nil {
			return &domain.ConfigError{Node: id, Container: c.Name(), Err: domain.ErrIncompatibleRole, Reason: err.Error()}
		}
		return nil
	})
	if err != nil {
		return nodeBase{}, err
	}
	return nodeBase{id: id, role: role, access: access}, nil
}

func (b *nodeBase) ID() string        { return b.id }
func (b *nodeBase) Role() domain.Role { return b.role }
func (b *nodeBase) Access() Access    { return b.access }
func (b *nodeBase) sealed()           {}

// lifecycleDefaults supplies the optional lifecycle steps. Concrete nodes
// override what they need and always provide Process.
type lifecycleDefaults struct{}

func (lifecycleDefaults) Read() error    { return nil }
func (lifecycleDefaults) Check() float64 { return 0 }
func (lifecycleDefaults) Pull() error    { return nil }
func (lifecycleDefaults) Push() error    { return nil }

// SamplerBase is embedded by nodes that move particles between Tank and
// Sample containers.
type SamplerBase struct {
	nodeBase
	lifecycleDefaults
}

// NewSamplerBase validates access for the sampler role.
func NewSamplerBase(id string, access Access) (SamplerBase, error) {
	b, err := newNodeBase(id, domain.RoleSampler, access)
	return SamplerBase{nodeBase: b}, err
}

// ObserverBase is embedded by nodes that update Environment containers.
type ObserverBase struct {
	nodeBase
	lifecycleDefaults
}

// NewObserverBase validates access for the observer role.
func NewObserverBase(id string, access Access) (ObserverBase, error) {
	b, err := newNodeBase(id, domain.RoleObserver, access)
	return ObserverBase{nodeBase: b}, err
}

// ActionBase is embedded by nodes that transform particles inside Sample
// containers. Conservation of particles is the action's own responsibility.
type ActionBase struct {
	nodeBase
	lifecycleDefaults
}

// NewActionBase validates access for the action role.
func NewActionBase(id string, access Access) (ActionBase, error) {
	b, err := newNodeBase(id, domain.RoleAction, access)
	return ActionBase{nodeBase: b}, err
}

// DecisionBase is embedded by branching nodes. A decision reads at least one
// container and never mutates.
type DecisionBase struct {
	nodeBase
	options int
}

// NewDecisionBase validates access for the decision role.
func NewDecisionBase(id string, options int, reads ...container.Container) (DecisionBase, error) {
	b, err := newNodeBase(id, domain.RoleDecision, Access{Reads: reads})
	if err != nil {
		return DecisionBase{}, err
	}
	if len(reads) == 0 {
		return DecisionBase{}, &domain.ConfigError{Node: id, Err: domain.ErrReadShape, Reason: "decision must read at least one container"}
	}
	if options < 1 {
		return DecisionBase{}, &domain.ConfigError{Node: id, Err: domain.ErrOptionCount, Reason: fmt.Sprintf("got %d", options)}
	}
	return DecisionBase{nodeBase: b, options: options}, nil
}

func (d *DecisionBase) Options() int { return d.options }

// Read is a no-op by default.
func (d *DecisionBase) Read() error { return nil }

// Termination ends a walk. It has no successors and touches no container.
type Termination struct {
	nodeBase
}

// NewTermination creates a termination node.
func NewTermination(id string) (*Termination, error) {
	b, err := newNodeBase(id, domain.RoleTermination, Access{})
	if err != nil {
		return nil, err
	}
	return &Termination{nodeBase: b}, nil
}

var (
	_ Lifecycle = (*BruteSampler)(nil)
	_ Lifecycle = (*SimpleSampler)(nil)
	_ Lifecycle = (*OrderedSampler)(nil)
	_ Lifecycle = (*ClockObserver)(nil)
	_ Lifecycle = (*ClockResetObserver)(nil)
	_ Lifecycle = (*NullAction)(nil)
	_ Decider   = (*CounterDecision)(nil)
	_ Decider   = (*EmptyDecision)(nil)
	_ Node      = (*Termination)(nil)
)
