package runtime

import (
	"fmt"

	"github.com/aretw0/metachem/pkg/domain"
)

// Phase names the lifecycle step in which a transition failed.
type Phase string

const (
	PhaseRead    Phase = "read"
	PhasePull    Phase = "pull"
	PhaseProcess Phase = "process"
	PhasePush    Phase = "push"
	PhaseRoute   Phase = "route"
)

// TransitionError reports a failure inside a node visit. It aborts the run.
type TransitionError struct {
	NodeID string
	Role   domain.Role
	Step   int
	Phase  Phase
	Err    error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("step %d: %s '%s' failed in %s: %v", e.Step, e.Role, e.NodeID, e.Phase, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
