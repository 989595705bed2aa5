package runtime

import (
	"github.com/aretw0/metachem/pkg/control"
)

// Transition runs one visit of a non-decision node: Read, then Pull, Process
// and Push unless the stochastic gate skips the node. It reports whether the
// node was skipped and, on failure, the phase that failed.
func (e *Engine) Transition(n control.Lifecycle) (skipped bool, phase Phase, err error) {
	if err := n.Read(); err != nil {
		return false, PhaseRead, err
	}
	u := e.rng.Float64()
	if !(n.Check() < u) {
		return true, "", nil
	}
	if err := n.Pull(); err != nil {
		return false, PhasePull, err
	}
	if err := n.Process(); err != nil {
		return false, PhaseProcess, err
	}
	if err := n.Push(); err != nil {
		return false, PhasePush, err
	}
	return false, "", nil
}

// Decide runs one visit of a decision and returns the chosen option.
func (e *Engine) Decide(d control.Decider) (int, Phase, error) {
	if err := d.Read(); err != nil {
		return 0, PhaseRead, err
	}
	choice, err := d.Process()
	if err != nil {
		return 0, PhaseProcess, err
	}
	return choice, "", nil
}
