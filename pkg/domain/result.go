package domain

import "time"

// RunResult summarises one traversal of a graph.
type RunResult struct {
	RunID string

	// Steps counts every pointer move, decisions included.
	Steps int
	// Transitions counts lifecycle executions of non-decision nodes, skipped or not.
	Transitions int
	// Skipped counts transitions in which the stochastic gate skipped the mutation.
	Skipped int
	// Decisions counts decision evaluations.
	Decisions int

	// Terminated is true when the walk reached a Termination node.
	Terminated bool
	// LastNodeID is the node the pointer rested on when the run ended.
	LastNodeID string

	Duration time.Duration
}

// Exhausted reports whether the run stopped because the transition limit was reached.
func (r *RunResult) Exhausted() bool {
	return r != nil && !r.Terminated
}
