package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter EventType = "node_enter"
	EventNodeLeave EventType = "node_leave"
	EventRunEnd    EventType = "run_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// NodeEvent represents entry into or exit from a control node.
type NodeEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	Role   Role   `json:"role"`
	Step   int    `json:"step"`

	// Skipped is set on leave when the stochastic gate skipped pull/process/push.
	Skipped bool `json:"skipped,omitempty"`
	// Choice is the option taken by a decision (leave events only, -1 otherwise).
	Choice int `json:"choice"`
}

// RunEvent is emitted once when a run finishes, successfully or not.
type RunEvent struct {
	EventBase
	Result *RunResult `json:"result"`
	Err    error      `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnNodeEnter func(context.Context, *NodeEvent)
	OnNodeLeave func(context.Context, *NodeEvent)
	OnRunEnd    func(context.Context, *RunEvent)
}
