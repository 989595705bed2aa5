package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/metachem/pkg/control"
	"github.com/aretw0/metachem/pkg/domain"
	"github.com/aretw0/metachem/pkg/graph"
	"github.com/google/uuid"
)

// Run walks g from start until a Termination node is reached or limit steps
// have been taken. A limit of 0 means no limit. Every node visit, decisions
// included, is one step. The context is checked after each step.
func (e *Engine) Run(ctx context.Context, g *graph.Graph, start string, limit int) (*domain.RunResult, error) {
	if g == nil {
		return nil, fmt.Errorf("run: nil graph")
	}
	if limit < 0 {
		return nil, fmt.Errorf("run: transition limit must be >= 0, got %d", limit)
	}
	pointer, ok := g.Node(start)
	if !ok {
		return nil, fmt.Errorf("run: start node '%s': %w", start, domain.ErrUnknownVertex)
	}

	result := &domain.RunResult{RunID: uuid.NewString()}
	logger := e.logger.With("graph", g.Name(), "run_id", result.RunID)
	for _, w := range g.Check(start) {
		logger.Warn("graph structure warning", "code", w.Code, "node_id", w.NodeID, "msg", w.Message)
	}
	logger.Info("run started", "start", start, "limit", limit)

	began := time.Now()
	err := e.walk(ctx, g, pointer, limit, result)
	result.Duration = time.Since(began)

	if err != nil {
		logger.Error("run aborted", "error", err, "steps", result.Steps, "node_id", result.LastNodeID)
	} else {
		logger.Info("run finished",
			"steps", result.Steps,
			"transitions", result.Transitions,
			"skipped", result.Skipped,
			"decisions", result.Decisions,
			"terminated", result.Terminated,
			"duration", result.Duration,
		)
	}

	if e.hooks.OnRunEnd != nil {
		e.hooks.OnRunEnd(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunEnd, RunID: result.RunID},
			Result:    result,
			Err:       err,
		})
	}
	return result, err
}

func (e *Engine) walk(ctx context.Context, g *graph.Graph, pointer control.Node, limit int, result *domain.RunResult) error {
	for limit == 0 || result.Steps < limit {
		result.LastNodeID = pointer.ID()
		if pointer.Role() == domain.RoleTermination {
			break
		}

		next, err := e.step(ctx, g, pointer, result)
		if err != nil {
			return err
		}
		pointer = next
		result.LastNodeID = pointer.ID()

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run cancelled after %d steps: %w", result.Steps, err)
		}
	}
	result.Terminated = pointer.Role() == domain.RoleTermination
	return nil
}

func (e *Engine) step(ctx context.Context, g *graph.Graph, n control.Node, result *domain.RunResult) (control.Node, error) {
	stepNo := result.Steps
	event := &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeEnter, RunID: result.RunID},
		NodeID:    n.ID(),
		Role:      n.Role(),
		Step:      stepNo,
		Choice:    -1,
	}
	if e.hooks.OnNodeEnter != nil {
		e.hooks.OnNodeEnter(ctx, event)
	}

	fail := func(phase Phase, err error) error {
		return &TransitionError{NodeID: n.ID(), Role: n.Role(), Step: stepNo, Phase: phase, Err: err}
	}

	var next control.Node
	switch node := n.(type) {
	case control.Decider:
		choice, phase, err := e.Decide(node)
		if err != nil {
			return nil, fail(phase, err)
		}
		result.Decisions++
		next, err = g.Successor(node.ID(), choice)
		if err != nil {
			return nil, fail(PhaseRoute, err)
		}
		event.Choice = choice
		e.logger.Debug("decision", "run_id", result.RunID, "step", stepNo, "node_id", node.ID(), "choice", choice, "next", next.ID())
	case control.Lifecycle:
		skipped, phase, err := e.Transition(node)
		if err != nil {
			return nil, fail(phase, err)
		}
		result.Transitions++
		if skipped {
			result.Skipped++
		}
		next, err = g.Successor(node.ID(), 0)
		if err != nil {
			return nil, fail(PhaseRoute, err)
		}
		event.Skipped = skipped
		e.logger.Debug("transition", "run_id", result.RunID, "step", stepNo, "node_id", node.ID(), "role", node.Role().String(), "skipped", skipped)
	default:
		return nil, fail(PhaseRoute, fmt.Errorf("%w: %s node has no lifecycle", domain.ErrIncompatibleRole, n.Role()))
	}
	result.Steps++

	if e.hooks.OnNodeLeave != nil {
		leave := *event
		leave.Timestamp = time.Now()
		leave.Type = domain.EventNodeLeave
		e.hooks.OnNodeLeave(ctx, &leave)
	}
	return next, nil
}
