package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/metachem/pkg/domain"
)

// LoggingHooks logs node visits at DEBUG and run completion at INFO.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_enter",
				"run_id", e.RunID,
				"node_id", e.NodeID,
				"role", e.Role.String(),
				"step", e.Step,
			)
		},
		OnNodeLeave: func(ctx context.Context, e *domain.NodeEvent) {
			attrs := []any{"run_id", e.RunID, "node_id", e.NodeID, "step", e.Step}
			if e.Role == domain.RoleDecision {
				attrs = append(attrs, "choice", e.Choice)
			} else {
				attrs = append(attrs, "skipped", e.Skipped)
			}
			logger.DebugContext(ctx, "node_leave", attrs...)
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			if e.Err != nil {
				logger.ErrorContext(ctx, "run_end", "run_id", e.RunID, "error", e.Err)
				return
			}
			logger.InfoContext(ctx, "run_end",
				"run_id", e.RunID,
				"steps", e.Result.Steps,
				"terminated", e.Result.Terminated,
			)
		},
	}
}

// Combine returns hooks that call every non-nil hook of each set in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var enter, leave []func(context.Context, *domain.NodeEvent)
	var end []func(context.Context, *domain.RunEvent)
	for _, s := range sets {
		if s.OnNodeEnter != nil {
			enter = append(enter, s.OnNodeEnter)
		}
		if s.OnNodeLeave != nil {
			leave = append(leave, s.OnNodeLeave)
		}
		if s.OnRunEnd != nil {
			end = append(end, s.OnRunEnd)
		}
	}

	var out domain.LifecycleHooks
	if len(enter) > 0 {
		out.OnNodeEnter = func(ctx context.Context, e *domain.NodeEvent) {
			for _, fn := range enter {
				fn(ctx, e)
			}
		}
	}
	if len(leave) > 0 {
		out.OnNodeLeave = func(ctx context.Context, e *domain.NodeEvent) {
			for _, fn := range leave {
				fn(ctx, e)
			}
		}
	}
	if len(end) > 0 {
		out.OnRunEnd = func(ctx context.Context, e *domain.RunEvent) {
			for _, fn := range end {
				fn(ctx, e)
			}
		}
	}
	return out
}
