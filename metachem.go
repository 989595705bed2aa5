package metachem

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/metachem/internal/runtime"
	"github.com/aretw0/metachem/pkg/domain"
	"github.com/aretw0/metachem/pkg/graph"
)

// Engine is the high-level entry point for the MetaChem library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
}

// Option defines a functional option for configuring the Engine.
type Option func(*[]runtime.EngineOption)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *[]runtime.EngineOption) {
		*o = append(*o, runtime.WithLogger(logger))
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *[]runtime.EngineOption) {
		*o = append(*o, runtime.WithLifecycleHooks(hooks))
	}
}

// WithRand sets the source of the skip gate draws.
func WithRand(r *rand.Rand) Option {
	return func(o *[]runtime.EngineOption) {
		*o = append(*o, runtime.WithRand(r))
	}
}

// WithSeed makes the skip gate reproducible.
func WithSeed(seed uint64) Option {
	return func(o *[]runtime.EngineOption) {
		*o = append(*o, runtime.WithSeed(seed))
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	var rtOpts []runtime.EngineOption
	for _, opt := range opts {
		opt(&rtOpts)
	}
	return &Engine{runtime: runtime.NewEngine(rtOpts...)}
}

// Run walks g from start for at most limit steps; 0 means no limit. The
// containers of g hold the final state when Run returns.
func (e *Engine) Run(ctx context.Context, g *graph.Graph, start string, limit int) (*domain.RunResult, error) {
	return e.runtime.Run(ctx, g, start, limit)
}
