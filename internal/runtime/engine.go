package runtime

import (
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/metachem/pkg/domain"
)

// Engine walks a single pointer through a graph.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	rng    *rand.Rand
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRand sets the random source of the stochastic gate.
func WithRand(r *rand.Rand) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithSeed seeds the stochastic gate deterministically.
func WithSeed(seed uint64) EngineOption {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewEngine creates an engine. Without options it logs nowhere and draws
// from a randomly seeded source.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}
