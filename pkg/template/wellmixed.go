package template

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/control"
	"github.com/aretw0/metachem/pkg/domain"
	"github.com/aretw0/metachem/pkg/graph"
	"github.com/aretw0/metachem/pkg/registry"
)

// Node ids of the well-mixed tank.
const (
	NodeLoad       = "sload"
	NodeGeneration = "otime"
	NodeReset      = "oreset"
	NodeSample     = "ssample"
	NodeReturn     = "sreturn"
	NodeReaction   = "oreact"
	NodeTimings    = "dtimings"
	NodeNextGen    = "sgeneration"
	NodeLog        = "olog"
	NodeFinish     = "sfinish"
	NodeEnd        = "tend"
)

// Container names of the well-mixed tank.
const (
	ContainerTank       = "tank"
	ContainerProducts   = "products"
	ContainerComposite  = "composite"
	ContainerGeneration = "generation"
	ContainerReactions  = "reactions"
)

// Loader generates the initial population of the tank.
type Loader func(rng *rand.Rand, n int) []any

// WellMixedConfig sizes a well-mixed tank.
type WellMixedConfig struct {
	SampleSize  int `mapstructure:"sample_size"`
	Reactions   int `mapstructure:"reactions"`
	Generations int `mapstructure:"generations"`
	TankSize    int `mapstructure:"tank_size"`
}

// DefaultWellMixedConfig returns the sizes used when none are given.
func DefaultWellMixedConfig() WellMixedConfig {
	return WellMixedConfig{SampleSize: 2, Reactions: 100, Generations: 10, TankSize: 1000}
}

func (c WellMixedConfig) validate() error {
	switch {
	case c.SampleSize < 1:
		return fmt.Errorf("sample_size must be positive, got %d", c.SampleSize)
	case c.Reactions < 1:
		return fmt.Errorf("reactions must be positive, got %d", c.Reactions)
	case c.Generations < 1:
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	case c.TankSize < 0:
		return fmt.Errorf("tank_size must not be negative, got %d", c.TankSize)
	}
	return nil
}

// WellMixedOption configures a WellMixedTank.
type WellMixedOption func(*wellMixedSettings)

type wellMixedSettings struct {
	logger *slog.Logger
	rng    *rand.Rand
}

// WithLogger sets the logger the progress observer reports to.
func WithLogger(logger *slog.Logger) WellMixedOption {
	return func(s *wellMixedSettings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRand sets the source used by the loader and the reaction sampler.
func WithRand(r *rand.Rand) WellMixedOption {
	return func(s *wellMixedSettings) {
		s.rng = r
	}
}

// WellMixedTank is a built reactor around one bond subgraph.
type WellMixedTank struct {
	Graph *graph.Graph

	Tank       *container.List
	Products   *container.List
	Composite  *container.List
	Generation *container.Stack
	Reactions  *container.Stack
}

// NewWellMixedTank wires bond into a well-mixed reactor. The bond must have
// exactly one Link container, of kind Sample; it is bound to the composite
// sample holding the reacting particles.
func NewWellMixedTank(name string, bond *graph.Subgraph, load Loader, cfg WellMixedConfig, opts ...WellMixedOption) (*WellMixedTank, error) {
	if err := cfg.validate(); err != nil {
		return nil, &domain.ConfigError{Err: domain.ErrReadShape, Reason: err.Error()}
	}
	if bond == nil || load == nil {
		return nil, &domain.ConfigError{Err: domain.ErrUnknownVertex, Reason: "well-mixed tank needs a bond subgraph and a loader"}
	}
	links := bond.Links()
	if len(links) != 1 {
		return nil, &domain.ConfigError{Err: domain.ErrReadShape, Reason: fmt.Sprintf("bond '%s' must have exactly one link container, has %d", bond.Name(), len(links))}
	}

	s := wellMixedSettings{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	w := &WellMixedTank{
		Tank:       container.NewList(ContainerTank, domain.KindTank),
		Products:   container.NewList(ContainerProducts, domain.KindTank),
		Composite:  container.NewList(ContainerComposite, domain.KindSample),
		Generation: container.NewStack(ContainerGeneration, domain.KindEnvironment),
		Reactions:  container.NewStack(ContainerReactions, domain.KindEnvironment),
	}
	if err := w.Generation.Add(0); err != nil {
		return nil, err
	}
	if err := w.Reactions.Add(0); err != nil {
		return nil, err
	}
	if err := links[0].Bind(w.Composite); err != nil {
		return nil, err
	}

	b := graph.NewBuilder(name)
	if err := b.AddContainer(w.Tank, w.Products, w.Composite, w.Generation, w.Reactions); err != nil {
		return nil, err
	}
	if err := b.Embed(bond); err != nil {
		return nil, err
	}

	nodes, err := w.nodes(load, cfg, s)
	if err != nil {
		return nil, err
	}
	if err := b.AddNode(nodes...); err != nil {
		return nil, err
	}

	chains := [][]string{
		{NodeLoad, NodeGeneration, NodeReset, NodeSample, bond.Entry()},
		{bond.Exit(), NodeReturn, NodeReaction, NodeTimings},
		// dtimings options, in order: react again, next generation, finish.
		{NodeTimings, NodeSample},
		{NodeTimings, NodeNextGen, NodeLog, NodeGeneration},
		{NodeTimings, NodeFinish, NodeEnd},
	}
	for _, chain := range chains {
		if err := b.Chain(chain...); err != nil {
			return nil, err
		}
	}

	w.Graph, err = b.Build()
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (w *WellMixedTank) nodes(load Loader, cfg WellMixedConfig, s wellMixedSettings) ([]control.Node, error) {
	var l nodeList
	products := []container.Container{w.Products}

	l.add(NewLoadSampler(NodeLoad, w.Tank, load, cfg.TankSize, s.rng))
	l.add(control.NewClockObserver(NodeGeneration, w.Generation, 1))
	l.add(control.NewClockResetObserver(NodeReset, w.Reactions, 0))
	l.add(control.NewSimpleSampler(NodeSample, w.Tank, w.Composite, cfg.SampleSize, control.WithRand(s.rng)))
	l.add(control.NewBruteSampler(NodeReturn, []container.Container{w.Composite}, w.Products))
	l.add(control.NewClockObserver(NodeReaction, w.Reactions, 1))
	l.add(NewTimingsDecision(NodeTimings, w.Reactions, w.Generation, w.Tank, cfg))
	l.add(control.NewBruteSampler(NodeNextGen, products, w.Tank))
	l.add(NewProgressObserver(NodeLog, w.Generation, w.Reactions, w.Tank, s.logger))
	l.add(control.NewBruteSampler(NodeFinish, products, w.Tank))
	l.add(control.NewTermination(NodeEnd))
	return l.nodes, l.err
}

// nodeList collects constructed nodes and keeps the first error.
type nodeList struct {
	nodes []control.Node
	err   error
}

func (l *nodeList) add(n control.Node, err error) {
	if l.err != nil {
		return
	}
	if err != nil {
		l.err = err
		return
	}
	l.nodes = append(l.nodes, n)
}

// Simulation exposes the reactor as a runnable registry simulation.
func (w *WellMixedTank) Simulation() *registry.Simulation {
	return &registry.Simulation{
		Graph:   w.Graph,
		Start:   NodeLoad,
		Outputs: []container.Container{w.Tank, w.Generation, w.Reactions},
	}
}
