package stringcat

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/control"
	"github.com/aretw0/metachem/pkg/domain"
	"github.com/aretw0/metachem/pkg/graph"
	"github.com/aretw0/metachem/pkg/registry"
	"github.com/aretw0/metachem/pkg/template"
)

// Registered chemistry names.
const (
	Name     = "stringcat"
	GridName = "stringcat-grid"
)

// Bond node ids.
const (
	NodeDecomp = "ddecomp"
	NodeConcat = "aconcat"
	NodeSplit  = "asplit"
	NodeNull   = "anull"
	LinkSample = "scc_sample"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Letters returns n single uppercase letters.
func Letters(rng *rand.Rand, n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = string(alphabet[rng.IntN(len(alphabet))])
	}
	return out
}

// NewBond builds the reaction subgraph: decomp decision, then concat (0) or
// split (1), both leaving through a null action. The sample is a Link to be
// bound by the host.
func NewBond(rng *rand.Rand) (*graph.Subgraph, error) {
	link := container.NewLink(LinkSample, domain.KindSample)

	decomp, err := NewDecompDecision(NodeDecomp, link)
	if err != nil {
		return nil, err
	}
	concat, err := NewConcatAction(NodeConcat, link)
	if err != nil {
		return nil, err
	}
	split, err := NewSplitAction(NodeSplit, link, rng)
	if err != nil {
		return nil, err
	}
	null, err := control.NewNullAction(NodeNull)
	if err != nil {
		return nil, err
	}

	b := graph.NewBuilder("scc-bond")
	if err := b.AddContainer(link); err != nil {
		return nil, err
	}
	if err := b.AddNode(decomp, concat, split, null); err != nil {
		return nil, err
	}
	for _, e := range [][2]string{
		{NodeDecomp, NodeConcat},
		{NodeDecomp, NodeSplit},
		{NodeConcat, NodeNull},
		{NodeSplit, NodeNull},
	} {
		if err := b.Connect(e[0], e[1]); err != nil {
			return nil, err
		}
	}
	return b.Subgraph(NodeDecomp, NodeNull)
}

// NewWellMixed builds the stringcat chemistry in a well-mixed tank.
func NewWellMixed(cfg template.WellMixedConfig, rng *rand.Rand, logger *slog.Logger) (*template.WellMixedTank, error) {
	bond, err := NewBond(rng)
	if err != nil {
		return nil, err
	}
	return template.NewWellMixedTank(Name, bond, Letters, cfg, template.WithRand(rng), template.WithLogger(logger))
}

// GridConfig sizes the grid layout.
type GridConfig struct {
	Rows         int `mapstructure:"rows"`
	Cols         int `mapstructure:"cols"`
	PerCell      int `mapstructure:"per_cell"`
	TransferSize int `mapstructure:"transfer_size"`
	Generations  int `mapstructure:"generations"`
}

// DefaultGridConfig returns the grid sizes used when none are given.
func DefaultGridConfig() GridConfig {
	return GridConfig{Rows: 4, Cols: 4, PerCell: 50, TransferSize: 5, Generations: 100}
}

// Grid is the built grid layout.
type Grid struct {
	Graph *graph.Graph
	Tanks *container.Grid
	Time  *container.List
}

// Grid node ids.
const (
	NodeGridLoad  = "sload"
	NodeTransfer  = "stransfer"
	NodeGridClock = "otime"
	NodeGridCheck = "dgen"
	NodeGridEnd   = "tend"
)

// NewGrid builds the grid layout: load, then per generation one transfer
// round, until the generation counter reaches cfg.Generations.
func NewGrid(cfg GridConfig, rng *rand.Rand) (*Grid, error) {
	if cfg.PerCell < 0 || cfg.TransferSize < 0 || cfg.Generations < 1 {
		return nil, &domain.ConfigError{Err: domain.ErrReadShape, Reason: fmt.Sprintf("invalid grid config %+v", cfg)}
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	tanks, err := container.NewGrid("tanks", domain.KindTank, cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, err
	}
	clock := container.NewList("time", domain.KindEnvironment)
	if err := clock.Add(0); err != nil {
		return nil, err
	}

	load, err := NewGridLoadSampler(NodeGridLoad, tanks, cfg.PerCell, rng)
	if err != nil {
		return nil, err
	}
	transfer, err := NewTransferSampler(NodeTransfer, tanks, cfg.TransferSize, rng)
	if err != nil {
		return nil, err
	}
	tick, err := control.NewClockObserver(NodeGridClock, clock, 1)
	if err != nil {
		return nil, err
	}
	check, err := control.NewCounterDecision(NodeGridCheck, 2, cfg.Generations, clock)
	if err != nil {
		return nil, err
	}
	end, err := control.NewTermination(NodeGridEnd)
	if err != nil {
		return nil, err
	}

	b := graph.NewBuilder(GridName)
	if err := b.AddContainer(tanks, clock); err != nil {
		return nil, err
	}
	if err := b.AddNode(load, transfer, tick, check, end); err != nil {
		return nil, err
	}
	if err := b.Chain(NodeGridLoad, NodeTransfer, NodeGridClock, NodeGridCheck, NodeTransfer); err != nil {
		return nil, err
	}
	if err := b.Connect(NodeGridCheck, NodeGridEnd); err != nil {
		return nil, err
	}
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &Grid{Graph: g, Tanks: tanks, Time: clock}, nil
}

// Register adds the stringcat chemistries to r. Progress of the well-mixed
// layout is reported to logger.
func Register(r *registry.Registry, logger *slog.Logger) {
	r.Register(Name, "string concatenation in a well-mixed tank",
		func(params map[string]any, rng *rand.Rand) (*registry.Simulation, error) {
			cfg := template.DefaultWellMixedConfig()
			if err := registry.DecodeParams(params, &cfg); err != nil {
				return nil, err
			}
			w, err := NewWellMixed(cfg, rng, logger)
			if err != nil {
				return nil, err
			}
			return w.Simulation(), nil
		})

	r.Register(GridName, "string transfers across a grid of tanks",
		func(params map[string]any, rng *rand.Rand) (*registry.Simulation, error) {
			cfg := DefaultGridConfig()
			if err := registry.DecodeParams(params, &cfg); err != nil {
				return nil, err
			}
			g, err := NewGrid(cfg, rng)
			if err != nil {
				return nil, err
			}
			return &registry.Simulation{
				Graph:   g.Graph,
				Start:   NodeGridLoad,
				Outputs: []container.Container{g.Tanks, g.Time},
			}, nil
		})
}
