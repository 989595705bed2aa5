package template

import (
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/control"
)

// LoadSampler fills a tank with a generated population. It is the start node
// of a reactor.
type LoadSampler struct {
	control.SamplerBase

	out   container.Container
	load  Loader
	size  int
	rng   *rand.Rand
	batch container.Batch
}

// NewLoadSampler creates a loader that adds size generated particles to out.
func NewLoadSampler(id string, out container.Container, load Loader, size int, rng *rand.Rand) (*LoadSampler, error) {
	base, err := control.NewSamplerBase(id, control.Access{MutatesOut: []container.Container{out}})
	if err != nil {
		return nil, err
	}
	return &LoadSampler{SamplerBase: base, out: out, load: load, size: size, rng: rng}, nil
}

func (s *LoadSampler) Pull() error {
	s.batch = container.Batch(s.load(s.rng, s.size))
	return nil
}

func (s *LoadSampler) Process() error { return nil }

func (s *LoadSampler) Push() error {
	if len(s.batch) == 0 {
		return nil
	}
	return s.out.Add(s.batch)
}

// TimingsDecision chooses between reacting again (0), starting the next
// generation (1) and finishing (2).
type TimingsDecision struct {
	control.DecisionBase

	reactions  *control.Variable
	generation *control.Variable
	tank       container.Container
	cfg        WellMixedConfig

	reacted, gen, tankSize int
}

// NewTimingsDecision creates the three-way decision of a well-mixed tank.
func NewTimingsDecision(id string, reactions, generation, tank container.Container, cfg WellMixedConfig) (*TimingsDecision, error) {
	base, err := control.NewDecisionBase(id, 3, reactions, generation, tank)
	if err != nil {
		return nil, err
	}
	return &TimingsDecision{
		DecisionBase: base,
		reactions:    control.NewVariable(reactions),
		generation:   control.NewVariable(generation),
		tank:         tank,
		cfg:          cfg,
	}, nil
}

func (d *TimingsDecision) Read() error {
	var err error
	if d.reacted, err = d.reactions.LoadInt(); err != nil {
		return err
	}
	if d.gen, err = d.generation.LoadInt(); err != nil {
		return err
	}
	snap, err := d.tank.Read()
	if err != nil {
		return err
	}
	d.tankSize = snap.Len()
	return nil
}

func (d *TimingsDecision) Process() (int, error) {
	switch {
	case d.reacted < d.cfg.Reactions && d.tankSize >= d.cfg.SampleSize:
		return 0, nil
	case d.gen < d.cfg.Generations:
		return 1, nil
	default:
		return 2, nil
	}
}

// ProgressObserver logs the reactor clocks once per generation.
type ProgressObserver struct {
	control.ObserverBase

	generation *control.Variable
	reactions  *control.Variable
	tank       container.Container
	logger     *slog.Logger

	gen, reacted, tankSize int
}

// NewProgressObserver creates a read-only observer reporting to logger.
func NewProgressObserver(id string, generation, reactions, tank container.Container, logger *slog.Logger) (*ProgressObserver, error) {
	base, err := control.NewObserverBase(id, control.Access{Reads: []container.Container{generation, reactions, tank}})
	if err != nil {
		return nil, err
	}
	return &ProgressObserver{
		ObserverBase: base,
		generation:   control.NewVariable(generation),
		reactions:    control.NewVariable(reactions),
		tank:         tank,
		logger:       logger,
	}, nil
}

func (o *ProgressObserver) Read() error {
	var err error
	if o.gen, err = o.generation.LoadInt(); err != nil {
		return err
	}
	if o.reacted, err = o.reactions.LoadInt(); err != nil {
		return err
	}
	snap, err := o.tank.Read()
	if err != nil {
		return err
	}
	o.tankSize = snap.Len()
	return nil
}

func (o *ProgressObserver) Process() error {
	o.logger.Info("generation complete", "generation", o.gen, "reactions", o.reacted, "tank_size", o.tankSize)
	return nil
}
