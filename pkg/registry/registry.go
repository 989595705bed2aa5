package registry

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/graph"
	"github.com/mitchellh/mapstructure"
)

// Simulation is a built, runnable chemistry.
type Simulation struct {
	Graph *graph.Graph
	// Start is the id of the node the walk begins at.
	Start string
	// Outputs are the containers worth reporting after a run.
	Outputs []container.Container
}

// Factory builds a fresh Simulation from free-form parameters. rng is the
// source the chemistry's own random nodes should draw from.
type Factory func(params map[string]any, rng *rand.Rand) (*Simulation, error)

// Chemistry is a registered factory with a short description.
type Chemistry struct {
	Name        string
	Description string
	Factory     Factory
}

// Registry manages the available chemistries.
type Registry struct {
	mu          sync.RWMutex
	chemistries map[string]Chemistry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		chemistries: make(map[string]Chemistry),
	}
}

// Register adds a chemistry to the registry.
// If a chemistry with the same name exists, it is overwritten.
func (r *Registry) Register(name, description string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chemistries[name] = Chemistry{Name: name, Description: description, Factory: fn}
}

// Build looks up a chemistry by name and builds it.
func (r *Registry) Build(name string, params map[string]any, rng *rand.Rand) (*Simulation, error) {
	r.mu.RLock()
	c, ok := r.chemistries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("chemistry not found: %s", name)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	sim, err := c.Factory(params, rng)
	if err != nil {
		return nil, fmt.Errorf("build chemistry %s: %w", name, err)
	}
	return sim, nil
}

// List returns the registered chemistries sorted by name.
func (r *Registry) List() []Chemistry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Chemistry, 0, len(r.chemistries))
	for _, c := range r.chemistries {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DecodeParams decodes free-form parameters into a struct tagged with
// `mapstructure`. Numeric strings and floats from config files are accepted
// for integer fields. Unknown keys are an error.
func DecodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("invalid chemistry params: %w", err)
	}
	return nil
}
