package stringcat

import (
	"math/rand/v2"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/control"
)

// TransferSampler pairs every cell of a grid with a random unpaired
// neighbour and swaps up to size strings between the two cells.
type TransferSampler struct {
	control.SamplerBase

	grid *container.Grid
	size int
	rng  *rand.Rand

	snap  container.Snapshot
	moves []transfer
}

type transfer struct {
	from, to int
	items    container.Batch
}

// NewTransferSampler creates the transfer sampler over grid.
func NewTransferSampler(id string, grid *container.Grid, size int, rng *rand.Rand) (*TransferSampler, error) {
	base, err := control.NewSamplerBase(id, control.Access{
		MutatesIn:  []container.Container{grid},
		MutatesOut: []container.Container{grid},
	})
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &TransferSampler{SamplerBase: base, grid: grid, size: size, rng: rng}, nil
}

func (s *TransferSampler) Read() error {
	var err error
	s.snap, err = s.grid.Read()
	return err
}

func (s *TransferSampler) Pull() error {
	pairs, err := s.pairs()
	if err != nil {
		return err
	}
	s.moves = s.moves[:0]
	removal := make(map[int]any)
	for _, p := range pairs {
		for _, dir := range [][2]int{{p[0], p[1]}, {p[1], p[0]}} {
			picked := s.pick(dir[0])
			if len(picked) == 0 {
				continue
			}
			s.moves = append(s.moves, transfer{from: dir[0], to: dir[1], items: picked})
			removal[dir[0]] = picked
		}
	}
	if len(removal) == 0 {
		return nil
	}
	return s.grid.Remove(removal)
}

func (s *TransferSampler) Process() error { return nil }

func (s *TransferSampler) Push() error {
	for _, m := range s.moves {
		if err := s.grid.AddAt(m.to, m.items); err != nil {
			return err
		}
	}
	return nil
}

// pairs matches cells with neighbours, visiting cells in random order.
func (s *TransferSampler) pairs() ([][2]int, error) {
	paired := make(map[int]bool)
	var out [][2]int
	for _, cell := range s.rng.Perm(s.grid.Size()) {
		if paired[cell] {
			continue
		}
		neighbours, err := s.grid.Neighbors(cell)
		if err != nil {
			return nil, err
		}
		var free []int
		for _, n := range neighbours {
			if !paired[n] {
				free = append(free, n)
			}
		}
		if len(free) == 0 {
			continue
		}
		other := free[s.rng.IntN(len(free))]
		paired[cell], paired[other] = true, true
		out = append(out, [2]int{cell, other})
	}
	return out, nil
}

func (s *TransferSampler) pick(cell int) container.Batch {
	items, _ := s.snap.Entries[cell].([]any)
	k := min(s.size, len(items))
	picked := make(container.Batch, 0, k)
	for _, i := range s.rng.Perm(len(items))[:k] {
		picked = append(picked, items[i])
	}
	return picked
}

// GridLoadSampler fills every cell of a grid with generated strings.
type GridLoadSampler struct {
	control.SamplerBase

	grid    *container.Grid
	perCell int
	rng     *rand.Rand
	cells   map[int]any
}

// NewGridLoadSampler creates a loader placing perCell letters in each cell.
func NewGridLoadSampler(id string, grid *container.Grid, perCell int, rng *rand.Rand) (*GridLoadSampler, error) {
	base, err := control.NewSamplerBase(id, control.Access{MutatesOut: []container.Container{grid}})
	if err != nil {
		return nil, err
	}
	return &GridLoadSampler{SamplerBase: base, grid: grid, perCell: perCell, rng: rng}, nil
}

func (s *GridLoadSampler) Pull() error {
	s.cells = make(map[int]any, s.grid.Size())
	for cell := 0; cell < s.grid.Size(); cell++ {
		s.cells[cell] = container.Batch(Letters(s.rng, s.perCell))
	}
	return nil
}

func (s *GridLoadSampler) Process() error { return nil }

func (s *GridLoadSampler) Push() error {
	return s.grid.Add(s.cells)
}
