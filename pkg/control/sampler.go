package control

import (
	"fmt"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/domain"
)

// BruteSampler moves the whole content of its input containers to out.
type BruteSampler struct {
	SamplerBase
	settings

	in    []container.Container
	out   container.Container
	hauls []haul
}

// NewBruteSampler creates a sampler that empties every container of in into out.
func NewBruteSampler(id string, in []container.Container, out container.Container, opts ...Option) (*BruteSampler, error) {
	base, err := NewSamplerBase(id, Access{MutatesIn: in, MutatesOut: []container.Container{out}})
	if err != nil {
		return nil, err
	}
	if len(in) == 0 {
		return nil, &domain.ConfigError{Node: id, Err: domain.ErrReadShape, Reason: "sampler needs at least one input"}
	}
	return &BruteSampler{SamplerBase: base, settings: newSettings(opts), in: in, out: out}, nil
}

func (s *BruteSampler) Read() error {
	s.hauls = s.hauls[:0]
	for _, c := range s.in {
		snap, err := c.Read()
		if err != nil {
			return err
		}
		s.hauls = append(s.hauls, haulOf(snap, firstN(snap.Len())))
	}
	return nil
}

func (s *BruteSampler) Pull() error {
	for i, c := range s.in {
		if s.hauls[i].size() == 0 {
			continue
		}
		if err := c.Remove(s.hauls[i].remove); err != nil {
			return err
		}
	}
	return nil
}

func (s *BruteSampler) Process() error { return nil }

func (s *BruteSampler) Push() error {
	var all container.Batch
	for _, h := range s.hauls {
		all = append(all, h.push...)
	}
	if len(all) == 0 {
		return nil
	}
	return s.out.Add(all)
}

// SimpleSampler moves a uniformly random subset of size k from in to out.
// When in holds fewer than k units, all of them are moved. Keyed inputs are
// sampled by key. Stacks only release their front and are rejected as input;
// use OrderedSampler for them.
type SimpleSampler struct {
	SamplerBase
	settings

	in   container.Container
	out  container.Container
	size int
	haul haul
}

// NewSimpleSampler creates a random sampler of the given size.
func NewSimpleSampler(id string, in, out container.Container, size int, opts ...Option) (*SimpleSampler, error) {
	base, err := NewSamplerBase(id, Access{MutatesIn: []container.Container{in}, MutatesOut: []container.Container{out}})
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, &domain.ConfigError{Node: id, Err: domain.ErrReadShape, Reason: fmt.Sprintf("negative sample size %d", size)}
	}
	if _, ok := in.(*container.Stack); ok {
		return nil, &domain.ConfigError{Node: id, Container: in.Name(), Err: domain.ErrOrdering, Reason: "random sampling needs arbitrary removal; use an ordered sampler"}
	}
	return &SimpleSampler{SamplerBase: base, settings: newSettings(opts), in: in, out: out, size: size}, nil
}

func (s *SimpleSampler) Read() error {
	snap, err := s.in.Read()
	if err != nil {
		return err
	}
	k := min(s.size, snap.Len())
	s.haul = haulOf(snap, s.perm(snap.Len())[:k])
	return nil
}

func (s *SimpleSampler) Pull() error {
	if s.haul.size() == 0 {
		return nil
	}
	return s.in.Remove(s.haul.remove)
}

func (s *SimpleSampler) Process() error { return nil }

func (s *SimpleSampler) Push() error {
	if s.haul.size() == 0 {
		return nil
	}
	return s.out.Add(s.haul.push)
}

// OrderedSampler moves the first n units of in to out, in container order.
type OrderedSampler struct {
	SamplerBase
	settings

	in   container.Container
	out  container.Container
	n    int
	haul haul
}

// NewOrderedSampler creates a sampler taking the first n units.
func NewOrderedSampler(id string, in, out container.Container, n int, opts ...Option) (*OrderedSampler, error) {
	base, err := NewSamplerBase(id, Access{MutatesIn: []container.Container{in}, MutatesOut: []container.Container{out}})
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &domain.ConfigError{Node: id, Err: domain.ErrReadShape, Reason: fmt.Sprintf("negative sample size %d", n)}
	}
	return &OrderedSampler{SamplerBase: base, settings: newSettings(opts), in: in, out: out, n: n}, nil
}

func (s *OrderedSampler) Read() error {
	snap, err := s.in.Read()
	if err != nil {
		return err
	}
	s.haul = haulOf(snap, firstN(min(s.n, snap.Len())))
	return nil
}

func (s *OrderedSampler) Pull() error {
	if s.haul.size() == 0 {
		return nil
	}
	return s.in.Remove(s.haul.remove)
}

func (s *OrderedSampler) Process() error { return nil }

func (s *OrderedSampler) Push() error {
	if s.haul.size() == 0 {
		return nil
	}
	return s.out.Add(s.haul.push)
}
