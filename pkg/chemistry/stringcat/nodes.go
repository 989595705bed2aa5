package stringcat

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/control"
	"github.com/aretw0/metachem/pkg/domain"
)

// doubles returns every index i where s[i] == s[i+1].
func doubles(s string) []int {
	var out []int
	for i := 0; i+1 < len(s); i++ {
		if s[i] == s[i+1] {
			out = append(out, i)
		}
	}
	return out
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: stringcat particle must be a string, got %T", domain.ErrValueType, v)
	}
	return s, nil
}

// DecompDecision routes to the split action (1) when the first string of the
// sample has a repeated letter, and to the concat action (0) otherwise.
type DecompDecision struct {
	control.DecisionBase

	sample container.Container
	first  string
}

// NewDecompDecision creates the bond's entry decision.
func NewDecompDecision(id string, sample container.Container) (*DecompDecision, error) {
	base, err := control.NewDecisionBase(id, 2, sample)
	if err != nil {
		return nil, err
	}
	return &DecompDecision{DecisionBase: base, sample: sample}, nil
}

func (d *DecompDecision) Read() error {
	d.first = ""
	snap, err := d.sample.Read()
	if err != nil {
		return err
	}
	if snap.Empty() {
		return nil
	}
	first, err := snap.First()
	if err != nil {
		return fmt.Errorf("%s: %w", d.sample.Name(), err)
	}
	d.first, err = asString(first)
	return err
}

func (d *DecompDecision) Process() (int, error) {
	if len(doubles(d.first)) > 0 {
		return 1, nil
	}
	return 0, nil
}

// ConcatAction joins every string of the sample into one, in sample order.
type ConcatAction struct {
	control.ActionBase

	sample container.Container
	parts  []any
	joined string
}

// NewConcatAction creates the joining action.
func NewConcatAction(id string, sample container.Container) (*ConcatAction, error) {
	base, err := control.NewActionBase(id, control.Access{
		Reads:      []container.Container{sample},
		MutatesIn:  []container.Container{sample},
		MutatesOut: []container.Container{sample},
	})
	if err != nil {
		return nil, err
	}
	return &ConcatAction{ActionBase: base, sample: sample}, nil
}

func (a *ConcatAction) Read() error {
	snap, err := a.sample.Read()
	if err != nil {
		return err
	}
	a.parts = snap.Values()
	return nil
}

func (a *ConcatAction) Pull() error {
	if len(a.parts) == 0 {
		return nil
	}
	return a.sample.Remove(container.Batch(a.parts))
}

func (a *ConcatAction) Process() error {
	var sb strings.Builder
	for _, p := range a.parts {
		s, err := asString(p)
		if err != nil {
			return err
		}
		sb.WriteString(s)
	}
	a.joined = sb.String()
	return nil
}

func (a *ConcatAction) Push() error {
	if len(a.parts) == 0 {
		return nil
	}
	return a.sample.Add(a.joined)
}

// SplitAction cuts the first string of the sample between a randomly chosen
// pair of repeated letters.
type SplitAction struct {
	control.ActionBase

	sample container.Container
	rng    *rand.Rand
	target string
	pieces container.Batch
}

// NewSplitAction creates the splitting action. A nil rng uses the
// package-level source.
func NewSplitAction(id string, sample container.Container, rng *rand.Rand) (*SplitAction, error) {
	base, err := control.NewActionBase(id, control.Access{
		Reads:      []container.Container{sample},
		MutatesIn:  []container.Container{sample},
		MutatesOut: []container.Container{sample},
	})
	if err != nil {
		return nil, err
	}
	return &SplitAction{ActionBase: base, sample: sample, rng: rng}, nil
}

func (a *SplitAction) Read() error {
	snap, err := a.sample.Read()
	if err != nil {
		return err
	}
	first, err := snap.First()
	if err != nil {
		return fmt.Errorf("%s: %w", a.sample.Name(), err)
	}
	a.target, err = asString(first)
	return err
}

func (a *SplitAction) Pull() error {
	return a.sample.Remove(a.target)
}

func (a *SplitAction) Process() error {
	idx := doubles(a.target)
	if len(idx) == 0 {
		return fmt.Errorf("%w: %q has no repeated letter to split at", domain.ErrValueType, a.target)
	}
	var pick int
	if a.rng != nil {
		pick = idx[a.rng.IntN(len(idx))]
	} else {
		pick = idx[rand.IntN(len(idx))]
	}
	a.pieces = container.Batch{a.target[:pick+1], a.target[pick+1:]}
	return nil
}

func (a *SplitAction) Push() error {
	return a.sample.Add(a.pieces)
}
