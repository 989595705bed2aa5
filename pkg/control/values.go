package control

import (
	"fmt"
	"math"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/domain"
)

// AsInt converts a numeric container value to int. Floats must be integral.
func AsInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	default:
		return 0, fmt.Errorf("%w: want integer, got %T", domain.ErrValueType, v)
	}
}

func floatToInt(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v is not an integer", domain.ErrValueType, f)
	}
	return int(f), nil
}

// Variable is a single value held in an Environment container: the first
// item of a sequence container, or the lowest key of a keyed one. Sequence
// containers must hold only the variable; keyed containers may hold others.
type Variable struct {
	c     container.Container
	key   int
	keyed bool
	value any
}

// NewVariable binds a variable to c.
func NewVariable(c container.Container) *Variable {
	return &Variable{c: c}
}

// Load reads the current value without removing it.
func (v *Variable) Load() (any, error) {
	snap, err := v.c.Read()
	if err != nil {
		return nil, err
	}
	first, err := snap.First()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", v.c.Name(), err)
	}
	v.keyed = snap.Keyed
	if snap.Keyed {
		v.key = snap.Keys()[0]
	}
	v.value = first
	return first, nil
}

// LoadInt is Load followed by AsInt.
func (v *Variable) LoadInt() (int, error) {
	raw, err := v.Load()
	if err != nil {
		return 0, err
	}
	n, err := AsInt(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", v.c.Name(), err)
	}
	return n, nil
}

// Take removes the value loaded by the last Load.
func (v *Variable) Take() error {
	if v.keyed {
		return v.c.Remove(v.key)
	}
	if _, isBatch := v.value.([]any); isBatch {
		return v.c.Remove(container.Batch{v.value})
	}
	return v.c.Remove(v.value)
}

// Put stores value back. Keyed containers keep it under the taken key;
// sequence containers re-add it through Add, so in a multi-value list it
// lands at the back and the next Load reads a different item.
func (v *Variable) Put(value any) error {
	if v.keyed {
		return v.c.Add(map[int]any{v.key: value})
	}
	if _, isBatch := value.([]any); isBatch {
		value = container.Batch{value}
	}
	return v.c.Add(value)
}

// Value returns the last loaded value.
func (v *Variable) Value() any {
	return v.value
}

// haul is the unit of work of a sampler: what to remove from the source and
// what to push to the destination.
type haul struct {
	remove any
	push   container.Batch
}

func (h haul) size() int { return len(h.push) }

// haulOf selects the given positions of a snapshot. Keyed snapshots remove by
// key and push the values.
func haulOf(snap container.Snapshot, positions []int) haul {
	if snap.Keyed {
		keys := snap.Keys()
		selected := make([]int, 0, len(positions))
		push := make(container.Batch, 0, len(positions))
		for _, p := range positions {
			selected = append(selected, keys[p])
			push = append(push, snap.Entries[keys[p]])
		}
		return haul{remove: selected, push: push}
	}
	push := make(container.Batch, 0, len(positions))
	for _, p := range positions {
		push = append(push, snap.Items[p])
	}
	return haul{remove: push, push: push}
}

func firstN(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
