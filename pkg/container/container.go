package container

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/aretw0/metachem/pkg/domain"
)

// Container is a store of particles or environment variables.
type Container interface {
	// Name returns the unique name of the container within its graph.
	Name() string
	// Kind returns the kind the container was tagged with at construction.
	Kind() domain.Kind
	// Read returns an isolated copy of the current contents.
	Read() (Snapshot, error)
	// Add inserts a single unit or a batch.
	Add(items any) error
	// Remove deletes the given unit or batch.
	Remove(items any) error
}

// Batch marks a group of items that must be added or removed together.
// A plain []any is treated the same way.
type Batch []any

// Snapshot is an isolated copy of a container's contents.
// Sequence containers fill Items; keyed containers fill Entries.
type Snapshot struct {
	Items   []any
	Entries map[int]any
	Keyed   bool
}

// Len returns the number of items or entries.
func (s Snapshot) Len() int {
	if s.Keyed {
		return len(s.Entries)
	}
	return len(s.Items)
}

// Empty reports whether the snapshot holds nothing. For grids, a grid whose
// cells are all empty counts as empty.
func (s Snapshot) Empty() bool {
	if !s.Keyed {
		return len(s.Items) == 0
	}
	for _, v := range s.Entries {
		if cell, ok := v.([]any); ok && len(cell) == 0 {
			continue
		}
		return false
	}
	return true
}

// Keys returns the entry keys in ascending order.
func (s Snapshot) Keys() []int {
	keys := make([]int, 0, len(s.Entries))
	for k := range s.Entries {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Values returns the items, or the entry values ordered by key.
func (s Snapshot) Values() []any {
	if !s.Keyed {
		return s.Items
	}
	values := make([]any, 0, len(s.Entries))
	for _, k := range s.Keys() {
		values = append(values, s.Entries[k])
	}
	return values
}

// First returns the first value in Values order.
func (s Snapshot) First() (any, error) {
	values := s.Values()
	if len(values) == 0 {
		return nil, domain.ErrEmpty
	}
	return values[0], nil
}

// Normalize turns the argument of Add or Remove into a list of units.
func Normalize(items any) []any {
	switch v := items.(type) {
	case nil:
		return nil
	case Batch:
		return append([]any(nil), v...)
	case []any:
		return append([]any(nil), v...)
	default:
		return []any{v}
	}
}

// Equal reports whether two particles are the same for removal purposes.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// base carries the name and kind tag shared by every container.
type base struct {
	name string
	kind domain.Kind
}

func newBase(name string, kind domain.Kind) base {
	return base{name: name, kind: kind}
}

func (b *base) Name() string      { return b.name }
func (b *base) Kind() domain.Kind { return b.kind }

// removeAll deletes every unit from list (first equal match each) and returns
// the new slice. The input slice is not modified.
func removeAll(list []any, units []any) ([]any, error) {
	out := append([]any(nil), list...)
	for _, u := range units {
		idx := indexOf(out, u)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %v", domain.ErrNotFound, u)
		}
		out = append(out[:idx], out[idx+1:]...)
	}
	return out, nil
}

func indexOf(list []any, item any) int {
	for i, v := range list {
		if Equal(v, item) {
			return i
		}
	}
	return -1
}

// deepCopy clones the slice and map structure of v. Leaf values are shared.
func deepCopy(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	case map[int]any:
		out := make(map[int]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}
