package container

import (
	"fmt"

	"github.com/aretw0/metachem/pkg/domain"
)

// Dictionary addresses content by an explicit integer key, such as a
// sub-population index, rather than by position.
//
// Writes to a missing key insert it. Removing a missing key fails with
// domain.ErrNotFound.
type Dictionary struct {
	base
	entries map[int]any
}

// NewDictionary creates an empty dictionary container of the given kind.
func NewDictionary(name string, kind domain.Kind) *Dictionary {
	return &Dictionary{base: newBase(name, kind), entries: make(map[int]any)}
}

func (d *Dictionary) Read() (Snapshot, error) {
	return Snapshot{Entries: deepCopy(d.entries).(map[int]any), Keyed: true}, nil
}

// Add merges a map[int]any into the dictionary, overwriting existing keys.
// Any other value is stored, unit by unit, under the next free key.
func (d *Dictionary) Add(items any) error {
	if m, ok := items.(map[int]any); ok {
		for k, v := range m {
			d.entries[k] = v
		}
		return nil
	}
	for _, unit := range Normalize(items) {
		d.entries[d.nextKey()] = unit
	}
	return nil
}

// Remove deletes the given keys. Keys may be passed as an int, []int, or a
// batch of ints.
func (d *Dictionary) Remove(items any) error {
	keys, err := asKeys(items)
	if err != nil {
		return fmt.Errorf("remove from %s: %w", d.name, err)
	}
	for _, k := range keys {
		if _, ok := d.entries[k]; !ok {
			return fmt.Errorf("remove from %s: %w: key %d", d.name, domain.ErrNotFound, k)
		}
	}
	for _, k := range keys {
		delete(d.entries, k)
	}
	return nil
}

// AddAt stores value under key, inserting the key if needed.
func (d *Dictionary) AddAt(key int, value any) error {
	d.entries[key] = value
	return nil
}

// RemoveAt deletes a single key.
func (d *Dictionary) RemoveAt(key int) error {
	return d.Remove(key)
}

// Replace swaps the whole content for a copy of entries.
func (d *Dictionary) Replace(entries map[int]any) {
	d.entries = make(map[int]any, len(entries))
	for k, v := range entries {
		d.entries[k] = v
	}
}

// Clear removes every entry.
func (d *Dictionary) Clear() {
	d.entries = make(map[int]any)
}

func (d *Dictionary) nextKey() int {
	next := len(d.entries)
	for {
		if _, taken := d.entries[next]; !taken {
			return next
		}
		next++
	}
}

func asKeys(items any) ([]int, error) {
	if ks, ok := items.([]int); ok {
		return ks, nil
	}
	units := Normalize(items)
	keys := make([]int, 0, len(units))
	for _, u := range units {
		k, ok := u.(int)
		if !ok {
			return nil, fmt.Errorf("%w: dictionary keys must be int, got %T", domain.ErrValueType, u)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
