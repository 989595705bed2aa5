package container

import (
	"fmt"

	"github.com/aretw0/metachem/pkg/domain"
)

// Grid is a dictionary of rows×cols cells addressed in row-major order.
// Each cell holds a list of particles. Cells always exist; writes outside the
// grid fail with domain.ErrOutOfRange.
type Grid struct {
	base
	rows, cols int
	cells      map[int][]any
}

// NewGrid creates a grid container with every cell empty.
func NewGrid(name string, kind domain.Kind, rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, &domain.ConfigError{Container: name, Err: domain.ErrOutOfRange, Reason: fmt.Sprintf("grid must be at least 1x1, got %dx%d", rows, cols)}
	}
	g := &Grid{base: newBase(name, kind), rows: rows, cols: cols}
	g.reset()
	return g, nil
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns rows×cols.
func (g *Grid) Size() int { return g.rows * g.cols }

func (g *Grid) Read() (Snapshot, error) {
	entries := make(map[int]any, len(g.cells))
	for k, cell := range g.cells {
		entries[k] = deepCopy(cell)
	}
	return Snapshot{Entries: entries, Keyed: true}, nil
}

// Add expects a map[int]any of cell index to unit-or-batch and appends each
// batch to its cell.
func (g *Grid) Add(items any) error {
	m, ok := items.(map[int]any)
	if !ok {
		return fmt.Errorf("add to %s: %w: grid expects map[int]any, got %T", g.name, domain.ErrValueType, items)
	}
	for cell := range m {
		if err := g.checkCell(cell); err != nil {
			return err
		}
	}
	for cell, v := range m {
		g.cells[cell] = append(g.cells[cell], Normalize(v)...)
	}
	return nil
}

// Remove expects a map[int]any of cell index to unit-or-batch and removes
// each batch from its cell. Nothing is removed if any item is missing.
func (g *Grid) Remove(items any) error {
	m, ok := items.(map[int]any)
	if !ok {
		return fmt.Errorf("remove from %s: %w: grid expects map[int]any, got %T", g.name, domain.ErrValueType, items)
	}
	next := make(map[int][]any, len(m))
	for cell, v := range m {
		if err := g.checkCell(cell); err != nil {
			return err
		}
		rest, err := removeAll(g.cells[cell], Normalize(v))
		if err != nil {
			return fmt.Errorf("remove from %s cell %d: %w", g.name, cell, err)
		}
		next[cell] = rest
	}
	for cell, rest := range next {
		g.cells[cell] = rest
	}
	return nil
}

// AddAt appends a unit or batch to one cell.
func (g *Grid) AddAt(cell int, items any) error {
	return g.Add(map[int]any{cell: Batch(Normalize(items))})
}

// RemoveAt removes a unit or batch from one cell.
func (g *Grid) RemoveAt(cell int, items any) error {
	return g.Remove(map[int]any{cell: Batch(Normalize(items))})
}

// Cell returns a copy of one cell.
func (g *Grid) Cell(cell int) ([]any, error) {
	if err := g.checkCell(cell); err != nil {
		return nil, err
	}
	return deepCopy(g.cells[cell]).([]any), nil
}

// Fill replaces the grid content cell by cell, in row-major order. Cells
// beyond len(cells) are emptied.
func (g *Grid) Fill(cells [][]any) error {
	if len(cells) > g.Size() {
		return fmt.Errorf("fill %s: %w: %d cells for a %dx%d grid", g.name, domain.ErrOutOfRange, len(cells), g.rows, g.cols)
	}
	g.reset()
	for i, c := range cells {
		g.cells[i] = append([]any(nil), c...)
	}
	return nil
}

// Clear empties every cell.
func (g *Grid) Clear() {
	g.reset()
}

// Neighbors returns the row-major von Neumann neighbours of cell (left, right,
// up, down), skipping positions outside the grid.
func (g *Grid) Neighbors(cell int) ([]int, error) {
	if err := g.checkCell(cell); err != nil {
		return nil, err
	}
	row, col := cell/g.cols, cell%g.cols
	var out []int
	if col > 0 {
		out = append(out, cell-1)
	}
	if col < g.cols-1 {
		out = append(out, cell+1)
	}
	if row > 0 {
		out = append(out, cell-g.cols)
	}
	if row < g.rows-1 {
		out = append(out, cell+g.cols)
	}
	return out, nil
}

func (g *Grid) checkCell(cell int) error {
	if cell < 0 || cell >= g.Size() {
		return fmt.Errorf("%s: %w: cell %d outside %dx%d grid", g.name, domain.ErrOutOfRange, cell, g.rows, g.cols)
	}
	return nil
}

func (g *Grid) reset() {
	g.cells = make(map[int][]any, g.Size())
	for i := 0; i < g.Size(); i++ {
		g.cells[i] = []any{}
	}
}
