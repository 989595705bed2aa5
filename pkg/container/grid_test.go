package container_test

import (
	"testing"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridRejectsEmptyShape(t *testing.T) {
	_, err := container.NewGrid("g", domain.KindTank, 0, 3)
	require.ErrorIs(t, err, domain.ErrOutOfRange)
	var cfg *domain.ConfigError
	assert.ErrorAs(t, err, &cfg)
}

func TestGridCells(t *testing.T) {
	g, err := container.NewGrid("g", domain.KindTank, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, g.Size())

	snap, _ := g.Read()
	assert.True(t, snap.Empty())
	assert.Len(t, snap.Entries, 6)

	require.NoError(t, g.AddAt(4, []any{"a", "b"}))
	require.NoError(t, g.Add(map[int]any{0: "c"}))

	cell, err := g.Cell(4)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, cell)

	snap, _ = g.Read()
	assert.False(t, snap.Empty())
	snap.Entries[4].([]any)[0] = "mutated"
	cell, _ = g.Cell(4)
	assert.Equal(t, "a", cell[0])

	t.Run("out of range", func(t *testing.T) {
		assert.ErrorIs(t, g.AddAt(6, "x"), domain.ErrOutOfRange)
		assert.ErrorIs(t, g.Add(map[int]any{-1: "x"}), domain.ErrOutOfRange)
		assert.ErrorIs(t, g.Add("x"), domain.ErrValueType)
	})

	t.Run("remove is atomic", func(t *testing.T) {
		err := g.Remove(map[int]any{4: "a", 0: "missing"})
		require.ErrorIs(t, err, domain.ErrNotFound)
		cell, _ := g.Cell(4)
		assert.Equal(t, []any{"a", "b"}, cell)

		require.NoError(t, g.RemoveAt(4, "a"))
		cell, _ = g.Cell(4)
		assert.Equal(t, []any{"b"}, cell)
	})

	t.Run("fill", func(t *testing.T) {
		require.NoError(t, g.Fill([][]any{{"p"}, {}, {"q", "r"}}))
		snap, _ := g.Read()
		assert.Equal(t, []any{"q", "r"}, snap.Entries[2])
		assert.Equal(t, []any{}, snap.Entries[4])
		assert.ErrorIs(t, g.Fill(make([][]any, 7)), domain.ErrOutOfRange)
	})
}

func TestGridNeighbors(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		cell       int
		want       []int
	}{
		{"3x3 corner", 3, 3, 0, []int{1, 3}},
		{"3x3 top right", 3, 3, 2, []int{1, 5}},
		{"3x3 centre", 3, 3, 4, []int{3, 5, 1, 7}},
		{"3x3 bottom right", 3, 3, 8, []int{7, 5}},
		{"2x4 top left", 2, 4, 0, []int{1, 4}},
		{"2x4 top right", 2, 4, 3, []int{2, 7}},
		{"2x4 bottom inner", 2, 4, 5, []int{4, 6, 1}},
		{"2x4 bottom right", 2, 4, 7, []int{6, 3}},
		{"4x2 top left", 4, 2, 0, []int{1, 2}},
		{"4x2 second row right", 4, 2, 3, []int{2, 1, 5}},
		{"4x2 bottom left", 4, 2, 6, []int{7, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := container.NewGrid("g", domain.KindTank, tt.rows, tt.cols)
			require.NoError(t, err)
			got, err := g.Neighbors(tt.cell)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, dims := range [][2]int{{3, 3}, {2, 4}, {4, 2}} {
		g, err := container.NewGrid("g", domain.KindTank, dims[0], dims[1])
		require.NoError(t, err)
		_, err = g.Neighbors(dims[0] * dims[1])
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
	}
}
