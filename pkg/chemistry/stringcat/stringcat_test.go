package stringcat_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/aretw0/metachem/internal/logging"
	"github.com/aretw0/metachem/internal/runtime"
	"github.com/aretw0/metachem/pkg/chemistry/stringcat"
	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/domain"
	"github.com/aretw0/metachem/pkg/registry"
	"github.com/aretw0/metachem/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWith(t *testing.T, items ...any) *container.List {
	t.Helper()
	s := container.NewList("sample", domain.KindSample)
	require.NoError(t, s.Add(container.Batch(items)))
	return s
}

func TestDecompDecision(t *testing.T) {
	tests := []struct {
		name  string
		items []any
		want  int
	}{
		{"empty sample", nil, 0},
		{"no double", []any{"ABC", "DD"}, 0},
		{"double letter", []any{"ABBC", "D"}, 1},
		{"single letter", []any{"A"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := stringcat.NewDecompDecision("ddecomp", sampleWith(t, tt.items...))
			require.NoError(t, err)
			require.NoError(t, d.Read())
			got, err := d.Process()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecompDecisionKeyedSample(t *testing.T) {
	tests := []struct {
		name    string
		entries map[int]any
		want    int
		wantErr error
	}{
		{"all cells empty", map[int]any{0: []any{}, 1: []any{}}, 0, nil},
		{"first entry decides", map[int]any{3: "AAB", 7: "C"}, 1, nil},
		{"empty cell before a string", map[int]any{0: []any{}, 1: "AAB"}, 0, domain.ErrValueType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sample := container.NewDictionary("sample", domain.KindSample)
			require.NoError(t, sample.Add(tt.entries))
			d, err := stringcat.NewDecompDecision("ddecomp", sample)
			require.NoError(t, err)

			err = d.Read()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			got, err := d.Process()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConcatAction(t *testing.T) {
	sample := sampleWith(t, "AB", "C", "DE")
	a, err := stringcat.NewConcatAction("aconcat", sample)
	require.NoError(t, err)

	require.NoError(t, a.Read())
	require.NoError(t, a.Pull())
	require.NoError(t, a.Process())
	require.NoError(t, a.Push())

	snap, _ := sample.Read()
	assert.Equal(t, []any{"ABCDE"}, snap.Items)

	bad := sampleWith(t, 42)
	a, err = stringcat.NewConcatAction("aconcat", bad)
	require.NoError(t, err)
	require.NoError(t, a.Read())
	require.NoError(t, a.Pull())
	assert.ErrorIs(t, a.Process(), domain.ErrValueType)
}

func TestSplitAction(t *testing.T) {
	sample := sampleWith(t, "ABBC", "X")
	a, err := stringcat.NewSplitAction("asplit", sample, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)

	require.NoError(t, a.Read())
	require.NoError(t, a.Pull())
	require.NoError(t, a.Process())
	require.NoError(t, a.Push())

	snap, _ := sample.Read()
	assert.ElementsMatch(t, []any{"AB", "BC", "X"}, snap.Items)

	flat := sampleWith(t, "ABC")
	a, err = stringcat.NewSplitAction("asplit", flat, nil)
	require.NoError(t, err)
	require.NoError(t, a.Read())
	require.NoError(t, a.Pull())
	assert.ErrorIs(t, a.Process(), domain.ErrValueType)
}

func TestActionsRejectTanks(t *testing.T) {
	tank := container.NewList("tank", domain.KindTank)
	_, err := stringcat.NewConcatAction("aconcat", tank)
	assert.ErrorIs(t, err, domain.ErrIncompatibleRole)
}

func letterCount(t *testing.T, items []any) int {
	t.Helper()
	n := 0
	for _, it := range items {
		s, ok := it.(string)
		require.True(t, ok)
		n += len(s)
	}
	return n
}

func TestWellMixedConservesLetters(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	cfg := template.WellMixedConfig{SampleSize: 2, Reactions: 40, Generations: 5, TankSize: 60}

	w, err := stringcat.NewWellMixed(cfg, rng, logging.NewNop())
	require.NoError(t, err)

	result, err := runtime.NewEngine(runtime.WithRand(rng)).Run(context.Background(), w.Graph, template.NodeLoad, 0)
	require.NoError(t, err)
	assert.True(t, result.Terminated)

	snap, _ := w.Tank.Read()
	assert.Equal(t, 60, letterCount(t, snap.Items))
	assert.Less(t, len(snap.Items), 60, "some strings must have been joined")
}

func TestGridConservesStrings(t *testing.T) {
	cfg := stringcat.GridConfig{Rows: 3, Cols: 4, PerCell: 10, TransferSize: 3, Generations: 7}
	g, err := stringcat.NewGrid(cfg, rand.New(rand.NewPCG(11, 13)))
	require.NoError(t, err)

	result, err := runtime.NewEngine().Run(context.Background(), g.Graph, stringcat.NodeGridLoad, 0)
	require.NoError(t, err)
	assert.True(t, result.Terminated)

	snap, _ := g.Tanks.Read()
	total := 0
	for _, cell := range snap.Entries {
		total += len(cell.([]any))
	}
	assert.Equal(t, 120, total)

	clock, _ := g.Time.Read()
	assert.Equal(t, []any{7}, clock.Items)

	_, err = stringcat.NewGrid(stringcat.GridConfig{Rows: 2, Cols: 2, Generations: 0}, nil)
	assert.ErrorIs(t, err, domain.ErrReadShape)
}

func TestRegister(t *testing.T) {
	r := registry.NewRegistry()
	stringcat.Register(r, logging.NewNop())

	names := []string{}
	for _, c := range r.List() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{stringcat.Name, stringcat.GridName}, names)

	sim, err := r.Build(stringcat.Name, map[string]any{"tank_size": 30, "generations": 2, "reactions": 5}, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, template.NodeLoad, sim.Start)
	assert.Len(t, sim.Outputs, 3)

	sim, err = r.Build(stringcat.GridName, map[string]any{"rows": "2", "cols": 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, stringcat.NodeGridLoad, sim.Start)

	_, err = r.Build(stringcat.Name, map[string]any{"unknown": 1}, nil)
	assert.Error(t, err)
}
