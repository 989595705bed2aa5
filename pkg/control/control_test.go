package control_test

import (
	"math/rand/v2"
	"testing"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/control"
	"github.com/aretw0/metachem/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transition(t *testing.T, n control.Lifecycle) {
	t.Helper()
	require.NoError(t, n.Read())
	require.NoError(t, n.Pull())
	require.NoError(t, n.Process())
	require.NoError(t, n.Push())
}

func tankWith(t *testing.T, name string, items ...any) *container.List {
	t.Helper()
	c := container.NewList(name, domain.KindTank)
	require.NoError(t, c.Add(container.Batch(items)))
	return c
}

func TestSimpleSamplerConservation(t *testing.T) {
	for _, k := range []int{0, 1, 3, 10} {
		tank := tankWith(t, "tank", "a", "b", "c", "d", "e", "a")
		sample := container.NewList("sample", domain.KindSample)

		s, err := control.NewSimpleSampler("sampler", tank, sample, k, control.WithRand(rand.New(rand.NewPCG(1, 2))))
		require.NoError(t, err)
		transition(t, s)

		moved := min(k, 6)
		assert.Equal(t, moved, sample.Len(), "k=%d", k)
		assert.Equal(t, 6-moved, tank.Len(), "k=%d", k)

		tankSnap, _ := tank.Read()
		sampleSnap, _ := sample.Read()
		assert.ElementsMatch(t,
			[]any{"a", "b", "c", "d", "e", "a"},
			append(tankSnap.Items, sampleSnap.Items...))
	}
}

func TestSimpleSamplerKeyedInput(t *testing.T) {
	pop := container.NewDictionary("pop", domain.KindTank)
	require.NoError(t, pop.Add(map[int]any{0: "x", 1: "y", 2: "z"}))
	sample := container.NewList("sample", domain.KindSample)

	s, err := control.NewSimpleSampler("sampler", pop, sample, 2)
	require.NoError(t, err)
	transition(t, s)

	popSnap, _ := pop.Read()
	sampleSnap, _ := sample.Read()
	assert.Equal(t, 1, popSnap.Len())
	assert.Len(t, sampleSnap.Items, 2)
	assert.ElementsMatch(t, []any{"x", "y", "z"}, append(popSnap.Values(), sampleSnap.Items...))
}

func TestBruteAndOrderedSamplers(t *testing.T) {
	a := tankWith(t, "a", 1, 2)
	b := tankWith(t, "b", 3)
	sample := container.NewList("sample", domain.KindSample)

	brute, err := control.NewBruteSampler("brute", []container.Container{a, b}, sample)
	require.NoError(t, err)
	transition(t, brute)

	snap, _ := sample.Read()
	assert.Equal(t, []any{1, 2, 3}, snap.Items)
	assert.Equal(t, 0, a.Len()+b.Len())

	stack := container.NewStack("stack", domain.KindSample)
	ordered, err := control.NewOrderedSampler("ordered", sample, stack, 2)
	require.NoError(t, err)
	transition(t, ordered)

	snap, _ = stack.Read()
	assert.Equal(t, []any{1, 2}, snap.Items)
	snap, _ = sample.Read()
	assert.Equal(t, []any{3}, snap.Items)
}

func TestSimpleSamplerRejectsStack(t *testing.T) {
	tank := container.NewStack("tank", domain.KindTank)
	require.NoError(t, tank.Add([]any{"a", "b", "c", "d", "e"}))
	sample := container.NewList("sample", domain.KindSample)

	_, err := control.NewSimpleSampler("s", tank, sample, 1)
	require.ErrorIs(t, err, domain.ErrOrdering)
	var cfg *domain.ConfigError
	require.ErrorAs(t, err, &cfg)
	assert.Equal(t, "tank", cfg.Container)

	ordered, err := control.NewOrderedSampler("o", tank, sample, 2)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		transition(t, ordered)
	}
	snap, _ := sample.Read()
	assert.Equal(t, []any{"a", "b", "c", "d"}, snap.Items)
	assert.Equal(t, 1, tank.Len())
}

func TestSamplerRejectsEnvironment(t *testing.T) {
	env := container.NewList("env", domain.KindEnvironment)
	sample := container.NewList("sample", domain.KindSample)

	_, err := control.NewSimpleSampler("s", env, sample, 1)
	require.ErrorIs(t, err, domain.ErrIncompatibleRole)

	var cfg *domain.ConfigError
	require.ErrorAs(t, err, &cfg)
	assert.Equal(t, "s", cfg.Node)
	assert.Equal(t, "env", cfg.Container)
}

func TestClockObserver(t *testing.T) {
	tests := []struct {
		name      string
		env       func() container.Container
		increment int
		runs      int
		want      int
	}{
		{"list", func() container.Container { return container.NewList("time", domain.KindEnvironment) }, 1, 5, 5},
		{"stack", func() container.Container { return container.NewStack("time", domain.KindEnvironment) }, 3, 4, 12},
		{"dictionary", func() container.Container { return container.NewDictionary("time", domain.KindEnvironment) }, 2, 3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := tt.env()
			require.NoError(t, env.Add(0))

			clock, err := control.NewClockObserver("clock", env, tt.increment)
			require.NoError(t, err)
			for i := 0; i < tt.runs; i++ {
				transition(t, clock)
			}

			snap, _ := env.Read()
			v, err := snap.First()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, 1, snap.Len())

			reset, err := control.NewClockResetObserver("reset", env, 0)
			require.NoError(t, err)
			transition(t, reset)
			snap, _ = env.Read()
			v, _ = snap.First()
			assert.Equal(t, 0, v)
		})
	}
}

func TestClockObserverErrors(t *testing.T) {
	_, err := control.NewClockObserver("clock", container.NewList("tank", domain.KindTank), 1)
	assert.ErrorIs(t, err, domain.ErrIncompatibleRole)

	_, err = control.NewClockObserver("clock", nil, 1)
	assert.ErrorIs(t, err, domain.ErrReadShape)

	env := container.NewList("env", domain.KindEnvironment)
	clock, err := control.NewClockObserver("clock", env, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, clock.Read(), domain.ErrEmpty)

	require.NoError(t, env.Add("noon"))
	assert.ErrorIs(t, clock.Read(), domain.ErrValueType)
}

func TestCounterDecisionThreshold(t *testing.T) {
	tests := []struct {
		counter int
		want    int
	}{
		{0, 0},
		{199, 0},
		{200, 1},
		{500, 1},
	}

	for _, tt := range tests {
		env := container.NewList("counter", domain.KindEnvironment)
		require.NoError(t, env.Add(tt.counter))

		d, err := control.NewCounterDecision("dgen", 2, 200, env)
		require.NoError(t, err)
		assert.Equal(t, 2, d.Options())

		require.NoError(t, d.Read())
		got, err := d.Process()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "counter=%d", tt.counter)
	}
}

func TestDecisionConstructionErrors(t *testing.T) {
	env := container.NewList("counter", domain.KindEnvironment)
	other := container.NewList("other", domain.KindEnvironment)

	_, err := control.NewCounterDecision("d", 3, 10, env)
	assert.ErrorIs(t, err, domain.ErrOptionCount)

	_, err = control.NewCounterDecision("d", 2, 10)
	assert.ErrorIs(t, err, domain.ErrReadShape)

	_, err = control.NewEmptyDecision("d", 2, env, other)
	assert.ErrorIs(t, err, domain.ErrReadShape)

	_, err = control.NewDecisionBase("d", 0, env)
	assert.ErrorIs(t, err, domain.ErrOptionCount)
}

func TestEmptyDecision(t *testing.T) {
	sample := container.NewList("sample", domain.KindSample)
	d, err := control.NewEmptyDecision("dempty", 2, sample)
	require.NoError(t, err)

	require.NoError(t, d.Read())
	got, _ := d.Process()
	assert.Equal(t, 0, got)

	require.NoError(t, sample.Add("p"))
	require.NoError(t, d.Read())
	got, _ = d.Process()
	assert.Equal(t, 1, got)
}

func TestNodeBasics(t *testing.T) {
	term, err := control.NewTermination("end")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTermination, term.Role())
	assert.True(t, term.Access().Empty())

	_, err = control.NewTermination("")
	assert.ErrorIs(t, err, domain.ErrEmptyID)

	null, err := control.NewNullAction("anull")
	require.NoError(t, err)
	assert.Equal(t, 0.0, null.Check())
	assert.NoError(t, null.Process())

	tank := tankWith(t, "tank")
	sample := container.NewList("sample", domain.KindSample)
	s, err := control.NewOrderedSampler("s", tank, sample, 1, control.WithCheck(0.25))
	require.NoError(t, err)
	assert.Equal(t, 0.25, s.Check())
	assert.Equal(t, domain.RoleSampler, s.Role())
}

func TestAsInt(t *testing.T) {
	n, err := control.AsInt(float64(7))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = control.AsInt(int64(3))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = control.AsInt(1.5)
	assert.ErrorIs(t, err, domain.ErrValueType)
}

func TestVariablePut(t *testing.T) {
	t.Run("keyed keeps its key among other values", func(t *testing.T) {
		env := container.NewDictionary("env", domain.KindEnvironment)
		require.NoError(t, env.Add(map[int]any{0: 5, 1: "other"}))

		v := control.NewVariable(env)
		n, err := v.LoadInt()
		require.NoError(t, err)
		require.NoError(t, v.Take())
		require.NoError(t, v.Put(n+1))

		n, err = v.LoadInt()
		require.NoError(t, err)
		assert.Equal(t, 6, n)
	})

	t.Run("sequence container re-adds at the back", func(t *testing.T) {
		env := container.NewList("env", domain.KindEnvironment)
		require.NoError(t, env.Add([]any{1, 2}))

		v := control.NewVariable(env)
		_, err := v.Load()
		require.NoError(t, err)
		require.NoError(t, v.Take())
		require.NoError(t, v.Put(10))

		snap, _ := env.Read()
		assert.Equal(t, []any{2, 10}, snap.Items)
	})
}
