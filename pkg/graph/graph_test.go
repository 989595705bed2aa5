package graph_test

import (
	"testing"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/control"
	"github.com/aretw0/metachem/pkg/domain"
	"github.com/aretw0/metachem/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	tank, sample, clock container.Container
	sampler             *control.SimpleSampler
	observer            *control.ClockObserver
	decision            *control.CounterDecision
	end                 *control.Termination
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		tank:   container.NewList("tank", domain.KindTank),
		sample: container.NewList("sample", domain.KindSample),
		clock:  container.NewList("clock", domain.KindEnvironment),
	}
	var err error
	f.sampler, err = control.NewSimpleSampler("sampler", f.tank, f.sample, 1)
	require.NoError(t, err)
	f.observer, err = control.NewClockObserver("observer", f.clock, 1)
	require.NoError(t, err)
	f.decision, err = control.NewCounterDecision("decision", 2, 3, f.clock)
	require.NoError(t, err)
	f.end, err = control.NewTermination("end")
	require.NoError(t, err)
	return f
}

func (f fixture) builder(t *testing.T) *graph.Builder {
	t.Helper()
	b := graph.NewBuilder("loop")
	require.NoError(t, b.AddContainer(f.tank, f.sample, f.clock))
	require.NoError(t, b.AddNode(f.sampler, f.observer, f.decision, f.end))
	return b
}

func TestBuildLoop(t *testing.T) {
	f := newFixture(t)
	b := f.builder(t)
	require.NoError(t, b.Chain("sampler", "observer", "decision"))
	require.NoError(t, b.Connect("decision", "sampler"))
	require.NoError(t, b.Connect("decision", "end"))

	g, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "loop", g.Name())
	assert.Equal(t, []string{"sampler", "end"}, g.Successors("decision"))

	next, err := g.Successor("decision", 1)
	require.NoError(t, err)
	assert.Equal(t, "end", next.ID())

	_, err = g.Successor("decision", 2)
	assert.ErrorIs(t, err, domain.ErrOptionOutOfRange)

	assert.Len(t, g.Nodes(), 4)
	assert.Len(t, g.Containers(), 3)
	assert.Contains(t, g.Edges(), graph.Edge{From: "decision", To: "end", Option: 1})
	assert.Empty(t, g.Check("sampler"))

	t.Run("graph is isolated from the builder", func(t *testing.T) {
		extra, err := control.NewTermination("extra")
		require.NoError(t, err)
		require.NoError(t, b.AddNode(extra))
		_, ok := g.Node("extra")
		assert.False(t, ok)
	})
}

func TestBuilderRejections(t *testing.T) {
	f := newFixture(t)

	t.Run("unregistered container", func(t *testing.T) {
		b := graph.NewBuilder("g")
		require.NoError(t, b.AddContainer(f.tank))
		err := b.AddNode(f.sampler)
		assert.ErrorIs(t, err, domain.ErrUnknownVertex)
	})

	t.Run("same name other instance", func(t *testing.T) {
		b := graph.NewBuilder("g")
		require.NoError(t, b.AddContainer(f.tank, container.NewList("sample", domain.KindSample)))
		err := b.AddNode(f.sampler)
		assert.ErrorIs(t, err, domain.ErrUnknownVertex)
	})

	t.Run("duplicate vertex", func(t *testing.T) {
		b := f.builder(t)
		assert.ErrorIs(t, b.AddContainer(container.NewList("end", domain.KindTank)), domain.ErrDuplicateVertex)
		assert.ErrorIs(t, b.AddNode(f.end), domain.ErrDuplicateVertex)
	})

	t.Run("termination has no successors", func(t *testing.T) {
		b := f.builder(t)
		err := b.Connect("end", "sampler")
		assert.ErrorIs(t, err, domain.ErrInvalidEdge)
	})

	t.Run("too many successors", func(t *testing.T) {
		b := f.builder(t)
		require.NoError(t, b.Connect("sampler", "observer"))
		assert.ErrorIs(t, b.Connect("sampler", "end"), domain.ErrInvalidEdge)
	})

	t.Run("edge to container", func(t *testing.T) {
		b := f.builder(t)
		assert.ErrorIs(t, b.Connect("sampler", "tank"), domain.ErrUnknownVertex)
	})

	t.Run("missing successors", func(t *testing.T) {
		b := f.builder(t)
		require.NoError(t, b.Chain("sampler", "observer", "decision", "end"))
		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrInvalidEdge)
		var cfg *domain.ConfigError
		require.ErrorAs(t, err, &cfg)
		assert.Equal(t, "decision", cfg.Node)
	})

	t.Run("empty graph", func(t *testing.T) {
		_, err := graph.NewBuilder("empty").Build()
		assert.Error(t, err)
	})
}

func TestCheckWarnings(t *testing.T) {
	f := newFixture(t)
	b := f.builder(t)
	require.NoError(t, b.Chain("sampler", "observer", "decision"))
	require.NoError(t, b.Connect("decision", "sampler"))
	require.NoError(t, b.Connect("decision", "observer"))
	g, err := b.Build()
	require.NoError(t, err)

	warnings := g.Check("sampler")
	require.Len(t, warnings, 2)
	assert.Equal(t, graph.WarnNoTermination, warnings[0].Code)
	assert.Equal(t, graph.WarnUnreachable, warnings[1].Code)
	assert.Equal(t, "end", warnings[1].NodeID)
	assert.Contains(t, warnings[0].String(), "no_termination")

	unknown := g.Check("nowhere")
	require.Len(t, unknown, 1)
	assert.Equal(t, graph.WarnUnknownStart, unknown[0].Code)
}

func TestEmbedSubgraph(t *testing.T) {
	link := container.NewLink("bond_sample", domain.KindSample)
	sub := graph.NewBuilder("bond")
	require.NoError(t, sub.AddContainer(link))

	check, err := control.NewEmptyDecision("dbond", 2, link)
	require.NoError(t, err)
	skip, err := control.NewNullAction("askip")
	require.NoError(t, err)
	exit, err := control.NewNullAction("anull")
	require.NoError(t, err)
	require.NoError(t, sub.AddNode(check, skip, exit))
	require.NoError(t, sub.Connect("dbond", "askip"))
	require.NoError(t, sub.Connect("dbond", "anull"))
	require.NoError(t, sub.Connect("askip", "anull"))

	t.Run("exit must be open", func(t *testing.T) {
		_, err := sub.Subgraph("dbond", "askip")
		assert.ErrorIs(t, err, domain.ErrInvalidEdge)
	})

	frag, err := sub.Subgraph("dbond", "anull")
	require.NoError(t, err)
	assert.Equal(t, "dbond", frag.Entry())
	assert.Equal(t, "anull", frag.Exit())
	require.Len(t, frag.Links(), 1)

	f := newFixture(t)
	host := f.builder(t)
	require.NoError(t, host.Embed(frag))
	require.NoError(t, host.Chain("sampler", frag.Entry()))
	require.NoError(t, host.Chain(frag.Exit(), "observer", "decision"))
	require.NoError(t, host.Connect("decision", "sampler"))
	require.NoError(t, host.Connect("decision", "end"))

	l, ok := frag.Link("bond_sample")
	require.True(t, ok)
	require.NoError(t, l.Bind(f.sample))

	g, err := host.Build()
	require.NoError(t, err)
	_, ok = g.Container("bond_sample")
	assert.True(t, ok)
	assert.Equal(t, []string{"askip", "anull"}, g.Successors("dbond"))

	assert.ErrorIs(t, host.Embed(frag), domain.ErrDuplicateVertex)
}
