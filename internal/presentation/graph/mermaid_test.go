package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/metachem/internal/presentation/graph"
	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/control"
	"github.com/aretw0/metachem/pkg/domain"
	metagraph "github.com/aretw0/metachem/pkg/graph"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T) *metagraph.Graph {
	t.Helper()
	tank := container.NewList("main-tank", domain.KindTank)
	sample := container.NewList("sample", domain.KindSample)
	clock := container.NewStack("clock", domain.KindEnvironment)

	s, err := control.NewSimpleSampler("s.pick", tank, sample, 2)
	require.NoError(t, err)
	o, err := control.NewClockObserver("otime", clock, 1)
	require.NoError(t, err)
	d, err := control.NewCounterDecision("dgen", 2, 5, clock)
	require.NoError(t, err)
	end, err := control.NewTermination("end")
	require.NoError(t, err)

	b := metagraph.NewBuilder("g")
	require.NoError(t, b.AddContainer(tank, sample, clock))
	require.NoError(t, b.AddNode(s, o, d, end))
	require.NoError(t, b.Chain("s.pick", "otime", "dgen", "s.pick"))
	require.NoError(t, b.Connect("dgen", "end"))
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestGenerateMermaid(t *testing.T) {
	g := buildGraph(t)

	tests := []struct {
		name     string
		opts     graph.Options
		contains []string
		absent   []string
	}{
		{
			name: "Role Shapes",
			contains: []string{
				`s_pick[["s.pick"]]`,
				`otime(["otime"])`,
				`dgen{"dgen"}`,
				`end_node(("end"))`,
			},
			absent: []string{"c_main_tank"},
		},
		{
			name: "Decision Options",
			contains: []string{
				`dgen -- "0" --> s_pick`,
				`dgen -- "1" --> end_node`,
				`s_pick --> otime`,
			},
		},
		{
			name: "Containers",
			opts: graph.Options{Containers: true},
			contains: []string{
				`c_main_tank[("main-tank <br/> tank")]`,
				`c_main_tank -. in .-> s_pick`,
				`s_pick -. out .-> c_sample`,
				`c_clock -.-> dgen`,
			},
		},
		{
			name: "Overlay",
			opts: graph.Options{Overlay: &graph.GraphOverlay{VisitedNodes: []string{"s.pick", "s.pick", "otime"}, CurrentNode: "end"}},
			contains: []string{
				"class s_pick visited;",
				"class end_node current;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(g, tt.opts)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() should not contain %v", unwanted)
				}
			}
			if strings.Count(got, "class s_pick visited;") > 1 {
				t.Errorf("visited nodes must be deduplicated")
			}
		})
	}
}
