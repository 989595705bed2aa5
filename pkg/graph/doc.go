/*
Package graph builds and validates MetaChem graphs.

Construction is explicit and two-phase. A Builder collects containers,
control nodes and control edges, rejecting role and kind mismatches as each
declaration is made. Build then checks successor counts and returns an
immutable Graph that the runtime walks.

	b := graph.NewBuilder("tank")
	_ = b.AddContainer(tank, sample, clock)
	_ = b.AddNode(sampler, observer, decision, end)
	_ = b.Chain("sampler", "observer", "decision")
	_ = b.Connect("decision", "sampler") // option 0
	_ = b.Connect("decision", "end")     // option 1
	g, err := b.Build()

Control edges leaving a decision are ordered by declaration: the n-th Connect
from a decision is option n-1.

Subgraphs (bond templates) are built the same way and composed into a host
with Builder.Embed; their Link containers are bound by the host afterwards.
*/
package graph
