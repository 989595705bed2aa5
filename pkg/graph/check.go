package graph

import (
	"fmt"

	"github.com/aretw0/metachem/pkg/domain"
)

// WarningCode classifies a structural warning.
type WarningCode string

const (
	// WarnNoTermination means no Termination node is reachable from the start
	// node, so only the transition limit can end a run.
	WarnNoTermination WarningCode = "no_termination"
	// WarnUnreachable means a node can never be visited from the start node.
	WarnUnreachable WarningCode = "unreachable"
	// WarnUnknownStart means the start node is not part of the graph.
	WarnUnknownStart WarningCode = "unknown_start"
)

// Warning is a non-fatal structural finding.
type Warning struct {
	Code    WarningCode
	NodeID  string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// Check walks the control edges from start and reports structural problems
// that do not prevent a run.
func (g *Graph) Check(start string) []Warning {
	if _, ok := g.nodes[start]; !ok {
		return []Warning{{Code: WarnUnknownStart, NodeID: start, Message: fmt.Sprintf("start node '%s' is not in graph '%s'", start, g.name)}}
	}

	seen := map[string]bool{start: true}
	queue := []string{start}
	terminates := false
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if g.nodes[id].Role() == domain.RoleTermination {
			terminates = true
		}
		for _, next := range g.successors[id] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	var warnings []Warning
	if !terminates {
		warnings = append(warnings, Warning{
			Code:    WarnNoTermination,
			NodeID:  start,
			Message: fmt.Sprintf("no termination node reachable from '%s'; the run ends only at the transition limit", start),
		})
	}
	for _, id := range g.nodeOrder {
		if !seen[id] {
			warnings = append(warnings, Warning{
				Code:    WarnUnreachable,
				NodeID:  id,
				Message: fmt.Sprintf("node '%s' is not reachable from '%s'", id, start),
			})
		}
	}
	return warnings
}
