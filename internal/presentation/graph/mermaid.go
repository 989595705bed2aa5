package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/domain"
	metagraph "github.com/aretw0/metachem/pkg/graph"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// Options controls what GenerateMermaid draws.
type Options struct {
	// Containers adds container vertices and dotted access edges.
	Containers bool
	Overlay    *GraphOverlay
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a graph.
// It applies semantic styling:
// - Sampler: [[Subroutine]]
// - Observer: ([Stadium])
// - Action: [Rectangle]
// - Decision: {Rhombus}, edges labelled with their option index
// - Termination: ((Circle))
// - Container: [(Cylinder)]
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(g *metagraph.Graph, opts Options) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range g.Nodes() {
		safeID := sanitizeMermaidID(node.ID())
		opener, closer := shape(node.Role())
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, node.ID(), closer))

		for i, to := range g.Successors(node.ID()) {
			arrow := "-->"
			if node.Role() == domain.RoleDecision {
				arrow = fmt.Sprintf("-- \"%d\" -->", i)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, sanitizeMermaidID(to)))
		}
	}

	if opts.Containers {
		sb.WriteString("\n    %% Containers\n")
		for _, c := range g.Containers() {
			sb.WriteString(fmt.Sprintf("    %s[(\"%s <br/> %s\")]\n", containerID(c), c.Name(), kindLabel(c)))
		}
		for _, node := range g.Nodes() {
			safeID := sanitizeMermaidID(node.ID())
			_ = node.Access().Each(func(mode domain.AccessMode, c container.Container) error {
				switch mode {
				case domain.AccessRead:
					sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", containerID(c), safeID))
				case domain.AccessMutateIn:
					sb.WriteString(fmt.Sprintf("    %s -. in .-> %s\n", containerID(c), safeID))
				case domain.AccessMutateOut:
					sb.WriteString(fmt.Sprintf("    %s -. out .-> %s\n", safeID, containerID(c)))
				}
				return nil
			})
		}
	}

	// Apply Overlay Styles
	if overlay := opts.Overlay; overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func shape(role domain.Role) (string, string) {
	switch role {
	case domain.RoleSampler:
		return "[[", "]]"
	case domain.RoleObserver:
		return "([", "])"
	case domain.RoleDecision:
		return "{", "}"
	case domain.RoleTermination:
		return "((", "))"
	default:
		return "[", "]"
	}
}

func kindLabel(c container.Container) string {
	if _, ok := c.(*container.Link); ok {
		return "link " + c.Kind().String()
	}
	return c.Kind().String()
}

// containerID prefixes container ids so they never clash with node ids.
func containerID(c container.Container) string {
	return "c_" + sanitizeMermaidID(c.Name())
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	// "end" is a Mermaid keyword
	if strings.EqualFold(s, "end") {
		s += "_node"
	}
	return s
}
