package tui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/metachem/pkg/container"
	"github.com/aretw0/metachem/pkg/domain"
)

// maxPreview is the number of distinct values listed per container.
const maxPreview = 8

// Report renders a run result and the final state of the output containers
// as markdown. runErr is the error the run aborted with, if any.
func Report(chemistry string, result *domain.RunResult, outputs []container.Container, runErr error) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Run `%s`\n\n", chemistry)

	var outcome string
	switch {
	case runErr != nil:
		outcome = "failed: " + strings.ReplaceAll(runErr.Error(), "|", "\\|")
	case result.Exhausted():
		outcome = "stopped at transition limit"
	default:
		outcome = "terminated"
	}
	sb.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| run id | `%s` |\n", result.RunID)
	fmt.Fprintf(&sb, "| outcome | %s |\n", outcome)
	fmt.Fprintf(&sb, "| steps | %d |\n", result.Steps)
	fmt.Fprintf(&sb, "| transitions | %d (%d skipped) |\n", result.Transitions, result.Skipped)
	fmt.Fprintf(&sb, "| decisions | %d |\n", result.Decisions)
	fmt.Fprintf(&sb, "| last node | `%s` |\n", result.LastNodeID)
	fmt.Fprintf(&sb, "| duration | %s |\n", result.Duration)

	if len(outputs) > 0 {
		sb.WriteString("\n## Containers\n\n")
		sb.WriteString("| container | kind | size | most common |\n|---|---|---|---|\n")
		for _, c := range outputs {
			snap, err := c.Read()
			if err != nil {
				fmt.Fprintf(&sb, "| %s | %s | error: %v | |\n", c.Name(), c.Kind(), err)
				continue
			}
			fmt.Fprintf(&sb, "| %s | %s | %d | %s |\n", c.Name(), c.Kind(), snap.Len(), preview(snap))
		}
	}
	return sb.String()
}

// preview lists the most frequent values, ties broken by text.
func preview(snap container.Snapshot) string {
	counts := make(map[string]int)
	for _, v := range snap.Values() {
		counts[fmt.Sprint(v)]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, 0, maxPreview)
	for i, k := range keys {
		if i == maxPreview {
			parts = append(parts, "…")
			break
		}
		if len(k) > 24 {
			k = k[:24] + "…"
		}
		parts = append(parts, fmt.Sprintf("`%s`×%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

// Print writes markdown to w, rendered with glamour when w is a terminal.
func Print(w io.Writer, markdown string) error {
	if f, ok := w.(*os.File); ok && IsTerminal(f) {
		render, err := NewRenderer()
		if err == nil {
			out, err := render(markdown)
			if err == nil {
				_, err = io.WriteString(w, out)
				return err
			}
		}
	}
	_, err := io.WriteString(w, markdown)
	return err
}
