package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the MetaChem ASCII art banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Teal to green, one step per line
	lines := []struct {
		text  string
		color string
	}{
		{`  __  __      _         ____ _                   `, "#22d3ee"},
		{` |  \/  | ___| |_ __ _ / ___| |__   ___ _ __ ___  `, "#2dd4bf"},
		{` | |\/| |/ _ \ __/ _' | |   | '_ \ / _ \ '_ ' _ \ `, "#34d399"},
		{` | |  | |  __/ || (_| | |___| | | |  __/ | | | | |`, "#4ade80"},
		{` |_|  |_|\___|\__\__,_|\____|_| |_|\___|_| |_| |_|`, "#a3e635"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
