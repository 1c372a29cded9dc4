package console

import "github.com/k0kubun/pp/v3"

// SetColor toggles pp's ANSI coloring for state dumps. cmd/scheduler
// calls this once at startup after probing the dump writer with
// go-isatty, so piping `P` output to a file or a non-terminal keeps the
// dump plain and greppable.
func SetColor(enabled bool) {
	pp.ColoringEnabled = enabled
}
