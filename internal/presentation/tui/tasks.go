package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/lattice/internal/task"
	"github.com/muesli/termenv"
)

// TaskTable formats the declared tasks as a markdown table, ready to be fed
// through the glamour renderer.
func TaskTable(set *task.Set) string {
	var b strings.Builder
	b.WriteString("| Task | Command | Description |\n")
	b.WriteString("|------|---------|-------------|\n")
	for _, name := range set.Names() {
		t, _ := set.Get(name)
		cmd := t.Command
		if len(t.Args) > 0 {
			cmd += " " + strings.Join(t.Args, " ")
		}
		marker := ""
		if name == set.Default() {
			marker = " (default)"
		}
		fmt.Fprintf(&b, "| `%s`%s | `%s` | %s |\n", name, marker, cmd, t.Description)
	}
	return b.String()
}

// Errorf formats an error line for the operator, colored when the output is
// a terminal.
func Errorf(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if !IsTerminal() {
		return msg
	}
	p := termenv.ColorProfile()
	return termenv.String(msg).Foreground(p.Color("#fb7185")).String()
}
