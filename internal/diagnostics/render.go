package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func severityColor(s Severity) string {
	switch s {
	case SeverityError:
		return colorRed
	case SeverityWarning:
		return colorYellow
	default:
		return colorCyan
	}
}

// Render writes human-readable diagnostics to w. Colors are used only when
// w is a terminal.
func Render(w io.Writer, diags []*DiagnosticError) {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	for _, d := range diags {
		if colored {
			fmt.Fprintf(w, "%s%s%s\n", severityColor(d.Severity), d.Error(), colorReset)
		} else {
			fmt.Fprintln(w, d.Error())
		}
	}
}
