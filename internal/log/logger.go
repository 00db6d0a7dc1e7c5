package log

import (
	"fmt"
	"io"
)

// Logger writes verbose diagnostic messages when Enabled is true.
// Output goes to the configured writer (typically stderr), prefixed so
// debug lines are distinguishable from lint output.
type Logger struct {
	Enabled bool
	Prefix  string
	W       io.Writer
}

// Printf writes a formatted message to W when Enabled is true.
// It is a no-op when Enabled is false.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.Enabled {
		return
	}
	if l.Prefix != "" {
		_, _ = fmt.Fprint(l.W, l.Prefix+" ")
	}
	_, _ = fmt.Fprintf(l.W, format+"\n", args...)
}
