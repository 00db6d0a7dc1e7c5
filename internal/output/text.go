package output

import (
	"fmt"
	"io"

	"github.com/mdlint/mdlint/internal/lint"
)

// TextFormatter outputs diagnostics in human-readable text format,
// followed by a problem summary. When Color is true, file locations are
// printed in cyan and rule IDs in yellow.
type TextFormatter struct {
	Color bool
}

// Format writes each diagnostic as a single line in the pattern:
// file:line:col severity rule message
func (f *TextFormatter) Format(w io.Writer, results []lint.Result, meta map[string]RuleMeta) error {
	errs, warns := 0, 0
	for _, res := range results {
		errs += res.ErrorCount
		warns += res.WarningCount
		for _, d := range res.Messages {
			var err error
			if f.Color {
				_, err = fmt.Fprintf(w, "\033[36m%s:%d:%d\033[0m %s \033[33m%s\033[0m %s\n",
					d.File, d.Line, d.Column, d.Severity, d.RuleID, d.Message)
			} else {
				_, err = fmt.Fprintf(w, "%s:%d:%d %s %s %s\n",
					d.File, d.Line, d.Column, d.Severity, d.RuleID, d.Message)
			}
			if err != nil {
				return err
			}
		}
	}

	if errs+warns > 0 {
		if _, err := fmt.Fprintf(w, "\n%d problems (%d errors, %d warnings)\n",
			errs+warns, errs, warns); err != nil {
			return err
		}
	}
	return nil
}
