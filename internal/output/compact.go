package output

import (
	"fmt"
	"io"

	"github.com/mdlint/mdlint/internal/lint"
)

// CompactFormatter outputs one terse line per diagnostic, suitable for
// editor integrations: file:line:col: message [rule]
type CompactFormatter struct{}

func (f *CompactFormatter) Format(w io.Writer, results []lint.Result, meta map[string]RuleMeta) error {
	for _, res := range results {
		for _, d := range res.Messages {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s [%s]\n",
				d.File, d.Line, d.Column, d.Message, d.RuleID); err != nil {
				return err
			}
		}
	}
	return nil
}
