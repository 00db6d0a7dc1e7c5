package output

import (
	"encoding/json"
	"io"

	"github.com/mdlint/mdlint/internal/lint"
)

// JSONFormatter outputs the full result objects as a JSON array. The
// diagnostic shape follows the wire contract: numeric severity
// (1=warning, 2=error), messageId, optional end positions and fix.
type JSONFormatter struct{}

// Format writes results as a pretty-printed JSON array. An empty result
// set produces [].
func (f *JSONFormatter) Format(w io.Writer, results []lint.Result, meta map[string]RuleMeta) error {
	if results == nil {
		results = []lint.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
