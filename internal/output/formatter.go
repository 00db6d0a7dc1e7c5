package output

import (
	"io"
	"sort"
	"sync"

	"github.com/mdlint/mdlint/internal/lint"
)

// RuleMeta describes a rule for formatters that want to render more than
// the diagnostic itself.
type RuleMeta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// Formatter turns a batch of per-file lint results into output. meta
// maps rule IDs to rule metadata and may be nil.
type Formatter interface {
	Format(w io.Writer, results []lint.Result, meta map[string]RuleMeta) error
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Formatter{}
)

// Register makes a formatter available to LoadFormatter under the given
// name. Third-party formatters conventionally register under a bare name
// ("unix") and are also reachable as "mdlint-formatter-unix".
func Register(name string, f Formatter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Lookup returns a registered formatter by name, trying the bare name
// first and then the mdlint-formatter-<name> convention.
func Lookup(name string) (Formatter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if f, ok := registry[name]; ok {
		return f, true
	}
	f, ok := registry["mdlint-formatter-"+name]
	return f, ok
}

// Names returns the registered formatter names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
