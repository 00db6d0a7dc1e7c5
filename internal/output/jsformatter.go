package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dop251/goja"

	"github.com/mdlint/mdlint/internal/lint"
)

// jsWallClock bounds a single formatter invocation; a formatter is a
// pure function and has no business running longer.
const jsWallClock = 5 * time.Second

// JSFormatter runs a JavaScript formatter file in an embedded VM. The
// file must export a function via module.exports:
//
//	module.exports = function (results, data) { return "..."; };
//
// results is the result array in wire shape; data carries rulesMeta.
// Not safe for concurrent use: each instance owns one VM.
type JSFormatter struct {
	path string
	vm   *goja.Runtime
	fn   goja.Callable
}

// LoadJSFormatter reads and evaluates a formatter script, rejecting
// scripts whose module.exports is not callable.
func LoadJSFormatter(path string) (*JSFormatter, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading formatter %q: %w", path, err)
	}

	vm := goja.New()
	module := vm.NewObject()
	if err := module.Set("exports", vm.NewObject()); err != nil {
		return nil, fmt.Errorf("formatter %q: %w", path, err)
	}
	if err := vm.Set("module", module); err != nil {
		return nil, fmt.Errorf("formatter %q: %w", path, err)
	}

	if _, err := vm.RunString(string(src)); err != nil {
		return nil, fmt.Errorf("evaluating formatter %q: %w", path, err)
	}

	fn, ok := goja.AssertFunction(module.Get("exports"))
	if !ok {
		return nil, fmt.Errorf("formatter %q: module.exports is not a function", path)
	}

	return &JSFormatter{path: path, vm: vm, fn: fn}, nil
}

// Format implements Formatter by calling the exported function.
func (f *JSFormatter) Format(w io.Writer, results []lint.Result, meta map[string]RuleMeta) error {
	resultsVal, err := toJSValue(f.vm, results)
	if err != nil {
		return fmt.Errorf("formatter %q: %w", f.path, err)
	}
	dataVal, err := toJSValue(f.vm, map[string]any{"rulesMeta": meta})
	if err != nil {
		return fmt.Errorf("formatter %q: %w", f.path, err)
	}

	// Interrupt the VM if the script spins. The timer must be stopped
	// before the interrupt is cleared: a timer firing after the clear
	// would leave a pending interrupt poisoning the next Format call.
	timer := time.AfterFunc(jsWallClock, func() {
		f.vm.Interrupt("formatter timeout")
	})
	defer func() {
		timer.Stop()
		f.vm.ClearInterrupt()
	}()

	out, err := f.fn(goja.Undefined(), resultsVal, dataVal)
	if err != nil {
		return fmt.Errorf("formatter %q: %w", f.path, err)
	}

	_, err = io.WriteString(w, out.String())
	return err
}

// toJSValue hands Go data to the VM through a JSON round trip so the
// script sees plain objects in wire shape rather than Go structs.
func toJSValue(vm *goja.Runtime, v any) (goja.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var plain any
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, err
	}
	return vm.ToValue(plain), nil
}
