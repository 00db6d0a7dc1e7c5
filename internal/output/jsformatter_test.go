package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFormatter(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formatter.js")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSFormatter(t *testing.T) {
	path := writeFormatter(t, `
module.exports = function (results, data) {
  var lines = [];
  results.forEach(function (res) {
    res.messages.forEach(function (m) {
      var name = data.rulesMeta[m.ruleId] ? data.rulesMeta[m.ruleId].name : m.ruleId;
      lines.push(res.filePath + ": " + name + " sev" + m.severity);
    });
  });
  return lines.join("\n") + "\n";
};
`)

	f, err := LoadJSFormatter(path)
	if err != nil {
		t.Fatalf("LoadJSFormatter: %v", err)
	}

	meta := map[string]RuleMeta{
		"ML001": {ID: "ML001", Name: "line-length", Category: "style"},
		"ML010": {ID: "ML010", Name: "no-trailing-spaces", Category: "whitespace"},
	}

	var buf bytes.Buffer
	if err := f.Format(&buf, sampleResults(), meta); err != nil {
		t.Fatalf("Format: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "README.md: line-length sev2") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "README.md: no-trailing-spaces sev1") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestLoadJSFormatterRejectsNonFunction(t *testing.T) {
	path := writeFormatter(t, `module.exports = 42;`)
	_, err := LoadJSFormatter(path)
	if err == nil || !strings.Contains(err.Error(), "module.exports is not a function") {
		t.Fatalf("expected non-function error, got %v", err)
	}
}

func TestLoadJSFormatterMissingFile(t *testing.T) {
	if _, err := LoadJSFormatter(filepath.Join(t.TempDir(), "absent.js")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestJSFormatterScriptError(t *testing.T) {
	path := writeFormatter(t, `module.exports = function () { throw new Error("boom"); };`)
	f, err := LoadJSFormatter(path)
	if err != nil {
		t.Fatalf("LoadJSFormatter: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Format(&buf, sampleResults(), nil); err == nil {
		t.Fatal("expected error from throwing formatter")
	}
}

func TestJSFormatterReusedAcrossCalls(t *testing.T) {
	path := writeFormatter(t, `
var calls = 0;
module.exports = function (results) {
  calls++;
  return "call " + calls + ": " + results.length + " results";
};
`)
	f, err := LoadJSFormatter(path)
	if err != nil {
		t.Fatalf("LoadJSFormatter: %v", err)
	}

	// The VM is reused between Format calls; teardown of one call must
	// leave no pending interrupt for the next.
	var buf bytes.Buffer
	if err := f.Format(&buf, sampleResults(), nil); err != nil {
		t.Fatalf("first Format: %v", err)
	}
	buf.Reset()
	if err := f.Format(&buf, sampleResults(), nil); err != nil {
		t.Fatalf("second Format: %v", err)
	}
	if !strings.Contains(buf.String(), "call 2") {
		t.Errorf("second call output = %q", buf.String())
	}
}

func TestRegistryLookup(t *testing.T) {
	f := &CompactFormatter{}
	Register("mdlint-formatter-unix", f)

	if got, ok := Lookup("mdlint-formatter-unix"); !ok || got != Formatter(f) {
		t.Fatal("full-name lookup failed")
	}
	if got, ok := Lookup("unix"); !ok || got != Formatter(f) {
		t.Fatal("bare-name lookup should resolve through the prefix")
	}
	if _, ok := Lookup("nonexistent"); ok {
		t.Fatal("unknown name should not resolve")
	}
}
