package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONFormatterWireShape(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	if err := f.Format(&buf, sampleResults(), nil); err != nil {
		t.Fatalf("Format: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 result, got %d", len(decoded))
	}

	res := decoded[0]
	if res["filePath"] != "README.md" {
		t.Errorf("filePath = %v", res["filePath"])
	}
	if res["errorCount"] != float64(1) || res["warningCount"] != float64(1) {
		t.Errorf("counts = %v / %v, want 1 / 1", res["errorCount"], res["warningCount"])
	}

	msgs := res["messages"].([]any)
	first := msgs[0].(map[string]any)
	if first["severity"] != float64(2) {
		t.Errorf("error severity should serialize as 2, got %v", first["severity"])
	}
	if first["ruleId"] != "ML001" {
		t.Errorf("ruleId = %v, want ML001", first["ruleId"])
	}
	if _, ok := first["endLine"]; ok {
		t.Error("zero endLine should be omitted from the wire shape")
	}
}

func TestJSONFormatterEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	if err := f.Format(&buf, nil, nil); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("empty results should serialize as [], got %q", got)
	}
}
