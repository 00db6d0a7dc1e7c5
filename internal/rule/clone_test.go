package rule

import (
	"testing"

	"github.com/mdlint/mdlint/internal/lint"
)

// configurableStub implements both Rule and Configurable.
type configurableStub struct {
	Max   int
	Style string
}

func (r *configurableStub) ID() string                           { return "ML901" }
func (r *configurableStub) Name() string                         { return "configurable-stub" }
func (r *configurableStub) Category() string                     { return "test" }
func (r *configurableStub) Check(_ *lint.File) []lint.Diagnostic { return nil }

func (r *configurableStub) ApplySettings(settings map[string]any) error {
	if v, ok := settings["max"]; ok {
		r.Max = v.(int)
	}
	if v, ok := settings["style"]; ok {
		r.Style = v.(string)
	}
	return nil
}

func (r *configurableStub) DefaultSettings() map[string]any {
	return map[string]any{"max": 80, "style": "default"}
}

var _ Configurable = (*configurableStub)(nil)

func TestCloneConfigurableIsIndependent(t *testing.T) {
	orig := &configurableStub{Max: 80, Style: "default"}

	clone := Clone(orig).(*configurableStub)
	if clone == orig {
		t.Fatal("Clone returned the same instance")
	}
	if clone.Max != 80 || clone.Style != "default" {
		t.Fatalf("clone did not get defaults: %+v", clone)
	}

	if err := clone.ApplySettings(map[string]any{"max": 120}); err != nil {
		t.Fatal(err)
	}
	if orig.Max != 80 {
		t.Errorf("mutating the clone changed the original: Max = %d", orig.Max)
	}
}

func TestClonePlainRuleCopies(t *testing.T) {
	orig := &stubRule{id: "ML902", name: "plain"}
	clone := Clone(orig)
	if clone == Rule(orig) {
		t.Fatal("Clone returned the same instance")
	}
	if clone.ID() != "ML902" {
		t.Errorf("clone lost its fields: ID = %q", clone.ID())
	}
}
