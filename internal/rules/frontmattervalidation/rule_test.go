package frontmattervalidation

import (
	"testing"

	"github.com/mdlint/mdlint/ruletest"
)

func TestRule(t *testing.T) {
	tt := ruletest.New(ruletest.Config{
		Settings: map[string]any{
			"required": []string{"title"},
			"types":    map[string]string{"draft": "bool"},
		},
	})
	tt.Run(t, "front-matter-validation", &Rule{}, ruletest.Cases{
		Valid: []ruletest.Case{
			{Code: "---\ntitle: hello\n---\n# hello\n"},
			{Name: "typed field ok", Code: "---\ntitle: hello\ndraft: true\n---\nbody\n"},
			{Name: "no settings means no checks", Code: "no front matter\n", Settings: map[string]any{}},
		},
		Invalid: []ruletest.InvalidCase{
			{
				Case: ruletest.Case{Name: "missing required", Code: "# no front matter\n"},
				Errors: []ruletest.ExpectedError{
					{
						MessageID: "missingField",
						Line:      1,
						Column:    1,
						Data:      map[string]string{"field": "title"},
					},
				},
				ExpectNoFix: true,
			},
			{
				Case: ruletest.Case{
					Name: "wrong type",
					Code: "---\ntitle: hello\ndraft: maybe\n---\nbody\n",
				},
				Errors: []ruletest.ExpectedError{
					{
						MessageID: "wrongType",
						Data:      map[string]string{"field": "draft", "want": "bool", "got": "string"},
					},
				},
			},
		},
	})
}

func TestApplySettingsValidation(t *testing.T) {
	r := &Rule{}
	if err := r.ApplySettings(map[string]any{"types": map[string]any{"x": "uuid"}}); err == nil {
		t.Fatal("expected error for invalid type name")
	}
	if err := r.ApplySettings(map[string]any{"required": "title"}); err == nil {
		t.Fatal("expected error for non-list required")
	}
}
