package headingincrement

import (
	"testing"

	"github.com/mdlint/mdlint/ruletest"
)

func TestRule(t *testing.T) {
	tt := ruletest.New(ruletest.Config{})
	tt.Run(t, "heading-increment", &Rule{}, ruletest.Cases{
		Valid: []ruletest.Case{
			{Code: "# a\n\n## b\n\n### c\n"},
			{Name: "level drop is fine", Code: "# a\n\n## b\n\n# c\n"},
			{Name: "no headings", Code: "just text\n"},
		},
		Invalid: []ruletest.InvalidCase{
			{
				Case: ruletest.Case{Code: "# a\n\n### b\n"},
				Errors: []ruletest.ExpectedError{
					{
						MessageID: "skippedLevel",
						Line:      3,
						Column:    1,
						Node:      "Heading",
						Data:      map[string]string{"from": "1", "to": "3"},
					},
				},
				ExpectNoFix: true,
			},
			{
				Case: ruletest.Case{Name: "two jumps", Code: "# a\n\n### b\n\n###### c\n"},
				Errors: []ruletest.ExpectedError{
					{MessageID: "skippedLevel", Line: 3, Data: map[string]string{"from": "1", "to": "3"}},
					{MessageID: "skippedLevel", Line: 5, Data: map[string]string{"from": "3", "to": "6"}},
				},
			},
		},
	})
}
