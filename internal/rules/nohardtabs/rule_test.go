package nohardtabs

import (
	"testing"

	"github.com/mdlint/mdlint/ruletest"
)

func TestRule(t *testing.T) {
	tt := ruletest.New(ruletest.Config{})
	tt.Run(t, "no-hard-tabs", &Rule{}, ruletest.Cases{
		Valid: []ruletest.Case{
			{Code: "no tabs here\n"},
			{Name: "code block", Code: "```go\n\tindented\n```\n"},
			{Name: "indented code", Code: "para\n\n    \tstill code\n"},
		},
		Invalid: []ruletest.InvalidCase{
			{
				Case: ruletest.Case{Code: "a\tb\n"},
				Errors: []ruletest.ExpectedError{
					{MessageID: "hardTab", Line: 1, Column: 2, EndColumn: 3},
				},
				Output: ruletest.Output("a    b\n"),
			},
			{
				Case: ruletest.Case{Name: "two tabs", Code: "a\tb\tc\n"},
				Errors: []ruletest.ExpectedError{
					{MessageID: "hardTab", Line: 1, Column: 2},
					{MessageID: "hardTab", Line: 1, Column: 4},
				},
				Output: ruletest.Output("a    b    c\n"),
			},
		},
	})
}
