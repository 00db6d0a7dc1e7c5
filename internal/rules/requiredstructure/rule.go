package requiredstructure

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
	"github.com/yuin/goldmark/ast"
)

func init() {
	rule.Register(&Rule{})
}

// Rule validates a document's outline against a CUE schema. The schema
// constrains a value of the shape
//
//	{
//	    title:       string | null
//	    headings:    [...{level: int, text: string}]
//	    frontmatter: {...}
//	}
//
// where title is the text of the first level-1 heading. The schema comes
// from the "schema" setting, or from a file named by "schema-file"
// resolved in the lint workspace.
type Rule struct {
	Schema     string
	SchemaFile string
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML030" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "required-structure" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "meta" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Validate the document outline (title, headings, front matter)
against a CUE schema.`
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "schema":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("required-structure: schema must be a string, got %T", v)
			}
			r.Schema = s
		case "schema-file":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("required-structure: schema-file must be a string, got %T", v)
			}
			r.SchemaFile = s
		default:
			return fmt.Errorf("required-structure: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"schema":      "",
		"schema-file": "",
	}
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	schema, diag := r.loadSchema(f)
	if diag != nil {
		return []lint.Diagnostic{*diag}
	}
	if strings.TrimSpace(schema) == "" {
		return nil
	}

	ctx := cuecontext.New()
	schemaVal := ctx.CompileString(schema)
	if err := schemaVal.Err(); err != nil {
		return []lint.Diagnostic{r.diag("invalidSchema",
			fmt.Sprintf("invalid CUE schema: %v", err), f.Path)}
	}

	outline, err := json.Marshal(extractOutline(f))
	if err != nil {
		return []lint.Diagnostic{r.diag("invalidSchema",
			fmt.Sprintf("serialize document outline: %v", err), f.Path)}
	}
	docVal := ctx.CompileBytes(outline)
	if err := docVal.Err(); err != nil {
		return []lint.Diagnostic{r.diag("invalidSchema",
			fmt.Sprintf("compile document outline: %v", err), f.Path)}
	}

	merged := schemaVal.Unify(docVal)
	if err := merged.Validate(cue.Concrete(true)); err != nil {
		return []lint.Diagnostic{r.diag("structureMismatch",
			fmt.Sprintf("document structure does not satisfy schema: %v", err), f.Path)}
	}

	return nil
}

// loadSchema resolves the effective schema text, preferring the inline
// setting over the schema file.
func (r *Rule) loadSchema(f *lint.File) (string, *lint.Diagnostic) {
	if r.Schema != "" || r.SchemaFile == "" {
		return r.Schema, nil
	}

	var data []byte
	var err error
	if f.FS != nil {
		data, err = fs.ReadFile(f.FS, r.SchemaFile)
	} else {
		data, err = os.ReadFile(r.SchemaFile)
	}
	if err != nil {
		d := r.diag("missingSchemaFile",
			fmt.Sprintf("cannot read schema file %q: %v", r.SchemaFile, err), f.Path)
		return "", &d
	}
	return string(data), nil
}

func (r *Rule) diag(messageID, msg, path string) lint.Diagnostic {
	return lint.Diagnostic{
		File:      path,
		Line:      1,
		Column:    1,
		RuleID:    r.ID(),
		RuleName:  r.Name(),
		MessageID: messageID,
		Severity:  lint.SeverityError,
		Message:   msg,
	}
}

// outline is the document shape handed to the schema.
type outline struct {
	Title       *string          `json:"title"`
	Headings    []outlineHeading `json:"headings"`
	FrontMatter map[string]any   `json:"frontmatter"`
}

type outlineHeading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

func extractOutline(f *lint.File) outline {
	o := outline{Headings: []outlineHeading{}}

	_ = ast.Walk(f.AST, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		text := headingText(h, f.Source)
		if h.Level == 1 && o.Title == nil {
			o.Title = &text
		}
		o.Headings = append(o.Headings, outlineHeading{Level: h.Level, Text: text})
		return ast.WalkContinue, nil
	})

	if fm, err := lint.ParseFrontMatter(f.FrontMatter); err == nil && fm != nil {
		o.FrontMatter = fm
	} else {
		o.FrontMatter = map[string]any{}
	}

	return o
}

// headingText extracts the plain text content of a heading node.
func headingText(h *ast.Heading, source []byte) string {
	var buf strings.Builder
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if t, ok := n.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		walk(c)
	}
	return buf.String()
}

var _ rule.Configurable = (*Rule)(nil)
