package lint

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"go.abhg.dev/goldmark/frontmatter"
)

// StripFrontMatter removes YAML front matter delimited by "---\n"
// from the beginning of source. It returns the front matter block
// (including delimiters) and the remaining content. If no front
// matter is found, prefix is nil and content equals source.
func StripFrontMatter(source []byte) (prefix, content []byte) {
	delim := []byte("---\n")
	if !bytes.HasPrefix(source, delim) {
		return nil, source
	}
	rest := source[len(delim):]
	idx := bytes.Index(rest, delim)
	if idx < 0 {
		return nil, source
	}
	end := len(delim) + idx + len(delim)
	return source[:end], source[end:]
}

// ParseFrontMatter decodes the document's front matter into a map.
// Returns nil when the document has no front matter.
func ParseFrontMatter(source []byte) (map[string]any, error) {
	md := goldmark.New(goldmark.WithExtensions(&frontmatter.Extender{}))
	ctx := parser.NewContext()
	if err := md.Convert(source, io.Discard, parser.WithContext(ctx)); err != nil {
		return nil, err
	}

	data := frontmatter.Get(ctx)
	if data == nil {
		return nil, nil
	}

	var m map[string]any
	if err := data.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
