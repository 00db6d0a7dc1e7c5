package lint

import (
	"bytes"
	"io/fs"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// File holds a parsed Markdown document and its source.
type File struct {
	Path   string
	Source []byte
	Lines  [][]byte
	AST    ast.Node

	// FrontMatter is the raw front matter block (including delimiters)
	// that was stripped before parsing, or nil.
	FrontMatter []byte

	// FS, when non-nil, gives cross-file rules access to the surrounding
	// workspace. Nil for single-file lints.
	FS fs.FS
}

// NewFile parses source as Markdown and returns a File.
func NewFile(path string, source []byte) (*File, error) {
	reader := text.NewReader(source)
	parser := goldmark.DefaultParser()
	node := parser.Parse(reader)

	lines := bytes.Split(source, []byte("\n"))

	return &File{
		Path:   path,
		Source: source,
		Lines:  lines,
		AST:    node,
	}, nil
}

// LineOfOffset converts a byte offset in Source to a 1-based line number.
func (f *File) LineOfOffset(offset int) int {
	line := 1
	for i := 0; i < offset && i < len(f.Source); i++ {
		if f.Source[i] == '\n' {
			line++
		}
	}
	return line
}

// PositionOfOffset converts a byte offset in Source to a 1-based
// line/column pair.
func (f *File) PositionOfOffset(offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(f.Source); i++ {
		if f.Source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// OffsetOfLine returns the byte offset of the start of the given 1-based
// line, or len(Source) when the line is past the end.
func (f *File) OffsetOfLine(line int) int {
	if line <= 1 {
		return 0
	}
	n := 1
	for i, b := range f.Source {
		if b == '\n' {
			n++
			if n == line {
				return i + 1
			}
		}
	}
	return len(f.Source)
}
