package lint

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlockLines walks the AST and returns the set of 1-based line
// numbers occupied by fenced code blocks (fences included) or indented
// code blocks. Rules use it to skip lines that are verbatim content.
func CodeBlockLines(f *File) map[int]bool {
	set := map[int]bool{}

	_ = ast.Walk(f.AST, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch b := n.(type) {
		case *ast.FencedCodeBlock:
			markFenced(f, b, set)
		case *ast.CodeBlock:
			markSegments(f, b.Lines(), set)
		}
		return ast.WalkContinue, nil
	})

	return set
}

// markFenced marks the opening fence, all content lines, and the closing
// fence of a fenced code block.
func markFenced(f *File, b *ast.FencedCodeBlock, set map[int]bool) {
	open := fenceOpenLine(f, b)
	if open > 0 {
		set[open] = true
	}

	last := 0
	segs := b.Lines()
	for i := 0; i < segs.Len(); i++ {
		ln := f.LineOfOffset(segs.At(i).Start)
		set[ln] = true
		if ln > last {
			last = ln
		}
	}

	// The closing fence sits one line below the last content line, or
	// directly below the opening fence when the block is empty.
	close := 0
	switch {
	case last > 0:
		close = last + 1
	case open > 0:
		close = open + 1
	}
	if close > 0 && close <= len(f.Lines) {
		set[close] = true
	}
}

// fenceOpenLine returns the 1-based line of a block's opening fence.
func fenceOpenLine(f *File, b *ast.FencedCodeBlock) int {
	if b.Info != nil {
		return f.LineOfOffset(b.Info.Segment.Start)
	}
	if b.Lines().Len() > 0 {
		first := f.LineOfOffset(b.Lines().At(0).Start)
		if first > 1 {
			return first - 1
		}
		return 1
	}
	return 0
}

// markSegments marks the line of every text segment in segs.
func markSegments(f *File, segs *text.Segments, set map[int]bool) {
	for i := 0; i < segs.Len(); i++ {
		set[f.LineOfOffset(segs.At(i).Start)] = true
	}
}
