package lint

import "testing"

func TestPositionHelpers(t *testing.T) {
	f := mustFile(t, "abc\nde\nf\n")

	if got := f.LineOfOffset(0); got != 1 {
		t.Errorf("LineOfOffset(0) = %d", got)
	}
	if got := f.LineOfOffset(4); got != 2 {
		t.Errorf("LineOfOffset(4) = %d", got)
	}

	line, col := f.PositionOfOffset(5)
	if line != 2 || col != 2 {
		t.Errorf("PositionOfOffset(5) = %d:%d, want 2:2", line, col)
	}

	if got := f.OffsetOfLine(1); got != 0 {
		t.Errorf("OffsetOfLine(1) = %d", got)
	}
	if got := f.OffsetOfLine(3); got != 7 {
		t.Errorf("OffsetOfLine(3) = %d", got)
	}
	if got := f.OffsetOfLine(99); got != len(f.Source) {
		t.Errorf("OffsetOfLine(99) = %d, want %d", got, len(f.Source))
	}
}

func TestCodeBlockLines(t *testing.T) {
	f := mustFile(t, "para\n\n```go\ncode\n```\n\nafter\n")

	set := CodeBlockLines(f)
	for _, ln := range []int{3, 4, 5} {
		if !set[ln] {
			t.Errorf("line %d should be marked as code", ln)
		}
	}
	for _, ln := range []int{1, 7} {
		if set[ln] {
			t.Errorf("line %d should not be marked as code", ln)
		}
	}
}

func TestCodeBlockLinesIndented(t *testing.T) {
	f := mustFile(t, "para\n\n    indented code\n\nafter\n")

	set := CodeBlockLines(f)
	if !set[3] {
		t.Error("indented code line should be marked")
	}
	if set[1] || set[5] {
		t.Error("prose lines should not be marked")
	}
}
