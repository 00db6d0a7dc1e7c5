package lint

import "testing"

func TestTextEditApply(t *testing.T) {
	src := []byte("hello world")

	if got := (TextEdit{Start: 6, End: 11, Text: "there"}).Apply(src); string(got) != "hello there" {
		t.Errorf("replace: got %q", got)
	}
	if got := (TextEdit{Start: 5, End: 5, Text: ","}).Apply(src); string(got) != "hello, world" {
		t.Errorf("insert: got %q", got)
	}
	if got := (TextEdit{Start: 5, End: 11}).Apply(src); string(got) != "hello" {
		t.Errorf("delete: got %q", got)
	}
	if got := (TextEdit{Start: 6, End: 99, Text: "x"}).Apply(src); string(got) != "hello x" {
		t.Errorf("clamped: got %q", got)
	}
}

func TestApplyEdits(t *testing.T) {
	src := []byte("aaa bbb ccc")

	edits := []TextEdit{
		{Start: 8, End: 11, Text: "C"},
		{Start: 0, End: 3, Text: "A"},
		{Start: 4, End: 7, Text: "B"},
	}
	if got := ApplyEdits(src, edits); string(got) != "A B C" {
		t.Errorf("got %q, want %q", got, "A B C")
	}
}

func TestApplyEditsDropsOverlaps(t *testing.T) {
	src := []byte("abcdef")

	edits := []TextEdit{
		{Start: 0, End: 4, Text: "X"},
		{Start: 2, End: 6, Text: "Y"}, // overlaps the first, dropped
	}
	if got := ApplyEdits(src, edits); string(got) != "Xef" {
		t.Errorf("got %q, want %q", got, "Xef")
	}
}

func TestApplyEditsEmpty(t *testing.T) {
	src := []byte("unchanged")
	if got := ApplyEdits(src, nil); string(got) != "unchanged" {
		t.Errorf("got %q", got)
	}
}
