package lint

import "sort"

// TextEdit replaces the byte range [Start, End) of a document's source
// with Text. Start == End inserts at Start.
type TextEdit struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Apply returns a copy of src with the edit applied. Out-of-range edits
// are clamped to the source bounds.
func (e TextEdit) Apply(src []byte) []byte {
	start, end := e.Start, e.End
	if start < 0 {
		start = 0
	}
	if start > len(src) {
		start = len(src)
	}
	if end < start {
		end = start
	}
	if end > len(src) {
		end = len(src)
	}

	out := make([]byte, 0, len(src)-(end-start)+len(e.Text))
	out = append(out, src[:start]...)
	out = append(out, e.Text...)
	out = append(out, src[end:]...)
	return out
}

// ApplyEdits applies edits to src in one pass. Edits are sorted by start
// offset; an edit overlapping the previously applied one is dropped and
// left for a later fix pass.
func ApplyEdits(src []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return src
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	var out []byte
	pos := 0
	for _, e := range sorted {
		if e.Start < pos {
			continue // overlaps the previous edit
		}
		start, end := e.Start, e.End
		if start > len(src) {
			start = len(src)
		}
		if end < start {
			end = start
		}
		if end > len(src) {
			end = len(src)
		}
		out = append(out, src[pos:start]...)
		out = append(out, e.Text...)
		pos = end
	}
	out = append(out, src[pos:]...)
	return out
}
