package comment

import (
	"linecomment/pkg/selection"
)

// Marker is prepended to a commented line. No space is inserted.
const Marker = "//"

// LineBuffer is a host-owned, mutable sequence of lines.
// Comment borrows it for the duration of a call and never retains it.
type LineBuffer interface {
	Len() int
	Line(i int) string
	SetLine(i int, s string)
}

// Lines adapts a plain string slice to LineBuffer. Writes go to the caller's backing array.
type Lines []string

func (l Lines) Len() int                { return len(l) }
func (l Lines) Line(i int) string       { return l[i] }
func (l Lines) SetLine(i int, s string) { l[i] = s }

// Prefix returns line with the comment marker prepended.
func Prefix(line string) string {
	return Marker + line
}

// Boundaries returns the distinct line indexes a selection marks, in ascending order.
// Only the first and last selected lines are returned, never the lines between them.
func Boundaries(sel selection.Range) []int {
	start, end := sel.Lines()
	if start == end {
		return []int{start}
	}
	if end < start {
		return []int{end, start}
	}
	return []int{start, end}
}

// Comment prefixes the first and last lines of sel with Marker, in place.
// Indexes outside [0, buf.Len()) are skipped without error.
//
// The marker is applied unconditionally: commenting an already commented
// line stacks another marker. There is no uncomment path.
func Comment(buf LineBuffer, sel selection.Range) {
	n := buf.Len()
	for _, i := range Boundaries(sel) {
		if i < 0 || i >= n {
			continue
		}
		buf.SetLine(i, Prefix(buf.Line(i)))
	}
}

// CommentLines is Comment over a string slice.
func CommentLines(lines []string, sel selection.Range) {
	Comment(Lines(lines), sel)
}
