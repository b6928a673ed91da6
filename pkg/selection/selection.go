package selection

import (
	"fmt"
)

// Position identifies a location in a line buffer. Line is a 0-based line index.
type Position struct {
	Line   int
	Column int
}

// Range represents the user's current selection, identified by a start and end position.
// Start.Line <= End.Line is expected but not enforced; reversed ranges are the caller's concern.
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a Range spanning the 0-based lines start through end.
func NewRange(start, end int) Range {
	return Range{
		Start: Position{Line: start},
		End:   Position{Line: end},
	}
}

// Lines returns the 0-based start and end line indexes.
func (r Range) Lines() (int, int) {
	return r.Start.Line, r.End.Line
}

// SingleLine reports whether the range starts and ends on the same line.
func (r Range) SingleLine() bool {
	return r.Start.Line == r.End.Line
}

// String returns the range as 1-based "start:end", the form accepted on the command line.
func (r Range) String() string {
	if r.SingleLine() {
		return fmt.Sprintf("%d", r.Start.Line+1)
	}
	return fmt.Sprintf("%d:%d", r.Start.Line+1, r.End.Line+1)
}
