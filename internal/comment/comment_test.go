package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"linecomment/pkg/selection"
)

func TestComment_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		start int
		end   int
		want  []string
	}{
		{
			name:  "multi line selection marks both boundaries",
			lines: []string{"a", "b", "c", "d"},
			start: 1, end: 3,
			want: []string{"a", "//b", "c", "//d"},
		},
		{
			name:  "single line buffer",
			lines: []string{"x"},
			start: 0, end: 0,
			want: []string{"//x"},
		},
		{
			name:  "empty buffer",
			lines: []string{},
			start: 0, end: 0,
			want: []string{},
		},
		{
			name:  "end out of range",
			lines: []string{"a", "b"},
			start: 0, end: 5,
			want: []string{"//a", "b"},
		},
		{
			name:  "entirely out of range",
			lines: []string{"a", "b"},
			start: 7, end: 9,
			want: []string{"a", "b"},
		},
		{
			name:  "negative start",
			lines: []string{"a", "b"},
			start: -1, end: 1,
			want: []string{"a", "//b"},
		},
		{
			name:  "adjacent lines",
			lines: []string{"a", "b", "c"},
			start: 1, end: 2,
			want: []string{"a", "//b", "//c"},
		},
		{
			name:  "reversed selection marks both indexes",
			lines: []string{"a", "b", "c"},
			start: 2, end: 0,
			want: []string{"//a", "b", "//c"},
		},
		{
			name:  "empty line",
			lines: []string{"", "b"},
			start: 0, end: 0,
			want: []string{"//", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			CommentLines(tt.lines, selection.NewRange(tt.start, tt.end))
			assert.Equal(t, tt.want, tt.lines)
		})
	}
}

func TestComment_RepeatedCallsStackMarker(t *testing.T) {
	lines := []string{"only"}
	sel := selection.NewRange(0, 0)

	CommentLines(lines, sel)
	CommentLines(lines, sel)

	assert.Equal(t, []string{"////only"}, lines)
}

func TestComment_NilBuffer(t *testing.T) {
	var lines []string
	assert.NotPanics(t, func() {
		CommentLines(lines, selection.NewRange(0, 3))
	})
	assert.Empty(t, lines)
}

// Checks boundary-only mutation, the prefix law and bounds safety over every
// selection of a small buffer, including indexes past either end.
func TestComment_Properties(t *testing.T) {
	input := []string{"alpha", "", "  gamma", "// delta", "epsilon"}

	for start := -2; start <= len(input)+1; start++ {
		for end := start; end <= len(input)+1; end++ {
			lines := append([]string(nil), input...)
			Comment(Lines(lines), selection.NewRange(start, end))

			inRange := func(i int) bool { return i >= 0 && i < len(input) }
			for i := range input {
				marked := (i == start || i == end) && inRange(i)
				if marked {
					assert.Equal(t, Marker+input[i], lines[i], "start=%d end=%d line=%d", start, end, i)
				} else {
					assert.Equal(t, input[i], lines[i], "start=%d end=%d line=%d", start, end, i)
				}
			}
		}
	}
}

func TestBoundaries(t *testing.T) {
	assert.Equal(t, []int{4}, Boundaries(selection.NewRange(4, 4)))
	assert.Equal(t, []int{1, 3}, Boundaries(selection.NewRange(1, 3)))
	assert.Equal(t, []int{1, 3}, Boundaries(selection.NewRange(3, 1)))
}

type recordingBuffer struct {
	lines  []string
	writes []int
}

func (b *recordingBuffer) Len() int          { return len(b.lines) }
func (b *recordingBuffer) Line(i int) string { return b.lines[i] }
func (b *recordingBuffer) SetLine(i int, s string) {
	b.writes = append(b.writes, i)
	b.lines[i] = s
}

func TestComment_WritesOnlyBoundaries(t *testing.T) {
	buf := &recordingBuffer{lines: []string{"a", "b", "c", "d", "e"}}

	Comment(buf, selection.NewRange(0, 4))
	assert.Equal(t, []int{0, 4}, buf.writes)

	buf.writes = nil
	Comment(buf, selection.NewRange(2, 2))
	assert.Equal(t, []int{2}, buf.writes)
}
