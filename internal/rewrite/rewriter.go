package rewrite

// LineRewriter produces a copy of a document with single lines rewritten.
// Line indexes are 0-based and visited in ascending order.
type LineRewriter interface {
	// TransformLine copies the lines before lineIndex, then writes fn(line) in place of
	// that line, keeping its terminator. An index already passed or beyond the input is ignored.
	TransformLine(lineIndex int, fn func(line []byte) []byte) error

	// CopyRemainingLines writes the original lines left after the last transform.
	CopyRemainingLines() error

	// LineIndexOfByte maps a byte offset in the original content to its 0-based line index.
	LineIndexOfByte(offset int) int

	// Bytes returns the rewritten document.
	Bytes() []byte
}
