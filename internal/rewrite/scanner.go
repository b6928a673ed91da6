package rewrite

import (
	"bufio"
	"bytes"
	"io"
	"sort"
)

// maxLineSize bounds a single line; bufio.Scanner's 64KB default is too small for minified sources.
const maxLineSize = 16 * 1024 * 1024

var _ LineRewriter = (*ScannerRewriter)(nil)

// ScannerRewriter implements LineRewriter using bufio.Scanner.
// Lines are copied byte-for-byte: '\r' is kept and a final line without '\n' stays without one.
type ScannerRewriter struct {
	scanner     *bufio.Scanner
	output      bytes.Buffer
	lineNo      int   // how many lines have been consumed (scanned) so far
	finished    bool  // true once we've reached EOF
	lineOffsets []int // precomputed byte-offset where each line begins
	newline     bool  // whether the last scanned line was terminated by '\n'
}

// NewScannerRewriter constructs a ScannerRewriter over an io.Reader (the full file content),
// plus a slice of line-start offsets (from BuildLineOffsets). lineOffsets may be nil
// when LineIndexOfByte is not needed.
func NewScannerRewriter(r io.Reader, lineOffsets []int) *ScannerRewriter {
	rw := &ScannerRewriter{
		scanner:     bufio.NewScanner(r),
		lineOffsets: lineOffsets,
	}
	rw.scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	rw.scanner.Split(rw.scanRawLines)
	return rw
}

// scanRawLines is bufio.ScanLines without the '\r' stripping, remembering whether
// the token was newline-terminated.
func (rw *ScannerRewriter) scanRawLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		rw.newline = true
		return i + 1, data[:i], nil
	}
	if atEOF {
		rw.newline = false
		return len(data), data, nil
	}
	return 0, nil, nil
}

// scan advances to the next original line, marking the rewriter finished at EOF.
func (rw *ScannerRewriter) scan() bool {
	if rw.finished {
		return false
	}
	if !rw.scanner.Scan() {
		rw.finished = true
		return false
	}
	rw.lineNo++
	return true
}

func (rw *ScannerRewriter) writeLine(line []byte) {
	rw.output.Write(line)
	if rw.newline {
		rw.output.WriteByte('\n')
	}
}

// copyLinesUntil writes original lines [0..lineIndex-1] to output and positions the scanner at lineIndex.
func (rw *ScannerRewriter) copyLinesUntil(lineIndex int) error {
	for rw.lineNo < lineIndex {
		if !rw.scan() {
			return rw.scanner.Err()
		}
		rw.writeLine(rw.scanner.Bytes())
	}
	return rw.scanner.Err()
}

// TransformLine writes fn(line) for the original line at lineIndex.
// Lines before lineIndex are copied unchanged; a lineIndex already passed is ignored.
func (rw *ScannerRewriter) TransformLine(lineIndex int, fn func(line []byte) []byte) error {
	if lineIndex < rw.lineNo {
		return nil
	}
	if err := rw.copyLinesUntil(lineIndex); err != nil {
		return err
	}
	if !rw.scan() {
		return rw.scanner.Err()
	}
	rw.writeLine(fn(rw.scanner.Bytes()))
	return nil
}

// CopyRemainingLines writes all lines from the current scanner position through EOF.
func (rw *ScannerRewriter) CopyRemainingLines() error {
	for rw.scan() {
		rw.writeLine(rw.scanner.Bytes())
	}
	return rw.scanner.Err()
}

// LineIndexOfByte returns the 0-based line index that contains offset (byte index in the original file).
func (rw *ScannerRewriter) LineIndexOfByte(offset int) int {
	return lineIndexOfByte(rw.lineOffsets, offset)
}

// Bytes returns the fully rewritten buffer.
func (rw *ScannerRewriter) Bytes() []byte {
	return rw.output.Bytes()
}

// BuildLineOffsets returns a slice of byte offsets where each new line begins.
// E.g. if content[0]=='a' and content[5]=='\n', then offsets = [0,6,...].
func BuildLineOffsets(content []byte) []int {
	offsets := []int{0}
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

func lineIndexOfByte(lineOffsets []int, offset int) int {
	i := sort.Search(len(lineOffsets), func(i int) bool {
		return lineOffsets[i] > offset
	})
	if i == 0 {
		return 0
	}
	return i - 1
}
