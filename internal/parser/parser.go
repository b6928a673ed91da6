package parser

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"linecomment/pkg/selection"
)

// ErrInvalidRange is returned for selection arguments that cannot be parsed.
var ErrInvalidRange = errors.New("invalid range")

// Group 1: first number, group 3: optional second number.
var rangePattern = regexp.MustCompile(`^\s*(\d+)\s*(:\s*(\d+))?\s*$`)

// Document is a file split into lines. TrailingNewline records whether the
// content ended with '\n' so Bytes can reproduce it exactly.
type Document struct {
	Lines           []string
	TrailingNewline bool
}

// ReadLines reads filename and splits it into a Document.
func ReadLines(filename string) (Document, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return SplitLines(content), nil
}

// SplitLines splits content on '\n'. Empty content yields an empty Document.
func SplitLines(content []byte) Document {
	if len(content) == 0 {
		return Document{Lines: []string{}}
	}
	text := string(content)
	trailing := strings.HasSuffix(text, "\n")
	if trailing {
		text = text[:len(text)-1]
	}
	return Document{
		Lines:           strings.Split(text, "\n"),
		TrailingNewline: trailing,
	}
}

// Bytes joins the lines back into file content.
func (d Document) Bytes() []byte {
	if len(d.Lines) == 0 {
		return nil
	}
	out := strings.Join(d.Lines, "\n")
	if d.TrailingNewline {
		out += "\n"
	}
	return []byte(out)
}

// ParseRange parses a 1-based line selection, either "N" or "A:B", into a 0-based Range.
func ParseRange(s string) (selection.Range, error) {
	start, end, err := parsePair(s)
	if err != nil {
		return selection.Range{}, err
	}
	if start < 1 {
		return selection.Range{}, fmt.Errorf("%w: line numbers start at 1, got %q", ErrInvalidRange, s)
	}
	return selection.NewRange(start-1, end-1), nil
}

// ParseByteRange parses "X:Y" (or "X") byte offsets into the document.
func ParseByteRange(s string) (int, int, error) {
	return parsePair(s)
}

func parsePair(s string) (int, int, error) {
	matches := rangePattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, 0, fmt.Errorf("%w: %q, expected N or A:B", ErrInvalidRange, s)
	}
	first, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
	}
	second := first
	if matches[3] != "" {
		second, err = strconv.Atoi(matches[3])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
		}
	}
	if second < first {
		return 0, 0, fmt.Errorf("%w: %q, end before start", ErrInvalidRange, s)
	}
	return first, second, nil
}
