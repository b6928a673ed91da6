package rewrite

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"linecomment/internal/comment"
	"linecomment/pkg/selection"
)

// Options controls how CommentFile writes its result.
type Options struct {
	// Backup writes the original content to <path>.bak before rewriting.
	Backup bool
	// DryRun returns the rewritten content without touching the file.
	DryRun bool
	Logger log.Logger
}

// CommentStream reads a document from r and returns it with the boundary lines of sel commented.
// Lines outside the document are never reached, so out-of-range indexes are a no-op.
func CommentStream(r io.Reader, sel selection.Range) ([]byte, error) {
	return commentBoundaries(NewScannerRewriter(r, nil), sel)
}

func commentBoundaries(rw LineRewriter, sel selection.Range) ([]byte, error) {
	for _, i := range comment.Boundaries(sel) {
		if i < 0 {
			continue
		}
		if err := rw.TransformLine(i, prefixLine); err != nil {
			return nil, fmt.Errorf("failed to comment line %d: %w", i+1, err)
		}
	}
	if err := rw.CopyRemainingLines(); err != nil {
		return nil, fmt.Errorf("failed to copy remaining lines: %w", err)
	}
	return rw.Bytes(), nil
}

func prefixLine(line []byte) []byte {
	return []byte(comment.Prefix(string(line)))
}

// SelectionFromOffsets converts a byte-offset selection within content into a line selection.
func SelectionFromOffsets(content []byte, start, end int) (selection.Range, error) {
	if start < 0 || end < start || end > len(content) {
		return selection.Range{}, fmt.Errorf("byte range %d:%d outside content of %d bytes", start, end, len(content))
	}
	offsets := BuildLineOffsets(content)
	var rw LineRewriter = NewScannerRewriter(bytes.NewReader(content), offsets)
	startLine := rw.LineIndexOfByte(start)
	endLine := rw.LineIndexOfByte(end)
	return selection.Range{
		Start: selection.Position{Line: startLine, Column: start - offsets[startLine]},
		End:   selection.Position{Line: endLine, Column: end - offsets[endLine]},
	}, nil
}

// Selector picks a selection once the content of the file is known.
type Selector func(content []byte) (selection.Range, error)

// Lines selects sel regardless of content.
func Lines(sel selection.Range) Selector {
	return func([]byte) (selection.Range, error) { return sel, nil }
}

// Offsets selects the lines containing byte offsets start and end.
func Offsets(start, end int) Selector {
	return func(content []byte) (selection.Range, error) {
		return SelectionFromOffsets(content, start, end)
	}
}

// CommentFile comments the boundary lines of sel in the file at path and returns the new content.
// Unless opts.DryRun is set the file is rewritten in place, keeping its permissions.
func CommentFile(path string, sel selection.Range, opts Options) ([]byte, error) {
	return CommentFileSelect(path, Lines(sel), opts)
}

// CommentFileSelect is CommentFile with the selection chosen from the file's content.
// The file is read once; choose and the rewrite see the same bytes.
func CommentFileSelect(path string, choose Selector, opts Options) ([]byte, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	original, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	sel, err := choose(original)
	if err != nil {
		return nil, err
	}

	updated, err := CommentStream(bytes.NewReader(original), sel)
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite %s: %w", path, err)
	}

	if bytes.Equal(original, updated) {
		level.Debug(logger).Log("msg", "selection outside file, nothing to comment", "file", path, "lines", sel)
	}
	if opts.DryRun {
		return updated, nil
	}

	if err := writeResult(path, original, updated, info.Mode().Perm(), opts.Backup); err != nil {
		return nil, err
	}
	level.Info(logger).Log("msg", "commented selection", "file", path, "lines", sel)
	return updated, nil
}

// Save writes content to an existing file at path, keeping its permissions.
// With backup set, the previous content is first copied to <path>.bak.
func Save(path string, content []byte, backup bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	var original []byte
	if backup {
		if original, err = os.ReadFile(path); err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}
	}
	return writeResult(path, original, content, info.Mode().Perm(), backup)
}

func writeResult(path string, original, updated []byte, perm os.FileMode, backup bool) error {
	if backup {
		if err := os.WriteFile(path+".bak", original, perm); err != nil {
			return fmt.Errorf("failed to write backup %s.bak: %w", path, err)
		}
	}
	if err := os.WriteFile(path, updated, perm); err != nil {
		return fmt.Errorf("failed to write updated file %s: %w", path, err)
	}
	return nil
}
