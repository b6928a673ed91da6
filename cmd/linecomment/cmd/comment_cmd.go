package cmd

import (
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"linecomment/internal/parser"
	"linecomment/internal/rewrite"
)

func newCommentCmd(a *app) *cobra.Command {
	var (
		lines    string
		byteSpan string
		stdout   bool
	)

	commentCmd := &cobra.Command{
		Use:   "comment FILE",
		Short: "Comment the first and last lines of a range in FILE",
		Example: `  linecomment comment main.go --lines 4:9
  linecomment comment main.go --bytes 120:310 --stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			choose, err := resolveSelection(lines, byteSpan)
			if err != nil {
				return err
			}

			out, err := rewrite.CommentFileSelect(path, choose, rewrite.Options{
				Backup: a.backup(cmd),
				DryRun: stdout,
				Logger: a.logger,
			})
			if err != nil {
				level.Error(a.logger).Log("msg", "comment failed", "file", path, "err", err)
				return err
			}
			if stdout {
				_, err = cmd.OutOrStdout().Write(out)
			}
			return err
		},
	}

	commentCmd.Flags().StringVarP(&lines, "lines", "l", "", "1-based line range, N or A:B")
	commentCmd.Flags().StringVarP(&byteSpan, "bytes", "b", "", "byte offset range, X:Y, mapped to the lines containing them")
	commentCmd.Flags().BoolVar(&stdout, "stdout", false, "print the result instead of rewriting FILE")
	commentCmd.Flags().Bool("backup", false, "write FILE.bak before rewriting (default from config)")
	commentCmd.MarkFlagsMutuallyExclusive("lines", "bytes")
	commentCmd.MarkFlagsOneRequired("lines", "bytes")

	return commentCmd
}

// resolveSelection turns --lines or --bytes into a selector over FILE's content.
func resolveSelection(lines, byteSpan string) (rewrite.Selector, error) {
	if lines != "" {
		sel, err := parser.ParseRange(lines)
		if err != nil {
			return nil, err
		}
		return rewrite.Lines(sel), nil
	}
	start, end, err := parser.ParseByteRange(byteSpan)
	if err != nil {
		return nil, err
	}
	return rewrite.Offsets(start, end), nil
}
