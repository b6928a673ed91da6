package cmd

import (
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"linecomment/internal/parser"
	"linecomment/internal/plugin"
	"linecomment/internal/rewrite"
)

func newScriptCmd(a *app) *cobra.Command {
	var stdout bool

	scriptCmd := &cobra.Command{
		Use:   "script SCRIPT.lua FILE",
		Short: "Run a Lua script that comments lines of FILE",
		Long: `Runs SCRIPT.lua with FILE's lines in the global table "lines".
The script calls linecomment.comment(lines, first, last) with 1-based line numbers;
whatever "lines" holds when it finishes is written back to FILE.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scriptPath, path := args[0], args[1]

			doc, err := parser.ReadLines(path)
			if err != nil {
				return err
			}

			wasEmpty := len(doc.Lines) == 0
			host := plugin.NewHost(a.logger)
			doc.Lines, err = host.RunFile(cmd.Context(), scriptPath, doc.Lines)
			if err != nil {
				level.Error(a.logger).Log("msg", "script failed", "script", scriptPath, "err", err)
				return err
			}
			// An empty file has no terminator to keep; new content ends with one.
			if wasEmpty && len(doc.Lines) > 0 {
				doc.TrailingNewline = true
			}

			if stdout {
				_, err = cmd.OutOrStdout().Write(doc.Bytes())
				return err
			}
			if err := rewrite.Save(path, doc.Bytes(), a.backup(cmd)); err != nil {
				return err
			}
			level.Info(a.logger).Log("msg", "script applied", "script", scriptPath, "file", path)
			return nil
		},
	}

	scriptCmd.Flags().BoolVar(&stdout, "stdout", false, "print the result instead of rewriting FILE")
	scriptCmd.Flags().Bool("backup", false, "write FILE.bak before rewriting (default from config)")

	return scriptCmd
}
