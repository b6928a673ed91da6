package cmd

import (
	kitlog "github.com/go-kit/log"
	"github.com/spf13/cobra"

	"linecomment/internal/tui"
)

func newTuiCmd(a *app) *cobra.Command {
	tuiCmd := &cobra.Command{
		Use:   "tui FILE",
		Short: "Select and comment lines of FILE interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// stderr logging would draw over the UI; only log when --log-file is set.
			logger := kitlog.NewNopLogger()
			if a.logSink != nil {
				logger = a.logger
			}
			return tui.Run(args[0], tui.Options{
				Backup:              a.backup(cmd),
				HighlightBoundaries: a.cfg.UI.HighlightBoundaries,
				Logger:              logger,
			})
		},
	}

	tuiCmd.Flags().Bool("backup", false, "write FILE.bak before each write (default from config)")

	return tuiCmd
}
