package cmd

import (
	"fmt"
	"io"
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/spf13/cobra"

	"linecomment/internal/config"
	"linecomment/internal/logging"
)

// app carries what every subcommand needs once the root command has loaded config.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	logFile    string

	cfg     *config.Config
	logger  kitlog.Logger
	logSink io.Closer
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "linecomment",
		Short: "Comment out the first and last lines of a selection",
		Long: `linecomment prefixes the first and last lines of a selected line range with "//".
Lines between them are left alone. It works on files directly, through Lua scripts,
or interactively in a terminal UI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logSink != nil {
				return a.logSink.Close()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to config.toml (default $XDG_CONFIG_HOME/linecomment/config.toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: logfmt or json")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newCommentCmd(a), newScriptCmd(a), newTuiCmd(a))
	return rootCmd
}

// setup loads configuration, applies flag overrides and initialises logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	var w io.Writer = cmd.ErrOrStderr()
	if a.logFile != "" {
		f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", a.logFile, err)
		}
		a.logSink = f
		w = f
	}
	a.logger, err = logging.Init(w, cfg.LogFormat, cfg.LogLevel)
	return err
}

// backup resolves the --backup flag against the configured default.
func (a *app) backup(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("backup") {
		v, _ := cmd.Flags().GetBool("backup")
		return v
	}
	return a.cfg.Backup
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
