package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dnstree",
		Short:        "dnstree compiles declarative DNS record trees into zone files",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newBuildCmd(), newWatchCmd())
	return cmd
}

// newLogger writes to stderr so compiled output and logs stay separable.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
