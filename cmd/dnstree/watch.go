package main

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var opts buildOptions
	cmd := &cobra.Command{
		Use:   "watch [flags] source...",
		Short: "Recompile zone files whenever a source changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), newLogger(cmd), opts, args)
		},
	}
	addBuildFlags(cmd, &opts)
	return cmd
}

func runWatch(ctx context.Context, logger *slog.Logger, opts buildOptions, sources []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, path := range sources {
		if err := watcher.Add(path); err != nil {
			return err
		}
	}

	rebuild := func() {
		if err := runBuild(ctx, logger, opts, sources); err != nil {
			logger.Error("compile failed", "err", err)
			return
		}
		logger.Info("compile succeeded", "out", opts.out)
	}
	rebuild()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("source changed", "file", event.Name, "op", event.Op.String())
			// Editors often replace the file; re-add to keep watching it.
			_ = watcher.Add(event.Name)
			rebuild()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "err", err)
		}
	}
}
