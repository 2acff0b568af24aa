package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/skrail/dnstree"
	"github.com/skrail/dnstree/config"
	"github.com/skrail/dnstree/merger"
	"github.com/skrail/dnstree/normalizer"
	"github.com/skrail/dnstree/writer"
	"github.com/skrail/dnstree/zonegen"
)

type buildOptions struct {
	out        string
	defaultTTL uint32
	origin     string
}

func newBuildCmd() *cobra.Command {
	var opts buildOptions
	cmd := &cobra.Command{
		Use:   "build [flags] source...",
		Short: "Compile source files into zone files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), newLogger(cmd), opts, args)
		},
	}
	addBuildFlags(cmd, &opts)
	return cmd
}

func addBuildFlags(cmd *cobra.Command, opts *buildOptions) {
	cmd.Flags().StringVarP(&opts.out, "out", "o", "zones", "output directory")
	cmd.Flags().Uint32Var(&opts.defaultTTL, "default-ttl", 3600, "TTL for records without an explicit or inherited one")
	cmd.Flags().StringVar(&opts.origin, "origin", ".", "absolute domain the tree root corresponds to")
}

func runBuild(ctx context.Context, logger *slog.Logger, opts buildOptions, sources []string) error {
	zones, err := compile(ctx, opts, sources)
	if err != nil {
		return err
	}
	if err := (writer.Dir{Path: opts.out}).Apply(zones); err != nil {
		return err
	}
	for _, zone := range zones {
		logger.Info("zone written",
			"zone", zone.Name.String(),
			"records", len(zone.Records),
			"includes", len(zone.Includes))
	}
	return nil
}

// compile runs the pipeline: load and normalize each source (sources are
// independent, so this part runs in parallel), merge in argument order,
// then extract zones.
func compile(ctx context.Context, opts buildOptions, sources []string) ([]zonegen.Zone, error) {
	origin, err := dnstree.ParseDomain(opts.origin)
	if err != nil {
		return nil, err
	}
	if !origin.IsAbsolute() {
		return nil, fmt.Errorf("origin %q must be absolute", opts.origin)
	}

	normalized := make([]*dnstree.Node, len(sources))
	g, _ := errgroup.WithContext(ctx)
	for i, path := range sources {
		i, path := i, path
		g.Go(func() error {
			source, err := config.LoadFile(path)
			if err != nil {
				return err
			}
			normalized[i] = normalizer.Normalize(source.Tree, opts.defaultTTL)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged, err := merger.Merge(normalized, config.Default())
	if err != nil {
		return nil, err
	}
	return zonegen.Extract(merged, origin)
}
