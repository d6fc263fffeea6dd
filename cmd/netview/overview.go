package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmcph/netview/internal/health"
	"github.com/tmcph/netview/internal/output"
)

func overviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "One-line health summary of every node in the network",
		Long: `Probe every node's status endpoint concurrently and print a summary
table: status, block height, peer count, uptime, and probe latency.

Example:
  netview overview --net 2`,
		RunE: runOverview,
	}

	return cmd
}

func runOverview(cmd *cobra.Command, args []string) error {
	cfg, r, err := loadContext(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	nodes := health.Sweep(ctx, r, cfg.Defaults.Timeout)
	output.RenderOverview(r.Network().Ordinal, nodes)
	return nil
}
