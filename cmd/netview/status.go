package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmcph/netview/internal/render"
	"github.com/tmcph/netview/internal/rpc"
	"github.com/tmcph/netview/internal/target"
)

func statusCmd() *cobra.Command {
	var node string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show node status via the info_get_status RPC",
		Long: `Fetch and pretty-print each selected node's status: API version,
chainspec name, peers, uptime, and last added block.

Examples:
  netview status
  netview status --net 2 --node 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, node)
		},
	}

	cmd.Flags().StringVar(&node, "node", "all", "Node ordinal or \"all\"")

	return cmd
}

func runStatus(cmd *cobra.Command, nodeArg string) error {
	cfg, r, err := loadContext(cmd)
	if err != nil {
		return err
	}

	sel, err := target.Parse(nodeArg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	net := r.Network().Ordinal
	w := os.Stdout

	// Rules frame every block: B blocks produce B+1 rules. The leading
	// rule is deferred until the first block so an out-of-range concrete
	// ordinal emits nothing at all.
	blocks := 0
	open := func() {
		if blocks == 0 {
			render.Rule(w)
		}
		blocks++
	}

	return sel.ForEach(r.Network().NodeCount, func(node int) error {
		url, err := r.NodeRPCURL(node)
		if err != nil {
			if !sel.IsAll() {
				return err
			}
			open()
			render.Failure(w, render.NodeHeader(net, node), err)
			render.Rule(w)
			return nil
		}

		client := rpc.NewClient(url, cfg.Defaults.Timeout, cfg.Defaults.MaxRetries)
		result, err := client.GetStatus(ctx)
		if err != nil {
			if !sel.IsAll() {
				return err
			}
			open()
			render.Failure(w, render.NodeHeader(net, node), err)
			render.Rule(w)
			return nil
		}

		open()
		if err := render.StatusBlock(w, net, node, url, result); err != nil {
			return err
		}
		render.Rule(w)
		return nil
	})
}
