package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmcph/netview/internal/render"
	"github.com/tmcph/netview/internal/rpc"
	"github.com/tmcph/netview/internal/target"
)

func metricsCmd() *cobra.Command {
	var (
		node   string
		metric string
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show node metrics from the REST /metrics endpoint",
		Long: `Fetch each selected node's Prometheus-style metrics body.

With --metric NAME, only the last line containing NAME is shown per node
(later-declared metrics of the same name win). With --metric all, the
entire raw body is printed.

Examples:
  netview metrics --node 2 --metric uptime
  netview metrics --metric scheduler_queue_total_count`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetrics(cmd, node, metric)
		},
	}

	cmd.Flags().StringVar(&node, "node", "all", "Node ordinal or \"all\"")
	cmd.Flags().StringVar(&metric, "metric", "all", "Metric name, or \"all\" for the full body")

	return cmd
}

func runMetrics(cmd *cobra.Command, nodeArg, metric string) error {
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
	wantAll := strings.EqualFold(strings.TrimSpace(metric), "all")

	return sel.ForEach(r.Network().NodeCount, func(node int) error {
		url, err := r.NodeRESTURL(node)
		if err != nil {
			if !sel.IsAll() {
				return err
			}
			render.Failure(w, render.NodeHeader(net, node), err)
			return nil
		}

		body, err := rpc.NewRestClient(url, cfg.Defaults.Timeout).Metrics(ctx)
		if err != nil {
			if !sel.IsAll() {
				return err
			}
			render.Failure(w, render.NodeHeader(net, node), err)
			return nil
		}

		if wantAll {
			render.MetricsRaw(w, net, node, body)
			return nil
		}

		// A name matching zero lines still yields a header line with an
		// empty segment; one missing metric must not fail the sweep.
		render.MetricLine(w, net, node, render.SelectMetric(body, metric))
		return nil
	})
}
