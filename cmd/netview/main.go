// netview is a read-only inspection CLI for a locally-run, multi-node
// test network. Entities are addressed by ordinal (--net, --node, --user)
// and the sentinel "all" fans a query out across every node or user of the
// selected network.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmcph/netview/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "netview",
		Short: "Inspect a local multi-node test network by ordinal",
		Long: `netview queries per-node or whole-network state of a locally-run test
network: node status, metrics, account hashes, balances, and secret-key
file locations. Targets are ordinals (network #N, node #M, user #K); the
sentinel "all" selects every node or user of a network.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", config.DefaultPath, "Config file path")
	root.PersistentFlags().Int("net", 1, "Network ordinal")

	root.AddCommand(
		statusCmd(),
		metricsCmd(),
		hashCmd(),
		balanceCmd(),
		keypathCmd(),
		overviewCmd(),
	)

	return root
}

func main() {
	config.LoadEnv()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
