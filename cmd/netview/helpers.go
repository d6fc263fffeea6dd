package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmcph/netview/internal/config"
	"github.com/tmcph/netview/internal/netctx"
	"github.com/tmcph/netview/internal/resolve"
)

// loadContext loads the tool config and the selected network's parameter
// set, and builds the resolver every view starts from. A network-context
// failure is fatal to the whole command: no fan-out is meaningful without
// the network's counts.
func loadContext(cmd *cobra.Command) (*config.Config, *resolve.Resolver, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath, _ = cmd.Root().PersistentFlags().GetString("config")
	}

	net, err := cmd.Flags().GetInt("net")
	if err != nil {
		net, _ = cmd.Root().PersistentFlags().GetInt("net")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	network, err := netctx.Load(cfg.AssetsDir, net)
	if err != nil {
		return nil, nil, err
	}

	return cfg, resolve.New(cfg.Host, network), nil
}
