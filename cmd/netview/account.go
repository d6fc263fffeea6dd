package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmcph/netview/internal/netctx"
	"github.com/tmcph/netview/internal/render"
	"github.com/tmcph/netview/internal/rpc"
	"github.com/tmcph/netview/internal/target"
)

// accountFlags is the shared --node/--user/--faucet selector surface of
// the account views. At most one of the three may be set; each view picks
// its own default when none is.
type accountFlags struct {
	node   string
	user   string
	faucet bool
}

func (f *accountFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.node, "node", "", "Node ordinal or \"all\"")
	cmd.Flags().StringVar(&f.user, "user", "", "User ordinal or \"all\"")
	cmd.Flags().BoolVar(&f.faucet, "faucet", false, "Select the network's faucet account")
}

// accountTarget is a validated account selection: the kind plus a fan-out
// selector over that kind's ordinals.
type accountTarget struct {
	kind netctx.AccountKind
	sel  target.Selector
}

// resolveTarget turns the flag surface into an accountTarget, applying
// def when no selector flag was given. The faucet is ordinal-less, so
// --faucet always yields a one-shot target.
func (f *accountFlags) resolveTarget(def accountTarget) (accountTarget, error) {
	set := 0
	if f.node != "" {
		set++
	}
	if f.user != "" {
		set++
	}
	if f.faucet {
		set++
	}
	if set > 1 {
		return accountTarget{}, fmt.Errorf("--node, --user, and --faucet are mutually exclusive")
	}

	switch {
	case f.faucet:
		return accountTarget{kind: netctx.KindFaucet, sel: target.One(1)}, nil
	case f.node != "":
		sel, err := target.Parse(f.node)
		if err != nil {
			return accountTarget{}, err
		}
		return accountTarget{kind: netctx.KindNode, sel: sel}, nil
	case f.user != "":
		sel, err := target.Parse(f.user)
		if err != nil {
			return accountTarget{}, err
		}
		return accountTarget{kind: netctx.KindUser, sel: sel}, nil
	default:
		return def, nil
	}
}

func hashCmd() *cobra.Command {
	var flags accountFlags

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Show account hashes derived from generated key material",
		Long: `Resolve the on-chain account hash of node, user, or faucet accounts.
Defaults to every user account of the network.

Examples:
  netview hash
  netview hash --node all
  netview hash --faucet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(cmd, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runHash(cmd *cobra.Command, flags *accountFlags) error {
	_, r, err := loadContext(cmd)
	if err != nil {
		return err
	}

	tgt, err := flags.resolveTarget(accountTarget{kind: netctx.KindUser, sel: target.All()})
	if err != nil {
		return err
	}

	net := r.Network().Ordinal
	w := os.Stdout

	return tgt.sel.ForEach(r.Network().Count(tgt.kind), func(ordinal int) error {
		header := render.AccountHeader(net, tgt.kind, ordinal)

		hash, err := r.AccountHash(tgt.kind, ordinal)
		if err != nil {
			if !tgt.sel.IsAll() {
				return err
			}
			render.Failure(w, header, err)
			return nil
		}

		render.Scalar(w, header, "account-hash", hash)
		return nil
	})
}

func balanceCmd() *cobra.Command {
	var (
		flags accountFlags
		via   int
	)

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show account balances via a node's chain query RPC",
		Long: `Resolve each selected account's hash locally, then query its main-purse
balance through one serving node's RPC endpoint (--via, default node 1).
Defaults to the node #1 account.

Examples:
  netview balance
  netview balance --user all
  netview balance --faucet --via 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(cmd, &flags, via)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&via, "via", 1, "Node whose RPC serves the balance queries")

	return cmd
}

func runBalance(cmd *cobra.Command, flags *accountFlags, via int) error {
	cfg, r, err := loadContext(cmd)
	if err != nil {
		return err
	}

	tgt, err := flags.resolveTarget(accountTarget{kind: netctx.KindNode, sel: target.One(1)})
	if err != nil {
		return err
	}

	url, err := r.NodeRPCURL(via)
	if err != nil {
		return fmt.Errorf("serving node: %w", err)
	}
	client := rpc.NewClient(url, cfg.Defaults.Timeout, cfg.Defaults.MaxRetries)

	ctx := context.Background()
	net := r.Network().Ordinal
	w := os.Stdout

	return tgt.sel.ForEach(r.Network().Count(tgt.kind), func(ordinal int) error {
		header := render.AccountHeader(net, tgt.kind, ordinal)

		hash, err := r.AccountHash(tgt.kind, ordinal)
		if err != nil {
			if !tgt.sel.IsAll() {
				return err
			}
			render.Failure(w, header, err)
			return nil
		}

		balance, err := client.QueryBalance(ctx, hash)
		if err != nil {
			if !tgt.sel.IsAll() {
				return err
			}
			render.Failure(w, header, err)
			return nil
		}

		render.Scalar(w, header, "balance", balance.String())
		return nil
	})
}

func keypathCmd() *cobra.Command {
	var flags accountFlags

	cmd := &cobra.Command{
		Use:   "keypath",
		Short: "Show secret-key file locations",
		Long: `Resolve the secret-key file path of node, user, or faucet accounts.
Defaults to every user account of the network.

Examples:
  netview keypath
  netview keypath --node 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeypath(cmd, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runKeypath(cmd *cobra.Command, flags *accountFlags) error {
	_, r, err := loadContext(cmd)
	if err != nil {
		return err
	}

	tgt, err := flags.resolveTarget(accountTarget{kind: netctx.KindUser, sel: target.All()})
	if err != nil {
		return err
	}

	net := r.Network().Ordinal
	w := os.Stdout

	return tgt.sel.ForEach(r.Network().Count(tgt.kind), func(ordinal int) error {
		header := render.AccountHeader(net, tgt.kind, ordinal)

		path, err := r.SecretKeyPath(tgt.kind, ordinal)
		if err != nil {
			if !tgt.sel.IsAll() {
				return err
			}
			render.Failure(w, header, err)
			return nil
		}

		render.Scalar(w, header, "secret-key", path)
		return nil
	})
}
