// Package netctx resolves a network ordinal to that network's parameter
// set: node count, user count, port bases, and the per-account-type key
// path templates. The result is an immutable value object passed by
// reference into every resolver and executor call; nothing here is cached
// or mutated after Load returns.
package netctx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNotFound reports that no persisted configuration exists for the
// requested network ordinal.
var ErrNotFound = errors.New("network not found")

// AccountKind distinguishes node-operator accounts from end-user accounts
// (and the per-network faucet) for hash and key-path derivation.
type AccountKind string

const (
	KindNode   AccountKind = "node"
	KindUser   AccountKind = "user"
	KindFaucet AccountKind = "faucet"
)

// Default port bases and key-path templates, matching the layout the
// bootstrap tool generates. The vars file may override any of them.
const (
	defaultRPCPortBase  = 11000
	defaultRESTPortBase = 14000
)

var defaultAccountPaths = map[AccountKind]string{
	KindNode:   "nodes/node-%d/keys",
	KindUser:   "users/user-%d",
	KindFaucet: "faucet",
}

// Network is the loaded parameter set for one test network.
type Network struct {
	Ordinal      int
	Dir          string // absolute-ish path of the net-<N> asset directory
	NodeCount    int
	UserCount    int
	RPCPortBase  int
	RESTPortBase int

	// AccountPaths maps an account kind to the key-material directory
	// template relative to Dir. Node and user templates take the ordinal
	// as their single %d argument; the faucet template takes none.
	AccountPaths map[AccountKind]string
}

// vars mirrors the on-disk vars.yaml schema.
type vars struct {
	NodeCount    int               `yaml:"node_count"`
	UserCount    int               `yaml:"user_count"`
	RPCPortBase  int               `yaml:"rpc_port_base"`
	RESTPortBase int               `yaml:"rest_port_base"`
	AccountPaths map[string]string `yaml:"account_paths"`
}

// Load reads <assetsRoot>/net-<ordinal>/vars.yaml and returns the network
// parameter set. Returns ErrNotFound when the vars file does not exist.
func Load(assetsRoot string, ordinal int) (*Network, error) {
	if ordinal < 1 {
		return nil, fmt.Errorf("network ordinal must be >= 1, got %d", ordinal)
	}

	dir := filepath.Join(assetsRoot, fmt.Sprintf("net-%d", ordinal))
	path := filepath.Join(dir, "vars.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("network #%d: %w (no vars file at %s)", ordinal, ErrNotFound, path)
		}
		return nil, fmt.Errorf("network #%d: failed to read vars: %w", ordinal, err)
	}

	var v vars
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("network #%d: failed to parse vars: %w", ordinal, err)
	}

	if v.NodeCount < 1 {
		return nil, fmt.Errorf("network #%d: node_count must be >= 1, got %d", ordinal, v.NodeCount)
	}
	if v.UserCount < 0 {
		return nil, fmt.Errorf("network #%d: user_count must be >= 0, got %d", ordinal, v.UserCount)
	}

	n := &Network{
		Ordinal:      ordinal,
		Dir:          dir,
		NodeCount:    v.NodeCount,
		UserCount:    v.UserCount,
		RPCPortBase:  v.RPCPortBase,
		RESTPortBase: v.RESTPortBase,
		AccountPaths: make(map[AccountKind]string, len(defaultAccountPaths)),
	}
	if n.RPCPortBase == 0 {
		n.RPCPortBase = defaultRPCPortBase
	}
	if n.RESTPortBase == 0 {
		n.RESTPortBase = defaultRESTPortBase
	}

	for kind, tmpl := range defaultAccountPaths {
		n.AccountPaths[kind] = tmpl
	}
	for kind, tmpl := range v.AccountPaths {
		n.AccountPaths[AccountKind(kind)] = tmpl
	}

	return n, nil
}

// Count returns the number of entities of the given kind in the network.
// The faucet is a single ordinal-less account.
func (n *Network) Count(kind AccountKind) int {
	switch kind {
	case KindNode:
		return n.NodeCount
	case KindUser:
		return n.UserCount
	case KindFaucet:
		return 1
	default:
		return 0
	}
}
