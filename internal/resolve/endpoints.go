// Package resolve maps ordinal identifiers to concrete resources: a
// (network, node) pair to the node's RPC or REST endpoint, and a
// (network, account-kind, ordinal) triple to an account hash or secret-key
// file path. All derivations are deterministic functions of the network
// parameter set; the only side effects are filesystem reads through the
// key store.
package resolve

import (
	"errors"
	"fmt"

	"github.com/tmcph/netview/internal/keys"
	"github.com/tmcph/netview/internal/netctx"
)

// ErrOutOfRange reports an ordinal exceeding the network's configured
// count. Out-of-range ordinals are rejected here, at resolution time,
// never clamped or coerced by callers.
var ErrOutOfRange = errors.New("ordinal out of range")

// Resolver derives endpoints and account resources for one network.
type Resolver struct {
	host  string
	net   *netctx.Network
	store *keys.Store
}

// New returns a Resolver for the given network with nodes bound to host.
func New(host string, net *netctx.Network) *Resolver {
	return &Resolver{
		host:  host,
		net:   net,
		store: keys.NewStore(net),
	}
}

// Network returns the network this resolver derives from.
func (r *Resolver) Network() *netctx.Network { return r.net }

// checkNode validates a node ordinal against the network's node count.
func (r *Resolver) checkNode(node int) error {
	if node < 1 || node > r.net.NodeCount {
		return fmt.Errorf("node #%d: %w (network #%d has %d nodes)",
			node, ErrOutOfRange, r.net.Ordinal, r.net.NodeCount)
	}
	return nil
}

// nodePort computes a node's port from a base: one port block of 100 per
// network, one port per node within the block.
func (r *Resolver) nodePort(base, node int) int {
	return base + 100*r.net.Ordinal + node
}

// NodeRPCURL returns the JSON-RPC endpoint of a node.
func (r *Resolver) NodeRPCURL(node int) (string, error) {
	if err := r.checkNode(node); err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s:%d/rpc", r.host, r.nodePort(r.net.RPCPortBase, node)), nil
}

// NodeRESTURL returns the REST endpoint of a node. The metrics resource
// lives at <rest>/metrics.
func (r *Resolver) NodeRESTURL(node int) (string, error) {
	if err := r.checkNode(node); err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s:%d", r.host, r.nodePort(r.net.RESTPortBase, node)), nil
}
