// Package health implements the whole-network overview sweep: one status
// probe per node, run concurrently. Unlike the ordered fan-out views, the
// sweep renders nothing until every probe has finished, so concurrency
// cannot reorder output.
package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tmcph/netview/internal/resolve"
	"github.com/tmcph/netview/internal/rpc"
)

// Probe latency above this marks a node SLOW.
const slowLatency = 500 * time.Millisecond

// NodeHealth holds one node's probe result.
type NodeHealth struct {
	Node    int
	RPCURL  string
	Status  string // UP, SLOW, DOWN
	Latency time.Duration
	Height  uint64
	Peers   int
	Uptime  string
	Err     error
}

// Sweep probes every node of the resolver's network concurrently and
// returns results in ascending node order.
func Sweep(ctx context.Context, r *resolve.Resolver, timeout time.Duration) []NodeHealth {
	count := r.Network().NodeCount
	results := make([]NodeHealth, count)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	for node := 1; node <= count; node++ {
		node := node
		g.Go(func() error {
			h := probe(gctx, r, node, timeout)
			mu.Lock()
			results[node-1] = h
			mu.Unlock()
			return nil
		})
	}

	g.Wait()
	return results
}

func probe(ctx context.Context, r *resolve.Resolver, node int, timeout time.Duration) NodeHealth {
	h := NodeHealth{Node: node}

	url, err := r.NodeRPCURL(node)
	if err != nil {
		h.Status = "DOWN"
		h.Err = err
		return h
	}
	h.RPCURL = url

	client := rpc.NewClient(url, timeout, 0)

	start := time.Now()
	status, err := client.GetStatusSummary(ctx)
	h.Latency = time.Since(start)

	if err != nil {
		h.Status = "DOWN"
		h.Err = err
		return h
	}

	h.Peers = len(status.Peers)
	h.Uptime = status.Uptime
	if status.LastAddedBlockInfo != nil {
		h.Height = status.LastAddedBlockInfo.Height
	}

	if h.Latency > slowLatency {
		h.Status = "SLOW"
	} else {
		h.Status = "UP"
	}
	return h
}
