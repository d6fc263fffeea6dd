// Package output renders the network overview table to the terminal.
package output

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/tmcph/netview/internal/health"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// RenderOverview prints the per-node health table for one network.
func RenderOverview(net int, nodes []health.NodeHealth) {
	fmt.Println()
	fmt.Printf("%s\n", bold(fmt.Sprintf("Network #%d Overview (%d nodes)", net, len(nodes))))
	fmt.Println()

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("Node", "Status", "Height", "Peers", "Uptime", "Latency")
	tbl.WithHeaderFormatter(headerFmt)

	up := 0
	for _, n := range nodes {
		if n.Err != nil {
			tbl.AddRow(n.Node, formatStatus(n.Status), "—", "—", "—", formatLatency(n.Latency))
			continue
		}
		up++
		tbl.AddRow(
			n.Node,
			formatStatus(n.Status),
			n.Height,
			n.Peers,
			n.Uptime,
			formatLatency(n.Latency),
		)
	}

	tbl.Print()

	fmt.Println()
	if up == len(nodes) {
		fmt.Printf("  %s all %d nodes responding\n", green("✓"), len(nodes))
	} else {
		fmt.Printf("  %s %d of %d nodes responding\n", yellow("⚠"), up, len(nodes))
		for _, n := range nodes {
			if n.Err != nil {
				fmt.Printf("    node #%d: %v\n", n.Node, n.Err)
			}
		}
	}
	fmt.Println()
}

func formatStatus(status string) string {
	switch status {
	case "UP":
		return green("✓ UP")
	case "SLOW":
		return yellow("⚠ SLOW")
	case "DOWN":
		return red("✗ DOWN")
	default:
		return status
	}
}

func formatLatency(d time.Duration) string {
	if d == 0 {
		return "—"
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
