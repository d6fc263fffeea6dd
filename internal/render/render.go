// Package render normalizes backend responses into labeled, human-readable
// output lines. Every line a view produces carries the same
// "network #N :: <entity> #M" header, successes and failures alike, so any
// line is attributable at a glance.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/tmcph/netview/internal/netctx"
)

var (
	red  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

// rule is the full-width separator printed around status blocks.
const rule = "════════════════════════════════════════════════════════════════════════"

// NodeHeader labels output for one node of one network.
func NodeHeader(net, node int) string {
	return fmt.Sprintf("network #%d :: node #%d", net, node)
}

// AccountHeader labels output for one account. The faucet account carries
// no ordinal.
func AccountHeader(net int, kind netctx.AccountKind, ordinal int) string {
	if kind == netctx.KindFaucet {
		return fmt.Sprintf("network #%d :: faucet", net)
	}
	return fmt.Sprintf("network #%d :: %s #%d", net, kind, ordinal)
}

// SelectMetric scans a raw metrics body for lines containing name and
// returns the last match. Later-declared metrics of the same name win;
// this mirrors the backend's last-write-wins convention for duplicate
// metric families and is deliberate policy, not an artifact. Zero matches
// return the empty string, which is not an error.
func SelectMetric(body, name string) string {
	var match string
	for _, line := range strings.Split(body, "\n") {
		if strings.Contains(line, name) {
			match = line
		}
	}
	return match
}

// MetricLine prints one selected metric line under the node header. An
// empty line (no match) still prints the header with an empty trailing
// segment.
func MetricLine(w io.Writer, net, node int, line string) {
	fmt.Fprintf(w, "%s :: %s\n", NodeHeader(net, node), line)
}

// MetricsRaw prints a node's entire metrics body under a header line.
func MetricsRaw(w io.Writer, net, node int, body string) {
	fmt.Fprintf(w, "%s :: metrics:\n%s", NodeHeader(net, node), body)
	if !strings.HasSuffix(body, "\n") {
		fmt.Fprintln(w)
	}
}

// Rule prints the full-width separator used around status blocks.
func Rule(w io.Writer) {
	fmt.Fprintln(w, rule)
}

// StatusBlock pretty-prints a node's raw info_get_status result under a
// header naming the node and the RPC address it was fetched from.
func StatusBlock(w io.Writer, net, node int, rpcURL string, result json.RawMessage) error {
	fmt.Fprintf(w, "%s :: %s :: %s\n", NodeHeader(net, node), rpcURL, bold("status:"))

	var buf bytes.Buffer
	if err := json.Indent(&buf, result, "", "  "); err != nil {
		return fmt.Errorf("status result is not valid JSON: %w", err)
	}
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}

// Scalar prints a resolved scalar (account hash, balance, key path) under
// an entity header with a short label segment.
func Scalar(w io.Writer, header, label, value string) {
	fmt.Fprintf(w, "%s :: %s :: %s\n", header, label, value)
}

// Failure prints an inline failure line in place of the data the target
// would have produced. Same header as success output; the remaining
// targets of a fan-out are unaffected.
func Failure(w io.Writer, header string, err error) {
	fmt.Fprintf(w, "%s :: %s :: %v\n", header, red("error"), err)
}
