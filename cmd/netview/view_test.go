package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/tmcph/netview/internal/resolve"
	"github.com/tmcph/netview/internal/rpc"
)

const testPubHex = "01000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
const testAccountHash = "account-hash-44e8939addecbe7a28af95af337284613d2d82d158f90b9e669599a83d575fee"

// writeAssets creates a net-1 asset tree with the given vars.yaml content
// and key material under each listed key directory.
func writeAssets(t *testing.T, vars string, keyDirs ...string) string {
	t.Helper()
	root := t.TempDir()
	netDir := filepath.Join(root, "net-1")
	if err := os.MkdirAll(netDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(netDir, "vars.yaml"), []byte(vars), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, keyDir := range keyDirs {
		full := filepath.Join(netDir, keyDir)
		if err := os.MkdirAll(full, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(full, "public_key_hex"), []byte(testPubHex), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(full, "secret_key.pem"), []byte("key"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	return root
}

func writeConfig(t *testing.T, assets, host string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "netview.yaml")
	content := fmt.Sprintf("assets_dir: %s\nhost: %s\ndefaults:\n  timeout: 2s\n", assets, host)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runView executes a netview command and captures its stdout.
func runView(t *testing.T, args ...string) (string, error) {
	t.Helper()

	old := os.Stdout
	rp, wp, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = wp

	root := newRootCmd()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	execErr := root.Execute()

	wp.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rp); err != nil {
		t.Fatal(err)
	}
	return buf.String(), execErr
}

// serverPortBase returns the port base that makes net 1, node 1 resolve
// to the test server's port.
func serverPortBase(t *testing.T, srv *httptest.Server) (host string, base int) {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatal(err)
	}
	return u.Hostname(), port - 101
}

func countRules(out string) int {
	rules := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "════") {
			rules++
		}
	}
	return rules
}

func TestStatusViewSingleNode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rpc.Response{
			JSONRPC: "2.0",
			ID:      1,
			Result:  json.RawMessage(`{"api_version":"1.5.6","chainspec_name":"netview-local"}`),
		})
	}))
	defer srv.Close()

	host, base := serverPortBase(t, srv)
	assets := writeAssets(t, fmt.Sprintf("node_count: 1\nuser_count: 0\nrpc_port_base: %d\n", base))
	cfg := writeConfig(t, assets, host)

	out, err := runView(t, "status", "--config", cfg, "--node", "1")
	if err != nil {
		t.Fatalf("status error: %v", err)
	}

	if !strings.Contains(out, "network #1 :: node #1 :: ") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, `"api_version": "1.5.6"`) {
		t.Errorf("status result not pretty-printed: %q", out)
	}
	if got := countRules(out); got != 2 {
		t.Errorf("rules = %d, want 2 around a single block", got)
	}
}

func TestStatusViewAllFramesEveryBlock(t *testing.T) {
	// Both nodes point at closed ports: every block is an inline failure,
	// the sweep still frames all of them and the command still succeeds.
	assets := writeAssets(t, "node_count: 2\nuser_count: 0\nrpc_port_base: 19300\n")
	cfg := writeConfig(t, assets, "127.0.0.1")

	out, err := runView(t, "status", "--config", cfg, "--node", "all")
	if err != nil {
		t.Fatalf("fan-out with down nodes must not fail the command: %v", err)
	}

	if got := countRules(out); got != 3 {
		t.Errorf("rules = %d, want 3 around 2 blocks", got)
	}
	for node := 1; node <= 2; node++ {
		if !strings.Contains(out, fmt.Sprintf("network #1 :: node #%d :: ", node)) {
			t.Errorf("missing inline failure for node #%d: %q", node, out)
		}
	}
	if i1, i2 := strings.Index(out, "node #1"), strings.Index(out, "node #2"); i1 > i2 {
		t.Error("blocks out of ascending order")
	}
}

func TestStatusViewOutOfRangeEmitsNothing(t *testing.T) {
	assets := writeAssets(t, "node_count: 2\nuser_count: 0\n")
	cfg := writeConfig(t, assets, "127.0.0.1")

	out, err := runView(t, "status", "--config", cfg, "--node", "9")
	if !errors.Is(err, resolve.ErrOutOfRange) {
		t.Errorf("error = %v, want ErrOutOfRange", err)
	}
	if out != "" {
		t.Errorf("out-of-range target produced partial output: %q", out)
	}
}

func TestStatusViewUnknownNetworkIsFatal(t *testing.T) {
	cfg := writeConfig(t, t.TempDir(), "127.0.0.1")

	_, err := runView(t, "status", "--config", cfg, "--net", "7")
	if err == nil {
		t.Fatal("missing network vars must fail the whole command")
	}
}

func TestMetricsViewSelectsLastMatch(t *testing.T) {
	body := "# HELP mem_usage resident memory\nmem_usage 1024\nuptime 33\nmem_usage 2048\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	host, base := serverPortBase(t, srv)
	assets := writeAssets(t, fmt.Sprintf("node_count: 1\nuser_count: 0\nrest_port_base: %d\n", base))
	cfg := writeConfig(t, assets, host)

	out, err := runView(t, "metrics", "--config", cfg, "--node", "1", "--metric", "mem_usage")
	if err != nil {
		t.Fatalf("metrics error: %v", err)
	}

	want := "network #1 :: node #1 :: mem_usage 2048\n"
	if out != want {
		t.Errorf("output = %q, want %q (last match wins)", out, want)
	}
}

func TestMetricsViewMissingMetricKeepsHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("uptime 33\n"))
	}))
	defer srv.Close()

	host, base := serverPortBase(t, srv)
	assets := writeAssets(t, fmt.Sprintf("node_count: 1\nuser_count: 0\nrest_port_base: %d\n", base))
	cfg := writeConfig(t, assets, host)

	out, err := runView(t, "metrics", "--config", cfg, "--node", "1", "--metric", "tx_pool")
	if err != nil {
		t.Fatalf("a metric with no matches must not fail the command: %v", err)
	}
	if out != "network #1 :: node #1 :: \n" {
		t.Errorf("output = %q, want header with empty segment", out)
	}
}

func TestMetricsViewRawBody(t *testing.T) {
	body := "uptime 33\nmem_usage 2048\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	host, base := serverPortBase(t, srv)
	assets := writeAssets(t, fmt.Sprintf("node_count: 1\nuser_count: 0\nrest_port_base: %d\n", base))
	cfg := writeConfig(t, assets, host)

	out, err := runView(t, "metrics", "--config", cfg, "--node", "1")
	if err != nil {
		t.Fatalf("metrics error: %v", err)
	}
	if !strings.Contains(out, body) {
		t.Errorf("raw body not emitted verbatim: %q", out)
	}
}

func TestHashViewFansOutOverUsers(t *testing.T) {
	assets := writeAssets(t, "node_count: 1\nuser_count: 3\n",
		"users/user-1", "users/user-2", "users/user-3")
	cfg := writeConfig(t, assets, "127.0.0.1")

	out, err := runView(t, "hash", "--config", cfg)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (one per user): %q", len(lines), out)
	}
	for i, line := range lines {
		want := fmt.Sprintf("network #1 :: user #%d :: account-hash :: %s", i+1, testAccountHash)
		if line != want {
			t.Errorf("line %d = %q, want %q", i, line, want)
		}
	}

	// Unchanged inputs, byte-identical output.
	again, err := runView(t, "hash", "--config", cfg)
	if err != nil {
		t.Fatalf("second hash run error: %v", err)
	}
	if again != out {
		t.Error("repeated invocation produced different output")
	}
}

func TestHashViewNodeSelector(t *testing.T) {
	assets := writeAssets(t, "node_count: 3\nuser_count: 0\n",
		"nodes/node-1/keys", "nodes/node-2/keys", "nodes/node-3/keys")
	cfg := writeConfig(t, assets, "127.0.0.1")

	out, err := runView(t, "hash", "--config", cfg, "--node", "all")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (one per node): %q", len(lines), out)
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, fmt.Sprintf("network #1 :: node #%d :: ", i+1)) {
			t.Errorf("line %d = %q, want node #%d header", i, line, i+1)
		}
	}
}

func TestHashViewMissingKeysReportedInline(t *testing.T) {
	// Users 1 and 3 have key material, user 2 does not: the fan-out
	// reports user 2 inline and still renders the others.
	assets := writeAssets(t, "node_count: 1\nuser_count: 3\n",
		"users/user-1", "users/user-3")
	cfg := writeConfig(t, assets, "127.0.0.1")

	out, err := runView(t, "hash", "--config", cfg, "--user", "all")
	if err != nil {
		t.Fatalf("partial key material must not fail the command: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], testAccountHash) {
		t.Errorf("user #1 line = %q, want hash", lines[0])
	}
	if !strings.HasPrefix(lines[1], "network #1 :: user #2 :: ") || strings.Contains(lines[1], testAccountHash) {
		t.Errorf("user #2 line = %q, want inline failure", lines[1])
	}
	if !strings.Contains(lines[2], testAccountHash) {
		t.Errorf("user #3 line = %q, want hash", lines[2])
	}
}

func TestKeypathViewFaucet(t *testing.T) {
	assets := writeAssets(t, "node_count: 1\nuser_count: 0\n", "faucet")
	cfg := writeConfig(t, assets, "127.0.0.1")

	out, err := runView(t, "keypath", "--config", cfg, "--faucet")
	if err != nil {
		t.Fatalf("keypath error: %v", err)
	}

	if !strings.HasPrefix(out, "network #1 :: faucet :: secret-key :: ") {
		t.Errorf("output = %q, want faucet header", out)
	}
	if !strings.Contains(out, filepath.Join("faucet", "secret_key.pem")) {
		t.Errorf("output = %q, want secret key path", out)
	}
}

func TestBalanceViewQueriesViaNode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpc.Request
		json.NewDecoder(r.Body).Decode(&req)
		if req.Method != "query_balance" {
			t.Errorf("method = %q, want query_balance", req.Method)
		}
		json.NewEncoder(w).Encode(rpc.Response{
			JSONRPC: "2.0",
			ID:      1,
			Result:  json.RawMessage(`{"balance":"123456789"}`),
		})
	}))
	defer srv.Close()

	host, base := serverPortBase(t, srv)
	assets := writeAssets(t, fmt.Sprintf("node_count: 1\nuser_count: 0\nrpc_port_base: %d\n", base),
		"nodes/node-1/keys")
	cfg := writeConfig(t, assets, host)

	out, err := runView(t, "balance", "--config", cfg)
	if err != nil {
		t.Fatalf("balance error: %v", err)
	}

	want := "network #1 :: node #1 :: balance :: 123456789\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestAccountFlagsAreMutuallyExclusive(t *testing.T) {
	assets := writeAssets(t, "node_count: 1\nuser_count: 1\n")
	cfg := writeConfig(t, assets, "127.0.0.1")

	if _, err := runView(t, "hash", "--config", cfg, "--node", "1", "--user", "1"); err == nil {
		t.Error("hash accepted both --node and --user")
	}
	if _, err := runView(t, "keypath", "--config", cfg, "--user", "1", "--faucet"); err == nil {
		t.Error("keypath accepted both --user and --faucet")
	}
}
