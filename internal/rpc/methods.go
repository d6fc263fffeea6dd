package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
)

// GetStatus calls info_get_status and returns the raw result object for
// the renderer to pretty-print.
func (c *Client) GetStatus(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.Call(ctx, "info_get_status", nil)
	if err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// NodeStatus carries the handful of status fields the overview sweep
// summarizes. The status view proper renders the raw result instead.
type NodeStatus struct {
	APIVersion    string `json:"api_version"`
	ChainspecName string `json:"chainspec_name"`
	Uptime        string `json:"uptime"`
	Peers         []struct {
		NodeID  string `json:"node_id"`
		Address string `json:"address"`
	} `json:"peers"`
	LastAddedBlockInfo *struct {
		Height uint64 `json:"height"`
		Hash   string `json:"hash"`
	} `json:"last_added_block_info"`
}

// GetStatusSummary calls info_get_status and decodes the summary fields.
func (c *Client) GetStatusSummary(ctx context.Context) (*NodeStatus, error) {
	raw, err := c.GetStatus(ctx)
	if err != nil {
		return nil, err
	}

	var status NodeStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, fmt.Errorf("%w: decode status: %v", ErrBadResponse, err)
	}
	return &status, nil
}

// QueryBalance fetches the main-purse balance of the account identified by
// its account hash. Balances are decimal strings on the wire and can
// exceed uint64, hence big.Int.
func (c *Client) QueryBalance(ctx context.Context, accountHash string) (*big.Int, error) {
	params := map[string]interface{}{
		"purse_identifier": map[string]string{
			"main_purse_under_account_hash": accountHash,
		},
	}

	resp, err := c.Call(ctx, "query_balance", params)
	if err != nil {
		return nil, err
	}

	var result struct {
		Balance string `json:"balance"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("%w: decode balance: %v", ErrBadResponse, err)
	}

	balance, ok := new(big.Int).SetString(result.Balance, 10)
	if !ok {
		return nil, fmt.Errorf("%w: invalid balance %q", ErrBadResponse, result.Balance)
	}
	return balance, nil
}
