// Package rpc implements the backend query executor: JSON-RPC calls
// against a node's RPC endpoint and plain GETs against its REST endpoint.
package rpc

import (
	"encoding/json"
	"errors"
)

// Failure kinds surfaced to callers. Transport-level failures (connection
// refused, timeout) are ErrUnreachable; anything the backend answered with
// that cannot be used (non-2xx, malformed JSON, an RPC error member) is
// ErrBadResponse. Check with errors.Is.
var (
	ErrUnreachable = errors.New("endpoint unreachable")
	ErrBadResponse = errors.New("bad response")
)

// Request is a JSON-RPC 2.0 request envelope. Params is any JSON value;
// the node's API takes named parameter objects.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
	ID      int         `json:"id"`
}

// Response is a JSON-RPC 2.0 response envelope. Result is kept raw so each
// method can decode exactly the fields it needs, and so the status view
// can pretty-print the whole object untouched.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
