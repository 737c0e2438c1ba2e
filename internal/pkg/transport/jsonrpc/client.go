// Package jsonrpc is a JSON-RPC 2.0 client for node endpoints. Requests go over
// plain HTTP (one POST per call) or over a single multiplexed WebSocket
// connection; both satisfy Conn.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrProviderReturnedError indicates that the node answered with a JSON-RPC error object.
	ErrProviderReturnedError = errors.New("provider error")

	// ErrConnectionClosed is returned for requests still waiting when a WebSocket connection drops.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrUnsupportedScheme is returned by Dial for endpoints that are neither http(s) nor ws(s).
	ErrUnsupportedScheme = errors.New("unsupported endpoint scheme")
)

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type request struct {
	JsonRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

func newRequest(method string, params []any) request {
	if params == nil {
		params = []any{}
	}

	return request{
		JsonRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
	}
}

// response is a JSON-RPC 2.0 response. Notifications carry no id.
type response struct {
	JsonRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Error   *rpcError       `json:"error"`
	Result  json.RawMessage `json:"result"`
}

// Err wraps ErrProviderReturnedError with the code and message of the error object, if any.
func (r response) Err() error {
	if r.Error == nil {
		return nil
	}

	return fmt.Errorf("%w: [%d] - %s", ErrProviderReturnedError, r.Error.Code, r.Error.Message)
}

// Client sends one JSON-RPC call and returns its raw result.
type Client interface {
	Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

// Conn is a Client that holds resources until closed.
type Conn interface {
	Client
	Close() error
}

// httpClient posts each request to providerEndpoint.
type httpClient struct {
	providerEndpoint string
	httpClient       *http.Client
}

var _ Conn = (*httpClient)(nil)

func (c *httpClient) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	body, err := json.Marshal(newRequest(method, params))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.providerEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var data response
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, err
	}

	return data.Result, data.Err()
}

// Close is a no-op; the underlying http.Client is owned by the caller.
func (c *httpClient) Close() error {
	return nil
}

// NewHTTPClient returns a Conn that sends requests with client to providerEndpoint.
func NewHTTPClient(client *http.Client, providerEndpoint string) *httpClient {
	return &httpClient{
		providerEndpoint: providerEndpoint,
		httpClient:       client,
	}
}

// Dial picks the transport from the endpoint scheme: ws:// and wss:// open a
// WebSocket connection, http:// and https:// use client.
func Dial(ctx context.Context, endpoint string, client *http.Client) (Conn, error) {
	switch {
	case strings.HasPrefix(endpoint, "ws://"), strings.HasPrefix(endpoint, "wss://"):
		return DialWebSocket(ctx, endpoint)
	case strings.HasPrefix(endpoint, "http://"), strings.HasPrefix(endpoint, "https://"):
		return NewHTTPClient(client, endpoint), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, endpoint)
	}
}
