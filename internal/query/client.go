// Package query implements the client for the remote data/query backend.
// The backend exposes PostgREST-style table reads (filter, order, range
// pagination), a small set of stored procedures, and a profile row store.
package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Pranshu-J/Open-Hedge/internal/common"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Client communicates with the remote query backend REST API.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a new client targeting the given backend URL.
func NewClient(baseURL, anonKey string, logger *common.Logger) *Client {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Client{
		baseURL:    baseURL,
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// From starts a table read against the given table or view.
func (c *Client) From(table string) *Builder {
	return &Builder{client: c, table: table, selectCols: "*"}
}

// RPC invokes a server-side stored procedure with the given params,
// decoding the JSON result into dest. Used for keyword ticker search so
// relevance ranking stays server-side.
func (c *Client) RPC(ctx context.Context, name string, params interface{}, dest interface{}) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode rpc params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/v1/rpc/"+name, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req)

	return c.do(req, dest)
}

// setAuthHeaders attaches the anon key headers expected by the backend.
func (c *Client) setAuthHeaders(req *http.Request) {
	if c.anonKey != "" {
		req.Header.Set("apikey", c.anonKey)
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}
}

// do executes a request and decodes the JSON response into dest (if non-nil).
func (c *Client) do(req *http.Request, dest interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(body)
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
			msg = envelope.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if dest == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
