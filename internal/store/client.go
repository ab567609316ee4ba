package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Table names in the backing store.
const (
	TableRoutes    = "routes"
	TableVendors   = "vendors"
	TableCamps     = "camps"
	TableAddresses = "addresses"
)

// APIError is the single error type the rest of the service sees for
// any transport or HTTP failure against the backing store.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("store request failed with status %d", e.StatusCode)
}

// Client issues authenticated requests against the backing store's
// PostgREST-style REST dialect.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// New builds a Client for the given base URL and service credential.
// A default timeout applies since no caller threads a deadline through.
func New(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Select fetches rows from a table with the given filter params.
func (c *Client) Select(ctx context.Context, table string, params url.Values) ([]json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, table, params, nil)
}

// Insert creates rows and returns the stored representation.
func (c *Client) Insert(ctx context.Context, table string, body any) ([]json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, table, nil, body)
}

// Update patches rows matching params and returns the stored representation.
func (c *Client) Update(ctx context.Context, table string, params url.Values, body any) ([]json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, table, params, body)
}

func (c *Client) do(ctx context.Context, method, table string, params url.Values, body any) ([]json.RawMessage, error) {
	endpoint := c.baseURL + "/" + table
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Message: "encode request body: " + err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		// Mutations should echo back the stored row.
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: extractMessage(raw, resp.StatusCode)}
	}

	return normalizeRows(raw)
}

// extractMessage pulls the store's own message out of an error body when
// present, falling back to a generic status line.
func extractMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return fmt.Sprintf("store returned HTTP %d", status)
}

// normalizeRows forces the upstream's maybe-array, maybe-object response
// shape into a list so that ambiguity never leaks past this boundary.
func normalizeRows(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var rows []json.RawMessage
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, &APIError{Message: "decode store response: " + err.Error()}
		}
		return rows, nil
	}
	if trimmed[0] == '{' {
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	}
	return nil, &APIError{Message: "unexpected store response shape"}
}

// DecodeRows unmarshals normalized rows into a typed slice.
func DecodeRows[T any](rows []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, &APIError{Message: "decode row: " + err.Error()}
		}
		out = append(out, v)
	}
	return out, nil
}
