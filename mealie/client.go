// Package mealie is a thin client for a self-hosted Mealie instance's REST
// API. It carries one method per route, sends the configured bearer token on
// every request, and decodes responses generically so tool callers see the
// backend payload unmodified. It never retries.
package mealie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mealiemcp"
)

type Client struct {
	baseURL string
	token   string
	hc      mealiemcp.HTTPClient
}

// New creates a Client for the Mealie instance at baseURL. Pass the HTTP
// client that should carry the requests; nil falls back to http.DefaultClient.
func New(baseURL, token string, hc mealiemcp.HTTPClient) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		hc:      hc,
	}
}

// do runs a single request and returns the raw response body. Non-2xx
// statuses and transport failures come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal request body: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Op: op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, StatusCode: resp.StatusCode, Op: op, Message: "read response body: " + err.Error(), Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError(op, resp.StatusCode, data)
	}
	return data, nil
}

// object runs a request expected to return a JSON object. Empty and null
// bodies decode to an empty map.
func (c *Client) object(ctx context.Context, method, path string, query url.Values, body any) (map[string]any, error) {
	data, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return map[string]any{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return out, nil
}

// objects runs a request expected to return a JSON array of objects.
func (c *Client) objects(ctx context.Context, method, path string, query url.Values, body any) ([]map[string]any, error) {
	data, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return []map[string]any{}, nil
	}
	var out []map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return out, nil
}

// text runs a request expected to return a bare JSON string, e.g. the slug
// handed back by recipe creation.
func (c *Client) text(ctx context.Context, method, path string, query url.Values, body any) (string, error) {
	data, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return "", err
	}
	var out string
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return out, nil
}

func pageQuery(page, perPage int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("perPage", strconv.Itoa(perPage))
	}
	return q
}
