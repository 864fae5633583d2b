package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient implements Client over the JSON wire protocol.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
}

// NewHTTPClient builds a client for the given endpoint. tokens may be nil
// for servers that accept anonymous writes.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenProvider) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Ping checks server reachability.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil)
}

func (c *HTTPClient) CreateHighlight(ctx context.Context, req *CreateHighlightRequest) error {
	return c.do(ctx, http.MethodPost, "/highlights", req)
}

func (c *HTTPClient) DeleteHighlight(ctx context.Context, highlightId string, updatedAt int64) error {
	path := fmt.Sprintf("/highlights/%s/%d", url.PathEscape(highlightId), updatedAt)
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *HTTPClient) SaveHighlightNote(ctx context.Context, req *SaveHighlightNoteRequest) error {
	return c.do(ctx, http.MethodPost, "/highlights/note", req)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
