// Package apiclient talks to the marketplace REST backend on behalf of the
// console. Every call is a single attempt; failures are returned to the
// caller and never retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource yields the bearer token for authorized calls. The session
// store implements it.
type TokenSource interface {
	Token() string
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource
	Logger  *slog.Logger
}

// New returns a client for the backend at baseURL.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Tokens:  tokens,
		Logger:  slog.Default(),
	}
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	public      bool
}

func jsonRequest(method, path string, in any) (request, error) {
	req := request{method: method, path: path}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return req, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		req.body = bytes.NewReader(b)
		req.contentType = "application/json"
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	u := c.BaseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if !r.public && c.Tokens != nil {
		tok := c.Tokens.Token()
		if tok == "" {
			return fmt.Errorf("%w: %s %s", ErrNotAuthenticated, r.method, r.path)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		c.log().Warn("backend request failed", "method", r.method, "path", r.path, "error", err)
		return fmt.Errorf("%w: %s %s: %w", ErrUnreachable, r.method, r.path, err)
	}
	defer res.Body.Close()
	c.log().Debug("backend request", "method", r.method, "path", r.path,
		"status", res.StatusCode, "dur", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(res)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	req, err := jsonRequest(method, path, in)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

func (c *Client) log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func escape(id string) string { return url.PathEscape(id) }
