// Package api is the typed HTTP client for the dashboard server. All
// responses share a JSON envelope discriminated by a boolean success
// field; failures carry the message in error or message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every request issued by the client.
const DefaultTimeout = 10 * time.Second

// response is implemented by every endpoint response via the embedded
// envelope.
type response interface {
	ok() bool
	failure() string
}

// envelope is the common success/failure discriminator.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e envelope) ok() bool { return e.Success }

func (e envelope) failure() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return "unknown error"
}

// Client issues requests against the dashboard server.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the given base URL. token is optional
// and sent as a bearer token when set.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// get issues a GET and decodes the envelope into out.
func (c *Client) get(ctx context.Context, path string, out response) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post issues a POST with an optional JSON body and decodes into out.
func (c *Client) post(ctx context.Context, path string, body any, out response) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// delete issues a DELETE and decodes into out.
func (c *Client) delete(ctx context.Context, path string, out response) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// do performs one request. The envelope is decoded even on non-2xx
// statuses, because the server returns failure envelopes with 4xx/5xx.
func (c *Client) do(ctx context.Context, method, path string, body any, out response) error {
	op := fmt.Sprintf("%s %s", method, path)

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("encode body: %w", err)}
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	if !out.ok() {
		msg := out.failure()
		slog.Debug("api_failure", "op", op, "status", resp.StatusCode, "message", msg)
		return &AppError{Op: op, Message: msg}
	}

	return nil
}
