// Package client is a small JSON API client for the tubebridge service,
// used by the admin CLI and by integration tooling.
//
// The client attaches the caller's bearer token to every request. When the
// server answers 401 the stored token is cleared and a one-shot expiry hook
// fires, so callers can prompt for a fresh login instead of retrying with a
// dead credential.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
)

const defaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	// BaseURL is the root of the API, e.g. "http://localhost:8080".
	BaseURL string

	// Token is the initial bearer token. Optional; unauthenticated requests
	// simply omit the Authorization header.
	Token string

	// HTTPClient overrides the transport. Defaults to a 30s-timeout client.
	HTTPClient *http.Client

	// OnAuthExpired fires at most once, the first time the server answers 401.
	OnAuthExpired func()
}

// Client is a thread-safe JSON API client.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu            sync.Mutex
	token         string
	onAuthExpired func()
	expiredFired  bool
}

// New constructs a Client.
func New(opts Options) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:       base,
		httpClient:    httpClient,
		token:         opts.Token,
		onAuthExpired: opts.OnAuthExpired,
	}, nil
}

// SetToken replaces the bearer token and re-arms the expiry hook.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.expiredFired = false
}

// Token returns the current bearer token, or empty after a 401 cleared it.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// errorBody is the server's error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs a JSON round trip. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeNetwork, "request failed before a response was received")
	}
	defer resp.Body.Close() //nolint:errcheck // nothing actionable on close failure

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
		return apperrors.AuthExpired("authentication expired, log in again")
	}
	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return fmt.Errorf("decode response body: %w", decodeErr)
	}
	return nil
}

// handleUnauthorized clears the stored token and fires the expiry hook once.
func (c *Client) handleUnauthorized() {
	c.mu.Lock()
	c.token = ""
	fire := !c.expiredFired && c.onAuthExpired != nil
	c.expiredFired = true
	hook := c.onAuthExpired
	c.mu.Unlock()

	if fire {
		hook()
	}
}

// decodeAPIError maps a non-2xx response to a typed application error.
func decodeAPIError(resp *http.Response) error {
	var body errorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)
	message := body.Message
	if message == "" {
		message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperrors.NotFound(message)
	case http.StatusConflict:
		return apperrors.Conflict(message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.Validation(message)
	case http.StatusForbidden:
		return apperrors.Wrap(errors.New(message), apperrors.ErrCodeAuthExchange, "insufficient role")
	default:
		return apperrors.Internalf("%s (HTTP %d)", message, resp.StatusCode)
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
