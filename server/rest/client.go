// Package rest wraps the rental platform's admin API behind a small
// typed HTTP client. It owns the cross-cutting concerns the services
// above it never think about: bearer token injection, query encoding,
// JSON decoding, request timeouts, and the 401 logout path.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	gopath "path"
	"time"

	"github.com/google/uuid"
	"github.com/movaro/fleetboard/server/telemetry"
)

// ErrUnauthorized is returned when the backend rejects our token.
// The stored token has already been cleared by the time callers see it.
var ErrUnauthorized = errors.New("rest: unauthorized")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Path    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d on %s: %s", e.Status, e.Path, e.Message)
	}
	return fmt.Sprintf("api error %d on %s", e.Status, e.Path)
}

type Client struct {
	base   *url.URL
	client *http.Client
	tokens TokenSource
}

// NewClient builds a client rooted at baseURL. The token source is the
// injected credential capability; pass nil for an anonymous client.
// A non-positive timeout falls back to 15 seconds so a hung backend
// can never hang the dashboard.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url [%s]: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base:   u,
		client: &http.Client{Timeout: timeout},
		tokens: tokens,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = gopath.Join(u.Path, path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("creating %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		switch {
		case errors.Is(err, ErrNoToken):
			// no credentials yet, let the backend decide
		case err != nil:
			return fmt.Errorf("loading token: %w", err)
		case token != "":
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// The token is no good; drop it so the next login starts clean.
		if c.tokens != nil {
			if cerr := c.tokens.Clear(ctx); cerr != nil {
				telemetry.Error(cerr, "clearing stored token")
			}
		}
		telemetry.Increment("unauthorized_responses", 1)
		return ErrUnauthorized
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.apiError(resp, path)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) apiError(resp *http.Response, path string) error {
	apiErr := &APIError{
		Status: resp.StatusCode,
		Path:   path,
	}
	// Error bodies come in two shapes depending on backend version.
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4000))
	if err == nil && json.Unmarshal(b, &payload) == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
	}
	return apiErr
}
