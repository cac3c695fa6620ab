package rostersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the anonymous endpoints and opens Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client with a 10s request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates a non-admin account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var out User
	if err := c.do(ctx, "", http.MethodPost, "/v1/auth/register", req, nil, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns a Session bound to the issued token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	var out LoginResponse
	if err := c.do(ctx, "", http.MethodPost, "/v1/auth/login", req, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &Session{client: c, token: out.Token, expiresAt: out.ExpiresAt, user: out.User}, nil
}

// Bootstrap creates the first administrator using the deployment's
// one-time bootstrap token.
func (c *Client) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	var out BootstrapResponse
	headers := map[string]string{"X-Bootstrap-Token": token}
	if err := c.do(ctx, "", http.MethodPost, "/v1/bootstrap", req, headers, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez calls the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, "", http.MethodGet, "/livez", nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz calls the readiness probe.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, "", http.MethodGet, "/readyz", nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// JWKS fetches the token verification keys as raw JSON.
func (c *Client) JWKS(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, "", http.MethodGet, "/.well-known/jwks.json", nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchAvatar downloads the image at an avatarPath such as
// "/avatars/default.png".
func (c *Client) FetchAvatar(ctx context.Context, avatarPath string) ([]byte, string, error) {
	resp, err := c.send(ctx, "", http.MethodGet, avatarPath, nil, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", parseError(resp, body)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// send builds and executes a request. body is sent as is; token, when set,
// goes into the Authorization header.
func (c *Client) send(
	ctx context.Context,
	token, method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// do sends in as JSON (when non-nil) and decodes a want-status response
// into out (when non-nil).
func (c *Client) do(
	ctx context.Context,
	token, method, path string,
	in any,
	headers map[string]string,
	out any,
	want int,
) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
		if headers == nil {
			headers = map[string]string{}
		}
		headers["Content-Type"] = "application/json"
	}

	resp, err := c.send(ctx, token, method, path, body, headers)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, want)
}

func decodeJSON(resp *http.Response, out any, want int) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != want {
		return parseError(resp, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
