// Package api is the authenticated client for the AtlasIQ backend.
package api

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
	"time"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/domain/service"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/middleware"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/session"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const refreshPath = "/api/v1/auth/refresh"

var (
	_ service.AuthAPI      = (*Client)(nil)
	_ service.MacroAPI     = (*Client)(nil)
	_ service.DashboardAPI = (*Client)(nil)
)

// Client issues backend calls with the session's bearer token. A 401 is
// recovered at most once per call by refreshing the access token; on an
// unrecoverable 401 the session is cleared.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	refreshes  singleflight.Group
	metrics    *Metrics
	logger     logger.Logger
}

// NewClient creates a backend client. A nil httpClient gets a 10s timeout.
func NewClient(baseURL string, sess *session.Session, httpClient *http.Client, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		session:    sess,
		logger:     logger.OrDefault(log).WithField("component", "api_client"),
	}
}

// WithMetrics attaches prometheus collectors
func (c *Client) WithMetrics(m *Metrics) *Client {
	c.metrics = m
	return c
}

// Session returns the session the client authenticates with
func (c *Client) Session() *session.Session {
	return c.session
}

// Do sends an authenticated request and decodes the 2xx response into out.
// body is JSON-encoded when non-nil; out may be nil, a *[]byte for the raw
// body, or any JSON target.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	payload, err := encodeBody(body)
	if err != nil {
		return err
	}

	sentToken := c.session.AccessToken()
	data, err := c.send(ctx, method, path, query, payload, sentToken)
	if err == nil {
		return decodeBody(data, out)
	}
	if !errors.Is(err, ErrUnauthorized) {
		return err
	}

	token, renewErr := c.renewAccessToken(ctx, sentToken)
	if renewErr != nil {
		c.expireSession(ctx, path, renewErr)
		if errors.Is(renewErr, ErrNoRefreshToken) {
			return err
		}
		return renewErr
	}

	c.logger.Debug("Retrying request with refreshed token", map[string]interface{}{
		"method": method,
		"path":   path,
	})

	data, err = c.send(ctx, method, path, query, payload, token)
	if err != nil {
		c.expireSession(ctx, path, err)
		return err
	}
	return decodeBody(data, out)
}

// DoAnonymous sends a request without credentials and without 401 recovery.
// Used for login, register and the refresh call itself.
func (c *Client) DoAnonymous(ctx context.Context, method, path string, body, out interface{}) error {
	payload, err := encodeBody(body)
	if err != nil {
		return err
	}

	data, err := c.send(ctx, method, path, nil, payload, "")
	if err != nil {
		return err
	}
	return decodeBody(data, out)
}

// Refresh exchanges a refresh token for a new access token
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var resp entity.RefreshResponse
	if err := c.DoAnonymous(ctx, http.MethodPost, refreshPath, entity.RefreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return "", fmt.Errorf("failed to refresh access token: %w", err)
	}
	if resp.AccessToken == "" {
		return "", errors.New("failed to refresh access token: empty access_token in response")
	}
	return resp.AccessToken, nil
}

// renewAccessToken returns the token to retry with after a 401 that was
// sent with stale. Concurrent callers share one refresh call.
func (c *Client) renewAccessToken(ctx context.Context, stale string) (string, error) {
	if current := c.session.AccessToken(); current != "" && current != stale {
		c.metrics.observeRefresh(refreshReused)
		return current, nil
	}

	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		c.metrics.observeRefresh(refreshSkipped)
		return "", ErrNoRefreshToken
	}

	v, err, shared := c.refreshes.Do(refreshToken, func() (interface{}, error) {
		// a previous flight may have finished since the check above
		if current := c.session.AccessToken(); current != "" && current != stale {
			c.metrics.observeRefresh(refreshReused)
			return current, nil
		}

		// one caller cancelling must not fail the others sharing this call
		refreshCtx := context.WithoutCancel(ctx)

		token, err := c.Refresh(refreshCtx, refreshToken)
		if err != nil {
			c.metrics.observeRefresh(refreshFailure)
			return "", err
		}

		if err := c.session.SetAccessToken(refreshCtx, token); err != nil {
			c.logger.Warn("Refreshed token held in memory only", map[string]interface{}{
				"error": err.Error(),
			})
		}

		c.metrics.observeRefresh(refreshSuccess)
		c.logger.Info("Access token refreshed", nil)
		return token, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		c.metrics.observeRefresh(refreshShared)
	}

	return v.(string), nil
}

func (c *Client) expireSession(ctx context.Context, path string, cause error) {
	c.logger.Warn("Session expired, clearing credentials", map[string]interface{}{
		"path":  path,
		"error": cause.Error(),
	})
	if err := c.session.Clear(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error("Failed to clear credentials", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observeRequest(method, 0, time.Since(start))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug("Error closing response body", map[string]interface{}{"error": closeErr.Error()})
		}
	}()

	data, err := io.ReadAll(resp.Body)
	c.metrics.observeRequest(method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("Backend response", map[string]interface{}{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, data)
	}
	return data, nil
}

func requestID(ctx context.Context) string {
	if id := middleware.GetRequestID(ctx); id != "" && id != middleware.UnknownRequestID {
		return id
	}
	return uuid.New().String()
}

func encodeBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return data, nil
}

func decodeBody(data []byte, out interface{}) error {
	switch target := out.(type) {
	case nil:
		return nil
	case *[]byte:
		*target = data
		return nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
