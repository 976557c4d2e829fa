// Package api is the HTTP client for the watcher backend. Every call
// attaches the current session credential; any auth rejection tears the
// session down through the registered handler.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gdwatch/console/internal/domain"
	"github.com/gdwatch/console/internal/logger"
	"github.com/gdwatch/console/internal/schema"
)

// CredentialSource supplies the current session credential. An empty
// string means no session is active.
type CredentialSource interface {
	Credential() string
}

// Client is an API client for the watcher backend
type Client struct {
	baseURL        string
	httpClient     *http.Client
	creds          CredentialSource
	onUnauthorized func()
	log            logger.Logger
}

// New creates a new backend client. baseURL points at the backend API
// root, e.g. "http://127.0.0.1:8448/api".
func New(baseURL string, creds CredentialSource, log logger.Logger) *Client {
	if log == nil {
		log = &logger.NullLogger{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		creds: creds,
		log:   log,
	}
}

// SetTimeout overrides the default request timeout
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// OnUnauthorized registers the session teardown handler. It runs once per
// auth-rejected response, before the call returns domain.ErrUnauthorized.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// LoginResult is the backend's answer to a structured login call
type LoginResult struct {
	Status  string `json:"status,omitempty"`
	Success bool   `json:"success,omitempty"`
}

// OK reports whether the backend accepted the login
func (r LoginResult) OK() bool {
	return r.Status == "ok" || r.Success
}

// LogsResponse is the backend's log snapshot
type LogsResponse struct {
	Logs    []string `json:"logs"`
	NextIdx int      `json:"next_idx"`
}

// Status is the backend's health and counters snapshot
type Status struct {
	Status           string  `json:"status"`
	UptimeSeconds    int64   `json:"uptime_seconds"`
	UptimeDisplay    string  `json:"uptime_display"`
	StartTime        string  `json:"start_time"`
	TodayCompleted   int64   `json:"today_completed_tasks"`
	HistoryCompleted int64   `json:"history_completed_tasks"`
	CPUUsage         float64 `json:"cpu_usage"`
	MemoryUsage      float64 `json:"memory_usage"`
	Goroutines       int     `json:"goroutines"`
}

// Login performs the structured login call. A transport or auth failure
// is returned as an error; a clean "rejected" answer comes back as a
// non-OK result.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var result LoginResult
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// ProbeConfig reads the configuration endpoint with an explicit
// credential, bypassing the session. Used by the login fallback to test
// whether a derived credential is accepted.
func (c *Client) ProbeConfig(ctx context.Context, credential string) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/config/get", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Basic "+credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	// Deliberately no teardown here: a failed probe means the candidate
	// credential is bad, not that the current session is.
	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("probe failed with status %d", resp.StatusCode)
	}
	return nil
}

// FetchConfig retrieves the raw wire configuration document
func (c *Client) FetchConfig(ctx context.Context) ([]byte, error) {
	return c.doRequestRaw(ctx, http.MethodGet, "/config/get", nil)
}

// UpdateConfig writes the full wire configuration document. There is no
// partial-update protocol; every save transmits everything.
func (c *Client) UpdateConfig(ctx context.Context, w schema.Wire) error {
	return c.doRequest(ctx, http.MethodPost, "/config/update", w, nil)
}

// FetchLogs retrieves the backend's in-memory log lines
func (c *Client) FetchLogs(ctx context.Context) (LogsResponse, error) {
	var resp LogsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/logs", nil, &resp); err != nil {
		return LogsResponse{}, err
	}
	return resp, nil
}

// ClearMemoryLogs clears the backend's in-memory log buffer
func (c *Client) ClearMemoryLogs(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, "/logs/clear_mem", nil, nil)
}

// ClearLogFiles deletes the backend's persisted log files
func (c *Client) ClearLogFiles(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, "/logs/clear-files", nil, nil)
}

// TriggerSync asks the backend to run an incremental sync now
func (c *Client) TriggerSync(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, "/trigger", nil, nil)
}

// TriggerFullRefresh asks the backend to run a full rclone refresh
func (c *Client) TriggerFullRefresh(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, "/rclone_full", nil, nil)
}

// RebuildIndex asks the backend to rebuild its file tree cache
func (c *Client) RebuildIndex(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, "/tree/refresh", nil, nil)
}

// TestNotification sends a test media notification for the given path
func (c *Client) TestNotification(ctx context.Context, path string) error {
	body := map[string]string{"path": path}
	return c.doRequest(ctx, http.MethodPost, "/test_symedia", body, nil)
}

// OAuthLoginURL fetches the backend's Google consent URL
func (c *Client) OAuthLoginURL(ctx context.Context) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/auth/login_url", nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// FetchStatus retrieves the backend's status snapshot
func (c *Client) FetchStatus(ctx context.Context) (Status, error) {
	var s Status
	if err := c.doRequest(ctx, http.MethodGet, "/status", nil, &s); err != nil {
		return Status{}, err
	}
	return s, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// doRequestRaw performs a request and returns the response body
func (c *Client) doRequestRaw(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if cred := c.creds.Credential(); cred != "" {
		req.Header.Set("Authorization", "Basic "+cred)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn("backend rejected session credential", "path", path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrUnauthorized)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s failed with status %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return respBody, nil
}

// doRequest performs a request and decodes the JSON response into result
// when result is non-nil.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	respBody, err := c.doRequestRaw(ctx, method, path, body)
	if err != nil {
		return err
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
