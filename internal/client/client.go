// Package client implements the HTTP client for the VoltageGPU REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/Jabsama/VOLTAGEGPU-CLI/pkg/api"
)

const userAgent = "VoltageGPU-CLI/0.1.0"

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// Client handles API calls to the VoltageGPU platform.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client

	limiter     *rate.Limiter
	maxAttempts int
	backoffBase time.Duration
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithRetry overrides the retry policy.
func WithRetry(maxAttempts int, backoffBase time.Duration) Option {
	return func(c *Client) {
		c.maxAttempts = maxAttempts
		c.backoffBase = backoffBase
	}
}

// WithRateLimit overrides the client-side request rate limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// New creates a new client with the given base URL and API key.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// The platform throttles at 10 rps per key; stay under it.
		limiter:     rate.NewLimiter(rate.Limit(8), 8),
		maxAttempts: 3,
		backoffBase: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryable reports whether a response status warrants another attempt.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// do issues one API request with rate limiting and bounded retry, and
// decodes a 2xx response body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := c.backoffBase*(1<<(attempt-1)) + time.Duration(rand.Int63n(int64(500*time.Millisecond)))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
		req.Header.Add("Content-Type", "application/json")
		req.Header.Add("User-Agent", userAgent)

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if out == nil {
				return nil
			}
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			return nil
		}

		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		var errResp api.ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
		if !retryable(resp.StatusCode) {
			return apiErr
		}
		lastErr = apiErr
	}
	return lastErr
}

// ==================== PODS ====================

// ListPods returns all pods for the current user.
func (c *Client) ListPods(ctx context.Context) ([]api.Pod, error) {
	var resp api.ListPodsResponse
	if err := c.do(ctx, http.MethodGet, "/volt/pods", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Pods, nil
}

// GetPod returns details of a specific pod.
func (c *Client) GetPod(ctx context.Context, podID string) (*api.Pod, error) {
	var pod api.Pod
	if err := c.do(ctx, http.MethodGet, "/volt/pods/"+url.PathEscape(podID), nil, &pod); err != nil {
		return nil, err
	}
	return &pod, nil
}

// CreatePod rents a new pod from a template.
func (c *Client) CreatePod(ctx context.Context, req api.CreatePodRequest) (*api.Pod, error) {
	var pod api.Pod
	if err := c.do(ctx, http.MethodPost, "/volt/pods", req, &pod); err != nil {
		return nil, err
	}
	return &pod, nil
}

// StartPod starts a stopped pod.
func (c *Client) StartPod(ctx context.Context, podID string) (*api.Pod, error) {
	var pod api.Pod
	if err := c.do(ctx, http.MethodPost, "/volt/pods/"+url.PathEscape(podID)+"/start", nil, &pod); err != nil {
		return nil, err
	}
	return &pod, nil
}

// StopPod stops a running pod.
func (c *Client) StopPod(ctx context.Context, podID string) (*api.Pod, error) {
	var pod api.Pod
	if err := c.do(ctx, http.MethodPost, "/volt/pods/"+url.PathEscape(podID)+"/stop", nil, &pod); err != nil {
		return nil, err
	}
	return &pod, nil
}

// DeletePod releases a pod. Billing stops once the call succeeds.
func (c *Client) DeletePod(ctx context.Context, podID string) error {
	return c.do(ctx, http.MethodDelete, "/volt/pods/"+url.PathEscape(podID), nil, nil)
}

// ==================== TEMPLATES ====================

// ListTemplates returns available templates, optionally filtered by category.
func (c *Client) ListTemplates(ctx context.Context, category string) ([]api.Template, error) {
	path := "/volt/templates"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var resp api.ListTemplatesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Templates, nil
}

// GetTemplate returns details of a specific template.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (*api.Template, error) {
	var tpl api.Template
	if err := c.do(ctx, http.MethodGet, "/volt/templates/"+url.PathEscape(templateID), nil, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// DefaultTemplate returns the platform's default template, or the first
// listed one when none is flagged as default.
func (c *Client) DefaultTemplate(ctx context.Context) (*api.Template, error) {
	templates, err := c.ListTemplates(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no templates available")
	}
	for i := range templates {
		if templates[i].Default {
			return &templates[i], nil
		}
	}
	return &templates[0], nil
}

// ==================== SSH KEYS ====================

// ListSSHKeys returns all SSH keys for the current user.
func (c *Client) ListSSHKeys(ctx context.Context) ([]api.SSHKey, error) {
	var resp api.ListSSHKeysResponse
	if err := c.do(ctx, http.MethodGet, "/volt/ssh-keys", nil, &resp); err != nil {
		return nil, err
	}
	return resp.SSHKeys, nil
}

// AddSSHKey registers a new SSH public key.
func (c *Client) AddSSHKey(ctx context.Context, name, publicKey string) (*api.SSHKey, error) {
	var key api.SSHKey
	req := api.AddSSHKeyRequest{Name: name, PublicKey: publicKey}
	if err := c.do(ctx, http.MethodPost, "/volt/ssh-keys", req, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// DeleteSSHKey removes a registered SSH key.
func (c *Client) DeleteSSHKey(ctx context.Context, keyID string) error {
	return c.do(ctx, http.MethodDelete, "/volt/ssh-keys/"+url.PathEscape(keyID), nil, nil)
}

// ==================== MACHINES ====================

// ListMachines returns rentable machines in provider ranking order,
// optionally filtered by GPU type.
func (c *Client) ListMachines(ctx context.Context, gpuType string) ([]api.Machine, error) {
	path := "/volt/machines"
	if gpuType != "" {
		path += "?gpuType=" + url.QueryEscape(gpuType)
	}
	var resp api.ListMachinesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Machines, nil
}

// ==================== ACCOUNT ====================

// Balance returns the current account balance.
func (c *Client) Balance(ctx context.Context) (*api.BalanceResponse, error) {
	var resp api.BalanceResponse
	if err := c.do(ctx, http.MethodGet, "/user/balance", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
