// Package client talks to the remote prediction service. Every
// submission resolves to exactly one model.Outcome: network, server,
// and contract failures are normalized here so callers never handle
// raw transport errors.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/lifespan/internal/cache"
	"github.com/ppiankov/lifespan/internal/model"
	"github.com/ppiankov/lifespan/internal/util"
)

const (
	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 1 << 20

	// timeoutMessage is shown when the request deadline is exceeded. The
	// hosted service sleeps on free tiers, hence the wording.
	timeoutMessage = "Request timeout - service may be waking up. Please try again in 30 seconds."
)

// Client performs the HTTP exchange with the prediction service.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cache      cache.Cache // Optional; used for feature-info responses
}

// New creates a client for the given API configuration. The cache may
// be nil to disable response caching.
func New(cfg model.APIConfig, responseCache cache.Cache) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		cache:      responseCache,
	}
}

// predictResponse is the success body of POST /predict. A pointer
// distinguishes an absent field from a zero prediction.
type predictResponse struct {
	PredictedLifeExpectancy *float64 `json:"predicted_life_expectancy"`
}

// errorResponse is the body the service sends with non-200 statuses.
type errorResponse struct {
	Detail string `json:"detail"`
}

// Predict submits one validated request and returns its outcome. No
// automatic retries: a timeout or failure is reported once and the
// caller decides whether to resubmit.
func (c *Client) Predict(ctx context.Context, req *model.ValidatedRequest) model.Outcome {
	body, err := BuildPayload(req)
	if err != nil {
		return model.Failed(model.ErrorNetwork, fmt.Sprintf("encode request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return model.Failed(model.ErrorNetwork, fmt.Sprintf("create request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return model.Failed(model.ErrorTimeout, timeoutMessage)
		}
		return model.Failed(model.ErrorNetwork, fmt.Sprintf("request failed: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(err) {
			return model.Failed(model.ErrorTimeout, timeoutMessage)
		}
		return model.Failed(model.ErrorNetwork, fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.Detail == "" {
			return model.Failed(model.ErrorServerRejected, "Unknown error")
		}
		return model.Failed(model.ErrorServerRejected, apiErr.Detail)
	}

	var result predictResponse
	if err := json.Unmarshal(data, &result); err != nil || result.PredictedLifeExpectancy == nil {
		return model.Failed(model.ErrorServerContract, "malformed response")
	}

	return model.Succeeded(*result.PredictedLifeExpectancy)
}

// isTimeout reports whether an error is a deadline expiry rather than a
// hard transport failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// get issues a GET request against a service path and returns the raw
// body for 2xx responses.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return data, nil
}
