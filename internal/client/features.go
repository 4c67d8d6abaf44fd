package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/lifespan/internal/cache"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Message     string `json:"message"`
}

// Healthy reports whether the service considers itself ready.
func (h *HealthStatus) Healthy() bool {
	return h.Status == "healthy" && h.ModelLoaded
}

// FeatureDetail describes one feature as published by the service.
type FeatureDetail struct {
	Description string `json:"description"`
	Range       string `json:"range"`
	Type        string `json:"type"`
}

// FeatureInfo is the body of GET /feature-info.
type FeatureInfo struct {
	Features map[string]FeatureDetail `json:"features"`
	Note     string                   `json:"note,omitempty"`
}

// featureInfoTTL bounds how long a cached feature-info response is
// served before refetching. The server-side schema changes only on
// redeploys.
const featureInfoTTL = 24 * time.Hour

// Health fetches the service health report. Never cached: the whole
// point is observing the service right now.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	data, err := c.get(ctx, "/health")
	if err != nil {
		return nil, err
	}

	var status HealthStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("parse health response: %w", err)
	}
	return &status, nil
}

// FeatureInfo fetches the server-side feature schema, consulting the
// response cache first when one is configured.
func (c *Client) FeatureInfo(ctx context.Context) (*FeatureInfo, error) {
	key := cache.Key(c.baseURL + "/feature-info")

	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			var info FeatureInfo
			if err := json.Unmarshal(data, &info); err == nil {
				return &info, nil
			}
			// Corrupt entry: drop it and refetch
			_ = c.cache.Delete(key)
		}
	}

	data, err := c.get(ctx, "/feature-info")
	if err != nil {
		return nil, err
	}

	var info FeatureInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse feature-info response: %w", err)
	}

	if c.cache != nil {
		_ = c.cache.Set(key, data, featureInfoTTL)
	}

	return &info, nil
}
