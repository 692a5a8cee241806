package analytics

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-revenue-dashboard/components/revenue"
)

// DefaultSnapshotPath is requested relative to the base URL.
const DefaultSnapshotPath = "/revenue/snapshot"

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL      string
	APIKey       string
	SnapshotPath string
	HTTPClient   *http.Client
}

// HTTPClient reads revenue snapshots exported by a BI service. The body may be
// YAML or JSON; both decode with the dataset's strict field checks.
type HTTPClient struct {
	baseURL string
	path    string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client for a snapshot endpoint.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	path := cfg.SnapshotPath
	if path == "" {
		path = DefaultSnapshotPath
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		path:    "/" + strings.TrimLeft(path, "/"),
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

var _ SnapshotClient = (*HTTPClient)(nil)

// FetchSnapshot downloads and validates the dataset.
func (c *HTTPClient) FetchSnapshot(ctx context.Context) (*revenue.Dataset, error) {
	url := c.baseURL + c.path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("analytics: build request: %w", err)
	}
	req.Header.Set("Accept", "application/yaml, application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analytics: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return nil, &RemoteError{Status: resp.StatusCode, Body: strings.TrimSpace(buf.String())}
	}
	ds, err := revenue.DecodeDataset(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("analytics: decode snapshot: %w", err)
	}
	ds.Source = url
	return ds, nil
}

// RemoteError is a non-2xx answer from the snapshot endpoint.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("analytics: remote error %d: %s", e.Status, e.Body)
}
