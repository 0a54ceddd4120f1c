// Package dataset manages the static game data files the fetch tool
// downloads from the Data Dragon CDN.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public Data Dragon CDN
const DefaultBaseURL = "https://ddragon.leagueoflegends.com"

// Dataset describes one downloadable static data file
type Dataset interface {
	// Name is the short identifier used in logs and registry lookups
	Name() string

	// Filename is the on-disk name the file is written to
	Filename() string

	// Fetch downloads the dataset for a given game data version
	Fetch(ctx context.Context, fetcher *Fetcher, version string) ([]byte, error)
}

// Fetcher downloads JSON documents from the game data CDN
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
}

// NewFetcher creates a Fetcher against the public CDN
func NewFetcher() *Fetcher {
	return NewFetcherWithBaseURL(DefaultBaseURL)
}

// NewFetcherWithBaseURL creates a Fetcher against a custom host (tests)
func NewFetcherWithBaseURL(baseURL string) *Fetcher {
	return &Fetcher{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Get downloads a path relative to the CDN root
func (f *Fetcher) Get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch error: status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// LatestVersion resolves the newest game data version from the
// versions manifest
func (f *Fetcher) LatestVersion(ctx context.Context) (string, error) {
	body, err := f.Get(ctx, "/api/versions.json")
	if err != nil {
		return "", fmt.Errorf("failed to fetch version manifest: %w", err)
	}

	var versions []string
	if err := json.Unmarshal(body, &versions); err != nil {
		return "", fmt.Errorf("failed to decode version manifest: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("version manifest is empty")
	}
	return versions[0], nil
}
