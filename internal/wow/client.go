package wow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const tokenURL = "https://oauth.battle.net/token"

// Regions served by the Blizzard game data APIs
var validRegions = map[string]bool{
	"us": true,
	"eu": true,
	"kr": true,
	"tw": true,
}

// ValidRegion reports whether region is a supported Blizzard region
func ValidRegion(region string) bool {
	return validRegions[region]
}

// APIError represents a Blizzard API error response
type APIError struct {
	Code   int    `json:"code"`
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

// Client is a Blizzard API client with rate limiting and token caching
type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client

	// baseOverride replaces the region hosts when set (tests)
	baseOverride  string
	tokenOverride string

	// Cached OAuth token
	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time

	// Simple rate limiter
	mu          sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

// NewClient creates a new Blizzard API client
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Rate limit: ~20 requests per second (50ms between requests)
		minInterval: 50 * time.Millisecond,
	}
}

// NewClientWithBaseURLs creates a client pointed at local servers for
// the API host and token endpoint. Intended for tests.
func NewClientWithBaseURLs(clientID, clientSecret, apiBase, tokenBase string) *Client {
	c := NewClient(clientID, clientSecret)
	c.baseOverride = apiBase
	c.tokenOverride = tokenBase
	return c
}

// baseURL returns the API host for a region
func (c *Client) baseURL(region string) string {
	if c.baseOverride != "" {
		return c.baseOverride
	}
	return fmt.Sprintf("https://%s.api.blizzard.com", region)
}

// token returns a valid access token, requesting a new one when the
// cached token is missing or about to expire
func (c *Client) token(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	endpoint := tokenURL
	if c.tokenOverride != "" {
		endpoint = c.tokenOverride
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	c.accessToken = payload.AccessToken
	// Refresh one minute early
	c.tokenExpiry = time.Now().Add(time.Duration(payload.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}

// doRequest performs an HTTP request with rate limiting
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	// Simple rate limiting
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < c.minInterval {
		time.Sleep(c.minInterval - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	// Handle rate limiting (429)
	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		// Wait and retry once
		time.Sleep(1 * time.Second)
		return c.httpClient.Do(req)
	}

	return resp, nil
}

// get performs an authenticated GET request and decodes the JSON response
func (c *Client) get(ctx context.Context, region, path string, result interface{}) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s%s?namespace=profile-%s&locale=en_US", c.baseURL(region), path, region)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.doRequest(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return c.parseError(resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// parseError parses Blizzard API error responses
func (c *Client) parseError(statusCode int, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Detail != "" {
		return fmt.Errorf("%s (HTTP %d)", apiErr.Detail, statusCode)
	}

	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("character not found (HTTP 404)")
	case http.StatusForbidden:
		return fmt.Errorf("access denied (HTTP 403)")
	default:
		return fmt.Errorf("API error: HTTP %d, body: %s", statusCode, string(body))
	}
}
