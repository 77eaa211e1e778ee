// Package teamwork is a thin JSON client for the Teamwork Projects API.
package teamwork

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quentinproust/teamwork-cli/internal/config"
	"github.com/quentinproust/teamwork-cli/internal/logger"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// APIError represents a non-2xx response from the Teamwork API.
type APIError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("API error %s", e.StatusText)
	}
	return fmt.Sprintf("API error %s: %s", e.StatusText, body)
}

// AuthError represents a 401 Unauthorized response: the token or the
// company id was rejected.
type AuthError struct {
	APIError
}

func (e *AuthError) Error() string {
	return "authentication failed, check the company id and API token (run 'teamwork auth')"
}

// BaseURL returns the API root for a company. Region "eu" selects the
// European data center.
func BaseURL(companyID, region string) string {
	if strings.EqualFold(region, "eu") {
		return fmt.Sprintf("https://%s.eu.teamwork.com", companyID)
	}
	return fmt.Sprintf("https://%s.teamwork.com", companyID)
}

// Client wraps authenticated requests to one Teamwork tenant.
type Client struct {
	baseURL string
	creds   config.Credentials
	client  *http.Client
}

// NewClient creates a client for creds. An empty baseURL is derived from
// the company id; a zero timeout uses DefaultTimeout.
func NewClient(creds config.Credentials, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL(creds.CompanyID, "")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		client:  &http.Client{Timeout: timeout},
	}
}

// FromConfig creates a client from loaded configuration.
func FromConfig(cfg *config.Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = BaseURL(cfg.Credentials.CompanyID, cfg.Region)
	}
	return NewClient(cfg.Credentials, base, cfg.HTTPTimeout)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, dest)
}

func (c *Client) doJSON(req *http.Request, dest any) error {
	log := logger.Get()
	req.SetBasicAuth(c.creds.Token, "x")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("teamwork request")

	if resp.StatusCode == http.StatusUnauthorized {
		return &AuthError{APIError{resp.StatusCode, resp.Status, string(respBody)}}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{resp.StatusCode, resp.Status, string(respBody)}
	}

	if dest != nil {
		if err := json.Unmarshal(respBody, dest); err != nil {
			return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
		}
	}
	return nil
}
