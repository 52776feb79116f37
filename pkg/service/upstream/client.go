package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/domain/interfaces"
	"github.com/safevoice-lab/safevoice/pkg/domain/model"
)

const incidentsPath = "/api/incidents"

// fetchResponse is the upstream payload shape
type fetchResponse struct {
	Incidents []*model.Incident `json:"incidents"`
}

// Client fetches incidents from the upstream SafeVoice API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used in tests)
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a new upstream client for the given base URL
func New(baseURL string, opts ...Option) interfaces.Source {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// FetchIncidents performs one GET {base}/api/incidents call and decodes the
// incident collection. Non-2xx responses and malformed JSON are both fetch
// failures; a response without an incidents field is a valid empty
// collection.
func (c *Client) FetchIncidents(ctx context.Context) ([]*model.Incident, error) {
	endpoint, err := url.JoinPath(c.baseURL, incidentsPath)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid upstream base URL",
			goerr.V("baseURL", c.baseURL))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build upstream request",
			goerr.V("endpoint", endpoint))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch incidents",
			goerr.V("endpoint", endpoint))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body for diagnostics, then fail
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, goerr.New("upstream returned non-success status",
			goerr.V("endpoint", endpoint),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	var payload fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, goerr.Wrap(err, "failed to decode incidents response",
			goerr.V("endpoint", endpoint))
	}

	if payload.Incidents == nil {
		return []*model.Incident{}, nil
	}
	return payload.Incidents, nil
}
