package horizons

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the official JPL Horizons API endpoint.
	DefaultBaseURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 30 * time.Second

	defaultUserAgent = "ls-ephem/0.1 (Horizons ephemeris client)"
)

// Transport carries an encoded parameter set to the service and returns the
// response body as text. Implementations must honor ctx cancellation.
type Transport interface {
	Fetch(ctx context.Context, params []Param) (string, error)
}

// HTTPTransport queries the Horizons API over HTTPS GET.
type HTTPTransport struct {
	client    *http.Client
	baseURL   string
	timeout   time.Duration
	userAgent string
}

// TransportOption configures an HTTPTransport.
type TransportOption func(*HTTPTransport)

// WithBaseURL sets a custom API endpoint.
func WithBaseURL(u string) TransportOption {
	return func(t *HTTPTransport) {
		t.baseURL = u
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) TransportOption {
	return func(t *HTTPTransport) {
		t.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) TransportOption {
	return func(t *HTTPTransport) {
		t.client = client
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) TransportOption {
	return func(t *HTTPTransport) {
		t.userAgent = ua
	}
}

// NewHTTPTransport creates a transport against the public Horizons endpoint.
func NewHTTPTransport(opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.client == nil {
		t.client = &http.Client{
			Timeout: t.timeout,
		}
	}

	return t
}

// Fetch issues one GET with the encoded parameters in the query string and
// returns the body as text. Non-200 statuses are errors; the service reports
// request problems inside a 200 body, which the decoding layers surface.
func (t *HTTPTransport) Fetch(ctx context.Context, params []Param) (string, error) {
	values := url.Values{}
	for _, p := range params {
		values.Set(p.Key, p.Value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json, text/plain")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch ephemeris: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	return string(body), nil
}

// BaseURL returns the configured endpoint.
func (t *HTTPTransport) BaseURL() string {
	return t.baseURL
}
