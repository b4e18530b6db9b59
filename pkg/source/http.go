package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"tableflip.dev/fetchlist/pkg/record"
)

// DefaultURL serves the reference record list.
const DefaultURL = "https://fetch-hiring.s3.amazonaws.com/hiring.json"

const (
	// DefaultTimeout bounds a single HTTP fetch.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "fetchlist"

	maxBodyBytes = 32 << 20
)

// HTTP fetches a JSON array of records with a GET request.
type HTTP struct {
	URL       string
	UserAgent string
	Client    *http.Client
}

// HTTPOption customises NewHTTP.
type HTTPOption func(*HTTP)

// WithClient replaces the HTTP client (and its timeout).
func WithClient(c *http.Client) HTTPOption {
	return func(h *HTTP) {
		if c != nil {
			h.Client = c
		}
	}
}

// WithTimeout sets the client timeout; non-positive values keep the default.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		if d > 0 {
			h.Client = &http.Client{Timeout: d}
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(h *HTTP) {
		if ua != "" {
			h.UserAgent = ua
		}
	}
}

// NewHTTP returns an HTTP source for url.
func NewHTTP(url string, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		URL:       url,
		UserAgent: DefaultUserAgent,
		Client:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Fetch performs the request. Non-2xx statuses yield an
// *UnsuccessfulResponseError; connection and decode failures yield a
// *TransportError.
func (h *HTTP) Fetch(ctx context.Context) ([]record.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, &TransportError{Location: h.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Location: h.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &UnsuccessfulResponseError{Location: h.URL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &TransportError{Location: h.URL, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > maxBodyBytes {
		return nil, &TransportError{Location: h.URL, Err: fmt.Errorf("body exceeds %d bytes", maxBodyBytes)}
	}
	records, err := record.UnmarshalList(body)
	if err != nil {
		return nil, &TransportError{Location: h.URL, Err: err}
	}
	return records, nil
}

func (h *HTTP) String() string { return h.URL }
