// Package http provides an HTTP client for a fic metadata service: given a
// story link, the service answers with the fic's record as JSON.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/ficbot"
)

// DefaultFetchTimeout is the default timeout for metadata requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultRetryDelays returns the backoff delays between attempts after a
// transient failure: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// maxRecordBytes bounds the size of a metadata response.
const maxRecordBytes = 16 << 20

// Ensure Fetcher implements ficbot.Fetcher at compile time.
var _ ficbot.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves fic records from a metadata service by issuing
// GET {baseURL}?url={link}.
type Fetcher struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	delays  []time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for metadata requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRetryDelays sets the delays between attempts. Failures other than
// ENOTFOUND and EINVALID are retried once per delay; nil disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithClient sets the HTTP client used for requests. The client's own
// timeout takes precedence over WithTimeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a Fetcher for the metadata service at baseURL.
func NewFetcher(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL: baseURL,
		timeout: DefaultFetchTimeout,
		delays:  DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// FetchFic asks the metadata service for the fic at link. A 404 answer is
// reported as ENOTFOUND. Transient failures are retried with backoff.
func (f *Fetcher) FetchFic(ctx context.Context, link string) (*ficbot.Fic, error) {
	var lastErr error
	for attempt := 0; attempt <= len(f.delays); attempt++ {
		fic, err := f.fetch(ctx, link)
		if err == nil {
			return fic, nil
		}
		lastErr = err

		switch ficbot.ErrorCode(err) {
		case ficbot.ENOTFOUND, ficbot.EINVALID:
			return nil, err
		}
		if attempt == len(f.delays) {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}
	return nil, lastErr
}

func (f *Fetcher) fetch(ctx context.Context, link string) (*ficbot.Fic, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return nil, ficbot.Errorf(ficbot.EINVALID, "invalid fetch url %q: %v", f.baseURL, err)
	}
	q := u.Query()
	q.Set("url", link)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ficbot.Errorf(ficbot.ENOTFOUND, "no fic found at %s", link)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, link)
	}

	var fic ficbot.Fic
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRecordBytes)).Decode(&fic); err != nil {
		return nil, ficbot.Errorf(ficbot.EINVALID, "decode fic for %s: %v", link, err)
	}
	return &fic, nil
}

// Close releases resources. This is a no-op since http.Client doesn't
// require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
