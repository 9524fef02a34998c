// Package http provides the HTTP implementation of isfdb.Fetcher.
// The catalog serves static server-rendered pages in the ISO-8859-1
// legacy encoding; responses are decoded to UTF-8 and scrubbed of
// control characters before being handed to the parsers.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/speclib/isfdb"
	"golang.org/x/text/encoding/charmap"
)

// DefaultFetchTimeout is the default per-request timeout.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the client to the catalog.
const DefaultUserAgent = "isfdb-metadata-resolver/1.0"

// Ensure Fetcher implements isfdb.Fetcher at compile time.
var _ isfdb.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves catalog pages over HTTP.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	robots    *robots
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient replaces the underlying HTTP client. The per-request
// timeout still applies via the request context.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithRobots enables a robots.txt check before each fetch. The robots
// file is fetched once per host and cached for the fetcher's lifetime.
// Disallowed URLs fail with EUNAVAILABLE without hitting the server.
func WithRobots() Option {
	return func(f *Fetcher) {
		f.robots = newRobots()
	}
}

// NewFetcher creates a new HTTP fetcher for the catalog.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{}
	}
	return f
}

// Fetch performs a GET, decodes the ISO-8859-1 body, and returns the
// cleaned HTML. 404-class responses map to ENOTFOUND so the resolution
// engine can fall back to searching; other failures are EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.robots != nil {
		allowed, err := f.robots.allowed(ctx, f.client, url, f.userAgent)
		if err == nil && !allowed {
			return "", isfdb.Errorf(isfdb.EUNAVAILABLE, "disallowed by robots.txt: %s", url)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", isfdb.Errorf(isfdb.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", isfdb.Errorf(isfdb.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return "", isfdb.Errorf(isfdb.ENOTFOUND, "no record at %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return "", isfdb.Errorf(isfdb.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", isfdb.Errorf(isfdb.EUNAVAILABLE, "read %s: %v", url, err)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// The Latin-1 decoder accepts any byte sequence; keep the raw
		// body if it somehow fails.
		decoded = raw
	}

	return stripControl(string(decoded)), nil
}

// stripControl removes ASCII control characters that break the HTML
// parser, keeping tab, newline, and carriage return.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
