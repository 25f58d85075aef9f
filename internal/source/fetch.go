package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultMaxBytes     = 10 << 20
	defaultUserAgent    = "cover-palette/dev"
)

// FetchOptions configures a Fetcher. Zero values select defaults.
type FetchOptions struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// Fetcher downloads cover bytes over HTTP.
type Fetcher struct {
	http      *http.Client
	maxBytes  int64
	userAgent string
}

// NewFetcher creates a Fetcher with its own http.Client.
func NewFetcher(opts FetchOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultFetchTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultMaxBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &Fetcher{
		http:      &http.Client{Timeout: opts.Timeout},
		maxBytes:  opts.MaxBytes,
		userAgent: opts.UserAgent,
	}
}

// Fetch GETs url and returns the body.
//
// Non-2xx responses and transport errors wrap ErrFetch. A body larger than
// the configured limit wraps ErrTooLarge. Cancelling ctx aborts the request
// and returns an error satisfying errors.Is(err, ctx.Err()).
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrNoImage
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := f.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetch, url, resp.StatusCode)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: reading body: %v", ErrFetch, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, f.maxBytes)
	}
	return body, nil
}

// NormalizeURL upgrades an insecure http:// reference to https:// when it
// points at host. Other URLs are returned unchanged.
//
// Example:
//
//	NormalizeURL("http://covers.example.com/a.jpg", "covers.example.com")
//	// "https://covers.example.com/a.jpg"
func NormalizeURL(raw, host string) string {
	raw = strings.TrimSpace(raw)
	if host == "" {
		return raw
	}
	prefix := "http://" + host
	if !strings.HasPrefix(strings.ToLower(raw), strings.ToLower(prefix)) {
		return raw
	}
	rest := raw[len(prefix):]
	if rest != "" && rest[0] != '/' && rest[0] != ':' && rest[0] != '?' {
		// Longer hostname sharing the prefix, e.g. covers.example.com.evil.
		return raw
	}
	return "https://" + host + rest
}

// IsRemote reports whether ref looks like an http(s) URL.
func IsRemote(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
