package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bitly/go-simplejson"
	"github.com/sirupsen/logrus"
)

// Fetcher retrieves one JSON document from a fully formed request target.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (*simplejson.Json, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, target string) (*simplejson.Json, error)

func (f FetcherFunc) Fetch(ctx context.Context, target string) (*simplejson.Json, error) {
	return f(ctx, target)
}

// HTTPOptions configures the shared HTTP client.
type HTTPOptions struct {
	ProxyURL  string
	Timeout   time.Duration // 0 leaves the client without a timeout
	UserAgent string
}

// HTTPFetcher implements Fetcher with a single shared http.Client. It is safe
// for concurrent use.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	Log       *logrus.Entry
}

// NewHTTPFetcher creates a fetcher with optional proxy support.
func NewHTTPFetcher(opts HTTPOptions, log *logrus.Entry) (*HTTPFetcher, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.ProxyURL != "" {
		u, err := url.Parse(opts.ProxyURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy url %q", opts.ProxyURL)
		}
		transport.Proxy = http.ProxyURL(u)
	}
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		UserAgent: opts.UserAgent,
		Log:       log,
	}, nil
}

// Fetch issues one GET and parses the body. Only transport and parse failures
// are errors: a non-2xx body that is valid JSON is returned as is, and the
// caller's field reads will simply find nothing.
func (f *HTTPFetcher) Fetch(ctx context.Context, target string) (*simplejson.Json, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode/100 != 2 && f.Log != nil {
		f.Log.WithFields(logrus.Fields{"target": target, "status": resp.StatusCode}).Debug("non-2xx response")
	}

	doc, err := simplejson.NewJson(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", target, err)
	}
	return doc, nil
}
