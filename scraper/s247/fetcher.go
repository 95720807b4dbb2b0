package s247

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"recruit-scraper/config"
)

// Fetcher retrieves a URL and parses the response body into a queryable
// document. Extractors that follow links to secondary pages receive a
// Fetcher so their logic can run against fixtures without network access.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// HTTPFetcher is the production Fetcher: plain unauthenticated GETs with a
// fixed browser identity header and a bounded per-request timeout
type HTTPFetcher struct {
	client  *resty.Client
	baseURL string
}

// NewHTTPFetcher creates an HTTPFetcher from the application config
func NewHTTPFetcher(cfg *config.Config) *HTTPFetcher {
	client := resty.New().
		SetTimeout(cfg.HTTPTimeout()).
		SetHeader("User-Agent", cfg.UserAgent)
	return &HTTPFetcher{client: client, baseURL: strings.TrimSuffix(cfg.BaseURL, "/")}
}

// Fetch GETs the URL and parses the body. Transport failures and non-2xx
// statuses produce a FetchError; fetches are never retried.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	url = f.normalize(url)
	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		return nil, &FetchError{URL: url, StatusCode: res.StatusCode()}
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return doc, nil
}

// normalize resolves protocol-relative and site-relative URLs
func (f *HTTPFetcher) normalize(url string) string {
	switch {
	case strings.HasPrefix(url, "//"):
		return "https:" + url
	case strings.HasPrefix(url, "/"):
		return f.baseURL + url
	default:
		return url
	}
}
