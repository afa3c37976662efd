// Package http provides the HTTP implementation of webcrawler.ContentFetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/webcrawler"
)

// Ensure Fetcher implements webcrawler.ContentFetcher at compile time.
var _ webcrawler.ContentFetcher = (*Fetcher)(nil)

// Fetcher retrieves a URL with a single GET request and converts the
// response body to markup-free text. It does not execute JavaScript and
// does not retry; wrap it with retry.Fetcher for that.
type Fetcher struct {
	client    *http.Client
	converter webcrawler.Converter
	extractor webcrawler.Extractor
	transport http.RoundTripper
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the overall timeout for a request, including reading
// the body. There is no timeout unless one is configured.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithTransport sets the RoundTripper used to perform requests.
// Defaults to http.DefaultTransport.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithExtractor narrows the page to its main content before conversion.
// The full page is converted when extraction fails or yields nothing.
func WithExtractor(e webcrawler.Extractor) Option {
	return func(f *Fetcher) {
		f.extractor = e
	}
}

// NewFetcher creates a new HTTP-based Fetcher that converts response
// bodies with conv.
func NewFetcher(conv webcrawler.Converter, opts ...Option) *Fetcher {
	f := &Fetcher{
		converter: conv,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Transport: f.transport,
		Timeout:   f.timeout,
	}

	return f
}

// Fetch retrieves the given URL and returns its content as text.
// Content never contains a tag-opening "<", whichever converter is used.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*webcrawler.FetchResult, error) {
	if err := webcrawler.ValidateURL(url); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, webcrawler.Errorf(webcrawler.EINVALID, "invalid request for %q: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, webcrawler.WrapError(webcrawler.ETRANSPORT, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, webcrawler.WrapError(webcrawler.ETRANSPORT, err)
	}

	content, err := f.convert(string(body))
	if err != nil {
		// The response arrived intact; a failure here is ours, not the caller's.
		return nil, webcrawler.WrapError(webcrawler.EINTERNAL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = webcrawler.UnknownContentType
	}

	return &webcrawler.FetchResult{
		URL:         url,
		StatusCode:  resp.StatusCode,
		StatusText:  statusText(resp),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func (f *Fetcher) convert(html string) (string, error) {
	if f.extractor != nil && strings.TrimSpace(html) != "" {
		result, err := f.extractor.Extract(html)
		if err == nil && strings.TrimSpace(result.ContentHTML) != "" {
			html = result.ContentHTML
		}
	}
	text, err := f.converter.Convert(html)
	if err != nil {
		return "", err
	}
	return webcrawler.EscapeTags(text), nil
}

// statusText returns the reason phrase the server sent, e.g. "Not Found"
// for "404 Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
