package webcrawler

import (
	"context"
	"net/url"
	"strings"
)

// UnknownContentType is reported when a response carries no Content-Type header.
const UnknownContentType = "unknown"

// FetchResult is the outcome of one URL retrieval.
type FetchResult struct {
	URL         string `json:"url"`
	StatusCode  int    `json:"statusCode"`
	StatusText  string `json:"statusText"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"` // Plain text, markup removed
}

// ContentFetcher retrieves the textual content of a single URL.
type ContentFetcher interface {
	// Fetch issues a single GET request and returns the response body as
	// plain text along with the status metadata.
	// HTTP error statuses are returned as data, not as errors.
	// Returns EINVALID if url is not an absolute URL; no request is made.
	// Returns ETRANSPORT if the request does not complete.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// ValidateURL returns EINVALID unless rawURL is an absolute URL with a scheme and host.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return Errorf(EINVALID, "url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Errorf(EINVALID, "invalid url %q: %v", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "invalid url %q: must be absolute", rawURL)
	}
	return nil
}
