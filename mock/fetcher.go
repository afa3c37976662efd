package mock

import (
	"context"

	"github.com/fwojciec/webcrawler"
)

var _ webcrawler.ContentFetcher = (*ContentFetcher)(nil)

// ContentFetcher is a mock implementation of webcrawler.ContentFetcher.
type ContentFetcher struct {
	FetchFn func(ctx context.Context, url string) (*webcrawler.FetchResult, error)
}

func (f *ContentFetcher) Fetch(ctx context.Context, url string) (*webcrawler.FetchResult, error) {
	return f.FetchFn(ctx, url)
}
