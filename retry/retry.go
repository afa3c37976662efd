// Package retry provides a ContentFetcher decorator that retries transport
// failures with backoff.
package retry

import (
	"context"
	"time"

	"github.com/fwojciec/webcrawler"
)

// Ensure Fetcher implements webcrawler.ContentFetcher at compile time.
var _ webcrawler.ContentFetcher = (*Fetcher)(nil)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultDelays returns the backoff delays between attempts: 1s, 2s, 4s.
// The last delay repeats when more retries are configured.
func DefaultDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Fetcher retries transport failures of the wrapped fetcher. Validation
// failures and any other error are returned immediately.
type Fetcher struct {
	next       webcrawler.ContentFetcher
	maxRetries int
	delays     []time.Duration
	logger     LogFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithDelays sets the waits between attempts.
func WithDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithLogger sets a function called before each retry.
func WithLogger(logger LogFunc) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher wraps next so that a transport failure is retried up to
// maxRetries times. Negative values are treated as zero.
func NewFetcher(next webcrawler.ContentFetcher, maxRetries int, opts ...Option) *Fetcher {
	f := &Fetcher{
		next:       next,
		maxRetries: max(maxRetries, 0),
		delays:     DefaultDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// MaxRetries returns the effective number of retries.
func (f *Fetcher) MaxRetries() int {
	return f.maxRetries
}

// Fetch calls the wrapped fetcher, retrying on ETRANSPORT. Cancellation
// between attempts is reported as ETRANSPORT wrapping the context error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*webcrawler.FetchResult, error) {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		result, err := f.next.Fetch(ctx, url)
		if err == nil {
			return result, nil
		}
		if webcrawler.ErrorCode(err) != webcrawler.ETRANSPORT {
			return nil, err
		}
		lastErr = err

		if attempt == f.maxRetries {
			break
		}

		if err := ctx.Err(); err != nil {
			return nil, webcrawler.WrapError(webcrawler.ETRANSPORT, err)
		}

		if f.logger != nil {
			f.logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, webcrawler.WrapError(webcrawler.ETRANSPORT, ctx.Err())
		case <-time.After(f.delay(attempt)):
		}
	}

	return nil, lastErr
}

func (f *Fetcher) delay(attempt int) time.Duration {
	if len(f.delays) == 0 {
		return 0
	}
	if attempt >= len(f.delays) {
		return f.delays[len(f.delays)-1]
	}
	return f.delays[attempt]
}
