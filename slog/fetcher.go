// Package slog provides log/slog decorators for webcrawler services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webcrawler"
)

// Ensure LoggingFetcher implements webcrawler.ContentFetcher.
var _ webcrawler.ContentFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a ContentFetcher with logging.
type LoggingFetcher struct {
	next   webcrawler.ContentFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next webcrawler.ContentFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *webcrawler.FetchResult, err error) {
	defer func(begin time.Time) {
		var status, bytes int
		if result != nil {
			status = result.StatusCode
			bytes = len(result.Content)
		}
		f.logger.Info("fetch",
			"url", url,
			"status", status,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
