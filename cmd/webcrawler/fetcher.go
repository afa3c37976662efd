package main

import (
	"fmt"

	"github.com/fwojciec/webcrawler"
	"github.com/fwojciec/webcrawler/goquery"
	"github.com/fwojciec/webcrawler/htmltomarkdown"
	crawlhttp "github.com/fwojciec/webcrawler/http"
	crawlotel "github.com/fwojciec/webcrawler/otel"
	"github.com/fwojciec/webcrawler/readability"
	"github.com/fwojciec/webcrawler/retry"
	crawlslog "github.com/fwojciec/webcrawler/slog"
	"github.com/fwojciec/webcrawler/trafilatura"
)

// NewFetcher builds the fetch pipeline: HTTP fetch with conversion, a log
// line per attempt, retries on transport failure, and a span per call when
// tracing is enabled.
func (d *Dependencies) NewFetcher(flags FetchFlags, maxRetries int) webcrawler.ContentFetcher {
	var conv webcrawler.Converter = goquery.NewTextConverter()
	if flags.Format == "markdown" {
		conv = htmltomarkdown.NewConverter()
	}

	opts := []crawlhttp.Option{
		crawlhttp.WithTimeout(flags.Timeout),
		crawlhttp.WithUserAgent(flags.UserAgent),
	}

	transport := d.Transport
	if d.TracerProvider != nil {
		transport = crawlotel.NewTransport(transport, d.TracerProvider)
	}
	if transport != nil {
		opts = append(opts, crawlhttp.WithTransport(transport))
	}

	switch flags.Extract {
	case "trafilatura":
		opts = append(opts, crawlhttp.WithExtractor(trafilatura.NewExtractor()))
	case "readability":
		opts = append(opts, crawlhttp.WithExtractor(readability.NewExtractor()))
	}

	var f webcrawler.ContentFetcher = crawlhttp.NewFetcher(conv, opts...)
	if d.Logger != nil {
		f = crawlslog.NewLoggingFetcher(f, d.Logger)
	}

	retryOpts := []retry.Option{
		retry.WithLogger(func(format string, args ...any) {
			if d.Logger != nil {
				d.Logger.Warn(fmt.Sprintf(format, args...))
			}
		}),
	}
	if d.RetryDelays != nil {
		retryOpts = append(retryOpts, retry.WithDelays(d.RetryDelays))
	}
	f = retry.NewFetcher(f, maxRetries, retryOpts...)

	if d.TracerProvider != nil {
		f = crawlotel.NewTracingFetcher(f, d.TracerProvider)
	}
	return f
}
