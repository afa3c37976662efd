package otel_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/webcrawler"
	"github.com/fwojciec/webcrawler/goquery"
	crawlhttp "github.com/fwojciec/webcrawler/http"
	"github.com/fwojciec/webcrawler/mock"
	crawlotel "github.com/fwojciec/webcrawler/otel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newProvider() (*sdktrace.TracerProvider, *tracetest.InMemoryExporter) {
	exp := tracetest.NewInMemoryExporter()
	return sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp)), exp
}

func attr(span tracetest.SpanStub, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("records status and content size", func(t *testing.T) {
		t.Parallel()

		tp, exp := newProvider()
		inner := &mock.ContentFetcher{
			FetchFn: func(_ context.Context, url string) (*webcrawler.FetchResult, error) {
				return &webcrawler.FetchResult{URL: url, StatusCode: 404, StatusText: "Not Found", ContentType: "text/html", Content: "gone"}, nil
			},
		}

		f := crawlotel.NewTracingFetcher(inner, tp)
		_, err := f.Fetch(context.Background(), "https://example.com")

		require.NoError(t, err)
		spans := exp.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, "webcrawler.fetch", spans[0].Name)
		status, ok := attr(spans[0], "http.response.status_code")
		require.True(t, ok)
		assert.Equal(t, int64(404), status.AsInt64())
		size, ok := attr(spans[0], "webcrawler.content_bytes")
		require.True(t, ok)
		assert.Equal(t, int64(4), size.AsInt64())
		assert.NotEqual(t, codes.Error, spans[0].Status.Code)
	})

	t.Run("marks span as error on failure", func(t *testing.T) {
		t.Parallel()

		tp, exp := newProvider()
		inner := &mock.ContentFetcher{
			FetchFn: func(context.Context, string) (*webcrawler.FetchResult, error) {
				return nil, webcrawler.WrapError(webcrawler.ETRANSPORT, errors.New("connection refused"))
			},
		}

		f := crawlotel.NewTracingFetcher(inner, tp)
		_, err := f.Fetch(context.Background(), "https://example.com")

		require.Error(t, err)
		spans := exp.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		code, ok := attr(spans[0], "webcrawler.error_code")
		require.True(t, ok)
		assert.Equal(t, webcrawler.ETRANSPORT, code.AsString())
	})
}

func TestNewTransport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>traced</p>"))
	}))
	defer server.Close()

	tp, exp := newProvider()
	fetcher := crawlotel.NewTracingFetcher(
		crawlhttp.NewFetcher(goquery.NewTextConverter(), crawlhttp.WithTransport(crawlotel.NewTransport(nil, tp))),
		tp,
	)

	result, err := fetcher.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "traced", result.Content)

	spans := exp.GetSpans()
	require.Len(t, spans, 2)
	// The client span ends first and is a child of the fetch span.
	assert.Equal(t, "webcrawler.fetch", spans[1].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}
