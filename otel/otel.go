// Package otel wires OpenTelemetry tracing into web fetches.
package otel

import (
	"context"
	"net/http"

	"github.com/fwojciec/webcrawler"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName is reported as the service.name resource attribute.
const ServiceName = "webcrawler"

const instrumentationName = "github.com/fwojciec/webcrawler/otel"

// NewTracerProvider creates a tracer provider exporting spans over OTLP/HTTP
// to endpoint (host:port) and registers it globally. Callers must Shutdown
// the provider to flush pending spans.
func NewTracerProvider(ctx context.Context, endpoint string) (*sdktrace.TracerProvider, error) {
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, webcrawler.Errorf(webcrawler.EINTERNAL, "otlp exporter: %v", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(attribute.String("service.name", ServiceName)),
	)
	if err != nil {
		return nil, webcrawler.Errorf(webcrawler.EINTERNAL, "otel resource: %v", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp, nil
}

// NewTransport wraps base so that every request produces a client span.
// A nil base uses http.DefaultTransport.
func NewTransport(base http.RoundTripper, tp trace.TracerProvider) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return otelhttp.NewTransport(base, otelhttp.WithTracerProvider(tp))
}

// Ensure TracingFetcher implements webcrawler.ContentFetcher.
var _ webcrawler.ContentFetcher = (*TracingFetcher)(nil)

// TracingFetcher wraps a ContentFetcher with a span per Fetch.
type TracingFetcher struct {
	next   webcrawler.ContentFetcher
	tracer trace.Tracer
}

// NewTracingFetcher creates a new TracingFetcher.
func NewTracingFetcher(next webcrawler.ContentFetcher, tp trace.TracerProvider) *TracingFetcher {
	return &TracingFetcher{next: next, tracer: tp.Tracer(instrumentationName)}
}

// Fetch delegates to the wrapped fetcher inside a "webcrawler.fetch" span.
func (f *TracingFetcher) Fetch(ctx context.Context, url string) (*webcrawler.FetchResult, error) {
	ctx, span := f.tracer.Start(ctx, "webcrawler.fetch",
		trace.WithAttributes(attribute.String("url.full", url)),
	)
	defer span.End()

	result, err := f.next.Fetch(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, webcrawler.ErrorMessage(err))
		span.SetAttributes(attribute.String("webcrawler.error_code", webcrawler.ErrorCode(err)))
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("http.response.status_code", result.StatusCode),
		attribute.String("http.response.content_type", result.ContentType),
		attribute.Int("webcrawler.content_bytes", len(result.Content)),
	)
	return result, nil
}
