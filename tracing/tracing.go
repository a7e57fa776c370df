// Package tracing provides OpenTelemetry spans for changemonger. Spans
// are only exported when an OTLP endpoint is configured.
package tracing

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	ServiceName = "changemonger"
	TracerName  = "github.com/omniscale/changemonger"
)

const (
	AttrChangesetID  = "osm.changeset.id"
	AttrElementType  = "osm.element.type"
	AttrElementID    = "osm.element.id"
	AttrElements     = "osm.elements"
	AttrCacheHit     = "osm.cache.hit"
	AttrHTTPURL      = "http.url"
	AttrHTTPStatus   = "http.status_code"
	AttrCandidates   = "changemonger.resolve.candidates"
	AttrFetched      = "changemonger.resolve.fetched"
	AttrPruned       = "changemonger.resolve.pruned"
	AttrSummaryGroup = "changemonger.summary.groups"
)

// Tracer is the global tracer. A no-op tracer until Init is called with an
// endpoint.
var Tracer trace.Tracer = noop.NewTracerProvider().Tracer(TracerName)

// Init exports spans to the OTLP gRPC endpoint. Tracing stays disabled if
// endpoint is empty. The returned function flushes and stops the exporter.
func Init(ctx context.Context, endpoint, version string) (func(context.Context) error, error) {
	if endpoint == "" {
		Tracer = noop.NewTracerProvider().Tracer(TracerName)
		return func(context.Context) error { return nil }, nil
	}

	client := otlptracegrpc.NewClient(
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, errors.Wrap(err, "creating OTLP trace exporter")
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	Tracer = tp.Tracer(TracerName)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}

func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer.Start(ctx, name, opts...)
}

// RecordError records err on the span of ctx and marks the span as failed.
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func AddEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}

func SetAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attrs...)
	}
}
