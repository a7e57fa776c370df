package tracing

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitWithoutEndpoint(t *testing.T) {
	ctx := context.Background()
	shutdown, err := Init(ctx, "", "test")
	if err != nil {
		t.Fatal(err)
	}
	defer shutdown(ctx)

	ctx, span := StartSpan(ctx, "test-span")
	if span == nil {
		t.Fatal("StartSpan returned nil span")
	}
	if span.IsRecording() {
		t.Error("no-op span is recording")
	}
	// no-ops, must not panic
	SetAttributes(ctx, attribute.Int64(AttrElementID, 1))
	AddEvent(ctx, "event", attribute.Bool(AttrCacheHit, true))
	RecordError(ctx, errors.New("test"))
	span.End()
}
