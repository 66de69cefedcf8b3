package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

func TestInitWithoutEndpoint(t *testing.T) {
	otel.SetTracerProvider(noop.NewTracerProvider())

	flush := Init(context.Background(), "", "filmfind", zap.NewNop())
	flush()

	if _, ok := otel.GetTracerProvider().(noop.TracerProvider); !ok {
		t.Errorf("expected the tracer provider to stay a no-op, got %T", otel.GetTracerProvider())
	}
}

func TestInitWithEndpoint(t *testing.T) {
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })

	// Exporter creation does not dial; spans are simply never delivered.
	flush := Init(context.Background(), "http://127.0.0.1:1/v1/traces", "filmfind-test", zap.NewNop())
	if _, ok := otel.GetTracerProvider().(noop.TracerProvider); ok {
		t.Fatal("expected an SDK tracer provider")
	}
	flush()
}
