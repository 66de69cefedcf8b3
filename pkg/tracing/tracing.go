package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// Init installs a global OpenTelemetry tracer provider exporting to the
// OTLP/HTTP endpoint. With an empty endpoint tracing stays a no-op.
// Returns a flush function that must be called before process exit.
func Init(ctx context.Context, endpoint, serviceName string, logger *zap.Logger) (flush func()) {
	if endpoint == "" {
		return func() {}
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		logger.Warn("tracing disabled", zap.String("endpoint", endpoint), zap.Error(err))
		return func() {}
	}

	// Spans are exported as they end; the program is interactive and a
	// batch would only be flushed at exit.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)
	otel.SetTracerProvider(tp)
	logger.Info("tracing enabled", zap.String("endpoint", endpoint))

	return func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("flush traces", zap.Error(err))
		}
	}
}
