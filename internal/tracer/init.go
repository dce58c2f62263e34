package tracer

import (
	"context"
	"log"
	"strings"

	"fort-chatbot-be/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Shutdown flushes pending spans and stops the exporter.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// InitTracer installs the global tracer provider otelfiber reports through.
// When tracing is off, or the exporter cannot be built, it returns a no-op Shutdown.
func InitTracer(cfg config.TracingConfig) Shutdown {
	if !cfg.Enabled {
		log.Println("Tracing disabled (OTEL_ENABLED is not true)")
		return noop
	}

	tp, err := newProvider(context.Background(), cfg)
	if err != nil {
		log.Printf("Warning: tracing disabled, exporter for %s: %v", cfg.Endpoint, err)
		return noop
	}

	otel.SetTracerProvider(tp)
	log.Printf("Tracing %s to %s", cfg.ServiceName, cfg.Endpoint)
	return tp.Shutdown
}

func newProvider(ctx context.Context, cfg config.TracingConfig) (*sdktrace.TracerProvider, error) {
	host, insecure := splitEndpoint(cfg.Endpoint)
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(host)}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	), nil
}

// splitEndpoint accepts "host:port" or a URL; only an https:// scheme turns TLS on.
func splitEndpoint(endpoint string) (host string, insecure bool) {
	endpoint = strings.TrimRight(endpoint, "/")
	if rest, ok := strings.CutPrefix(endpoint, "https://"); ok {
		return rest, false
	}
	return strings.TrimPrefix(endpoint, "http://"), true
}
