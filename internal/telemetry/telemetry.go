// Package telemetry provides OpenTelemetry tracing for dungeongen.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/samdwyer/dungeongen/internal/config"
)

const serviceName = "dungeongen"

// Version is the reported service version. It is overridden at build time.
var Version = "0.1.0"

// Option adjusts Setup.
type Option func(*settings)

type settings struct {
	preset   string
	exporter sdktrace.SpanExporter
}

// WithPreset records the config preset the process was started with.
func WithPreset(name string) Option {
	return func(s *settings) {
		s.preset = name
	}
}

// WithExporter replaces the OTLP exporter. Spans are then exported
// synchronously as they end.
func WithExporter(exp sdktrace.SpanExporter) Option {
	return func(s *settings) {
		s.exporter = exp
	}
}

// Setup installs a global tracer provider whose resource describes this
// process and the generation parameters it runs with. Unless WithExporter
// is given it exports over OTLP/HTTP, configured by the standard OTEL_*
// environment variables:
//   - OTEL_EXPORTER_OTLP_ENDPOINT: collector endpoint
//   - OTEL_EXPORTER_OTLP_HEADERS: headers such as x-honeycomb-team=<api-key>
//
// Returns a shutdown function that should be called on application exit.
func Setup(ctx context.Context, cfg config.Config, opts ...Option) (shutdown func(context.Context) error, err error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	// Own resource, not merged with Default(), to avoid schema URL conflicts
	res, err := resource.New(ctx, resource.WithAttributes(ResourceAttributes(cfg, s.preset)...))
	if err != nil {
		return nil, err
	}

	var spans sdktrace.TracerProviderOption
	if s.exporter != nil {
		spans = sdktrace.WithSyncer(s.exporter)
	} else {
		exporter, err := otlptracehttp.New(ctx)
		if err != nil {
			return nil, err
		}
		spans = sdktrace.WithBatcher(exporter)
	}

	tp := sdktrace.NewTracerProvider(spans, sdktrace.WithResource(res))

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// ResourceAttributes describes the process and its configured generation
// parameters. Per-run values such as the resolved seed go on spans instead.
func ResourceAttributes(cfg config.Config, preset string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", Version),
		attribute.String("telemetry.sdk.language", "go"),
		attribute.String("telemetry.sdk.name", "opentelemetry"),
		attribute.String("host.name", getHostname()),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.name", "go"),
		attribute.String("process.runtime.version", runtime.Version()),
		attribute.Int("dungeongen.config.cell_count", cfg.CellCount),
		attribute.Int("dungeongen.config.radius", cfg.Radius),
		attribute.Int("dungeongen.config.min_side", cfg.MinSide),
		attribute.Int("dungeongen.config.max_side", cfg.MaxSide),
		attribute.Int("dungeongen.config.max_passes", cfg.MaxPasses),
		attribute.Bool("dungeongen.config.fixed_seed", cfg.Seed != 0),
	}
	if preset != "" {
		attrs = append(attrs, attribute.String("dungeongen.config.preset", preset))
	}
	return attrs
}

// Tracer returns a named tracer for the given component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// NoopTracer returns a no-op tracer for use when telemetry is disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
