// Package telemetry sets up OpenTelemetry tracing for giterra.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/giterra/giterra/internal/config"
	"github.com/giterra/giterra/internal/log"
)

// ShutdownFunc flushes pending spans and releases the provider.
type ShutdownFunc func(context.Context) error

// Options selects the span exporter.
type Options struct {
	Exporter string // none, stdout or otlp
	Endpoint string // otlp gRPC endpoint
	// Output receives stdout-exported spans. Defaults to os.Stderr so
	// generated configs on stdout stay parseable.
	Output io.Writer
}

// Setup initialises tracing for serviceName.
//
// Tracing is opt-in: with the none exporter Setup returns a no-op shutdown
// function and no global provider is registered.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, serviceName string, opts Options) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	switch opts.Exporter {
	case "", config.ExporterNone:
		return noop, nil
	case config.ExporterStdout:
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(out), stdouttrace.WithPrettyPrint())
	case config.ExporterOTLP:
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(opts.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
	default:
		return noop, fmt.Errorf("unknown telemetry exporter %q", opts.Exporter)
	}
	if err != nil {
		return noop, fmt.Errorf("create %s exporter: %w", opts.Exporter, err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	log.Debug(log.CatTelemetry, "Tracing enabled", "exporter", opts.Exporter, "endpoint", opts.Endpoint)

	return tp.Shutdown, nil
}
