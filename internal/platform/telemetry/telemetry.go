// Package telemetry initializes OpenTelemetry metrics and tracing.
package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const serviceName = "hookcheck"

// Telemetry holds the OTel meter and tracer plus a shutdown function.
type Telemetry struct {
	Meter    metric.Meter
	Tracer   trace.Tracer
	Shutdown func(ctx context.Context) error
}

// Noop returns a Telemetry whose meter and tracer discard everything.
func Noop() *Telemetry {
	return &Telemetry{
		Meter:    noopmetric.NewMeterProvider().Meter(serviceName),
		Tracer:   nooptrace.NewTracerProvider().Tracer(serviceName),
		Shutdown: func(context.Context) error { return nil },
	}
}

// New creates a Telemetry instance. When enabled is false, Noop is returned.
// When enabled, the OTel SDK auto-discovers OTEL_EXPORTER_OTLP_ENDPOINT,
// OTEL_SERVICE_NAME, etc. from the environment.
//
// A hook process lives for a single commit, so metrics are only exported by
// the final collection in Shutdown. Callers must always call Shutdown.
func New(ctx context.Context, enabled bool) (*Telemetry, error) {
	if !enabled {
		return Noop(), nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, err
	}

	traceExp, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, err
	}
	// Syncer rather than batcher: there is no long-lived process to amortize over.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(traceExp),
		sdktrace.WithResource(res),
	)

	metricExp, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		sdkmetric.WithResource(res),
	)

	// Global providers let otelhttp pick them up for GitHub API spans.
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	shutdown := func(ctx context.Context) error {
		return errors.Join(mp.Shutdown(ctx), tp.Shutdown(ctx))
	}

	return &Telemetry{
		Meter:    mp.Meter(serviceName),
		Tracer:   tp.Tracer(serviceName),
		Shutdown: shutdown,
	}, nil
}
