// Package metrics exports session lifecycle metrics to an OTEL
// collector. Disabled unless an endpoint is configured.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/alexanderramin/shopfloor/internal/config"
	"github.com/alexanderramin/shopfloor/internal/service"
)

const (
	serviceName    = "shopfloor"
	serviceVersion = "1.0.0"
)

// Exporter records session lifecycle metrics and ships them through a
// periodic OTLP reader. It implements service.UseCaseObserver.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	sessionsStart metric.Int64Counter
	sessionsStop  metric.Int64Counter
	sessionHours  metric.Float64Histogram
}

// NewExporter creates an OTEL metrics exporter from config.
func NewExporter(ctx context.Context, cfg config.OTEL) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	sessionsStart, err := meter.Int64Counter(
		"shopfloor_sessions_started_total",
		metric.WithDescription("Work sessions started"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating start counter: %w", err)
	}

	sessionsStop, err := meter.Int64Counter(
		"shopfloor_sessions_stopped_total",
		metric.WithDescription("Work sessions stopped"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stop counter: %w", err)
	}

	sessionHours, err := meter.Float64Histogram(
		"shopfloor_session_hours",
		metric.WithDescription("Payroll hours recorded per stopped session"),
		metric.WithUnit("h"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hours histogram: %w", err)
	}

	return &Exporter{
		provider:      provider,
		sessionsStart: sessionsStart,
		sessionsStop:  sessionsStop,
		sessionHours:  sessionHours,
	}, nil
}

// ObserveUseCase records lifecycle events as metrics.
func (e *Exporter) ObserveUseCase(ctx context.Context, event service.UseCaseEvent) {
	attrs := metric.WithAttributes(attribute.Bool("success", event.Success))
	switch event.Name {
	case "session.start":
		e.sessionsStart.Add(ctx, 1, attrs)
	case "session.stop":
		e.sessionsStop.Add(ctx, 1, attrs)
		if hours, ok := event.Fields["hours"].(float64); ok && event.Success {
			e.sessionHours.Record(ctx, hours)
		}
	}
}

// Shutdown flushes pending metrics and stops the provider.
func (e *Exporter) Shutdown(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
