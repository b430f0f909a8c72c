// Package otel exports analysis run metrics to an OTEL Collector over OTLP
// gRPC. Disabled by default; callers fall back to the no-op exporter.
package otel

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
)

const (
	serviceName    = "convoscope"
	serviceVersion = "1.0.0"
)

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// RunMetrics is the per-run measurement set handed to an exporter.
type RunMetrics struct {
	Source             string
	Conversations      int64
	Messages           int64
	FailureRatePercent float64
	AvgEngagement      float64
}

// MetricsExporter publishes run metrics.
type MetricsExporter interface {
	ExportRunMetrics(ctx context.Context, m RunMetrics) error
	Close(ctx context.Context) error
}

// Exporter exports run metrics to an OTEL Collector.
type Exporter struct {
	provider           *sdkmetric.MeterProvider
	meter              metric.Meter
	messagesTotal      metric.Int64Counter
	conversationsTotal metric.Int64Counter
	runsTotal          metric.Int64Counter
	failureRateHist    metric.Float64Histogram
	engagementHist     metric.Float64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
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

	messagesTotal, err := meter.Int64Counter(
		"convoscope_messages_classified_total",
		metric.WithDescription("Total messages classified"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating messages counter: %w", err)
	}

	conversationsTotal, err := meter.Int64Counter(
		"convoscope_conversations_total",
		metric.WithDescription("Total conversations analyzed"),
		metric.WithUnit("{conversation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating conversations counter: %w", err)
	}

	runsTotal, err := meter.Int64Counter(
		"convoscope_runs_total",
		metric.WithDescription("Total analysis runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}

	failureRateHist, err := meter.Float64Histogram(
		"convoscope_failure_rate_percent",
		metric.WithDescription("Assistant failure rate per run"),
		metric.WithUnit("%"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failure rate histogram: %w", err)
	}

	engagementHist, err := meter.Float64Histogram(
		"convoscope_engagement_score",
		metric.WithDescription("Average daily engagement score per run"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating engagement histogram: %w", err)
	}

	return &Exporter{
		provider:           provider,
		meter:              meter,
		messagesTotal:      messagesTotal,
		conversationsTotal: conversationsTotal,
		runsTotal:          runsTotal,
		failureRateHist:    failureRateHist,
		engagementHist:     engagementHist,
	}, nil
}

// ExportRunMetrics exports the measurements for one completed run.
func (e *Exporter) ExportRunMetrics(ctx context.Context, m RunMetrics) error {
	opt := metric.WithAttributes(attribute.String("source", m.Source))

	e.messagesTotal.Add(ctx, m.Messages, opt)
	e.conversationsTotal.Add(ctx, m.Conversations, opt)
	e.failureRateHist.Record(ctx, m.FailureRatePercent, opt)
	e.engagementHist.Record(ctx, m.AvgEngagement, opt)
	e.runsTotal.Add(ctx, 1, opt)

	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
