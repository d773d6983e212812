package observability

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

type metrics struct {
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	stageTotal          metric.Int64Counter
	stageDuration       metric.Float64Histogram
	rowsReturned        metric.Int64Histogram
}

var (
	metricsOnce sync.Once
	m           metrics
)

func buildMeterProvider(ctx context.Context, cfg Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	if !cfg.Enabled || !cfg.MetricsEnabled {
		return sdkmetric.NewMeterProvider(), nil
	}

	exporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter),
		),
	), nil
}

func initInstruments() {
	metricsOnce.Do(func() {
		meter := otel.Meter("smartbridge/pipeline")
		m.httpRequestsTotal, _ = meter.Int64Counter("smartbridge.http.server.requests_total")
		m.httpRequestDuration, _ = meter.Float64Histogram("smartbridge.http.server.request_duration_ms")
		m.stageTotal, _ = meter.Int64Counter("smartbridge.pipeline.stage_total")
		m.stageDuration, _ = meter.Float64Histogram("smartbridge.pipeline.stage_duration_ms")
		m.rowsReturned, _ = meter.Int64Histogram("smartbridge.executor.rows_returned")
	})
}

func RecordHTTPRequest(ctx context.Context, method, route string, status int, durationMS float64) {
	initInstruments()
	attrs := metric.WithAttributes(
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPRoute, route),
		attribute.Int(AttrHTTPStatusCode, status),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, durationMS, attrs)
}

// RecordStage counts one run of a pipeline stage.
func RecordStage(ctx context.Context, stage string, success bool, durationMS float64) {
	initInstruments()
	attrs := metric.WithAttributes(
		attribute.String(AttrPipelineStage, stage),
		attribute.Bool("success", success),
	)
	m.stageTotal.Add(ctx, 1, attrs)
	m.stageDuration.Record(ctx, durationMS, attrs)
}

// RecordRows records the size of a successful result set.
func RecordRows(ctx context.Context, dialect string, rows int, truncated bool) {
	initInstruments()
	m.rowsReturned.Record(ctx, int64(rows), metric.WithAttributes(
		attribute.String(AttrDBSystem, dialect),
		attribute.Bool(AttrTruncated, truncated),
	))
}
