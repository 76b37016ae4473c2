// Package telemetry wires the OpenTelemetry meter provider with a Prometheus
// exporter and defines the service's scoring metrics.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup initializes the global meter provider and returns the Prometheus
// scrape handler plus a shutdown function.
func Setup(serviceName, environment string) (http.Handler, func(context.Context) error, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			attribute.String("deployment.environment", environment),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return promhttp.Handler(), provider.Shutdown, nil
}

// Metrics holds the scoring pipeline instruments. A nil *Metrics is valid and
// records nothing, so callers never need to guard.
type Metrics struct {
	recitations metric.Int64Counter
	scores      metric.Int64Histogram
	duration    metric.Float64Histogram
}

// NewMetrics registers the scoring instruments on the global meter.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("quran-recite-api")

	recitations, err := meter.Int64Counter("recitations_scored_total",
		metric.WithDescription("Number of recitations scored"))
	if err != nil {
		return nil, err
	}

	scores, err := meter.Int64Histogram("recitation_overall_score",
		metric.WithDescription("Distribution of overall recitation scores"))
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("recitation_scoring_seconds",
		metric.WithDescription("Wall time spent transcribing and scoring one recitation"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &Metrics{recitations: recitations, scores: scores, duration: duration}, nil
}

// RecordScoring records one completed scoring attempt.
func (m *Metrics) RecordScoring(ctx context.Context, overallScore int, elapsed time.Duration, status string) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.recitations.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
	if status == "done" {
		m.scores.Record(ctx, int64(overallScore))
	}
}
