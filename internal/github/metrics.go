package github

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "ghrepo/internal/github"

	metricRequests        = "ghrepo.api.requests"
	metricRequestDuration = "ghrepo.api.request.duration"

	attrMethod     = "http.method"
	attrStatusCode = "http.status_code"
)

// requestMetrics records one data point per API request.
type requestMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newRequestMetrics(provider metric.MeterProvider) (*requestMetrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(instrumentationName)

	requests, err := meter.Int64Counter(
		metricRequests,
		metric.WithDescription("Number of API requests sent"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		metricRequestDuration,
		metric.WithDescription("Duration of API requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &requestMetrics{requests: requests, duration: duration}, nil
}

// record stores a finished request. statusCode is 0 for transport failures.
func (m *requestMetrics) record(ctx context.Context, method string, statusCode int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.Int(attrStatusCode, statusCode),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
