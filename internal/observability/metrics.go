package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Instrument names.
const (
	MetricPresses = "jaskcalc.presses.total"
	MetricErrors  = "jaskcalc.errors.total"
	MetricResults = "jaskcalc.results.total"
)

// Error kinds recorded on MetricErrors.
const (
	ErrorKindChainDivideByZero = "chain_divide_by_zero"
	ErrorKindDivideByZero      = "divide_by_zero"
	ErrorKindNonFinite         = "non_finite"
)

// Metrics holds the calculator's OTel instruments.
type Metrics struct {
	presses metric.Int64Counter
	errors  metric.Int64Counter
	results metric.Int64Counter
}

// NewMetrics registers instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	presses, err := meter.Int64Counter(MetricPresses,
		metric.WithDescription("Keypad presses, by action"),
		metric.WithUnit("{press}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating presses counter: %w", err)
	}

	errs, err := meter.Int64Counter(MetricErrors,
		metric.WithDescription("Calculations that ended in an error display"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating errors counter: %w", err)
	}

	results, err := meter.Int64Counter(MetricResults,
		metric.WithDescription("Calculations that produced a numeric result"),
		metric.WithUnit("{result}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating results counter: %w", err)
	}

	return &Metrics{presses: presses, errors: errs, results: results}, nil
}

func (m *Metrics) RecordPress(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.presses.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

func (m *Metrics) RecordError(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *Metrics) RecordResult(ctx context.Context) {
	if m == nil {
		return
	}
	m.results.Add(ctx, 1)
}

// Reader is the SDK reader Totals and CountsByAttribute collect from.
type Reader = sdkmetric.Reader

// NewSessionMeterProvider returns an SDK provider whose ManualReader lets
// the caller read the counters back, e.g. for an end-of-session summary.
func NewSessionMeterProvider() (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), reader
}

// Totals collects every int64 sum from reader keyed by instrument name,
// summed across attribute sets.
func Totals(ctx context.Context, reader Reader) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collect metrics: %w", err)
	}
	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out[m.Name] += dp.Value
			}
		}
	}
	return out, nil
}

// CountsByAttribute returns the data points of the int64 sum named name,
// keyed by the value of attribute key.
func CountsByAttribute(ctx context.Context, reader Reader, name, key string) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collect metrics: %w", err)
	}
	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key(key))
				out[v.Emit()] += dp.Value
			}
		}
	}
	return out, nil
}
