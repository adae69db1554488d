package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// DefaultServiceName labels telemetry when no service name is configured.
const DefaultServiceName = "nba-player-analytics"

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx               context.Context
	meter             metric.Meter
	requests          metric.Int64Counter
	requestLatencyMs  metric.Float64Histogram
	providerAttempts  metric.Int64Counter
	providerErrors    metric.Int64Counter
	providerLatencyMs metric.Float64Histogram
	retries           metric.Int64Counter
	retryDelayMs      metric.Float64Histogram
	rosterLoads       metric.Int64Counter
	rosterPlayers     metric.Int64Histogram
	operations        metric.Int64Counter
	operationErrors   metric.Int64Counter
	operationLatency  metric.Float64Histogram
	fallbacks         metric.Int64Counter
	clusterRuns       metric.Int64Counter
	clusterIterations metric.Int64Histogram
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(DefaultServiceName)
	inst := &otelInstruments{ctx: context.Background(), meter: meter}

	var err error
	counters := []struct {
		dst  *metric.Int64Counter
		name string
	}{
		{&inst.requests, "http_requests_total"},
		{&inst.providerAttempts, "roster_fetch_attempts_total"},
		{&inst.providerErrors, "roster_fetch_errors_total"},
		{&inst.retries, "roster_fetch_retries_total"},
		{&inst.rosterLoads, "roster_loads_total"},
		{&inst.operations, "analytics_operations_total"},
		{&inst.operationErrors, "analytics_operation_errors_total"},
		{&inst.fallbacks, "projection_fallbacks_total"},
		{&inst.clusterRuns, "cluster_runs_total"},
	}
	for _, c := range counters {
		if *c.dst, err = meter.Int64Counter(c.name); err != nil {
			return nil, err
		}
	}

	latencies := []struct {
		dst  *metric.Float64Histogram
		name string
	}{
		{&inst.requestLatencyMs, "http_request_duration_ms"},
		{&inst.providerLatencyMs, "roster_fetch_duration_ms"},
		{&inst.retryDelayMs, "roster_retry_delay_ms"},
		{&inst.operationLatency, "analytics_operation_duration_ms"},
	}
	for _, h := range latencies {
		if *h.dst, err = meter.Float64Histogram(h.name); err != nil {
			return nil, err
		}
	}

	if inst.rosterPlayers, err = meter.Int64Histogram("roster_players"); err != nil {
		return nil, err
	}
	if inst.clusterIterations, err = meter.Int64Histogram("cluster_iterations"); err != nil {
		return nil, err
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.providerAttempts, 1, attrs...)
	o.recordHistogram(o.providerLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.providerErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordRetry(provider string, delay time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.retries, 1, attrs...)
	if delay > 0 {
		o.recordHistogram(o.retryDelayMs, float64(delay.Milliseconds()), attrs...)
	}
}

func (o *otelInstruments) recordRosterLoad(source string, count int) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrSource, source)}
	o.recordCounter(o.rosterLoads, 1, attrs...)
	o.rosterPlayers.Record(o.ctx, int64(count), metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordOperation(op string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrOperation, op),
		attribute.String(AttrOutcome, outcome),
	}
	o.recordCounter(o.operations, 1, attrs...)
	o.recordHistogram(o.operationLatency, float64(duration.Microseconds())/1000, attrs...)
	if err != nil {
		o.recordCounter(o.operationErrors, 1, attribute.String(AttrOperation, op))
	}
}

func (o *otelInstruments) recordFallback(stat string) {
	if o == nil {
		return
	}
	o.recordCounter(o.fallbacks, 1, attribute.String(AttrStat, stat))
}

func (o *otelInstruments) recordClusterRun(k, iterations int, converged bool) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.Bool(AttrConverged, converged)}
	o.recordCounter(o.clusterRuns, 1, attrs...)
	o.clusterIterations.Record(o.ctx, int64(iterations), metric.WithAttributes(append(attrs, attribute.Int("k", k))...))
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
