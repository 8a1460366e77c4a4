// Package telemetry holds the OpenTelemetry meter provider and the
// instruments fed by the event log, the Pebble store and the HTTP server.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/doublemarked/unload-test/pkg/log"
)

const meterName = "github.com/doublemarked/unload-test"

// Config selects the metric exporter. An empty OTLPEndpoint keeps metrics
// in-process only.
type Config struct {
	ServiceName    string        `json:"serviceName" yaml:"serviceName" env:"SERVICE_NAME"`
	OTLPEndpoint   string        `json:"otlpEndpoint" yaml:"otlpEndpoint" env:"OTLP_ENDPOINT"`
	Insecure       bool          `json:"insecure" yaml:"insecure" env:"INSECURE"`
	ExportInterval time.Duration `json:"exportInterval" yaml:"exportInterval" env:"EXPORT_INTERVAL"`
}

// Provider owns the meter provider and the instruments.
type Provider struct {
	mp     *sdkmetric.MeterProvider
	logger log.Logger

	appends     metric.Int64Counter
	conflicts   metric.Int64Counter
	dropped     metric.Int64Counter
	evicted     metric.Int64Counter
	readLatency metric.Float64Histogram
	readBytes   metric.Int64Counter
	commitLat   metric.Float64Histogram
	commitBytes metric.Int64Counter
	requests    metric.Int64Counter
	reqLatency  metric.Float64Histogram
}

// New builds a Provider from cfg, exporting over OTLP/gRPC when an endpoint
// is configured.
func New(ctx context.Context, cfg Config, logger log.Logger) (*Provider, error) {
	if logger == nil {
		logger = log.NewNop()
	}
	logger = logger.WithComponent("telemetry")
	var readers []sdkmetric.Reader
	if cfg.OTLPEndpoint != "" {
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		exp, err := otlpmetricgrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("telemetry: create exporter: %w", err)
		}
		interval := cfg.ExportInterval
		if interval <= 0 {
			interval = 30 * time.Second
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval)))
		logger.Info("metrics export enabled", log.Str("endpoint", cfg.OTLPEndpoint), log.Dur("interval", interval))
	}
	name := cfg.ServiceName
	if name == "" {
		name = "unload"
	}
	return newProvider(name, logger, readers...)
}

// NewWithReader builds a Provider that reports into reader, e.g. a
// sdkmetric.ManualReader in tests.
func NewWithReader(reader sdkmetric.Reader) (*Provider, error) {
	return newProvider("unload", log.NewNop(), reader)
}

func newProvider(service string, logger log.Logger, readers ...sdkmetric.Reader) (*Provider, error) {
	opts := []sdkmetric.Option{
		sdkmetric.WithResource(resource.NewSchemaless(attribute.String("service.name", service))),
	}
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	p := &Provider{mp: sdkmetric.NewMeterProvider(opts...), logger: logger}
	if err := p.initInstruments(p.mp.Meter(meterName)); err != nil {
		_ = p.mp.Shutdown(context.Background())
		return nil, fmt.Errorf("telemetry: instruments: %w", err)
	}
	return p, nil
}

func (p *Provider) initInstruments(m metric.Meter) error {
	var err error
	var errs []error
	p.appends, err = m.Int64Counter("unload.eventlog.appends", metric.WithDescription("Committed appends by attempt number"))
	errs = append(errs, err)
	p.conflicts, err = m.Int64Counter("unload.eventlog.conflicts", metric.WithDescription("Lost compare-and-swap attempts"))
	errs = append(errs, err)
	p.dropped, err = m.Int64Counter("unload.eventlog.dropped", metric.WithDescription("Events dropped after exhausting attempts"))
	errs = append(errs, err)
	p.evicted, err = m.Int64Counter("unload.eventlog.evicted", metric.WithDescription("Events evicted by the capacity bound"))
	errs = append(errs, err)
	p.readLatency, err = m.Float64Histogram("unload.storage.read.duration", metric.WithUnit("ms"))
	errs = append(errs, err)
	p.readBytes, err = m.Int64Counter("unload.storage.read.bytes", metric.WithUnit("By"))
	errs = append(errs, err)
	p.commitLat, err = m.Float64Histogram("unload.storage.commit.duration", metric.WithUnit("ms"))
	errs = append(errs, err)
	p.commitBytes, err = m.Int64Counter("unload.storage.commit.bytes", metric.WithUnit("By"))
	errs = append(errs, err)
	p.requests, err = m.Int64Counter("unload.http.requests", metric.WithDescription("HTTP requests by route and status"))
	errs = append(errs, err)
	p.reqLatency, err = m.Float64Histogram("unload.http.duration", metric.WithUnit("ms"))
	errs = append(errs, err)
	return errors.Join(errs...)
}

// Shutdown flushes pending exports and stops the readers.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.mp.Shutdown(ctx)
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// eventlog.Observer

func (p *Provider) AppendCommitted(attempts int) {
	p.appends.Add(context.Background(), 1, metric.WithAttributes(attribute.Int("attempts", attempts)))
}

func (p *Provider) AppendConflict(attempt int) {
	p.conflicts.Add(context.Background(), 1, metric.WithAttributes(attribute.Int("attempt", attempt)))
}

func (p *Provider) AppendExhausted() {
	p.dropped.Add(context.Background(), 1)
}

func (p *Provider) Evicted(n int) {
	p.evicted.Add(context.Background(), int64(n))
}

// pebble.MetricsHook

func (p *Provider) ObserveRead(elapsed time.Duration, bytes int) {
	ctx := context.Background()
	p.readLatency.Record(ctx, ms(elapsed))
	p.readBytes.Add(ctx, int64(bytes))
}

func (p *Provider) ObserveCommit(elapsed time.Duration, bytes int) {
	ctx := context.Background()
	p.commitLat.Record(ctx, ms(elapsed))
	p.commitBytes.Add(ctx, int64(bytes))
}

// ObserveRequest records one served HTTP request.
func (p *Provider) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)
	p.requests.Add(ctx, 1, attrs)
	p.reqLatency.Record(ctx, ms(elapsed), attrs)
}
