package store

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"chatvault/internal/domain"
)

const tracerName = "chatvault/internal/store"

// Outcome labels recorded per backend call.
const (
	outcomeOK    = "ok"
	outcomeMiss  = "miss"
	outcomeError = "error"
)

// Metrics groups the collectors updated by InstrumentedBackend.
type Metrics struct {
	OpsTotal    *prometheus.CounterVec
	OpDuration  *prometheus.HistogramVec
	BackendName string
}

// NewMetrics builds the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer, backend string) (*Metrics, error) {
	m := &Metrics{
		OpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatvault_backend_operations_total",
				Help: "Record backend calls by operation and outcome",
			},
			[]string{"backend", "op", "outcome"},
		),
		OpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatvault_backend_operation_duration_seconds",
				Help:    "Record backend call latency",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"backend", "op"},
		),
		BackendName: backend,
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.OpsTotal, m.OpDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// InstrumentedBackend decorates a RecordBackend with call counters, latency
// histograms and one trace span per call.
type InstrumentedBackend struct {
	next    domain.RecordBackend
	metrics *Metrics
	tracer  trace.Tracer
}

// InstrumentOption customises Instrument.
type InstrumentOption func(*InstrumentedBackend)

// WithTracerProvider sets the span source. The default is the global
// provider, which records nothing until the application installs one.
func WithTracerProvider(tp trace.TracerProvider) InstrumentOption {
	return func(b *InstrumentedBackend) {
		b.tracer = tp.Tracer(tracerName)
	}
}

// Instrument wraps next.
func Instrument(next domain.RecordBackend, m *Metrics, opts ...InstrumentOption) *InstrumentedBackend {
	b := &InstrumentedBackend{
		next:    next,
		metrics: m,
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *InstrumentedBackend) start(ctx context.Context, op string) (context.Context, trace.Span, time.Time) {
	ctx, span := b.tracer.Start(ctx, "backend."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("chatvault.backend", b.metrics.BackendName)),
	)
	return ctx, span, time.Now()
}

func (b *InstrumentedBackend) finish(span trace.Span, op string, start time.Time, outcome string, err error) {
	b.metrics.OpsTotal.WithLabelValues(b.metrics.BackendName, op, outcome).Inc()
	b.metrics.OpDuration.WithLabelValues(b.metrics.BackendName, op).Observe(time.Since(start).Seconds())

	span.SetAttributes(attribute.String("chatvault.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (b *InstrumentedBackend) Load(ctx context.Context, key domain.StorageKey) ([]byte, bool, error) {
	ctx, span, start := b.start(ctx, "load")
	data, ok, err := b.next.Load(ctx, key)
	b.finish(span, "load", start, foundOutcome(ok, err), err)
	return data, ok, err
}

func (b *InstrumentedBackend) Save(ctx context.Context, key domain.StorageKey, data []byte) error {
	ctx, span, start := b.start(ctx, "save")
	err := b.next.Save(ctx, key, data)
	b.finish(span, "save", start, foundOutcome(true, err), err)
	return err
}

func (b *InstrumentedBackend) Remove(ctx context.Context, key domain.StorageKey) (bool, error) {
	ctx, span, start := b.start(ctx, "remove")
	existed, err := b.next.Remove(ctx, key)
	b.finish(span, "remove", start, foundOutcome(existed, err), err)
	return existed, err
}

func (b *InstrumentedBackend) Close() error { return b.next.Close() }

func foundOutcome(ok bool, err error) string {
	switch {
	case err != nil:
		return outcomeError
	case !ok:
		return outcomeMiss
	default:
		return outcomeOK
	}
}

var _ domain.RecordBackend = (*InstrumentedBackend)(nil)
