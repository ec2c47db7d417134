package zapobs

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/leofalp/sitefinder/providers/observability"
)

// Observer implements observability.Provider on top of zap and Prometheus.
type Observer struct {
	logger   *zap.Logger
	registry prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]prometheus.Counter
	histograms map[string]prometheus.Histogram
}

// Ensure Observer implements observability.Provider
var _ observability.Provider = (*Observer)(nil)

// New creates an Observer. Without options it logs at info level to the
// console encoder and keeps metrics in a private registry.
//
// Example usage:
//
//	reg := prometheus.NewRegistry()
//	obs, err := zapobs.New(zapobs.WithLevel("debug"), zapobs.WithRegistry(reg))
func New(opts ...Option) (*Observer, error) {
	cfg := &config{level: "info", format: "console"}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		built, err := NewLogger(cfg.level, cfg.format)
		if err != nil {
			return nil, err
		}
		logger = built
	}
	registry := cfg.registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Observer{
		logger:     logger,
		registry:   registry,
		counters:   make(map[string]prometheus.Counter),
		histograms: make(map[string]prometheus.Histogram),
	}, nil
}

// Logger returns the underlying zap logger.
func (o *Observer) Logger() *zap.Logger {
	return o.logger
}

// Sync flushes buffered log entries.
func (o *Observer) Sync() error {
	return o.logger.Sync()
}

// --- TRACING ---

// StartSpan logs the span start at debug level and returns a context that
// carries the new span.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	span := &zapSpan{
		name:      name,
		startTime: time.Now(),
		logger:    o.logger.With(zap.String("span", name)),
		attrs:     attrs,
	}
	span.logger.Debug("span started", fields(attrs)...)
	return observability.ContextWithSpan(ctx, span), span
}

type zapSpan struct {
	name      string
	startTime time.Time
	logger    *zap.Logger

	mu     sync.Mutex
	attrs  []observability.Attribute
	status string
}

// End logs the span duration with every accumulated attribute.
func (s *zapSpan) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs := fields(s.attrs)
	fs = append(fs, zap.Duration("duration", time.Since(s.startTime)))
	if s.status != "" {
		fs = append(fs, zap.String("status", s.status))
	}
	s.logger.Debug("span ended", fs...)
}

func (s *zapSpan) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

func (s *zapSpan) SetStatus(code observability.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch code {
	case observability.StatusOK:
		s.status = "ok"
	case observability.StatusError:
		s.status = "error"
	default:
		s.status = "unset"
	}
	if description != "" {
		s.status += ": " + description
	}
}

// RecordError logs err at warn level; resolution failures are expected
// outcomes, not faults.
func (s *zapSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.attrs = append(s.attrs, observability.Error(err))
	s.mu.Unlock()
	s.logger.Warn("span error", zap.Error(err))
}

// --- METRICS ---

// Counter returns the Prometheus counter registered under the sanitised
// name. Attributes are not turned into labels; they are logged at debug level.
func (o *Observer) Counter(name string) observability.Counter {
	o.mu.Lock()
	defer o.mu.Unlock()
	c, ok := o.counters[name]
	if !ok {
		c = prometheus.NewCounter(prometheus.CounterOpts{Name: metricName(name), Help: name})
		c = registerOrExisting(o.registry, c).(prometheus.Counter)
		o.counters[name] = c
	}
	return &counter{name: name, c: c, logger: o.logger}
}

// Histogram returns the Prometheus histogram registered under the sanitised
// name, using the default buckets.
func (o *Observer) Histogram(name string) observability.Histogram {
	o.mu.Lock()
	defer o.mu.Unlock()
	h, ok := o.histograms[name]
	if !ok {
		h = prometheus.NewHistogram(prometheus.HistogramOpts{Name: metricName(name), Help: name, Buckets: prometheus.DefBuckets})
		h = registerOrExisting(o.registry, h).(prometheus.Histogram)
		o.histograms[name] = h
	}
	return &histogram{name: name, h: h, logger: o.logger}
}

func registerOrExisting(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return already.ExistingCollector
		}
	}
	return c
}

// metricName turns "sitefinder.fetch.total" into "sitefinder_fetch_total".
func metricName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(name)
}

type counter struct {
	name   string
	c      prometheus.Counter
	logger *zap.Logger
}

func (c *counter) Add(_ context.Context, value int64, attrs ...observability.Attribute) {
	c.c.Add(float64(value))
	if ce := c.logger.Check(zapcore.DebugLevel, "counter"); ce != nil {
		ce.Write(append(fields(attrs), zap.String("metric", c.name), zap.Int64("delta", value))...)
	}
}

type histogram struct {
	name   string
	h      prometheus.Histogram
	logger *zap.Logger
}

func (h *histogram) Record(_ context.Context, value float64, attrs ...observability.Attribute) {
	h.h.Observe(value)
	if ce := h.logger.Check(zapcore.DebugLevel, "histogram"); ce != nil {
		ce.Write(append(fields(attrs), zap.String("metric", h.name), zap.Float64("value", value))...)
	}
}

// --- LOGGING ---

func (o *Observer) Debug(_ context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.Debug(msg, fields(attrs)...)
}

func (o *Observer) Info(_ context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.Info(msg, fields(attrs)...)
}

func (o *Observer) Warn(_ context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.Warn(msg, fields(attrs)...)
}

func (o *Observer) Error(_ context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.Error(msg, fields(attrs)...)
}

func fields(attrs []observability.Attribute) []zap.Field {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, zap.Any(attr.Key, attr.Value))
	}
	return out
}
