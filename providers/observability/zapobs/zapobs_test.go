package zapobs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/leofalp/sitefinder/providers/observability"
)

func newObserved(t *testing.T, level zapcore.Level) (*Observer, *observer.ObservedLogs, *prometheus.Registry) {
	t.Helper()
	core, logs := observer.New(level)
	reg := prometheus.NewRegistry()
	obs, err := New(WithLogger(zap.New(core)), WithRegistry(reg))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return obs, logs, reg
}

// TestObserver_Logging verifies attributes become zap fields.
func TestObserver_Logging(t *testing.T) {
	obs, logs, _ := newObserved(t, zapcore.InfoLevel)

	obs.Info(context.Background(), "resolved", observability.String(observability.AttrOutcome, "https://acme.com.tr"))
	obs.Debug(context.Background(), "filtered out")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[observability.AttrOutcome]; got != "https://acme.com.tr" {
		t.Errorf("field %s = %v, want https://acme.com.tr", observability.AttrOutcome, got)
	}
}

// TestObserver_Counter verifies counters are registered once and accumulate.
func TestObserver_Counter(t *testing.T) {
	obs, _, reg := newObserved(t, zapcore.InfoLevel)

	obs.Counter(observability.MetricFetchTotal).Add(context.Background(), 2)
	obs.Counter(observability.MetricFetchTotal).Add(context.Background(), 3)

	if n, err := testutil.GatherAndCount(reg, "sitefinder_fetch_total"); err != nil || n != 1 {
		t.Fatalf("GatherAndCount() = %d, %v; want 1 series", n, err)
	}
	c := obs.counters[observability.MetricFetchTotal]
	if got := testutil.ToFloat64(c); got != 5 {
		t.Errorf("counter value = %v, want 5", got)
	}
}

// TestObserver_SharedRegistry verifies two observers on one registry reuse
// the existing collector instead of failing registration.
func TestObserver_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, _ := New(WithLogger(zap.NewNop()), WithRegistry(reg))
	second, _ := New(WithLogger(zap.NewNop()), WithRegistry(reg))

	first.Counter(observability.MetricResolveTotal).Add(context.Background(), 1)
	second.Counter(observability.MetricResolveTotal).Add(context.Background(), 1)

	if got := testutil.ToFloat64(first.counters[observability.MetricResolveTotal]); got != 2 {
		t.Errorf("shared counter = %v, want 2", got)
	}
}

// TestObserver_Span verifies span lifecycle logging and context propagation.
func TestObserver_Span(t *testing.T) {
	obs, logs, _ := newObserved(t, zapcore.DebugLevel)

	ctx, span := obs.StartSpan(context.Background(), observability.SpanResolve, observability.String(observability.AttrCompanyName, "Acme"))
	if observability.SpanFromContext(ctx) != span {
		t.Fatal("StartSpan must attach the span to the returned context")
	}
	span.RecordError(errors.New("no candidates"))
	span.SetStatus(observability.StatusOK, "")
	span.End()

	if n := logs.FilterMessage("span ended").Len(); n != 1 {
		t.Errorf("span ended entries = %d, want 1", n)
	}
	if n := logs.FilterMessage("span error").Len(); n != 1 {
		t.Errorf("span error entries = %d, want 1", n)
	}
}

// TestParseLevel covers the accepted level names.
func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
