package observability

import (
	"context"
	"time"
)

// Provider bundles the three signals a resolution run emits. Components take
// one Provider and never a concrete backend.
type Provider interface {
	Tracer
	Metrics
	Logger
}

// Tracer opens spans around the stages of a run: resolve, fetch, search,
// deep verification and the social fallback.
type Tracer interface {
	// StartSpan starts a span named after a Span* constant and returns a
	// context carrying it.
	StartSpan(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Span is one timed stage. Attributes accumulate until End.
type Span interface {
	End()
	SetAttributes(attrs ...Attribute)
	SetStatus(code StatusCode, description string)
	// RecordError notes a failure without ending the span. A failed fetch
	// or search is an expected outcome, so backends should not treat it as
	// a fault.
	RecordError(err error)
}

// StatusCode is the final state of a span.
type StatusCode int

const (
	StatusUnset StatusCode = iota
	StatusOK
	StatusError
)

// Metrics hands out the named instruments listed in semconv.go. Asking twice
// for the same name returns the same instrument.
type Metrics interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// Counter counts events such as fetches, cache hits and rejections.
type Counter interface {
	Add(ctx context.Context, value int64, attrs ...Attribute)
}

// Histogram records durations and scores.
type Histogram interface {
	Record(ctx context.Context, value float64, attrs ...Attribute)
}

// Logger writes leveled, structured entries. Per-candidate detail goes to
// Debug; run outcomes go to Info.
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...Attribute)
	Info(ctx context.Context, msg string, attrs ...Attribute)
	Warn(ctx context.Context, msg string, attrs ...Attribute)
	Error(ctx context.Context, msg string, attrs ...Attribute)
}

// Attribute is a key from semconv.go with its value.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute { return Attribute{Key: key, Value: value} }

func Int(key string, value int) Attribute { return Attribute{Key: key, Value: value} }

func Float64(key string, value float64) Attribute { return Attribute{Key: key, Value: value} }

func Bool(key string, value bool) Attribute { return Attribute{Key: key, Value: value} }

func Duration(key string, value time.Duration) Attribute { return Attribute{Key: key, Value: value} }

// Error records err under AttrError. A nil error yields an empty value.
func Error(err error) Attribute {
	if err == nil {
		return Attribute{Key: AttrError, Value: ""}
	}
	return Attribute{Key: AttrError, Value: err.Error()}
}

// Candidate returns the attributes identifying a scored website candidate,
// followed by extra.
func Candidate(url string, score float64, signals int, extra ...Attribute) []Attribute {
	return append([]Attribute{
		String(AttrCandidateURL, url),
		Float64(AttrCandidateScore, score),
		Int(AttrCandidateSignals, signals),
	}, extra...)
}
