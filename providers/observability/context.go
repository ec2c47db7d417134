package observability

import "context"

type spanKey struct{}

// SpanFromContext returns the span carried by ctx, or nil.
func SpanFromContext(ctx context.Context) Span {
	if ctx == nil {
		return nil
	}
	span, _ := ctx.Value(spanKey{}).(Span)
	return span
}

// ContextWithSpan returns a copy of ctx carrying span. Backends call it from
// StartSpan.
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, spanKey{}, span)
}

// Annotate adds attrs to the span carried by ctx. It does nothing when ctx
// has no span, so leaf packages can annotate the stage that called them
// without opening a span of their own.
func Annotate(ctx context.Context, attrs ...Attribute) {
	if span := SpanFromContext(ctx); span != nil {
		span.SetAttributes(attrs...)
	}
}
