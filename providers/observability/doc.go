// Package observability defines the interfaces and semantic conventions used
// for tracing, metrics collection, and structured logging throughout
// sitefinder.
//
// The central entry point is [Provider], which composes [Tracer], [Metrics],
// and [Logger] into a single injectable dependency. Components accept a
// Provider through their options and fall back to [Nop] when none is given.
// The active [Span] travels in a [context.Context]; use [ContextWithSpan] and
// [SpanFromContext] to propagate it across package boundaries.
//
// The semconv.go file holds the attribute keys, span names and metric names
// recorded by the resolver, so every backend sees the same vocabulary.
package observability
