// Package zapobs provides an observability.Provider implementation backed by
// go.uber.org/zap for logs and spans and by the Prometheus client for
// counters and histograms.
//
// The main entry point is [New]. Logger construction can be tuned with
// [WithLogger], [WithLevel] and [WithFormat]; metrics are registered in the
// registry given to [WithRegistry], or in a private registry by default so
// tests and multiple resolvers never collide on metric names.
package zapobs
