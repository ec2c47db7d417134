// Package probe answers two structural questions about a candidate host:
// does it resolve, and does its TLS certificate name the company.
//
// Both probes are bounded by a short timeout (at most [MaxTimeout]) and fail
// closed: any error, including an unverifiable certificate, reads as false.
// Results are not cached; callers that need a result twice keep it.
package probe
