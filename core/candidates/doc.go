// Package candidates generates the deterministic domain guesses for a
// company name. It performs no network access.
package candidates
