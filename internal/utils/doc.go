// Package utils provides small shared helpers used throughout the sitefinder
// internals: closing response bodies with a logged error, rune-safe string
// truncation for review titles, and JSON rendering for CLI output.
package utils
