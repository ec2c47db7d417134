// Package resolver decides the official web presence of one company.
//
// A resolution walks a fixed state machine:
//
//	GENERATING  → domain guesses plus website search results
//	SCORING     → URL-shape score for every candidate, top N kept
//	VERIFYING   → one fetch per candidate, content score, signal gates,
//	              deep verification for auto-guesses and silent pages
//	CALIBRATING → model probability and threshold, when a model is set
//	DECIDED     → website, social profile, or a sentinel
//
// When no website survives, the social resolver runs and its answer becomes
// the outcome. Every network dependency comes from an explicitly built
// [Context], so tests swap in fakes and batch runs share one cache.
//
// Resolve returns an error only when ctx is done or a calibration model
// violates the feature contract. Missing evidence is an [Outcome] carrying a
// [Sentinel], never an error.
package resolver
