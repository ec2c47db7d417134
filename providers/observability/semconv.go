package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- Company and run attributes ---

const (
	// AttrRunID is the uuid assigned to one resolution run
	AttrRunID = "run.id"

	// AttrCompanyName is the raw company name being resolved
	AttrCompanyName = "company.name"

	// AttrCompanyCity is the city inferred from the address
	AttrCompanyCity = "company.city"

	// AttrOutcome is the final outcome string (URL or sentinel)
	AttrOutcome = "resolve.outcome"

	// AttrOutcomeKind is website, social or none
	AttrOutcomeKind = "resolve.outcome.kind"

	// AttrState is the orchestrator state being entered
	AttrState = "resolve.state"
)

// --- Candidate attributes ---

const (
	// AttrCandidateURL is the candidate URL under evaluation
	AttrCandidateURL = "candidate.url"

	// AttrCandidateScore is the candidate's accumulated score
	AttrCandidateScore = "candidate.score"

	// AttrCandidateSignals is the candidate's signal count
	AttrCandidateSignals = "candidate.signals"

	// AttrCandidateProbability is the calibrated probability
	AttrCandidateProbability = "candidate.probability"

	// AttrRejectReason explains why a candidate was rejected
	AttrRejectReason = "candidate.reject_reason"

	// AttrCandidateCount is the number of candidates in a stage
	AttrCandidateCount = "candidate.count"
)

// --- I/O attributes ---

const (
	// AttrHTTPURL is the requested URL
	AttrHTTPURL = "http.url"

	// AttrHTTPStatusCode is the response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrErrorKind is the ioerr kind of a failed call
	AttrErrorKind = "error.kind"

	// AttrError carries an error message
	AttrError = "error"

	// AttrCacheHit reports whether a cache served the call
	AttrCacheHit = "cache.hit"

	// AttrSearchQuery is the search query string
	AttrSearchQuery = "search.query"

	// AttrSearchBackend is the backend name
	AttrSearchBackend = "search.backend"

	// AttrSearchResults is the number of URLs returned
	AttrSearchResults = "search.results"

	// AttrDuration is an elapsed wall-clock duration
	AttrDuration = "duration"
)

// --- Span names ---

const (
	SpanResolve       = "sitefinder.resolve"
	SpanTopK          = "sitefinder.top_k"
	SpanFetch         = "sitefinder.fetch"
	SpanSearch        = "sitefinder.search"
	SpanDeepVerify    = "sitefinder.deep_verify"
	SpanSocialResolve = "sitefinder.social"
)

// --- Metric names ---

const (
	MetricResolveTotal       = "sitefinder.resolve.total"
	MetricResolveDuration    = "sitefinder.resolve.duration_seconds"
	MetricFetchTotal         = "sitefinder.fetch.total"
	MetricFetchErrors        = "sitefinder.fetch.errors"
	MetricCacheHits          = "sitefinder.cache.hits"
	MetricSearchTotal        = "sitefinder.search.total"
	MetricSearchBackendError = "sitefinder.search.backend_errors"
	MetricCandidatesRejected = "sitefinder.candidates.rejected"
)
