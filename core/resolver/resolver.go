package resolver

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/sitefinder/core/calibration"
	"github.com/leofalp/sitefinder/core/candidates"
	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/deepverify"
	"github.com/leofalp/sitefinder/core/domain"
	"github.com/leofalp/sitefinder/core/scoring"
	"github.com/leofalp/sitefinder/core/signals"
	"github.com/leofalp/sitefinder/core/social"
	"github.com/leofalp/sitefinder/providers/fetch"
	"github.com/leofalp/sitefinder/providers/observability"
)

const (
	// DefaultTopN is how many quick-scored candidates get fetched.
	DefaultTopN = 4
	// MinAutoSignals is the signal count an auto-guessed domain needs,
	// deep verification included.
	MinAutoSignals = 2
	// MinAcceptScore is the score a candidate without signals, or an
	// uncalibrated winner, must exceed.
	MinAcceptScore = 5.0
)

// WebsiteQueries are the website searches. {name} is the raw company name
// and {city} the inferred province, possibly empty.
var WebsiteQueries = []string{
	"{name} resmi sitesi",
	"{name} {city} iletişim",
	"{name}",
}

// Pages fetches one page. Implementations degrade every failure to an error
// value and never panic.
type Pages interface {
	Fetch(ctx context.Context, url string) (*fetch.Page, error)
}

// Searcher returns result URLs for a query. It never fails.
type Searcher interface {
	Search(ctx context.Context, query string) []string
}

// Context owns every dependency a resolution touches. Build one per process
// and share it between resolutions; all fields must be safe for concurrent
// use when ResolveBatch is used.
type Context struct {
	Pages    Pages
	Search   Searcher
	Probe    scoring.Prober
	Observer observability.Provider
}

type settings struct {
	deepVerify bool
	threshold  *float64
	model      *calibration.Model
	topN       int
	weights    scoring.Weights
}

// Option configures a Resolver or a single Resolve call.
type Option func(*settings)

// WithDeepVerify toggles subpage crawling. It is on by default.
func WithDeepVerify(on bool) Option {
	return func(s *settings) {
		s.deepVerify = on
	}
}

// WithProbabilityThreshold rejects calibrated candidates whose probability
// falls below p. It has no effect without a model.
func WithProbabilityThreshold(p float64) Option {
	return func(s *settings) {
		s.threshold = &p
	}
}

// WithModel enables calibration with m. A nil model leaves the resolver
// uncalibrated.
func WithModel(m *calibration.Model) Option {
	return func(s *settings) {
		s.model = m
	}
}

// WithTopN overrides DefaultTopN. Values below 1 are ignored.
func WithTopN(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithWeights overrides scoring.DefaultWeights.
func WithWeights(w scoring.Weights) Option {
	return func(s *settings) {
		s.weights = w
	}
}

// Resolver runs the resolution state machine. It is safe for concurrent use
// when its Context is.
type Resolver struct {
	rc       Context
	defaults settings
	observer observability.Provider
}

// New returns a Resolver over rc. opts become the defaults of every call.
func New(rc Context, opts ...Option) *Resolver {
	rc.Observer = observability.OrNop(rc.Observer)
	r := &Resolver{
		rc: rc,
		defaults: settings{
			deepVerify: true,
			topN:       DefaultTopN,
			weights:    scoring.DefaultWeights(),
		},
		observer: rc.Observer,
	}
	for _, opt := range opts {
		opt(&r.defaults)
	}
	return r
}

// run is the per-call view of a Resolver.
type run struct {
	*Resolver
	settings
	id      string
	profile company.Profile
	scorer  *scoring.Scorer
	crawler *deepverify.Crawler
}

func (r *Resolver) newRun(q company.Query, opts []Option) *run {
	s := r.defaults
	for _, opt := range opts {
		opt(&s)
	}
	return &run{
		Resolver: r,
		settings: s,
		id:       uuid.NewString(),
		profile:  company.NewProfile(q),
		scorer:   scoring.New(r.rc.Probe, scoring.WithWeights(s.weights), scoring.WithObserver(r.observer)),
		crawler:  deepverify.New(r.rc.Pages, deepverify.WithObserver(r.observer)),
	}
}

// Resolve finds the official website of q, falling back to a social profile.
// The error is non-nil only when ctx is done or the model rejects the
// feature vector.
func (r *Resolver) Resolve(ctx context.Context, q company.Query, opts ...Option) (Outcome, error) {
	ru := r.newRun(q, opts)
	start := time.Now()

	ctx, span := r.observer.StartSpan(ctx, observability.SpanResolve,
		observability.String(observability.AttrRunID, ru.id),
		observability.String(observability.AttrCompanyName, ru.profile.Name),
	)
	defer span.End()

	out, err := ru.resolve(ctx)
	out.RunID = ru.id
	if err != nil {
		span.RecordError(err)
		span.SetStatus(observability.StatusError, err.Error())
		return out, err
	}

	r.observer.Counter(observability.MetricResolveTotal).Add(ctx, 1,
		observability.String(observability.AttrOutcomeKind, string(out.Kind)))
	r.observer.Histogram(observability.MetricResolveDuration).Record(ctx, time.Since(start).Seconds())
	span.SetAttributes(
		observability.String(observability.AttrOutcomeKind, string(out.Kind)),
		observability.String(observability.AttrOutcome, out.String()),
	)
	r.observer.Info(ctx, "company resolved",
		observability.String(observability.AttrRunID, ru.id),
		observability.String(observability.AttrCompanyName, ru.profile.Name),
		observability.String(observability.AttrOutcomeKind, string(out.Kind)),
		observability.String(observability.AttrOutcome, out.String()),
		observability.Duration(observability.AttrDuration, time.Since(start)),
	)
	return out, nil
}

func (ru *run) resolve(ctx context.Context) (Outcome, error) {
	if ru.profile.Empty() {
		return Outcome{Kind: KindNone, Sentinel: SentinelEmptyName}, nil
	}

	ru.enter(ctx, "generating")
	cands := ru.generate(ctx)
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if len(cands) == 0 {
		return ru.fallback(ctx, SentinelNoCandidates, nil)
	}

	ru.enter(ctx, "scoring")
	for i := range cands {
		cands[i].QuickScore = ru.scorer.QuickScore(cands[i].URL, ru.profile)
		cands[i].Score = cands[i].QuickScore
	}
	slices.SortStableFunc(cands, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(cands) > ru.topN {
		cands = cands[:ru.topN]
	}

	ru.enter(ctx, "verifying")
	for i := range cands {
		if err := ru.verify(ctx, &cands[i]); err != nil {
			return Outcome{}, err
		}
	}

	if ru.model != nil {
		ru.enter(ctx, "calibrating")
		for i := range cands {
			if err := ru.calibrate(ctx, &cands[i]); err != nil {
				return Outcome{Candidates: cands}, err
			}
		}
	}

	ru.enter(ctx, "decided")
	if best, ok := decide(cands); ok {
		return Outcome{Kind: KindWebsite, URL: best.URL, Candidates: cands}, nil
	}
	return ru.fallback(ctx, SentinelInsufficientEvidence, cands)
}

func (ru *run) enter(ctx context.Context, state string) {
	ru.observer.Debug(ctx, "resolver state",
		observability.String(observability.AttrRunID, ru.id),
		observability.String(observability.AttrState, state),
	)
}

// generate returns the auto-guesses followed by the website search results,
// de-duplicated in discovery order. Social profiles are left to the social
// resolver.
func (ru *run) generate(ctx context.Context) []Candidate {
	seen := make(map[string]struct{})
	var out []Candidate
	add := func(url string, auto bool) {
		url = strings.TrimSpace(url)
		if url == "" || domain.IsSocial(url) {
			return
		}
		if _, ok := seen[url]; ok {
			return
		}
		seen[url] = struct{}{}
		out = append(out, newCandidate(url, auto))
	}

	for _, u := range candidates.ForProfile(ru.profile) {
		add(u, true)
	}
	if ru.rc.Search != nil {
		for _, q := range Queries(ru.profile.Name, ru.profile.City) {
			if ctx.Err() != nil {
				break
			}
			for _, u := range ru.rc.Search.Search(ctx, q) {
				add(u, false)
			}
		}
	}

	ru.observer.Debug(ctx, "candidates generated",
		observability.String(observability.AttrRunID, ru.id),
		observability.Int(observability.AttrCandidateCount, len(out)),
	)
	return out
}

// Queries expands WebsiteQueries for name and city with whitespace collapsed.
func Queries(name, city string) []string {
	out := make([]string, 0, len(WebsiteQueries))
	for _, t := range WebsiteQueries {
		q := strings.NewReplacer("{name}", name, "{city}", city).Replace(t)
		out = append(out, strings.Join(strings.Fields(q), " "))
	}
	return out
}

// verify fetches c once and applies the content, deep-verification and
// signal gates. It returns an error only when ctx is done.
func (ru *run) verify(ctx context.Context, c *Candidate) error {
	page, err := ru.fetchPage(ctx, c.URL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if c.AutoGuess {
			ru.reject(ctx, c, ReasonFetchFailed)
			return nil
		}
	}

	if page != nil {
		res := ru.scorer.Content(ctx, page, ru.profile)
		if res.Parked {
			ru.reject(ctx, c, ReasonParked)
			return nil
		}
		c.ContentScore = res.Score
		c.Score += res.Score
		c.Signals = res.Signals
		c.Title = titleOf(res.Bundle)
		c.Evidence = signals.Evidence(res.Bundle, page.URL, ru.profile)
		c.features = calibration.Extract(c.URL, res.Bundle, ru.profile, res.DNS, res.SSL)
	}

	if ru.deepVerify && (c.AutoGuess || c.Signals == 0) {
		deep := ru.crawler.Crawl(ctx, c.URL, ru.profile)
		c.DeepSignals = deep.Signals
		c.Signals += deep.Signals
		if deep.Signals >= MinAutoSignals {
			c.Evidence = append(c.Evidence, "deep-verify")
		}
	}

	switch {
	case c.AutoGuess && c.Signals < MinAutoSignals:
		ru.reject(ctx, c, ReasonInsufficientSignals)
	case c.Signals == 0 && c.Score <= MinAcceptScore:
		ru.reject(ctx, c, ReasonWeakEvidence)
	}
	return nil
}

func (ru *run) fetchPage(ctx context.Context, url string) (*fetch.Page, error) {
	if ru.rc.Pages == nil {
		return nil, fmt.Errorf("resolver: no page fetcher configured")
	}
	return ru.rc.Pages.Fetch(ctx, url)
}

// calibrate attaches the model probability to a surviving candidate. Pages
// that could not be fetched are scored from an empty bundle with fresh
// probes.
func (ru *run) calibrate(ctx context.Context, c *Candidate) error {
	if c.Status == StatusRejected {
		return nil
	}
	if c.features == nil {
		dns, ssl := ru.probe(ctx, c.Host)
		c.features = calibration.Extract(c.URL, signals.Bundle{}, ru.profile, dns, ssl)
	}
	p, err := ru.model.Predict(c.features)
	if err != nil {
		return fmt.Errorf("calibrating %s: %w", c.URL, err)
	}
	c.Probability = &p
	ru.observer.Debug(ctx, "candidate calibrated",
		observability.String(observability.AttrCandidateURL, c.URL),
		observability.Float64(observability.AttrCandidateProbability, p),
	)
	if ru.threshold != nil && p < *ru.threshold {
		ru.reject(ctx, c, ReasonBelowProbability)
	}
	return nil
}

func (ru *run) probe(ctx context.Context, host string) (dns, ssl bool) {
	if ru.rc.Probe == nil || host == "" {
		return false, false
	}
	return ru.rc.Probe.HasRecord(ctx, host), ru.rc.Probe.CertificateMatches(ctx, host, ru.profile.Core)
}

func (ru *run) reject(ctx context.Context, c *Candidate, reason string) {
	ru.observer.Counter(observability.MetricCandidatesRejected).Add(ctx, 1,
		observability.String(observability.AttrRejectReason, reason))
	ru.observer.Debug(ctx, "candidate rejected",
		observability.Candidate(c.URL, c.Score, c.Signals,
			observability.String(observability.AttrRunID, ru.id),
			observability.String(observability.AttrRejectReason, reason),
		)...)
	c.reject(reason)
}

// decide picks the winner among valid candidates: highest probability then
// score when calibrated, otherwise the highest score, which must exceed
// MinAcceptScore. Ties keep the earlier candidate.
func decide(cands []Candidate) (Candidate, bool) {
	var best *Candidate
	for i := range cands {
		c := &cands[i]
		if c.Status != StatusValid {
			continue
		}
		if best == nil || better(c, best) {
			best = c
		}
	}
	if best == nil {
		return Candidate{}, false
	}
	if best.Probability == nil && best.Score <= MinAcceptScore {
		return Candidate{}, false
	}
	return *best, true
}

func better(a, b *Candidate) bool {
	pa, pb := prob(a), prob(b)
	if pa != pb {
		return pa > pb
	}
	return a.Score > b.Score
}

func prob(c *Candidate) float64 {
	if c.Probability == nil {
		return 0
	}
	return *c.Probability
}

// fallback runs the social resolver after the website stage found nothing.
func (ru *run) fallback(ctx context.Context, reason Sentinel, cands []Candidate) (Outcome, error) {
	out := Outcome{WebsiteReason: reason, Candidates: cands}
	if ru.rc.Search != nil {
		sr := social.New(ru.rc.Search, social.WithObserver(ru.observer))
		if best, ok := sr.Resolve(ctx, ru.profile); ok {
			out.Kind = KindSocial
			out.URL = best.URL
			out.Social = &best
			return out, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	out.Kind = KindNone
	out.Sentinel = SentinelNoSocialAccount
	return out, nil
}
