package scoring

import (
	"context"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/signals"
	"github.com/leofalp/sitefinder/providers/fetch"
	"github.com/leofalp/sitefinder/providers/observability"
)

// Prober answers the structural DNS and certificate questions about a host.
type Prober interface {
	HasRecord(ctx context.Context, host string) bool
	CertificateMatches(ctx context.Context, host string, core []string) bool
}

// ContentResult is the outcome of scoring one fetched page.
type ContentResult struct {
	Score   float64
	Signals int
	Bundle  signals.Bundle
	Checks  signals.Checks
	// DNS and SSL are the probe results, kept for calibration features.
	DNS                bool
	SSL                bool
	Parked             bool
	RedirectedToSocial bool
}

// Scorer applies Weights to candidates.
type Scorer struct {
	weights  Weights
	prober   Prober
	observer observability.Provider
}

// Option configures optional Scorer behavior.
type Option func(*Scorer)

// WithWeights overrides DefaultWeights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// WithObserver sets the observability provider.
func WithObserver(o observability.Provider) Option {
	return func(s *Scorer) {
		s.observer = observability.OrNop(o)
	}
}

// New returns a Scorer that probes hosts with prober. A nil prober makes
// every probe fail.
func New(prober Prober, opts ...Option) *Scorer {
	if prober == nil {
		prober = noProbe{}
	}
	s := &Scorer{
		weights:  DefaultWeights(),
		prober:   prober,
		observer: observability.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns the weights in use.
func (s *Scorer) Weights() Weights { return s.weights }

// QuickScore returns the URL-shape score of rawURL for p.
func (s *Scorer) QuickScore(rawURL string, p company.Profile) float64 {
	return ShapeOf(rawURL, p).Score(s.weights)
}

// Content scores page for p. The DNS and certificate probes run once here.
func (s *Scorer) Content(ctx context.Context, page *fetch.Page, p company.Profile) ContentResult {
	var r ContentResult
	if page == nil {
		return r
	}
	w := s.weights

	r.RedirectedToSocial = page.RedirectedToSocial
	if r.RedirectedToSocial {
		r.Score += w.SocialRedirect
	}

	r.Bundle = signals.Extract(page.HTML)
	r.Checks = signals.Match(r.Bundle, page.URL, p)
	c := r.Checks

	add := func(ok bool, weight float64) {
		if ok {
			r.Score += weight
		}
	}
	add(c.NameInFull, w.NameInFull)
	add(c.NameInTitle, w.Title)
	add(c.NameInMeta, w.Meta)
	add(c.NameInHeadings, w.Headings)
	add(c.NameInFooter, w.Footer)
	if len(p.Sectors) > 0 {
		if c.Sector {
			r.Score += w.SectorMatch
		} else {
			r.Score += w.SectorMismatch
		}
	}
	add(c.City, w.City)
	add(c.EmailDomain, w.EmailDomain)
	add(c.Phone, w.Phone)
	add(c.LegalID, w.LegalID)

	host := ShapeOf(page.URL, p).Host
	r.DNS = s.prober.HasRecord(ctx, host)
	r.SSL = s.prober.CertificateMatches(ctx, host, p.Core)
	add(r.DNS, w.DNS)
	add(r.SSL, w.SSL)

	r.Parked = r.Bundle.Parked
	if !r.Parked {
		r.Signals = c.Count()
	}

	s.observer.Debug(ctx, "content scored",
		observability.Candidate(page.URL, r.Score, r.Signals,
			observability.Bool("candidate.parked", r.Parked))...)
	return r
}

type noProbe struct{}

func (noProbe) HasRecord(context.Context, string) bool                    { return false }
func (noProbe) CertificateMatches(context.Context, string, []string) bool { return false }
