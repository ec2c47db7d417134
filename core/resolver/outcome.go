package resolver

import (
	"github.com/leofalp/sitefinder/core/social"
)

// Sentinel is an explicit "no answer" outcome.
type Sentinel string

const (
	SentinelEmptyName            Sentinel = "empty-name"
	SentinelNoCandidates         Sentinel = "no-candidates"
	SentinelInsufficientEvidence Sentinel = "insufficient-evidence"
	SentinelNoSocialAccount      Sentinel = "no-social-account"
)

// Kind is the terminal state of a resolution.
type Kind string

const (
	KindWebsite Kind = "website"
	KindSocial  Kind = "social"
	KindNone    Kind = "none"
)

// Outcome is the result of resolving one company.
type Outcome struct {
	Kind Kind
	// URL is set for KindWebsite and KindSocial.
	URL string
	// Sentinel is set for KindNone.
	Sentinel Sentinel
	// WebsiteReason explains why the website stage found nothing; empty
	// when a website was chosen.
	WebsiteReason Sentinel
	RunID         string
	// Candidates are the verified website candidates, rejected ones
	// included, in scoring order.
	Candidates []Candidate
	// Social is the accepted social candidate for KindSocial.
	Social *social.Candidate
}

// String returns the URL or the sentinel.
func (o Outcome) String() string {
	if o.URL != "" {
		return o.URL
	}
	return string(o.Sentinel)
}
