package resolver

import (
	"github.com/leofalp/sitefinder/core/calibration"
	"github.com/leofalp/sitefinder/core/domain"
)

// RejectedScore marks a rejected candidate's score.
const RejectedScore = -999.0

// Status of a candidate.
type Status string

const (
	StatusValid    Status = "valid"
	StatusRejected Status = "rejected"
)

// Rejection reasons.
const (
	ReasonParked              = "parked"
	ReasonFetchFailed         = "fetch-failed"
	ReasonInsufficientSignals = "insufficient-signals"
	ReasonWeakEvidence        = "weak-evidence"
	ReasonBelowProbability    = "below-probability-threshold"
)

// Candidate is one website candidate. Stages add to it; rejection keeps it
// for audit with Score set to RejectedScore.
type Candidate struct {
	URL    string
	Host   string
	Root   string
	Suffix string
	// AutoGuess is set for URLs built from the name rather than found by
	// a search engine.
	AutoGuess bool

	QuickScore   float64
	ContentScore float64
	Score        float64
	Signals      int
	// DeepSignals is the part of Signals found by deep verification.
	DeepSignals int
	Probability *float64

	Status   Status
	Reason   string
	Evidence []string
	// Title is the normalized page title, truncated for review output.
	Title string

	features calibration.Vector
}

func newCandidate(url string, auto bool) Candidate {
	host := domain.Host(url)
	root, suffix := domain.RegistrableParts(host)
	return Candidate{
		URL:       url,
		Host:      host,
		Root:      root,
		Suffix:    suffix,
		AutoGuess: auto,
		Status:    StatusValid,
	}
}

func (c *Candidate) reject(reason string) {
	c.Status = StatusRejected
	c.Reason = reason
	c.Score = RejectedScore
}

// Confidence maps the score onto 0..100 for reviewers: 25 at or below 5,
// 90 at or above 20, linear in between.
func (c Candidate) Confidence() int {
	return Confidence(c.Score)
}

// Confidence is Candidate.Confidence for a bare score.
func Confidence(score float64) int {
	switch {
	case score <= 5:
		return 25
	case score >= 20:
		return 90
	default:
		return int(40 + (score-5)*3)
	}
}

// Priority is how urgently a review row needs a human.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ReviewPriority returns high below 60, medium below 80, low otherwise.
func ReviewPriority(confidence int) Priority {
	switch {
	case confidence < 60:
		return PriorityHigh
	case confidence < 80:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Rank orders priorities for sorting, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}
