package social

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/domain"
	"github.com/leofalp/sitefinder/core/normalize"
	"github.com/leofalp/sitefinder/providers/observability"
)

const (
	// MaxResultsPerQuery is how many leading results of each query are read.
	MaxResultsPerQuery = 5
	// MinAcceptScore is the lowest score accepted as the company's profile.
	MinAcceptScore = 8.0
	// HandleMatchReward is the full reward for a matching handle. The
	// partial and minor tiers pay 60% and 40% of it.
	HandleMatchReward = 20.0
)

// Handle similarity tiers.
const (
	FullMatch    = 0.88
	PartialMatch = 0.76
	MinorMatch   = 0.66
)

// QueryTemplates are the social searches, with {name} replaced by the raw
// company name.
var QueryTemplates = []string{
	"site:instagram.com {name}",
	"site:facebook.com {name}",
	"site:linkedin.com/company {name}",
	"site:youtube.com {name}",
	"site:twitter.com {name}",
	"site:x.com {name}",
	"site:tiktok.com {name}",
	"{name} instagram",
	"{name} facebook",
	"{name} linkedin",
	"{name} twitter",
	"{name} youtube",
	"{name} tiktok",
	"{name} resmi instagram",
	"{name} official instagram",
	"{name} ozel guvenlik instagram",
	"{name} ozel guvenlik facebook",
}

// Searcher returns result URLs for a query. It never fails.
type Searcher interface {
	Search(ctx context.Context, query string) []string
}

// Candidate is one scored social link.
type Candidate struct {
	URL      string
	Platform Platform
	Handle   string
	// Similarity is the best handle-to-variant similarity in [0, 1].
	Similarity    float64
	PlatformScore float64
	Score         float64
}

// Resolver finds social profiles.
type Resolver struct {
	search   Searcher
	observer observability.Provider
}

// Option configures optional Resolver behavior.
type Option func(*Resolver)

// WithObserver sets the observability provider.
func WithObserver(o observability.Provider) Option {
	return func(r *Resolver) {
		r.observer = observability.OrNop(o)
	}
}

// New returns a Resolver that searches through s.
func New(s Searcher, opts ...Option) *Resolver {
	r := &Resolver{search: s, observer: observability.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the accepted profile for p. The boolean is false when no
// candidate reaches MinAcceptScore.
func (r *Resolver) Resolve(ctx context.Context, p company.Profile) (Candidate, bool) {
	ctx, span := r.observer.StartSpan(ctx, observability.SpanSocialResolve,
		observability.String(observability.AttrCompanyName, p.Name))
	defer span.End()

	cands := r.Candidates(ctx, p)
	span.SetAttributes(observability.Int(observability.AttrCandidateCount, len(cands)))

	best, ok := Best(cands)
	if !ok {
		r.observer.Info(ctx, "no social account accepted",
			observability.String(observability.AttrCompanyName, p.Name),
			observability.Int(observability.AttrCandidateCount, len(cands)),
		)
		return Candidate{}, false
	}
	r.observer.Info(ctx, "social account accepted",
		observability.String(observability.AttrCandidateURL, best.URL),
		observability.Float64(observability.AttrCandidateScore, best.Score),
	)
	return best, true
}

// Candidates runs every query and returns the scored social links in
// discovery order.
func (r *Resolver) Candidates(ctx context.Context, p company.Profile) []Candidate {
	if p.Empty() {
		return nil
	}
	variants := Variants(p)

	var out []Candidate
	seen := make(map[string]struct{})
	for _, q := range Queries(p.Name) {
		if ctx.Err() != nil {
			break
		}
		results := r.search.Search(ctx, q)
		if len(results) > MaxResultsPerQuery {
			results = results[:MaxResultsPerQuery]
		}
		for _, u := range results {
			if !domain.IsSocial(u) {
				continue
			}
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			out = append(out, Score(u, variants))
		}
	}
	return out
}

// Queries expands QueryTemplates for name.
func Queries(name string) []string {
	out := make([]string, 0, len(QueryTemplates))
	for _, tpl := range QueryTemplates {
		out = append(out, strings.ReplaceAll(tpl, "{name}", name))
	}
	return out
}

// Variants returns the handle variants of p's brand core, or the joined
// name tokens when the core has none.
func Variants(p company.Profile) []string {
	if v := normalize.CoreVariants(p.Core); len(v) > 0 {
		return v
	}
	if joined := strings.Join(p.Tokens, ""); joined != "" {
		return []string{joined}
	}
	return nil
}

// Score scores one social link against the handle variants. A link with no
// account handle, such as a post or a search page, scores zero.
func Score(rawURL string, variants []string) Candidate {
	c := Candidate{
		URL:      rawURL,
		Platform: PlatformOf(rawURL),
		Handle:   strings.ToLower(Handle(rawURL)),
	}
	if c.Handle == "" {
		return c
	}
	c.PlatformScore = PlatformWeights[c.Platform]
	c.Similarity = HandleSimilarity(c.Handle, variants)
	c.Score = c.PlatformScore + HandleReward(c.Similarity)
	return c
}

// HandleSimilarity returns 1 when handle and a variant contain one another,
// otherwise the best edit-similarity ratio. Handles shorter than
// normalize.MinCoreTokenLength never count as contained in a variant.
func HandleSimilarity(handle string, variants []string) float64 {
	best := 0.0
	longEnough := utf8.RuneCountInString(handle) >= normalize.MinCoreTokenLength
	for _, v := range variants {
		v = strings.ToLower(v)
		if v == "" {
			continue
		}
		if longEnough && (strings.Contains(handle, v) || strings.Contains(v, handle)) {
			return 1
		}
		if s := normalize.Similarity(handle, v); s > best {
			best = s
		}
	}
	return best
}

// HandleReward maps a similarity onto its reward tier.
func HandleReward(similarity float64) float64 {
	switch {
	case similarity >= FullMatch:
		return HandleMatchReward
	case similarity >= PartialMatch:
		return HandleMatchReward * 0.6
	case similarity >= MinorMatch:
		return HandleMatchReward * 0.4
	default:
		return 0
	}
}

// Best returns the highest-scoring candidate if it reaches MinAcceptScore.
// Ties keep the earlier candidate.
func Best(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	if best.Score < MinAcceptScore {
		return Candidate{}, false
	}
	return best, true
}
