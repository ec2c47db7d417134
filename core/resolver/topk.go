package resolver

import (
	"cmp"
	"context"
	"slices"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/signals"
	"github.com/leofalp/sitefinder/internal/utils"
	"github.com/leofalp/sitefinder/providers/observability"
)

// MaxTitleRunes bounds Candidate.Title.
const MaxTitleRunes = 120

// TopKCandidates scores every candidate of q, not only the top N, and
// returns the best k for human review. No gate rejects a candidate here;
// the score, signal count and evidence flags are reported as found. An
// empty name yields nil.
func (r *Resolver) TopKCandidates(ctx context.Context, q company.Query, k int, opts ...Option) ([]Candidate, error) {
	ru := r.newRun(q, opts)
	if ru.profile.Empty() || k <= 0 {
		return nil, nil
	}

	ctx, span := r.observer.StartSpan(ctx, observability.SpanTopK,
		observability.String(observability.AttrRunID, ru.id),
		observability.String(observability.AttrCompanyName, ru.profile.Name),
	)
	defer span.End()

	cands := ru.generate(ctx)
	for i := range cands {
		if err := ru.inspect(ctx, &cands[i]); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	slices.SortStableFunc(cands, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(cands) > k {
		cands = cands[:k]
	}
	span.SetAttributes(observability.Int(observability.AttrCandidateCount, len(cands)))
	return cands, nil
}

// inspect adds the quick score, the content score and, for fetched pages,
// the deep verification evidence to c.
func (ru *run) inspect(ctx context.Context, c *Candidate) error {
	c.QuickScore = ru.scorer.QuickScore(c.URL, ru.profile)
	c.Score = c.QuickScore

	page, err := ru.fetchPage(ctx, c.URL)
	if err != nil {
		return ctx.Err()
	}
	res := ru.scorer.Content(ctx, page, ru.profile)
	c.ContentScore = res.Score
	c.Score += res.Score
	c.Signals = res.Signals
	c.Title = titleOf(res.Bundle)
	c.Evidence = signals.Evidence(res.Bundle, page.URL, ru.profile)

	if ru.deepVerify && (c.AutoGuess || c.Signals == 0) {
		deep := ru.crawler.Crawl(ctx, c.URL, ru.profile)
		c.DeepSignals = deep.Signals
		c.Signals += deep.Signals
		if deep.Signals >= MinAutoSignals {
			c.Evidence = append(c.Evidence, "deep-verify")
		}
	}
	return ctx.Err()
}

func titleOf(b signals.Bundle) string {
	return utils.TruncateRunes(b.Title, MaxTitleRunes)
}
