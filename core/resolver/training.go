package resolver

import (
	"context"
	"strings"

	"github.com/leofalp/sitefinder/core/calibration"
	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/signals"
	"github.com/leofalp/sitefinder/providers/observability"
)

// ReviewRow is one human-labelled review decision.
type ReviewRow struct {
	Name   string
	Sector string
	URL    string
	// Label is 1 for a correct URL and 0 for a wrong one. Any other value
	// makes the row unusable.
	Label int
}

func (row ReviewRow) usable() bool {
	return strings.TrimSpace(row.Name) != "" &&
		strings.TrimSpace(row.URL) != "" &&
		(row.Label == 0 || row.Label == 1)
}

// ExtractFeatures fetches url and returns its calibration vector for q. The
// address is ignored so training and review see the same features. A page
// that cannot be fetched yields the URL-shape and probe features only.
func (r *Resolver) ExtractFeatures(ctx context.Context, url string, q company.Query) (calibration.Vector, error) {
	q.Address = ""
	ru := r.newRun(q, nil)
	url = strings.TrimSpace(url)

	var b signals.Bundle
	page, err := ru.fetchPage(ctx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		r.observer.Debug(ctx, "feature page unavailable",
			observability.String(observability.AttrHTTPURL, url),
			observability.Error(err),
		)
	} else {
		b = signals.Extract(page.HTML)
	}

	dns, ssl := ru.probe(ctx, newCandidate(url, false).Host)
	return calibration.Extract(url, b, ru.profile, dns, ssl), nil
}

// TrainFromReview re-derives the features of every usable row and trains a
// model with method. The int is the number of usable rows.
func (r *Resolver) TrainFromReview(ctx context.Context, rows []ReviewRow, method calibration.Method) (*calibration.Model, int, error) {
	samples := make([]calibration.Sample, 0, len(rows))
	for _, row := range rows {
		if !row.usable() {
			continue
		}
		v, err := r.ExtractFeatures(ctx, row.URL, company.Query{Name: row.Name, Sector: row.Sector})
		if err != nil {
			return nil, len(samples), err
		}
		samples = append(samples, calibration.Sample{Features: v, Label: row.Label})
	}

	r.observer.Info(ctx, "training calibration model",
		observability.Int("calibration.samples", len(samples)),
		observability.String("calibration.method", string(method)),
	)
	m, err := calibration.Train(samples, method)
	if err != nil {
		return nil, len(samples), err
	}
	return m, len(samples), nil
}
