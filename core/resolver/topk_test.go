package resolver

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/leofalp/sitefinder/core/company"
)

// TestTopKCandidates verifies ranking, evidence flags and the title cap.
func TestTopKCandidates(t *testing.T) {
	long := strings.Repeat("Acme Güvenlik ", 20)
	pages := newFakePages(map[string]string{
		acmeURL:                    acmePage,
		"https://acmeguvenlik.com": `<html><head><title>` + long + `</title></head><body></body></html>`,
	})
	r := newTestResolver(pages, &fakeSearcher{}, &fakeProber{})

	got, err := r.TopKCandidates(context.Background(), acmeQuery(), 2)
	if err != nil {
		t.Fatalf("TopKCandidates() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].URL != acmeURL {
		t.Errorf("first = %q, want %q", got[0].URL, acmeURL)
	}
	if got[0].Score < got[1].Score {
		t.Errorf("scores not descending: %v < %v", got[0].Score, got[1].Score)
	}
	for _, flag := range []string{"title", "h1/h2", "city:istanbul"} {
		if !slices.Contains(got[0].Evidence, flag) {
			t.Errorf("evidence = %v, want %q", got[0].Evidence, flag)
		}
	}
	if got[0].Status != StatusValid {
		t.Errorf("status = %q, want valid", got[0].Status)
	}

	// Every candidate is fetched, not only the top N.
	if n := pages.count(); n <= DefaultTopN {
		t.Errorf("fetches = %d, want more than %d", n, DefaultTopN)
	}
}

// TestTopKCandidates_TitleTruncated verifies the review title cap.
func TestTopKCandidates_TitleTruncated(t *testing.T) {
	long := strings.Repeat("Çok uzun başlık ", 20)
	pages := newFakePages(map[string]string{
		acmeURL: `<html><head><title>` + long + `</title></head><body><p>x</p></body></html>`,
	})
	r := newTestResolver(pages, &fakeSearcher{}, &fakeProber{})

	got, err := r.TopKCandidates(context.Background(), acmeQuery(), 10)
	if err != nil {
		t.Fatalf("TopKCandidates() error = %v", err)
	}
	c, ok := candidateByURL(got, acmeURL)
	if !ok {
		t.Fatalf("%s missing from %d candidates", acmeURL, len(got))
	}
	if n := len([]rune(c.Title)); n != MaxTitleRunes {
		t.Errorf("title runes = %d, want %d", n, MaxTitleRunes)
	}
}

// TestTopKCandidates_Empty verifies the empty-name and k <= 0 cases.
func TestTopKCandidates_Empty(t *testing.T) {
	pages := newFakePages(nil)
	r := newTestResolver(pages, &fakeSearcher{}, &fakeProber{})

	got, err := r.TopKCandidates(context.Background(), company.Query{}, 3)
	if err != nil || got != nil {
		t.Errorf("empty name = %v, %v, want nil, nil", got, err)
	}
	got, err = r.TopKCandidates(context.Background(), acmeQuery(), 0)
	if err != nil || got != nil {
		t.Errorf("k = 0 = %v, %v, want nil, nil", got, err)
	}
	if pages.count() != 0 {
		t.Errorf("fetches = %d, want 0", pages.count())
	}
}

// TestConfidence verifies the score to confidence mapping.
func TestConfidence(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{-999, 25},
		{5, 25},
		{5.5, 41},
		{10, 55},
		{15, 70},
		{19.9, 84},
		{20, 90},
		{60, 90},
	}
	for _, tt := range tests {
		if got := (Candidate{Score: tt.score}).Confidence(); got != tt.want {
			t.Errorf("Confidence(%v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

// TestReviewPriority verifies the priority bands.
func TestReviewPriority(t *testing.T) {
	tests := []struct {
		confidence int
		want       Priority
	}{
		{25, PriorityHigh},
		{59, PriorityHigh},
		{60, PriorityMedium},
		{79, PriorityMedium},
		{80, PriorityLow},
		{90, PriorityLow},
	}
	for _, tt := range tests {
		if got := ReviewPriority(tt.confidence); got != tt.want {
			t.Errorf("ReviewPriority(%d) = %q, want %q", tt.confidence, got, tt.want)
		}
	}
	if !(PriorityHigh.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Error("Rank() does not order high < medium < low")
	}
}
