package scoring

import (
	"strings"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/domain"
	"github.com/leofalp/sitefinder/core/normalize"
)

// Shape is the URL-only view of a candidate.
type Shape struct {
	Host   string
	Root   string
	Suffix string

	ComTr bool
	Com   bool
	// Clean is false for hosts with a hyphen or more than two labels,
	// except under .com.tr.
	Clean    bool
	Negative bool
	// BrandMatch reports that the root resembles the joined brand core.
	BrandMatch bool
	// Banned counts the BannedFragments inside the root.
	Banned int
	// CoreTokens counts the brand core tokens inside the host.
	CoreTokens int
}

// ShapeOf inspects rawURL for the company p.
func ShapeOf(rawURL string, p company.Profile) Shape {
	host := domain.Host(rawURL)
	if host == "" {
		return Shape{}
	}
	root, suffix := domain.RegistrableParts(host)
	s := Shape{
		Host:   host,
		Root:   root,
		Suffix: suffix,
		ComTr:  strings.HasSuffix(host, ".com.tr"),
		Com:    strings.HasSuffix(host, ".com"),
	}
	s.Clean = !strings.Contains(host, "-") &&
		(len(strings.Split(host, ".")) <= 2 || s.ComTr)
	s.Negative = normalize.ContainsAny(host, NegativeKeywords)
	for _, ban := range BannedFragments {
		if strings.Contains(root, ban) {
			s.Banned++
		}
	}
	s.BrandMatch = BrandMatches(root, p.Core)
	for _, t := range p.Core {
		if strings.Contains(host, t) {
			s.CoreTokens++
		}
	}
	return s
}

// BrandMatches reports whether root starts with or contains the joined core,
// or is at least BrandSimilarityThreshold similar to it.
func BrandMatches(root string, core []string) bool {
	joined := strings.Join(core, "")
	if joined == "" || root == "" {
		return false
	}
	if strings.Contains(root, joined) {
		return true
	}
	return normalize.Similarity(root, joined) >= BrandSimilarityThreshold
}

// Score returns the quick score of s under w.
func (s Shape) Score(w Weights) float64 {
	if s.Host == "" {
		return w.NoHost
	}
	score := float64(s.Banned) * w.BannedFragment
	switch {
	case s.ComTr:
		score += w.SuffixComTr
	case s.Com:
		score += w.SuffixCom
	}
	if s.Clean {
		score += w.CleanDomain
	} else {
		score += w.MessyDomain
	}
	if s.Negative {
		score += w.NegativeKeyword
	}
	if s.BrandMatch {
		score += w.BrandMatch
	}
	score += float64(s.CoreTokens) * w.CoreTokenInHost
	return score
}
