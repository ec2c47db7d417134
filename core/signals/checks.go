package signals

import (
	"strings"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/domain"
	"github.com/leofalp/sitefinder/core/normalize"
)

// LegalIDs holds the first match of each legal identifier kind found in a
// text. Empty fields were not found.
type LegalIDs struct {
	Mersis    string
	TaxNumber string
	Registry  string
}

// Any reports whether at least one identifier was found.
func (l LegalIDs) Any() bool {
	return l.Mersis != "" || l.TaxNumber != "" || l.Registry != ""
}

// FindLegalIDs extracts the MERSIS number, the tax number and the labelled
// registry number from normalized text.
func FindLegalIDs(full string) LegalIDs {
	var ids LegalIDs
	ids.Mersis = mersisPattern.FindString(full)
	ids.TaxNumber = taxNumberPattern.FindString(full)
	if m := registryPattern.FindStringSubmatch(full); m != nil {
		ids.Registry = m[1]
	}
	return ids
}

// HasPhone reports whether normalized text contains a phone number.
func HasPhone(full string) bool {
	for _, p := range phonePatterns {
		if p.MatchString(full) {
			return true
		}
	}
	return false
}

// EmailDomains returns the domains of every e-mail address in normalized
// text, in order of appearance.
func EmailDomains(full string) []string {
	matches := emailPattern.FindAllStringSubmatch(full, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSuffix(m[1], "."))
	}
	return out
}

// Checks is the outcome of every content check on one page for one company.
// Scoring, signal counting, evidence flags and calibration features all read
// from it so the checks run once.
type Checks struct {
	NameInTitle    bool
	NameInMeta     bool
	NameInHeadings bool
	NameInFooter   bool
	NameInFull     bool
	Sector         bool
	City           bool
	EmailDomain    bool
	LegalID        bool
	Phone          bool
	LexiconHits    int
}

// Match runs the content checks of b against p. pageURL supplies the host
// that e-mail domains are compared with.
func Match(b Bundle, pageURL string, p company.Profile) Checks {
	name := p.Normalized
	has := func(field string) bool {
		return name != "" && strings.Contains(field, name)
	}

	c := Checks{
		NameInTitle:    has(b.Title),
		NameInMeta:     has(b.Meta) || has(b.OG),
		NameInHeadings: has(b.Headings),
		NameInFooter:   has(b.Footer),
		NameInFull:     has(b.Full),
		Sector:         normalize.ContainsAny(b.Full, p.Sectors),
		City:           p.City != "" && strings.Contains(b.Full, p.City),
		LegalID:        FindLegalIDs(b.Full).Any(),
		Phone:          HasPhone(b.Full),
		LexiconHits:    normalize.LexiconHits(b.Full, p.Sectors),
	}

	if host := domain.Host(pageURL); host != "" {
		for _, d := range EmailDomains(b.Full) {
			if domain.SameRoot(d, host) {
				c.EmailDomain = true
				break
			}
		}
	}
	return c
}

// Count returns the coarse signal count of the checks: one per independent
// evidence type plus the lexicon hits. The phone check is not part of it.
func (c Checks) Count() int {
	n := c.LexiconHits
	for _, ok := range []bool{
		c.NameInTitle, c.NameInMeta, c.NameInHeadings, c.NameInFooter,
		c.Sector, c.City, c.EmailDomain, c.LegalID, c.NameInFull,
	} {
		if ok {
			n++
		}
	}
	return n
}

// Count returns the signal count of b for p. A parked page always counts 0.
func Count(b Bundle, pageURL string, p company.Profile) int {
	if b.Parked {
		return 0
	}
	return Match(b, pageURL, p).Count()
}

// Evidence returns the review flags of b for p in a fixed order.
func Evidence(b Bundle, pageURL string, p company.Profile) []string {
	c := Match(b, pageURL, p)
	var flags []string
	if c.NameInTitle {
		flags = append(flags, "title")
	}
	if c.NameInMeta {
		flags = append(flags, "meta")
	}
	if c.NameInHeadings {
		flags = append(flags, "h1/h2")
	}
	if c.City {
		flags = append(flags, "city:"+p.City)
	} else if city := normalize.CityInText(b.Full); city != "" {
		flags = append(flags, "page-city:"+city)
	}
	if c.EmailDomain {
		flags = append(flags, "email-domain")
	}
	if c.LegalID {
		flags = append(flags, "legal-id")
	}
	return flags
}
