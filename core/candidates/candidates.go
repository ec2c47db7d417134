package candidates

import (
	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/normalize"
)

// Suffixes are the preferred public suffixes, most preferred first.
var Suffixes = []string{".com.tr", ".com"}

// Schemes are tried in this order for every guessed host.
var Schemes = []string{"https://", "http://"}

// Generate returns the guessed URLs for name: {concatenated, hyphenated}
// brand forms × Suffixes × Schemes, without duplicates and in a stable
// order. It returns nil when the name has no usable token.
func Generate(name string) []string {
	return ForProfile(company.NewProfile(company.Query{Name: name}))
}

// ForProfile is Generate for an already derived profile.
func ForProfile(p company.Profile) []string {
	tokens := p.GuessTokens()
	if len(tokens) == 0 {
		return nil
	}

	compact, dashed := normalize.BrandForms(tokens)
	forms := []string{compact}
	if dashed != compact {
		forms = append(forms, dashed)
	}

	urls := make([]string, 0, len(forms)*len(Suffixes)*len(Schemes))
	for _, form := range forms {
		for _, suffix := range Suffixes {
			for _, scheme := range Schemes {
				urls = append(urls, scheme+form+suffix)
			}
		}
	}
	return urls
}
