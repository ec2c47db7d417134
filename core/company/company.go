package company

import (
	"strings"

	"github.com/leofalp/sitefinder/core/normalize"
)

// Query is the identity a caller asks the resolver about. Sector and Address
// may be empty.
type Query struct {
	Name    string
	Sector  string
	Address string
}

// Profile is the immutable view of a Query used by every scoring stage.
type Profile struct {
	// Name is the raw company name.
	Name string
	// Normalized is Name after normalize.Normalize.
	Normalized string
	// Tokens are the words of Normalized.
	Tokens []string
	// Core is the brand core: up to four non-suffix tokens of length >= 3.
	Core []string
	// City is the last province named in the address, or "".
	City string
	// Sectors is the ordered sector keyword set.
	Sectors []string
}

// NewProfile derives the profile of q.
func NewProfile(q Query) Profile {
	n := normalize.Normalize(q.Name)
	tokens := normalize.Tokens(n)
	return Profile{
		Name:       strings.TrimSpace(q.Name),
		Normalized: n,
		Tokens:     tokens,
		Core:       normalize.BrandCore(tokens),
		City:       normalize.CityFromAddress(q.Address),
		Sectors:    normalize.SectorSet(q.Sector, tokens),
	}
}

// Empty reports whether the profile has no usable name.
func (p Profile) Empty() bool {
	return p.Normalized == ""
}

// GuessTokens returns the tokens used for domain guessing: the brand core,
// or the first two non-suffix tokens when the core is empty.
func (p Profile) GuessTokens() []string {
	if len(p.Core) > 0 {
		return p.Core
	}
	return normalize.NonSuffix(p.Tokens, 2)
}

// CoreString returns the brand core joined without separators.
func (p Profile) CoreString() string {
	return strings.Join(p.Core, "")
}
