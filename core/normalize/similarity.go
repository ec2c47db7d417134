package normalize

import "github.com/pmezard/go-difflib/difflib"

// Similarity returns the edit-similarity ratio of a and b in [0,1]:
// 2*M/T where M is the number of matching runes in the longest matching
// blocks and T the total rune count. Two empty strings are not similar.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return difflib.NewMatcher(runeStrings(a), runeStrings(b)).Ratio()
}

func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
