package normalize

import "strings"

const (
	// MaxCoreTokens caps the brand core to bound domain-guess combinatorics.
	MaxCoreTokens = 4
	// MinCoreTokenLength drops short filler words from the brand core.
	MinCoreTokenLength = 3
)

// companySuffixes is the closed set of legal-entity and descriptor words
// removed before brand-core extraction, stored in normalized form. Dotted
// variants survive normalization ("a.s.") so they are listed as well.
var companySuffixes = setOf(
	"ltd", "ltd.", "limited", "ltdsti", "ltd.sti", "ltd.sti.", "ltdsti.",
	"sti", "sti.", "san", "san.", "sanayi", "tic", "tic.", "ticaret",
	"insaat", "bilisim", "muhendislik", "medya", "yazilim", "danismanlik",
	"holding", "grup", "group", "anonim", "sirketi", "as", "a.s.", "as.", "a.s",
	"ve", "hizmet", "hizmetleri", "hizmetler",
	"inc", "inc.", "llc", "corp", "corp.", "co", "co.", "gmbh", "plc",
)

// IsCompanySuffix reports whether the normalized token is a legal-entity suffix.
func IsCompanySuffix(token string) bool {
	_, ok := companySuffixes[token]
	return ok
}

// BrandCore keeps the tokens that are not company suffixes and are at least
// MinCoreTokenLength runes long, capped at MaxCoreTokens.
func BrandCore(tokens []string) []string {
	core := make([]string, 0, MaxCoreTokens)
	for _, t := range tokens {
		if IsCompanySuffix(t) || len([]rune(t)) < MinCoreTokenLength {
			continue
		}
		core = append(core, t)
		if len(core) == MaxCoreTokens {
			break
		}
	}
	return core
}

// NonSuffix returns up to n tokens that are not company suffixes, whatever
// their length. It is the fallback when BrandCore is empty.
func NonSuffix(tokens []string, n int) []string {
	out := make([]string, 0, n)
	for _, t := range tokens {
		if IsCompanySuffix(t) {
			continue
		}
		out = append(out, t)
		if len(out) == n {
			break
		}
	}
	return out
}

// BrandForms returns the concatenated and hyphenated forms of core.
func BrandForms(core []string) (compact, dashed string) {
	return strings.Join(core, ""), strings.Join(core, "-")
}

// CoreVariants returns the de-duplicated handle variants of core in a stable
// order: joined, hyphenated, each token, then each adjacent pair joined and
// hyphenated. Tokens shorter than MinCoreTokenLength are ignored.
func CoreVariants(core []string) []string {
	toks := make([]string, 0, len(core))
	for _, t := range core {
		if len([]rune(t)) >= MinCoreTokenLength {
			toks = append(toks, t)
		}
	}
	if len(toks) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	compact, dashed := BrandForms(toks)
	add(compact)
	add(dashed)
	for _, t := range toks {
		add(t)
	}
	for i := 0; i+1 < len(toks); i++ {
		add(toks[i] + toks[i+1])
		add(toks[i] + "-" + toks[i+1])
	}
	return out
}

func setOf(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, item := range items {
		m[item] = struct{}{}
	}
	return m
}
