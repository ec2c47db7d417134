package normalize

import "strings"

// sectorKeywords are the sector words recognised inside company names, in
// normalized form. Multi-word entries only match a sector string as a whole.
var sectorKeywords = []string{
	"teknoloji", "bilisim", "yazilim", "danismanlik", "guvenlik", "koruma",
	"insaat", "gida", "turizm", "seyahat", "otomotiv", "plastik", "mobilya",
	"dekorasyon", "organizasyon", "hukuk", "saglik", "egitim", "matbaa",
	"tekstil", "lojistik", "muhendislik", "mimarlik", "akademi", "denetim",
	"gozetim", "medya", "telekomunikasyon", "belgelendirme", "emeklilik",
	"ajans", "yapi", "cevre", "enerji", "isg", "is sagligi", "osgb",
	"ozel guvenlik",
}

var sectorKeywordSet = setOf(sectorKeywords...)

// IsSectorKeyword reports whether the normalized token is a known sector word.
func IsSectorKeyword(token string) bool {
	_, ok := sectorKeywordSet[token]
	return ok
}

// Lexicon is a closed list of sector-specific terms that counts as one extra
// signal when the company's sector set triggers it.
type Lexicon struct {
	Name     string
	Triggers []string
	Terms    []string
}

// Lexicons are the three closed sector lexicons, in normalized form.
var Lexicons = []Lexicon{
	{
		Name:     "security-services",
		Triggers: []string{"guvenlik", "ozel guvenlik", "koruma"},
		Terms: []string{
			"5188", "silahli", "silahsiz", "yakin koruma", "devriye",
			"alarm izleme", "guvenlik gorevlisi", "site guvenligi",
		},
	},
	{
		Name:     "workplace-safety",
		Triggers: []string{"isg", "is sagligi", "osgb"},
		Terms: []string{
			"6331", "osgb", "risk degerlendirmesi", "acil durum", "is hekimi",
			"is guvenligi uzmani", "toz olcum", "ortam olcumu",
		},
	},
	{
		Name:     "it-consulting",
		Triggers: []string{"bilisim", "danismanlik", "yazilim"},
		Terms: []string{
			"kvkk", "iso 9001", "penetration test", "sizma testi", "erp",
			"crm", "sap danismanligi",
		},
	},
}

// SectorSet derives the sector keyword set of a company: the normalized
// words of the declared sector, the whole declared sector phrase, and every
// name token that is itself a sector keyword. Order follows first appearance.
func SectorSet(sector string, nameTokens []string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	ns := Normalize(sector)
	for _, w := range Tokens(ns) {
		add(w)
	}
	if strings.Contains(ns, " ") && IsSectorKeyword(ns) {
		add(ns)
	}
	for _, t := range nameTokens {
		if IsSectorKeyword(t) {
			add(t)
		}
	}
	return out
}

// ContainsAny reports whether any non-empty needle is a substring of text.
func ContainsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// LexiconHits counts the lexicons triggered by sectors that have at least
// one term present in the normalized full text.
func LexiconHits(full string, sectors []string) int {
	if len(sectors) == 0 {
		return 0
	}
	declared := setOf(sectors...)
	hits := 0
	for _, lex := range Lexicons {
		triggered := false
		for _, tr := range lex.Triggers {
			if _, ok := declared[tr]; ok {
				triggered = true
				break
			}
		}
		if triggered && ContainsAny(full, lex.Terms) {
			hits++
		}
	}
	return hits
}
