package scoring

// BrandSimilarityThreshold is the minimum edit-similarity ratio between the
// registrable root and the joined brand core for a brand match.
const BrandSimilarityThreshold = 0.82

// Weights are the additive score contributions. Negative values are
// penalties and are stored with their sign.
type Weights struct {
	// URL shape
	BrandMatch      float64
	SuffixComTr     float64
	SuffixCom       float64
	CleanDomain     float64
	MessyDomain     float64
	NegativeKeyword float64
	BannedFragment  float64
	CoreTokenInHost float64
	NoHost          float64

	// Page content
	NameInFull     float64
	Title          float64
	Meta           float64
	Headings       float64
	Footer         float64
	SectorMatch    float64
	SectorMismatch float64
	City           float64
	EmailDomain    float64
	Phone          float64
	LegalID        float64
	DNS            float64
	SSL            float64
	SocialRedirect float64
}

// DefaultWeights returns the tuned default weights.
func DefaultWeights() Weights {
	return Weights{
		BrandMatch:      15,
		SuffixComTr:     2,
		SuffixCom:       1,
		CleanDomain:     1.5,
		MessyDomain:     -2,
		NegativeKeyword: -12,
		BannedFragment:  -10,
		CoreTokenInHost: 0.8,
		NoHost:          -8,

		NameInFull:     5,
		Title:          6,
		Meta:           5,
		Headings:       4,
		Footer:         3,
		SectorMatch:    10,
		SectorMismatch: -20,
		City:           4,
		EmailDomain:    4,
		Phone:          2,
		LegalID:        3,
		DNS:            2,
		SSL:            3,
		SocialRedirect: -8,
	}
}

// NegativeKeywords mark directory, news, map and complaint sites. Any of
// them inside a host is penalized.
var NegativeKeywords = []string{
	"blog", "forum", "sikayet", "sozluk", "kariyer", "ilan", "harita",
	"yandex", "google", "maps", "yenifirma", "bulurum", "firmarehberi",
	"nerede", "telefon", "find", "haber", "news", "duyuru",
}

// BannedFragments are legal-entity words that should never appear in a
// company's registrable root. Each one present is penalized separately.
var BannedFragments = []string{
	"ltd", "sti", "as", "anonim", "limited", "holding", "group", "grup",
	"sanayi", "ticaret",
}
