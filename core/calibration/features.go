package calibration

import (
	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/scoring"
	"github.com/leofalp/sitefinder/core/signals"
)

// FeatureNames is the fixed feature order shared by training and inference.
var FeatureNames = []string{
	"url_ext_comtr", "url_ext_com", "url_clean", "url_neg", "url_core_match",
	"cnt_title", "cnt_metaog", "cnt_h", "cnt_footer", "cnt_fullname",
	"cnt_sector", "cnt_city", "cnt_emaildom", "cnt_legal", "cnt_tel",
	"dns", "ssl",
}

// NumFeatures is len(FeatureNames).
const NumFeatures = 17

// Vector is one feature vector aligned with FeatureNames.
type Vector []float64

// Extract builds the feature vector of a candidate page. dns and ssl are the
// probe results already computed during scoring.
func Extract(pageURL string, b signals.Bundle, p company.Profile, dns, ssl bool) Vector {
	shape := scoring.ShapeOf(pageURL, p)
	c := signals.Match(b, pageURL, p)
	return Vector{
		flag(shape.ComTr),
		flag(shape.Com),
		flag(shape.Host != "" && shape.Clean),
		flag(shape.Negative),
		flag(shape.BrandMatch),
		flag(c.NameInTitle),
		flag(c.NameInMeta),
		flag(c.NameInHeadings),
		flag(c.NameInFooter),
		flag(c.NameInFull),
		flag(c.Sector),
		flag(c.City),
		flag(c.EmailDomain),
		flag(c.LegalID),
		flag(c.Phone),
		flag(dns),
		flag(ssl),
	}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
