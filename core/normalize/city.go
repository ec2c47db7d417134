package normalize

import "strings"

// Provinces is the gazetteer of the 81 Turkish provinces in normalized form.
var Provinces = []string{
	"adana", "adiyaman", "afyonkarahisar", "agri", "amasya", "ankara", "antalya",
	"artvin", "aydin", "balikesir", "bilecik", "bingol", "bitlis", "bolu",
	"burdur", "bursa", "canakkale", "cankiri", "corum", "denizli", "diyarbakir",
	"edirne", "elazig", "erzincan", "erzurum", "eskisehir", "gaziantep",
	"giresun", "gumushane", "hakkari", "hatay", "isparta", "mersin", "istanbul",
	"izmir", "kars", "kastamonu", "kayseri", "kirklareli", "kirsehir",
	"kocaeli", "konya", "kutahya", "malatya", "manisa", "kahramanmaras",
	"mardin", "mugla", "mus", "nevsehir", "nigde", "ordu", "rize", "sakarya",
	"samsun", "siirt", "sinop", "sivas", "tekirdag", "tokat", "trabzon",
	"tunceli", "sanliurfa", "usak", "van", "yozgat", "zonguldak", "aksaray",
	"bayburt", "karaman", "kirikkale", "batman", "sirnak", "bartin", "ardahan",
	"igdir", "yalova", "karabuk", "kilis", "osmaniye", "duzce",
}

var provinceSet = setOf(Provinces...)

// CityFromAddress returns the last province named in the address, or "".
// Addresses usually end with "district / province", so the last match wins.
func CityFromAddress(address string) string {
	last := ""
	for _, tok := range Tokens(strings.ReplaceAll(Normalize(address), ",", " ")) {
		if _, ok := provinceSet[tok]; ok {
			last = tok
		}
	}
	return last
}

// CityInText returns the first gazetteer province named as a whole word of
// the normalized text, or "". Short names such as "van" and "mus" occur
// inside ordinary words, so substrings do not count.
func CityInText(text string) string {
	for _, tok := range Tokens(strings.ReplaceAll(text, ",", " ")) {
		tok = strings.Trim(tok, ".")
		if _, ok := provinceSet[tok]; ok {
			return tok
		}
	}
	return ""
}
