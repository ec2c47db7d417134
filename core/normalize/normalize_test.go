package normalize

import (
	"reflect"
	"testing"
)

// TestNormalize covers transliteration, punctuation and whitespace handling.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"turkish letters", "Acme Güvenlik Hizmetleri Ltd. Şti.", "acme guvenlik hizmetleri ltd. sti."},
		{"dotted capital I", "İSTANBUL", "istanbul"},
		{"dotless i", "KIRIKKALE ılıca", "kirikkale ilica"},
		{"keeps at and dot", "info@acme.com.tr", "info@acme.com.tr"},
		{"punctuation to space", "Acme-Yapı/İnşaat (A.Ş.)", "acme yapi insaat a.s."},
		{"collapse whitespace", "  acme \t\n  yazılım  ", "acme yazilim"},
		{"foreign accents", "Café Société", "cafe societe"},
		{"nbsp", "acme grup", "acme grup"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestNormalize_Idempotent verifies normalize(normalize(x)) == normalize(x).
func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Acme Güvenlik Hizmetleri Ltd. Şti.",
		"İİİ ııı ĞÜŞÖÇ",
		"<title>Acme &amp; Co</title>",
		"Ünlü   Çiçekçilik,  İzmir / Türkiye",
		"ß straße ÆØÅ",
		"日本語 テキスト",
		"a.s. @ .",
		"İ̇",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

// TestBrandCore verifies suffix removal, minimum length and the token cap.
func TestBrandCore(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"legal suffixes", "Acme Güvenlik Hizmetleri Ltd", []string{"acme", "guvenlik"}},
		{"short tokens dropped", "AB Yapı Ve Tasarım A.Ş.", []string{"yapi", "tasarim"}},
		{"cap at four", "alpha beta gamma delta epsilon", []string{"alpha", "beta", "gamma", "delta"}},
		{"only suffixes", "Holding Grup Ltd", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BrandCore(Tokens(Normalize(tt.in)))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BrandCore(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestBrandForms verifies concatenated and hyphenated forms.
func TestBrandForms(t *testing.T) {
	compact, dashed := BrandForms([]string{"acme", "guvenlik"})
	if compact != "acmeguvenlik" || dashed != "acme-guvenlik" {
		t.Errorf("BrandForms() = (%q, %q), want (acmeguvenlik, acme-guvenlik)", compact, dashed)
	}
}

// TestCoreVariants verifies the variant order and de-duplication.
func TestCoreVariants(t *testing.T) {
	got := CoreVariants([]string{"acme", "guvenlik", "ab"})
	want := []string{"acmeguvenlik", "acme-guvenlik", "acme", "guvenlik"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CoreVariants() = %v, want %v", got, want)
	}

	single := CoreVariants([]string{"acme"})
	if !reflect.DeepEqual(single, []string{"acme"}) {
		t.Errorf("CoreVariants(single) = %v, want [acme]", single)
	}
	if CoreVariants(nil) != nil {
		t.Error("CoreVariants(nil) should be nil")
	}
}

// TestSectorSet verifies declared sectors and name-derived keywords merge.
func TestSectorSet(t *testing.T) {
	got := SectorSet("Özel Güvenlik", Tokens(Normalize("Acme Koruma Ltd")))
	want := []string{"ozel", "guvenlik", "ozel guvenlik", "koruma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SectorSet() = %v, want %v", got, want)
	}
	if got := SectorSet("", []string{"acme"}); len(got) != 0 {
		t.Errorf("SectorSet(empty) = %v, want empty", got)
	}
}

// TestLexiconHits verifies trigger gating and per-lexicon counting.
func TestLexiconHits(t *testing.T) {
	full := Normalize("5188 sayılı kanun kapsamında silahlı güvenlik ve KVKK uyumu")

	if got := LexiconHits(full, []string{"guvenlik"}); got != 1 {
		t.Errorf("LexiconHits(security) = %d, want 1", got)
	}
	if got := LexiconHits(full, []string{"guvenlik", "bilisim"}); got != 2 {
		t.Errorf("LexiconHits(security+it) = %d, want 2", got)
	}
	if got := LexiconHits(full, []string{"gida"}); got != 0 {
		t.Errorf("LexiconHits(untriggered) = %d, want 0", got)
	}
}

// TestCityFromAddress verifies the last province in the address wins.
func TestCityFromAddress(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{"Atatürk Cad. No:5 Kadıköy, İstanbul", "istanbul"},
		{"Ankara Sokak No:3, Çankaya / İzmir", "izmir"},
		{"Unknown street 12", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CityFromAddress(tt.address); got != tt.want {
			t.Errorf("CityFromAddress(%q) = %q, want %q", tt.address, got, tt.want)
		}
	}
}

// TestCityInText verifies whole-word matching against the gazetteer.
func TestCityInText(t *testing.T) {
	if got := CityInText("merkez ofis izmir konak"); got != "izmir" {
		t.Errorf("CityInText() = %q, want izmir", got)
	}
	if got := CityInText("no province here"); got != "" {
		t.Errorf("CityInText() = %q, want empty", got)
	}
	if got := CityInText("merkez: konak, izmir."); got != "izmir" {
		t.Errorf("CityInText() = %q, want izmir with trailing punctuation", got)
	}
	if got := CityInText("musteri hizmetleri avantaj"); got != "" {
		t.Errorf("CityInText() = %q, want empty for province names inside words", got)
	}
}

// TestSimilarity checks the ratio against known values.
func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"acmeguvenlik", "acmeguvenlik", 1},
		{"abcd", "abce", 0.75},
		{"acme", "", 0},
		{"", "", 0},
		{"abc", "xyz", 0},
	}
	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
