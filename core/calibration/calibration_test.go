package calibration

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/signals"
)

const companyPage = `<html>
<head>
<title>Acme Güvenlik Hizmetleri Ltd | Özel Güvenlik</title>
<meta name="description" content="Acme Güvenlik Hizmetleri Ltd İstanbul">
</head>
<body>
<h1>Acme Güvenlik Hizmetleri Ltd</h1>
<p>Tel: 0212 555 12 34</p>
<p>E-posta: info@acmeguvenlik.com.tr</p>
<footer>Acme Güvenlik Hizmetleri Ltd, Kadıköy / İstanbul, Mersis: 0123456789012345</footer>
</body>
</html>`

func acmeProfile() company.Profile {
	return company.NewProfile(company.Query{
		Name:    "Acme Güvenlik Hizmetleri Ltd",
		Sector:  "özel güvenlik",
		Address: "Kadıköy / İstanbul",
	})
}

// labeledSamples returns separable rows: positives are mostly ones,
// negatives mostly zeros, each with one flipped feature.
func labeledSamples() []Sample {
	var out []Sample
	for i := 0; i < 10; i++ {
		pos := make(Vector, NumFeatures)
		neg := make(Vector, NumFeatures)
		for j := range pos {
			pos[j] = 1
		}
		pos[i%NumFeatures] = 0
		neg[(i*3)%NumFeatures] = 1
		out = append(out, Sample{Features: pos, Label: 1}, Sample{Features: neg, Label: 0})
	}
	return out
}

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = orig })
	return ts
}

// TestFeatureNames verifies the contract length.
func TestFeatureNames(t *testing.T) {
	if len(FeatureNames) != NumFeatures {
		t.Errorf("len(FeatureNames) = %d, want %d", len(FeatureNames), NumFeatures)
	}
}

// TestExtract verifies every feature lands in its named position.
func TestExtract(t *testing.T) {
	v := Extract("https://acmeguvenlik.com.tr", signals.Extract(companyPage), acmeProfile(), true, false)

	want := map[string]float64{
		"url_ext_comtr": 1, "url_ext_com": 0, "url_clean": 1, "url_neg": 0,
		"url_core_match": 1, "cnt_title": 1, "cnt_metaog": 1, "cnt_h": 1,
		"cnt_footer": 1, "cnt_fullname": 1, "cnt_sector": 1, "cnt_city": 1,
		"cnt_emaildom": 1, "cnt_legal": 1, "cnt_tel": 1, "dns": 1, "ssl": 0,
	}
	if len(v) != NumFeatures {
		t.Fatalf("len(Extract()) = %d, want %d", len(v), NumFeatures)
	}
	for i, name := range FeatureNames {
		if v[i] != want[name] {
			t.Errorf("feature %s = %v, want %v", name, v[i], want[name])
		}
	}
}

// TestExtract_Empty verifies an unusable URL and empty page give zeros.
func TestExtract_Empty(t *testing.T) {
	v := Extract("not a url", signals.Bundle{}, acmeProfile(), false, false)
	if !reflect.DeepEqual(v, make(Vector, NumFeatures)) {
		t.Errorf("Extract() = %v, want all zeros", v)
	}
}

// TestTrain_Discrimination verifies both methods rank positives above
// negatives on their own training rows.
func TestTrain_Discrimination(t *testing.T) {
	samples := labeledSamples()
	for _, method := range []Method{MethodLogistic, MethodCorrelation} {
		t.Run(string(method), func(t *testing.T) {
			m, err := Train(samples, method)
			if err != nil {
				t.Fatalf("Train() error = %v", err)
			}
			var posSum, negSum float64
			var pos, neg int
			for _, s := range samples {
				p, err := m.Predict(s.Features)
				if err != nil {
					t.Fatalf("Predict() error = %v", err)
				}
				if p < 0 || p > 1 {
					t.Errorf("Predict() = %v, outside [0, 1]", p)
				}
				if s.Label == 1 {
					posSum += p
					pos++
				} else {
					negSum += p
					neg++
				}
			}
			if posSum/float64(pos) <= negSum/float64(neg) {
				t.Errorf("mean positive %v <= mean negative %v", posSum/float64(pos), negSum/float64(neg))
			}
			if string(m.Kind) != string(method) {
				t.Errorf("Kind = %q, want %q", m.Kind, method)
			}
		})
	}
}

// TestTrain_SingleClassFallsBack verifies logistic training on one class
// yields a correlation model.
func TestTrain_SingleClassFallsBack(t *testing.T) {
	samples := []Sample{
		{Features: make(Vector, NumFeatures), Label: 1},
		{Features: make(Vector, NumFeatures), Label: 1},
	}
	m, err := Train(samples, MethodLogistic)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if m.Kind != KindCorrelation {
		t.Errorf("Kind = %q, want %q", m.Kind, KindCorrelation)
	}
}

// TestTrain_CorrelationClosedForm verifies the weights and bias on a
// two-row set where one feature equals the label.
func TestTrain_CorrelationClosedForm(t *testing.T) {
	one := make(Vector, NumFeatures)
	one[0] = 1
	samples := []Sample{
		{Features: one, Label: 1},
		{Features: make(Vector, NumFeatures), Label: 0},
	}
	ts := fixedNow(t)

	m, err := Train(samples, MethodCorrelation)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if math.Abs(m.Weights[0]-1) > 1e-4 {
		t.Errorf("Weights[0] = %v, want ~1", m.Weights[0])
	}
	for j := 1; j < NumFeatures; j++ {
		if m.Weights[j] != 0 {
			t.Errorf("Weights[%d] = %v, want 0", j, m.Weights[j])
		}
	}
	if math.Abs(m.Bias+0.5) > 1e-4 {
		t.Errorf("Bias = %v, want ~-0.5", m.Bias)
	}
	if m.Samples != 2 || !m.TrainedAt.Equal(ts) {
		t.Errorf("Samples = %d, TrainedAt = %v", m.Samples, m.TrainedAt)
	}
}

// TestTrain_Errors verifies invalid training input is rejected.
func TestTrain_Errors(t *testing.T) {
	good := make(Vector, NumFeatures)
	tests := []struct {
		name    string
		samples []Sample
		method  Method
		wantErr error
	}{
		{"no samples", nil, MethodLogistic, ErrNoSamples},
		{"short vector", []Sample{{Features: Vector{1, 0}, Label: 1}}, MethodLogistic, ErrFeatureMismatch},
		{"bad label", []Sample{{Features: good, Label: 2}}, MethodLogistic, nil},
		{"bad method", []Sample{{Features: good, Label: 1}}, Method("svm"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Train(tt.samples, tt.method)
			if err == nil {
				t.Fatal("Train() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Train() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestPredict_FeatureMismatch verifies a short vector is a contract error.
func TestPredict_FeatureMismatch(t *testing.T) {
	m, err := Train(labeledSamples(), MethodCorrelation)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if _, err := m.Predict(Vector{1, 1}); !errors.Is(err, ErrFeatureMismatch) {
		t.Errorf("Predict() error = %v, want ErrFeatureMismatch", err)
	}
}

// TestParseMethod verifies method names.
func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{"": MethodLogistic, "logistic": MethodLogistic, "correlation": MethodCorrelation} {
		if got, err := ParseMethod(in); err != nil || got != want {
			t.Errorf("ParseMethod(%q) = (%q, %v), want %q", in, got, err, want)
		}
	}
	if _, err := ParseMethod("forest"); err == nil {
		t.Error("ParseMethod(forest) error = nil, want error")
	}
}

// TestSaveLoad verifies the envelope round-trips.
func TestSaveLoad(t *testing.T) {
	fixedNow(t)
	m, err := Train(labeledSamples(), MethodLogistic)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Save(&buf, m); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"schema_version": 1`) {
		t.Errorf("Save() output missing schema version:\n%s", buf.String())
	}

	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Kind != m.Kind || got.Bias != m.Bias || !reflect.DeepEqual(got.Weights, m.Weights) ||
		!got.TrainedAt.Equal(m.TrainedAt) || got.Samples != m.Samples {
		t.Errorf("Load() = %+v, want %+v", got, m)
	}
}

// TestLoad_RepairsTruncatedJSON verifies a missing closing brace is repaired.
func TestLoad_RepairsTruncatedJSON(t *testing.T) {
	m, err := Train(labeledSamples(), MethodCorrelation)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	var buf bytes.Buffer
	if err := Save(&buf, m); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	broken := strings.TrimSuffix(strings.TrimSpace(buf.String()), "}")

	got, err := Load(strings.NewReader(broken))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got.Weights, m.Weights) {
		t.Errorf("Weights = %v, want %v", got.Weights, m.Weights)
	}
}

// TestLoad_Rejects verifies contract violations fail loudly.
func TestLoad_Rejects(t *testing.T) {
	names := `"url_ext_comtr","url_ext_com","url_clean","url_neg","url_core_match","cnt_title","cnt_metaog","cnt_h","cnt_footer","cnt_fullname","cnt_sector","cnt_city","cnt_emaildom","cnt_legal","cnt_tel","dns","ssl"`
	swapped := `"url_ext_com","url_ext_comtr","url_clean","url_neg","url_core_match","cnt_title","cnt_metaog","cnt_h","cnt_footer","cnt_fullname","cnt_sector","cnt_city","cnt_emaildom","cnt_legal","cnt_tel","dns","ssl"`
	weights := `[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]`

	tests := []struct {
		name    string
		json    string
		wantErr error
	}{
		{"unknown kind", `{"kind":"forest","schema_version":1,"feature_names":[` + names + `],"weights":` + weights + `}`, ErrUnknownKind},
		{"newer version", `{"kind":"logistic","schema_version":2,"feature_names":[` + names + `],"weights":` + weights + `}`, ErrUnsupportedVersion},
		{"swapped names", `{"kind":"logistic","schema_version":1,"feature_names":[` + swapped + `],"weights":` + weights + `}`, ErrFeatureMismatch},
		{"short weights", `{"kind":"logistic","schema_version":1,"feature_names":[` + names + `],"weights":[1,2]}`, ErrFeatureMismatch},
		{"unknown field", `{"kind":"logistic","schema_version":1,"feature_names":[` + names + `],"weights":` + weights + `,"extra":1}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.json))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
