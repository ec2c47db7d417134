package review

import (
	"bytes"
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/resolver"
)

// TestNewRow verifies the suggestion, confidence and priority summary.
func TestNewRow(t *testing.T) {
	q := company.Query{Name: "Acme"}

	empty := NewRow(q, nil)
	if empty.Suggestion != "" || empty.Confidence != 0 || empty.Priority != resolver.PriorityHigh {
		t.Errorf("NewRow(nil) = %+v, want empty high-priority row", empty)
	}

	row := NewRow(q, []resolver.Candidate{
		{URL: "https://acme.com.tr", Score: 20},
		{URL: "https://acme.com", Score: 10},
	})
	if row.Suggestion != "https://acme.com.tr" {
		t.Errorf("Suggestion = %q, want %q", row.Suggestion, "https://acme.com.tr")
	}
	if row.Confidence != 90 {
		t.Errorf("Confidence = %d, want 90", row.Confidence)
	}
	if row.Priority != resolver.PriorityLow {
		t.Errorf("Priority = %q, want %q", row.Priority, resolver.PriorityLow)
	}
}

// TestSort verifies priority order, then confidence descending.
func TestSort(t *testing.T) {
	rows := []Row{
		{Query: company.Query{Name: "low"}, Confidence: 90, Priority: resolver.PriorityLow},
		{Query: company.Query{Name: "high-25"}, Confidence: 25, Priority: resolver.PriorityHigh},
		{Query: company.Query{Name: "medium"}, Confidence: 70, Priority: resolver.PriorityMedium},
		{Query: company.Query{Name: "high-55"}, Confidence: 55, Priority: resolver.PriorityHigh},
	}
	Sort(rows)

	var got []string
	for _, r := range rows {
		got = append(got, r.Query.Name)
	}
	want := []string{"high-55", "high-25", "medium", "low"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

// TestHeader verifies the candidate slot layout.
func TestHeader(t *testing.T) {
	h := Header(2)
	if len(h) != 3+2*5+5 {
		t.Fatalf("len(Header(2)) = %d, want %d", len(h), 3+2*5+5)
	}
	if h[3] != "cand1_url" || h[12] != "cand2_signals" || h[len(h)-1] != CorrectColumn {
		t.Errorf("Header(2) = %v", h)
	}
}

// TestWorkbook_RoundTrip writes a workbook, labels it the way a reviewer
// would and reads the labels back.
func TestWorkbook_RoundTrip(t *testing.T) {
	rows := []Row{
		NewRow(company.Query{Name: "Acme", Sector: "güvenlik"}, []resolver.Candidate{
			{URL: "https://acme.com.tr", Score: 18.456, Signals: 3, Evidence: []string{"title", "tel"}, Title: "Acme"},
		}),
		NewRow(company.Query{Name: "Beta"}, []resolver.Candidate{{URL: "https://beta.com", Score: 4}}),
		NewRow(company.Query{Name: "Gamma"}, nil),
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, rows, 1); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got := f.GetSheetName(0); got != SheetName {
		t.Errorf("sheet = %q, want %q", got, SheetName)
	}
	score, err := f.GetCellValue(SheetName, "E2")
	if err != nil || score != "18.46" {
		t.Errorf("cand1_score = %q, %v, want 18.46", score, err)
	}
	evidence, _ := f.GetCellValue(SheetName, "F2")
	if evidence != "title,tel" {
		t.Errorf("cand1_evidence = %q, want %q", evidence, "title,tel")
	}

	// Columns: 3 query + 5 candidate, then suggestion, confidence, priority,
	// chosen_url (L) and correct (M).
	for cell, v := range map[string]any{
		"M2": 1,
		"L3": "https://www.beta.com.tr",
		"M3": 0,
	} {
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			t.Fatal(err)
		}
	}
	var labelled bytes.Buffer
	if _, err := f.WriteTo(&labelled); err != nil {
		t.Fatal(err)
	}
	f.Close()

	got, err := ReadLabels(&labelled)
	if err != nil {
		t.Fatalf("ReadLabels() error = %v", err)
	}
	want := []resolver.ReviewRow{
		{Name: "Acme", Sector: "güvenlik", URL: "https://acme.com.tr", Label: 1},
		{Name: "Beta", URL: "https://www.beta.com.tr", Label: 0},
		{Name: "Gamma", Label: -1},
	}
	if !slices.Equal(got, want) {
		t.Errorf("ReadLabels() = %+v, want %+v", got, want)
	}
}

// TestReadLabels_MissingColumns verifies header validation.
func TestReadLabels_MissingColumns(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetRow("Sheet1", "A1", &[]any{"name", "url"}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadLabels(&buf); err == nil {
		t.Fatal("ReadLabels() error = nil, want missing correct column")
	}
}

// TestParseLabel covers the accepted label spellings.
func TestParseLabel(t *testing.T) {
	tests := map[string]int{"1": 1, "0": 0, "1.0": 1, "": -1, "yes": -1}
	for in, want := range tests {
		if got := parseLabel(in); got != want {
			t.Errorf("parseLabel(%q) = %d, want %d", in, got, want)
		}
	}
}
