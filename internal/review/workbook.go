package review

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/resolver"
)

// SheetName is the worksheet written by WriteWorkbook.
const SheetName = "review"

// Reviewer columns, left blank by WriteWorkbook.
const (
	ChosenURLColumn  = "chosen_url"
	CorrectColumn    = "correct"
	SuggestionColumn = "auto_suggestion"
)

// Row is one company in the review workbook.
type Row struct {
	Query      company.Query
	Candidates []resolver.Candidate
	// Suggestion is the best candidate URL, or "" when there is none.
	Suggestion string
	Confidence int
	Priority   resolver.Priority
}

// NewRow summarises the ranked candidates of q. Without candidates the row
// has confidence 0 and high priority.
func NewRow(q company.Query, cands []resolver.Candidate) Row {
	r := Row{Query: q, Candidates: cands, Priority: resolver.PriorityHigh}
	if len(cands) > 0 {
		r.Suggestion = cands[0].URL
		r.Confidence = cands[0].Confidence()
		r.Priority = resolver.ReviewPriority(r.Confidence)
	}
	return r
}

// Sort orders rows by priority, high first, then by confidence descending.
func Sort(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(b.Confidence, a.Confidence)
	})
}

// Header returns the workbook header for k candidate slots.
func Header(k int) []string {
	h := []string{"name", "sector", "address"}
	for i := 1; i <= k; i++ {
		p := fmt.Sprintf("cand%d_", i)
		h = append(h, p+"url", p+"score", p+"evidence", p+"title", p+"signals")
	}
	return append(h, SuggestionColumn, "confidence", "priority", ChosenURLColumn, CorrectColumn)
}

func (r Row) cells(k int) []any {
	out := []any{r.Query.Name, r.Query.Sector, r.Query.Address}
	for i := 0; i < k; i++ {
		if i >= len(r.Candidates) {
			out = append(out, "", "", "", "", "")
			continue
		}
		c := r.Candidates[i]
		out = append(out, c.URL, roundScore(c.Score), strings.Join(c.Evidence, ","), c.Title, c.Signals)
	}
	return append(out, r.Suggestion, r.Confidence, string(r.Priority), "", "")
}

func roundScore(s float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(s, 'f', 2, 64), 64)
	return v
}

// WriteWorkbook writes rows with k candidate slots to w as an xlsx file.
func WriteWorkbook(w io.Writer, rows []Row, k int) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("review: naming sheet: %w", err)
	}
	header := Header(k)
	hrow := make([]any, len(header))
	for i, h := range header {
		hrow[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &hrow); err != nil {
		return fmt.Errorf("review: writing header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := r.cells(k)
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("review: writing row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("review: freezing header: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("review: writing workbook: %w", err)
	}
	return nil
}

// Labelled-workbook header aliases in normalized form. The Turkish names are
// those of older review files.
var (
	chosenHeaders     = []string{ChosenURLColumn, "secilen dogru url"}
	correctHeaders    = []string{CorrectColumn, "dogru mu 1 0"}
	suggestionHeaders = []string{SuggestionColumn, "oto oneri"}
)

// ReadLabels reads a reviewed workbook. The URL of a row is the chosen URL,
// or the suggestion when the reviewer left it blank. Labels other than 0 and
// 1 become -1 so the row is skipped by training.
func ReadLabels(r io.Reader) ([]resolver.ReviewRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("review: opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("review: reading rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	nameCol := column(header, nameHeaders)
	if nameCol < 0 {
		return nil, ErrNoNameColumn
	}
	correctCol := column(header, correctHeaders)
	if correctCol < 0 {
		return nil, fmt.Errorf("review: workbook has no %s column", CorrectColumn)
	}
	sectorCol := column(header, sectorHeaders)
	chosenCol := column(header, chosenHeaders)
	suggestionCol := column(header, suggestionHeaders)

	out := make([]resolver.ReviewRow, 0, len(rows)-1)
	for _, rec := range rows[1:] {
		url := field(rec, chosenCol)
		if url == "" {
			url = field(rec, suggestionCol)
		}
		out = append(out, resolver.ReviewRow{
			Name:   field(rec, nameCol),
			Sector: field(rec, sectorCol),
			URL:    url,
			Label:  parseLabel(field(rec, correctCol)),
		})
	}
	return out, nil
}

func parseLabel(s string) int {
	switch s {
	case "1", "1.0":
		return 1
	case "0", "0.0":
		return 0
	default:
		return -1
	}
}
