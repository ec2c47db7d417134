package review

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/normalize"
)

// FoundLinkColumn is appended to the input columns by WriteResults.
const FoundLinkColumn = "found_link"

// ErrNoNameColumn reports an input without a company name header.
var ErrNoNameColumn = errors.New("review: input has no name column")

// Header aliases in normalized form.
var (
	nameHeaders    = []string{"name", "firma adi", "company"}
	sectorHeaders  = []string{"sector", "sektor"}
	addressHeaders = []string{"address", "adres"}
)

// Table is a parsed input CSV. Rows keep every original column so output
// files can echo them.
type Table struct {
	Header  []string
	Rows    [][]string
	Queries []company.Query
}

// ReadCSV parses a company CSV. Rows are padded to the header width.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("review: reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	nameCol := column(header, nameHeaders)
	if nameCol < 0 {
		return nil, ErrNoNameColumn
	}
	sectorCol := column(header, sectorHeaders)
	addressCol := column(header, addressHeaders)

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("review: reading row %d: %w", len(t.Rows)+2, err)
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		t.Rows = append(t.Rows, rec)
		t.Queries = append(t.Queries, company.Query{
			Name:    field(rec, nameCol),
			Sector:  field(rec, sectorCol),
			Address: field(rec, addressCol),
		})
	}
	return t, nil
}

// WriteResults writes t with links as an extra FoundLinkColumn. links must
// have one entry per row.
func WriteResults(w io.Writer, t *Table, links []string) error {
	if len(links) != len(t.Rows) {
		return fmt.Errorf("review: %d links for %d rows", len(links), len(t.Rows))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append(clone(t.Header), FoundLinkColumn)); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := cw.Write(append(clone(row), links[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// column returns the index of the first header matching one of aliases, or
// -1.
func column(header []string, aliases []string) int {
	for i, h := range header {
		n := normalize.Normalize(h)
		for _, a := range aliases {
			if n == a {
				return i
			}
		}
	}
	return -1
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
