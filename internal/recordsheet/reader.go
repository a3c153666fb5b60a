// Package recordsheet builds replacement record queues from spreadsheet or
// CSV files. The header row names fields by id or Persian label; each
// following row is one record, and blank cells leave a field unselected.
package recordsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ALIKZH777/dgdocs/internal/domain"
	"github.com/ALIKZH777/dgdocs/internal/field"
)

// ErrNoFieldColumns is returned when no header cell resolves to a catalog
// field.
var ErrNoFieldColumns = errors.New("record sheet has no recognized field columns")

// Reader converts tabular record sheets into replacement records.
type Reader struct {
	catalog *field.Catalog
}

// NewReader creates a Reader over the field catalog.
func NewReader(c *field.Catalog) *Reader {
	return &Reader{catalog: c}
}

// ReadXLSX reads records from the first sheet of an Excel workbook.
func (r *Reader) ReadXLSX(src io.Reader) ([]domain.ReplacementRecord, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}
	return r.fromRows(rows)
}

// ReadCSV reads records from UTF-8 CSV, tolerating a leading BOM.
func (r *Reader) ReadCSV(src io.Reader) ([]domain.ReplacementRecord, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")
	}
	return r.fromRows(rows)
}

func (r *Reader) fromRows(rows [][]string) ([]domain.ReplacementRecord, error) {
	if len(rows) == 0 {
		return nil, ErrNoFieldColumns
	}

	// Resolve header cells to field ids; unknown columns are skipped.
	type column struct {
		index int
		id    string
	}
	var columns []column
	for i, cell := range rows[0] {
		header := strings.TrimSpace(cell)
		if header == "" {
			continue
		}
		id, ok := r.catalog.Lookup(header)
		if !ok {
			log.Printf("recordsheet: skipping unrecognized column %q", header)
			continue
		}
		columns = append(columns, column{index: i, id: id})
	}
	if len(columns) == 0 {
		return nil, ErrNoFieldColumns
	}

	now := time.Now()
	var records []domain.ReplacementRecord
	for rowIdx, row := range rows[1:] {
		rec := domain.ReplacementRecord{
			ID:        fmt.Sprintf("row-%d", rowIdx+2),
			NewValues: make(map[string]string),
			CreatedAt: now,
		}
		for _, c := range columns {
			if c.index >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c.index])
			if v == "" {
				continue
			}
			rec.SelectedFields = append(rec.SelectedFields, c.id)
			rec.NewValues[c.id] = v
		}
		if len(rec.SelectedFields) == 0 {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
