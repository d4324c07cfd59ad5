package invoice

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"Invoice-Processing-System/domain"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Invoices"

// Columns returns the header of a tabular export: known fields in record
// order where any document carries them, then unknown fields sorted.
func Columns(docs []domain.Document) []string {
	seen := make(map[string]bool)
	for _, doc := range docs {
		for field := range doc {
			seen[field] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for _, field := range domain.InvoiceFields {
		if seen[field] {
			columns = append(columns, field)
			delete(seen, field)
		}
	}

	extra := make([]string, 0, len(seen))
	for field := range seen {
		extra = append(extra, field)
	}
	sort.Strings(extra)
	return append(columns, extra...)
}

// WriteCSV writes a header row and one row per document.
func WriteCSV(w io.Writer, docs []domain.Document) error {
	columns := Columns(docs)
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, doc := range docs {
		for i, field := range columns {
			row[i] = doc.Cell(field)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the same table as WriteCSV as a single-sheet workbook.
func WriteXLSX(w io.Writer, docs []domain.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	columns := Columns(docs)
	for i, field := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, field); err != nil {
			return err
		}
	}

	for r, doc := range docs {
		for c, field := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(exportSheet, cell, doc.Cell(field)); err != nil {
				return fmt.Errorf("error writing cell %s: %w", cell, err)
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}
