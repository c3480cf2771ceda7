// Package export writes expense rows to files on disk in csv, json, or
// xlsx form. It never filters or aggregates; callers hand it the exact
// rows to write.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"ledger/internal/core"
)

var columns = []string{"id", "date", "amount", "category", "subcategory", "note"}

// Exporter writes export files under a fixed directory.
type Exporter struct {
	dir string
}

// New returns an Exporter rooted at dir, creating it if needed.
func New(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, core.Storef("create export directory", err)
	}
	return &Exporter{dir: dir}, nil
}

// Write serializes rows in the requested format and returns the path of
// the written file. The filename gets the format's extension appended
// unless it already carries it.
func (e *Exporter) Write(rows []core.Expense, format, filename string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if filename == "" {
		return "", core.Validationf("filename is required")
	}
	if strings.Contains(filename, string(os.PathSeparator)) || strings.Contains(filename, "/") {
		return "", core.Validationf("filename must not contain path separators")
	}

	ext := "." + format
	if !strings.HasSuffix(strings.ToLower(filename), ext) {
		filename += ext
	}
	path := filepath.Join(e.dir, filename)

	var err error
	switch format {
	case "csv":
		err = writeCSV(path, rows)
	case "json":
		err = writeJSON(path, rows)
	case "xlsx":
		err = writeXLSX(path, rows)
	default:
		return "", core.Validationf("invalid format %q: must be csv, json, or xlsx", format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func writeCSV(path string, rows []core.Expense) error {
	f, err := os.Create(path)
	if err != nil {
		return core.Storef("create export file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return core.Storef("write csv header", err)
	}
	for _, e := range rows {
		record := []string{
			fmt.Sprintf("%d", e.ID),
			e.Date.String(),
			e.Amount.String(),
			e.Category,
			e.Subcategory,
			e.Note,
		}
		if err := w.Write(record); err != nil {
			return core.Storef("write csv row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return core.Storef("flush csv", err)
	}
	return f.Close()
}

type jsonRow struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Note        string  `json:"note,omitempty"`
}

func writeJSON(path string, rows []core.Expense) error {
	out := make([]jsonRow, 0, len(rows))
	for _, e := range rows {
		out = append(out, jsonRow{
			ID:          e.ID,
			Date:        e.Date.String(),
			Amount:      e.Amount.Float(),
			Category:    e.Category,
			Subcategory: e.Subcategory,
			Note:        e.Note,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return core.Storef("create export file", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return core.Storef("encode json", err)
	}
	return f.Close()
}

func writeXLSX(path string, rows []core.Expense) error {
	const sheet = "Expenses"

	wb := excelize.NewFile()
	defer wb.Close()

	idx, err := wb.NewSheet(sheet)
	if err != nil {
		return core.Storef("create xlsx sheet", err)
	}
	wb.SetActiveSheet(idx)
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		return core.Storef("create xlsx sheet", err)
	}

	for i, name := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := wb.SetCellValue(sheet, cell, name); err != nil {
			return core.Storef("write xlsx header", err)
		}
	}
	for r, e := range rows {
		values := []any{e.ID, e.Date.String(), e.Amount.Float(), e.Category, e.Subcategory, e.Note}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return core.Storef("write xlsx row", err)
			}
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return core.Storef("save xlsx", err)
	}
	return nil
}
