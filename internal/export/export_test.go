package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ledger/internal/core"
)

func sampleRows(t *testing.T) []core.Expense {
	t.Helper()
	d1, err := core.ParseDate("2024-01-05")
	if err != nil {
		t.Fatal(err)
	}
	d2, err := core.ParseDate("2024-01-20")
	if err != nil {
		t.Fatal(err)
	}
	return []core.Expense{
		{ID: 1, Date: d1, Amount: core.Money{Cents: 1250}, Category: "food", Subcategory: "groceries", Note: "weekly shop"},
		{ID: 2, Date: d2, Amount: core.Money{Cents: 4999}, Category: "transport"},
	}
}

func TestWriteCSV(t *testing.T) {
	exp, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path, err := exp.Write(sampleRows(t), "csv", "january")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasSuffix(path, "january.csv") {
		t.Errorf("path = %q, want .csv extension appended", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if records[0][0] != "id" || records[0][5] != "note" {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[1][2] != "12.50" {
		t.Errorf("amount = %q, want 12.50", records[1][2])
	}
}

func TestWriteJSON(t *testing.T) {
	exp, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path, err := exp.Write(sampleRows(t), "json", "january.json")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.HasSuffix(path, ".json.json") {
		t.Errorf("extension doubled: %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["amount"] != 12.5 {
		t.Errorf("amount = %v, want 12.5", rows[0]["amount"])
	}
	if _, ok := rows[1]["note"]; ok {
		t.Error("empty note should be omitted")
	}
}

func TestWriteXLSX(t *testing.T) {
	exp, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path, err := exp.Write(sampleRows(t), "xlsx", "january")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("xlsx file is empty")
	}
}

func TestWriteRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	exp, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	rows := sampleRows(t)

	if _, err := exp.Write(rows, "xml", "out"); !core.IsValidation(err) {
		t.Errorf("bad format: got %v, want validation error", err)
	}
	if _, err := exp.Write(rows, "csv", ""); !core.IsValidation(err) {
		t.Errorf("empty filename: got %v, want validation error", err)
	}
	if _, err := exp.Write(rows, "csv", "../escape"); !core.IsValidation(err) {
		t.Errorf("path separator: got %v, want validation error", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		t.Errorf("unexpected file written: %s", filepath.Join(dir, e.Name()))
	}
}
