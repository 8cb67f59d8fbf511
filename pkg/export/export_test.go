package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

var sample = [][]string{
	{"name", "03-14-24", "03-15-24"},
	{"Amoxicillin", "Thor - Isadora\nLuna - Thalles", ""},
	{"Meloxicam", "", "Bob - Isadora"},
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	if err := (&CSV{}).Write(path, sample); err != nil {
		t.Fatalf("csv write error: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("csv read error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[1][1] != "Thor - Isadora\nLuna - Thalles" {
		t.Fatalf("expected multi-line cell to survive, got %q", records[1][1])
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.xlsx")
	if err := (&XLSX{}).Write(path, sample); err != nil {
		t.Fatalf("xlsx write error: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(defaultSheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "name" || rows[2][0] != "Meloxicam" {
		t.Fatalf("unexpected rows %v", rows)
	}
	cell, err := f.GetCellValue(defaultSheet, "B2")
	if err != nil {
		t.Fatalf("get cell: %v", err)
	}
	if cell != "Thor - Isadora\nLuna - Thalles" {
		t.Fatalf("unexpected B2 %q", cell)
	}
	width, err := f.GetColWidth(defaultSheet, "A")
	if err != nil {
		t.Fatalf("get width: %v", err)
	}
	if width != nameColumnWidth {
		t.Fatalf("expected name column width %d, got %v", nameColumnWidth, width)
	}
}

func TestWriteRejectsEmptyMatrix(t *testing.T) {
	dir := t.TempDir()
	if err := (&XLSX{}).Write(filepath.Join(dir, "a.xlsx"), nil); err == nil {
		t.Fatalf("expected xlsx error")
	}
	if err := (&CSV{}).Write(filepath.Join(dir, "a.csv"), nil); err == nil {
		t.Fatalf("expected csv error")
	}
}

func TestForFormat(t *testing.T) {
	for format, ext := range map[string]string{"": "xlsx", "XLSX": "xlsx", "csv": "csv"} {
		w, err := ForFormat(format)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", format, err)
		}
		if w.Ext() != ext {
			t.Fatalf("%q: expected %s, got %s", format, ext, w.Ext())
		}
	}
	if _, err := ForFormat("pdf"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
