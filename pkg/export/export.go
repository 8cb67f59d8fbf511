// Package export writes a row matrix to a spreadsheet file.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Writer serializes a header row plus data rows to path. Cells may contain
// newlines and must render as multi-line cells.
type Writer interface {
	Ext() string
	Write(path string, matrix [][]string) error
}

// ForFormat returns the writer for "xlsx" or "csv".
func ForFormat(format string) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "xlsx":
		return &XLSX{}, nil
	case "csv":
		return &CSV{}, nil
	default:
		return nil, fmt.Errorf("export: unsupported format %q", format)
	}
}

const (
	defaultSheet    = "Records"
	nameColumnWidth = 28
	dayColumnWidth  = 12
)

// XLSX writes a single-sheet workbook.
type XLSX struct {
	Sheet string
}

func (x *XLSX) Ext() string { return "xlsx" }

func (x *XLSX) Write(path string, matrix [][]string) (err error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return errors.New("export: empty matrix")
	}
	sheet := x.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("export: name sheet: %w", err)
	}
	for i := range matrix {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &matrix[i]); err != nil {
			return fmt.Errorf("export: write row %d: %w", i+1, err)
		}
	}

	cols := len(matrix[0])
	if err := f.SetColWidth(sheet, "A", "A", nameColumnWidth); err != nil {
		return err
	}
	if cols > 1 {
		last, err := excelize.ColumnNumberToName(cols)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "B", last, dayColumnWidth); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("export: create style: %w", err)
	}
	end, err := excelize.CoordinatesToCellName(cols, len(matrix))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", end, style); err != nil {
		return fmt.Errorf("export: apply style: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

// CSV writes comma-separated values; multi-line cells are quoted.
type CSV struct{}

func (c *CSV) Ext() string { return "csv" }

func (c *CSV) Write(path string, matrix [][]string) error {
	if len(matrix) == 0 {
		return errors.New("export: empty matrix")
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	writer := csv.NewWriter(out)
	if err := writer.WriteAll(matrix); err != nil {
		_ = out.Close()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return out.Close()
}
