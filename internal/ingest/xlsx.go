package ingest

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads one worksheet of a workbook. The sheet is chosen by
// opt.Sheet, then by the 1-based opt.SheetIndex, then the first sheet.
func ReadXLSX(path string, opt Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), opt)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	// GetRows omits trailing empty cells, so an empty first row is an empty header
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyTable
	}
	header := cleanHeader(rows[0])
	if len(header) == 0 {
		return nil, ErrEmptyTable
	}

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	t := &Table{Name: filepath.Base(path) + ":" + sheet, Header: header}
	for _, rec := range rows[1:] {
		if isBlank(rec) {
			continue
		}
		t.TotalRows++
		if len(t.Rows) < maxRows {
			t.Rows = append(t.Rows, fitRow(rec, len(header)))
		}
	}
	slog.Debug("read xlsx", "path", path, "sheet", sheet, "rows", t.TotalRows, "kept", len(t.Rows))
	return t, nil
}

func pickSheet(sheets []string, opt Options) (string, error) {
	if len(sheets) == 0 {
		return "", ErrEmptyTable
	}
	if opt.Sheet != "" {
		for _, s := range sheets {
			if s == opt.Sheet {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet %q not found (have %v)", opt.Sheet, sheets)
	}
	if opt.SheetIndex > 0 {
		if opt.SheetIndex > len(sheets) {
			return "", fmt.Errorf("sheet index %d out of range (1-%d)", opt.SheetIndex, len(sheets))
		}
		return sheets[opt.SheetIndex-1], nil
	}
	return sheets[0], nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if c != "" {
			return false
		}
	}
	return true
}
