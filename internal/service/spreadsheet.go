package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var errEmptyWorkbook = errors.New("workbook has no rows")

var workbookExts = map[string]bool{".xlsx": true, ".xlsm": true, ".xltx": true}

func isWorkbook(name string) bool {
	return workbookExts[strings.ToLower(filepath.Ext(name))]
}

// csvName swaps a workbook extension for .csv.
func csvName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".csv"
}

// workbookToCSV renders the first sheet of a workbook as CSV. The backend
// only reads CSV.
func workbookToCSV(r io.Reader) ([]byte, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, errEmptyWorkbook
	}

	// GetRows drops trailing empty cells; pad to the header width
	width := len(rows[0])
	for i, h := range rows[0] {
		if strings.TrimSpace(h) == "" {
			rows[0][i] = fmt.Sprintf("Column_%d", i+1)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
