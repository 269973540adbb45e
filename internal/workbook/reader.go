package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vvka-141/schemabook/pkg/schemabook"
)

// Row maps normalized column headers to raw cell values.
// Headers are trimmed and lower-cased; cell values are kept as read.
type Row map[string]string

// Sheet is one worksheet exposed as an ordered sequence of rows.
// Headers preserves the normalized column order of the header row.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []Row
}

// HasColumn reports whether the sheet's header row contains the given
// normalized column name.
func (s *Sheet) HasColumn(name string) bool {
	for _, h := range s.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Read opens the workbook at path and returns its sheets in workbook order.
//
// The first row of each sheet is treated as the header row; headers are
// trimmed and lower-cased so downstream lookups are case-insensitive.
// Fully empty rows are skipped. Sheets without a header row are returned
// with zero rows.
//
// A missing file or a file that cannot be opened as a workbook returns an
// error wrapping schemabook.ErrSourceUnavailable. Read has no side effects.
func Read(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", schemabook.ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: reading sheet %q: %v", schemabook.ErrSourceUnavailable, name, err)
		}
		sheets = append(sheets, buildSheet(name, rows))
	}
	return sheets, nil
}

// buildSheet converts raw cell rows into header-keyed records.
func buildSheet(name string, raw [][]string) Sheet {
	sheet := Sheet{Name: name}
	if len(raw) == 0 {
		return sheet
	}

	for _, h := range raw[0] {
		sheet.Headers = append(sheet.Headers, NormalizeHeader(h))
	}

	for _, cells := range raw[1:] {
		row := make(Row, len(sheet.Headers))
		empty := true
		for i, header := range sheet.Headers {
			if header == "" {
				continue
			}
			var value string
			if i < len(cells) {
				value = cells[i]
			}
			row[header] = value
			if strings.TrimSpace(value) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// NormalizeHeader converts a raw header cell to its canonical lookup form:
// trimmed, lower-cased, with internal whitespace runs collapsed to one space.
func NormalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}
