// Package testutil provides helpers for building xlsx fixtures in tests.
package testutil

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// SheetData is one worksheet to generate: a name and raw cell rows,
// header row first.
type SheetData struct {
	Name string
	Rows [][]interface{}
}

// WriteWorkbook generates an xlsx file at path containing the given sheets
// in order. Fails the test on any error.
func WriteWorkbook(t *testing.T, path string, sheets []SheetData) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				t.Fatalf("renaming default sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				t.Fatalf("creating sheet %s: %v", sheet.Name, err)
			}
		}
		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("computing cell name: %v", err)
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				t.Fatalf("writing row %d of sheet %s: %v", r+1, sheet.Name, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving workbook %s: %v", path, err)
	}
}
