package fileio

import (
	"bytes"
	"fmt"
	"io"

	excelize "github.com/xuri/excelize/v2"

	"parts-finder/internal/search/model"
)

// ExportSheet is the sheet name of exported workbooks.
const ExportSheet = "SearchResults"

func readXLSX(r io.Reader) ([][][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sheets [][][]string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		sheets = append(sheets, rows)
	}
	return sheets, nil
}

// WriteXLSX writes headers then rows to a single-sheet workbook. Cells are
// written as strings so a re-read gives back the same values.
func WriteXLSX(w io.Writer, headers []string, rows []model.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return err
	}
	put := func(n int, vals []string) error {
		cellRef, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			return err
		}
		line := make([]interface{}, len(vals))
		for i, v := range vals {
			line[i] = v
		}
		return f.SetSheetRow(ExportSheet, cellRef, &line)
	}

	if err := put(1, headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		if err := put(i+2, r); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f.Write(w)
}
