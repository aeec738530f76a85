package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"parts-finder/internal/search/model"
	"parts-finder/internal/search/service"
)

var ErrUnsupported = errors.New("unsupported file type")

// Supported reports whether filename has an extension ReadSheets understands.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls", ".csv":
		return true
	}
	return false
}

// ReadSheets picks the parser by extension and returns every sheet as a grid
// of strings. Parser failures are wrapped in model.ErrMalformedSource.
func ReadSheets(r io.Reader, filename string) ([][][]string, error) {
	var (
		sheets [][][]string
		err    error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		sheets, err = readXLSX(r)
	case ".xls":
		sheets, err = readXLS(r)
	case ".csv":
		var rows [][]string
		rows, err = readCSV(r)
		sheets = [][][]string{rows}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrMalformedSource, filename, err)
	}
	return sheets, nil
}

// ReadDataset is ReadSheets followed by BuildDataset.
func ReadDataset(r io.Reader, filename string, c service.Classifier) (*model.Dataset, error) {
	sheets, err := ReadSheets(r, filename)
	if err != nil {
		return nil, err
	}
	ds, err := BuildDataset(sheets, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ds, nil
}

// BuildDataset combines sheets into one Dataset. The first non-blank row of
// the first sheet with data is the header; every other sheet's first non-blank
// row is skipped as its own header. Blank rows are dropped and rows are padded
// to the widest row seen.
func BuildDataset(sheets [][][]string, c service.Classifier) (*model.Dataset, error) {
	var (
		header []string
		data   [][]string
	)
	for _, sheet := range sheets {
		rows := nonBlankRows(sheet)
		if len(rows) == 0 {
			continue
		}
		if header == nil {
			header = rows[0]
		}
		data = append(data, rows[1:]...)
	}
	if header == nil {
		return nil, fmt.Errorf("%w: no data in any sheet", model.ErrMalformedSource)
	}

	width := len(header)
	for _, rec := range data {
		width = max(width, len(rec))
	}
	ds := &model.Dataset{
		Rows:    make([]model.Row, 0, len(data)),
		Columns: service.BuildMapping(header, width, c),
	}
	for _, rec := range data {
		row := make(model.Row, width)
		copy(row, rec)
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func nonBlankRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, rec := range rows {
		if !isBlank(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
