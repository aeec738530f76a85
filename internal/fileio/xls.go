// Legacy .xls reader: the table width is fixed by probing, not by Row.LastCol().
package fileio

import (
	"bytes"
	"errors"
	"io"
	"strings"

	xls "github.com/extrame/xls"
)

// cellSource is the part of *xls.WorkSheet the grid reader needs.
type cellSource interface {
	lastRow() int
	cell(row, col int) string // "" when the row or cell is missing
}

type worksheet struct{ ws *xls.WorkSheet }

func (w worksheet) lastRow() int { return int(w.ws.MaxRow) }

func (w worksheet) cell(row, col int) string {
	r := w.ws.Row(row)
	if r == nil {
		return ""
	}
	return r.Col(col)
}

// probeMax bounds the width probe; Row.LastCol() is unreliable on files
// written by older tools.
const probeMax = 512

// computeMaxCols returns the rightmost non-empty column over all rows + 1.
func computeMaxCols(src cellSource) int {
	maxCols := 0
	for i := 0; i <= src.lastRow(); i++ {
		for j := probeMax - 1; j >= maxCols; j-- {
			if strings.TrimSpace(cleanCell(src.cell(i, j))) != "" {
				maxCols = j + 1
				break
			}
		}
	}
	return max(maxCols, 1)
}

// sheetGrid reads every row up to the probed width.
func sheetGrid(src cellSource) [][]string {
	maxCols := computeMaxCols(src)
	rows := make([][]string, 0, src.lastRow()+1)
	for i := 0; i <= src.lastRow(); i++ {
		cols := make([]string, maxCols)
		for j := range cols {
			cols[j] = cleanCell(src.cell(i, j))
		}
		rows = append(rows, cols)
	}
	return rows
}

// cleanCell drops the NUL padding some writers leave in BIFF strings.
func cleanCell(s string) string {
	return strings.TrimRight(s, "\x00")
}

func readXLS(r io.Reader) ([][][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// BIFF strings from older tools are often not UTF-8
	var wb *xls.WorkBook
	tryCharsets := []string{"utf-8", "windows-1252", "windows-1251"}
	var lastErr error
	for _, ch := range tryCharsets {
		wb, err = xls.OpenReader(bytes.NewReader(b), ch)
		if err == nil && wb != nil {
			lastErr = nil
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return nil, lastErr
	}

	var sheets [][][]string
	for i := 0; i < wb.NumSheets(); i++ {
		if ws := wb.GetSheet(i); ws != nil {
			sheets = append(sheets, sheetGrid(worksheet{ws}))
		}
	}
	return sheets, nil
}
