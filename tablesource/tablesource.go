// Package tablesource imports spreadsheet ranges into presentation tables.
package tablesource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/VantageDataChat/pptassist/office"
)

var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrEmptyRange    = errors.New("range holds no data")
)

// ReadRange returns the cell text of a rectangular range such as "A1:C4".
// An empty sheet name reads the first sheet; an empty range reads every
// used row. Rows are padded to the same width.
func ReadRange(path, sheet, cellRange string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if idx == -1 {
		return nil, fmt.Errorf("%q: %w", sheet, ErrSheetNotFound)
	}

	if cellRange == "" {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read rows: %w", err)
		}
		return rectangular(trimEmpty(rows))
	}

	c1, r1, c2, r2, err := parseRange(cellRange)
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, r2-r1+1)
	for r := r1; r <= r2; r++ {
		row := make([]string, 0, c2-c1+1)
		for c := c1; c <= c2; c++ {
			name, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return nil, err
			}
			v, err := f.GetCellValue(sheet, name)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", name, err)
			}
			row = append(row, v)
		}
		out = append(out, row)
	}
	return rectangular(out)
}

// parseRange returns the 1-based corners of "A1:C4" in column, row order.
func parseRange(s string) (c1, r1, c2, r2 int, err error) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q", s)
	}
	c1, r1, err = excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: %w", s, err)
	}
	c2, r2, err = excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return c1, r1, c2, r2, nil
}

// trimEmpty drops trailing rows without text.
func trimEmpty(rows [][]string) [][]string {
	for len(rows) > 0 {
		last := rows[len(rows)-1]
		if strings.TrimSpace(strings.Join(last, "")) != "" {
			break
		}
		rows = rows[:len(rows)-1]
	}
	return rows
}

func rectangular(rows [][]string) ([][]string, error) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	if len(rows) == 0 || width == 0 {
		return nil, ErrEmptyRange
	}
	for i, r := range rows {
		for len(r) < width {
			r = append(r, "")
		}
		rows[i] = r
	}
	return rows, nil
}

// Fill writes data into table, starting at the first cell. Values outside
// the table are dropped; it returns the number of cells written.
func Fill(table office.Table, data [][]string) (int, error) {
	if table == nil {
		return 0, office.NewContractError("fill table", office.ErrNilArgument)
	}
	rows, cols := table.Rows(), table.Columns()
	n := 0
	for r := 0; r < len(data) && r < rows; r++ {
		for c := 0; c < len(data[r]) && c < cols; c++ {
			cell := table.Cell(r+1, c+1)
			if cell == nil {
				continue
			}
			cell.SetText(data[r][c])
			n++
		}
	}
	return n, nil
}

// Size returns the row and column count of data.
func Size(data [][]string) (rows, cols int) {
	for _, r := range data {
		cols = max(cols, len(r))
	}
	return len(data), cols
}
