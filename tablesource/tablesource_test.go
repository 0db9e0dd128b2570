package tablesource

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/VantageDataChat/pptassist/host/document"
	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Sales")
	require.NoError(t, err)
	rows := [][]any{
		{"Region", "Q1", "Q2"},
		{"North", 120.5, 130},
		{"South", 98, nil},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sales", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadRange(t *testing.T) {
	path := writeWorkbook(t)

	data, err := ReadRange(path, "Sales", "A1:C3")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Region", "Q1", "Q2"},
		{"North", "120.5", "130"},
		{"South", "98", ""},
	}, data)

	data, err = ReadRange(path, "Sales", "c3:b2")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"120.5", "130"}, {"98", ""}}, data, "corners are normalised")

	data, err = ReadRange(path, "Sales", "")
	require.NoError(t, err)
	rows, cols := Size(data)
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
}

func TestReadRangeErrors(t *testing.T) {
	path := writeWorkbook(t)

	_, err := ReadRange(path, "Missing", "A1:B2")
	assert.ErrorIs(t, err, ErrSheetNotFound)

	_, err = ReadRange(path, "Sales", "A1:??")
	assert.ErrorContains(t, err, "invalid range")

	_, err = ReadRange(path, "", "")
	assert.ErrorIs(t, err, ErrEmptyRange, "first sheet is the empty default sheet")

	_, err = ReadRange(filepath.Join(t.TempDir(), "none.xlsx"), "", "")
	assert.ErrorContains(t, err, "open workbook")
}

func TestFill(t *testing.T) {
	app, err := document.New(pptx.New(), "")
	require.NoError(t, err)
	shape := app.ActivePresentation().Slide(1).AddTable(2, 2, office.NewShapeRect(0, 0, 200, 80))
	require.NotNil(t, shape)
	table := shape.Table()

	n, err := Fill(table, [][]string{{"a", "b", "dropped"}, {"c"}, {"dropped"}})

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "a", table.Cell(1, 1).Text())
	assert.Equal(t, "b", table.Cell(1, 2).Text())
	assert.Equal(t, "c", table.Cell(2, 1).Text())
	assert.Equal(t, "", table.Cell(2, 2).Text())

	_, err = Fill(nil, nil)
	assert.ErrorIs(t, err, office.ErrNilArgument)
}
