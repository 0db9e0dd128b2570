package document

import (
	"fmt"
	"regexp"

	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
)

// Table style ids are GUIDs in braces.
var styleIDPattern = regexp.MustCompile(`^\{[0-9A-Fa-f]{8}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{12}\}$`)

type table struct {
	shape *shape
}

func (t *table) model() (*pptx.TableShape, error) {
	m, err := t.shape.resolve()
	if err != nil {
		return nil, err
	}
	tbl, ok := m.(*pptx.TableShape)
	if !ok {
		return nil, fmt.Errorf("%T is not a table: %w", m, office.ErrStale)
	}
	return tbl, nil
}

func readTable[T any](t *table, op string, def T, fn func(*pptx.TableShape) (T, error)) T {
	return office.Read(t.shape.app.log, op, def, func() (T, error) {
		m, err := t.model()
		if err != nil {
			return def, err
		}
		return fn(m)
	})
}

func (t *table) Rows() int {
	return readTable(t, "table.Rows", 0, func(m *pptx.TableShape) (int, error) {
		return m.GetNumRows(), nil
	})
}

func (t *table) Columns() int {
	return readTable(t, "table.Columns", 0, func(m *pptx.TableShape) (int, error) {
		return m.GetNumCols(), nil
	})
}

func (t *table) Cell(row, col int) office.Cell {
	ok := readTable(t, "table.Cell", false, func(m *pptx.TableShape) (bool, error) {
		return m.GetCell(row-1, col-1) != nil, nil
	})
	if !ok {
		return nil
	}
	return &cell{table: t, row: row, col: col}
}

func (t *table) ApplyStyle(styleID string) bool {
	if !styleIDPattern.MatchString(styleID) {
		t.shape.app.log.Warn("table style id rejected", "style", styleID)
		return false
	}
	return office.Write(t.shape.app.log, "table.ApplyStyle", func() error {
		m, err := t.model()
		if err != nil {
			return err
		}
		m.SetStyleID(styleID)
		return nil
	})
}

func (t *table) Flags() office.TableFlags {
	return readTable(t, "table.Flags", office.TableFlags{}, func(m *pptx.TableShape) (office.TableFlags, error) {
		return fromModelFlags(m.GetFlags()), nil
	})
}

func (t *table) SetFlags(f office.TableFlags) {
	office.Write(t.shape.app.log, "table.SetFlags", func() error {
		m, err := t.model()
		if err != nil {
			return err
		}
		m.SetFlags(toModelFlags(f))
		return nil
	})
}

func (t *table) Native() any {
	m, err := t.model()
	if err != nil {
		return nil
	}
	return m
}

// cell is addressed by its 1-based coordinates and resolved through the
// table on every call.
type cell struct {
	table    *table
	row, col int
}

func (c *cell) model() (*pptx.TableCell, error) {
	tbl, err := c.table.model()
	if err != nil {
		return nil, err
	}
	m := tbl.GetCell(c.row-1, c.col-1)
	if m == nil {
		return nil, fmt.Errorf("cell (%d,%d): %w", c.row, c.col, office.ErrStale)
	}
	return m, nil
}

func readCell[T any](c *cell, op string, def T, fn func(*pptx.TableCell) (T, error)) T {
	return office.Read(c.table.shape.app.log, op, def, func() (T, error) {
		m, err := c.model()
		if err != nil {
			return def, err
		}
		return fn(m)
	})
}

func (c *cell) write(op string, fn func(*pptx.TableCell)) {
	office.Write(c.table.shape.app.log, op, func() error {
		m, err := c.model()
		if err != nil {
			return err
		}
		fn(m)
		return nil
	})
}

func (c *cell) Row() int    { return c.row }
func (c *cell) Column() int { return c.col }

func (c *cell) Text() string {
	return readCell(c, "cell.Text", "", func(m *pptx.TableCell) (string, error) {
		return m.GetText(), nil
	})
}

func (c *cell) SetText(text string) {
	c.write("cell.SetText", func(m *pptx.TableCell) { m.SetText(text) })
}

func (c *cell) Font() office.FontStyle {
	return readCell(c, "cell.Font", office.FontStyle{}, func(m *pptx.TableCell) (office.FontStyle, error) {
		return fromModelFont(m.GetFont()), nil
	})
}

// SetFont merges f into the cell font and into every run.
func (c *cell) SetFont(f office.FontStyle) {
	c.write("cell.SetFont", func(m *pptx.TableCell) {
		base := m.GetFont().Clone()
		applyFont(base, f)
		m.SetFont(base)
	})
}

func (c *cell) Border(side office.BorderSide) office.BorderStyle {
	return readCell(c, "cell.Border", office.NoBorder(), func(m *pptx.TableCell) (office.BorderStyle, error) {
		return fromModelBorder(*borderSlot(m.GetBorders(), side)), nil
	})
}

func (c *cell) SetBorder(side office.BorderSide, b office.BorderStyle) {
	c.write("cell.SetBorder", func(m *pptx.TableCell) {
		*borderSlot(m.GetBorders(), side) = toModelBorder(b)
	})
}

func borderSlot(b *pptx.CellBorders, side office.BorderSide) **pptx.Border {
	switch side {
	case office.BorderTop:
		return &b.Top
	case office.BorderLeft:
		return &b.Left
	case office.BorderBottom:
		return &b.Bottom
	default:
		return &b.Right
	}
}

// SetFill paints a solid background; the zero Color clears it.
func (c *cell) SetFill(col office.Color) {
	c.write("cell.SetFill", func(m *pptx.TableCell) {
		mc, ok := toModelColor(col, 0xFF)
		if !ok {
			m.ClearFill()
			return
		}
		m.SetFill(pptx.NewFill().SetSolid(mc))
	})
}

func (c *cell) ClearFill() {
	c.write("cell.ClearFill", func(m *pptx.TableCell) { m.ClearFill() })
}

func (c *cell) SetHorizontalAlignment(a office.HAlign) {
	c.write("cell.SetHorizontalAlignment", func(m *pptx.TableCell) {
		if h, ok := hAligns[a]; ok {
			m.SetHorizontalAlignment(h)
		}
	})
}

func (c *cell) SetVerticalAlignment(a office.VAlign) {
	c.write("cell.SetVerticalAlignment", func(m *pptx.TableCell) {
		if v, ok := vAligns[a]; ok {
			m.SetAnchor(v)
		}
	})
}

func (c *cell) Native() any {
	m, err := c.model()
	if err != nil {
		return nil
	}
	return m
}
