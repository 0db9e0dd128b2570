package automation

import (
	"fmt"

	"github.com/VantageDataChat/pptassist/office"
)

type table struct {
	shape *shape
}

func (t *table) resolve(sc *scope, root Object) (Object, error) {
	obj, err := t.shape.resolve(sc, root)
	if err != nil {
		return nil, err
	}
	return sc.get(obj, "Table")
}

func readTable[T any](t *table, op string, def T, fn func(sc *scope, tbl Object) (T, error)) T {
	return do(t.shape.app, op, def, func(sc *scope, root Object) (T, error) {
		tbl, err := t.resolve(sc, root)
		if err != nil {
			return def, err
		}
		return fn(sc, tbl)
	})
}

func (t *table) count(op, coll string) int {
	return readTable(t, op, 0, func(sc *scope, tbl Object) (int, error) {
		c, err := sc.get(tbl, coll)
		if err != nil {
			return 0, err
		}
		return getInt(c, "Count")
	})
}

func (t *table) Rows() int { return t.count("table.Rows", "Rows") }

func (t *table) Columns() int { return t.count("table.Columns", "Columns") }

// size reads both dimensions in one walk to the table.
func (t *table) size() (rows, cols int) {
	dims := readTable(t, "table.Size", [2]int{}, func(sc *scope, tbl Object) ([2]int, error) {
		var out [2]int
		for i, coll := range []string{"Rows", "Columns"} {
			c, err := sc.get(tbl, coll)
			if err != nil {
				return [2]int{}, err
			}
			if out[i], err = getInt(c, "Count"); err != nil {
				return [2]int{}, err
			}
		}
		return out, nil
	})
	return dims[0], dims[1]
}

func (t *table) Cell(row, col int) office.Cell {
	if row < 1 || col < 1 {
		return nil
	}
	if rows, cols := t.size(); row > rows || col > cols {
		return nil
	}
	return &cell{table: t, row: row, col: col}
}

func (t *table) ApplyStyle(styleID string) bool {
	if styleID == "" {
		return false
	}
	return t.shape.app.write("table.ApplyStyle", func(sc *scope, root Object) error {
		tbl, err := t.resolve(sc, root)
		if err != nil {
			return err
		}
		return sc.invoke(tbl, "ApplyStyle", styleID, false)
	})
}

// Host property names for TableFlags, in field order.
var flagProps = [6]string{"FirstRow", "LastRow", "HorizBanding", "FirstCol", "LastCol", "VertBanding"}

func flagFields(f *office.TableFlags) [6]*bool {
	return [6]*bool{&f.FirstRow, &f.LastRow, &f.BandRows, &f.FirstColumn, &f.LastColumn, &f.BandColumns}
}

func (t *table) Flags() office.TableFlags {
	return readTable(t, "table.Flags", office.TableFlags{}, func(_ *scope, tbl Object) (office.TableFlags, error) {
		var f office.TableFlags
		for i, dst := range flagFields(&f) {
			v, err := getTriState(tbl, flagProps[i])
			if err != nil {
				return office.TableFlags{}, err
			}
			*dst = v
		}
		return f, nil
	})
}

func (t *table) SetFlags(f office.TableFlags) {
	t.shape.app.write("table.SetFlags", func(sc *scope, root Object) error {
		tbl, err := t.resolve(sc, root)
		if err != nil {
			return err
		}
		for i, v := range flagFields(&f) {
			if err := sc.put(tbl, flagProps[i], triState(*v)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (t *table) Native() any {
	return t.shape.app.native("table.Native", t.resolve)
}

// cell is addressed by 1-based coordinates inside its table.
type cell struct {
	table *table
	row   int
	col   int
}

func (c *cell) resolve(sc *scope, root Object) (Object, error) {
	tbl, err := c.table.resolve(sc, root)
	if err != nil {
		return nil, err
	}
	obj, err := sc.call(tbl, "Cell", c.row, c.col)
	if err != nil {
		return nil, fmt.Errorf("cell (%d,%d): %w", c.row, c.col, err)
	}
	return obj, nil
}

// cellShape resolves the shape that carries the cell's text and fill.
func (c *cell) cellShape(sc *scope, root Object) (Object, error) {
	obj, err := c.resolve(sc, root)
	if err != nil {
		return nil, err
	}
	return sc.get(obj, "Shape")
}

func readCell[T any](c *cell, op string, def T, resolve func(*scope, Object) (Object, error), fn func(sc *scope, obj Object) (T, error)) T {
	return do(c.table.shape.app, op, def, func(sc *scope, root Object) (T, error) {
		obj, err := resolve(sc, root)
		if err != nil {
			return def, err
		}
		return fn(sc, obj)
	})
}

func (c *cell) write(op string, resolve func(*scope, Object) (Object, error), fn func(sc *scope, obj Object) error) {
	c.table.shape.app.write(op, func(sc *scope, root Object) error {
		obj, err := resolve(sc, root)
		if err != nil {
			return err
		}
		return fn(sc, obj)
	})
}

func (c *cell) Row() int    { return c.row }
func (c *cell) Column() int { return c.col }

func (c *cell) Text() string {
	return readCell(c, "cell.Text", "", c.cellShape, func(sc *scope, shp Object) (string, error) {
		rng, err := sc.path(shp, "TextFrame", "TextRange")
		if err != nil {
			return "", err
		}
		return getString(rng, "Text")
	})
}

func (c *cell) SetText(text string) {
	c.write("cell.SetText", c.cellShape, func(sc *scope, shp Object) error {
		rng, err := sc.path(shp, "TextFrame", "TextRange")
		if err != nil {
			return err
		}
		return sc.put(rng, "Text", text)
	})
}

func (c *cell) Font() office.FontStyle {
	return readCell(c, "cell.Font", office.FontStyle{}, c.cellShape, func(sc *scope, shp Object) (office.FontStyle, error) {
		font, err := sc.path(shp, "TextFrame", "TextRange", "Font")
		if err != nil {
			return office.FontStyle{}, err
		}
		var f office.FontStyle
		if f.Name, err = getString(font, "Name"); err != nil {
			return office.FontStyle{}, err
		}
		if f.Size, err = getFloat(font, "Size"); err != nil {
			return office.FontStyle{}, err
		}
		if f.Bold, err = getTriState(font, "Bold"); err != nil {
			return office.FontStyle{}, err
		}
		if f.Italic, err = getTriState(font, "Italic"); err != nil {
			return office.FontStyle{}, err
		}
		if cf, err := sc.get(font, "Color"); err == nil {
			f.Color = readColor(cf)
		}
		return f, nil
	})
}

func (c *cell) SetFont(f office.FontStyle) {
	c.write("cell.SetFont", c.cellShape, func(sc *scope, shp Object) error {
		font, err := sc.path(shp, "TextFrame", "TextRange", "Font")
		if err != nil {
			return err
		}
		return putFont(sc, font, f)
	})
}

// putFont writes the set fields of f; bold and italic are always written.
func putFont(sc *scope, font Object, f office.FontStyle) error {
	if f.Name != "" {
		if err := sc.put(font, "Name", f.Name); err != nil {
			return err
		}
	}
	if f.Size > 0 {
		if err := sc.put(font, "Size", f.Size); err != nil {
			return err
		}
	}
	if err := sc.put(font, "Bold", triState(f.Bold)); err != nil {
		return err
	}
	if err := sc.put(font, "Italic", triState(f.Italic)); err != nil {
		return err
	}
	if !f.Color.Valid {
		return nil
	}
	cf, err := sc.get(font, "Color")
	if err != nil {
		return err
	}
	return putColor(sc, cf, f.Color)
}

func (c *cell) border(sc *scope, root Object, side office.BorderSide) (Object, error) {
	code, ok := borderCodes[side]
	if !ok {
		return nil, fmt.Errorf("border side %d: %w", side, office.ErrUnsupported)
	}
	obj, err := c.resolve(sc, root)
	if err != nil {
		return nil, err
	}
	borders, err := sc.get(obj, "Borders")
	if err != nil {
		return nil, err
	}
	return sc.call(borders, "Item", code)
}

func (c *cell) Border(side office.BorderSide) office.BorderStyle {
	resolve := func(sc *scope, root Object) (Object, error) { return c.border(sc, root, side) }
	return readCell(c, "cell.Border", office.NoBorder(), resolve, func(sc *scope, b Object) (office.BorderStyle, error) {
		visible, err := getTriState(b, "Visible")
		if err != nil {
			return office.NoBorder(), err
		}
		if !visible {
			return office.NoBorder(), nil
		}
		// hosts keep Visible set on borders hidden through transparency
		if t, err := getFloat(b, "Transparency"); err == nil && t >= 1 {
			return office.NoBorder(), nil
		}
		weight, err := getFloat(b, "Weight")
		if err != nil {
			return office.NoBorder(), err
		}
		if weight <= 0 {
			return office.NoBorder(), nil
		}
		out := office.BorderStyle{Visible: true, Weight: weight}
		if dash, err := getInt(b, "DashStyle"); err == nil {
			out.Line = lineStyleOf(dash)
		}
		if fc, err := sc.get(b, "ForeColor"); err == nil {
			out.Color = readColor(fc)
		}
		return out, nil
	})
}

func (c *cell) SetBorder(side office.BorderSide, bs office.BorderStyle) {
	resolve := func(sc *scope, root Object) (Object, error) { return c.border(sc, root, side) }
	c.write("cell.SetBorder", resolve, func(sc *scope, b Object) error {
		if !bs.Visible {
			if err := sc.put(b, "Visible", msoFalse); err != nil {
				return err
			}
			return sc.putOptional(b, "Transparency", 1.0)
		}
		if err := sc.put(b, "Visible", msoTrue); err != nil {
			return err
		}
		if err := sc.put(b, "Weight", bs.Weight); err != nil {
			return err
		}
		if err := sc.put(b, "DashStyle", dashCodes[bs.Line]); err != nil {
			return err
		}
		if bs.Color.Valid {
			fc, err := sc.get(b, "ForeColor")
			if err != nil {
				return err
			}
			if err := putColor(sc, fc, bs.Color); err != nil {
				return err
			}
		}
		// clears a hide left by an earlier write
		return sc.putOptional(b, "Transparency", 0.0)
	})
}

func (c *cell) SetFill(col office.Color) {
	if !col.Valid {
		c.ClearFill()
		return
	}
	c.write("cell.SetFill", c.cellShape, func(sc *scope, shp Object) error {
		fill, err := sc.get(shp, "Fill")
		if err != nil {
			return err
		}
		if err := sc.put(fill, "Visible", msoTrue); err != nil {
			return err
		}
		if err := sc.invoke(fill, "Solid"); err != nil {
			return err
		}
		fc, err := sc.get(fill, "ForeColor")
		if err != nil {
			return err
		}
		return putColor(sc, fc, col)
	})
}

func (c *cell) ClearFill() {
	c.write("cell.ClearFill", c.cellShape, func(sc *scope, shp Object) error {
		fill, err := sc.get(shp, "Fill")
		if err != nil {
			return err
		}
		return sc.put(fill, "Visible", msoFalse)
	})
}

func (c *cell) SetHorizontalAlignment(a office.HAlign) {
	code, ok := alignCodes[a]
	if !ok {
		return
	}
	c.write("cell.SetHorizontalAlignment", c.cellShape, func(sc *scope, shp Object) error {
		pf, err := sc.path(shp, "TextFrame", "TextRange", "ParagraphFormat")
		if err != nil {
			return err
		}
		return sc.put(pf, "Alignment", code)
	})
}

func (c *cell) SetVerticalAlignment(a office.VAlign) {
	code, ok := anchorCodes[a]
	if !ok {
		return
	}
	c.write("cell.SetVerticalAlignment", c.cellShape, func(sc *scope, shp Object) error {
		tf, err := sc.get(shp, "TextFrame")
		if err != nil {
			return err
		}
		return sc.put(tf, "VerticalAnchor", code)
	})
}

func (c *cell) Native() any {
	return c.table.shape.app.native("cell.Native", c.resolve)
}

// readColor converts a ColorFormat. Theme colours win over the resolved RGB.
func readColor(cf Object) office.Color {
	if code, err := getInt(cf, "ObjectThemeColor"); err == nil && code > 0 {
		if t := themeOf(code); t != office.ThemeNone {
			return office.ThemeColorOf(t)
		}
	}
	v, err := getInt(cf, "RGB")
	if err != nil {
		return office.Color{}
	}
	return office.RGBColor(fromBGR(v))
}

func putColor(sc *scope, cf Object, c office.Color) error {
	if c.IsTheme() {
		code, ok := themeCodes[c.Theme]
		if !ok {
			return fmt.Errorf("theme colour %d: %w", c.Theme, office.ErrUnsupported)
		}
		return sc.put(cf, "ObjectThemeColor", code)
	}
	return sc.put(cf, "RGB", toBGR(c.RGB))
}
