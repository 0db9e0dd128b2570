package service

import (
	"strconv"
	"strings"

	"github.com/VantageDataChat/pptassist/config"
	"github.com/VantageDataChat/pptassist/office"
)

// TableFormatOptions describes a full table formatting pass. Nil styles are
// skipped.
type TableFormatOptions struct {
	// StyleID names a host table style applied first; "" skips it.
	StyleID string
	// Flags, when set, replaces the table's emphasis switches.
	Flags *office.TableFlags
	// Header is applied to row 1.
	Header *office.RowStyle
	// Data is applied to rows 2..N.
	Data *office.RowStyle
	// Alternate, when set, is used instead of Data on every second data row.
	Alternate *office.RowStyle
}

// TableFormatService styles tables.
type TableFormatService struct {
	base
	cfg *config.Config
}

// NewTableFormatService returns a service bound to app. A nil cfg uses the
// defaults.
func NewTableFormatService(app office.Application, cfg *config.Config, log office.Logger) *TableFormatService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &TableFormatService{base: newBase(app, log), cfg: cfg}
}

// FormatTable applies opts in order: style, flags, header, data rows, then
// the header and last-row bottom borders once more, since applying a host
// style can reset per-cell borders.
func (s *TableFormatService) FormatTable(table office.Table, opts TableFormatOptions) error {
	const op = "format table"
	if table == nil {
		return office.NewContractError(op, office.ErrNilArgument)
	}
	rows := table.Rows()
	if rows == 0 {
		s.log.Warn("table has no rows", "op", op)
		return nil
	}
	s.beginUndo()

	if opts.StyleID != "" && !table.ApplyStyle(opts.StyleID) {
		s.log.Warn("table style not applied", "style", opts.StyleID)
	}
	if opts.Flags != nil {
		table.SetFlags(*opts.Flags)
	}
	if opts.Header != nil {
		s.applyRow(table, 1, *opts.Header)
	}
	if opts.Data != nil {
		for r := 2; r <= rows; r++ {
			style := *opts.Data
			if opts.Alternate != nil && r%2 == 1 {
				style = *opts.Alternate
			}
			s.applyRow(table, r, style)
		}
	}

	if opts.Header != nil {
		s.setRowBorder(table, 1, office.BorderBottom, opts.Header.Bottom)
	}
	if opts.Data != nil && rows > 1 {
		s.setRowBorder(table, rows, office.BorderBottom, opts.Data.Bottom)
	}
	s.log.Debug("table formatted", "rows", rows, "columns", table.Columns())
	return nil
}

// FormatTableAsThreeLine draws a three-line table: a heavy rule above the
// header, a light rule under it, a heavy rule under the last row and no
// other borders. Text is centred. The rules come from the table settings at
// call time.
func (s *TableFormatService) FormatTableAsThreeLine(table office.Table) error {
	const op = "three-line table"
	if table == nil {
		return office.NewContractError(op, office.ErrNilArgument)
	}
	tc := s.cfg.Table
	heavy, light := tc.HeaderRule(), tc.BodyRule()

	header := office.RowStyle{
		Font:       tc.HeaderFont(),
		Horizontal: office.HAlignCenter,
		Vertical:   office.VAlignMiddle,
		Top:        heavy,
		Bottom:     light,
		Fill:       tc.HeaderFillColor(),
	}
	data := office.RowStyle{
		Font:       s.cfg.TableBodyFont(),
		Horizontal: office.HAlignCenter,
		Vertical:   office.VAlignMiddle,
	}
	opts := TableFormatOptions{
		StyleID: tc.StyleID,
		Flags:   &office.TableFlags{FirstRow: true},
		Header:  &header,
		Data:    &data,
	}
	// The late-bound host's style application fights manual borders.
	if s.app != nil && s.app.Platform() == office.PlatformAutomation {
		opts.StyleID = ""
	}
	if err := s.FormatTable(table, opts); err != nil {
		return err
	}

	rows := table.Rows()
	if rows >= 2 {
		// the header rule is shared with the first data row
		s.setRowBorder(table, 2, office.BorderTop, light)
		s.setRowBorder(table, rows, office.BorderBottom, heavy)
	}
	return nil
}

// SetRowStyle applies style to every cell of a 1-based row. Existing borders
// and background are cleared first, so calling it twice gives the same
// result as calling it once.
func (s *TableFormatService) SetRowStyle(table office.Table, row int, style office.RowStyle) error {
	if table == nil {
		return office.NewContractError("set row style", office.ErrNilArgument)
	}
	if rows := table.Rows(); row < 1 || row > rows {
		s.log.Warn("row out of range", "row", row, "rows", rows)
		return nil
	}
	s.applyRow(table, row, style)
	return nil
}

// FormatNumbers rewrites every numeric cell with a fixed number of decimals
// and right-aligns it. A negative decimals uses the configured default. It
// returns the number of cells rewritten.
func (s *TableFormatService) FormatNumbers(table office.Table, decimals int) (int, error) {
	if table == nil {
		return 0, office.NewContractError("format numbers", office.ErrNilArgument)
	}
	if decimals < 0 {
		decimals = s.cfg.Table.DecimalPlaces
	}
	n := 0
	rows, cols := table.Rows(), table.Columns()
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			cell := table.Cell(r, c)
			if cell == nil {
				continue
			}
			text, ok := formatNumber(cell.Text(), decimals)
			if !ok {
				continue
			}
			cell.SetText(text)
			cell.SetHorizontalAlignment(office.HAlignRight)
			n++
		}
	}
	s.log.Debug("numbers formatted", "cells", n, "decimals", decimals)
	return n, nil
}

// formatNumber parses text such as "1,234.5" or "12%" and prints it with the
// given decimals, keeping grouping and the percent sign.
func formatNumber(text string, decimals int) (string, bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", false
	}
	percent := strings.HasSuffix(t, "%")
	t = strings.TrimSuffix(t, "%")
	grouped := strings.Contains(t, ",")
	v, err := strconv.ParseFloat(strings.ReplaceAll(t, ",", ""), 64)
	if err != nil {
		return "", false
	}
	out := strconv.FormatFloat(v, 'f', decimals, 64)
	if grouped {
		out = group(out)
	}
	if percent {
		out += "%"
	}
	return out, true
}

// group inserts thousands separators into a plain decimal string.
func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := sign + b.String()
	if hasFrac {
		out += "." + frac
	}
	return out
}

// applyRow resets and styles every cell of row.
func (s *TableFormatService) applyRow(table office.Table, row int, style office.RowStyle) {
	cols := table.Columns()
	for c := 1; c <= cols; c++ {
		cell := table.Cell(row, c)
		if cell == nil {
			continue
		}
		for _, side := range office.AllBorderSides {
			cell.SetBorder(side, office.NoBorder())
		}
		cell.ClearFill()

		cell.SetFont(style.Font)
		cell.SetHorizontalAlignment(style.Horizontal)
		cell.SetVerticalAlignment(style.Vertical)
		for _, side := range office.AllBorderSides {
			if b := style.Border(side); b.Visible {
				cell.SetBorder(side, s.border(b))
			}
		}
		if style.Fill.Valid {
			cell.SetFill(style.Fill)
		}
	}
}

func (s *TableFormatService) setRowBorder(table office.Table, row int, side office.BorderSide, b office.BorderStyle) {
	b = s.border(b)
	cols := table.Columns()
	for c := 1; c <= cols; c++ {
		if cell := table.Cell(row, c); cell != nil {
			cell.SetBorder(side, b)
		}
	}
}

// border downgrades dashed lines to solid on hosts without advanced borders.
func (s *TableFormatService) border(b office.BorderStyle) office.BorderStyle {
	if !b.Visible {
		return office.NoBorder()
	}
	if b.Line != office.LineSolid && (s.app == nil || !s.app.IsFeatureSupported(office.FeatureTableAdvancedBorder)) {
		s.log.Debug("dashed borders unsupported, drawing solid", "line", int(b.Line))
		b.Line = office.LineSolid
	}
	return b
}
