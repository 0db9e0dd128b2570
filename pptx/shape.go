package pptx

import (
	"strings"
)

// Shape is the interface that all shapes implement.
type Shape interface {
	GetType() ShapeType
	GetID() int
	GetOffsetX() int64
	GetOffsetY() int64
	GetWidth() int64
	GetHeight() int64
	GetName() string
	GetRotation() int
	IsHidden() bool
	SetName(n string) *BaseShape
	SetPosition(x, y int64) *BaseShape
	SetSize(w, h int64) *BaseShape
	// base returns the underlying BaseShape (unexported, internal use only).
	base() *BaseShape
}

// ShapeType represents the type of shape.
type ShapeType int

const (
	ShapeTypeRichText ShapeType = iota
	ShapeTypeDrawing
	ShapeTypeTable
	ShapeTypeAutoShape
	ShapeTypeLine
	ShapeTypeGroup
	ShapeTypePlaceholder
)

// BaseShape contains common shape properties.
type BaseShape struct {
	id             int
	name           string
	description    string
	hidden         bool
	offsetX        int64 // in EMU
	offsetY        int64 // in EMU
	width          int64 // in EMU
	height         int64 // in EMU
	rotation       int   // in degrees
	flipHorizontal bool
	flipVertical   bool
	fill           *Fill
	border         *Border
	shadow         *Shadow
}

func (b *BaseShape) GetID() int        { return b.id }
func (b *BaseShape) GetOffsetX() int64 { return b.offsetX }
func (b *BaseShape) GetOffsetY() int64 { return b.offsetY }
func (b *BaseShape) GetWidth() int64   { return b.width }
func (b *BaseShape) GetHeight() int64  { return b.height }
func (b *BaseShape) GetName() string   { return b.name }
func (b *BaseShape) GetRotation() int  { return b.rotation }
func (b *BaseShape) base() *BaseShape  { return b }

func (b *BaseShape) SetOffsetX(x int64) *BaseShape { b.offsetX = x; return b }
func (b *BaseShape) SetOffsetY(y int64) *BaseShape { b.offsetY = y; return b }
func (b *BaseShape) SetWidth(w int64) *BaseShape   { b.width = w; return b }
func (b *BaseShape) SetHeight(h int64) *BaseShape  { b.height = h; return b }
func (b *BaseShape) SetName(n string) *BaseShape   { b.name = n; return b }
func (b *BaseShape) SetRotation(r int) *BaseShape  { b.rotation = ((r % 360) + 360) % 360; return b }

// SetPosition sets both offset X and Y in EMU.
func (b *BaseShape) SetPosition(x, y int64) *BaseShape {
	b.offsetX = x
	b.offsetY = y
	return b
}

// SetSize sets both width and height in EMU. Negative values are clamped to 0.
func (b *BaseShape) SetSize(w, h int64) *BaseShape {
	b.width = max(w, 0)
	b.height = max(h, 0)
	return b
}

// SetFlipHorizontal controls horizontal flipping.
func (b *BaseShape) SetFlipHorizontal(flip bool) *BaseShape {
	b.flipHorizontal = flip
	return b
}

// GetFlipHorizontal returns whether the shape is flipped horizontally.
func (b *BaseShape) GetFlipHorizontal() bool { return b.flipHorizontal }

// SetFlipVertical controls vertical flipping.
func (b *BaseShape) SetFlipVertical(flip bool) *BaseShape {
	b.flipVertical = flip
	return b
}

// GetFlipVertical returns whether the shape is flipped vertically.
func (b *BaseShape) GetFlipVertical() bool { return b.flipVertical }

func (b *BaseShape) GetDescription() string  { return b.description }
func (b *BaseShape) SetDescription(d string) { b.description = d }

// IsHidden reports whether the shape is hidden on the slide.
func (b *BaseShape) IsHidden() bool       { return b.hidden }
func (b *BaseShape) SetHidden(hidden bool) { b.hidden = hidden }

func (b *BaseShape) GetFill() *Fill {
	if b.fill == nil {
		b.fill = NewFill()
	}
	return b.fill
}

func (b *BaseShape) SetFill(f *Fill) { b.fill = f }

func (b *BaseShape) GetBorder() *Border {
	if b.border == nil {
		b.border = NewBorder()
	}
	return b.border
}

func (b *BaseShape) SetBorder(border *Border) { b.border = border }

func (b *BaseShape) GetShadow() *Shadow {
	if b.shadow == nil {
		b.shadow = NewShadow()
	}
	return b.shadow
}

func (b *BaseShape) SetShadow(s *Shadow) { b.shadow = s }

// TextAnchorType represents the text anchoring type within a shape.
type TextAnchorType string

const (
	TextAnchorTop    TextAnchorType = "t"
	TextAnchorMiddle TextAnchorType = "ctr"
	TextAnchorBottom TextAnchorType = "b"
	TextAnchorNone   TextAnchorType = ""
)

// RichTextShape represents a text box.
type RichTextShape struct {
	BaseShape
	paragraphs      []*Paragraph
	activeParagraph int
	wordWrap        bool
	textAnchor      TextAnchorType
	columns         int
}

func (r *RichTextShape) GetType() ShapeType { return ShapeTypeRichText }

// NewRichTextShape creates a new rich text shape.
func NewRichTextShape() *RichTextShape {
	return &RichTextShape{
		paragraphs: []*Paragraph{NewParagraph()},
		wordWrap:   true,
		columns:    1,
	}
}

// GetActiveParagraph returns the active paragraph.
func (r *RichTextShape) GetActiveParagraph() *Paragraph {
	if len(r.paragraphs) == 0 {
		r.paragraphs = append(r.paragraphs, NewParagraph())
		r.activeParagraph = 0
	}
	return r.paragraphs[r.activeParagraph]
}

// CreateParagraph creates a new paragraph and makes it active.
func (r *RichTextShape) CreateParagraph() *Paragraph {
	p := NewParagraph()
	r.paragraphs = append(r.paragraphs, p)
	r.activeParagraph = len(r.paragraphs) - 1
	return p
}

// GetParagraphs returns all paragraphs.
func (r *RichTextShape) GetParagraphs() []*Paragraph {
	return r.paragraphs
}

// CreateTextRun creates a text run in the active paragraph.
func (r *RichTextShape) CreateTextRun(text string) *TextRun {
	return r.GetActiveParagraph().CreateTextRun(text)
}

// SetText replaces the content with a single paragraph, keeping the
// first run's font.
func (r *RichTextShape) SetText(text string) {
	r.paragraphs = replaceText(r.paragraphs, text)
	r.activeParagraph = 0
}

// GetText returns the text of all paragraphs joined by newlines.
func (r *RichTextShape) GetText() string {
	return paragraphsText(r.paragraphs)
}

// SetWordWrap sets word wrap.
func (r *RichTextShape) SetWordWrap(wrap bool) { r.wordWrap = wrap }

// GetWordWrap returns word wrap setting.
func (r *RichTextShape) GetWordWrap() bool { return r.wordWrap }

// SetColumns sets the number of text columns.
func (r *RichTextShape) SetColumns(cols int) { r.columns = cols }

// GetColumns returns the number of text columns.
func (r *RichTextShape) GetColumns() int { return r.columns }

// SetTextAnchor sets the vertical position of text within the shape.
func (r *RichTextShape) SetTextAnchor(anchor TextAnchorType) { r.textAnchor = anchor }

// GetTextAnchor returns the text anchoring type.
func (r *RichTextShape) GetTextAnchor() TextAnchorType { return r.textAnchor }

// Paragraph represents a text paragraph.
type Paragraph struct {
	elements  []ParagraphElement
	alignment *Alignment
}

// ParagraphElement is the interface for paragraph content.
type ParagraphElement interface {
	GetElementType() string
}

// NewParagraph creates a new paragraph.
func NewParagraph() *Paragraph {
	return &Paragraph{
		elements:  make([]ParagraphElement, 0),
		alignment: NewAlignment(),
	}
}

// GetAlignment returns the paragraph alignment.
func (p *Paragraph) GetAlignment() *Alignment {
	if p.alignment == nil {
		p.alignment = NewAlignment()
	}
	return p.alignment
}

// SetAlignment sets the paragraph alignment.
func (p *Paragraph) SetAlignment(a *Alignment) { p.alignment = a }

// GetElements returns all paragraph elements.
func (p *Paragraph) GetElements() []ParagraphElement { return p.elements }

// CreateTextRun creates a new text run.
func (p *Paragraph) CreateTextRun(text string) *TextRun {
	tr := &TextRun{text: text, font: NewFont()}
	p.elements = append(p.elements, tr)
	return tr
}

// CreateBreak creates a line break element.
func (p *Paragraph) CreateBreak() *BreakElement {
	br := &BreakElement{}
	p.elements = append(p.elements, br)
	return br
}

// GetText returns the concatenated run text; breaks become newlines.
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case *TextRun:
			sb.WriteString(e.text)
		case *BreakElement:
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// firstRun returns the first text run, or nil.
func (p *Paragraph) firstRun() *TextRun {
	for _, elem := range p.elements {
		if tr, ok := elem.(*TextRun); ok {
			return tr
		}
	}
	return nil
}

// TextRun represents a run of text with formatting.
type TextRun struct {
	text string
	font *Font
}

func (tr *TextRun) GetElementType() string { return "textrun" }

// GetText returns the text content.
func (tr *TextRun) GetText() string { return tr.text }

// SetText sets the text content.
func (tr *TextRun) SetText(text string) { tr.text = text }

// GetFont returns the font properties.
func (tr *TextRun) GetFont() *Font {
	if tr.font == nil {
		tr.font = NewFont()
	}
	return tr.font
}

// SetFont sets the font properties.
func (tr *TextRun) SetFont(f *Font) { tr.font = f }

// BreakElement represents a line break.
type BreakElement struct{}

func (br *BreakElement) GetElementType() string { return "break" }

// paragraphsText joins paragraph texts with newlines.
func paragraphsText(paragraphs []*Paragraph) string {
	parts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		parts = append(parts, p.GetText())
	}
	return strings.Join(parts, "\n")
}

// replaceText builds the paragraphs for text, one per line, carrying over
// the alignment of the first old paragraph and the font of its first run.
func replaceText(old []*Paragraph, text string) []*Paragraph {
	font := NewFont()
	align := NewAlignment()
	if len(old) > 0 {
		if old[0].alignment != nil {
			a := *old[0].alignment
			align = &a
		}
		if tr := old[0].firstRun(); tr != nil {
			font = tr.GetFont().Clone()
		}
	}
	lines := strings.Split(text, "\n")
	out := make([]*Paragraph, 0, len(lines))
	for _, line := range lines {
		p := NewParagraph()
		a := *align
		p.alignment = &a
		if line != "" {
			p.CreateTextRun(line).SetFont(font.Clone())
		}
		out = append(out, p)
	}
	return out
}

// DrawingShape represents an embedded picture.
type DrawingShape struct {
	BaseShape
	data     []byte
	mimeType string
}

func (d *DrawingShape) GetType() ShapeType { return ShapeTypeDrawing }

// NewDrawingShape creates a new drawing shape.
func NewDrawingShape() *DrawingShape {
	return &DrawingShape{}
}

// SetImageData sets the raw image data.
func (d *DrawingShape) SetImageData(data []byte, mimeType string) *DrawingShape {
	d.data = data
	d.mimeType = mimeType
	return d
}

// GetImageData returns the raw image data.
func (d *DrawingShape) GetImageData() []byte { return d.data }

// GetMimeType returns the image MIME type.
func (d *DrawingShape) GetMimeType() string { return d.mimeType }

// guessMimeFromPath guesses the MIME type from a file extension.
func guessMimeFromPath(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".bmp"):
		return "image/bmp"
	default:
		return "image/png"
	}
}

// AutoShape represents a preset geometry (rectangle, ellipse, ...) with
// optional text.
type AutoShape struct {
	BaseShape
	shapeType    AutoShapeType
	paragraphs   []*Paragraph
	textAnchor   TextAnchorType
	adjustValues map[string]int // avLst adjustment values (e.g. "adj" -> 16667)
}

// AutoShapeType is a preset geometry name.
type AutoShapeType string

const (
	AutoShapeRectangle   AutoShapeType = "rect"
	AutoShapeRoundedRect AutoShapeType = "roundRect"
	AutoShapeEllipse     AutoShapeType = "ellipse"
	AutoShapeTriangle    AutoShapeType = "triangle"
	AutoShapeDiamond     AutoShapeType = "diamond"
)

func (a *AutoShape) GetType() ShapeType { return ShapeTypeAutoShape }

// NewAutoShape creates a new rectangle.
func NewAutoShape() *AutoShape {
	return &AutoShape{shapeType: AutoShapeRectangle}
}

// SetAutoShapeType sets the preset geometry.
func (a *AutoShape) SetAutoShapeType(t AutoShapeType) *AutoShape {
	a.shapeType = t
	return a
}

// GetAutoShapeType returns the preset geometry.
func (a *AutoShape) GetAutoShapeType() AutoShapeType { return a.shapeType }

// SetSolidFill sets a solid fill on the auto shape.
func (a *AutoShape) SetSolidFill(c Color) *AutoShape {
	a.GetFill().SetSolid(c)
	return a
}

// SetText replaces the text content.
func (a *AutoShape) SetText(text string) *AutoShape {
	if text == "" {
		a.paragraphs = nil
		return a
	}
	a.paragraphs = replaceText(a.paragraphs, text)
	return a
}

// GetText returns the text content.
func (a *AutoShape) GetText() string { return paragraphsText(a.paragraphs) }

// GetParagraphs returns the text paragraphs (if any).
func (a *AutoShape) GetParagraphs() []*Paragraph { return a.paragraphs }

// CreateParagraph appends a paragraph.
func (a *AutoShape) CreateParagraph() *Paragraph {
	p := NewParagraph()
	a.paragraphs = append(a.paragraphs, p)
	return p
}

// SetTextAnchor sets the vertical text anchor.
func (a *AutoShape) SetTextAnchor(anchor TextAnchorType) { a.textAnchor = anchor }

// GetTextAnchor returns the vertical text anchor.
func (a *AutoShape) GetTextAnchor() TextAnchorType { return a.textAnchor }

// SetAdjustValue sets a geometry guide such as "adj" for the corner radius
// of a rounded rectangle (in 1/100000 of the shorter side).
func (a *AutoShape) SetAdjustValue(name string, v int) *AutoShape {
	if a.adjustValues == nil {
		a.adjustValues = make(map[string]int)
	}
	a.adjustValues[name] = v
	return a
}

// GetAdjustValues returns the adjustment values map.
func (a *AutoShape) GetAdjustValues() map[string]int { return a.adjustValues }

// LineShape represents a straight connector.
type LineShape struct {
	BaseShape
	lineStyle BorderStyle
	lineWidth int64 // EMU
	lineColor Color
}

func (l *LineShape) GetType() ShapeType { return ShapeTypeLine }

// NewLineShape creates a new 1pt solid black line.
func NewLineShape() *LineShape {
	return &LineShape{
		lineStyle: BorderSolid,
		lineWidth: emuPerPoint,
		lineColor: ColorBlack,
	}
}

// SetLineStyle sets the line style.
func (l *LineShape) SetLineStyle(s BorderStyle) *LineShape {
	l.lineStyle = s
	return l
}

// GetLineStyle returns the line style.
func (l *LineShape) GetLineStyle() BorderStyle { return l.lineStyle }

// SetLineWidth sets the line width in EMU.
func (l *LineShape) SetLineWidth(w int64) *LineShape {
	l.lineWidth = w
	return l
}

// GetLineWidth returns the line width in EMU.
func (l *LineShape) GetLineWidth() int64 { return l.lineWidth }

// SetLineColor sets the line color.
func (l *LineShape) SetLineColor(c Color) *LineShape {
	l.lineColor = c
	return l
}

// GetLineColor returns the line color.
func (l *LineShape) GetLineColor() Color { return l.lineColor }

// TableFlags are the emphasis switches stored on <a:tblPr>.
type TableFlags struct {
	FirstRow bool
	LastRow  bool
	BandRow  bool
	FirstCol bool
	LastCol  bool
	BandCol  bool
}

// TableShape represents a table graphic frame.
type TableShape struct {
	BaseShape
	rows       [][]*TableCell
	numRows    int
	numCols    int
	colWidths  []int64 // from gridCol; empty means equal columns
	rowHeights []int64
	styleID    string
	flags      TableFlags
}

func (t *TableShape) GetType() ShapeType { return ShapeTypeTable }

// NewTableShape creates a new table shape with empty cells.
func NewTableShape(rows, cols int) *TableShape {
	rows, cols = max(rows, 0), max(cols, 0)
	table := &TableShape{
		numRows: rows,
		numCols: cols,
		rows:    make([][]*TableCell, rows),
		flags:   TableFlags{FirstRow: true, BandRow: true},
	}
	for i := 0; i < rows; i++ {
		table.rows[i] = make([]*TableCell, cols)
		for j := 0; j < cols; j++ {
			table.rows[i][j] = NewTableCell()
		}
	}
	return table
}

// GetCell returns the 0-based cell, or nil outside the table.
func (t *TableShape) GetCell(row, col int) *TableCell {
	if row < 0 || row >= t.numRows || col < 0 || col >= t.numCols {
		return nil
	}
	return t.rows[row][col]
}

// GetRows returns all rows.
func (t *TableShape) GetRows() [][]*TableCell { return t.rows }

// GetNumRows returns the number of rows.
func (t *TableShape) GetNumRows() int { return t.numRows }

// GetNumCols returns the number of columns.
func (t *TableShape) GetNumCols() int { return t.numCols }

// GetStyleID returns the table style GUID, "" when none.
func (t *TableShape) GetStyleID() string { return t.styleID }

// SetStyleID sets the table style GUID.
func (t *TableShape) SetStyleID(id string) { t.styleID = id }

// GetFlags returns the table emphasis flags.
func (t *TableShape) GetFlags() TableFlags { return t.flags }

// SetFlags replaces the table emphasis flags.
func (t *TableShape) SetFlags(f TableFlags) { t.flags = f }

// columnWidth returns the width of column j in EMU.
func (t *TableShape) columnWidth(j int) int64 {
	if len(t.colWidths) == t.numCols && j < len(t.colWidths) {
		return t.colWidths[j]
	}
	if t.numCols == 0 {
		return 0
	}
	return t.width / int64(t.numCols)
}

// rowHeight returns the height of row i in EMU.
func (t *TableShape) rowHeight(i int) int64 {
	if len(t.rowHeights) == t.numRows && i < len(t.rowHeights) {
		return t.rowHeights[i]
	}
	if t.numRows == 0 {
		return 0
	}
	return t.height / int64(t.numRows)
}

// TableCell represents a table cell.
type TableCell struct {
	paragraphs []*Paragraph
	font       *Font // used when the cell has no runs
	fill       *Fill
	noFill     bool // explicit <a:noFill/>, overriding the table style
	border     *CellBorders
	anchor     VerticalAlignment
	colSpan    int
	rowSpan    int
	hMerge     bool
	vMerge     bool
}

// CellBorders holds the four edges of a table cell.
type CellBorders struct {
	Top    *Border
	Bottom *Border
	Left   *Border
	Right  *Border
}

// NewTableCell creates a new table cell whose borders follow the table style.
func NewTableCell() *TableCell {
	return &TableCell{
		paragraphs: []*Paragraph{NewParagraph()},
		font:       NewFont(),
		fill:       NewFill(),
		border: &CellBorders{
			Top:    &Border{},
			Bottom: &Border{},
			Left:   &Border{},
			Right:  &Border{},
		},
		colSpan: 1,
		rowSpan: 1,
	}
}

// SetText replaces the cell text, keeping the cell font and alignment.
func (tc *TableCell) SetText(text string) *TableCell {
	font := tc.GetFont().Clone()
	tc.paragraphs = replaceText(tc.paragraphs, text)
	for _, p := range tc.paragraphs {
		for _, elem := range p.elements {
			if tr, ok := elem.(*TextRun); ok {
				tr.font = font.Clone()
			}
		}
	}
	return tc
}

// GetText returns the cell text.
func (tc *TableCell) GetText() string { return paragraphsText(tc.paragraphs) }

// GetParagraphs returns the cell paragraphs.
func (tc *TableCell) GetParagraphs() []*Paragraph { return tc.paragraphs }

// GetFont returns the first run's font, or the cell font when there is no run.
func (tc *TableCell) GetFont() *Font {
	for _, p := range tc.paragraphs {
		if tr := p.firstRun(); tr != nil {
			return tr.GetFont()
		}
	}
	if tc.font == nil {
		tc.font = NewFont()
	}
	return tc.font
}

// SetFont applies f to the cell and every run in it.
func (tc *TableCell) SetFont(f *Font) {
	tc.font = f.Clone()
	for _, p := range tc.paragraphs {
		for _, elem := range p.elements {
			if tr, ok := elem.(*TextRun); ok {
				tr.font = f.Clone()
			}
		}
	}
}

// SetHorizontalAlignment aligns every paragraph in the cell.
func (tc *TableCell) SetHorizontalAlignment(h HorizontalAlignment) {
	if len(tc.paragraphs) == 0 {
		tc.paragraphs = append(tc.paragraphs, NewParagraph())
	}
	for _, p := range tc.paragraphs {
		p.GetAlignment().SetHorizontal(h)
	}
}

// GetAnchor returns the vertical anchor, "" when inherited.
func (tc *TableCell) GetAnchor() VerticalAlignment { return tc.anchor }

// SetAnchor sets the vertical anchor.
func (tc *TableCell) SetAnchor(v VerticalAlignment) { tc.anchor = v }

// GetFill returns the cell fill.
func (tc *TableCell) GetFill() *Fill {
	if tc.fill == nil {
		tc.fill = NewFill()
	}
	return tc.fill
}

// SetFill sets the cell fill.
func (tc *TableCell) SetFill(f *Fill) {
	tc.fill = f
	tc.noFill = false
}

// ClearFill removes the cell fill, including any fill the table style
// would paint.
func (tc *TableCell) ClearFill() {
	tc.fill = NewFill()
	tc.noFill = true
}

// IsFillCleared reports whether the cell explicitly has no fill.
func (tc *TableCell) IsFillCleared() bool { return tc.noFill }

// GetBorders returns the cell borders.
func (tc *TableCell) GetBorders() *CellBorders {
	if tc.border == nil {
		tc.border = &CellBorders{Top: &Border{}, Bottom: &Border{}, Left: &Border{}, Right: &Border{}}
	}
	return tc.border
}

// SetColSpan sets the column span.
func (tc *TableCell) SetColSpan(span int) { tc.colSpan = span }

// GetColSpan returns the column span.
func (tc *TableCell) GetColSpan() int { return tc.colSpan }

// SetRowSpan sets the row span.
func (tc *TableCell) SetRowSpan(span int) { tc.rowSpan = span }

// GetRowSpan returns the row span.
func (tc *TableCell) GetRowSpan() int { return tc.rowSpan }

// IsMergedContinuation reports whether the cell is covered by a span.
func (tc *TableCell) IsMergedContinuation() bool { return tc.hMerge || tc.vMerge }
