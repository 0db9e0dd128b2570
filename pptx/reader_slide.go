package pptx

import (
	"encoding/xml"
	"fmt"
	"math"
	"path"
	"strconv"
	"strings"
)

// --- XML model for slide parts ---
//
// Element names are matched by local name only, so the same structs serve
// p:, a: and unprefixed documents.

type xmlSlideForRead struct {
	Show string `xml:"show,attr"`
	CSld struct {
		Name string `xml:"name,attr"`
		Bg   *struct {
			BgPr *struct {
				xmlFillChoice
			} `xml:"bgPr"`
		} `xml:"bg"`
		SpTree xmlTreeItem `xml:"spTree"`
	} `xml:"cSld"`
}

// xmlTreeItem is any element of a shape tree: sp, pic, cxnSp, graphicFrame
// or grpSp. Children it does not name land in Items in document order,
// which keeps the z-order of a group's shapes.
type xmlTreeItem struct {
	XMLName          xml.Name
	NvSpPr           *xmlNvPr      `xml:"nvSpPr"`
	NvPicPr          *xmlNvPr      `xml:"nvPicPr"`
	NvCxnSpPr        *xmlNvPr      `xml:"nvCxnSpPr"`
	NvGraphicFramePr *xmlNvPr      `xml:"nvGraphicFramePr"`
	NvGrpSpPr        *xmlNvPr      `xml:"nvGrpSpPr"`
	SpPr             *xmlSpPr      `xml:"spPr"`
	GrpSpPr          *xmlSpPr      `xml:"grpSpPr"`
	TxBody           *xmlTxBody    `xml:"txBody"`
	BlipFill         *xmlBlipFill  `xml:"blipFill"`
	Xfrm             *xmlXfrm      `xml:"xfrm"`
	Graphic          *xmlGraphic   `xml:"graphic"`
	Items            []xmlTreeItem `xml:",any"`
}

func (it *xmlTreeItem) nvPr() *xmlNvPr {
	for _, nv := range []*xmlNvPr{it.NvSpPr, it.NvPicPr, it.NvCxnSpPr, it.NvGraphicFramePr, it.NvGrpSpPr} {
		if nv != nil {
			return nv
		}
	}
	return nil
}

type xmlNvPr struct {
	CNvPr struct {
		ID     int    `xml:"id,attr"`
		Name   string `xml:"name,attr"`
		Descr  string `xml:"descr,attr"`
		Hidden string `xml:"hidden,attr"`
	} `xml:"cNvPr"`
	CNvSpPr *struct {
		TxBox string `xml:"txBox,attr"`
	} `xml:"cNvSpPr"`
	NvPr struct {
		Ph *struct {
			Type string `xml:"type,attr"`
			Idx  int    `xml:"idx,attr"`
		} `xml:"ph"`
	} `xml:"nvPr"`
}

type xmlXfrm struct {
	Rot   int    `xml:"rot,attr"`
	FlipH string `xml:"flipH,attr"`
	FlipV string `xml:"flipV,attr"`
	Off   struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"off"`
	Ext struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"ext"`
	ChOff *struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"chOff"`
	ChExt *struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"chExt"`
}

type xmlSpPr struct {
	Xfrm     *xmlXfrm `xml:"xfrm"`
	PrstGeom *struct {
		Prst string `xml:"prst,attr"`
		Gd   []struct {
			Name string `xml:"name,attr"`
			Fmla string `xml:"fmla,attr"`
		} `xml:"avLst>gd"`
	} `xml:"prstGeom"`
	xmlFillChoice
	Ln        *xmlLine `xml:"ln"`
	EffectLst *struct {
		OuterShdw *struct {
			BlurRad int64 `xml:"blurRad,attr"`
			Dist    int64 `xml:"dist,attr"`
			Dir     int   `xml:"dir,attr"`
			xmlColorChoice
		} `xml:"outerShdw"`
	} `xml:"effectLst"`
}

type xmlFillChoice struct {
	NoFill    *struct{}       `xml:"noFill"`
	SolidFill *xmlColorChoice `xml:"solidFill"`
	GradFill  *struct {
		Stops []struct {
			Pos int `xml:"pos,attr"`
			xmlColorChoice
		} `xml:"gsLst>gs"`
		Lin *struct {
			Ang int `xml:"ang,attr"`
		} `xml:"lin"`
	} `xml:"gradFill"`
}

type xmlColorChoice struct {
	SrgbClr   *xmlColorVal `xml:"srgbClr"`
	SchemeClr *xmlColorVal `xml:"schemeClr"`
}

type xmlColorVal struct {
	Val   string `xml:"val,attr"`
	Alpha *struct {
		Val int `xml:"val,attr"`
	} `xml:"alpha"`
}

type xmlLine struct {
	W int64 `xml:"w,attr"`
	xmlFillChoice
	PrstDash *struct {
		Val string `xml:"val,attr"`
	} `xml:"prstDash"`
}

type xmlTxBody struct {
	BodyPr struct {
		Wrap   string `xml:"wrap,attr"`
		Anchor string `xml:"anchor,attr"`
		NumCol int    `xml:"numCol,attr"`
	} `xml:"bodyPr"`
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlParagraph struct {
	PPr *struct {
		Algn string `xml:"algn,attr"`
		Lvl  int    `xml:"lvl,attr"`
	} `xml:"pPr"`
	EndParaRPr *xmlRPr       `xml:"endParaRPr"`
	Items      []xmlParaItem `xml:",any"`
}

// xmlParaItem is a run (r, fld) or a line break (br).
type xmlParaItem struct {
	XMLName xml.Name
	RPr     *xmlRPr `xml:"rPr"`
	T       string  `xml:"t"`
}

type xmlRPr struct {
	Sz int    `xml:"sz,attr"`
	B  string `xml:"b,attr"`
	I  string `xml:"i,attr"`
	xmlFillChoice
	Latin *struct {
		Typeface string `xml:"typeface,attr"`
	} `xml:"latin"`
	Ea *struct {
		Typeface string `xml:"typeface,attr"`
	} `xml:"ea"`
}

type xmlBlipFill struct {
	Blip struct {
		Embed string `xml:"embed,attr"`
	} `xml:"blip"`
}

type xmlGraphic struct {
	Data struct {
		Tbl *xmlTbl `xml:"tbl"`
	} `xml:"graphicData"`
}

type xmlTbl struct {
	TblPr struct {
		FirstRow string `xml:"firstRow,attr"`
		LastRow  string `xml:"lastRow,attr"`
		BandRow  string `xml:"bandRow,attr"`
		FirstCol string `xml:"firstCol,attr"`
		LastCol  string `xml:"lastCol,attr"`
		BandCol  string `xml:"bandCol,attr"`
		StyleID  string `xml:"tableStyleId"`
	} `xml:"tblPr"`
	Grid []struct {
		W int64 `xml:"w,attr"`
	} `xml:"tblGrid>gridCol"`
	Rows []struct {
		H     int64   `xml:"h,attr"`
		Cells []xmlTc `xml:"tc"`
	} `xml:"tr"`
}

type xmlTc struct {
	GridSpan int        `xml:"gridSpan,attr"`
	RowSpan  int        `xml:"rowSpan,attr"`
	HMerge   string     `xml:"hMerge,attr"`
	VMerge   string     `xml:"vMerge,attr"`
	TxBody   *xmlTxBody `xml:"txBody"`
	TcPr     *struct {
		Anchor string   `xml:"anchor,attr"`
		LnL    *xmlLine `xml:"lnL"`
		LnR    *xmlLine `xml:"lnR"`
		LnT    *xmlLine `xml:"lnT"`
		LnB    *xmlLine `xml:"lnB"`
		xmlFillChoice
	} `xml:"tcPr"`
}

// --- Slide conversion ---

func (r *PPTXReader) readSlide(src *zipSource, part string) (*Slide, error) {
	data, err := src.read(part)
	if err != nil {
		return nil, err
	}
	var doc xmlSlideForRead
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse slide: %w", err)
	}
	rels, err := readRelationships(src, relsPathFor(part))
	if err != nil {
		return nil, err
	}

	sc := &slideConverter{src: src, dir: path.Dir(part), rels: rels}
	slide := newSlide()
	slide.name = doc.CSld.Name
	slide.hidden = isFalse(doc.Show)
	if bg := doc.CSld.Bg; bg != nil && bg.BgPr != nil {
		slide.background = bg.BgPr.fill()
	}
	for i := range doc.CSld.SpTree.Items {
		if shape := sc.convert(&doc.CSld.SpTree.Items[i], identityMap); shape != nil {
			slide.AddShape(shape)
		}
	}
	return slide, nil
}

// coordMap maps a group's child coordinate space onto slide coordinates.
type coordMap struct {
	offX, offY int64
	chX, chY   int64
	sx, sy     float64
}

var identityMap = coordMap{sx: 1, sy: 1}

func (m coordMap) x(v int64) int64 { return m.offX + int64(math.Round(float64(v-m.chX)*m.sx)) }
func (m coordMap) y(v int64) int64 { return m.offY + int64(math.Round(float64(v-m.chY)*m.sy)) }
func (m coordMap) w(v int64) int64 { return int64(math.Round(float64(v) * m.sx)) }
func (m coordMap) h(v int64) int64 { return int64(math.Round(float64(v) * m.sy)) }

type slideConverter struct {
	src  *zipSource
	dir  string
	rels map[string]xmlRelForRead
}

func (sc *slideConverter) convert(it *xmlTreeItem, m coordMap) Shape {
	var shape Shape
	switch it.XMLName.Local {
	case "sp":
		shape = sc.convertSp(it)
	case "cxnSp":
		shape = sc.convertLine(it)
	case "pic":
		shape = sc.convertPicture(it)
	case "graphicFrame":
		if it.Graphic == nil || it.Graphic.Data.Tbl == nil {
			return nil
		}
		shape = convertTable(it.Graphic.Data.Tbl)
	case "grpSp":
		return sc.convertGroup(it, m)
	default:
		return nil
	}
	if shape == nil {
		return nil
	}

	b := shape.base()
	applyNvPr(b, it.nvPr())
	xfrm := it.Xfrm
	if it.SpPr != nil {
		if it.SpPr.Xfrm != nil {
			xfrm = it.SpPr.Xfrm
		}
		if _, isLine := shape.(*LineShape); !isLine {
			b.fill = it.SpPr.fill()
			b.border = borderFromXML(it.SpPr.Ln)
		}
		b.shadow = it.SpPr.shadow()
	}
	applyXfrm(b, xfrm, m)
	return shape
}

func applyNvPr(b *BaseShape, nv *xmlNvPr) {
	if nv == nil {
		return
	}
	b.id = nv.CNvPr.ID
	b.name = nv.CNvPr.Name
	b.description = nv.CNvPr.Descr
	b.hidden = isTrue(nv.CNvPr.Hidden)
}

func applyXfrm(b *BaseShape, xfrm *xmlXfrm, m coordMap) {
	if xfrm == nil {
		return
	}
	b.offsetX = m.x(xfrm.Off.X)
	b.offsetY = m.y(xfrm.Off.Y)
	b.width = m.w(xfrm.Ext.CX)
	b.height = m.h(xfrm.Ext.CY)
	b.rotation = ((xfrm.Rot/60000)%360 + 360) % 360
	b.flipHorizontal = isTrue(xfrm.FlipH)
	b.flipVertical = isTrue(xfrm.FlipV)
}

func (sc *slideConverter) convertSp(it *xmlTreeItem) Shape {
	nv := it.NvSpPr
	prst := ""
	if it.SpPr != nil && it.SpPr.PrstGeom != nil {
		prst = it.SpPr.PrstGeom.Prst
	}

	switch {
	case nv != nil && nv.NvPr.Ph != nil:
		phType := PlaceholderType(nv.NvPr.Ph.Type)
		if phType == "" {
			phType = PlaceholderBody
		}
		ph := NewPlaceholderShape(phType)
		ph.phIdx = nv.NvPr.Ph.Idx
		fillTextShape(&ph.RichTextShape, it.TxBody)
		return ph
	case nv != nil && nv.CNvSpPr != nil && isTrue(nv.CNvSpPr.TxBox):
		rt := NewRichTextShape()
		fillTextShape(rt, it.TxBody)
		return rt
	case prst == "line":
		return lineFromSpPr(it.SpPr)
	}

	as := NewAutoShape()
	if prst != "" {
		as.shapeType = AutoShapeType(prst)
	}
	if it.SpPr != nil && it.SpPr.PrstGeom != nil {
		for _, gd := range it.SpPr.PrstGeom.Gd {
			if v, err := strconv.Atoi(strings.TrimPrefix(gd.Fmla, "val ")); err == nil {
				as.SetAdjustValue(gd.Name, v)
			}
		}
	}
	if it.TxBody != nil {
		as.textAnchor = TextAnchorType(it.TxBody.BodyPr.Anchor)
		paras := paragraphsFromXML(it.TxBody.Paragraphs)
		if paragraphsText(paras) != "" {
			as.paragraphs = paras
		}
	}
	return as
}

func fillTextShape(rt *RichTextShape, body *xmlTxBody) {
	if body == nil {
		return
	}
	rt.wordWrap = body.BodyPr.Wrap != "none"
	rt.textAnchor = TextAnchorType(body.BodyPr.Anchor)
	if body.BodyPr.NumCol > 0 {
		rt.columns = body.BodyPr.NumCol
	}
	if paras := paragraphsFromXML(body.Paragraphs); len(paras) > 0 {
		rt.paragraphs = paras
	}
}

func (sc *slideConverter) convertLine(it *xmlTreeItem) Shape {
	return lineFromSpPr(it.SpPr)
}

func lineFromSpPr(spPr *xmlSpPr) *LineShape {
	line := NewLineShape()
	if spPr == nil {
		return line
	}
	if b := borderFromXML(spPr.Ln); b != nil {
		if b.Style != BorderInherit {
			line.lineStyle = b.Style
		}
		if b.Width > 0 {
			line.lineWidth = b.Width
		}
		if hasColor(b.Color) {
			line.lineColor = b.Color
		}
	}
	return line
}

func (sc *slideConverter) convertPicture(it *xmlTreeItem) Shape {
	pic := NewDrawingShape()
	if it.BlipFill == nil {
		return pic
	}
	rel, ok := sc.rels[it.BlipFill.Blip.Embed]
	if !ok || rel.TargetMode == "External" {
		return pic
	}
	target := resolvePartPath(sc.dir, rel.Target)
	data, err := sc.src.read(target)
	if err != nil {
		return pic
	}
	pic.SetImageData(data, guessMimeFromPath(target))
	return pic
}

func (sc *slideConverter) convertGroup(it *xmlTreeItem, m coordMap) Shape {
	g := NewGroupShape()
	applyNvPr(&g.BaseShape, it.NvGrpSpPr)

	child := m
	if it.GrpSpPr != nil && it.GrpSpPr.Xfrm != nil {
		x := it.GrpSpPr.Xfrm
		applyXfrm(&g.BaseShape, x, m)
		child = coordMap{offX: g.offsetX, offY: g.offsetY, sx: m.sx, sy: m.sy}
		if x.ChOff != nil {
			child.chX, child.chY = x.ChOff.X, x.ChOff.Y
		}
		if x.ChExt != nil && x.ChExt.CX > 0 && x.ChExt.CY > 0 {
			child.sx = float64(g.width) / float64(x.ChExt.CX)
			child.sy = float64(g.height) / float64(x.ChExt.CY)
		}
	}
	for i := range it.Items {
		if s := sc.convert(&it.Items[i], child); s != nil {
			g.shapes = append(g.shapes, s)
		}
	}
	if it.GrpSpPr == nil || it.GrpSpPr.Xfrm == nil {
		g.fitChildren()
	}
	return g
}

func convertTable(tbl *xmlTbl) *TableShape {
	cols := len(tbl.Grid)
	for _, row := range tbl.Rows {
		cols = max(cols, len(row.Cells))
	}
	t := NewTableShape(len(tbl.Rows), cols)
	t.styleID = strings.TrimSpace(tbl.TblPr.StyleID)
	t.flags = TableFlags{
		FirstRow: isTrue(tbl.TblPr.FirstRow),
		LastRow:  isTrue(tbl.TblPr.LastRow),
		BandRow:  isTrue(tbl.TblPr.BandRow),
		FirstCol: isTrue(tbl.TblPr.FirstCol),
		LastCol:  isTrue(tbl.TblPr.LastCol),
		BandCol:  isTrue(tbl.TblPr.BandCol),
	}
	if len(tbl.Grid) == cols {
		t.colWidths = make([]int64, cols)
		for j, gc := range tbl.Grid {
			t.colWidths[j] = gc.W
		}
	}
	t.rowHeights = make([]int64, len(tbl.Rows))
	for i, row := range tbl.Rows {
		t.rowHeights[i] = row.H
		for j, tc := range row.Cells {
			t.rows[i][j] = convertCell(&tc)
		}
	}
	return t
}

func convertCell(tc *xmlTc) *TableCell {
	cell := NewTableCell()
	cell.colSpan = max(tc.GridSpan, 1)
	cell.rowSpan = max(tc.RowSpan, 1)
	cell.hMerge = isTrue(tc.HMerge)
	cell.vMerge = isTrue(tc.VMerge)

	if tc.TxBody != nil {
		if paras := paragraphsFromXML(tc.TxBody.Paragraphs); len(paras) > 0 {
			cell.paragraphs = paras
		}
		for _, p := range tc.TxBody.Paragraphs {
			if p.EndParaRPr != nil {
				cell.font = fontFromXML(p.EndParaRPr)
				break
			}
		}
	}
	if pr := tc.TcPr; pr != nil {
		cell.anchor = VerticalAlignment(pr.Anchor)
		cell.border = &CellBorders{
			Left:   cellBorder(pr.LnL),
			Right:  cellBorder(pr.LnR),
			Top:    cellBorder(pr.LnT),
			Bottom: cellBorder(pr.LnB),
		}
		if pr.NoFill != nil {
			cell.ClearFill()
		} else if f := pr.fill(); f != nil {
			cell.fill = f
		}
	}
	return cell
}

func cellBorder(l *xmlLine) *Border {
	if b := borderFromXML(l); b != nil {
		return b
	}
	return &Border{}
}

// --- Text ---

func paragraphsFromXML(ps []xmlParagraph) []*Paragraph {
	out := make([]*Paragraph, 0, len(ps))
	for _, xp := range ps {
		p := NewParagraph()
		if xp.PPr != nil {
			if xp.PPr.Algn != "" {
				p.alignment.Horizontal = HorizontalAlignment(xp.PPr.Algn)
			}
			p.alignment.Level = xp.PPr.Lvl
		}
		for _, item := range xp.Items {
			switch item.XMLName.Local {
			case "r", "fld":
				tr := p.CreateTextRun(item.T)
				if item.RPr != nil {
					tr.font = fontFromXML(item.RPr)
				}
			case "br":
				p.CreateBreak()
			}
		}
		out = append(out, p)
	}
	return out
}

func fontFromXML(rpr *xmlRPr) *Font {
	f := NewFont()
	if rpr.Sz > 0 {
		f.Size = float64(rpr.Sz) / 100
	}
	f.Bold = isTrue(rpr.B)
	f.Italic = isTrue(rpr.I)
	if rpr.SolidFill != nil {
		if c, ok := rpr.SolidFill.color(); ok {
			f.Color = c
		}
	}
	if rpr.Latin != nil && rpr.Latin.Typeface != "" {
		f.Name = rpr.Latin.Typeface
	}
	if rpr.Ea != nil {
		f.NameEA = rpr.Ea.Typeface
	}
	return f
}

// --- Fills, lines and colours ---

func (fc *xmlFillChoice) fill() *Fill {
	switch {
	case fc.NoFill != nil:
		return NewFill()
	case fc.SolidFill != nil:
		c, ok := fc.SolidFill.color()
		if !ok {
			return nil
		}
		return NewFill().SetSolid(c)
	case fc.GradFill != nil && len(fc.GradFill.Stops) >= 2:
		stops := fc.GradFill.Stops
		start, ok1 := stops[0].color()
		end, ok2 := stops[len(stops)-1].color()
		if !ok1 || !ok2 {
			return nil
		}
		rot := 0
		if fc.GradFill.Lin != nil {
			rot = fc.GradFill.Lin.Ang / 60000
		}
		return NewFill().SetGradientLinear(start, end, rot)
	}
	return nil
}

func (sp *xmlSpPr) shadow() *Shadow {
	if sp.EffectLst == nil || sp.EffectLst.OuterShdw == nil {
		return nil
	}
	o := sp.EffectLst.OuterShdw
	s := NewShadow()
	s.Visible = true
	s.SetDirection(o.Dir / 60000)
	s.SetDistance(EMUToPoint(o.Dist))
	s.BlurRadius = EMUToPoint(o.BlurRad)
	if c, ok := o.color(); ok {
		s.Color = c
	}
	return s
}

// borderFromXML converts an outline; nil when the element is absent.
func borderFromXML(l *xmlLine) *Border {
	if l == nil {
		return nil
	}
	b := &Border{Width: l.W}
	switch {
	case l.NoFill != nil:
		b.Style = BorderNone
	case l.SolidFill != nil:
		b.Style = dashStyle(l.PrstDash)
		if c, ok := l.SolidFill.color(); ok {
			b.Color = c
		}
	default:
		b.Style = BorderInherit
	}
	return b
}

func dashStyle(d *struct {
	Val string `xml:"val,attr"`
}) BorderStyle {
	if d == nil {
		return BorderSolid
	}
	switch d.Val {
	case "dash", "sysDash", "lgDash":
		return BorderDash
	case "dot", "sysDot":
		return BorderDot
	case "dashDot", "sysDashDot", "lgDashDot":
		return BorderDashDot
	}
	return BorderSolid
}

func (cc *xmlColorChoice) color() (Color, bool) {
	switch {
	case cc.SrgbClr != nil:
		rgb := strings.ToUpper(cc.SrgbClr.Val)
		if len(rgb) != 6 || !isValidARGB("FF"+rgb) {
			return Color{}, false
		}
		return Color{ARGB: alphaHex(cc.SrgbClr) + rgb}, true
	case cc.SchemeClr != nil:
		return Color{ARGB: alphaHex(cc.SchemeClr) + "000000", Scheme: cc.SchemeClr.Val}, true
	}
	return Color{}, false
}

func alphaHex(v *xmlColorVal) string {
	if v.Alpha == nil {
		return "FF"
	}
	a := math.Round(float64(v.Alpha.Val) * 255 / 100000)
	return fmt.Sprintf("%02X", int(math.Max(0, math.Min(255, a))))
}

func isTrue(s string) bool  { return s == "1" || s == "true" || s == "on" }
func isFalse(s string) bool { return s == "0" || s == "false" || s == "off" }
