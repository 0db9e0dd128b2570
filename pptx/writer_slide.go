package pptx

import (
	"archive/zip"
	"fmt"
	"sort"
	"strings"
)

// slideIDs hands out shape ids for one slide. Shapes that already carry an
// id keep it; the rest are numbered after the highest id in use.
type slideIDs struct {
	next int
}

func newSlideIDs(shapes []Shape) *slideIDs {
	ids := &slideIDs{next: 2} // 1 is the shape tree itself
	var walk func([]Shape)
	walk = func(list []Shape) {
		for _, s := range list {
			if id := s.GetID(); id >= ids.next {
				ids.next = id + 1
			}
			if g, ok := s.(*GroupShape); ok {
				walk(g.shapes)
			}
		}
	}
	walk(shapes)
	return ids
}

func (ids *slideIDs) of(b *BaseShape) int {
	if b.id > 0 {
		return b.id
	}
	id := ids.next
	ids.next++
	return id
}

func (w *PPTXWriter) writeSlide(zw *zip.Writer, slide *Slide, slideNum int, rels map[*DrawingShape]string) error {
	ids := newSlideIDs(slide.shapes)
	var shapesXML strings.Builder
	for _, shape := range slide.shapes {
		shapesXML.WriteString(w.shapeXML(shape, ids, rels))
	}

	bgXML := ""
	if slide.background != nil && slide.background.Type != FillNone {
		bgXML = "    <p:bg>\n      <p:bgPr>\n" + fillXML(slide.background) +
			"        <a:effectLst/>\n      </p:bgPr>\n    </p:bg>\n"
	}

	show := ""
	if slide.hidden {
		show = ` show="0"`
	}
	name := ""
	if slide.name != "" {
		name = fmt.Sprintf(` name="%s"`, xmlEscape(slide.name))
	}

	content := fmt.Sprintf(xmlDecl+`<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"%s>
  <p:cSld%s>
%s    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, show, name, bgXML, shapesXML.String())

	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/slide%d.xml", slideNum), content)
}

func (w *PPTXWriter) writeSlideRels(zw *zip.Writer, slide *Slide, slideNum int, rels map[*DrawingShape]string) error {
	out := xmlRelationships{
		Xmlns: nsRelationships,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
		},
	}
	for _, ds := range collectDrawingShapes(slide.shapes) {
		out.Relationships = append(out.Relationships, xmlRelationship{
			ID:     rels[ds],
			Type:   relTypeImage,
			Target: fmt.Sprintf("../media/image%d.%s", w.media[ds], imageExtension(ds)),
		})
	}
	return writeXMLToZip(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum), out)
}

func (w *PPTXWriter) shapeXML(shape Shape, ids *slideIDs, rels map[*DrawingShape]string) string {
	switch s := shape.(type) {
	case *PlaceholderShape:
		return w.placeholderShapeXML(s, ids)
	case *RichTextShape:
		return w.richTextShapeXML(s, ids)
	case *AutoShape:
		return w.autoShapeXML(s, ids)
	case *LineShape:
		return w.lineShapeXML(s, ids)
	case *DrawingShape:
		return w.drawingShapeXML(s, ids, rels)
	case *TableShape:
		return w.tableShapeXML(s, ids)
	case *GroupShape:
		return w.groupShapeXML(s, ids, rels)
	}
	return ""
}

// --- Common pieces ---

// xfrmAttrs builds the attribute string for <a:xfrm> including rotation and flip.
func xfrmAttrs(b *BaseShape) string {
	var sb strings.Builder
	if b.rotation != 0 {
		fmt.Fprintf(&sb, ` rot="%d"`, b.rotation*60000)
	}
	if b.flipHorizontal {
		sb.WriteString(` flipH="1"`)
	}
	if b.flipVertical {
		sb.WriteString(` flipV="1"`)
	}
	return sb.String()
}

func cNvPrXML(b *BaseShape, id int, fallback string) string {
	name := b.name
	if name == "" {
		name = fmt.Sprintf("%s %d", fallback, id)
	}
	attrs := fmt.Sprintf(`id="%d" name="%s"`, id, xmlEscape(name))
	if b.description != "" {
		attrs += fmt.Sprintf(` descr="%s"`, xmlEscape(b.description))
	}
	if b.hidden {
		attrs += ` hidden="1"`
	}
	return "<p:cNvPr " + attrs + "/>"
}

// spPrXML renders <p:spPr>: transform, geometry, fill, outline and shadow.
func spPrXML(b *BaseShape, geometry string) string {
	var sb strings.Builder
	sb.WriteString("        <p:spPr>\n")
	fmt.Fprintf(&sb, `          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
`, xfrmAttrs(b), b.offsetX, b.offsetY, b.width, b.height)
	sb.WriteString(geometry)
	sb.WriteString(fillXML(b.fill))
	sb.WriteString(lineXML("ln", b.border))
	sb.WriteString(shadowXML(b.shadow))
	sb.WriteString("        </p:spPr>\n")
	return sb.String()
}

func presetGeometryXML(prst AutoShapeType, adjust map[string]int) string {
	if len(adjust) == 0 {
		return fmt.Sprintf("          <a:prstGeom prst=\"%s\"><a:avLst/></a:prstGeom>\n", prst)
	}
	names := make([]string, 0, len(adjust))
	for name := range adjust {
		names = append(names, name)
	}
	sort.Strings(names)
	var gd strings.Builder
	for _, name := range names {
		fmt.Fprintf(&gd, `<a:gd name="%s" fmla="val %d"/>`, xmlEscape(name), adjust[name])
	}
	return fmt.Sprintf("          <a:prstGeom prst=\"%s\"><a:avLst>%s</a:avLst></a:prstGeom>\n", prst, gd.String())
}

func fillXML(f *Fill) string {
	if f == nil {
		return ""
	}
	switch f.Type {
	case FillSolid:
		return "          <a:solidFill>" + colorXML(f.Color) + "</a:solidFill>\n"
	case FillGradientLinear:
		return fmt.Sprintf(`          <a:gradFill rotWithShape="1">
            <a:gsLst>
              <a:gs pos="0">%s</a:gs>
              <a:gs pos="100000">%s</a:gs>
            </a:gsLst>
            <a:lin ang="%d" scaled="1"/>
          </a:gradFill>
`, colorXML(f.Color), colorXML(f.EndColor), f.Rotation*60000)
	default:
		return ""
	}
}

// lineXML renders an outline element such as <a:ln> or <a:lnT>. Inherited
// borders are omitted; BorderNone is written as an explicit empty line.
func lineXML(tag string, b *Border) string {
	if b == nil || b.Style == BorderInherit {
		return ""
	}
	if b.Style == BorderNone {
		return fmt.Sprintf("          <a:%s w=\"0\"><a:noFill/></a:%s>\n", tag, tag)
	}
	dash := ""
	if b.Style != BorderSolid {
		dash = fmt.Sprintf(`<a:prstDash val="%s"/>`, b.Style)
	}
	return fmt.Sprintf("          <a:%s w=\"%d\" cap=\"flat\" cmpd=\"sng\" algn=\"ctr\"><a:solidFill>%s</a:solidFill>%s</a:%s>\n",
		tag, b.Width, colorXML(b.Color), dash, tag)
}

func shadowXML(s *Shadow) string {
	if s == nil || !s.Visible {
		return ""
	}
	return fmt.Sprintf(`          <a:effectLst>
            <a:outerShdw blurRad="%d" dist="%d" dir="%d" algn="ctr" rotWithShape="0">%s</a:outerShdw>
          </a:effectLst>
`, Point(s.BlurRadius), Point(s.Distance), s.Direction*60000, colorXML(s.Color))
}

func bodyPrXML(wrap bool, anchor TextAnchorType, columns int) string {
	attrs := ` wrap="square"`
	if !wrap {
		attrs = ` wrap="none"`
	}
	if columns > 1 {
		attrs += fmt.Sprintf(` numCol="%d"`, columns)
	}
	if anchor != TextAnchorNone {
		attrs += fmt.Sprintf(` anchor="%s"`, anchor)
	}
	return fmt.Sprintf("          <a:bodyPr%s rtlCol=\"0\"/>\n", attrs)
}

func paragraphsXML(paragraphs []*Paragraph, endFont *Font) string {
	if len(paragraphs) == 0 {
		return "          <a:p/>\n"
	}
	var sb strings.Builder
	for _, para := range paragraphs {
		sb.WriteString(paragraphXML(para, endFont))
	}
	return sb.String()
}

func paragraphXML(para *Paragraph, endFont *Font) string {
	attrs := ""
	if a := para.alignment; a != nil {
		if a.Horizontal != "" {
			attrs += fmt.Sprintf(` algn="%s"`, a.Horizontal)
		}
		if a.Level > 0 {
			attrs += fmt.Sprintf(` lvl="%d"`, a.Level)
		}
	}

	var elems strings.Builder
	for _, elem := range para.elements {
		switch e := elem.(type) {
		case *TextRun:
			fmt.Fprintf(&elems, "            <a:r>%s<a:t>%s</a:t></a:r>\n", runPropsXML("rPr", e.GetFont()), xmlEscape(e.text))
		case *BreakElement:
			elems.WriteString("            <a:br/>\n")
		}
	}
	end := ""
	if endFont != nil {
		end = "            " + runPropsXML("endParaRPr", endFont) + "\n"
	}
	return fmt.Sprintf("          <a:p>\n            <a:pPr%s/>\n%s%s          </a:p>\n", attrs, elems.String(), end)
}

func runPropsXML(tag string, font *Font) string {
	attrs := fmt.Sprintf(` lang="en-US" sz="%d" dirty="0"`, int(font.Size*100+0.5))
	if font.Bold {
		attrs += ` b="1"`
	}
	if font.Italic {
		attrs += ` i="1"`
	}
	var children strings.Builder
	if hasColor(font.Color) {
		children.WriteString("<a:solidFill>" + colorXML(font.Color) + "</a:solidFill>")
	}
	if font.Name != "" {
		fmt.Fprintf(&children, `<a:latin typeface="%s"/>`, xmlEscape(font.Name))
	}
	if font.NameEA != "" {
		fmt.Fprintf(&children, `<a:ea typeface="%s"/>`, xmlEscape(font.NameEA))
	}
	if children.Len() == 0 {
		return fmt.Sprintf("<a:%s%s/>", tag, attrs)
	}
	return fmt.Sprintf("<a:%s%s>%s</a:%s>", tag, attrs, children.String(), tag)
}

// --- Shapes ---

func (w *PPTXWriter) richTextShapeXML(s *RichTextShape, ids *slideIDs) string {
	id := ids.of(&s.BaseShape)
	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          %s
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
%s        <p:txBody>
%s          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, cNvPrXML(&s.BaseShape, id, "TextBox"),
		spPrXML(&s.BaseShape, presetGeometryXML(AutoShapeRectangle, nil)),
		bodyPrXML(s.wordWrap, s.textAnchor, s.columns),
		paragraphsXML(s.paragraphs, nil))
}

func (w *PPTXWriter) placeholderShapeXML(s *PlaceholderShape, ids *slideIDs) string {
	id := ids.of(&s.BaseShape)
	idx := ""
	if s.phIdx > 0 {
		idx = fmt.Sprintf(` idx="%d"`, s.phIdx)
	}
	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          %s
          <p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>
          <p:nvPr><p:ph type="%s"%s/></p:nvPr>
        </p:nvSpPr>
%s        <p:txBody>
%s          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, cNvPrXML(&s.BaseShape, id, "Placeholder"), s.phType, idx,
		spPrXML(&s.BaseShape, ""),
		bodyPrXML(s.wordWrap, s.textAnchor, s.columns),
		paragraphsXML(s.paragraphs, nil))
}

func (w *PPTXWriter) autoShapeXML(s *AutoShape, ids *slideIDs) string {
	id := ids.of(&s.BaseShape)
	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          %s
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
%s        <p:txBody>
%s          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, cNvPrXML(&s.BaseShape, id, "Shape"),
		spPrXML(&s.BaseShape, presetGeometryXML(s.shapeType, s.adjustValues)),
		bodyPrXML(true, s.textAnchor, 1),
		paragraphsXML(s.paragraphs, nil))
}

func (w *PPTXWriter) lineShapeXML(s *LineShape, ids *slideIDs) string {
	id := ids.of(&s.BaseShape)
	b := s.BaseShape
	b.fill = nil
	b.border = &Border{Style: s.lineStyle, Width: s.lineWidth, Color: s.lineColor}
	return fmt.Sprintf(`      <p:cxnSp>
        <p:nvCxnSpPr>
          %s
          <p:cNvCxnSpPr/>
          <p:nvPr/>
        </p:nvCxnSpPr>
%s      </p:cxnSp>
`, cNvPrXML(&s.BaseShape, id, "Line"),
		spPrXML(&b, presetGeometryXML("line", nil)))
}

func (w *PPTXWriter) drawingShapeXML(s *DrawingShape, ids *slideIDs, rels map[*DrawingShape]string) string {
	rid, ok := rels[s]
	if !ok {
		return ""
	}
	id := ids.of(&s.BaseShape)
	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          %s
          <p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="%s"/>
          <a:stretch><a:fillRect/></a:stretch>
        </p:blipFill>
%s      </p:pic>
`, cNvPrXML(&s.BaseShape, id, "Picture"), rid,
		spPrXML(&s.BaseShape, presetGeometryXML(AutoShapeRectangle, nil)))
}

func (w *PPTXWriter) groupShapeXML(g *GroupShape, ids *slideIDs, rels map[*DrawingShape]string) string {
	id := ids.of(&g.BaseShape)
	var children strings.Builder
	for _, child := range g.shapes {
		children.WriteString(w.shapeXML(child, ids, rels))
	}
	return fmt.Sprintf(`      <p:grpSp>
        <p:nvGrpSpPr>
          %s
          <p:cNvGrpSpPr/>
          <p:nvPr/>
        </p:nvGrpSpPr>
        <p:grpSpPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
            <a:chOff x="%d" y="%d"/>
            <a:chExt cx="%d" cy="%d"/>
          </a:xfrm>
        </p:grpSpPr>
%s      </p:grpSp>
`, cNvPrXML(&g.BaseShape, id, "Group"),
		xfrmAttrs(&g.BaseShape),
		g.offsetX, g.offsetY, g.width, g.height,
		g.offsetX, g.offsetY, g.width, g.height,
		children.String())
}

// --- Tables ---

func tablePropsXML(s *TableShape) string {
	var attrs strings.Builder
	flag := func(name string, on bool) {
		if on {
			fmt.Fprintf(&attrs, ` %s="1"`, name)
		}
	}
	flag("firstRow", s.flags.FirstRow)
	flag("lastRow", s.flags.LastRow)
	flag("bandRow", s.flags.BandRow)
	flag("firstCol", s.flags.FirstCol)
	flag("lastCol", s.flags.LastCol)
	flag("bandCol", s.flags.BandCol)
	if s.styleID == "" {
		return fmt.Sprintf("              <a:tblPr%s/>\n", attrs.String())
	}
	return fmt.Sprintf("              <a:tblPr%s><a:tableStyleId>%s</a:tableStyleId></a:tblPr>\n",
		attrs.String(), xmlEscape(s.styleID))
}

func tableCellXML(cell *TableCell) string {
	var attrs strings.Builder
	if cell.colSpan > 1 {
		fmt.Fprintf(&attrs, ` gridSpan="%d"`, cell.colSpan)
	}
	if cell.rowSpan > 1 {
		fmt.Fprintf(&attrs, ` rowSpan="%d"`, cell.rowSpan)
	}
	if cell.hMerge {
		attrs.WriteString(` hMerge="1"`)
	}
	if cell.vMerge {
		attrs.WriteString(` vMerge="1"`)
	}

	anchor := ""
	if cell.anchor != "" {
		anchor = fmt.Sprintf(` anchor="%s"`, cell.anchor)
	}
	var props strings.Builder
	if b := cell.border; b != nil {
		props.WriteString(lineXML("lnL", b.Left))
		props.WriteString(lineXML("lnR", b.Right))
		props.WriteString(lineXML("lnT", b.Top))
		props.WriteString(lineXML("lnB", b.Bottom))
	}
	if cell.noFill {
		props.WriteString("          <a:noFill/>\n")
	} else {
		props.WriteString(fillXML(cell.fill))
	}

	return fmt.Sprintf(`              <a:tc%s>
                <a:txBody>
                  <a:bodyPr/>
                  <a:lstStyle/>
%s                </a:txBody>
                <a:tcPr%s>
%s                </a:tcPr>
              </a:tc>
`, attrs.String(), paragraphsXML(cell.paragraphs, cell.font), anchor, props.String())
}

func (w *PPTXWriter) tableShapeXML(s *TableShape, ids *slideIDs) string {
	id := ids.of(&s.BaseShape)

	var grid strings.Builder
	for j := 0; j < s.numCols; j++ {
		fmt.Fprintf(&grid, "                <a:gridCol w=\"%d\"/>\n", s.columnWidth(j))
	}

	var rows strings.Builder
	for i := 0; i < s.numRows; i++ {
		fmt.Fprintf(&rows, "              <a:tr h=\"%d\">\n", s.rowHeight(i))
		for j := 0; j < s.numCols; j++ {
			rows.WriteString(tableCellXML(s.rows[i][j]))
		}
		rows.WriteString("              </a:tr>\n")
	}

	return fmt.Sprintf(`      <p:graphicFrame>
        <p:nvGraphicFramePr>
          %s
          <p:cNvGraphicFramePr>
            <a:graphicFrameLocks noGrp="1"/>
          </p:cNvGraphicFramePr>
          <p:nvPr/>
        </p:nvGraphicFramePr>
        <p:xfrm>
          <a:off x="%d" y="%d"/>
          <a:ext cx="%d" cy="%d"/>
        </p:xfrm>
        <a:graphic>
          <a:graphicData uri="%s">
            <a:tbl>
%s              <a:tblGrid>
%s              </a:tblGrid>
%s            </a:tbl>
          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
`, cNvPrXML(&s.BaseShape, id, "Table"),
		s.offsetX, s.offsetY, s.width, s.height,
		nsTable, tablePropsXML(s), grid.String(), rows.String())
}
