package pptx

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// helper: write presentation to buffer and read back
func roundTrip(t *testing.T, p *Presentation) *Presentation {
	t.Helper()
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	data := buf.Bytes()
	pres, err := ReadFrom(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	return pres
}

// helper: save to temp file and re-open
func roundTripFile(t *testing.T, p *Presentation) *Presentation {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "test.pptx")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	pres, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return pres
}

// helper: create a minimal 1x1 PNG
func testPNG() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53,
		0xDE, 0x00, 0x00, 0x00, 0x0C, 0x49, 0x44, 0x41,
		0x54, 0x08, 0xD7, 0x63, 0xF8, 0xCF, 0xC0, 0x00,
		0x00, 0x00, 0x02, 0x00, 0x01, 0xE2, 0x21, 0xBC,
		0x33, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E,
		0x44, 0xAE, 0x42, 0x60, 0x82,
	}
}

func firstSlide(t *testing.T, p *Presentation) *Slide {
	t.Helper()
	s, err := p.GetSlide(0)
	if err != nil {
		t.Fatalf("GetSlide(0): %v", err)
	}
	return s
}

func TestRoundTripTextBox(t *testing.T) {
	p := New()
	slide := firstSlide(t, p)

	rt := slide.CreateRichTextShape()
	rt.SetName("Title Box")
	rt.SetPosition(Inch(1), Inch(0.5))
	rt.SetSize(Inch(6), Inch(1))
	rt.SetTextAnchor(TextAnchorMiddle)
	rt.SetDescription("heading")
	rt.CreateTextRun("Quarterly").GetFont().SetBold(true).SetSize(24).SetColor(ColorRed)
	rt.GetActiveParagraph().GetAlignment().SetHorizontal(HorizontalCenter)
	para := rt.CreateParagraph()
	para.CreateTextRun("results")
	para.CreateBreak()
	para.CreateTextRun("2024")

	got := firstSlide(t, roundTrip(t, p))
	if got.GetShapeCount() != 1 {
		t.Fatalf("expected 1 shape, got %d", got.GetShapeCount())
	}
	box, ok := got.GetShapes()[0].(*RichTextShape)
	if !ok {
		t.Fatalf("expected *RichTextShape, got %T", got.GetShapes()[0])
	}
	if box.GetName() != "Title Box" {
		t.Errorf("name = %q", box.GetName())
	}
	if box.GetID() != rt.GetID() {
		t.Errorf("id = %d, want %d", box.GetID(), rt.GetID())
	}
	if box.GetOffsetX() != Inch(1) || box.GetOffsetY() != Inch(0.5) {
		t.Errorf("offset = (%d, %d)", box.GetOffsetX(), box.GetOffsetY())
	}
	if box.GetWidth() != Inch(6) || box.GetHeight() != Inch(1) {
		t.Errorf("size = (%d, %d)", box.GetWidth(), box.GetHeight())
	}
	if box.GetTextAnchor() != TextAnchorMiddle {
		t.Errorf("anchor = %q", box.GetTextAnchor())
	}
	if box.GetDescription() != "heading" {
		t.Errorf("description = %q", box.GetDescription())
	}
	if want := "Quarterly\nresults\n2024"; box.GetText() != want {
		t.Errorf("text = %q, want %q", box.GetText(), want)
	}

	paras := box.GetParagraphs()
	if paras[0].GetAlignment().Horizontal != HorizontalCenter {
		t.Errorf("alignment = %q", paras[0].GetAlignment().Horizontal)
	}
	font := paras[0].firstRun().GetFont()
	if !font.Bold || font.Size != 24 || font.Color.ARGB != "FFFF0000" {
		t.Errorf("font = %+v", font)
	}
}

func TestRoundTripAutoShapeStyling(t *testing.T) {
	p := New()
	slide := firstSlide(t, p)

	card := slide.CreateAutoShape()
	card.SetAutoShapeType(AutoShapeRoundedRect)
	card.SetAdjustValue("adj", 8000)
	card.SetPosition(Inch(2), Inch(2))
	card.SetSize(Inch(3), Inch(2))
	card.GetFill().SetGradientLinear(NewColor("FFFFFF").WithAlpha(0xB3), NewColor("4472C4").WithAlpha(0x66), 90)
	card.SetBorder(&Border{Style: BorderDash, Width: Point(1.5), Color: NewColor("FFFFFF").WithAlpha(0x80)})
	card.GetShadow().SetVisible(true).SetDistance(3)
	card.GetShadow().BlurRadius = 8
	card.SetText("Card")

	got := firstSlide(t, roundTrip(t, p))
	as, ok := got.GetShapes()[0].(*AutoShape)
	if !ok {
		t.Fatalf("expected *AutoShape, got %T", got.GetShapes()[0])
	}
	if as.GetAutoShapeType() != AutoShapeRoundedRect {
		t.Errorf("geometry = %q", as.GetAutoShapeType())
	}
	if as.GetAdjustValues()["adj"] != 8000 {
		t.Errorf("adj = %v", as.GetAdjustValues())
	}
	fill := as.GetFill()
	if fill.Type != FillGradientLinear || fill.Rotation != 90 {
		t.Fatalf("fill = %+v", fill)
	}
	if fill.Color.ARGB != "B3FFFFFF" || fill.EndColor.ARGB != "664472C4" {
		t.Errorf("gradient colors = %s, %s", fill.Color.ARGB, fill.EndColor.ARGB)
	}
	border := as.GetBorder()
	if border.Style != BorderDash || border.Width != Point(1.5) || border.Color.ARGB != "80FFFFFF" {
		t.Errorf("border = %+v", border)
	}
	shadow := as.GetShadow()
	if !shadow.Visible || shadow.Direction != 45 || shadow.Distance != 3 || shadow.BlurRadius != 8 {
		t.Errorf("shadow = %+v", shadow)
	}
	if shadow.Color.GetAlpha() != 0x80 {
		t.Errorf("shadow alpha = %X", shadow.Color.GetAlpha())
	}
	if as.GetText() != "Card" {
		t.Errorf("text = %q", as.GetText())
	}
}

func TestRoundTripSchemeColor(t *testing.T) {
	p := New()
	shape := firstSlide(t, p).CreateAutoShape()
	shape.SetSize(Inch(1), Inch(1))
	shape.SetSolidFill(NewSchemeColor("accent1").WithAlpha(0x40))

	got := firstSlide(t, roundTrip(t, p)).GetShapes()[0].(*AutoShape)
	c := got.GetFill().Color
	if c.Scheme != "accent1" {
		t.Fatalf("scheme = %q", c.Scheme)
	}
	if c.GetAlpha() != 0x40 {
		t.Errorf("alpha = %X", c.GetAlpha())
	}
	if resolved := c.Resolve(); resolved.ARGB != "404472C4" {
		t.Errorf("resolved = %s", resolved.ARGB)
	}
	if NewSchemeColor("bg1").Resolve().ARGB != "FFFFFFFF" {
		t.Error("bg1 should resolve to lt1")
	}
}

func TestRoundTripTable(t *testing.T) {
	p := New()
	slide := firstSlide(t, p)
	tbl := slide.CreateTableShape(3, 2)
	tbl.SetName("Sales")
	tbl.SetPosition(Inch(1), Inch(2))
	tbl.SetSize(Inch(6), Inch(1.5))
	tbl.SetStyleID("{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}")
	tbl.SetFlags(TableFlags{FirstRow: true})

	header := tbl.GetCell(0, 0)
	header.SetFont(NewFont().SetBold(true).SetSize(14))
	header.SetText("Region")
	header.SetHorizontalAlignment(HorizontalCenter)
	header.SetAnchor(VerticalMiddle)
	header.GetBorders().Top = &Border{Style: BorderSolid, Width: Point(1.5), Color: ColorBlack}
	header.GetBorders().Bottom = &Border{Style: BorderSolid, Width: Point(0.75), Color: ColorBlack}
	header.GetBorders().Left = NewBorder()
	header.ClearFill()

	tbl.GetCell(1, 1).SetText("42")
	tbl.GetCell(2, 0).SetFill(NewFill().SetSolid(NewColor("F2F2F2")))

	got := firstSlide(t, roundTrip(t, p))
	rt, ok := got.GetShapes()[0].(*TableShape)
	if !ok {
		t.Fatalf("expected *TableShape, got %T", got.GetShapes()[0])
	}
	if rt.GetNumRows() != 3 || rt.GetNumCols() != 2 {
		t.Fatalf("dims = %dx%d", rt.GetNumRows(), rt.GetNumCols())
	}
	if rt.GetName() != "Sales" || rt.GetOffsetY() != Inch(2) || rt.GetWidth() != Inch(6) {
		t.Errorf("frame = %q at y=%d w=%d", rt.GetName(), rt.GetOffsetY(), rt.GetWidth())
	}
	if rt.GetStyleID() != "{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}" {
		t.Errorf("style id = %q", rt.GetStyleID())
	}
	if f := rt.GetFlags(); !f.FirstRow || f.BandRow {
		t.Errorf("flags = %+v", f)
	}

	h := rt.GetCell(0, 0)
	if h.GetText() != "Region" {
		t.Errorf("header text = %q", h.GetText())
	}
	if !h.GetFont().Bold || h.GetFont().Size != 14 {
		t.Errorf("header font = %+v", h.GetFont())
	}
	if h.GetParagraphs()[0].GetAlignment().Horizontal != HorizontalCenter {
		t.Error("header should be centered")
	}
	if h.GetAnchor() != VerticalMiddle {
		t.Errorf("anchor = %q", h.GetAnchor())
	}
	b := h.GetBorders()
	if !b.Top.IsVisible() || b.Top.Width != Point(1.5) {
		t.Errorf("top border = %+v", b.Top)
	}
	if !b.Bottom.IsVisible() || b.Bottom.Width != Point(0.75) {
		t.Errorf("bottom border = %+v", b.Bottom)
	}
	if b.Left.Style != BorderNone {
		t.Errorf("left border = %+v", b.Left)
	}
	if b.Right.Style != BorderInherit {
		t.Errorf("right border should be inherited, got %+v", b.Right)
	}
	if !h.IsFillCleared() {
		t.Error("header fill should stay cleared")
	}
	if rt.GetCell(1, 1).GetText() != "42" {
		t.Errorf("cell(1,1) = %q", rt.GetCell(1, 1).GetText())
	}
	if f := rt.GetCell(2, 0).GetFill(); f.Type != FillSolid || f.Color.ARGB != "FFF2F2F2" {
		t.Errorf("cell(2,0) fill = %+v", f)
	}
	if rt.GetCell(5, 0) != nil {
		t.Error("GetCell outside the table should be nil")
	}
}

func TestRoundTripEmptyCellKeepsFont(t *testing.T) {
	p := New()
	tbl := firstSlide(t, p).CreateTableShape(1, 1)
	tbl.SetSize(Inch(2), Inch(1))
	tbl.GetCell(0, 0).SetFont(NewFont().SetSize(11).SetName("Arial"))

	got := firstSlide(t, roundTrip(t, p)).GetShapes()[0].(*TableShape)
	f := got.GetCell(0, 0).GetFont()
	if f.Size != 11 || f.Name != "Arial" {
		t.Errorf("font = %+v", f)
	}
}

func TestRoundTripPictureLineGroup(t *testing.T) {
	p := New()
	slide := firstSlide(t, p)

	pic := slide.CreateDrawingShape()
	pic.SetImageData(testPNG(), "image/png")
	pic.SetPosition(Inch(5), Inch(1))
	pic.SetSize(Inch(1), Inch(1))

	line := slide.CreateLineShape()
	line.SetPosition(0, Inch(3))
	line.SetSize(Inch(10), 0)
	line.SetLineColor(ColorBlue).SetLineWidth(Point(2)).SetLineStyle(BorderDot)

	a := NewAutoShape()
	a.SetPosition(Inch(1), Inch(4))
	a.SetSize(Inch(1), Inch(1))
	inner := NewDrawingShape().SetImageData(testPNG(), "image/png")
	inner.SetPosition(Inch(3), Inch(5))
	inner.SetSize(Inch(1), Inch(1))
	group := NewGroupShape()
	group.AddShape(a)
	group.AddShape(inner)
	slide.AddShape(group)

	got := firstSlide(t, roundTrip(t, p))
	if got.GetShapeCount() != 3 {
		t.Fatalf("expected 3 shapes, got %d", got.GetShapeCount())
	}
	rp, ok := got.GetShapes()[0].(*DrawingShape)
	if !ok {
		t.Fatalf("shape 0 is %T", got.GetShapes()[0])
	}
	if !bytes.Equal(rp.GetImageData(), testPNG()) || rp.GetMimeType() != "image/png" {
		t.Error("picture data did not survive")
	}

	rl, ok := got.GetShapes()[1].(*LineShape)
	if !ok {
		t.Fatalf("shape 1 is %T", got.GetShapes()[1])
	}
	if rl.GetLineColor().ARGB != "FF0000FF" || rl.GetLineWidth() != Point(2) || rl.GetLineStyle() != BorderDot {
		t.Errorf("line = %s %d %s", rl.GetLineColor().ARGB, rl.GetLineWidth(), rl.GetLineStyle())
	}

	rg, ok := got.GetShapes()[2].(*GroupShape)
	if !ok {
		t.Fatalf("shape 2 is %T", got.GetShapes()[2])
	}
	if rg.GetShapeCount() != 2 {
		t.Fatalf("group has %d children", rg.GetShapeCount())
	}
	if rg.GetOffsetX() != Inch(1) || rg.GetOffsetY() != Inch(4) || rg.GetWidth() != Inch(3) || rg.GetHeight() != Inch(2) {
		t.Errorf("group bounds = %d,%d %dx%d", rg.GetOffsetX(), rg.GetOffsetY(), rg.GetWidth(), rg.GetHeight())
	}
	child := rg.GetShapes()[1]
	if child.GetOffsetX() != Inch(3) || child.GetOffsetY() != Inch(5) {
		t.Errorf("child offset = %d,%d", child.GetOffsetX(), child.GetOffsetY())
	}
	if _, ok := child.(*DrawingShape); !ok {
		t.Errorf("group child is %T", child)
	}
}

func TestGroupMoveTo(t *testing.T) {
	a := NewAutoShape()
	a.SetPosition(100, 200)
	a.SetSize(50, 50)
	b := NewAutoShape()
	b.SetPosition(300, 400)
	b.SetSize(50, 50)
	g := NewGroupShape().AddShape(a).AddShape(b)

	g.MoveTo(0, 0)
	if a.GetOffsetX() != 0 || a.GetOffsetY() != 0 {
		t.Errorf("a = %d,%d", a.GetOffsetX(), a.GetOffsetY())
	}
	if b.GetOffsetX() != 200 || b.GetOffsetY() != 200 {
		t.Errorf("b = %d,%d", b.GetOffsetX(), b.GetOffsetY())
	}
	if g.GetWidth() != 250 || g.GetHeight() != 250 {
		t.Errorf("group size = %dx%d", g.GetWidth(), g.GetHeight())
	}
}

func TestRoundTripSlidesAndProperties(t *testing.T) {
	p := New()
	p.GetLayout().SetLayout(LayoutScreen16x9)
	props := p.GetDocumentProperties()
	props.Title = "Review & Plan"
	props.Creator = "Finance"
	props.Company = "Acme <Ltd>"

	s1 := firstSlide(t, p)
	s1.SetName("Intro")
	s1.SetBackground(NewFill().SetSolid(NewColor("EEEEEE")))
	title := NewPlaceholderShape(PlaceholderTitle)
	title.SetText("Welcome")
	s1.AddShape(title)

	s2 := p.CreateSlide()
	s2.SetHidden(true)
	s2.CreateRichTextShape().SetText("second")

	got := roundTripFile(t, p)
	if got.GetSlideCount() != 2 {
		t.Fatalf("slide count = %d", got.GetSlideCount())
	}
	if got.GetLayout().Name != LayoutScreen16x9 || got.GetLayout().CX != 12192000 {
		t.Errorf("layout = %+v", got.GetLayout())
	}
	gp := got.GetDocumentProperties()
	if gp.Title != "Review & Plan" || gp.Creator != "Finance" || gp.Company != "Acme <Ltd>" {
		t.Errorf("properties = %+v", gp)
	}

	g1 := firstSlide(t, got)
	if g1.GetName() != "Intro" {
		t.Errorf("slide name = %q", g1.GetName())
	}
	if bg := g1.GetBackground(); bg == nil || bg.Color.ARGB != "FFEEEEEE" {
		t.Errorf("background = %+v", bg)
	}
	ph, ok := g1.GetShapes()[0].(*PlaceholderShape)
	if !ok {
		t.Fatalf("expected placeholder, got %T", g1.GetShapes()[0])
	}
	if ph.GetPlaceholderType() != PlaceholderTitle || ph.GetText() != "Welcome" {
		t.Errorf("placeholder = %s %q", ph.GetPlaceholderType(), ph.GetText())
	}

	g2, _ := got.GetSlide(1)
	if !g2.IsHidden() {
		t.Error("second slide should be hidden")
	}
	if !strings.Contains(got.ExtractText(), "second") {
		t.Errorf("ExtractText = %q", got.ExtractText())
	}
}

func TestSlideOperations(t *testing.T) {
	p := New()
	if err := p.RemoveSlideByIndex(0); err == nil {
		t.Error("removing the last slide should fail")
	}
	a := firstSlide(t, p)
	b := p.CreateSlide()
	c := p.CreateSlide()

	if err := p.MoveSlide(2, 0); err != nil {
		t.Fatalf("MoveSlide: %v", err)
	}
	if p.IndexOfSlide(c) != 0 || p.IndexOfSlide(a) != 1 || p.IndexOfSlide(b) != 2 {
		t.Errorf("order after move = %d %d %d", p.IndexOfSlide(c), p.IndexOfSlide(a), p.IndexOfSlide(b))
	}
	if err := p.MoveSlide(5, 0); err == nil {
		t.Error("out of range move should fail")
	}
	if _, err := p.GetSlide(3); err == nil {
		t.Error("GetSlide out of range should fail")
	}
	if err := p.RemoveSlideByIndex(1); err != nil {
		t.Fatalf("RemoveSlideByIndex: %v", err)
	}
	if p.GetSlideCount() != 2 || p.IndexOfSlide(a) != -1 {
		t.Error("slide a should be gone")
	}
}

func TestZOrderOperations(t *testing.T) {
	s := newSlide()
	a := s.CreateAutoShape()
	b := s.CreateAutoShape()
	c := s.CreateAutoShape()
	a.SetName("a")
	b.SetName("b")
	c.SetName("c")

	if !s.BringToFront(a) || s.IndexOf(a) != 2 {
		t.Errorf("a index = %d", s.IndexOf(a))
	}
	if !s.SendToBack(c) || s.IndexOf(c) != 0 {
		t.Errorf("c index = %d", s.IndexOf(c))
	}
	if s.IndexOf(b) != 1 {
		t.Errorf("b index = %d", s.IndexOf(b))
	}
	if s.FindShapeByName("b", nil) != Shape(b) {
		t.Error("FindShapeByName did not find b")
	}
	if s.FindShapeByID(a.GetID()) != Shape(a) {
		t.Error("FindShapeByID did not find a")
	}
	if !s.RemoveShapeByPointer(b) || s.RemoveShapeByPointer(b) {
		t.Error("RemoveShapeByPointer should succeed exactly once")
	}
	if a.GetID() == b.GetID() || b.GetID() == c.GetID() {
		t.Error("shape ids must be unique")
	}
}

func TestShapeIDsSurviveAndStayUnique(t *testing.T) {
	p := New()
	slide := firstSlide(t, p)
	for i := 0; i < 4; i++ {
		slide.CreateAutoShape().SetSize(Inch(1), Inch(1))
	}
	got := firstSlide(t, roundTrip(t, p))
	seen := map[int]bool{}
	for i, s := range got.GetShapes() {
		if s.GetID() != slide.GetShapes()[i].GetID() {
			t.Errorf("shape %d id = %d, want %d", i, s.GetID(), slide.GetShapes()[i].GetID())
		}
		if seen[s.GetID()] {
			t.Errorf("duplicate id %d", s.GetID())
		}
		seen[s.GetID()] = true
	}
	added := got.CreateAutoShape()
	if seen[added.GetID()] {
		t.Errorf("new shape reused id %d", added.GetID())
	}
}

func TestValidate(t *testing.T) {
	p := New()
	if err := p.Validate(); err != nil {
		t.Fatalf("new presentation should be valid: %v", err)
	}
	firstSlide(t, p).CreateDrawingShape()
	err := p.Validate()
	if err == nil || !strings.Contains(err.Error(), "no image data") {
		t.Errorf("expected image data error, got %v", err)
	}
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err == nil {
		t.Error("WriteTo should refuse an invalid presentation")
	}
}

func TestReadRejectsInvalidInput(t *testing.T) {
	data := []byte("not a zip archive")
	if _, err := ReadFrom(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("expected error for non-zip input")
	}
	if _, err := ReadFrom(bytes.NewReader(nil), 0); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing.pptx")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMeasurements(t *testing.T) {
	if Inch(1) != 914400 {
		t.Errorf("Inch(1) = %d", Inch(1))
	}
	if Point(1) != 12700 {
		t.Errorf("Point(1) = %d", Point(1))
	}
	if Centimeter(1) != 360000 {
		t.Errorf("Centimeter(1) = %d", Centimeter(1))
	}
	if EMUToPoint(Point(72.5)) != 72.5 {
		t.Errorf("EMUToPoint round trip = %v", EMUToPoint(Point(72.5)))
	}
	if EMUToInch(Inch(2)) != 2 {
		t.Errorf("EMUToInch = %v", EMUToInch(Inch(2)))
	}
}

func TestColors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FF0000", "FFFF0000"},
		{"#00ff00", "FF00FF00"},
		{"800000FF", "800000FF"},
		{"xyz", "FF000000"},
	}
	for _, tt := range tests {
		if got := NewColor(tt.in).ARGB; got != tt.want {
			t.Errorf("NewColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	c := NewRGBColor(0x12, 0x34, 0x56)
	if c.GetRed() != 0x12 || c.GetGreen() != 0x34 || c.GetBlue() != 0x56 || c.GetAlpha() != 0xFF {
		t.Errorf("components = %s", c.ARGB)
	}
	if c.WithAlpha(0x10).ARGB != "10123456" {
		t.Errorf("WithAlpha = %s", c.WithAlpha(0x10).ARGB)
	}
}

func TestCellSetTextKeepsFont(t *testing.T) {
	cell := NewTableCell()
	cell.SetFont(NewFont().SetBold(true).SetSize(12))
	cell.SetText("a\nb")
	if cell.GetText() != "a\nb" {
		t.Errorf("text = %q", cell.GetText())
	}
	for _, p := range cell.GetParagraphs() {
		if tr := p.firstRun(); tr == nil || !tr.GetFont().Bold || tr.GetFont().Size != 12 {
			t.Errorf("run font not kept: %+v", tr)
		}
	}
}

func TestGroupResize(t *testing.T) {
	a := NewAutoShape()
	a.SetPosition(0, 0)
	a.SetSize(100, 100)
	b := NewAutoShape()
	b.SetPosition(100, 100)
	b.SetSize(100, 100)
	g := NewGroupShape().AddShape(a).AddShape(b)

	g.Resize(400, 100)
	if b.GetOffsetX() != 200 || b.GetOffsetY() != 50 {
		t.Errorf("b offset = %d,%d", b.GetOffsetX(), b.GetOffsetY())
	}
	if a.GetWidth() != 200 || a.GetHeight() != 50 {
		t.Errorf("a size = %dx%d", a.GetWidth(), a.GetHeight())
	}
	if g.GetWidth() != 400 || g.GetHeight() != 100 {
		t.Errorf("group size = %dx%d", g.GetWidth(), g.GetHeight())
	}
}

func TestValidateTableStyleID(t *testing.T) {
	p := New()
	tbl := firstSlide(t, p).CreateTableShape(2, 2)
	tbl.SetStyleID("{5940675A-B579-460E-94D1-54222C63F5DA}")
	if err := p.Validate(); err != nil {
		t.Fatalf("braced GUID should be valid: %v", err)
	}
	tbl.SetStyleID("Medium Style 2")
	err := p.Validate()
	if err == nil || !strings.Contains(err.Error(), "not a braced GUID") {
		t.Errorf("expected style id error, got %v", err)
	}
}
