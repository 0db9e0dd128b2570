package document

import (
	"math"
	"strconv"

	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
)

// Theme slots as named in the model's colour scheme.
var themeSlots = map[office.ThemeColor]string{
	office.ThemeDark1:             "dk1",
	office.ThemeLight1:            "lt1",
	office.ThemeDark2:             "dk2",
	office.ThemeLight2:            "lt2",
	office.ThemeAccent1:           "accent1",
	office.ThemeAccent2:           "accent2",
	office.ThemeAccent3:           "accent3",
	office.ThemeAccent4:           "accent4",
	office.ThemeAccent5:           "accent5",
	office.ThemeAccent6:           "accent6",
	office.ThemeHyperlink:         "hlink",
	office.ThemeFollowedHyperlink: "folHlink",
	office.ThemeText1:             "tx1",
	office.ThemeBackground1:       "bg1",
	office.ThemeText2:             "tx2",
	office.ThemeBackground2:       "bg2",
}

var slotThemes = func() map[string]office.ThemeColor {
	m := make(map[string]office.ThemeColor, len(themeSlots))
	for t, s := range themeSlots {
		m[s] = t
	}
	return m
}()

var lineStyles = map[office.LineStyle]pptx.BorderStyle{
	office.LineSolid:   pptx.BorderSolid,
	office.LineDash:    pptx.BorderDash,
	office.LineDot:     pptx.BorderDot,
	office.LineDashDot: pptx.BorderDashDot,
}

var hAligns = map[office.HAlign]pptx.HorizontalAlignment{
	office.HAlignLeft:    pptx.HorizontalLeft,
	office.HAlignCenter:  pptx.HorizontalCenter,
	office.HAlignRight:   pptx.HorizontalRight,
	office.HAlignJustify: pptx.HorizontalJustify,
}

var vAligns = map[office.VAlign]pptx.VerticalAlignment{
	office.VAlignTop:    pptx.VerticalTop,
	office.VAlignMiddle: pptx.VerticalMiddle,
	office.VAlignBottom: pptx.VerticalBottom,
}

var geometries = map[office.AutoShapeKind]pptx.AutoShapeType{
	office.AutoShapeRectangle:        pptx.AutoShapeRectangle,
	office.AutoShapeRoundedRectangle: pptx.AutoShapeRoundedRect,
	office.AutoShapeEllipse:          pptx.AutoShapeEllipse,
}

// toModelColor converts c with the given opacity (0..255). ok is false for
// the zero Color.
func toModelColor(c office.Color, alpha uint8) (pptx.Color, bool) {
	if !c.Valid {
		return pptx.Color{}, false
	}
	if c.IsTheme() {
		slot, found := themeSlots[c.Theme]
		if !found {
			return pptx.Color{}, false
		}
		return pptx.NewSchemeColor(slot).WithAlpha(alpha), true
	}
	return pptx.NewColor(c.RGB.Hex()).WithAlpha(alpha), true
}

func fromModelColor(c pptx.Color) office.Color {
	if c.IsScheme() {
		if t, ok := slotThemes[c.Scheme]; ok {
			return office.ThemeColorOf(t)
		}
		c = c.Resolve()
	}
	if len(c.ARGB) != 8 {
		return office.Color{}
	}
	v, err := strconv.ParseUint(c.ARGB[2:], 16, 32)
	if err != nil {
		return office.Color{}
	}
	return office.RGBColor(office.RGB(v))
}

// opacity converts a 0..1 transparency into an alpha byte.
func opacity(transparency float64) uint8 {
	t := math.Max(0, math.Min(1, transparency))
	return uint8(math.Round((1 - t) * 255))
}

func fromModelLine(s pptx.BorderStyle) office.LineStyle {
	for k, v := range lineStyles {
		if v == s {
			return k
		}
	}
	return office.LineSolid
}

func fromModelBorder(b *pptx.Border) office.BorderStyle {
	if !b.IsVisible() {
		return office.NoBorder()
	}
	return office.BorderStyle{
		Visible: true,
		Weight:  pptx.EMUToPoint(b.Width),
		Color:   fromModelColor(b.Color),
		Line:    fromModelLine(b.Style),
	}
}

func toModelBorder(b office.BorderStyle) *pptx.Border {
	if !b.Visible {
		return pptx.NewBorder()
	}
	style, ok := lineStyles[b.Line]
	if !ok {
		style = pptx.BorderSolid
	}
	c, ok := toModelColor(b.Color, 0xFF)
	if !ok {
		c = pptx.ColorBlack
	}
	return &pptx.Border{Style: style, Width: pptx.Point(b.Weight), Color: c}
}

func fromModelFont(f *pptx.Font) office.FontStyle {
	if f == nil {
		return office.FontStyle{}
	}
	return office.FontStyle{
		Name:   f.Name,
		Size:   f.Size,
		Bold:   f.Bold,
		Italic: f.Italic,
		Color:  fromModelColor(f.Color),
	}
}

// applyFont copies the set fields of fs onto f. Bold and italic are always applied.
func applyFont(f *pptx.Font, fs office.FontStyle) {
	if fs.Name != "" {
		f.SetName(fs.Name)
	}
	if fs.Size > 0 {
		f.SetSize(fs.Size)
	}
	f.SetBold(fs.Bold).SetItalic(fs.Italic)
	if c, ok := toModelColor(fs.Color, 0xFF); ok {
		f.SetColor(c)
	}
}

func shapeType(s pptx.Shape) office.ShapeType {
	switch s.(type) {
	case *pptx.PlaceholderShape:
		return office.ShapePlaceholder
	case *pptx.RichTextShape:
		return office.ShapeTextBox
	case *pptx.AutoShape:
		return office.ShapeAutoShape
	case *pptx.DrawingShape:
		return office.ShapePicture
	case *pptx.TableShape:
		return office.ShapeTable
	case *pptx.GroupShape:
		return office.ShapeGroup
	case *pptx.LineShape:
		return office.ShapeLine
	}
	return office.ShapeUnknown
}

func toModelFlags(f office.TableFlags) pptx.TableFlags {
	return pptx.TableFlags{
		FirstRow: f.FirstRow,
		LastRow:  f.LastRow,
		BandRow:  f.BandRows,
		FirstCol: f.FirstColumn,
		LastCol:  f.LastColumn,
		BandCol:  f.BandColumns,
	}
}

func fromModelFlags(f pptx.TableFlags) office.TableFlags {
	return office.TableFlags{
		FirstRow:    f.FirstRow,
		LastRow:     f.LastRow,
		BandRows:    f.BandRow,
		FirstColumn: f.FirstCol,
		LastColumn:  f.LastCol,
		BandColumns: f.BandCol,
	}
}
