package automation

import "github.com/VantageDataChat/pptassist/office"

// MsoTriState values.
const (
	msoTrue  = -1
	msoCTrue = 1
	msoFalse = 0
)

func triStateTrue(v int) bool { return v == msoTrue || v == msoCTrue }

func triState(b bool) int {
	if b {
		return msoTrue
	}
	return msoFalse
}

// MsoShapeType values.
const (
	msoAutoShape     = 1
	msoCallout       = 2
	msoChart         = 3
	msoFreeform      = 5
	msoGroup         = 6
	msoLine          = 9
	msoLinkedPicture = 11
	msoPicture       = 13
	msoPlaceholder   = 14
	msoTextEffect    = 15
	msoTextBox       = 17
	msoTable         = 19
	msoGraphic       = 28
	msoLinkedGraphic = 29
)

func shapeTypeOf(code int) office.ShapeType {
	switch code {
	case msoAutoShape, msoFreeform, msoCallout, msoTextEffect:
		return office.ShapeAutoShape
	case msoTextBox:
		return office.ShapeTextBox
	case msoPicture, msoLinkedPicture, msoGraphic, msoLinkedGraphic:
		return office.ShapePicture
	case msoTable:
		return office.ShapeTable
	case msoGroup:
		return office.ShapeGroup
	case msoLine:
		return office.ShapeLine
	case msoPlaceholder:
		return office.ShapePlaceholder
	case msoChart:
		return office.ShapeChart
	}
	return office.ShapeUnknown
}

// PpSelectionType values.
const (
	ppSelectionNone   = 0
	ppSelectionSlides = 1
	ppSelectionShapes = 2
	ppSelectionText   = 3
)

func selectionTypeOf(code int) office.SelectionType {
	switch code {
	case ppSelectionSlides:
		return office.SelectionSlides
	case ppSelectionShapes:
		return office.SelectionShapes
	case ppSelectionText:
		return office.SelectionText
	}
	return office.SelectionNone
}

// PpBorderType values.
var borderCodes = map[office.BorderSide]int{
	office.BorderTop:    1,
	office.BorderLeft:   2,
	office.BorderBottom: 3,
	office.BorderRight:  4,
}

// MsoLineDashStyle values.
const (
	msoLineSolid      = 1
	msoLineSquareDot  = 2
	msoLineRoundDot   = 3
	msoLineDash       = 4
	msoLineDashDot    = 5
	msoLineDashDotDot = 6
	msoLineLongDash   = 7
)

var dashCodes = map[office.LineStyle]int{
	office.LineSolid:   msoLineSolid,
	office.LineDash:    msoLineDash,
	office.LineDot:     msoLineRoundDot,
	office.LineDashDot: msoLineDashDot,
}

func lineStyleOf(code int) office.LineStyle {
	switch code {
	case msoLineDash, msoLineLongDash:
		return office.LineDash
	case msoLineRoundDot, msoLineSquareDot:
		return office.LineDot
	case msoLineDashDot, msoLineDashDotDot:
		return office.LineDashDot
	}
	return office.LineSolid
}

// PpParagraphAlignment values.
var alignCodes = map[office.HAlign]int{
	office.HAlignLeft:    1,
	office.HAlignCenter:  2,
	office.HAlignRight:   3,
	office.HAlignJustify: 4,
}

// MsoVerticalAnchor values.
var anchorCodes = map[office.VAlign]int{
	office.VAlignTop:    1,
	office.VAlignMiddle: 3,
	office.VAlignBottom: 4,
}

// MsoThemeColorIndex values.
var themeCodes = map[office.ThemeColor]int{
	office.ThemeDark1:             1,
	office.ThemeLight1:            2,
	office.ThemeDark2:             3,
	office.ThemeLight2:            4,
	office.ThemeAccent1:           5,
	office.ThemeAccent2:           6,
	office.ThemeAccent3:           7,
	office.ThemeAccent4:           8,
	office.ThemeAccent5:           9,
	office.ThemeAccent6:           10,
	office.ThemeHyperlink:         11,
	office.ThemeFollowedHyperlink: 12,
	office.ThemeText1:             13,
	office.ThemeBackground1:       14,
	office.ThemeText2:             15,
	office.ThemeBackground2:       16,
}

func themeOf(code int) office.ThemeColor {
	for t, c := range themeCodes {
		if c == code {
			return t
		}
	}
	return office.ThemeNone
}

// MsoAutoShapeType values.
var autoShapeCodes = map[office.AutoShapeKind]int{
	office.AutoShapeRectangle:        1,
	office.AutoShapeRoundedRectangle: 5,
	office.AutoShapeEllipse:          9,
}

// MsoGradientStyle value used by the glass card.
const msoGradientDiagonalDown = 4

// toBGR packs an RGB colour in the host's 0x00BBGGRR order.
func toBGR(c office.RGB) int {
	return int(c.Red()) | int(c.Green())<<8 | int(c.Blue())<<16
}

func fromBGR(v int) office.RGB {
	return office.NewRGB(uint8(v), uint8(v>>8), uint8(v>>16))
}
