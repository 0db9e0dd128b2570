package office

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a 24-bit colour in 0xRRGGBB order.
type RGB uint32

// NewRGB packs red, green and blue components.
func NewRGB(r, g, b uint8) RGB {
	return RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Red returns the red component.
func (c RGB) Red() uint8 { return uint8(c >> 16) }

// Green returns the green component.
func (c RGB) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue component.
func (c RGB) Blue() uint8 { return uint8(c) }

// Hex returns the colour as "RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("%06X", uint32(c)&0xFFFFFF)
}

// ThemeColor is a portable theme colour slot. Hosts translate it into their
// own encoding; the numeric values here are not any host's codes.
type ThemeColor int

const (
	ThemeNone ThemeColor = iota
	ThemeDark1
	ThemeLight1
	ThemeDark2
	ThemeLight2
	ThemeAccent1
	ThemeAccent2
	ThemeAccent3
	ThemeAccent4
	ThemeAccent5
	ThemeAccent6
	ThemeHyperlink
	ThemeFollowedHyperlink
	ThemeText1
	ThemeBackground1
	ThemeText2
	ThemeBackground2
)

// Color is either an explicit RGB value or a theme slot. The zero value is
// "no colour" and means "leave unchanged" wherever a Color is applied.
type Color struct {
	RGB   RGB
	Theme ThemeColor
	Valid bool
}

// RGBColor returns an explicit colour.
func RGBColor(c RGB) Color {
	return Color{RGB: c, Valid: true}
}

// ThemeColorOf returns a theme colour.
func ThemeColorOf(t ThemeColor) Color {
	return Color{Theme: t, Valid: t != ThemeNone}
}

// IsTheme reports whether the colour refers to a theme slot.
func (c Color) IsTheme() bool {
	return c.Valid && c.Theme != ThemeNone
}

// ParseColor parses "#RRGGBB" or "RRGGBB". An empty string yields the zero Color.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return Color{}, nil
	}
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid colour %q: want RRGGBB", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return RGBColor(RGB(v)), nil
}

// FontStyle describes a desired font state. Empty Name, zero Size and an
// invalid Color are left unchanged by adapters.
type FontStyle struct {
	Name   string
	Size   float64
	Bold   bool
	Italic bool
	Color  Color
}

// LineStyle is a border dash pattern.
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDash
	LineDot
	LineDashDot
)

// BorderSide selects one edge of a table cell.
type BorderSide int

const (
	BorderTop BorderSide = iota
	BorderLeft
	BorderBottom
	BorderRight
)

// AllBorderSides lists the four cell edges.
var AllBorderSides = [4]BorderSide{BorderTop, BorderLeft, BorderBottom, BorderRight}

// BorderStyle describes a cell edge. When Visible is false no other field
// carries meaning.
type BorderStyle struct {
	Visible bool
	Weight  float64 // points
	Color   Color
	Line    LineStyle
}

// NoBorder returns a hidden border.
func NoBorder() BorderStyle {
	return BorderStyle{}
}

// SolidBorder returns a visible solid border.
func SolidBorder(weight float64, c Color) BorderStyle {
	return BorderStyle{Visible: true, Weight: weight, Color: c, Line: LineSolid}
}

// HAlign is horizontal paragraph alignment.
type HAlign int

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
	HAlignJustify
)

// VAlign is vertical text anchoring.
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignMiddle
	VAlignBottom
)

// RowStyle is the combined look applied to every cell of a table row.
type RowStyle struct {
	Font       FontStyle
	Horizontal HAlign
	Vertical   VAlign
	Top        BorderStyle
	Bottom     BorderStyle
	Left       BorderStyle
	Right      BorderStyle
	Fill       Color // invalid means no background
}

// Border returns the style for one side.
func (s RowStyle) Border(side BorderSide) BorderStyle {
	switch side {
	case BorderTop:
		return s.Top
	case BorderLeft:
		return s.Left
	case BorderBottom:
		return s.Bottom
	default:
		return s.Right
	}
}

// TableFlags are the table-level emphasis switches.
type TableFlags struct {
	FirstRow    bool
	LastRow     bool
	BandRows    bool
	FirstColumn bool
	LastColumn  bool
	BandColumns bool
}

// GlassCardStyle describes the translucent decorative card drawn by renderers.
type GlassCardStyle struct {
	BaseColor          Color
	HighlightColor     Color
	Transparency       float64 // 0 opaque .. 1 invisible
	CornerRadius       float64 // fraction of the shorter side, 0..0.5
	BorderColor        Color
	BorderWeight       float64
	ShadowBlur         float64
	ShadowDistance     float64
	ShadowTransparency float64
	Title              string
	TitleFont          FontStyle
}
