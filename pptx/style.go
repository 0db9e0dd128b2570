package pptx

import (
	"fmt"
	"strings"
)

// Color is either an explicit ARGB value or a reference to a theme colour
// slot. For scheme colours only the alpha byte of ARGB is meaningful.
type Color struct {
	ARGB   string // 8-character hex string, e.g. "FF000000" for opaque black
	Scheme string // theme slot such as "accent1" or "tx1"; empty for explicit colours
}

// Predefined colors.
var (
	ColorBlack = Color{ARGB: "FF000000"}
	ColorWhite = Color{ARGB: "FFFFFFFF"}
	ColorRed   = Color{ARGB: "FFFF0000"}
	ColorGreen = Color{ARGB: "FF00FF00"}
	ColorBlue  = Color{ARGB: "FF0000FF"}
)

// NewColor creates a Color from a hex string.
// Accepts 6-char RGB (e.g. "FF0000") or 8-char ARGB (e.g. "FFFF0000").
// A leading "#" is stripped; invalid input falls back to black.
func NewColor(argb string) Color {
	argb = strings.ToUpper(strings.TrimPrefix(argb, "#"))
	if len(argb) == 6 {
		argb = "FF" + argb
	}
	if !isValidARGB(argb) {
		return ColorBlack
	}
	return Color{ARGB: argb}
}

// NewRGBColor creates an opaque colour from its components.
func NewRGBColor(r, g, b uint8) Color {
	return Color{ARGB: fmt.Sprintf("FF%02X%02X%02X", r, g, b)}
}

// NewSchemeColor returns an opaque reference to a theme colour slot.
func NewSchemeColor(slot string) Color {
	return Color{ARGB: "FF000000", Scheme: slot}
}

// WithAlpha returns a copy with the alpha byte replaced.
func (c Color) WithAlpha(a uint8) Color {
	rgb := "000000"
	if len(c.ARGB) == 8 {
		rgb = c.ARGB[2:]
	}
	c.ARGB = fmt.Sprintf("%02X%s", a, rgb)
	return c
}

// IsScheme reports whether the colour refers to a theme slot.
func (c Color) IsScheme() bool { return c.Scheme != "" }

func isValidARGB(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// GetRed returns the red component (0-255).
func (c Color) GetRed() uint8 { return parseHexByte(c.ARGB, 2) }

// GetGreen returns the green component (0-255).
func (c Color) GetGreen() uint8 { return parseHexByte(c.ARGB, 4) }

// GetBlue returns the blue component (0-255).
func (c Color) GetBlue() uint8 { return parseHexByte(c.ARGB, 6) }

// GetAlpha returns the alpha component (0-255).
func (c Color) GetAlpha() uint8 { return parseHexByte(c.ARGB, 0) }

func parseHexByte(s string, offset int) uint8 {
	if offset+2 > len(s) {
		return 0
	}
	h := hexVal(s[offset])
	l := hexVal(s[offset+1])
	if h < 0 || l < 0 {
		return 0
	}
	return uint8(h<<4 | l)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// Font represents text run properties.
type Font struct {
	Name   string
	NameEA string  // east-asian typeface
	Size   float64 // in points
	Bold   bool
	Italic bool
	Color  Color
}

// NewFont creates a new Font with defaults.
func NewFont() *Font {
	return &Font{
		Name:  "Calibri",
		Size:  18,
		Color: ColorBlack,
	}
}

// Clone returns a copy of f.
func (f *Font) Clone() *Font {
	if f == nil {
		return NewFont()
	}
	c := *f
	return &c
}

// SetBold sets the bold property and returns the font for chaining.
func (f *Font) SetBold(bold bool) *Font {
	f.Bold = bold
	return f
}

// SetItalic sets the italic property.
func (f *Font) SetItalic(italic bool) *Font {
	f.Italic = italic
	return f
}

// SetSize sets the font size in points (clamped to 1–4000).
func (f *Font) SetSize(size float64) *Font {
	if size < 1 {
		size = 1
	}
	if size > 4000 {
		size = 4000
	}
	f.Size = size
	return f
}

// SetColor sets the font color.
func (f *Font) SetColor(color Color) *Font {
	f.Color = color
	return f
}

// SetName sets the latin and east-asian typeface.
func (f *Font) SetName(name string) *Font {
	f.Name = name
	f.NameEA = name
	return f
}

// Alignment represents paragraph alignment.
type Alignment struct {
	Horizontal HorizontalAlignment
	Level      int
}

// HorizontalAlignment represents horizontal text alignment.
type HorizontalAlignment string

const (
	HorizontalLeft    HorizontalAlignment = "l"
	HorizontalCenter  HorizontalAlignment = "ctr"
	HorizontalRight   HorizontalAlignment = "r"
	HorizontalJustify HorizontalAlignment = "just"
)

// VerticalAlignment is the text anchor of a text body or table cell.
type VerticalAlignment string

const (
	VerticalTop    VerticalAlignment = "t"
	VerticalMiddle VerticalAlignment = "ctr"
	VerticalBottom VerticalAlignment = "b"
)

// NewAlignment creates a new Alignment with defaults.
func NewAlignment() *Alignment {
	return &Alignment{Horizontal: HorizontalLeft}
}

// SetHorizontal sets horizontal alignment.
func (a *Alignment) SetHorizontal(h HorizontalAlignment) *Alignment {
	a.Horizontal = h
	return a
}

// Fill represents a shape or cell fill. Alpha is carried by the colours.
type Fill struct {
	Type     FillType
	Color    Color
	EndColor Color // for gradient fills
	Rotation int   // gradient rotation in degrees
}

// FillType represents the type of fill.
type FillType int

const (
	FillNone FillType = iota
	FillSolid
	FillGradientLinear
)

// NewFill creates a new Fill with no fill.
func NewFill() *Fill {
	return &Fill{Type: FillNone}
}

// SetSolid sets a solid fill.
func (f *Fill) SetSolid(color Color) *Fill {
	f.Type = FillSolid
	f.Color = color
	return f
}

// SetGradientLinear sets a linear gradient fill. Rotation is normalized to 0–359.
func (f *Fill) SetGradientLinear(startColor, endColor Color, rotation int) *Fill {
	f.Type = FillGradientLinear
	f.Color = startColor
	f.EndColor = endColor
	f.Rotation = ((rotation % 360) + 360) % 360
	return f
}

// Clear removes the fill.
func (f *Fill) Clear() *Fill {
	*f = Fill{Type: FillNone}
	return f
}

// Border represents an outline or a table cell edge.
type Border struct {
	Style BorderStyle
	Width int64 // in EMU
	Color Color
}

// BorderStyle represents the border line style.
type BorderStyle string

const (
	// BorderInherit leaves the line to the table style or shape default.
	BorderInherit BorderStyle = ""
	BorderNone    BorderStyle = "none"
	BorderSolid   BorderStyle = "solid"
	BorderDash    BorderStyle = "dash"
	BorderDot     BorderStyle = "dot"
	BorderDashDot BorderStyle = "dashDot"
)

// NewBorder creates a new Border with no line.
func NewBorder() *Border {
	return &Border{Style: BorderNone}
}

// IsVisible reports whether the border draws a line.
func (b *Border) IsVisible() bool {
	return b != nil && b.Style != BorderNone && b.Style != BorderInherit
}

// Shadow represents an outer shadow effect.
type Shadow struct {
	Visible    bool
	Direction  int     // in degrees
	Distance   float64 // in points
	BlurRadius float64 // in points
	Color      Color   // alpha carries the shadow opacity
}

// NewShadow creates a hidden, half-transparent black shadow.
func NewShadow() *Shadow {
	return &Shadow{
		Direction: 45,
		Color:     Color{ARGB: "80000000"},
	}
}

// SetVisible sets shadow visibility.
func (s *Shadow) SetVisible(v bool) *Shadow {
	s.Visible = v
	return s
}

// SetDirection sets shadow direction in degrees (normalized to 0–359).
func (s *Shadow) SetDirection(d int) *Shadow {
	s.Direction = ((d % 360) + 360) % 360
	return s
}

// SetDistance sets shadow distance in points (clamped to >= 0).
func (s *Shadow) SetDistance(d float64) *Shadow {
	if d < 0 {
		d = 0
	}
	s.Distance = d
	return s
}
