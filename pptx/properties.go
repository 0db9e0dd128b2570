package pptx

import "time"

// DocumentProperties holds the core document properties.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Subject        string
	Description    string
	Keywords       string
	Company        string
}

// NewDocumentProperties creates properties stamped with the current time.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        "pptassist",
		LastModifiedBy: "pptassist",
		Created:        now,
		Modified:       now,
	}
}

// DocumentLayout represents the slide dimensions.
type DocumentLayout struct {
	CX   int64 // width in EMU
	CY   int64 // height in EMU
	Name string
}

// Standard layout names.
const (
	LayoutScreen4x3   = "screen4x3"
	LayoutScreen16x9  = "screen16x9"
	LayoutScreen16x10 = "screen16x10"
	LayoutA4          = "A4"
	LayoutCustom      = "custom"
)

// NewDocumentLayout creates a default 4:3 layout (10in × 7.5in).
func NewDocumentLayout() *DocumentLayout {
	return &DocumentLayout{
		CX:   9144000,
		CY:   6858000,
		Name: LayoutScreen4x3,
	}
}

// SetLayout applies a predefined layout. Unknown names are ignored.
func (dl *DocumentLayout) SetLayout(name string) {
	switch name {
	case LayoutScreen4x3:
		dl.CX, dl.CY = 9144000, 6858000
	case LayoutScreen16x9:
		dl.CX, dl.CY = 12192000, 6858000
	case LayoutScreen16x10:
		dl.CX, dl.CY = 10972800, 6858000
	case LayoutA4:
		dl.CX, dl.CY = 9906000, 6858000
	default:
		return
	}
	dl.Name = name
}

// SetCustomLayout sets custom dimensions in EMU. Non-positive values fall
// back to the 4:3 defaults.
func (dl *DocumentLayout) SetCustomLayout(cx, cy int64) {
	if cx <= 0 {
		cx = 9144000
	}
	if cy <= 0 {
		cy = 6858000
	}
	dl.CX = cx
	dl.CY = cy
	dl.Name = LayoutCustom
}

// layoutName returns the predefined name matching cx×cy, or LayoutCustom.
func layoutName(cx, cy int64) string {
	switch {
	case cx == 9144000 && cy == 6858000:
		return LayoutScreen4x3
	case cx == 12192000 && cy == 6858000:
		return LayoutScreen16x9
	case cx == 10972800 && cy == 6858000:
		return LayoutScreen16x10
	case cx == 9906000 && cy == 6858000:
		return LayoutA4
	}
	return LayoutCustom
}
