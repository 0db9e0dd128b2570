package pptx

// Theme colour slots written to every saved file and used to resolve scheme
// colours when rendering previews.
var schemeColors = map[string]string{
	"dk1":      "000000",
	"lt1":      "FFFFFF",
	"dk2":      "44546A",
	"lt2":      "E7E6E6",
	"accent1":  "4472C4",
	"accent2":  "ED7D31",
	"accent3":  "A5A5A5",
	"accent4":  "FFC000",
	"accent5":  "5B9BD5",
	"accent6":  "70AD47",
	"hlink":    "0563C1",
	"folHlink": "954F72",
}

// slot aliases from the master colour map
var schemeAliases = map[string]string{
	"tx1": "dk1",
	"bg1": "lt1",
	"tx2": "dk2",
	"bg2": "lt2",
}

// themeSlotOrder is the element order inside <a:clrScheme>.
var themeSlotOrder = []string{
	"dk1", "lt1", "dk2", "lt2",
	"accent1", "accent2", "accent3", "accent4", "accent5", "accent6",
	"hlink", "folHlink",
}

// Resolve returns an explicit colour for c, looking scheme slots up in the
// default theme and keeping c's alpha. Unknown slots resolve to black.
func (c Color) Resolve() Color {
	if c.Scheme == "" {
		return c
	}
	slot := c.Scheme
	if alias, ok := schemeAliases[slot]; ok {
		slot = alias
	}
	rgb, ok := schemeColors[slot]
	if !ok {
		rgb = "000000"
	}
	alpha := "FF"
	if len(c.ARGB) == 8 {
		alpha = c.ARGB[:2]
	}
	return Color{ARGB: alpha + rgb}
}
