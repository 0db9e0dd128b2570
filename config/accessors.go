package config

import "github.com/VantageDataChat/pptassist/office"

// color parses a validated colour; invalid input yields the zero Color.
func color(s string) office.Color {
	c, err := office.ParseColor(s)
	if err != nil {
		return office.Color{}
	}
	return c
}

// HeaderFont returns the header row font.
func (t TableConfig) HeaderFont() office.FontStyle {
	c := color(t.HeaderFontColor)
	if t.HeaderThemeColor > 0 {
		c = office.ThemeColorOf(office.ThemeColor(t.HeaderThemeColor))
	}
	return office.FontStyle{
		Name:  t.HeaderFontName,
		Size:  t.HeaderFontSize,
		Bold:  t.HeaderBold,
		Color: c,
	}
}

// BodyFont returns the data row font.
func (t TableConfig) BodyFont() office.FontStyle {
	return office.FontStyle{
		Name:  t.BodyFontName,
		Size:  t.BodyFontSize,
		Color: color(t.BodyFontColor),
	}
}

// BorderColorValue returns the rule colour.
func (t TableConfig) BorderColorValue() office.Color { return color(t.BorderColor) }

// HeaderFillColor returns the header background, invalid when unset.
func (t TableConfig) HeaderFillColor() office.Color { return color(t.HeaderFill) }

// AlternateFillColor returns the banded row background, invalid when unset.
func (t TableConfig) AlternateFillColor() office.Color { return color(t.AlternateFill) }

// HeaderRule returns the solid rule drawn above and below the header.
func (t TableConfig) HeaderRule() office.BorderStyle {
	return office.SolidBorder(t.HeaderBorderWeight, t.BorderColorValue())
}

// BodyRule returns the solid rule used inside and under the body.
func (t TableConfig) BodyRule() office.BorderStyle {
	return office.SolidBorder(t.BodyBorderWeight, t.BorderColorValue())
}

// Font returns the default text font.
func (t TextConfig) Font() office.FontStyle {
	return office.FontStyle{Name: t.FontName, Size: t.FontSize}
}

// Style returns the card style with the given title; the title font follows
// the text defaults.
func (g GlassCardConfig) Style(title string, text TextConfig) office.GlassCardStyle {
	return office.GlassCardStyle{
		BaseColor:          color(g.BaseColor),
		HighlightColor:     color(g.HighlightColor),
		Transparency:       g.Transparency,
		CornerRadius:       g.CornerRadius,
		BorderColor:        color(g.BorderColor),
		BorderWeight:       g.BorderWeight,
		ShadowBlur:         g.ShadowBlur,
		ShadowDistance:     g.ShadowDistance,
		ShadowTransparency: g.ShadowTransparency,
		Title:              title,
		TitleFont: office.FontStyle{
			Name:  text.Font().Name,
			Size:  g.TitleFontSize,
			Bold:  true,
			Color: color(g.TitleFontColor),
		},
	}
}

// TableBodyFont returns the data row font. An empty body font name or size
// falls back to the text defaults.
func (c *Config) TableBodyFont() office.FontStyle {
	f, def := c.Table.BodyFont(), c.Text.Font()
	if f.Name == "" {
		f.Name = def.Name
	}
	if f.Size <= 0 {
		f.Size = def.Size
	}
	return f
}

// GlassCardStyle returns the configured card style with a title.
func (c *Config) GlassCardStyle(title string) office.GlassCardStyle {
	return c.GlassCard.Style(title, c.Text)
}
