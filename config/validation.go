package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/VantageDataChat/pptassist/office"
)

// Validate checks config values for correctness.
func (c *Config) Validate() error {
	var errs []string

	colors := map[string]string{
		"table.header_font_color":     c.Table.HeaderFontColor,
		"table.header_fill":           c.Table.HeaderFill,
		"table.body_font_color":       c.Table.BodyFontColor,
		"table.alternate_fill":        c.Table.AlternateFill,
		"table.border_color":          c.Table.BorderColor,
		"glass_card.base_color":       c.GlassCard.BaseColor,
		"glass_card.highlight_color":  c.GlassCard.HighlightColor,
		"glass_card.border_color":     c.GlassCard.BorderColor,
		"glass_card.title_font_color": c.GlassCard.TitleFontColor,
	}
	for key, v := range colors {
		if _, err := office.ParseColor(v); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}

	// Table
	if c.Table.HeaderFontSize < 0 || c.Table.BodyFontSize < 0 {
		errs = append(errs, "table font sizes must be >= 0")
	}
	if c.Table.HeaderThemeColor < 0 || c.Table.HeaderThemeColor > int(office.ThemeBackground2) {
		errs = append(errs, "table.header_theme_color must be between 0 and 16")
	}
	if c.Table.HeaderBorderWeight <= 0 || c.Table.BodyBorderWeight <= 0 {
		errs = append(errs, "table border weights must be > 0")
	}
	if c.Table.DecimalPlaces < 0 || c.Table.DecimalPlaces > 10 {
		errs = append(errs, "table.decimal_places must be between 0 and 10")
	}

	// Text
	if c.Text.FontSize <= 0 {
		errs = append(errs, "text.font_size must be > 0")
	}

	// Glass card
	g := c.GlassCard
	for key, v := range map[string]float64{
		"glass_card.transparency":        g.Transparency,
		"glass_card.shadow_transparency": g.ShadowTransparency,
	} {
		if v < 0 || v > 1 {
			errs = append(errs, key+" must be between 0 and 1")
		}
	}
	if g.CornerRadius < 0 || g.CornerRadius > 0.5 {
		errs = append(errs, "glass_card.corner_radius must be between 0 and 0.5")
	}
	if g.WidthRatio <= 0 || g.WidthRatio > 1 || g.HeightRatio <= 0 || g.HeightRatio > 1 {
		errs = append(errs, "glass_card width_ratio and height_ratio must be in (0, 1]")
	}
	if g.BorderWeight < 0 || g.ShadowBlur < 0 || g.ShadowDistance < 0 {
		errs = append(errs, "glass_card border and shadow sizes must be >= 0")
	}

	// Host
	if len(c.Host.ProgIDs) == 0 {
		errs = append(errs, "host.prog_ids must not be empty")
	}

	// Log
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format %q must be console or json", c.Log.Format))
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("config validation failed: %v", errs)
	}
	return nil
}
