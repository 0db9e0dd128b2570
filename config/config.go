// Package config holds the declarative settings the services read at call
// time: table presets, text defaults, glass card look, host attachment and
// logging.
package config

// Config holds all application configuration values.
// Values in the config file override defaults, including explicit zero
// values. Missing keys keep their defaults.
type Config struct {
	Table     TableConfig     `mapstructure:"table"`
	Text      TextConfig      `mapstructure:"text"`
	GlassCard GlassCardConfig `mapstructure:"glass_card"`
	Host      HostConfig      `mapstructure:"host"`
	Log       LogConfig       `mapstructure:"log"`
}

// TableConfig drives the table presets. Colours are "#RRGGBB"; an empty
// colour means "leave as is".
type TableConfig struct {
	HeaderFontName   string  `mapstructure:"header_font_name"`
	HeaderFontSize   float64 `mapstructure:"header_font_size"`
	HeaderBold       bool    `mapstructure:"header_bold"`
	HeaderFontColor  string  `mapstructure:"header_font_color"`
	HeaderThemeColor int     `mapstructure:"header_theme_color"` // 1..16 wins over header_font_color, 0 = unused
	HeaderFill       string  `mapstructure:"header_fill"`

	BodyFontName  string  `mapstructure:"body_font_name"`
	BodyFontSize  float64 `mapstructure:"body_font_size"`
	BodyFontColor string  `mapstructure:"body_font_color"`
	AlternateFill string  `mapstructure:"alternate_fill"`

	BorderColor        string  `mapstructure:"border_color"`
	HeaderBorderWeight float64 `mapstructure:"header_border_weight"`
	BodyBorderWeight   float64 `mapstructure:"body_border_weight"`

	StyleID       string `mapstructure:"style_id"`
	DecimalPlaces int    `mapstructure:"decimal_places"`
}

// TextConfig holds default text settings.
type TextConfig struct {
	FontName string  `mapstructure:"font_name"`
	FontSize float64 `mapstructure:"font_size"`
}

// GlassCardConfig describes the default glass card.
type GlassCardConfig struct {
	BaseColor          string  `mapstructure:"base_color"`
	HighlightColor     string  `mapstructure:"highlight_color"`
	Transparency       float64 `mapstructure:"transparency"`
	CornerRadius       float64 `mapstructure:"corner_radius"`
	BorderColor        string  `mapstructure:"border_color"`
	BorderWeight       float64 `mapstructure:"border_weight"`
	ShadowBlur         float64 `mapstructure:"shadow_blur"`
	ShadowDistance     float64 `mapstructure:"shadow_distance"`
	ShadowTransparency float64 `mapstructure:"shadow_transparency"`
	WidthRatio         float64 `mapstructure:"width_ratio"`
	HeightRatio        float64 `mapstructure:"height_ratio"`
	TitleFontSize      float64 `mapstructure:"title_font_size"`
	TitleFontColor     string  `mapstructure:"title_font_color"`
}

// HostConfig controls attachment to a running application.
type HostConfig struct {
	ProgIDs      []string `mapstructure:"prog_ids"`
	RetryOnStale bool     `mapstructure:"retry_on_stale"`
}

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Table: TableConfig{
			HeaderFontName:     "Microsoft YaHei",
			HeaderFontSize:     12,
			HeaderBold:         true,
			HeaderFontColor:    "#000000",
			BodyFontName:       "Microsoft YaHei",
			BodyFontSize:       10.5,
			BodyFontColor:      "#000000",
			AlternateFill:      "#F2F2F2",
			BorderColor:        "#000000",
			HeaderBorderWeight: 1.5,
			BodyBorderWeight:   0.75,
			StyleID:            "{5940675A-B579-460E-94D1-54222C63F5DA}",
			DecimalPlaces:      2,
		},
		Text: TextConfig{
			FontName: "Microsoft YaHei",
			FontSize: 14,
		},
		GlassCard: GlassCardConfig{
			BaseColor:          "#1E3A5F",
			HighlightColor:     "#FFFFFF",
			Transparency:       0.6,
			CornerRadius:       0.08,
			BorderColor:        "#FFFFFF",
			BorderWeight:       1,
			ShadowBlur:         12,
			ShadowDistance:     4,
			ShadowTransparency: 0.7,
			WidthRatio:         0.4,
			HeightRatio:        0.3,
			TitleFontSize:      20,
			TitleFontColor:     "#FFFFFF",
		},
		Host: HostConfig{
			ProgIDs:      []string{"KWPP.Application", "PowerPoint.Application"},
			RetryOnStale: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
