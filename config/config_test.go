package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/pptassist/office"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

const userConfig = "/home/user/.config/pptassist/config.yaml"

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	loader := NewLoaderWithFS(&MockFileSystem{HomeDir: "/home/user", Files: map[string][]byte{}})

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_NoHomeDir_ReturnsDefaults(t *testing.T) {
	loader := NewLoaderWithFS(&MockFileSystem{HomeDirErr: errors.New("no home")})

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Table.DecimalPlaces)
	assert.Equal(t, "", loader.DefaultPath())
}

func TestLoad_PartialOverride_KeepsOtherDefaults(t *testing.T) {
	yml := `
table:
  decimal_places: 0
  header_theme_color: 5
  header_bold: false
glass_card:
  transparency: "0.25"
host:
  prog_ids: [KWPP.Application]
log:
  level: debug
`
	loader := NewLoaderWithFS(&MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{userConfig: []byte(yml)},
	})

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Table.DecimalPlaces, "explicit zero overrides the default")
	assert.False(t, cfg.Table.HeaderBold)
	assert.Equal(t, 0.25, cfg.GlassCard.Transparency, "weakly typed input")
	assert.Equal(t, []string{"KWPP.Application"}, cfg.Host.ProgIDs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 1.5, cfg.Table.HeaderBorderWeight)
	assert.Equal(t, "Microsoft YaHei", cfg.Text.FontName)
	assert.True(t, cfg.Host.RetryOnStale)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		yml  string
		want string
	}{
		{"malformed yaml", "table: [", "parse config"},
		{"unknown key", "table:\n  colour: red\n", "decode config"},
		{"bad colour", "table:\n  border_color: '#12'\n", "table.border_color"},
		{"bad radius", "glass_card:\n  corner_radius: 0.9\n", "corner_radius"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"empty prog ids", "host:\n  prog_ids: []\n", "host.prog_ids"},
		{"bad theme", "table:\n  header_theme_color: 40\n", "header_theme_color"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loader := NewLoaderWithFS(&MockFileSystem{
				HomeDir: "/home/user",
				Files:   map[string][]byte{userConfig: []byte(tc.yml)},
			})
			_, err := loader.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_ReadError(t *testing.T) {
	loader := NewLoaderWithFS(&MockFileSystem{HomeDir: "/home/user", ReadFileErr: os.ErrPermission})

	_, err := loader.Load()

	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestLoadFile_MustExist(t *testing.T) {
	loader := NewLoaderWithFS(&MockFileSystem{Files: map[string][]byte{"deck.yaml": []byte("text:\n  font_size: 16\n")}})

	cfg, err := loader.LoadFile("deck.yaml")
	require.NoError(t, err)
	assert.Equal(t, 16.0, cfg.Text.FontSize)

	_, err = loader.LoadFile("missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestAccessors(t *testing.T) {
	cfg := DefaultConfig()

	hf := cfg.Table.HeaderFont()
	assert.Equal(t, "Microsoft YaHei", hf.Name)
	assert.True(t, hf.Bold)
	assert.Equal(t, office.RGBColor(0x000000), hf.Color)

	cfg.Table.HeaderThemeColor = int(office.ThemeAccent1)
	assert.Equal(t, office.ThemeColorOf(office.ThemeAccent1), cfg.Table.HeaderFont().Color)

	assert.False(t, cfg.Table.HeaderFillColor().Valid)
	assert.Equal(t, office.RGBColor(0xF2F2F2), cfg.Table.AlternateFillColor())
	assert.Equal(t, office.SolidBorder(1.5, office.RGBColor(0)), cfg.Table.HeaderRule())
	assert.Equal(t, office.SolidBorder(0.75, office.RGBColor(0)), cfg.Table.BodyRule())
	assert.Equal(t, office.FontStyle{Name: "Microsoft YaHei", Size: 14}, cfg.Text.Font())
	assert.Equal(t, office.FontStyle{Name: "Microsoft YaHei", Size: 10.5, Color: office.RGBColor(0)}, cfg.TableBodyFont())

	cfg.Table.BodyFontName, cfg.Table.BodyFontSize = "", 0
	cfg.Text.FontName = "Segoe UI"
	assert.Equal(t, office.FontStyle{Name: "Segoe UI", Size: 14, Color: office.RGBColor(0)}, cfg.TableBodyFont())

	style := cfg.GlassCardStyle("Q3")
	assert.Equal(t, "Q3", style.Title)
	assert.Equal(t, office.RGBColor(0x1E3A5F), style.BaseColor)
	assert.Equal(t, 0.6, style.Transparency)
	assert.Equal(t, 20.0, style.TitleFont.Size)
	assert.True(t, style.TitleFont.Bold)
}
