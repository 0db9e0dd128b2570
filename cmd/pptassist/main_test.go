package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/VantageDataChat/pptassist/host/document"
	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
)

// writeDeck saves a one-slide deck with three boxes and a 3x2 table.
func writeDeck(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	p := pptx.New()
	slide, err := p.GetSlide(0)
	require.NoError(t, err)
	for i, left := range []float64{10, 100, 500} {
		s := slide.CreateAutoShape()
		s.SetName([]string{"Box A", "Box B", "Box C"}[i])
		s.SetPosition(pptx.Point(left), pptx.Point(20))
		s.SetSize(pptx.Point(50), pptx.Point(50))
	}
	tbl := slide.CreateTableShape(3, 2)
	tbl.SetName("Figures")
	tbl.SetPosition(pptx.Point(40), pptx.Point(300))
	tbl.SetSize(pptx.Point(300), pptx.Point(90))

	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, p.Save(path))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func reopen(t *testing.T, path string) *document.Application {
	t.Helper()
	pres, err := pptx.Open(path)
	require.NoError(t, err)
	app, err := document.New(pres, path)
	require.NoError(t, err)
	return app
}

func lefts(t *testing.T, app office.Application) []float64 {
	t.Helper()
	slide := app.ActivePresentation().Slide(1)
	var out []float64
	for _, n := range []string{"Box A", "Box B", "Box C"} {
		s := slide.ShapeByName(n)
		require.NotNil(t, s, n)
		out = append(out, s.Bounds().Left)
	}
	return out
}

func TestAlignAndDistributeCommands(t *testing.T) {
	deck := writeDeck(t)
	out := filepath.Join(t.TempDir(), "out.pptx")

	stdout, err := run(t, "distribute", deck, "--shapes", "Box A,Box B,Box C", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 shape(s) moved")
	got := lefts(t, reopen(t, out))
	assert.InDelta(t, 255, got[1], 0.01)

	_, err = run(t, "align", out, "--shapes", "Box A,Box B,Box C", "--type", "left")
	require.NoError(t, err)
	for _, l := range lefts(t, reopen(t, out)) {
		assert.InDelta(t, 10, l, 0.01)
	}

	original := lefts(t, reopen(t, deck))
	assert.InDelta(t, 100, original[1], 0.01, "input untouched when --out is set")
}

func TestCommandErrors(t *testing.T) {
	deck := writeDeck(t)

	_, err := run(t, "align", deck, "--type", "diagonal")
	assert.ErrorContains(t, err, "invalid --type")

	_, err = run(t, "distribute", deck, "--shapes", "Box A")
	assert.ErrorIs(t, err, office.ErrTooFewShapes)

	_, err = run(t, "swap", deck, "--shapes", "Box A")
	assert.ErrorContains(t, err, "exactly two")

	_, err = run(t, "align")
	assert.ErrorIs(t, err, errNoDeck)
}

func TestFeaturesCommand(t *testing.T) {
	deck := writeDeck(t)

	stdout, err := run(t, "features", deck)

	require.NoError(t, err)
	assert.Contains(t, stdout, "platform: document")
	assert.Contains(t, stdout, "table-basic")
}

func TestTableCommands(t *testing.T) {
	deck := writeDeck(t)

	_, err := run(t, "table", "three-line", deck, "--table", "Figures")
	require.NoError(t, err)

	app := reopen(t, deck)
	table := app.ActivePresentation().Slide(1).ShapeByName("Figures").Table()
	require.NotNil(t, table)
	assert.True(t, table.Cell(1, 1).Border(office.BorderTop).Visible)
	assert.False(t, table.Cell(2, 1).Border(office.BorderBottom).Visible)
	assert.True(t, table.Cell(3, 1).Border(office.BorderBottom).Visible)

	_, err = run(t, "table", "format", deck)
	require.NoError(t, err)

	_, err = run(t, "table", "numbers", deck, "--table", "Box A")
	assert.ErrorContains(t, err, "holds no table")
}

func TestTableImportCommand(t *testing.T) {
	deck := writeDeck(t)
	xlsx := filepath.Join(t.TempDir(), "data.xlsx")
	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &[]any{"Region", "Sales"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A2", &[]any{"North", 1234.5}))
	require.NoError(t, wb.SaveAs(xlsx))
	require.NoError(t, wb.Close())

	stdout, err := run(t, "table", "import", deck, "--xlsx", xlsx, "--range", "A1:B2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "imported 2x2 table")

	_, err = run(t, "table", "numbers", deck, "--decimals", "1", "--table", tableName(t, deck))
	require.NoError(t, err)

	app := reopen(t, deck)
	table := app.ActivePresentation().Slide(1).ShapeByName(tableName(t, deck)).Table()
	require.NotNil(t, table)
	assert.Equal(t, "Region", table.Cell(1, 1).Text())
	assert.Equal(t, "1234.5", table.Cell(2, 2).Text())
}

// tableName returns the name of the last table added to slide 1.
func tableName(t *testing.T, deck string) string {
	t.Helper()
	var name string
	for _, s := range reopen(t, deck).ActivePresentation().Slide(1).Shapes() {
		if s.HasTable() {
			name = s.Name()
		}
	}
	require.NotEmpty(t, name)
	return name
}

func TestGlassCardAndPreview(t *testing.T) {
	deck := writeDeck(t)
	img := filepath.Join(t.TempDir(), "slide.png")

	stdout, err := run(t, "glass-card", deck, "--title", "Revenue", "--shapes", "Box B")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Glass Card")

	_, err = run(t, "preview", deck, "--image", img, "--width", "320")
	require.NoError(t, err)
	info, err := os.Stat(img)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestLiveModeNeedsWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("would attach to a real application")
	}
	t.Setenv("HOME", t.TempDir())

	_, err := run(t, "features", "--live")

	assert.ErrorContains(t, err, "needs windows")
}

func TestGuardedRecoversPanics(t *testing.T) {
	deck := writeDeck(t)
	cmd := &cobra.Command{Use: "boom"}
	cmd.SetErr(&bytes.Buffer{})
	fn := guarded(&globalOptions{slide: 1}, false, func(*cobra.Command, *session, []string) error {
		panic("host exploded")
	})

	err := fn(cmd, []string{deck})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom failed unexpectedly")
}
