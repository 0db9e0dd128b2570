package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/pptassist/host/automation"
	"github.com/VantageDataChat/pptassist/host/automation/automationtest"
	"github.com/VantageDataChat/pptassist/host/document"
	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
)

type recordLogger struct {
	office.NopLogger
	warns []string
}

func (l *recordLogger) Warn(msg string, _ ...any) { l.warns = append(l.warns, msg) }

type box struct {
	name                     string
	left, top, width, height float64
}

// fixture is one host loaded with the same shapes. host is set for the
// late-bound fixture only.
type fixture struct {
	name     string
	app      office.Application
	renderer office.GlassCardRenderer
	host     *automationtest.Host
}

// scenarioBoxes are three 50pt squares at lefts 10, 100 and 500.
var scenarioBoxes = []box{
	{"Box A", 10, 20, 50, 50},
	{"Box B", 100, 20, 50, 50},
	{"Box C", 500, 20, 50, 50},
}

// fixtures returns a document host and a late-bound host, each holding
// boxes on slide 1 with the named shapes selected.
func fixtures(t *testing.T, boxes []box, selected ...string) []fixture {
	t.Helper()
	return []fixture{
		documentFixture(t, boxes, selected),
		automationFixture(t, boxes, selected),
	}
}

func documentFixture(t *testing.T, boxes []box, selected []string) fixture {
	t.Helper()
	p := pptx.New()
	slide, err := p.GetSlide(0)
	require.NoError(t, err)
	for _, b := range boxes {
		s := slide.CreateAutoShape()
		s.SetName(b.name)
		s.SetPosition(pptx.Point(b.left), pptx.Point(b.top))
		s.SetSize(pptx.Point(b.width), pptx.Point(b.height))
	}
	app, err := document.New(p, "", document.WithSelectedShapes(selected...))
	require.NoError(t, err)
	return fixture{name: "document", app: app, renderer: document.NewGlassCardRenderer(app)}
}

func automationFixture(t *testing.T, boxes []box, selected []string) fixture {
	t.Helper()
	host := automationtest.New()
	host.AddSlide()
	for _, b := range boxes {
		host.AddRect(1, b.name, b.left, b.top, b.width, b.height)
	}
	if len(selected) > 0 {
		host.Select(1, selected...)
	}
	app, err := automation.New(host.Provider())
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return fixture{name: "automation", app: app, renderer: automation.NewGlassCardRenderer(app), host: host}
}

// shapes looks up shapes on slide 1 by name.
func (f fixture) shapes(t *testing.T, names ...string) []office.Shape {
	t.Helper()
	slide := f.app.ActivePresentation().Slide(1)
	require.NotNil(t, slide)
	out := make([]office.Shape, 0, len(names))
	for _, n := range names {
		s := slide.ShapeByName(n)
		require.NotNil(t, s, n)
		out = append(out, s)
	}
	return out
}

func (f fixture) all(t *testing.T, boxes []box) []office.Shape {
	names := make([]string, len(boxes))
	for i, b := range boxes {
		names[i] = b.name
	}
	return f.shapes(t, names...)
}

func bounds(shapes []office.Shape) []office.ShapeRect {
	out := make([]office.ShapeRect, len(shapes))
	for i, s := range shapes {
		out[i] = s.Bounds()
	}
	return out
}

// newTable adds a rows x cols table to slide 1.
func (f fixture) newTable(t *testing.T, rows, cols int) (office.Shape, office.Table) {
	t.Helper()
	slide := f.app.ActivePresentation().Slide(1)
	require.NotNil(t, slide)
	shape := slide.AddTable(rows, cols, office.NewShapeRect(40, 300, 400, 120))
	require.NotNil(t, shape)
	table := shape.Table()
	require.NotNil(t, table)
	return shape, table
}
