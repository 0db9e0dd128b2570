package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/pptassist/host/automation"
	"github.com/VantageDataChat/pptassist/host/automation/automationtest"
	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/service"
)

func TestGlassCardCentredWithoutSelection(t *testing.T) {
	for _, f := range fixtures(t, scenarioBoxes) {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewGlassCardService(f.app, f.renderer, nil, nil)

			card, err := svc.CreateGlassCard(service.GlassCardOptions{Title: "Revenue"})

			require.NoError(t, err)
			require.NotNil(t, card)
			r := card.Bounds()
			assert.InDelta(t, 288, r.Width, 0.01)
			assert.InDelta(t, 162, r.Height, 0.01)
			assert.InDelta(t, 360, r.CenterX(), 0.01)
			assert.InDelta(t, 270, r.CenterY(), 0.01)
			assert.Contains(t, card.Text(), "Revenue")
		})
	}
}

func TestGlassCardCoversSelection(t *testing.T) {
	for _, f := range fixtures(t, scenarioBoxes, "Box C") {
		t.Run(f.name, func(t *testing.T) {
			svc := service.NewGlassCardService(f.app, f.renderer, nil, nil)

			card, err := svc.CreateGlassCard(service.GlassCardOptions{})

			require.NoError(t, err)
			require.NotNil(t, card)
			assert.True(t, card.Bounds().ApproxEqual(office.NewShapeRect(500, 20, 50, 50), 0.01))
		})
	}
}

func TestGlassCardExplicitRectAndStyle(t *testing.T) {
	f := automationFixture(t, scenarioBoxes, nil)
	svc := service.NewGlassCardService(f.app, f.renderer, nil, nil)
	rect := office.NewShapeRect(30, 40, 200, 100)
	style := office.GlassCardStyle{BaseColor: office.RGBColor(0x102030), Transparency: 0.5}

	card, err := svc.CreateGlassCard(service.GlassCardOptions{Title: "KPI", Rect: &rect, Style: &style})

	require.NoError(t, err)
	require.NotNil(t, card)
	assert.True(t, card.Bounds().ApproxEqual(rect, 0.01))
	assert.Equal(t, "KPI", card.Text())
	assert.Equal(t, 1, f.host.UndoEntries())
}

func TestGlassCardContractErrors(t *testing.T) {
	f := documentFixture(t, scenarioBoxes, nil)

	_, err := service.NewGlassCardService(f.app, nil, nil, nil).CreateGlassCard(service.GlassCardOptions{})
	assert.ErrorIs(t, err, office.ErrNilArgument)

	host := automationtest.New()
	app, err := automation.New(host.Provider())
	require.NoError(t, err)
	t.Cleanup(app.Close)
	svc := service.NewGlassCardService(app, automation.NewGlassCardRenderer(app), nil, nil)

	_, err = svc.CreateGlassCard(service.GlassCardOptions{Title: "x"})
	require.ErrorIs(t, err, office.ErrNoActiveSlide)
	var ce *office.ContractError
	assert.True(t, errors.As(err, &ce))
}

type failingRenderer struct{}

func (failingRenderer) Render(office.Slide, office.ShapeRect, office.GlassCardStyle) (office.Shape, error) {
	return nil, office.ErrUnsupported
}

func TestGlassCardRendererFailure(t *testing.T) {
	f := documentFixture(t, scenarioBoxes, nil)
	svc := service.NewGlassCardService(f.app, failingRenderer{}, nil, nil)

	_, err := svc.CreateGlassCard(service.GlassCardOptions{})

	assert.ErrorIs(t, err, office.ErrUnsupported)
}

func TestGlassCardWithoutSlideSize(t *testing.T) {
	f := automationFixture(t, scenarioBoxes, nil)
	f.host.Fail("PageSetup", office.ErrUnsupported, 0)
	log := &recordLogger{}
	svc := service.NewGlassCardService(f.app, f.renderer, nil, log)

	card, err := svc.CreateGlassCard(service.GlassCardOptions{Title: "Revenue"})

	require.NoError(t, err)
	assert.Nil(t, card)
	assert.Contains(t, log.warns, "slide size unavailable, no card drawn")
	assert.Len(t, f.host.Slide(1).Child("Shapes").Items(), 3)

	rect := office.NewShapeRect(10, 10, 100, 60)
	card, err = svc.CreateGlassCard(service.GlassCardOptions{Rect: &rect})
	require.NoError(t, err)
	require.NotNil(t, card)
}
