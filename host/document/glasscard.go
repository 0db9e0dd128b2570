package document

import (
	"fmt"
	"math"

	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
)

// GlassCardRenderer draws glass cards with the model's native effects:
// translucent gradient fill, hairline outline and outer shadow.
type GlassCardRenderer struct {
	app *Application
}

// NewGlassCardRenderer returns a renderer bound to app.
func NewGlassCardRenderer(app *Application) *GlassCardRenderer {
	return &GlassCardRenderer{app: app}
}

func (r *GlassCardRenderer) Render(slide office.Slide, rect office.ShapeRect, style office.GlassCardStyle) (office.Shape, error) {
	if slide == nil {
		return nil, office.NewContractError("glass card", office.ErrNilArgument)
	}
	model, ok := slide.Native().(*pptx.Slide)
	if !ok || model == nil {
		return nil, fmt.Errorf("glass card: slide %T: %w", slide.Native(), office.ErrUnsupported)
	}

	card := pptx.NewAutoShape().SetAutoShapeType(pptx.AutoShapeRoundedRect)
	model.AddShape(card)
	setModelBounds(card, rect)
	card.SetName(fmt.Sprintf("Glass Card %d", card.GetID()))
	radius := math.Max(0, math.Min(style.CornerRadius, 0.5))
	card.SetAdjustValue("adj", int(math.Round(radius*100000)))

	alpha := opacity(style.Transparency)
	base, ok := toModelColor(style.BaseColor, alpha)
	if !ok {
		base = pptx.ColorWhite.WithAlpha(alpha)
	}
	highlight, ok := toModelColor(style.HighlightColor, alpha)
	if !ok {
		highlight = base
	}
	card.SetFill(pptx.NewFill().SetGradientLinear(highlight, base, 45))

	if style.BorderWeight > 0 {
		edge, ok := toModelColor(style.BorderColor, opacity(style.Transparency/2))
		if !ok {
			edge = pptx.ColorWhite.WithAlpha(opacity(style.Transparency / 2))
		}
		card.SetBorder(&pptx.Border{Style: pptx.BorderSolid, Width: pptx.Point(style.BorderWeight), Color: edge})
	}

	if style.ShadowBlur > 0 || style.ShadowDistance > 0 {
		card.SetShadow(&pptx.Shadow{
			Visible:    true,
			Direction:  90,
			Distance:   style.ShadowDistance,
			BlurRadius: style.ShadowBlur,
			Color:      pptx.ColorBlack.WithAlpha(opacity(style.ShadowTransparency)),
		})
	}

	if style.Title != "" {
		card.SetText(style.Title)
		card.SetTextAnchor(pptx.TextAnchorTop)
		for _, p := range card.GetParagraphs() {
			p.GetAlignment().SetHorizontal(pptx.HorizontalLeft)
			for _, e := range p.GetElements() {
				if run, ok := e.(*pptx.TextRun); ok {
					applyFont(run.GetFont(), style.TitleFont)
				}
			}
		}
	}

	r.app.log.Debug("glass card drawn", "name", card.GetName(), "slide", slide.Index())
	return newShape(r.app, model, card), nil
}
