package automation

import (
	"errors"
	"fmt"
	"math"

	"github.com/VantageDataChat/pptassist/office"
)

// GlassCardRenderer draws glass cards through the host's fill, line and
// shadow formats.
type GlassCardRenderer struct {
	app *Application
}

// NewGlassCardRenderer returns a renderer bound to app.
func NewGlassCardRenderer(app *Application) *GlassCardRenderer {
	return &GlassCardRenderer{app: app}
}

func (r *GlassCardRenderer) Render(sl office.Slide, rect office.ShapeRect, style office.GlassCardStyle) (office.Shape, error) {
	if sl == nil {
		return nil, office.NewContractError("glass card", office.ErrNilArgument)
	}
	target, ok := sl.(*slide)
	if !ok || target.app != r.app {
		return nil, fmt.Errorf("glass card: slide %T: %w", sl, office.ErrUnsupported)
	}

	var key shapeKey
	var cause error
	ok = r.app.write("glasscard.Render", func(sc *scope, root Object) error {
		k, err := r.draw(sc, root, target.index, rect, style)
		key, cause = k, err
		return err
	})
	if !ok {
		return nil, fmt.Errorf("glass card: %w", cause)
	}
	r.app.log.Debug("glass card drawn", "name", key.name, "slide", target.index)
	return target.shape(key), nil
}

func (r *GlassCardRenderer) draw(sc *scope, root Object, slideIndex int, rect office.ShapeRect, style office.GlassCardStyle) (key shapeKey, err error) {
	sl, err := resolveSlide(sc, root, slideIndex)
	if err != nil {
		return shapeKey{}, err
	}
	shapes, err := sc.get(sl, "Shapes")
	if err != nil {
		return shapeKey{}, err
	}
	card, err := sc.call(shapes, "AddShape", autoShapeCodes[office.AutoShapeRoundedRectangle],
		rect.Left, rect.Top, rect.Width, rect.Height)
	if err != nil {
		return shapeKey{}, err
	}
	sc.writes++
	defer func() {
		if err == nil {
			return
		}
		if _, derr := card.Call("Delete"); derr != nil {
			r.app.log.Warn("half-drawn glass card left on slide", "err", derr.Error())
			return
		}
		key = shapeKey{}
	}()

	id, err := getInt(card, "Id")
	if err != nil {
		return shapeKey{}, err
	}
	name := fmt.Sprintf("Glass Card %d", id)
	if err := sc.put(card, "Name", name); err != nil {
		return shapeKey{}, err
	}
	key = shapeKey{id: id, name: name}

	if adj, err := sc.get(card, "Adjustments"); err == nil {
		radius := math.Max(0, math.Min(style.CornerRadius, 0.5))
		if err := sc.put(adj, "Item", 1, radius); err != nil {
			r.app.log.Debug("corner radius not applied", "err", err.Error())
		}
	}

	if err := r.fill(sc, card, style); err != nil {
		return key, err
	}
	if err := r.effect("line", r.line(sc, card, style)); err != nil {
		return key, err
	}
	if err := r.effect("shadow", r.shadow(sc, card, style)); err != nil {
		return key, err
	}
	if style.Title != "" {
		if err := r.title(sc, card, style); err != nil {
			return key, err
		}
	}
	return key, nil
}

// effect drops a decoration the host has no members for.
func (r *GlassCardRenderer) effect(name string, err error) error {
	if errors.Is(err, office.ErrUnsupported) {
		r.app.log.Debug("glass card effect skipped", "effect", name, "err", err.Error())
		return nil
	}
	return err
}

func colorOr(c office.Color, def office.RGB) office.Color {
	if c.Valid {
		return c
	}
	return office.RGBColor(def)
}

const white = office.RGB(0xFFFFFF)

func (r *GlassCardRenderer) fill(sc *scope, card Object, style office.GlassCardStyle) error {
	fill, err := sc.get(card, "Fill")
	if err != nil {
		return err
	}
	base := colorOr(style.BaseColor, white)
	highlight := base
	if style.HighlightColor.Valid {
		highlight = style.HighlightColor
	}
	fore, err := sc.get(fill, "ForeColor")
	if err != nil {
		return err
	}
	if err := putColor(sc, fore, highlight); err != nil {
		return err
	}
	back, err := sc.get(fill, "BackColor")
	if err != nil {
		return err
	}
	if err := putColor(sc, back, base); err != nil {
		return err
	}
	if err := sc.invoke(fill, "TwoColorGradient", msoGradientDiagonalDown, 1); err != nil {
		return err
	}
	stops, err := sc.get(fill, "GradientStops")
	if err == nil {
		n, cerr := getInt(stops, "Count")
		if cerr == nil && n > 0 {
			for i := 1; i <= n; i++ {
				stop, err := sc.call(stops, "Item", i)
				if err != nil {
					return err
				}
				if err := sc.putOptional(stop, "Transparency", style.Transparency); err != nil {
					return err
				}
			}
			return nil
		}
	}
	// no per-stop transparency on this host
	return sc.putOptional(fill, "Transparency", style.Transparency)
}

func (r *GlassCardRenderer) line(sc *scope, card Object, style office.GlassCardStyle) error {
	ln, err := sc.get(card, "Line")
	if err != nil {
		return err
	}
	if style.BorderWeight <= 0 {
		return sc.put(ln, "Visible", msoFalse)
	}
	if err := sc.put(ln, "Visible", msoTrue); err != nil {
		return err
	}
	fore, err := sc.get(ln, "ForeColor")
	if err != nil {
		return err
	}
	if err := putColor(sc, fore, colorOr(style.BorderColor, white)); err != nil {
		return err
	}
	if err := sc.put(ln, "Weight", style.BorderWeight); err != nil {
		return err
	}
	return sc.putOptional(ln, "Transparency", style.Transparency/2)
}

func (r *GlassCardRenderer) shadow(sc *scope, card Object, style office.GlassCardStyle) error {
	sh, err := sc.get(card, "Shadow")
	if err != nil {
		return err
	}
	if style.ShadowBlur <= 0 && style.ShadowDistance <= 0 {
		return sc.put(sh, "Visible", msoFalse)
	}
	if err := sc.put(sh, "Visible", msoTrue); err != nil {
		return err
	}
	for _, p := range []struct {
		name string
		v    any
	}{
		{"Blur", style.ShadowBlur},
		{"OffsetX", 0.0},
		{"OffsetY", style.ShadowDistance},
		{"Transparency", style.ShadowTransparency},
	} {
		if err := sc.putOptional(sh, p.name, p.v); err != nil {
			return err
		}
	}
	fore, err := sc.get(sh, "ForeColor")
	if err != nil {
		return err
	}
	return sc.put(fore, "RGB", 0)
}

func (r *GlassCardRenderer) title(sc *scope, card Object, style office.GlassCardStyle) error {
	tf, err := sc.get(card, "TextFrame")
	if err != nil {
		return err
	}
	if err := sc.put(tf, "VerticalAnchor", anchorCodes[office.VAlignTop]); err != nil {
		return err
	}
	rng, err := sc.get(tf, "TextRange")
	if err != nil {
		return err
	}
	if err := sc.put(rng, "Text", style.Title); err != nil {
		return err
	}
	pf, err := sc.get(rng, "ParagraphFormat")
	if err != nil {
		return err
	}
	if err := sc.put(pf, "Alignment", alignCodes[office.HAlignLeft]); err != nil {
		return err
	}
	font, err := sc.get(rng, "Font")
	if err != nil {
		return err
	}
	return putFont(sc, font, style.TitleFont)
}
