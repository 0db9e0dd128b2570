package service

import (
	"fmt"

	"github.com/VantageDataChat/pptassist/config"
	"github.com/VantageDataChat/pptassist/office"
)

// GlassCardOptions controls one card.
type GlassCardOptions struct {
	Title string
	// Rect overrides the computed position.
	Rect *office.ShapeRect
	// Style overrides the configured look; Title is still taken from the
	// options when the style has none.
	Style *office.GlassCardStyle
}

// GlassCardService draws translucent cards through a host renderer.
type GlassCardService struct {
	base
	renderer office.GlassCardRenderer
	cfg      *config.Config
}

// NewGlassCardService returns a service drawing with renderer. A nil cfg
// uses the defaults.
func NewGlassCardService(app office.Application, renderer office.GlassCardRenderer, cfg *config.Config, log office.Logger) *GlassCardService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &GlassCardService{base: newBase(app, log), renderer: renderer, cfg: cfg}
}

// CreateGlassCard draws a card on the active slide. It covers the first
// selected shape, or sits centred on the slide with the configured size
// ratios when nothing is selected.
func (s *GlassCardService) CreateGlassCard(opts GlassCardOptions) (office.Shape, error) {
	const op = "create glass card"
	if s.app == nil || s.renderer == nil {
		return nil, office.NewContractError(op, office.ErrNilArgument)
	}
	slide := office.ActiveSlide(s.app)
	if slide == nil {
		return nil, office.NewContractError(op, office.ErrNoActiveSlide)
	}

	style := s.cfg.GlassCardStyle(opts.Title)
	if opts.Style != nil {
		style = *opts.Style
		if style.Title == "" {
			style.Title = opts.Title
		}
	}
	rect, ok := s.target(opts)
	if !ok {
		s.log.Warn("slide size unavailable, no card drawn", "slide", slide.Index())
		return nil, nil
	}

	s.beginUndo()
	shape, err := s.renderer.Render(slide, rect, style)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if shape == nil {
		s.log.Warn("renderer returned no shape", "slide", slide.Index())
		return nil, nil
	}
	s.log.Info("glass card created", "slide", slide.Index(), "shape", shape.Name())
	return shape, nil
}

func (s *GlassCardService) target(opts GlassCardOptions) (office.ShapeRect, bool) {
	if opts.Rect != nil {
		return *opts.Rect, true
	}
	if sel := office.SelectedShapes(s.app); len(sel) > 0 {
		if r := sel[0].Bounds(); r.Width > 0 && r.Height > 0 {
			return r, true
		}
	}
	p := s.app.ActivePresentation()
	if p == nil {
		return office.ShapeRect{}, false
	}
	w, h := p.SlideWidth(), p.SlideHeight()
	if w <= 0 || h <= 0 {
		return office.ShapeRect{}, false
	}
	g := s.cfg.GlassCard
	cw, ch := w*g.WidthRatio, h*g.HeightRatio
	return office.NewShapeRect((w-cw)/2, (h-ch)/2, cw, ch), true
}
