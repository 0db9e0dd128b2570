package document

import (
	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
)

type presentation struct {
	app *Application
}

func (p *presentation) Name() string { return p.app.fileName() }

func (p *presentation) FullName() string { return p.app.path }

func (p *presentation) SlideWidth() float64 {
	return pptx.EMUToPoint(p.app.pres.GetLayout().CX)
}

func (p *presentation) SlideHeight() float64 {
	return pptx.EMUToPoint(p.app.pres.GetLayout().CY)
}

func (p *presentation) SlideCount() int { return p.app.pres.GetSlideCount() }

func (p *presentation) Slide(index int) office.Slide {
	s, err := p.app.pres.GetSlide(index - 1)
	if err != nil {
		return nil
	}
	return &slide{app: p.app, model: s}
}

func (p *presentation) Slides() []office.Slide {
	all := p.app.pres.GetAllSlides()
	out := make([]office.Slide, 0, len(all))
	for _, s := range all {
		out = append(out, &slide{app: p.app, model: s})
	}
	return out
}

func (p *presentation) Native() any { return p.app.pres }

type window struct {
	app *Application
}

func (w *window) ActiveSlide() office.Slide {
	s := w.app.modelSlide()
	if s == nil {
		return nil
	}
	return &slide{app: w.app, model: s}
}

func (w *window) Selection() office.Selection { return &selection{app: w.app} }

func (w *window) Native() any { return w.app.modelSlide() }

// selection reads the application's selection state each time it is asked,
// like a host's live selection object.
type selection struct {
	app *Application
}

func (s *selection) Type() office.SelectionType {
	switch {
	case len(s.app.liveSelection()) > 0:
		return office.SelectionShapes
	case len(s.app.selectedSlides) > 0:
		return office.SelectionSlides
	}
	return office.SelectionNone
}

func (s *selection) Count() int {
	switch s.Type() {
	case office.SelectionShapes:
		return len(s.app.selectedShapes)
	case office.SelectionSlides:
		return len(s.app.selectedSlides)
	}
	return 0
}

func (s *selection) Shapes() []office.Shape {
	live := s.app.liveSelection()
	slide := s.app.modelSlide()
	out := make([]office.Shape, 0, len(live))
	for _, m := range live {
		out = append(out, newShape(s.app, slide, m))
	}
	return out
}

func (s *selection) Slides() []office.Slide {
	out := make([]office.Slide, 0, len(s.app.selectedSlides))
	for _, i := range s.app.selectedSlides {
		if m, err := s.app.pres.GetSlide(i); err == nil {
			out = append(out, &slide{app: s.app, model: m})
		}
	}
	return out
}

// Text is always empty: the model has no text cursor.
func (s *selection) Text() string { return "" }

func (s *selection) Native() any { return s.app.liveSelection() }
