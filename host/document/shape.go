package document

import (
	"fmt"

	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
)

// shape refers to a top-level shape of a slide. The pointer is the fast path;
// when the shape has been removed and replaced (for example by a reload of
// the slide) the context finds it again by name.
type shape struct {
	app   *Application
	slide *pptx.Slide
	ref   pptx.Shape
	name  string
}

func newShape(app *Application, slide *pptx.Slide, m pptx.Shape) *shape {
	return &shape{app: app, slide: slide, ref: m, name: m.GetName()}
}

// resolve returns the live model shape, or ErrStale when it is gone.
func (s *shape) resolve() (pptx.Shape, error) {
	if s.slide == nil {
		return nil, office.ErrStale
	}
	if s.slide.IndexOf(s.ref) >= 0 {
		return s.ref, nil
	}
	if office.NameKey(s.name) != "" {
		if m := s.slide.FindShapeByName(s.name, office.SameName); m != nil {
			s.app.log.Debug("shape re-resolved by name", "name", s.name)
			s.ref = m
			return m, nil
		}
	}
	return nil, fmt.Errorf("shape %q: %w", s.name, office.ErrStale)
}

// read resolves the shape and applies fn, returning def on failure.
func read[T any](s *shape, op string, def T, fn func(pptx.Shape) (T, error)) T {
	return office.Read(s.app.log, op, def, func() (T, error) {
		m, err := s.resolve()
		if err != nil {
			return def, err
		}
		return fn(m)
	})
}

func (s *shape) write(op string, fn func(pptx.Shape) error) bool {
	return office.Write(s.app.log, op, func() error {
		m, err := s.resolve()
		if err != nil {
			return err
		}
		return fn(m)
	})
}

func (s *shape) Name() string {
	return read(s, "shape.Name", "", func(m pptx.Shape) (string, error) {
		return m.GetName(), nil
	})
}

func (s *shape) SetName(name string) {
	s.write("shape.SetName", func(m pptx.Shape) error {
		m.SetName(name)
		s.name = name
		return nil
	})
}

func (s *shape) ID() int {
	return read(s, "shape.ID", 0, func(m pptx.Shape) (int, error) {
		return m.GetID(), nil
	})
}

func (s *shape) Type() office.ShapeType {
	return read(s, "shape.Type", office.ShapeUnknown, func(m pptx.Shape) (office.ShapeType, error) {
		return shapeType(m), nil
	})
}

func (s *shape) Bounds() office.ShapeRect {
	return read(s, "shape.Bounds", office.ShapeRect{}, func(m pptx.Shape) (office.ShapeRect, error) {
		return office.NewShapeRect(
			pptx.EMUToPoint(m.GetOffsetX()),
			pptx.EMUToPoint(m.GetOffsetY()),
			pptx.EMUToPoint(m.GetWidth()),
			pptx.EMUToPoint(m.GetHeight()),
		), nil
	})
}

func (s *shape) SetBounds(r office.ShapeRect) {
	s.write("shape.SetBounds", func(m pptx.Shape) error {
		setModelBounds(m, r)
		return nil
	})
}

// setModelBounds replaces a shape's geometry; groups scale their children.
func setModelBounds(m pptx.Shape, r office.ShapeRect) {
	x, y := pptx.Point(r.Left), pptx.Point(r.Top)
	w, h := pptx.Point(r.Width), pptx.Point(r.Height)
	if g, ok := m.(*pptx.GroupShape); ok {
		g.MoveTo(x, y)
		g.Resize(w, h)
		return
	}
	m.SetPosition(x, y)
	m.SetSize(w, h)
}

func (s *shape) Rotation() float64 {
	return read(s, "shape.Rotation", 0.0, func(m pptx.Shape) (float64, error) {
		return float64(m.GetRotation()), nil
	})
}

func (s *shape) Visible() bool {
	return read(s, "shape.Visible", false, func(m pptx.Shape) (bool, error) {
		return !m.IsHidden(), nil
	})
}

func (s *shape) HasText() bool {
	return read(s, "shape.HasText", false, func(m pptx.Shape) (bool, error) {
		switch m.(type) {
		case *pptx.RichTextShape, *pptx.PlaceholderShape, *pptx.AutoShape:
			return true, nil
		}
		return false, nil
	})
}

func (s *shape) Text() string {
	return read(s, "shape.Text", "", func(m pptx.Shape) (string, error) {
		switch v := m.(type) {
		case *pptx.PlaceholderShape:
			return v.GetText(), nil
		case *pptx.RichTextShape:
			return v.GetText(), nil
		case *pptx.AutoShape:
			return v.GetText(), nil
		}
		return "", fmt.Errorf("%T has no text frame: %w", m, office.ErrUnsupported)
	})
}

func (s *shape) SetText(text string) {
	s.write("shape.SetText", func(m pptx.Shape) error {
		switch v := m.(type) {
		case *pptx.PlaceholderShape:
			v.SetText(text)
		case *pptx.RichTextShape:
			v.SetText(text)
		case *pptx.AutoShape:
			v.SetText(text)
		default:
			return fmt.Errorf("%T has no text frame: %w", m, office.ErrUnsupported)
		}
		return nil
	})
}

func (s *shape) HasTable() bool {
	return read(s, "shape.HasTable", false, func(m pptx.Shape) (bool, error) {
		_, ok := m.(*pptx.TableShape)
		return ok, nil
	})
}

func (s *shape) Table() office.Table {
	if !s.HasTable() {
		return nil
	}
	return &table{shape: s}
}

func (s *shape) Delete() bool {
	return s.write("shape.Delete", func(m pptx.Shape) error {
		if !s.slide.RemoveShapeByPointer(m) {
			return office.ErrStale
		}
		s.app.liveSelection()
		return nil
	})
}

func (s *shape) Native() any {
	m, err := s.resolve()
	if err != nil {
		return nil
	}
	return m
}
