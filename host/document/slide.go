package document

import (
	"fmt"

	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
)

type slide struct {
	app   *Application
	model *pptx.Slide
}

func (s *slide) Index() int {
	return s.app.pres.IndexOfSlide(s.model) + 1
}

func (s *slide) Name() string {
	if name := s.model.GetName(); name != "" {
		return name
	}
	if i := s.Index(); i > 0 {
		return fmt.Sprintf("Slide %d", i)
	}
	return ""
}

func (s *slide) Shapes() []office.Shape {
	shapes := s.model.GetShapes()
	out := make([]office.Shape, 0, len(shapes))
	for _, m := range shapes {
		out = append(out, newShape(s.app, s.model, m))
	}
	return out
}

func (s *slide) ShapeByName(name string) office.Shape {
	m := s.model.FindShapeByName(name, office.SameName)
	if m == nil {
		return nil
	}
	return newShape(s.app, s.model, m)
}

func (s *slide) AddShape(kind office.AutoShapeKind, rect office.ShapeRect) office.Shape {
	geom, ok := geometries[kind]
	if !ok {
		s.app.log.Warn("unknown auto shape kind", "kind", int(kind))
		return nil
	}
	m := s.model.CreateAutoShape()
	m.SetAutoShapeType(geom)
	setModelBounds(m, rect)
	m.SetName(fmt.Sprintf("%s %d", geometryLabel(kind), m.GetID()))
	return newShape(s.app, s.model, m)
}

func (s *slide) AddTable(rows, cols int, rect office.ShapeRect) office.Shape {
	if rows < 1 || cols < 1 {
		s.app.log.Warn("table needs at least one row and column", "rows", rows, "cols", cols)
		return nil
	}
	m := s.model.CreateTableShape(rows, cols)
	setModelBounds(m, rect)
	m.SetName(fmt.Sprintf("Table %d", m.GetID()))
	return newShape(s.app, s.model, m)
}

func (s *slide) Native() any { return s.model }

func geometryLabel(kind office.AutoShapeKind) string {
	switch kind {
	case office.AutoShapeRoundedRectangle:
		return "Rounded Rectangle"
	case office.AutoShapeEllipse:
		return "Oval"
	}
	return "Rectangle"
}
