package automation

import (
	"fmt"

	"github.com/VantageDataChat/pptassist/office"
)

// slide is addressed by its 1-based index in the active presentation.
type slide struct {
	app   *Application
	index int
}

func resolveSlide(sc *scope, root Object, index int) (Object, error) {
	slides, err := sc.path(root, "ActivePresentation", "Slides")
	if err != nil {
		return nil, err
	}
	s, err := sc.call(slides, "Item", index)
	if err != nil {
		return nil, fmt.Errorf("slide %d: %w", index, err)
	}
	return s, nil
}

func (s *slide) resolve(sc *scope, root Object) (Object, error) {
	return resolveSlide(sc, root, s.index)
}

func (s *slide) Index() int {
	return do(s.app, "slide.Index", 0, func(sc *scope, root Object) (int, error) {
		obj, err := s.resolve(sc, root)
		if err != nil {
			return 0, err
		}
		return getInt(obj, "SlideIndex")
	})
}

func (s *slide) Name() string {
	return do(s.app, "slide.Name", "", func(sc *scope, root Object) (string, error) {
		obj, err := s.resolve(sc, root)
		if err != nil {
			return "", err
		}
		return getString(obj, "Name")
	})
}

func (s *slide) Shapes() []office.Shape {
	keys := do(s.app, "slide.Shapes", []shapeKey(nil), func(sc *scope, root Object) ([]shapeKey, error) {
		obj, err := s.resolve(sc, root)
		if err != nil {
			return nil, err
		}
		shapes, err := sc.get(obj, "Shapes")
		if err != nil {
			return nil, err
		}
		return readShapeKeys(sc, shapes)
	})
	out := make([]office.Shape, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.shape(k))
	}
	return out
}

func (s *slide) ShapeByName(name string) office.Shape {
	if office.NameKey(name) == "" {
		return nil
	}
	key := do(s.app, "slide.ShapeByName", shapeKey{}, func(sc *scope, root Object) (shapeKey, error) {
		obj, err := resolveShape(sc, root, s.index, 0, name)
		if err != nil {
			return shapeKey{}, err
		}
		return readShapeKey(obj)
	})
	if key.name == "" {
		return nil
	}
	return s.shape(key)
}

func (s *slide) shape(k shapeKey) *shape {
	return &shape{app: s.app, slide: s.index, id: k.id, name: k.name}
}

func (s *slide) AddShape(kind office.AutoShapeKind, rect office.ShapeRect) office.Shape {
	code, ok := autoShapeCodes[kind]
	if !ok {
		s.app.log.Warn("unknown auto shape kind", "kind", int(kind))
		return nil
	}
	return s.add("slide.AddShape", func(shapes Object, sc *scope) (Object, error) {
		return sc.call(shapes, "AddShape", code, rect.Left, rect.Top, rect.Width, rect.Height)
	})
}

func (s *slide) AddTable(rows, cols int, rect office.ShapeRect) office.Shape {
	if rows < 1 || cols < 1 {
		s.app.log.Warn("table needs at least one row and column", "rows", rows, "cols", cols)
		return nil
	}
	return s.add("slide.AddTable", func(shapes Object, sc *scope) (Object, error) {
		return sc.call(shapes, "AddTable", rows, cols, rect.Left, rect.Top, rect.Width, rect.Height)
	})
}

func (s *slide) add(op string, create func(shapes Object, sc *scope) (Object, error)) office.Shape {
	var key shapeKey
	ok := s.app.write(op, func(sc *scope, root Object) error {
		obj, err := s.resolve(sc, root)
		if err != nil {
			return err
		}
		shapes, err := sc.get(obj, "Shapes")
		if err != nil {
			return err
		}
		created, err := create(shapes, sc)
		if err != nil {
			return err
		}
		sc.writes++
		key, err = readShapeKey(created)
		return err
	})
	if !ok {
		return nil
	}
	return s.shape(key)
}

func (s *slide) Native() any {
	return s.app.native("slide.Native", s.resolve)
}

func readShapeKey(obj Object) (shapeKey, error) {
	name, err := getString(obj, "Name")
	if err != nil {
		return shapeKey{}, err
	}
	id, _ := getInt(obj, "Id")
	return shapeKey{id: id, name: name}, nil
}
