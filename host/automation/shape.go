package automation

import (
	"errors"
	"fmt"

	"github.com/VantageDataChat/pptassist/office"
)

// shape is addressed by slide index plus the host's shape id and name. The id
// wins when both are known; the name is the fallback after the host has
// renumbered shapes (undo, paste, reload).
type shape struct {
	app   *Application
	slide int
	id    int
	name  string
}

var errShapeNotFound = fmt.Errorf("shape not found: %w", office.ErrStale)

// resolveShape finds a shape on a slide. Item(name) is tried first and its id
// checked; otherwise the collection is scanned for the id, then the name key.
func resolveShape(sc *scope, root Object, slideIndex, id int, name string) (Object, error) {
	sl, err := resolveSlide(sc, root, slideIndex)
	if err != nil {
		return nil, err
	}
	shapes, err := sc.get(sl, "Shapes")
	if err != nil {
		return nil, err
	}
	if name != "" {
		if obj, err := sc.call(shapes, "Item", name); err == nil {
			if id == 0 {
				return obj, nil
			}
			if got, err := getInt(obj, "Id"); err == nil && got == id {
				return obj, nil
			}
		} else if errors.Is(err, office.ErrStale) {
			return nil, err
		}
	}
	n, err := getInt(shapes, "Count")
	if err != nil {
		return nil, err
	}
	key := office.NameKey(name)
	var byName Object
	for i := 1; i <= n; i++ {
		item, err := sc.call(shapes, "Item", i)
		if err != nil {
			return nil, err
		}
		if id != 0 {
			if got, err := getInt(item, "Id"); err == nil && got == id {
				return item, nil
			}
		}
		if byName == nil && key != "" {
			if nm, err := getString(item, "Name"); err == nil && office.NameKey(nm) == key {
				byName = item
			}
		}
	}
	if byName != nil {
		return byName, nil
	}
	return nil, fmt.Errorf("%q on slide %d: %w", name, slideIndex, errShapeNotFound)
}

func (s *shape) resolve(sc *scope, root Object) (Object, error) {
	return resolveShape(sc, root, s.slide, s.id, s.name)
}

// read resolves the shape and applies fn, returning def on failure.
func read[T any](s *shape, op string, def T, fn func(sc *scope, obj Object) (T, error)) T {
	return do(s.app, op, def, func(sc *scope, root Object) (T, error) {
		obj, err := s.resolve(sc, root)
		if err != nil {
			return def, err
		}
		return fn(sc, obj)
	})
}

func (s *shape) write(op string, fn func(sc *scope, obj Object) error) bool {
	return s.app.write(op, func(sc *scope, root Object) error {
		obj, err := s.resolve(sc, root)
		if err != nil {
			return err
		}
		return fn(sc, obj)
	})
}

func (s *shape) Name() string {
	return read(s, "shape.Name", "", func(_ *scope, obj Object) (string, error) {
		return getString(obj, "Name")
	})
}

func (s *shape) SetName(name string) {
	if s.write("shape.SetName", func(sc *scope, obj Object) error {
		return sc.put(obj, "Name", name)
	}) {
		s.name = name
	}
}

func (s *shape) ID() int {
	return read(s, "shape.ID", 0, func(_ *scope, obj Object) (int, error) {
		return getInt(obj, "Id")
	})
}

func (s *shape) Type() office.ShapeType {
	return read(s, "shape.Type", office.ShapeUnknown, func(_ *scope, obj Object) (office.ShapeType, error) {
		code, err := getInt(obj, "Type")
		if err != nil {
			return office.ShapeUnknown, err
		}
		return shapeTypeOf(code), nil
	})
}

func (s *shape) Bounds() office.ShapeRect {
	return read(s, "shape.Bounds", office.ShapeRect{}, func(_ *scope, obj Object) (office.ShapeRect, error) {
		var v [4]float64
		for i, p := range [4]string{"Left", "Top", "Width", "Height"} {
			f, err := getFloat(obj, p)
			if err != nil {
				return office.ShapeRect{}, err
			}
			v[i] = f
		}
		return office.NewShapeRect(v[0], v[1], v[2], v[3]), nil
	})
}

func (s *shape) SetBounds(r office.ShapeRect) {
	s.write("shape.SetBounds", func(sc *scope, obj Object) error {
		for _, p := range []struct {
			name string
			v    float64
		}{{"Left", r.Left}, {"Top", r.Top}, {"Width", r.Width}, {"Height", r.Height}} {
			if err := sc.put(obj, p.name, p.v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *shape) Rotation() float64 {
	return read(s, "shape.Rotation", 0.0, func(_ *scope, obj Object) (float64, error) {
		return getFloat(obj, "Rotation")
	})
}

func (s *shape) Visible() bool {
	return read(s, "shape.Visible", false, func(_ *scope, obj Object) (bool, error) {
		return getTriState(obj, "Visible")
	})
}

func (s *shape) HasText() bool {
	return read(s, "shape.HasText", false, func(sc *scope, obj Object) (bool, error) {
		has, err := getTriState(obj, "HasTextFrame")
		if err != nil || !has {
			return false, err
		}
		tf, err := sc.get(obj, "TextFrame")
		if err != nil {
			return false, err
		}
		return getTriState(tf, "HasText")
	})
}

func (s *shape) Text() string {
	return read(s, "shape.Text", "", func(sc *scope, obj Object) (string, error) {
		rng, err := sc.path(obj, "TextFrame", "TextRange")
		if err != nil {
			return "", err
		}
		return getString(rng, "Text")
	})
}

func (s *shape) SetText(text string) {
	s.write("shape.SetText", func(sc *scope, obj Object) error {
		rng, err := sc.path(obj, "TextFrame", "TextRange")
		if err != nil {
			return err
		}
		return sc.put(rng, "Text", text)
	})
}

func (s *shape) HasTable() bool {
	return read(s, "shape.HasTable", false, func(_ *scope, obj Object) (bool, error) {
		return getTriState(obj, "HasTable")
	})
}

func (s *shape) Table() office.Table {
	if !s.HasTable() {
		return nil
	}
	return &table{shape: s}
}

func (s *shape) Delete() bool {
	return s.write("shape.Delete", func(sc *scope, obj Object) error {
		return sc.invoke(obj, "Delete")
	})
}

func (s *shape) Native() any {
	return s.app.native("shape.Native", s.resolve)
}
