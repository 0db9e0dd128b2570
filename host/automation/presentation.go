package automation

import (
	"fmt"

	"github.com/VantageDataChat/pptassist/office"
)

type presentation struct {
	app *Application
}

func activePresentation(sc *scope, root Object) (Object, error) {
	return sc.get(root, "ActivePresentation")
}

func (p *presentation) Name() string {
	return do(p.app, "presentation.Name", "", func(sc *scope, root Object) (string, error) {
		pres, err := activePresentation(sc, root)
		if err != nil {
			return "", err
		}
		return getString(pres, "Name")
	})
}

func (p *presentation) FullName() string {
	return do(p.app, "presentation.FullName", "", func(sc *scope, root Object) (string, error) {
		pres, err := activePresentation(sc, root)
		if err != nil {
			return "", err
		}
		return getString(pres, "FullName")
	})
}

func (p *presentation) pageSetup(op, prop string) float64 {
	return do(p.app, op, 0.0, func(sc *scope, root Object) (float64, error) {
		setup, err := sc.path(root, "ActivePresentation", "PageSetup")
		if err != nil {
			return 0, err
		}
		return getFloat(setup, prop)
	})
}

func (p *presentation) SlideWidth() float64 {
	return p.pageSetup("presentation.SlideWidth", "SlideWidth")
}

func (p *presentation) SlideHeight() float64 {
	return p.pageSetup("presentation.SlideHeight", "SlideHeight")
}

func (p *presentation) SlideCount() int {
	return do(p.app, "presentation.SlideCount", 0, func(sc *scope, root Object) (int, error) {
		slides, err := sc.path(root, "ActivePresentation", "Slides")
		if err != nil {
			return 0, err
		}
		return getInt(slides, "Count")
	})
}

func (p *presentation) Slide(index int) office.Slide {
	if index < 1 || index > p.SlideCount() {
		return nil
	}
	return &slide{app: p.app, index: index}
}

func (p *presentation) Slides() []office.Slide {
	n := p.SlideCount()
	out := make([]office.Slide, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &slide{app: p.app, index: i})
	}
	return out
}

func (p *presentation) Native() any {
	return p.app.native("presentation.Native", activePresentation)
}

type window struct {
	app *Application
}

// activeSlideIndex reads the slide shown in the active window.
func activeSlideIndex(sc *scope, root Object) (int, error) {
	s, err := sc.path(root, "ActiveWindow", "View", "Slide")
	if err != nil {
		return 0, err
	}
	return getInt(s, "SlideIndex")
}

func (w *window) ActiveSlide() office.Slide {
	idx := do(w.app, "window.ActiveSlide", 0, func(sc *scope, root Object) (int, error) {
		return activeSlideIndex(sc, root)
	})
	if idx < 1 {
		return nil
	}
	return &slide{app: w.app, index: idx}
}

func (w *window) Selection() office.Selection { return &selection{app: w.app} }

func (w *window) Native() any {
	return w.app.native("window.Native", func(sc *scope, root Object) (Object, error) {
		return sc.get(root, "ActiveWindow")
	})
}

type selection struct {
	app *Application
}

func currentSelection(sc *scope, root Object) (Object, error) {
	return sc.path(root, "ActiveWindow", "Selection")
}

func (s *selection) Type() office.SelectionType {
	return do(s.app, "selection.Type", office.SelectionNone, func(sc *scope, root Object) (office.SelectionType, error) {
		sel, err := currentSelection(sc, root)
		if err != nil {
			return office.SelectionNone, err
		}
		code, err := getInt(sel, "Type")
		if err != nil {
			return office.SelectionNone, err
		}
		return selectionTypeOf(code), nil
	})
}

func (s *selection) Count() int {
	switch s.Type() {
	case office.SelectionShapes, office.SelectionText:
		return s.rangeCount("ShapeRange")
	case office.SelectionSlides:
		return s.rangeCount("SlideRange")
	}
	return 0
}

func (s *selection) rangeCount(rng string) int {
	return do(s.app, "selection.Count", 0, func(sc *scope, root Object) (int, error) {
		sel, err := currentSelection(sc, root)
		if err != nil {
			return 0, err
		}
		r, err := sc.get(sel, rng)
		if err != nil {
			return 0, err
		}
		return getInt(r, "Count")
	})
}

type shapeKey struct {
	id   int
	name string
}

func (s *selection) Shapes() []office.Shape {
	switch s.Type() {
	case office.SelectionShapes, office.SelectionText:
	default:
		return nil
	}
	var slideIdx int
	keys := do(s.app, "selection.Shapes", []shapeKey(nil), func(sc *scope, root Object) ([]shapeKey, error) {
		idx, err := activeSlideIndex(sc, root)
		if err != nil {
			return nil, err
		}
		slideIdx = idx
		sel, err := currentSelection(sc, root)
		if err != nil {
			return nil, err
		}
		rng, err := sc.get(sel, "ShapeRange")
		if err != nil {
			return nil, err
		}
		return readShapeKeys(sc, rng)
	})
	out := make([]office.Shape, 0, len(keys))
	for _, k := range keys {
		out = append(out, &shape{app: s.app, slide: slideIdx, id: k.id, name: k.name})
	}
	return out
}

// readShapeKeys reads the id and name of every item of a shape collection.
func readShapeKeys(sc *scope, coll Object) ([]shapeKey, error) {
	n, err := getInt(coll, "Count")
	if err != nil {
		return nil, err
	}
	keys := make([]shapeKey, 0, n)
	for i := 1; i <= n; i++ {
		item, err := sc.call(coll, "Item", i)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		k, err := readShapeKey(item)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *selection) Slides() []office.Slide {
	if s.Type() != office.SelectionSlides {
		return nil
	}
	indexes := do(s.app, "selection.Slides", []int(nil), func(sc *scope, root Object) ([]int, error) {
		sel, err := currentSelection(sc, root)
		if err != nil {
			return nil, err
		}
		rng, err := sc.get(sel, "SlideRange")
		if err != nil {
			return nil, err
		}
		n, err := getInt(rng, "Count")
		if err != nil {
			return nil, err
		}
		out := make([]int, 0, n)
		for i := 1; i <= n; i++ {
			item, err := sc.call(rng, "Item", i)
			if err != nil {
				return nil, err
			}
			idx, err := getInt(item, "SlideIndex")
			if err != nil {
				return nil, err
			}
			out = append(out, idx)
		}
		return out, nil
	})
	out := make([]office.Slide, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, &slide{app: s.app, index: i})
	}
	return out
}

func (s *selection) Text() string {
	if s.Type() != office.SelectionText {
		return ""
	}
	return do(s.app, "selection.Text", "", func(sc *scope, root Object) (string, error) {
		sel, err := currentSelection(sc, root)
		if err != nil {
			return "", err
		}
		rng, err := sc.get(sel, "TextRange")
		if err != nil {
			return "", err
		}
		return getString(rng, "Text")
	})
}

func (s *selection) Native() any {
	return s.app.native("selection.Native", currentSelection)
}
