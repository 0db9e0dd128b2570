package pptx

// Slide is one slide of a presentation. Shapes are kept in z-order, the
// first shape being the back-most.
type Slide struct {
	name       string
	shapes     []Shape
	background *Fill
	hidden     bool
	nextID     int
}

func newSlide() *Slide {
	return &Slide{shapes: make([]Shape, 0), nextID: 2}
}

// GetName returns the slide name.
func (s *Slide) GetName() string { return s.name }

// SetName sets the slide name.
func (s *Slide) SetName(name string) { s.name = name }

// IsHidden reports whether the slide is skipped in a slideshow.
func (s *Slide) IsHidden() bool { return s.hidden }

// SetHidden hides or shows the slide.
func (s *Slide) SetHidden(h bool) { s.hidden = h }

// GetBackground returns the slide background fill, nil when inherited.
func (s *Slide) GetBackground() *Fill { return s.background }

// SetBackground sets the slide background fill.
func (s *Slide) SetBackground(f *Fill) { s.background = f }

// GetShapes returns the top-level shapes in z-order.
func (s *Slide) GetShapes() []Shape { return s.shapes }

// GetShapeCount returns the number of top-level shapes.
func (s *Slide) GetShapeCount() int { return len(s.shapes) }

// AddShape appends shape on top of the z-order and assigns ids to it and
// any group children that lack one.
func (s *Slide) AddShape(shape Shape) Shape {
	s.assignIDs(shape)
	s.shapes = append(s.shapes, shape)
	return shape
}

func (s *Slide) assignIDs(shape Shape) {
	b := shape.base()
	if b.id <= 0 {
		b.id = s.nextID
		s.nextID++
	} else if b.id >= s.nextID {
		s.nextID = b.id + 1
	}
	if g, ok := shape.(*GroupShape); ok {
		for _, child := range g.shapes {
			s.assignIDs(child)
		}
	}
}

// CreateRichTextShape adds an empty text box.
func (s *Slide) CreateRichTextShape() *RichTextShape {
	shape := NewRichTextShape()
	s.AddShape(shape)
	return shape
}

// CreateAutoShape adds a rectangle.
func (s *Slide) CreateAutoShape() *AutoShape {
	shape := NewAutoShape()
	s.AddShape(shape)
	return shape
}

// CreateLineShape adds a line.
func (s *Slide) CreateLineShape() *LineShape {
	shape := NewLineShape()
	s.AddShape(shape)
	return shape
}

// CreateDrawingShape adds an empty picture.
func (s *Slide) CreateDrawingShape() *DrawingShape {
	shape := NewDrawingShape()
	s.AddShape(shape)
	return shape
}

// CreateTableShape adds a rows×cols table.
func (s *Slide) CreateTableShape(rows, cols int) *TableShape {
	shape := NewTableShape(rows, cols)
	s.AddShape(shape)
	return shape
}

// CreateGroupShape adds an empty group.
func (s *Slide) CreateGroupShape() *GroupShape {
	shape := NewGroupShape()
	s.AddShape(shape)
	return shape
}

// FindShapeByName returns the first top-level shape whose name matches
// according to eq, or nil.
func (s *Slide) FindShapeByName(name string, eq func(a, b string) bool) Shape {
	if eq == nil {
		eq = func(a, b string) bool { return a == b }
	}
	for _, shape := range s.shapes {
		if eq(shape.GetName(), name) {
			return shape
		}
	}
	return nil
}

// FindShapeByID returns the top-level shape with the given id, or nil.
func (s *Slide) FindShapeByID(id int) Shape {
	for _, shape := range s.shapes {
		if shape.GetID() == id {
			return shape
		}
	}
	return nil
}

// IndexOf returns the z-order index of shape, or -1.
func (s *Slide) IndexOf(shape Shape) int {
	for i, sh := range s.shapes {
		if sh == shape {
			return i
		}
	}
	return -1
}

// RemoveShapeByPointer removes shape and reports whether it was present.
func (s *Slide) RemoveShapeByPointer(shape Shape) bool {
	i := s.IndexOf(shape)
	if i < 0 {
		return false
	}
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	return true
}

// BringToFront moves shape to the top of the z-order.
func (s *Slide) BringToFront(shape Shape) bool {
	i := s.IndexOf(shape)
	if i < 0 {
		return false
	}
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	s.shapes = append(s.shapes, shape)
	return true
}

// SendToBack moves shape to the bottom of the z-order.
func (s *Slide) SendToBack(shape Shape) bool {
	i := s.IndexOf(shape)
	if i < 0 {
		return false
	}
	copy(s.shapes[1:i+1], s.shapes[:i])
	s.shapes[0] = shape
	return true
}

// ExtractText returns the text of every shape on the slide, one shape per line.
func (s *Slide) ExtractText() string {
	var parts []string
	for _, shape := range s.shapes {
		parts = append(parts, shapeText(shape)...)
	}
	return joinNonEmpty(parts, "\n")
}

func shapeText(shape Shape) []string {
	switch sh := shape.(type) {
	case *RichTextShape:
		return []string{sh.GetText()}
	case *PlaceholderShape:
		return []string{sh.GetText()}
	case *AutoShape:
		return []string{sh.GetText()}
	case *TableShape:
		var out []string
		for _, row := range sh.rows {
			for _, cell := range row {
				out = append(out, cell.GetText())
			}
		}
		return out
	case *GroupShape:
		var out []string
		for _, child := range sh.shapes {
			out = append(out, shapeText(child)...)
		}
		return out
	}
	return nil
}
