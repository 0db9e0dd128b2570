package office

// ShapeType is the coarse kind of a shape.
type ShapeType int

const (
	ShapeUnknown ShapeType = iota
	ShapeAutoShape
	ShapeTextBox
	ShapePicture
	ShapeTable
	ShapeGroup
	ShapeLine
	ShapePlaceholder
	ShapeChart
)

// SelectionType is the common denominator of the hosts' selection kinds.
type SelectionType int

const (
	SelectionNone SelectionType = iota
	SelectionSlides
	SelectionShapes
	SelectionText
)

// AutoShapeKind is a preset geometry that every host can create.
type AutoShapeKind int

const (
	AutoShapeRectangle AutoShapeKind = iota
	AutoShapeRoundedRectangle
	AutoShapeEllipse
)

// Application is the root context for one host.
//
// Reads never fail: on any host error they return the documented default.
// Writes are best-effort.
type Application interface {
	// Platform returns the host kind; fixed for the lifetime of the value.
	Platform() PlatformType
	// Name returns the host name, "" on failure.
	Name() string
	// Version returns the host version, "" on failure.
	Version() string
	// ActivePresentation returns nil when no presentation is open.
	ActivePresentation() Presentation
	// ActiveWindow returns nil when there is no document window.
	ActiveWindow() Window
	// Selection returns the active window's selection, nil when unavailable.
	Selection() Selection
	// IsFeatureSupported answers from the host's fixed feature table.
	IsFeatureSupported(f Feature) bool
	// CommandExecutor returns the host's built-in command runner.
	CommandExecutor() CommandExecutor
	// StartNewUndoEntry starts a new undo group; no-op where unsupported.
	StartNewUndoEntry()
	Native() any
}

// Presentation is an open deck.
type Presentation interface {
	// Name returns the file name, "" on failure.
	Name() string
	// FullName returns the full path, "" when unsaved or on failure.
	FullName() string
	// SlideWidth returns the slide width in points, 0 on failure.
	SlideWidth() float64
	// SlideHeight returns the slide height in points, 0 on failure.
	SlideHeight() float64
	// SlideCount returns 0 on failure.
	SlideCount() int
	// Slide returns the 1-based slide, nil when out of range.
	Slide(index int) Slide
	// Slides returns every slide, empty on failure.
	Slides() []Slide
	Native() any
}

// Window is a document window.
type Window interface {
	// ActiveSlide returns the slide shown in the window, nil when none.
	ActiveSlide() Slide
	// Selection returns the window's selection, nil when unavailable.
	Selection() Selection
	Native() any
}

// Slide is one slide of a presentation.
type Slide interface {
	// Index returns the 1-based position, 0 on failure.
	Index() int
	// Name returns "" on failure.
	Name() string
	// Shapes returns the slide's top-level shapes in z-order, empty on failure.
	Shapes() []Shape
	// ShapeByName returns nil when no shape matches.
	ShapeByName(name string) Shape
	// AddShape creates an auto shape, nil on failure.
	AddShape(kind AutoShapeKind, rect ShapeRect) Shape
	// AddTable creates a table, nil on failure.
	AddTable(rows, cols int, rect ShapeRect) Shape
	Native() any
}

// Selection is the current selection in a window.
type Selection interface {
	// Type returns SelectionNone on failure.
	Type() SelectionType
	// Count returns the number of selected shapes or slides, 0 on failure.
	Count() int
	// Shapes returns the selected shapes; for a text selection, the shape
	// containing the text. Empty on failure.
	Shapes() []Shape
	// Slides returns the selected slides, empty on failure.
	Slides() []Slide
	// Text returns the selected text, "" when not a text selection.
	Text() string
	Native() any
}

// Shape is one drawing object on a slide.
type Shape interface {
	// Name returns "" on failure.
	Name() string
	SetName(name string)
	// ID returns the host's shape id, 0 on failure.
	ID() int
	// Type returns ShapeUnknown on failure.
	Type() ShapeType
	// Bounds returns the zero rect on failure.
	Bounds() ShapeRect
	SetBounds(r ShapeRect)
	// Rotation returns degrees, 0 on failure.
	Rotation() float64
	// Visible returns false on failure.
	Visible() bool
	// HasText returns false on failure.
	HasText() bool
	// Text returns "" on failure.
	Text() string
	SetText(text string)
	// HasTable returns false on failure.
	HasTable() bool
	// Table returns nil when the shape holds no table.
	Table() Table
	// Delete removes the shape; false on failure.
	Delete() bool
	Native() any
}

// Table is the table held by a shape.
type Table interface {
	// Rows returns 0 on failure.
	Rows() int
	// Columns returns 0 on failure.
	Columns() int
	// Cell returns the 1-based cell, nil outside the table.
	Cell(row, col int) Cell
	// ApplyStyle applies a named host table style; false when rejected.
	ApplyStyle(styleID string) bool
	// Flags returns the zero value on failure.
	Flags() TableFlags
	SetFlags(f TableFlags)
	Native() any
}

// Cell is one table cell.
type Cell interface {
	Row() int
	Column() int
	// Text returns "" on failure.
	Text() string
	SetText(text string)
	// Font returns the first run's font, zero value on failure.
	Font() FontStyle
	SetFont(f FontStyle)
	// Border returns a hidden border on failure.
	Border(side BorderSide) BorderStyle
	SetBorder(side BorderSide, b BorderStyle)
	SetFill(c Color)
	ClearFill()
	SetHorizontalAlignment(a HAlign)
	SetVerticalAlignment(a VAlign)
	Native() any
}

// SelectedShapes converts the application's current selection into a shape
// list, as UI commands do before calling a service. Empty when nothing usable
// is selected.
func SelectedShapes(app Application) []Shape {
	if app == nil {
		return nil
	}
	sel := app.Selection()
	if sel == nil {
		return nil
	}
	switch sel.Type() {
	case SelectionShapes, SelectionText:
		return sel.Shapes()
	}
	return nil
}

// ActiveSlide returns the active window's slide, or nil.
func ActiveSlide(app Application) Slide {
	if app == nil {
		return nil
	}
	w := app.ActiveWindow()
	if w == nil {
		return nil
	}
	return w.ActiveSlide()
}
