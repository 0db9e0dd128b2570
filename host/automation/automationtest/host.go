// Package automationtest provides an in-memory stand-in for a running
// presentation host. It serves the same late-bound object model the
// automation package walks, tracks handle lifetimes and can simulate stale
// handles and failing members.
//
// A Host is not safe for concurrent use.
package automationtest

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/VantageDataChat/pptassist/host/automation"
	"github.com/VantageDataChat/pptassist/office"
)

// Method implements a host method or indexed property.
type Method func(args ...any) (any, error)

// Dynamic computes a property value on every read.
type Dynamic func() (any, error)

// Node is one object of the fake object model.
type Node struct {
	host    *Host
	parent  *Node
	items   []*Node
	props   map[string]any
	methods map[string]Method
	setters map[string]func(args ...any) error
}

func (h *Host) newNode() *Node {
	return &Node{
		host:    h,
		props:   map[string]any{},
		methods: map[string]Method{},
		setters: map[string]func(args ...any) error{},
	}
}

// Set stores a property value. Values may be *Node or Dynamic.
func (n *Node) Set(name string, v any) *Node {
	n.props[name] = v
	return n
}

// Method registers a method.
func (n *Node) Method(name string, m Method) *Node {
	n.methods[name] = m
	return n
}

// Setter overrides how a property is written.
func (n *Node) Setter(name string, fn func(args ...any) error) *Node {
	n.setters[name] = fn
	return n
}

// Prop returns a property value, evaluating dynamic ones. Missing properties
// return nil.
func (n *Node) Prop(name string) any {
	v, ok := n.props[name]
	if !ok {
		return nil
	}
	if d, ok := v.(Dynamic); ok {
		out, err := d()
		if err != nil {
			return nil
		}
		return out
	}
	return v
}

// Float returns a numeric property.
func (n *Node) Float(name string) float64 {
	switch v := n.Prop(name).(type) {
	case int:
		return float64(v)
	case float64:
		return v
	}
	return math.NaN()
}

// Int returns a numeric property rounded to an int.
func (n *Node) Int(name string) int {
	return int(math.Round(n.Float(name)))
}

// String returns a string property.
func (n *Node) String(name string) string {
	s, _ := n.Prop(name).(string)
	return s
}

// Child follows a chain of object properties; nil when any link is missing.
func (n *Node) Child(path ...string) *Node {
	cur := n
	for _, p := range path {
		next, ok := cur.Prop(p).(*Node)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// Items returns the members of a collection node.
func (n *Node) Items() []*Node { return n.items }

type fault struct {
	err       error
	remaining int
}

// Host is the fake application.
type Host struct {
	app    *Node
	pres   *Node
	slides *Node

	epoch     int
	refreshes int
	live      int
	nextID    int
	faults    map[string]*fault

	activeSlide int
	selType     int
	selShapes   []*Node
	selSlides   []int
	selText     string

	enabled     map[string]bool
	controls    map[string]bool
	executeMso  bool
	commands    []string
	undoEntries int
}

// New returns a host with one open, empty presentation of 720x540 points.
func New() *Host {
	h := &Host{
		faults:     map[string]*fault{},
		enabled:    map[string]bool{},
		controls:   map[string]bool{},
		executeMso: true,
		nextID:     1,
	}
	h.slides = h.collection(nil)
	h.slides.Method("Item", func(args ...any) (any, error) {
		return h.slides.item(args)
	})

	h.pres = h.newNode().
		Set("Name", "deck.pptx").
		Set("FullName", `C:\decks\deck.pptx`).
		Set("PageSetup", h.newNode().Set("SlideWidth", 720.0).Set("SlideHeight", 540.0)).
		Set("Slides", h.slides)

	bars := h.newNode().
		Method("GetEnabledMso", func(args ...any) (any, error) {
			id, _ := firstString(args)
			return h.enabled[id], nil
		}).
		Method("ExecuteMso", func(args ...any) (any, error) {
			if !h.executeMso {
				return nil, fmt.Errorf("ExecuteMso: %w", office.ErrUnsupported)
			}
			id, _ := firstString(args)
			if !h.enabled[id] {
				return nil, errors.New("command failed")
			}
			h.commands = append(h.commands, id)
			return nil, nil
		}).
		Method("FindControl", func(args ...any) (any, error) {
			if len(args) != 3 {
				return nil, errors.New("FindControl: want type, id and tag")
			}
			if _, ok := args[0].(automation.Missing); !ok {
				return nil, errors.New("FindControl: type must be omitted")
			}
			tag, _ := args[2].(string)
			if !h.controls[tag] {
				return nil, nil
			}
			ctl := h.newNode().Method("Execute", func(...any) (any, error) {
				h.commands = append(h.commands, tag)
				return nil, nil
			})
			return ctl, nil
		})

	view := h.newNode().Set("Slide", Dynamic(func() (any, error) {
		if h.activeSlide < 1 || h.activeSlide > len(h.slides.items) {
			return nil, errors.New("no slide in view")
		}
		return h.slides.items[h.activeSlide-1], nil
	}))
	window := h.newNode().
		Set("View", view).
		Set("Selection", h.selectionNode())

	h.app = h.newNode().
		Set("Name", "Microsoft PowerPoint").
		Set("Version", "16.0").
		Set("ActivePresentation", h.pres).
		Set("ActiveWindow", window).
		Set("CommandBars", bars).
		Method("StartNewUndoEntry", func(...any) (any, error) {
			h.undoEntries++
			return nil, nil
		})
	return h
}

func (h *Host) selectionNode() *Node {
	sel := h.newNode()
	sel.Set("Type", Dynamic(func() (any, error) { return h.selType, nil }))
	sel.Set("ShapeRange", Dynamic(func() (any, error) {
		if len(h.selShapes) == 0 {
			return nil, errors.New("nothing selected")
		}
		rng := h.collection(nil)
		rng.items = h.selShapes
		rng.Method("Item", func(args ...any) (any, error) { return rng.item(args) })
		return rng, nil
	}))
	sel.Set("SlideRange", Dynamic(func() (any, error) {
		if len(h.selSlides) == 0 {
			return nil, errors.New("nothing selected")
		}
		rng := h.collection(nil)
		for _, i := range h.selSlides {
			rng.items = append(rng.items, h.slides.items[i-1])
		}
		rng.Method("Item", func(args ...any) (any, error) { return rng.item(args) })
		return rng, nil
	}))
	sel.Set("TextRange", Dynamic(func() (any, error) {
		if h.selType != 3 {
			return nil, errors.New("no text selected")
		}
		return h.newNode().Set("Text", h.selText), nil
	}))
	return sel
}

// collection returns a node whose Count tracks its items.
func (h *Host) collection(parent *Node) *Node {
	c := h.newNode()
	c.parent = parent
	c.Set("Count", Dynamic(func() (any, error) { return len(c.items), nil }))
	return c
}

// item implements Item(index) and Item(name).
func (n *Node) item(args []any) (any, error) {
	if len(args) != 1 {
		return nil, errors.New("Item: want one argument")
	}
	switch k := args[0].(type) {
	case int:
		if k < 1 || k > len(n.items) {
			return nil, fmt.Errorf("Item(%d): index out of range", k)
		}
		return n.items[k-1], nil
	case string:
		for _, it := range n.items {
			if strings.EqualFold(it.String("Name"), k) {
				return it, nil
			}
		}
		return nil, fmt.Errorf("Item(%q): not found", k)
	}
	return nil, fmt.Errorf("Item: bad index %T", args[0])
}

func firstString(args []any) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	s, ok := args[0].(string)
	return s, ok
}

// Provider returns a provider over the host's application object.
func (h *Host) Provider() *Provider { return &Provider{host: h} }

// App returns the application node.
func (h *Host) App() *Node { return h.app }

// Presentation returns the presentation node.
func (h *Host) Presentation() *Node { return h.pres }

// MarkStale invalidates every handle handed out so far.
func (h *Host) MarkStale() { h.epoch++ }

// Refreshes counts provider refreshes.
func (h *Host) Refreshes() int { return h.refreshes }

// Live returns the number of handles acquired and not yet released.
func (h *Host) Live() int { return h.live }

// Fail makes the next times accesses of member fail with err. times <= 0
// fails every access.
func (h *Host) Fail(member string, err error, times int) {
	h.faults[member] = &fault{err: err, remaining: times}
}

// Commands returns the executed command ids.
func (h *Host) Commands() []string { return h.commands }

// UndoEntries counts StartNewUndoEntry calls.
func (h *Host) UndoEntries() int { return h.undoEntries }

// EnableCommand marks a command as enabled or disabled.
func (h *Host) EnableCommand(id string, enabled bool) { h.enabled[id] = enabled }

// AddControl registers a command bar control tagged with id.
func (h *Host) AddControl(id string) { h.controls[id] = true }

// SetExecuteMsoSupported toggles whether the host knows ExecuteMso.
func (h *Host) SetExecuteMsoSupported(ok bool) { h.executeMso = ok }

// SetActiveSlide sets the slide shown in the window.
func (h *Host) SetActiveSlide(index int) { h.activeSlide = index }

// Select selects the named shapes on a slide and makes it active.
func (h *Host) Select(slide int, names ...string) {
	h.activeSlide = slide
	h.selShapes = nil
	h.selSlides = nil
	for _, n := range names {
		if s := h.Shape(slide, n); s != nil {
			h.selShapes = append(h.selShapes, s)
		}
	}
	h.selType = 0
	if len(h.selShapes) > 0 {
		h.selType = 2
	}
}

// SelectText selects text inside one shape.
func (h *Host) SelectText(slide int, name, text string) {
	h.Select(slide, name)
	h.selType = 3
	h.selText = text
}

// SelectSlides selects slides by index.
func (h *Host) SelectSlides(indexes ...int) {
	h.selShapes = nil
	h.selSlides = indexes
	h.selType = 0
	if len(indexes) > 0 {
		h.selType = 1
	}
}

// AddSlide appends a slide and returns it. The first slide becomes active.
func (h *Host) AddSlide() *Node {
	sl := h.newNode()
	sl.parent = h.slides
	sl.Set("SlideIndex", Dynamic(func() (any, error) {
		for i, s := range h.slides.items {
			if s == sl {
				return i + 1, nil
			}
		}
		return nil, errors.New("slide deleted")
	}))
	sl.Set("Name", fmt.Sprintf("Slide%d", len(h.slides.items)+1))
	shapes := h.collection(sl)
	shapes.Method("Item", func(args ...any) (any, error) { return shapes.item(args) })
	shapes.Method("AddShape", func(args ...any) (any, error) {
		if len(args) != 5 {
			return nil, errors.New("AddShape: want 5 arguments")
		}
		kind := toInt(args[0])
		s := h.newShape(shapes, 1, kind)
		s.Set("Name", fmt.Sprintf("%s %d", autoShapeName(kind), s.Int("Id")))
		setRect(s, args[1:])
		return s, nil
	})
	shapes.Method("AddTable", func(args ...any) (any, error) {
		if len(args) != 6 {
			return nil, errors.New("AddTable: want 6 arguments")
		}
		s := h.newTableShape(shapes, toInt(args[0]), toInt(args[1]))
		s.Set("Name", fmt.Sprintf("Table %d", s.Int("Id")))
		setRect(s, args[2:])
		return s, nil
	})
	sl.Set("Shapes", shapes)
	h.slides.items = append(h.slides.items, sl)
	if h.activeSlide == 0 {
		h.activeSlide = 1
	}
	return sl
}

func autoShapeName(code int) string {
	switch code {
	case 5:
		return "Rounded Rectangle"
	case 9:
		return "Oval"
	}
	return "Rectangle"
}

// Slide returns the 1-based slide node.
func (h *Host) Slide(index int) *Node {
	if index < 1 || index > len(h.slides.items) {
		return nil
	}
	return h.slides.items[index-1]
}

// Shape finds a shape by exact name.
func (h *Host) Shape(slide int, name string) *Node {
	sl := h.Slide(slide)
	if sl == nil {
		return nil
	}
	for _, s := range sl.Child("Shapes").items {
		if s.String("Name") == name {
			return s
		}
	}
	return nil
}

// AddRect adds a rectangle auto shape.
func (h *Host) AddRect(slide int, name string, left, top, width, height float64) *Node {
	shapes := h.Slide(slide).Child("Shapes")
	s := h.newShape(shapes, 1, 1)
	s.Set("Name", name)
	setRect(s, []any{left, top, width, height})
	return s
}

// AddTable adds a table shape.
func (h *Host) AddTable(slide int, name string, rows, cols int, left, top, width, height float64) *Node {
	shapes := h.Slide(slide).Child("Shapes")
	s := h.newTableShape(shapes, rows, cols)
	s.Set("Name", name)
	setRect(s, []any{left, top, width, height})
	return s
}

// Cell returns the cell node of a table shape.
func (h *Host) Cell(table *Node, row, col int) *Node {
	v, err := table.Child("Table").methods["Cell"](row, col)
	if err != nil {
		return nil
	}
	return v.(*Node)
}

func setRect(s *Node, v []any) {
	s.Set("Left", toFloat(v[0])).
		Set("Top", toFloat(v[1])).
		Set("Width", toFloat(v[2])).
		Set("Height", toFloat(v[3]))
}

func (h *Host) shapeBase(shapes *Node, typ int) *Node {
	s := h.newNode()
	s.parent = shapes
	s.Set("Id", h.nextID).
		Set("Type", typ).
		Set("Rotation", 0.0).
		Set("Visible", -1).
		Set("HasTable", 0).
		Set("HasTextFrame", 0)
	h.nextID++
	s.Method("Delete", func(...any) (any, error) {
		items := shapes.items
		for i, it := range items {
			if it == s {
				shapes.items = append(items[:i:i], items[i+1:]...)
				return nil, nil
			}
		}
		return nil, errors.New("shape already deleted")
	})
	shapes.items = append(shapes.items, s)
	return s
}

func (h *Host) newShape(shapes *Node, typ, autoShape int) *Node {
	s := h.shapeBase(shapes, typ)
	s.Set("AutoShapeType", autoShape).
		Set("HasTextFrame", -1).
		Set("TextFrame", h.textFrame()).
		Set("Fill", h.fill()).
		Set("Line", h.newNode().
			Set("Visible", -1).
			Set("ForeColor", h.color()).
			Set("Weight", 0.75).
			Set("Transparency", 0.0)).
		Set("Shadow", h.newNode().
			Set("Visible", 0).
			Set("Blur", 0.0).
			Set("OffsetX", 0.0).
			Set("OffsetY", 0.0).
			Set("Transparency", 0.0).
			Set("ForeColor", h.color()))
	adj := h.newNode()
	adj.Method("Item", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, errors.New("Item: want index")
		}
		return adj.Prop(fmt.Sprintf("Item%d", toInt(args[0]))), nil
	})
	adj.Setter("Item", func(args ...any) error {
		if len(args) != 2 {
			return errors.New("Item: want index and value")
		}
		adj.Set(fmt.Sprintf("Item%d", toInt(args[0])), toFloat(args[1]))
		return nil
	})
	s.Set("Adjustments", adj)
	return s
}

func (h *Host) textFrame() *Node {
	rng := h.newNode().
		Set("Text", "").
		Set("Font", h.newNode().
			Set("Name", "Calibri").
			Set("Size", 18.0).
			Set("Bold", 0).
			Set("Italic", 0).
			Set("Color", h.color())).
		Set("ParagraphFormat", h.newNode().Set("Alignment", 1))
	return h.newNode().
		Set("TextRange", rng).
		Set("VerticalAnchor", 1).
		Set("HasText", Dynamic(func() (any, error) {
			if rng.String("Text") != "" {
				return -1, nil
			}
			return 0, nil
		}))
}

// color returns a ColorFormat; writing RGB clears the theme colour.
func (h *Host) color() *Node {
	c := h.newNode().Set("RGB", 0).Set("ObjectThemeColor", 0)
	c.Setter("RGB", func(args ...any) error {
		c.Set("RGB", toInt(args[len(args)-1])).Set("ObjectThemeColor", 0)
		return nil
	})
	return c
}

func (h *Host) fill() *Node {
	f := h.newNode().
		Set("Visible", -1).
		Set("ForeColor", h.color()).
		Set("BackColor", h.color()).
		Set("Transparency", 0.0).
		Set("Type", 1)
	f.Method("Solid", func(...any) (any, error) {
		f.Set("Type", 1)
		return nil, nil
	})
	f.Method("TwoColorGradient", func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, errors.New("TwoColorGradient: want style and variant")
		}
		f.Set("Type", 3).Set("GradientStyle", toInt(args[0]))
		stops := h.collection(f)
		for i := 0; i < 2; i++ {
			stops.items = append(stops.items, h.newNode().Set("Transparency", 0.0))
		}
		stops.Method("Item", func(a ...any) (any, error) { return stops.item(a) })
		f.Set("GradientStops", stops)
		return nil, nil
	})
	return f
}

func (h *Host) border() *Node {
	return h.newNode().
		Set("Visible", -1).
		Set("Transparency", 0.0).
		Set("Weight", 1.0).
		Set("DashStyle", 1).
		Set("ForeColor", h.color())
}

func (h *Host) newTableShape(shapes *Node, rows, cols int) *Node {
	s := h.shapeBase(shapes, 19)
	s.Set("HasTable", -1)

	cells := make([][]*Node, rows)
	for r := range cells {
		cells[r] = make([]*Node, cols)
		for c := range cells[r] {
			borders := h.newNode()
			sides := map[int]*Node{1: h.border(), 2: h.border(), 3: h.border(), 4: h.border()}
			borders.Method("Item", func(args ...any) (any, error) {
				b, ok := sides[toInt(args[0])]
				if !ok {
					return nil, errors.New("Borders.Item: bad side")
				}
				return b, nil
			})
			cellShape := h.newNode().
				Set("TextFrame", h.textFrame()).
				Set("Fill", h.fill())
			cells[r][c] = h.newNode().Set("Shape", cellShape).Set("Borders", borders)
		}
	}
	tbl := h.newNode().
		Set("Rows", h.newNode().Set("Count", rows)).
		Set("Columns", h.newNode().Set("Count", cols)).
		Set("FirstRow", -1).
		Set("LastRow", 0).
		Set("HorizBanding", -1).
		Set("FirstCol", 0).
		Set("LastCol", 0).
		Set("VertBanding", 0).
		Set("StyleId", "")
	tbl.Method("Cell", func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, errors.New("Cell: want row and column")
		}
		r, c := toInt(args[0]), toInt(args[1])
		if r < 1 || r > rows || c < 1 || c > cols {
			return nil, fmt.Errorf("Cell(%d,%d): out of range", r, c)
		}
		return cells[r-1][c-1], nil
	})
	tbl.Method("ApplyStyle", func(args ...any) (any, error) {
		id, ok := firstString(args)
		if !ok || !strings.HasPrefix(id, "{") {
			return nil, errors.New("ApplyStyle: invalid style id")
		}
		tbl.Set("StyleId", id)
		return nil, nil
	})
	s.Set("Table", tbl)
	return s
}

func toInt(v any) int {
	return int(math.Round(toFloat(v)))
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return math.NaN()
}

// Provider hands out root handles and counts refreshes.
type Provider struct {
	host *Host
	err  error
}

var _ automation.Provider = (*Provider)(nil)

// FailWith makes Application and Refresh return err; nil restores them.
func (p *Provider) FailWith(err error) { p.err = err }

func (p *Provider) Application() (automation.Object, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.host.wrap(p.host.app), nil
}

func (p *Provider) Refresh() (automation.Object, error) {
	p.host.refreshes++
	if p.err != nil {
		return nil, p.err
	}
	return p.host.wrap(p.host.app), nil
}
