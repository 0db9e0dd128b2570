package service

import (
	"math"
	"sort"

	"github.com/VantageDataChat/pptassist/office"
)

// AlignmentType selects the edge or centre line shapes are aligned on.
type AlignmentType int

const (
	AlignLeft AlignmentType = iota
	AlignCenter
	AlignRight
	AlignTop
	AlignMiddle
	AlignBottom
)

// String returns the alignment name.
func (t AlignmentType) String() string {
	switch t {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignTop:
		return "top"
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	}
	return "unknown"
}

func (t AlignmentType) horizontal() bool { return t <= AlignRight }

// AlignmentReference selects what shapes are aligned against.
type AlignmentReference int

const (
	// RefSlide aligns to the slide edges or centre.
	RefSlide AlignmentReference = iota
	// RefSelectedObjects aligns to the bounding box of all shapes.
	RefSelectedObjects
	// RefFirstObject aligns to the first shape.
	RefFirstObject
	// RefLastObject aligns to the last shape.
	RefLastObject
)

// String returns the reference name.
func (r AlignmentReference) String() string {
	switch r {
	case RefSlide:
		return "slide"
	case RefSelectedObjects:
		return "selection"
	case RefFirstObject:
		return "first"
	case RefLastObject:
		return "last"
	}
	return "unknown"
}

// DistributionType is the axis shapes are spread along.
type DistributionType int

const (
	DistributeHorizontal DistributionType = iota
	DistributeVertical
)

// String returns the axis name.
func (d DistributionType) String() string {
	if d == DistributeVertical {
		return "vertical"
	}
	return "horizontal"
}

// AlignmentService aligns, distributes, resizes and swaps shapes.
type AlignmentService struct {
	base
}

// NewAlignmentService returns a service bound to app. A nil logger discards
// output.
func NewAlignmentService(app office.Application, log office.Logger) *AlignmentService {
	return &AlignmentService{base: newBase(app, log)}
}

// Align moves every shape so the edge or centre line chosen by t matches the
// reference. Sizes and the other axis are left alone. The reference is taken
// from the bounds as they were before the first move.
func (s *AlignmentService) Align(shapes []office.Shape, t AlignmentType, ref AlignmentReference) (Outcome, error) {
	const op = "align"
	var out Outcome
	if err := checkShapes(op, shapes); err != nil {
		return out, err
	}
	if len(shapes) == 0 {
		s.log.Warn("nothing to align", "type", t.String())
		return out, nil
	}

	if ref == RefSlide && s.app == nil {
		return out, office.NewContractError(op, office.ErrNilArgument)
	}

	before := snapshot(shapes)
	target, ok := s.reference(before, t, ref)
	if !ok {
		s.log.Warn("slide size unavailable, shapes left in place", "type", t.String())
		return out, nil
	}
	s.beginUndo()
	for i, sh := range shapes {
		r := alignRect(before[i], t, target)
		if r.ApproxEqual(before[i], 1e-9) {
			continue
		}
		s.place(op, sh, r, &out)
	}
	s.log.Debug("shapes aligned", "type", t.String(), "reference", ref.String(),
		"value", target, "changed", out.Changed)
	return out, nil
}

// reference resolves the single value every shape is aligned to. It
// reports false when the slide size needed for t cannot be read.
func (s *AlignmentService) reference(rects []office.ShapeRect, t AlignmentType, ref AlignmentReference) (float64, bool) {
	switch ref {
	case RefFirstObject:
		return edge(rects[0], t), true
	case RefLastObject:
		return edge(rects[len(rects)-1], t), true
	case RefSlide:
		p := s.app.ActivePresentation()
		if p == nil {
			return 0, false
		}
		w, h := p.SlideWidth(), p.SlideHeight()
		if (t.horizontal() && w <= 0) || (!t.horizontal() && h <= 0) {
			return 0, false
		}
		return edge(office.ShapeRect{Width: w, Height: h}, t), true
	}

	box := rects[0]
	for _, r := range rects[1:] {
		box = union(box, r)
	}
	return edge(box, t), true
}

// edge returns the coordinate of r addressed by t.
func edge(r office.ShapeRect, t AlignmentType) float64 {
	switch t {
	case AlignLeft:
		return r.Left
	case AlignCenter:
		return r.CenterX()
	case AlignRight:
		return r.Right()
	case AlignTop:
		return r.Top
	case AlignMiddle:
		return r.CenterY()
	default:
		return r.Bottom()
	}
}

func alignRect(r office.ShapeRect, t AlignmentType, v float64) office.ShapeRect {
	switch t {
	case AlignLeft:
		return r.MoveTo(v, r.Top)
	case AlignCenter:
		return r.MoveTo(v-r.Width/2, r.Top)
	case AlignRight:
		return r.MoveTo(v-r.Width, r.Top)
	case AlignTop:
		return r.MoveTo(r.Left, v)
	case AlignMiddle:
		return r.MoveTo(r.Left, v-r.Height/2)
	default:
		return r.MoveTo(r.Left, v-r.Height)
	}
}

func union(a, b office.ShapeRect) office.ShapeRect {
	left := math.Min(a.Left, b.Left)
	top := math.Min(a.Top, b.Top)
	return office.NewShapeRect(left, top,
		math.Max(a.Right(), b.Right())-left,
		math.Max(a.Bottom(), b.Bottom())-top)
}

// Distribute spreads at least three shapes so the gaps between neighbours
// are equal. The outermost shapes stay where they are.
func (s *AlignmentService) Distribute(shapes []office.Shape, d DistributionType) (Outcome, error) {
	const op = "distribute"
	var out Outcome
	if err := checkShapes(op, shapes); err != nil {
		return out, err
	}
	if len(shapes) < 3 {
		return out, office.NewContractError(op, office.ErrTooFewShapes)
	}

	type item struct {
		shape office.Shape
		rect  office.ShapeRect
	}
	items := make([]item, len(shapes))
	for i, r := range snapshot(shapes) {
		items[i] = item{shapes[i], r}
	}
	lead := func(r office.ShapeRect) float64 {
		if d == DistributeVertical {
			return r.Top
		}
		return r.Left
	}
	extent := func(r office.ShapeRect) float64 {
		if d == DistributeVertical {
			return r.Height
		}
		return r.Width
	}
	sort.SliceStable(items, func(i, j int) bool {
		return lead(items[i].rect) < lead(items[j].rect)
	})

	first, last := items[0].rect, items[len(items)-1].rect
	span := lead(last) + extent(last) - lead(first)
	for _, it := range items {
		span -= extent(it.rect)
	}
	gap := span / float64(len(items)-1)

	s.beginUndo()
	pos := lead(first)
	for i, it := range items {
		if i > 0 && i < len(items)-1 {
			r := it.rect.MoveTo(pos, it.rect.Top)
			if d == DistributeVertical {
				r = it.rect.MoveTo(it.rect.Left, pos)
			}
			if !r.ApproxEqual(it.rect, 1e-9) {
				s.place(op, it.shape, r, &out)
			}
		}
		pos += extent(it.rect) + gap
	}
	s.log.Debug("shapes distributed", "axis", d.String(), "gap", gap, "changed", out.Changed)
	return out, nil
}

// SetEqualWidth gives every shape the largest width. Heights are unchanged.
func (s *AlignmentService) SetEqualWidth(shapes []office.Shape) (Outcome, error) {
	return s.equalize("equal width", shapes, true, false)
}

// SetEqualHeight gives every shape the largest height. Widths are unchanged.
func (s *AlignmentService) SetEqualHeight(shapes []office.Shape) (Outcome, error) {
	return s.equalize("equal height", shapes, false, true)
}

// SetEqualSize gives every shape the largest width and the largest height.
func (s *AlignmentService) SetEqualSize(shapes []office.Shape) (Outcome, error) {
	return s.equalize("equal size", shapes, true, true)
}

func (s *AlignmentService) equalize(op string, shapes []office.Shape, width, height bool) (Outcome, error) {
	var out Outcome
	if err := checkShapes(op, shapes); err != nil {
		return out, err
	}
	if len(shapes) == 0 {
		s.log.Warn("nothing to resize", "op", op)
		return out, nil
	}

	before := snapshot(shapes)
	var maxW, maxH float64
	for _, r := range before {
		maxW = math.Max(maxW, r.Width)
		maxH = math.Max(maxH, r.Height)
	}

	s.beginUndo()
	for i, sh := range shapes {
		w, h := before[i].Width, before[i].Height
		if width {
			w = maxW
		}
		if height {
			h = maxH
		}
		r := before[i].WithSize(w, h)
		if r.ApproxEqual(before[i], 1e-9) {
			continue
		}
		s.place(op, sh, r, &out)
	}
	return out, nil
}

// SwapPositions exchanges the centres of two shapes, keeping their sizes.
func (s *AlignmentService) SwapPositions(a, b office.Shape) (Outcome, error) {
	const op = "swap"
	var out Outcome
	if a == nil || b == nil {
		return out, office.NewContractError(op, office.ErrNilArgument)
	}
	ra, rb := a.Bounds(), b.Bounds()

	s.beginUndo()
	s.place(op, a, ra.MoveTo(rb.CenterX()-ra.Width/2, rb.CenterY()-ra.Height/2), &out)
	s.place(op, b, rb.MoveTo(ra.CenterX()-rb.Width/2, ra.CenterY()-rb.Height/2), &out)
	return out, nil
}

var alignCommands = map[AlignmentType]string{
	AlignLeft:   office.CmdAlignLeft,
	AlignCenter: office.CmdAlignCenter,
	AlignRight:  office.CmdAlignRight,
	AlignTop:    office.CmdAlignTop,
	AlignMiddle: office.CmdAlignMiddle,
	AlignBottom: office.CmdAlignBottom,
}

// AlignSelection aligns the selected shapes. When aligning against each
// other, the host's own command is tried first and the geometric algorithm
// runs only if the host declines.
func (s *AlignmentService) AlignSelection(t AlignmentType, ref AlignmentReference) (Outcome, error) {
	if s.app == nil {
		return Outcome{}, office.NewContractError("align", office.ErrNilArgument)
	}
	shapes := office.SelectedShapes(s.app)
	if ref == RefSelectedObjects && len(shapes) >= 2 {
		if out, ok := s.tryCommand(alignCommands[t], len(shapes)); ok {
			return out, nil
		}
	}
	return s.Align(shapes, t, ref)
}

// DistributeSelection distributes the selected shapes, preferring the
// host's own command.
func (s *AlignmentService) DistributeSelection(d DistributionType) (Outcome, error) {
	if s.app == nil {
		return Outcome{}, office.NewContractError("distribute", office.ErrNilArgument)
	}
	shapes := office.SelectedShapes(s.app)
	if len(shapes) >= 3 {
		cmd := office.CmdDistributeHorizontally
		if d == DistributeVertical {
			cmd = office.CmdDistributeVertically
		}
		if out, ok := s.tryCommand(cmd, len(shapes)); ok {
			return out, nil
		}
	}
	return s.Distribute(shapes, d)
}

func (s *AlignmentService) tryCommand(id string, n int) (Outcome, bool) {
	if id == "" || !s.app.IsFeatureSupported(office.FeatureShapeAlignment) {
		return Outcome{}, false
	}
	exec := s.app.CommandExecutor()
	if exec == nil {
		return Outcome{}, false
	}
	if !exec.TryExecute(s.app, id) {
		s.log.Debug("host command declined, using geometry", "command", id)
		return Outcome{}, false
	}
	return Outcome{Changed: n, Command: id}, true
}
