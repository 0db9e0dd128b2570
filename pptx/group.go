package pptx

import (
	"errors"
	"math"
)

// GroupShape represents a group of shapes. Children use the slide's
// coordinate space; the group's bounds are the union of its children.
type GroupShape struct {
	BaseShape
	shapes []Shape
}

func (g *GroupShape) GetType() ShapeType { return ShapeTypeGroup }

// NewGroupShape creates a new group shape.
func NewGroupShape() *GroupShape {
	return &GroupShape{shapes: make([]Shape, 0)}
}

// AddShape adds a shape to the group and grows the group bounds to cover it.
func (g *GroupShape) AddShape(s Shape) *GroupShape {
	g.shapes = append(g.shapes, s)
	g.fitChildren()
	return g
}

// GetShapes returns all shapes in the group.
func (g *GroupShape) GetShapes() []Shape { return g.shapes }

// GetShapeCount returns the number of shapes in the group.
func (g *GroupShape) GetShapeCount() int { return len(g.shapes) }

// RemoveShape removes a shape by index.
func (g *GroupShape) RemoveShape(index int) error {
	if index < 0 || index >= len(g.shapes) {
		return errOutOfRange
	}
	g.shapes = append(g.shapes[:index], g.shapes[index+1:]...)
	g.fitChildren()
	return nil
}

// MoveTo translates the group and every child so the group's top-left
// corner lands on x, y.
func (g *GroupShape) MoveTo(x, y int64) {
	dx, dy := x-g.offsetX, y-g.offsetY
	for _, s := range g.shapes {
		b := s.base()
		if child, ok := s.(*GroupShape); ok {
			child.MoveTo(b.offsetX+dx, b.offsetY+dy)
			continue
		}
		b.offsetX += dx
		b.offsetY += dy
	}
	g.offsetX, g.offsetY = x, y
}

// Resize scales every child about the group's top-left corner so the group
// measures w×h.
func (g *GroupShape) Resize(w, h int64) {
	w, h = max(w, 0), max(h, 0)
	sx, sy := 1.0, 1.0
	if g.width > 0 {
		sx = float64(w) / float64(g.width)
	}
	if g.height > 0 {
		sy = float64(h) / float64(g.height)
	}
	for _, s := range g.shapes {
		b := s.base()
		x := g.offsetX + int64(math.Round(float64(b.offsetX-g.offsetX)*sx))
		y := g.offsetY + int64(math.Round(float64(b.offsetY-g.offsetY)*sy))
		cw := int64(math.Round(float64(b.width) * sx))
		ch := int64(math.Round(float64(b.height) * sy))
		if child, ok := s.(*GroupShape); ok {
			child.MoveTo(x, y)
			child.Resize(cw, ch)
			continue
		}
		b.offsetX, b.offsetY = x, y
		b.width, b.height = cw, ch
	}
	g.width, g.height = w, h
}

func (g *GroupShape) fitChildren() {
	if len(g.shapes) == 0 {
		return
	}
	first := g.shapes[0]
	minX, minY := first.GetOffsetX(), first.GetOffsetY()
	maxX, maxY := minX+first.GetWidth(), minY+first.GetHeight()
	for _, s := range g.shapes[1:] {
		minX = min(minX, s.GetOffsetX())
		minY = min(minY, s.GetOffsetY())
		maxX = max(maxX, s.GetOffsetX()+s.GetWidth())
		maxY = max(maxY, s.GetOffsetY()+s.GetHeight())
	}
	g.offsetX, g.offsetY = minX, minY
	g.width, g.height = maxX-minX, maxY-minY
}

// PlaceholderShape represents a layout placeholder (title, body, etc.).
type PlaceholderShape struct {
	RichTextShape
	phType PlaceholderType
	phIdx  int
}

func (p *PlaceholderShape) GetType() ShapeType { return ShapeTypePlaceholder }

// PlaceholderType represents the type of placeholder.
type PlaceholderType string

const (
	PlaceholderTitle    PlaceholderType = "title"
	PlaceholderBody     PlaceholderType = "body"
	PlaceholderCtrTitle PlaceholderType = "ctrTitle"
	PlaceholderSubTitle PlaceholderType = "subTitle"
)

// NewPlaceholderShape creates a new placeholder shape.
func NewPlaceholderShape(phType PlaceholderType) *PlaceholderShape {
	return &PlaceholderShape{
		RichTextShape: *NewRichTextShape(),
		phType:        phType,
	}
}

// GetPlaceholderType returns the placeholder type.
func (p *PlaceholderShape) GetPlaceholderType() PlaceholderType { return p.phType }

// SetPlaceholderIndex sets the placeholder index.
func (p *PlaceholderShape) SetPlaceholderIndex(idx int) { p.phIdx = idx }

// GetPlaceholderIndex returns the placeholder index.
func (p *PlaceholderShape) GetPlaceholderIndex() int { return p.phIdx }

var errOutOfRange = errors.New("index out of range")
