package office

import "math"

// ShapeRect is a shape's position and size in points.
// It always replaces a shape's geometry as a whole.
type ShapeRect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// NewShapeRect creates a rect; negative sizes are clamped to zero.
func NewShapeRect(left, top, width, height float64) ShapeRect {
	return ShapeRect{
		Left:   left,
		Top:    top,
		Width:  math.Max(width, 0),
		Height: math.Max(height, 0),
	}
}

// Right returns the right edge.
func (r ShapeRect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge.
func (r ShapeRect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal center.
func (r ShapeRect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center.
func (r ShapeRect) CenterY() float64 { return r.Top + r.Height/2 }

// MoveTo returns a copy positioned at left/top with the same size.
func (r ShapeRect) MoveTo(left, top float64) ShapeRect {
	r.Left = left
	r.Top = top
	return r
}

// WithSize returns a copy with the given size and the same top-left corner.
func (r ShapeRect) WithSize(width, height float64) ShapeRect {
	return NewShapeRect(r.Left, r.Top, width, height)
}

// ApproxEqual reports whether every component differs by at most tol.
func (r ShapeRect) ApproxEqual(o ShapeRect, tol float64) bool {
	return math.Abs(r.Left-o.Left) <= tol &&
		math.Abs(r.Top-o.Top) <= tol &&
		math.Abs(r.Width-o.Width) <= tol &&
		math.Abs(r.Height-o.Height) <= tol
}

// IsZero reports whether the rect is the zero value.
func (r ShapeRect) IsZero() bool {
	return r == ShapeRect{}
}
