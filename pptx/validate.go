package pptx

import (
	"errors"
	"fmt"
	"regexp"
)

var tableStyleID = regexp.MustCompile(`^\{[0-9A-Fa-f]{8}(-[0-9A-Fa-f]{4}){3}-[0-9A-Fa-f]{12}\}$`)

// checker collects problems under a location prefix.
type checker struct {
	problems []error
}

func (c *checker) addf(where, format string, args ...any) {
	c.problems = append(c.problems, fmt.Errorf("%s: %s", where, fmt.Sprintf(format, args...)))
}

// Validate reports every structural problem that would make the written
// package unreadable, joined into one error. It returns nil for a valid
// presentation.
func (p *Presentation) Validate() error {
	c := &checker{}
	if p.properties == nil {
		c.addf("presentation", "document properties missing")
	}
	switch {
	case p.layout == nil:
		c.addf("presentation", "layout missing")
	case p.layout.CX <= 0 || p.layout.CY <= 0:
		c.addf("presentation", "slide size %dx%d EMU is not positive", p.layout.CX, p.layout.CY)
	}
	if len(p.slides) == 0 {
		c.addf("presentation", "no slides")
	}
	for i, slide := range p.slides {
		where := fmt.Sprintf("slide %d", i+1)
		if slide == nil {
			c.addf(where, "nil slide")
			continue
		}
		c.shapes(where, slide.shapes)
	}
	if len(c.problems) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed: %w", errors.Join(c.problems...))
}

func (c *checker) shapes(where string, shapes []Shape) {
	for j, shape := range shapes {
		at := fmt.Sprintf("%s shape %d", where, j+1)
		if shape == nil {
			c.addf(at, "nil shape")
			continue
		}
		if shape.GetWidth() < 0 || shape.GetHeight() < 0 {
			c.addf(at, "negative size %dx%d", shape.GetWidth(), shape.GetHeight())
		}

		switch sh := shape.(type) {
		case *DrawingShape:
			if len(sh.data) == 0 {
				c.addf(at, "picture has no image data")
			}
			switch sh.mimeType {
			case "", "image/png", "image/jpeg", "image/gif", "image/bmp":
			default:
				c.addf(at, "unsupported image type %s", sh.mimeType)
			}
		case *TableShape:
			c.table(at, sh)
		case *PlaceholderShape:
			if sh.phType == "" {
				c.addf(at, "placeholder without type")
			}
			c.paragraphs(at, sh.paragraphs)
		case *RichTextShape:
			if len(sh.paragraphs) == 0 {
				c.addf(at, "text box has no paragraphs")
			}
			if sh.columns < 1 {
				c.addf(at, "text columns %d < 1", sh.columns)
			}
			c.paragraphs(at, sh.paragraphs)
		case *AutoShape:
			c.paragraphs(at, sh.paragraphs)
		case *LineShape:
			if !isValidARGB(sh.lineColor.ARGB) {
				c.addf(at, "line colour %q is not ARGB", sh.lineColor.ARGB)
			}
		case *GroupShape:
			c.shapes(at+" group", sh.shapes)
		}
	}
}

func (c *checker) table(at string, t *TableShape) {
	if t.numRows <= 0 || t.numCols <= 0 {
		c.addf(at, "table is %dx%d", t.numRows, t.numCols)
	}
	if t.styleID != "" && !tableStyleID.MatchString(t.styleID) {
		c.addf(at, "table style id %q is not a braced GUID", t.styleID)
	}
	if len(t.rows) != t.numRows {
		c.addf(at, "table holds %d rows, declares %d", len(t.rows), t.numRows)
	}
	for i, row := range t.rows {
		if len(row) != t.numCols {
			c.addf(at, "row %d has %d cells, want %d", i+1, len(row), t.numCols)
			continue
		}
		for k, cell := range row {
			if cell == nil || cell.border == nil {
				continue
			}
			for _, b := range []*Border{cell.border.Top, cell.border.Left, cell.border.Bottom, cell.border.Right} {
				if b != nil && b.Width < 0 {
					c.addf(at, "cell (%d,%d) border width %d is negative", i+1, k+1, b.Width)
				}
			}
		}
	}
}

func (c *checker) paragraphs(at string, paragraphs []*Paragraph) {
	for i, para := range paragraphs {
		if para == nil {
			c.addf(at, "paragraph %d is nil", i+1)
			continue
		}
		for k, elem := range para.elements {
			if elem == nil {
				c.addf(at, "paragraph %d element %d is nil", i+1, k+1)
			}
		}
	}
}
