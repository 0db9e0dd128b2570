// Package pptx is an in-memory object model for presentation files in the
// Office Open XML format (.pptx): slides, text boxes, auto shapes, lines,
// pictures, groups and tables, with a reader, a writer and a raster preview
// renderer.
//
// Geometry is stored in EMU (see Point and EMUToPoint); slides and table
// cells are addressed with 0-based indexes.
package pptx

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Presentation represents an in-memory presentation.
type Presentation struct {
	properties *DocumentProperties
	slides     []*Slide
	layout     *DocumentLayout
}

// New creates a new Presentation with one blank slide.
func New() *Presentation {
	p := &Presentation{
		properties: NewDocumentProperties(),
		slides:     make([]*Slide, 0),
		layout:     NewDocumentLayout(),
	}
	p.CreateSlide()
	return p
}

// GetDocumentProperties returns the document properties.
func (p *Presentation) GetDocumentProperties() *DocumentProperties { return p.properties }

// GetLayout returns the slide size.
func (p *Presentation) GetLayout() *DocumentLayout { return p.layout }

// SetLayout sets the slide size.
func (p *Presentation) SetLayout(layout *DocumentLayout) { p.layout = layout }

// CreateSlide appends a blank slide.
func (p *Presentation) CreateSlide() *Slide {
	slide := newSlide()
	p.slides = append(p.slides, slide)
	return slide
}

// GetSlide returns the 0-based slide.
func (p *Presentation) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", index, len(p.slides)-1)
	}
	return p.slides[index], nil
}

// GetAllSlides returns all slides.
func (p *Presentation) GetAllSlides() []*Slide { return p.slides }

// GetSlideCount returns the number of slides.
func (p *Presentation) GetSlideCount() int { return len(p.slides) }

// IndexOfSlide returns the 0-based position of slide, or -1.
func (p *Presentation) IndexOfSlide(slide *Slide) int {
	for i, s := range p.slides {
		if s == slide {
			return i
		}
	}
	return -1
}

// RemoveSlideByIndex removes a slide. The last slide cannot be removed.
func (p *Presentation) RemoveSlideByIndex(index int) error {
	if index < 0 || index >= len(p.slides) {
		return errors.New("slide index out of range")
	}
	if len(p.slides) <= 1 {
		return errors.New("cannot remove the last slide")
	}
	p.slides = append(p.slides[:index], p.slides[index+1:]...)
	return nil
}

// MoveSlide moves a slide from one index to another.
func (p *Presentation) MoveSlide(fromIndex, toIndex int) error {
	if fromIndex < 0 || fromIndex >= len(p.slides) {
		return errors.New("fromIndex out of range")
	}
	if toIndex < 0 || toIndex >= len(p.slides) {
		return errors.New("toIndex out of range")
	}
	if fromIndex == toIndex {
		return nil
	}
	slide := p.slides[fromIndex]
	p.slides = append(p.slides[:fromIndex], p.slides[fromIndex+1:]...)
	p.slides = append(p.slides, nil)
	copy(p.slides[toIndex+1:], p.slides[toIndex:])
	p.slides[toIndex] = slide
	return nil
}

// ExtractText returns all slide text, useful for search and tests.
func (p *Presentation) ExtractText() string {
	var parts []string
	for _, slide := range p.slides {
		parts = append(parts, slide.ExtractText())
	}
	return joinNonEmpty(parts, "\n")
}

// Open reads a .pptx file from disk.
func Open(path string) (*Presentation, error) {
	return (&PPTXReader{}).Read(path)
}

// ReadFrom reads a .pptx from an io.ReaderAt with the given size.
func ReadFrom(r io.ReaderAt, size int64) (*Presentation, error) {
	return (&PPTXReader{}).ReadFromReader(r, size)
}

// Save writes the presentation to a .pptx file.
func (p *Presentation) Save(path string) error {
	return (&PPTXWriter{presentation: p}).Save(path)
}

// WriteTo writes the presentation to w in .pptx format.
func (p *Presentation) WriteTo(w io.Writer) error {
	return (&PPTXWriter{presentation: p}).WriteTo(w)
}

func joinNonEmpty(parts []string, sep string) string {
	var result []string
	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}
	return strings.Join(result, sep)
}
