package pptx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PPTXWriter writes presentations in .pptx format.
type PPTXWriter struct {
	presentation *Presentation
	media        map[*DrawingShape]int // global image number per picture
}

// NewWriter creates a writer for p.
func NewWriter(p *Presentation) *PPTXWriter {
	return &PPTXWriter{presentation: p}
}

// Save writes the presentation to a file, creating parent directories.
// A partially written file is removed on failure.
func (w *PPTXWriter) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	writeErr := w.WriteTo(f)
	closeErr := f.Close()

	if writeErr != nil {
		_ = os.Remove(path)
		return writeErr
	}
	return closeErr
}

// WriteTo writes the presentation to a writer.
func (w *PPTXWriter) WriteTo(writer io.Writer) error {
	if w.presentation == nil {
		return errors.New("presentation is nil")
	}
	if err := w.presentation.Validate(); err != nil {
		return err
	}

	w.indexMedia()
	zw := zip.NewWriter(writer)

	parts := []func(*zip.Writer) error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writeAppProperties,
		w.writeCoreProperties,
		w.writePresentation,
		w.writePresentationRels,
		w.writePresProps,
		w.writeViewProps,
		w.writeTableStyles,
		w.writeSlideMaster,
		w.writeSlideLayout,
		w.writeTheme,
	}
	for _, part := range parts {
		if err := part(zw); err != nil {
			return err
		}
	}

	for i, slide := range w.presentation.slides {
		rels := w.slideImageRels(slide)
		if err := w.writeSlide(zw, slide, i+1, rels); err != nil {
			return err
		}
		if err := w.writeSlideRels(zw, slide, i+1, rels); err != nil {
			return err
		}
	}

	if err := w.writeMedia(zw); err != nil {
		return err
	}
	return zw.Close()
}

// indexMedia numbers every picture across the presentation.
func (w *PPTXWriter) indexMedia() {
	w.media = make(map[*DrawingShape]int)
	n := 1
	for _, slide := range w.presentation.slides {
		for _, ds := range collectDrawingShapes(slide.shapes) {
			w.media[ds] = n
			n++
		}
	}
}

// slideImageRels assigns relationship ids to the pictures of one slide.
// rId1 is always the slide layout.
func (w *PPTXWriter) slideImageRels(slide *Slide) map[*DrawingShape]string {
	rels := make(map[*DrawingShape]string)
	next := 2
	for _, ds := range collectDrawingShapes(slide.shapes) {
		rels[ds] = fmt.Sprintf("rId%d", next)
		next++
	}
	return rels
}

// collectDrawingShapes returns every picture with data, including those
// nested in groups, in document order.
func collectDrawingShapes(shapes []Shape) []*DrawingShape {
	var result []*DrawingShape
	for _, shape := range shapes {
		switch s := shape.(type) {
		case *DrawingShape:
			if len(s.data) > 0 {
				result = append(result, s)
			}
		case *GroupShape:
			result = append(result, collectDrawingShapes(s.shapes)...)
		}
	}
	return result
}

func (w *PPTXWriter) writeMedia(zw *zip.Writer) error {
	for _, slide := range w.presentation.slides {
		for _, ds := range collectDrawingShapes(slide.shapes) {
			name := fmt.Sprintf("ppt/media/image%d.%s", w.media[ds], imageExtension(ds))
			fw, err := zw.Create(name)
			if err != nil {
				return fmt.Errorf("failed to create %s in zip: %w", name, err)
			}
			if _, err := fw.Write(ds.data); err != nil {
				return err
			}
		}
	}
	return nil
}

func imageExtension(ds *DrawingShape) string {
	switch ds.mimeType {
	case "image/jpeg":
		return "jpeg"
	case "image/gif":
		return "gif"
	case "image/bmp":
		return "bmp"
	default:
		return "png"
	}
}

func imageContentType(ext string) string {
	switch ext {
	case "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	default:
		return "image/png"
	}
}
