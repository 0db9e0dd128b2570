// Package document implements the office contexts over the typed in-process
// presentation model (package pptx). Edits are applied to the loaded deck and
// persisted with Save.
//
// The package plays the part of a strongly typed host: there is no window
// system, so the active slide and the selection are plain state set through
// options or by commands.
package document

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
)

// Features is the fixed capability table of the document host.
var Features = office.NewFeatureTable(
	office.FeatureTableBasic,
	office.FeatureTableAdvancedBorder,
	office.FeatureShapeAlignment,
	office.FeatureShapeBatch,
	office.FeatureTextAdvanced,
)

// Application is the root context over one loaded presentation.
type Application struct {
	pres *pptx.Presentation
	path string
	log  office.Logger

	activeSlide    int // 0-based
	selectedNames  []string
	selectedShapes []pptx.Shape
	selectedSlides []int // 0-based
}

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l office.Logger) Option {
	return func(a *Application) { a.log = office.LoggerOrNop(l) }
}

// WithActiveSlide makes the 1-based slide the one shown in the window.
func WithActiveSlide(index int) Option {
	return func(a *Application) { a.activeSlide = index - 1 }
}

// WithSelectedShapes selects shapes on the active slide by name, in the
// given order. Unknown names are skipped with a warning.
func WithSelectedShapes(names ...string) Option {
	return func(a *Application) { a.selectedNames = append(a.selectedNames, names...) }
}

// WithSelectedSlides selects 1-based slides in the slide sorter.
func WithSelectedSlides(indexes ...int) Option {
	return func(a *Application) {
		for _, i := range indexes {
			a.selectedSlides = append(a.selectedSlides, i-1)
		}
	}
}

// New wraps pres. path is the file the deck was loaded from, "" when unsaved.
func New(pres *pptx.Presentation, path string, opts ...Option) (*Application, error) {
	if pres == nil {
		return nil, fmt.Errorf("document: %w", office.ErrNilArgument)
	}
	a := &Application{pres: pres, path: path, log: office.NopLogger{}}
	for _, opt := range opts {
		opt(a)
	}
	if a.activeSlide < 0 || a.activeSlide >= pres.GetSlideCount() {
		return nil, fmt.Errorf("document: active slide %d out of range (1-%d)", a.activeSlide+1, pres.GetSlideCount())
	}
	for _, i := range a.selectedSlides {
		if i < 0 || i >= pres.GetSlideCount() {
			return nil, fmt.Errorf("document: selected slide %d out of range (1-%d)", i+1, pres.GetSlideCount())
		}
	}
	slide := a.modelSlide()
	for _, name := range a.selectedNames {
		s := slide.FindShapeByName(name, office.SameName)
		if s == nil {
			a.log.Warn("selected shape not found", "name", name, "slide", a.activeSlide+1)
			continue
		}
		a.selectedShapes = append(a.selectedShapes, s)
	}
	return a, nil
}

// Presentation returns the underlying model.
func (a *Application) Presentation() *pptx.Presentation { return a.pres }

// Save writes the presentation to path, or to the path it was loaded from
// when path is empty.
func (a *Application) Save(path string) error {
	if path == "" {
		path = a.path
	}
	if path == "" {
		return errors.New("document: no output path")
	}
	if err := a.pres.Save(path); err != nil {
		return fmt.Errorf("document: save %s: %w", path, err)
	}
	a.path = path
	a.log.Info("presentation saved", "path", path)
	return nil
}

func (a *Application) Platform() office.PlatformType { return office.PlatformDocument }

func (a *Application) Name() string { return "pptx" }

func (a *Application) Version() string { return pptx.Version }

func (a *Application) ActivePresentation() office.Presentation {
	return &presentation{app: a}
}

func (a *Application) ActiveWindow() office.Window {
	return &window{app: a}
}

func (a *Application) Selection() office.Selection {
	return &selection{app: a}
}

func (a *Application) IsFeatureSupported(f office.Feature) bool {
	return Features.Supports(f)
}

func (a *Application) CommandExecutor() office.CommandExecutor {
	return executor{}
}

// StartNewUndoEntry is a no-op: the model keeps no undo history.
func (a *Application) StartNewUndoEntry() {
	a.log.Debug("undo entries not supported", "platform", a.Platform().String())
}

func (a *Application) Native() any { return a.pres }

// modelSlide returns the active slide of the model.
func (a *Application) modelSlide() *pptx.Slide {
	s, err := a.pres.GetSlide(a.activeSlide)
	if err != nil {
		return nil
	}
	return s
}

// liveSelection drops selected shapes that are no longer on the active slide.
func (a *Application) liveSelection() []pptx.Shape {
	slide := a.modelSlide()
	if slide == nil {
		a.selectedShapes = nil
		return nil
	}
	live := a.selectedShapes[:0]
	for _, s := range a.selectedShapes {
		if slide.IndexOf(s) >= 0 {
			live = append(live, s)
		}
	}
	a.selectedShapes = live
	return live
}

func (a *Application) selectShapes(shapes []pptx.Shape) {
	a.selectedShapes = append([]pptx.Shape(nil), shapes...)
	a.selectedSlides = nil
}

func (a *Application) fileName() string {
	if a.path == "" {
		return ""
	}
	return filepath.Base(a.path)
}
