package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/pptassist/config"
	"github.com/VantageDataChat/pptassist/host/automation"
	"github.com/VantageDataChat/pptassist/host/automation/ole"
	"github.com/VantageDataChat/pptassist/host/document"
	"github.com/VantageDataChat/pptassist/logging"
	"github.com/VantageDataChat/pptassist/office"
	"github.com/VantageDataChat/pptassist/pptx"
)

var errNoDeck = errors.New("a .pptx path is required unless --live is set")

// session is one opened host plus what the commands need around it.
type session struct {
	app      office.Application
	renderer office.GlassCardRenderer
	cfg      *config.Config
	log      *logging.Logger

	doc     *document.Application // nil in live mode
	out     string
	closers []func()
}

func openSession(cmd *cobra.Command, opts *globalOptions, args []string) (*session, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	log := logging.New(cmd.ErrOrStderr(), logging.ParseLevel(cfg.Log.Level), cfg.Log.Format == "console")
	s := &session{cfg: cfg, log: log, out: opts.out}

	if opts.live {
		if err := s.attach(); err != nil {
			return nil, err
		}
		return s, nil
	}

	if len(args) == 0 {
		return nil, errNoDeck
	}
	pres, err := pptx.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", args[0], err)
	}
	app, err := document.New(pres, args[0],
		document.WithLogger(log),
		document.WithActiveSlide(opts.slide),
		document.WithSelectedShapes(opts.shapes...),
	)
	if err != nil {
		return nil, err
	}
	s.app, s.doc = app, app
	s.renderer = document.NewGlassCardRenderer(app)
	log.Debug("deck opened", "path", args[0], "slides", pres.GetSlideCount())
	return s, nil
}

func (s *session) attach() error {
	p, err := ole.Connect(s.cfg.Host.ProgIDs...)
	if err != nil {
		return fmt.Errorf("attach to running application: %w", err)
	}
	s.closers = append(s.closers, p.Close)
	app, err := automation.New(p,
		automation.WithLogger(s.log),
		automation.WithRetryOnStale(s.cfg.Host.RetryOnStale),
	)
	if err != nil {
		s.close()
		return err
	}
	s.closers = append(s.closers, app.Close)
	s.app = app
	s.renderer = automation.NewGlassCardRenderer(app)
	s.log.Info("attached to running application", "progid", p.ProgID(), "name", app.Name(), "version", app.Version())
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.NewLoader().LoadFile(path)
	}
	return config.Load()
}

// save persists a file-mode deck. The running application owns live
// documents, so there is nothing to write in live mode.
func (s *session) save() error {
	if s.doc == nil {
		return nil
	}
	return s.doc.Save(s.out)
}

func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// activeSlide returns the slide commands operate on.
func (s *session) activeSlide() (office.Slide, error) {
	slide := office.ActiveSlide(s.app)
	if slide == nil {
		return nil, office.ErrNoActiveSlide
	}
	return slide, nil
}

// selected returns the selected shapes.
func (s *session) selected() []office.Shape {
	return office.SelectedShapes(s.app)
}

// findTable picks the table a command works on: the named shape, else the
// first selected table, else the first table on the active slide.
func (s *session) findTable(name string) (office.Table, error) {
	slide, err := s.activeSlide()
	if err != nil {
		return nil, err
	}
	if name != "" {
		shape := slide.ShapeByName(name)
		if shape == nil {
			return nil, fmt.Errorf("no shape named %q on slide %d", name, slide.Index())
		}
		if t := shape.Table(); t != nil {
			return t, nil
		}
		return nil, fmt.Errorf("shape %q holds no table", name)
	}
	for _, shape := range s.selected() {
		if t := shape.Table(); t != nil {
			return t, nil
		}
	}
	for _, shape := range slide.Shapes() {
		if shape.HasTable() {
			if t := shape.Table(); t != nil {
				return t, nil
			}
		}
	}
	return nil, fmt.Errorf("no table on slide %d", slide.Index())
}
