package automation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/VantageDataChat/pptassist/office"
)

// Features is the fixed capability table of the automation host.
var Features = office.NewFeatureTable(
	office.FeatureTableBasic,
	office.FeatureChart,
	office.FeatureShapeAlignment,
	office.FeatureUndoRedo,
	office.FeatureShortcuts,
)

var errPartialWrite = errors.New("write partially applied")

// Application is the root context over a running host.
type Application struct {
	provider Provider
	log      office.Logger
	retry    bool

	mu   sync.Mutex
	root Object
}

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l office.Logger) Option {
	return func(a *Application) { a.log = office.LoggerOrNop(l) }
}

// WithRetryOnStale controls whether a stale root is refreshed and the failed
// call retried. Enabled by default.
func WithRetryOnStale(enabled bool) Option {
	return func(a *Application) { a.retry = enabled }
}

// New connects the contexts to the host behind p.
func New(p Provider, opts ...Option) (*Application, error) {
	if p == nil {
		return nil, fmt.Errorf("automation: %w", office.ErrNilArgument)
	}
	a := &Application{provider: p, log: office.NopLogger{}, retry: true}
	for _, opt := range opts {
		opt(a)
	}
	root, err := p.Application()
	if err != nil {
		return nil, fmt.Errorf("automation: resolve application: %w", err)
	}
	a.root = root
	return a, nil
}

func (a *Application) rootObject() (Object, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.root == nil {
		root, err := a.provider.Application()
		if err != nil {
			return nil, err
		}
		a.root = root
	}
	return a.root, nil
}

func (a *Application) refresh() error {
	root, err := a.provider.Refresh()
	if err != nil {
		a.log.Warn("refresh of host application failed", "err", err.Error())
		return err
	}
	a.mu.Lock()
	old := a.root
	a.root = root
	a.mu.Unlock()
	if old != nil && old != root {
		old.Release()
	}
	a.log.Debug("host application handle refreshed")
	return nil
}

// attempt runs fn once against the current root inside a fresh scope.
func attempt[T any](a *Application, last **scope, fn func(sc *scope, root Object) (T, error)) (T, error) {
	var zero T
	root, err := a.rootObject()
	if err != nil {
		return zero, err
	}
	sc := &scope{}
	*last = sc
	defer sc.release()
	return fn(sc, root)
}

// do reads through the host, returning def when the read fails.
func do[T any](a *Application, op string, def T, fn func(sc *scope, root Object) (T, error)) T {
	return office.Read(a.log, op, def, func() (T, error) {
		var last *scope
		return office.Retry(func() (T, error) {
			return attempt(a, &last, fn)
		}, a.refreshFor(&last))
	})
}

// write applies a best-effort change. A stale failure is retried only when
// nothing was written before it.
func (a *Application) write(op string, fn func(sc *scope, root Object) error) bool {
	return office.Write(a.log, op, func() error {
		var last *scope
		_, err := office.Retry(func() (struct{}, error) {
			return attempt(a, &last, func(sc *scope, root Object) (struct{}, error) {
				return struct{}{}, fn(sc, root)
			})
		}, a.refreshFor(&last))
		return err
	})
}

// native resolves a handle that outlives the operation; the caller releases it.
func (a *Application) native(op string, fn func(sc *scope, root Object) (Object, error)) any {
	obj := do(a, op, Object(nil), func(sc *scope, root Object) (Object, error) {
		o, err := fn(sc, root)
		if err != nil {
			return nil, err
		}
		sc.detach(o)
		return o, nil
	})
	if obj == nil {
		return nil
	}
	return obj
}

func (a *Application) refreshFor(last **scope) func() error {
	if !a.retry {
		return nil
	}
	return func() error {
		if *last != nil && (*last).writes > 0 {
			return errPartialWrite
		}
		return a.refresh()
	}
}

func (a *Application) Platform() office.PlatformType { return office.PlatformAutomation }

func (a *Application) Name() string {
	return do(a, "application.Name", "", func(_ *scope, root Object) (string, error) {
		return getString(root, "Name")
	})
}

func (a *Application) Version() string {
	return do(a, "application.Version", "", func(_ *scope, root Object) (string, error) {
		return getString(root, "Version")
	})
}

func (a *Application) ActivePresentation() office.Presentation {
	ok := do(a, "application.ActivePresentation", false, func(sc *scope, root Object) (bool, error) {
		_, err := sc.get(root, "ActivePresentation")
		return err == nil, err
	})
	if !ok {
		return nil
	}
	return &presentation{app: a}
}

func (a *Application) ActiveWindow() office.Window {
	ok := do(a, "application.ActiveWindow", false, func(sc *scope, root Object) (bool, error) {
		_, err := sc.get(root, "ActiveWindow")
		return err == nil, err
	})
	if !ok {
		return nil
	}
	return &window{app: a}
}

func (a *Application) Selection() office.Selection {
	w := a.ActiveWindow()
	if w == nil {
		return nil
	}
	return w.Selection()
}

func (a *Application) IsFeatureSupported(f office.Feature) bool {
	return Features.Supports(f)
}

func (a *Application) CommandExecutor() office.CommandExecutor {
	return executor{}
}

func (a *Application) StartNewUndoEntry() {
	a.write("application.StartNewUndoEntry", func(sc *scope, root Object) error {
		return sc.invoke(root, "StartNewUndoEntry")
	})
}

func (a *Application) Native() any {
	root, err := a.rootObject()
	if err != nil {
		return nil
	}
	return root
}

// Close releases the root handle.
func (a *Application) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.root != nil {
		a.root.Release()
		a.root = nil
	}
}
