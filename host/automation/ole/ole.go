// Package ole connects the automation host to a running presentation
// application through COM late binding.
package ole

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	goole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/VantageDataChat/pptassist/host/automation"
)

// DefaultProgIDs are tried in order when Connect gets none.
var DefaultProgIDs = []string{"KWPP.Application", "PowerPoint.Application"}

// ErrNotRunning means none of the ProgIDs has a running instance.
var ErrNotRunning = errors.New("no running presentation application")

// sFalse is returned by CoInitializeEx when the thread is already initialised.
const sFalse = 1

// Provider hands out dispatch handles on the running application. It owns a
// COM apartment bound to the goroutine's OS thread; use it from the
// goroutine that called Connect.
type Provider struct {
	progIDs []string

	mu     sync.Mutex
	progID string
	closed bool
}

var _ automation.Provider = (*Provider)(nil)

// Connect initialises COM on the current thread and checks that one of the
// ProgIDs is running.
func Connect(progIDs ...string) (*Provider, error) {
	if runtime.GOOS != "windows" {
		return nil, fmt.Errorf("ole: COM automation needs windows, running on %s", runtime.GOOS)
	}
	if len(progIDs) == 0 {
		progIDs = DefaultProgIDs
	}
	runtime.LockOSThread()
	if err := goole.CoInitializeEx(0, goole.COINIT_APARTMENTTHREADED); err != nil {
		var oe *goole.OleError
		if !errors.As(err, &oe) || oe.Code() != sFalse {
			runtime.UnlockOSThread()
			return nil, fmt.Errorf("ole: initialise COM: %w", err)
		}
	}
	p := &Provider{progIDs: progIDs}
	root, err := p.attach()
	if err != nil {
		p.Close()
		return nil, err
	}
	root.Release()
	return p, nil
}

// ProgID returns the ProgID of the instance last attached to.
func (p *Provider) ProgID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progID
}

func (p *Provider) attach() (*Dispatch, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, errors.New("ole: provider closed")
	}
	var errs []error
	for _, id := range p.progIDs {
		unk, err := oleutil.GetActiveObject(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		disp, err := unk.QueryInterface(goole.IID_IDispatch)
		unk.Release()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		p.progID = id
		return &Dispatch{disp: disp}, nil
	}
	return nil, fmt.Errorf("ole: %w: %w", ErrNotRunning, errors.Join(errs...))
}

// Application attaches to the running instance.
func (p *Provider) Application() (automation.Object, error) {
	d, err := p.attach()
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Refresh attaches again, picking up a restarted instance.
func (p *Provider) Refresh() (automation.Object, error) {
	return p.Application()
}

// Close uninitialises COM and unlocks the thread. Handles obtained from the
// provider must be released first.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	goole.CoUninitialize()
	runtime.UnlockOSThread()
}

// Dispatch wraps an IDispatch pointer.
type Dispatch struct {
	disp *goole.IDispatch
}

var _ automation.Object = (*Dispatch)(nil)

func (d *Dispatch) Get(name string, args ...any) (any, error) {
	if d.disp == nil {
		return nil, errReleased(name)
	}
	v, err := oleutil.GetProperty(d.disp, name, toArgs(args)...)
	if err != nil {
		return nil, classify(name, err)
	}
	return fromVariant(v), nil
}

func (d *Dispatch) Put(name string, args ...any) error {
	if d.disp == nil {
		return errReleased(name)
	}
	v, err := oleutil.PutProperty(d.disp, name, toArgs(args)...)
	if err != nil {
		return classify(name, err)
	}
	if v != nil {
		_ = v.Clear()
	}
	return nil
}

func (d *Dispatch) Call(name string, args ...any) (any, error) {
	if d.disp == nil {
		return nil, errReleased(name)
	}
	v, err := oleutil.CallMethod(d.disp, name, toArgs(args)...)
	if err != nil {
		return nil, classify(name, err)
	}
	return fromVariant(v), nil
}

// Release drops the reference; further calls fail.
func (d *Dispatch) Release() {
	if d.disp != nil {
		d.disp.Release()
		d.disp = nil
	}
}
