// Package automation implements the office contexts over a running
// presentation application reached through late-bound dispatch (COM
// IDispatch on Windows, see the ole subpackage).
//
// Contexts never hold native handles between calls. Each operation walks
// from the application root to its target using a stable key (slide index,
// shape id and name, cell coordinates), converts whatever it reads into
// office value types and releases every intermediate handle before
// returning. A stale root is refreshed through the Provider and the failed
// call is retried once.
package automation

import (
	"errors"
	"fmt"
	"math"

	"github.com/VantageDataChat/pptassist/office"
)

// Object is a late-bound handle on a host object.
type Object interface {
	// Get reads a property. Indexed properties take their index in args.
	// Object-valued results are returned as Object and must be released.
	Get(name string, args ...any) (any, error)
	// Put writes a property; the last argument is the new value and any
	// preceding arguments are indexes.
	Put(name string, args ...any) error
	// Call invokes a method.
	Call(name string, args ...any) (any, error)
	Release()
}

// Provider hands out the application root handle.
type Provider interface {
	// Application returns the current root handle.
	Application() (Object, error)
	// Refresh discards the current root and resolves a fresh one.
	Refresh() (Object, error)
}

// Missing stands for an omitted optional argument.
type Missing struct{}

var errNotObject = errors.New("value is not an object")

// scope owns the handles acquired during one operation.
type scope struct {
	objs   []Object
	writes int
}

func (sc *scope) own(v any, name string) (Object, error) {
	obj, ok := v.(Object)
	if !ok || obj == nil {
		return nil, fmt.Errorf("%s: %w", name, errNotObject)
	}
	sc.objs = append(sc.objs, obj)
	return obj, nil
}

// get reads an object-valued property.
func (sc *scope) get(o Object, name string, args ...any) (Object, error) {
	v, err := o.Get(name, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return sc.own(v, name)
}

// path follows a chain of argument-less object properties.
func (sc *scope) path(o Object, names ...string) (Object, error) {
	cur := o
	for _, n := range names {
		next, err := sc.get(cur, n)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// call invokes an object-returning method.
func (sc *scope) call(o Object, name string, args ...any) (Object, error) {
	v, err := o.Call(name, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return sc.own(v, name)
}

// put writes a property and counts the write.
func (sc *scope) put(o Object, name string, args ...any) error {
	if err := o.Put(name, args...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	sc.writes++
	return nil
}

// putOptional writes a member some hosts lack. A missing member is skipped.
func (sc *scope) putOptional(o Object, name string, args ...any) error {
	if err := sc.put(o, name, args...); err != nil && !errors.Is(err, office.ErrUnsupported) {
		return err
	}
	return nil
}

// invoke calls a method for its side effect and counts it as a write.
func (sc *scope) invoke(o Object, name string, args ...any) error {
	v, err := o.Call(name, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if obj, ok := v.(Object); ok && obj != nil {
		obj.Release()
	}
	sc.writes++
	return nil
}

// detach hands ownership of o to the caller.
func (sc *scope) detach(o Object) {
	for i, x := range sc.objs {
		if x == o {
			sc.objs = append(sc.objs[:i], sc.objs[i+1:]...)
			return
		}
	}
}

func (sc *scope) release() {
	for i := len(sc.objs) - 1; i >= 0; i-- {
		sc.objs[i].Release()
	}
	sc.objs = nil
}

// --- scalar reads ---

func getString(o Object, name string, args ...any) (string, error) {
	v, err := o.Get(name, args...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("%s: unexpected %T", name, v)
}

func getFloat(o Object, name string, args ...any) (float64, error) {
	v, err := o.Get(name, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("%s: unexpected %T", name, v)
	}
	return f, nil
}

func getInt(o Object, name string, args ...any) (int, error) {
	f, err := getFloat(o, name, args...)
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}

// getTriState reads an MsoTriState or boolean property.
func getTriState(o Object, name string, args ...any) (bool, error) {
	v, err := o.Get(name, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return false, fmt.Errorf("%s: unexpected %T", name, v)
	}
	return triStateTrue(int(f)), nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case bool:
		if n {
			return msoTrue, true
		}
		return msoFalse, true
	}
	return 0, false
}
