package automationtest

import (
	"errors"
	"fmt"

	"github.com/VantageDataChat/pptassist/host/automation"
	"github.com/VantageDataChat/pptassist/office"
)

var errReleased = errors.New("handle used after release")

// handle is a reference to a node, valid until released or until the host
// is marked stale.
type handle struct {
	host     *Host
	node     *Node
	epoch    int
	released bool
}

var _ automation.Object = (*handle)(nil)

func (h *Host) wrap(n *Node) *handle {
	h.live++
	return &handle{host: h, node: n, epoch: h.epoch}
}

func (h *handle) check(member string) error {
	if h.released {
		return fmt.Errorf("%s: %w", member, errReleased)
	}
	if h.epoch != h.host.epoch {
		return fmt.Errorf("%s: %w", member, office.ErrStale)
	}
	if f, ok := h.host.faults[member]; ok {
		if f.remaining > 0 {
			f.remaining--
			if f.remaining == 0 {
				delete(h.host.faults, member)
			}
		}
		return fmt.Errorf("%s: %w", member, f.err)
	}
	return nil
}

// result converts a node-level value into what a dispatch call returns.
func (h *handle) result(v any) (any, error) {
	if d, ok := v.(Dynamic); ok {
		out, err := d()
		if err != nil {
			return nil, err
		}
		v = out
	}
	if n, ok := v.(*Node); ok {
		return h.host.wrap(n), nil
	}
	return v, nil
}

func (h *handle) Get(name string, args ...any) (any, error) {
	if err := h.check(name); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		if v, ok := h.node.props[name]; ok {
			return h.result(v)
		}
	}
	if m, ok := h.node.methods[name]; ok {
		v, err := m(args...)
		if err != nil {
			return nil, err
		}
		return h.result(v)
	}
	return nil, fmt.Errorf("%s: %w", name, office.ErrUnsupported)
}

func (h *handle) Put(name string, args ...any) error {
	if err := h.check(name); err != nil {
		return err
	}
	if fn, ok := h.node.setters[name]; ok {
		return fn(args...)
	}
	if _, ok := h.node.props[name]; !ok || len(args) != 1 {
		return fmt.Errorf("%s: %w", name, office.ErrUnsupported)
	}
	if _, ok := h.node.props[name].(Dynamic); ok {
		return fmt.Errorf("%s: read-only", name)
	}
	h.node.props[name] = args[0]
	return nil
}

func (h *handle) Call(name string, args ...any) (any, error) {
	if err := h.check(name); err != nil {
		return nil, err
	}
	if m, ok := h.node.methods[name]; ok {
		v, err := m(args...)
		if err != nil {
			return nil, err
		}
		return h.result(v)
	}
	if v, ok := h.node.props[name]; ok && len(args) == 0 {
		return h.result(v)
	}
	return nil, fmt.Errorf("%s: %w", name, office.ErrUnsupported)
}

func (h *handle) Release() {
	if h.released {
		return
	}
	h.released = true
	h.host.live--
}
