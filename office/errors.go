package office

import (
	"errors"
	"fmt"
)

var (
	// ErrStale means the native object behind a context was invalidated by the host.
	ErrStale = errors.New("native reference is stale")
	// ErrUnsupported means the host does not have the property or method.
	ErrUnsupported = errors.New("not supported by host")

	ErrNilArgument   = errors.New("required argument is nil")
	ErrTooFewShapes  = errors.New("too few shapes")
	ErrNoActiveSlide = errors.New("no active slide")
)

// ContractError reports a caller mistake detected by a service. Services
// return it for every caller mistake; a failing GlassCardRenderer is the one
// other error they pass on, wrapped with the operation name.
type ContractError struct {
	Op  string
	Err error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ContractError) Unwrap() error { return e.Err }

// NewContractError wraps err for op.
func NewContractError(op string, err error) error {
	return &ContractError{Op: op, Err: err}
}

// FailureKind is the coarse class of a host failure.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureStale
	FailureUnsupported
	FailureOther
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureStale:
		return "stale"
	case FailureUnsupported:
		return "unsupported"
	default:
		return "other"
	}
}

// Classify maps err onto a FailureKind.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrStale):
		return FailureStale
	case errors.Is(err, ErrUnsupported):
		return FailureUnsupported
	default:
		return FailureOther
	}
}
