package office

import (
	"errors"
	"fmt"
)

// Read runs fn and returns its value. On error or panic it returns def and
// logs the failure: unsupported members at debug level, everything else as a
// warning.
func Read[T any](log Logger, op string, def T, fn func() (T, error)) (out T) {
	defer func() {
		if r := recover(); r != nil {
			report(log, op, panicError(r))
			out = def
		}
	}()
	v, err := fn()
	if err != nil {
		report(log, op, err)
		return def
	}
	return v
}

// Write runs fn as a best-effort write and reports whether it succeeded.
func Write(log Logger, op string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			report(log, op, panicError(r))
			ok = false
		}
	}()
	if err := fn(); err != nil {
		report(log, op, err)
		return false
	}
	return true
}

// Retry runs fn and, if it fails with ErrStale, calls refresh once and runs fn
// a second time. A failing refresh ends the attempt with the original error.
func Retry[T any](fn func() (T, error), refresh func() error) (T, error) {
	v, err := fn()
	if err == nil || !errors.Is(err, ErrStale) || refresh == nil {
		return v, err
	}
	if rerr := refresh(); rerr != nil {
		return v, err
	}
	return fn()
}

func report(log Logger, op string, err error) {
	log = LoggerOrNop(log)
	switch Classify(err) {
	case FailureUnsupported:
		log.Debug("feature absent on host", "op", op, "err", err.Error())
	case FailureStale:
		log.Warn("stale host reference", "op", op, "err", err.Error())
	default:
		log.Warn("host call failed", "op", op, "err", err.Error())
	}
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
