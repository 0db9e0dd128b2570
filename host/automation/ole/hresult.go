package ole

import (
	"errors"
	"fmt"

	goole "github.com/go-ole/go-ole"

	"github.com/VantageDataChat/pptassist/office"
)

// HRESULTs the adapters care about.
const (
	rpcEDisconnected      = 0x80010108
	rpcSServerUnavailable = 0x800706BA
	coEObjNotConnected    = 0x800401FD

	dispEMemberNotFound = 0x80020003
	dispEParamNotFound  = 0x80020004
	dispEUnknownName    = 0x80020006
	eNotImpl            = 0x80004001
)

// classify wraps a dispatch failure so that office.Classify can tell stale
// handles and absent members from other failures.
func classify(member string, err error) error {
	var oe *goole.OleError
	if !errors.As(err, &oe) {
		return fmt.Errorf("%s: %w", member, err)
	}
	switch uint32(oe.Code()) {
	case rpcEDisconnected, rpcSServerUnavailable, coEObjNotConnected:
		return fmt.Errorf("%s: %w: %w", member, office.ErrStale, err)
	case dispEMemberNotFound, dispEUnknownName, eNotImpl:
		return fmt.Errorf("%s: %w: %w", member, office.ErrUnsupported, err)
	}
	return fmt.Errorf("%s: %w", member, err)
}

func errReleased(member string) error {
	return fmt.Errorf("%s: handle released: %w", member, office.ErrStale)
}
