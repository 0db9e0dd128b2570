package ole

import (
	goole "github.com/go-ole/go-ole"

	"github.com/VantageDataChat/pptassist/host/automation"
)

// toArgs replaces omitted optional arguments with the VT_ERROR marker
// dispatch expects for them.
func toArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if _, ok := a.(automation.Missing); ok {
			out[i] = goole.NewVariant(goole.VT_ERROR, dispEParamNotFound)
			continue
		}
		out[i] = a
	}
	return out
}

// fromVariant converts a result. Object results keep the reference the
// VARIANT carried; everything else is copied out and cleared.
func fromVariant(v *goole.VARIANT) any {
	if v == nil {
		return nil
	}
	switch v.VT {
	case goole.VT_EMPTY, goole.VT_NULL:
		return nil
	case goole.VT_DISPATCH:
		disp := v.ToIDispatch()
		if disp == nil {
			return nil
		}
		return &Dispatch{disp: disp}
	}
	val := v.Value()
	_ = v.Clear()
	return val
}
