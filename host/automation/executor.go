package automation

import (
	"errors"

	"github.com/VantageDataChat/pptassist/office"
)

// executor runs built-in commands through the host's command bars.
type executor struct{}

func (executor) TryExecute(app office.Application, commandID string) bool {
	a, ok := app.(*Application)
	if !ok || commandID == "" {
		return false
	}
	// Older hosts lack GetEnabledMso; they still get a chance to run it.
	enabled := do(a, "executor.GetEnabledMso", true, func(sc *scope, root Object) (bool, error) {
		bars, err := sc.get(root, "CommandBars")
		if err != nil {
			return false, err
		}
		v, err := bars.Call("GetEnabledMso", commandID)
		if err != nil {
			return false, err
		}
		if b, ok := v.(bool); ok {
			return b, nil
		}
		f, ok := toFloat(v)
		return ok && triStateTrue(int(f)), nil
	})
	if !enabled {
		a.log.Debug("command disabled", "command", commandID)
		return false
	}
	return a.write("executor.ExecuteMso", func(sc *scope, root Object) error {
		bars, err := sc.get(root, "CommandBars")
		if err != nil {
			return err
		}
		err = sc.invoke(bars, "ExecuteMso", commandID)
		if !errors.Is(err, office.ErrUnsupported) {
			return err
		}
		a.log.Debug("ExecuteMso unavailable, trying command bar control", "command", commandID)
		ctl, err := sc.call(bars, "FindControl", Missing{}, Missing{}, commandID)
		if err != nil {
			return err
		}
		return sc.invoke(ctl, "Execute")
	})
}
