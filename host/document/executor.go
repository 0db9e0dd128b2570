package document

import (
	"github.com/VantageDataChat/pptassist/office"
)

// executor runs the few commands the model can carry out directly. Alignment
// and distribution are left to the geometric fallback of the services.
type executor struct{}

func (executor) TryExecute(app office.Application, commandID string) bool {
	a, ok := app.(*Application)
	if !ok {
		return false
	}
	slide := a.modelSlide()
	if slide == nil {
		return false
	}
	switch commandID {
	case office.CmdBringToFront:
		moved := false
		for _, s := range a.liveSelection() {
			moved = slide.BringToFront(s) || moved
		}
		return moved
	case office.CmdSendToBack:
		sel := a.liveSelection()
		moved := false
		// back-to-front so the selection keeps its relative order
		for i := len(sel) - 1; i >= 0; i-- {
			moved = slide.SendToBack(sel[i]) || moved
		}
		return moved
	case office.CmdSelectAll:
		a.selectShapes(slide.GetShapes())
		return true
	}
	a.log.Debug("command not available on document host", "command", commandID)
	return false
}
