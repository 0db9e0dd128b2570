package office

// Built-in command identifiers. They follow the idMso names used by the
// hosts' command bars; adapters that run commands natively may translate them.
const (
	CmdAlignLeft              = "ObjectsAlignLeftSmart"
	CmdAlignCenter            = "ObjectsAlignCenterHorizontalSmart"
	CmdAlignRight             = "ObjectsAlignRightSmart"
	CmdAlignTop               = "ObjectsAlignTopSmart"
	CmdAlignMiddle            = "ObjectsAlignMiddleVerticalSmart"
	CmdAlignBottom            = "ObjectsAlignBottomSmart"
	CmdDistributeHorizontally = "AlignDistributeHorizontally"
	CmdDistributeVertically   = "AlignDistributeVertically"
	CmdBringToFront           = "ObjectBringToFront"
	CmdSendToBack             = "ObjectSendToBack"
	CmdSelectAll              = "SelectAll"
)

// CommandExecutor runs a host-native command by id.
//
// TryExecute returns false when the host rejects or does not know the
// command; callers then fall back to their own implementation. It never
// panics and never returns an error.
type CommandExecutor interface {
	TryExecute(app Application, commandID string) bool
}

// CommandFunc adapts a function to CommandExecutor.
type CommandFunc func(app Application, commandID string) bool

// TryExecute calls f.
func (f CommandFunc) TryExecute(app Application, commandID string) bool {
	if f == nil {
		return false
	}
	return f(app, commandID)
}

// GlassCardRenderer draws a decorative card on a slide using host-specific
// effects that the portable contexts cannot express.
type GlassCardRenderer interface {
	Render(slide Slide, rect ShapeRect, style GlassCardStyle) (Shape, error)
}
