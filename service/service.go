// Package service holds the presentation-editing operations. Everything here
// is written against the office contexts only, so the same code runs on any
// host adapter.
package service

import (
	"fmt"

	"github.com/VantageDataChat/pptassist/office"
)

// confirmTolerance is how far, in points, a re-read edge may drift from the
// requested value before the write counts as unconfirmed.
const confirmTolerance = 0.5

// Outcome summarises a geometry operation.
type Outcome struct {
	// Changed counts shapes whose bounds were written.
	Changed int
	// Unconfirmed names shapes whose bounds did not read back as requested.
	Unconfirmed []string
	// Command is the host command that ran instead of the geometric
	// algorithm, "" when geometry was used.
	Command string
}

// Confirmed reports whether every write read back as requested.
func (o Outcome) Confirmed() bool { return len(o.Unconfirmed) == 0 }

// base carries what every service needs.
type base struct {
	app office.Application
	log office.Logger
}

func newBase(app office.Application, log office.Logger) base {
	return base{app: app, log: office.LoggerOrNop(log)}
}

// beginUndo groups the following writes into one undo step where the host
// keeps undo history.
func (b base) beginUndo() {
	if b.app != nil && b.app.IsFeatureSupported(office.FeatureUndoRedo) {
		b.app.StartNewUndoEntry()
	}
}

// place writes r to s, re-reads it and records the result in out.
func (b base) place(op string, s office.Shape, r office.ShapeRect, out *Outcome) {
	s.SetBounds(r)
	out.Changed++
	got := s.Bounds()
	if got.ApproxEqual(r, confirmTolerance) {
		return
	}
	name := s.Name()
	if name == "" {
		name = fmt.Sprintf("#%d", s.ID())
	}
	out.Unconfirmed = append(out.Unconfirmed, name)
	b.log.Warn("bounds not applied", "op", op, "shape", name,
		"want", fmt.Sprintf("%+v", r), "got", fmt.Sprintf("%+v", got))
}

// checkShapes rejects nil entries.
func checkShapes(op string, shapes []office.Shape) error {
	for _, s := range shapes {
		if s == nil {
			return office.NewContractError(op, office.ErrNilArgument)
		}
	}
	return nil
}

// snapshot reads every shape's bounds once, before anything moves.
func snapshot(shapes []office.Shape) []office.ShapeRect {
	out := make([]office.ShapeRect, len(shapes))
	for i, s := range shapes {
		out[i] = s.Bounds()
	}
	return out
}
