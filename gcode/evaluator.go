package gcode

import (
	"github.com/krasin/steel-slicer/math3d"
)

// Evaluator replays a parsed operation list, tracking the machine's
// absolute and relative notion of position the way a real printer
// firmware would (§6, "gcode-check" collaborator surface).
type Evaluator struct {
	FileName   string
	Operations []*Op

	ExpectedPosition math3d.Vec3
	ActualPosition   math3d.Vec3
	CurrentFeedrate  float64
	FilamentHeight   float64
	IsAbsolute       bool

	index int
}

// NewEvaluator returns a fresh evaluator in its reset state.
func NewEvaluator() *Evaluator {
	e := &Evaluator{}
	e.Reset()
	return e
}

// Reset zeroes the machine state and rewinds playback to the first
// operation, without discarding the parsed operation list.
func (e *Evaluator) Reset() {
	e.ExpectedPosition = math3d.Zero3()
	e.ActualPosition = math3d.Zero3()
	e.CurrentFeedrate = 0
	e.FilamentHeight = 0
	e.IsAbsolute = true
	e.index = 0
}

// CanDraw reports whether the next move would extrude filament.
func (e *Evaluator) CanDraw() bool {
	return e.FilamentHeight > 0
}

// AddCommand parses one command word and its parameter tokens into a
// new Op and appends it to the operation list.
func (e *Evaluator) AddCommand(cmd string, args []string) *Op {
	op := NewOp(cmd, args)
	e.Operations = append(e.Operations, op)
	return op
}

// ExecuteNext resolves and applies the next unplayed operation. It
// reports false once the operation list is exhausted.
func (e *Evaluator) ExecuteNext() bool {
	if e.index >= len(e.Operations) {
		return false
	}
	op := e.Operations[e.index]
	e.index++
	op.Execute(e)
	e.applyOp(op)
	return true
}

// applyOp folds a resolved Op's results into the evaluator's running
// state, mirroring how the original's execute_next_command updates
// expected/actual position from an operation's end_pos and reset_pos.
// Op.EndPos already carries a fully resolved absolute target, so
// applying a move is always a plain assignment regardless of the
// mode the op was issued under.
func (e *Evaluator) applyOp(op *Op) {
	e.IsAbsolute = op.NextIsAbsolute
	e.CurrentFeedrate = op.NextFeedrate
	e.FilamentHeight = op.NextFilamentHeight

	if op.ResetPos != nil {
		e.ActualPosition = *op.ResetPos
		e.ExpectedPosition = *op.ResetPos
		return
	}

	if !op.IsMoving {
		return
	}

	e.ExpectedPosition = op.EndPos
	e.ActualPosition = op.EndPos
}

// Run plays every remaining operation to completion.
func (e *Evaluator) Run() {
	for e.ExecuteNext() {
	}
}
