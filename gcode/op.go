// Package gcode parses and replays the G0/G1/G28/G90/G91/G92 subset
// of G-code emitted by a print-path exporter (the pipeline's
// collaborator surface, §6).
package gcode

import (
	"strconv"

	"github.com/krasin/steel-slicer/math3d"
)

// Op is one parsed command line, still unresolved against machine
// state until Execute runs against an Evaluator.
type Op struct {
	Cmd  string
	Args []string

	IsMoving           bool
	EndPos             math3d.Vec3
	NextFilamentHeight float64
	NextIsAbsolute     bool
	ResetPos           *math3d.Vec3
	NextFeedrate       float64
}

// NewOp builds an unexecuted operation from a command word and its
// parameter tokens (e.g. "G1", ["X10", "Y5", "F1200"]).
func NewOp(cmd string, args []string) *Op {
	return &Op{Cmd: cmd, Args: args}
}

// Execute resolves this op against the evaluator's current state,
// snapshotting the state it needs and then dispatching to the
// command-specific handler. EndPos always comes out as a fully
// resolved absolute target, whether the move itself was phrased in
// absolute or relative coordinates, so applying it never depends on
// the mode a later op might switch to. It does not mutate the
// evaluator — the caller applies the resolved op via Evaluator.applyOp.
func (op *Op) Execute(e *Evaluator) {
	op.NextIsAbsolute = e.IsAbsolute
	op.NextFeedrate = e.CurrentFeedrate
	op.NextFilamentHeight = e.FilamentHeight
	op.EndPos = e.ExpectedPosition

	switch op.Cmd {
	case "G0":
		op.handleMove(e.IsAbsolute)
	case "G1":
		op.handleMove(e.IsAbsolute)
	case "G28":
		op.handleHome()
	case "G90":
		op.NextIsAbsolute = true
	case "G91":
		op.NextIsAbsolute = false
	case "G92":
		op.handleSetPosition(e.ActualPosition)
	}
}

func (op *Op) handleMove(isAbsolute bool) {
	op.IsMoving = true
	for _, param := range op.Args {
		if len(param) == 0 {
			continue
		}
		value, err := parseParamFloat(param)
		if err != nil {
			continue
		}
		switch param[0] {
		case 'X':
			op.EndPos.X = resolveAxis(op.EndPos.X, value, isAbsolute)
		case 'Y':
			op.EndPos.Y = resolveAxis(op.EndPos.Y, value, isAbsolute)
		case 'Z':
			op.EndPos.Z = resolveAxis(op.EndPos.Z, value, isAbsolute)
		case 'F':
			op.NextFeedrate = value
		case 'E':
			op.NextFilamentHeight = value
		}
	}
}

// resolveAxis turns one parsed axis value into an absolute coordinate:
// the value itself in absolute mode (G90), or an offset from the
// current position in relative mode (G91).
func resolveAxis(current, value float64, isAbsolute bool) float64 {
	if isAbsolute {
		return value
	}
	return current + value
}

func (op *Op) handleHome() {
	op.IsMoving = true
	if len(op.Args) == 0 {
		op.EndPos = math3d.Zero3()
		return
	}
	for _, param := range op.Args {
		if len(param) == 0 {
			continue
		}
		switch param[0] {
		case 'X':
			op.EndPos.X = 0
		case 'Y':
			op.EndPos.Y = 0
		case 'Z':
			op.EndPos.Z = 0
		}
	}
}

// handleSetPosition resolves G92 (set current position without
// moving). current is the machine's actual position before this op;
// an axis named in the args is overridden, any axis not named keeps
// its current value.
func (op *Op) handleSetPosition(current math3d.Vec3) {
	reset := current
	for _, param := range op.Args {
		if len(param) == 0 {
			continue
		}
		value, err := parseParamFloat(param)
		if err != nil {
			continue
		}
		switch param[0] {
		case 'X':
			reset.X = value
		case 'Y':
			reset.Y = value
		case 'Z':
			reset.Z = value
		case 'E':
			op.NextFilamentHeight = value
		}
	}
	op.ResetPos = &reset
}

func parseParamFloat(param string) (float64, error) {
	if len(param) < 2 {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(param[1:], 64)
}
