package gcode

import (
	"testing"

	"github.com/krasin/steel-slicer/math3d"
)

func TestAbsoluteMoveSetsPositionDirectly(t *testing.T) {
	e := NewEvaluator()
	e.AddCommand("G1", []string{"X10", "Y5", "Z2", "F1500"})
	e.Run()

	want := math3d.V3(10, 5, 2)
	if e.ActualPosition != want {
		t.Errorf("ActualPosition = %+v, want %+v", e.ActualPosition, want)
	}
	if e.CurrentFeedrate != 1500 {
		t.Errorf("CurrentFeedrate = %v, want 1500", e.CurrentFeedrate)
	}
}

func TestRelativeMoveAccumulatesFromCurrentPosition(t *testing.T) {
	e := NewEvaluator()
	e.AddCommand("G1", []string{"X10", "Y5"})
	e.AddCommand("G91", nil)
	e.AddCommand("G1", []string{"X1", "Y-2"})
	e.Run()

	want := math3d.V3(11, 3, 0)
	if e.ActualPosition != want {
		t.Errorf("ActualPosition = %+v, want %+v", e.ActualPosition, want)
	}
}

func TestRelativeMoveOnlyOffsetsNamedAxes(t *testing.T) {
	e := NewEvaluator()
	e.AddCommand("G1", []string{"X10", "Y5", "Z3"})
	e.AddCommand("G91", nil)
	e.AddCommand("G1", []string{"X1"})
	e.Run()

	want := math3d.V3(11, 5, 3)
	if e.ActualPosition != want {
		t.Errorf("ActualPosition = %+v, want %+v (unnamed axes must hold steady)", e.ActualPosition, want)
	}
}

func TestHomeWithNoArgsZeroesAllAxes(t *testing.T) {
	e := NewEvaluator()
	e.AddCommand("G1", []string{"X10", "Y5", "Z3"})
	e.AddCommand("G28", nil)
	e.Run()

	if e.ActualPosition != math3d.Zero3() {
		t.Errorf("ActualPosition = %+v, want zero after unqualified G28", e.ActualPosition)
	}
}

func TestHomeWithArgsZeroesOnlyNamedAxes(t *testing.T) {
	e := NewEvaluator()
	e.AddCommand("G1", []string{"X10", "Y5", "Z3"})
	e.AddCommand("G28", []string{"X"})
	e.Run()

	want := math3d.V3(0, 5, 3)
	if e.ActualPosition != want {
		t.Errorf("ActualPosition = %+v, want %+v", e.ActualPosition, want)
	}
}

func TestSetPositionOverridesOnlyNamedAxes(t *testing.T) {
	e := NewEvaluator()
	e.AddCommand("G1", []string{"X10", "Y5", "Z3"})
	e.AddCommand("G92", []string{"X0"})
	e.Run()

	want := math3d.V3(0, 5, 3)
	if e.ActualPosition != want {
		t.Errorf("ActualPosition = %+v, want %+v", e.ActualPosition, want)
	}
	if e.ExpectedPosition != want {
		t.Errorf("ExpectedPosition = %+v, want %+v", e.ExpectedPosition, want)
	}
}

func TestSetPositionDoesNotPanicWithoutPriorMove(t *testing.T) {
	// Regression guard: the original evaluator left reset_pos
	// uninitialized until a G92 first wrote into it, which crashed on
	// any G92 with no preceding move. Our reset position is always a
	// valid copy of the current state, never nil.
	e := NewEvaluator()
	e.AddCommand("G92", []string{"X5", "Y5"})
	e.Run()

	want := math3d.V3(5, 5, 0)
	if e.ActualPosition != want {
		t.Errorf("ActualPosition = %+v, want %+v", e.ActualPosition, want)
	}
}

func TestCanDrawReflectsFilamentHeight(t *testing.T) {
	e := NewEvaluator()
	if e.CanDraw() {
		t.Error("CanDraw true before any extrusion command")
	}
	e.AddCommand("G1", []string{"X1", "E0.5"})
	e.Run()
	if !e.CanDraw() {
		t.Error("CanDraw false after an extruding move")
	}
}

func TestExecuteNextReturnsFalseWhenExhausted(t *testing.T) {
	e := NewEvaluator()
	e.AddCommand("G1", []string{"X1"})
	if !e.ExecuteNext() {
		t.Fatal("ExecuteNext returned false on first op")
	}
	if e.ExecuteNext() {
		t.Fatal("ExecuteNext returned true with no ops left")
	}
}
