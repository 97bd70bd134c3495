package xpad

import (
	"testing"

	"golang.org/x/exp/slices"
)

func TestCompareIdentity(t *testing.T) {
	s := State{
		Buttons:      Buttons(A | RB | DpadUp),
		LeftStick:    Stick{-300, 12000},
		RightStick:   Stick{1, -1},
		LeftTrigger:  7,
		RightTrigger: 255,
	}
	if changes := Compare(s, s); !changes.Empty() {
		t.Errorf("Compare(s, s) = %v, want empty", changes.Fields())
	}
}

func TestCompareFields(t *testing.T) {
	base := State{LeftStick: Stick{100, 100}}

	pressed := base
	pressed.Buttons = Buttons(A)
	changes := Compare(base, pressed)
	if !changes.Has("A") || len(changes) != 1 {
		t.Errorf("button press diffed as %v", changes.Fields())
	}
	if !changes.AnyButton() || changes.AnyStick() || changes.AnyTrigger() {
		t.Error("group predicates wrong for a button press")
	}

	moved := base
	moved.LeftStick.X = 101
	changes = Compare(base, moved)
	if !changes.Has(FieldLeftStick) || len(changes) != 1 {
		t.Errorf("one-count stick move diffed as %v", changes.Fields())
	}
	if !changes.AnyStick() || changes.AnyButton() {
		t.Error("group predicates wrong for a stick move")
	}

	squeezed := base
	squeezed.RightTrigger = 1
	changes = Compare(base, squeezed)
	if !changes.Has(FieldRightTrigger) || len(changes) != 1 {
		t.Errorf("trigger squeeze diffed as %v", changes.Fields())
	}
	if !changes.AnyTrigger() {
		t.Error("AnyTrigger() = false after a trigger squeeze")
	}
}

func TestCompareReleaseIsAChange(t *testing.T) {
	held := State{Buttons: Buttons(X | Y)}
	released := State{Buttons: Buttons(X)}
	changes := Compare(held, released)
	if !changes.Has("Y") || len(changes) != 1 {
		t.Errorf("release diffed as %v", changes.Fields())
	}
}

func TestCompareHat(t *testing.T) {
	changes := Compare(State{}, State{Buttons: Buttons(DpadUp)})
	if !changes.Has("DPAD_UP") || !changes.Has(FieldHat) || len(changes) != 2 {
		t.Errorf("d-pad press diffed as %v", changes.Fields())
	}

	// opposing directions released together: both button bits move,
	// the derived hat never leaves rest
	changes = Compare(State{Buttons: Buttons(DpadUp | DpadDown)}, State{})
	if changes.Has(FieldHat) {
		t.Errorf("cancelled d-pad pair moved the hat: %v", changes.Fields())
	}
	if !changes.Has("DPAD_UP") || !changes.Has("DPAD_DOWN") {
		t.Errorf("d-pad releases missing: %v", changes.Fields())
	}
}

func TestFieldsSorted(t *testing.T) {
	a := State{}
	b := State{Buttons: Buttons(Y | A), LeftStick: Stick{1, 0}}
	fields := Compare(a, b).Fields()
	if !slices.IsSorted(fields) {
		t.Errorf("Fields() not sorted: %v", fields)
	}
	want := []string{"A", "Y", FieldLeftStick}
	if !slices.Equal(fields, want) {
		t.Errorf("Fields() = %v, want %v", fields, want)
	}
}

func TestRawChanged(t *testing.T) {
	baseline := make([]byte, 20)
	baseline[2] = 0x02
	baseline[15] = 0x77

	same := append([]byte(nil), baseline...)
	if RawChanged(baseline, same) {
		t.Error("identical bytes flagged as changed")
	}

	// a short reply only competes against its own length: the nonzero
	// baseline tail beyond it stays out of the comparison
	if RawChanged(baseline, baseline[:8]) {
		t.Error("short equal prefix flagged as changed")
	}

	flipped := append([]byte(nil), baseline...)
	flipped[5] ^= 0x01
	if !RawChanged(baseline, flipped) {
		t.Error("flipped byte not flagged")
	}

	longer := append(append([]byte(nil), baseline...), 0x00)
	if !RawChanged(baseline, longer) {
		t.Error("reply longer than baseline not flagged")
	}

	if RawChanged(baseline, nil) {
		t.Error("empty reply flagged as changed")
	}
}
