package xpad

import (
	"strings"

	"dio.wtf/xpad/xpad/report"
)

// Button is one flag inside the 32-bit button field at report byte 2.
type Button uint32

// | Bits   | x0001 | x0002 | x0004 | x0008 | x0010 | x0020 | x0040 | x0080 |
// |:------:|:-----:|:-----:|:-----:|:-----:|:-----:|:-----:|:-----:|:-----:|
// | 0..7   | Up    | Down  | Left  | Right | Start | Back  | L3    | R3    |
// | 8..15  | LB    | RB    | Guide | -     | A     | B     | X     | Y     |
//
// L3/R3/Guide positions follow the kernel xpad driver and are untested
// on this clone.
const (
	DpadUp    Button = 0x0001
	DpadDown  Button = 0x0002
	DpadLeft  Button = 0x0004
	DpadRight Button = 0x0008
	Start     Button = 0x0010
	Back      Button = 0x0020
	ThumbL    Button = 0x0040
	ThumbR    Button = 0x0080
	LB        Button = 0x0100
	RB        Button = 0x0200
	Guide     Button = 0x0400
	A         Button = 0x1000
	B         Button = 0x2000
	X         Button = 0x4000
	Y         Button = 0x8000
)

var buttonTable = []struct {
	mask Button
	name string
}{
	{A, "A"},
	{B, "B"},
	{X, "X"},
	{Y, "Y"},
	{DpadUp, "DPAD_UP"},
	{DpadDown, "DPAD_DOWN"},
	{DpadLeft, "DPAD_LEFT"},
	{DpadRight, "DPAD_RIGHT"},
	{Start, "START"},
	{Back, "BACK"},
	{LB, "LB"},
	{RB, "RB"},
	{Guide, "GUIDE"},
	{ThumbL, "L3"},
	{ThumbR, "R3"},
}

// Buttons carries the whole wire dword. Bits outside the table (the
// trigger alias bits and anything undocumented) stay visible so raw
// diffing and probe logs never lose them.
type Buttons uint32

func (b Buttons) Has(btn Button) bool {
	return uint32(b)&uint32(btn) != 0
}

// Names lists the held buttons in table order.
func (b Buttons) Names() (names []string) {
	for _, entry := range buttonTable {
		if b.Has(entry.mask) {
			names = append(names, entry.name)
		}
	}
	return
}

func (b Buttons) String() string {
	names := b.Names()
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, " ")
}

// Stick holds the raw signed axis pair. Y is kept exactly as the
// device reports it; orientation flips happen at emission time only.
type Stick struct {
	X, Y int16
}

func (s Stick) XNorm() float64 {
	return norm(s.X)
}

func (s Stick) YNorm() float64 {
	return norm(s.Y)
}

func norm(v int16) float64 {
	n := float64(v) / 32768
	if n < -1 {
		n = -1
	} else if n > 1 {
		n = 1
	}
	return n
}

type Trigger uint8

func (t Trigger) Percent() float64 {
	return float64(t) / 255 * 100
}

// Hat is the D-pad folded onto two stepped axes, evdev orientation
// (up is -1).
type Hat struct {
	X, Y int8
}

// State is one decoded controller snapshot. It is a plain value:
// comparisons and copies are free of aliasing.
type State struct {
	Buttons      Buttons
	LeftStick    Stick
	RightStick   Stick
	LeftTrigger  Trigger
	RightTrigger Trigger
}

func (s State) Hat() (h Hat) {
	if s.Buttons.Has(DpadLeft) {
		h.X--
	}
	if s.Buttons.Has(DpadRight) {
		h.X++
	}
	if s.Buttons.Has(DpadUp) {
		h.Y--
	}
	if s.Buttons.Has(DpadDown) {
		h.Y++
	}
	return
}

// DecodeState builds the canonical snapshot out of a raw poll reply.
// Only bytes [2,14) participate, so replies agreeing there decode
// identically no matter what the lead-in or tail carries.
func DecodeState(raw report.PollReport) (State, error) {
	if err := raw.Validate(); nil != err {
		return State{}, err
	}
	return State{
		Buttons:      Buttons(raw.Word()),
		LeftStick:    Stick{raw.LeftX(), raw.LeftY()},
		RightStick:   Stick{raw.RightX(), raw.RightY()},
		LeftTrigger:  Trigger(raw.LeftTrigger()),
		RightTrigger: Trigger(raw.RightTrigger()),
	}, nil
}
