package xpad

import (
	"fmt"
	"io"
)

// ConsoleSink is the line-mode monitor: one stdout line per change,
// silence while the pad is idle. Handy under pipes and over serial
// where the full-screen view is useless.
type ConsoleSink struct {
	out io.Writer
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{out: w}
}

func (c *ConsoleSink) Emit(s State, changes ChangeSet) error {
	if changes.Empty() {
		return nil
	}
	_, err := fmt.Fprintf(c.out, "btn=0x%08X | held: %s | LT %3d (%5.1f%%) | RT %3d (%5.1f%%) | L(%6d,%6d) R(%6d,%6d)\n",
		uint32(s.Buttons), s.Buttons,
		s.LeftTrigger, s.LeftTrigger.Percent(),
		s.RightTrigger, s.RightTrigger.Percent(),
		s.LeftStick.X, s.LeftStick.Y,
		s.RightStick.X, s.RightStick.Y)
	if nil != err {
		return fmt.Errorf("%w: %s", ErrSinkFatal, err)
	}
	return nil
}

func (c *ConsoleSink) Close() error {
	return nil
}
