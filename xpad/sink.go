package xpad

import "errors"

// ErrSinkFatal marks a sink failure the run cannot survive: the
// virtual device node is gone, the TUI quit under us. The polling loop
// tears down and surfaces it; any other sink error is logged and the
// loop keeps going.
var ErrSinkFatal = errors.New("sink lost")

// Sink consumes decoded snapshots. Emit runs every cycle and receives
// the fields that moved since the previous one; change-gated sinks
// return early on an empty set, the terminal renders regardless.
type Sink interface {
	Emit(s State, changes ChangeSet) error
	Close() error
}
