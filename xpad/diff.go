package xpad

import (
	"bytes"

	"golang.org/x/exp/slices"
)

// Identifiers for the non-button fields; buttons diff under their
// table names.
const (
	FieldLeftStick    = "leftStick"
	FieldRightStick   = "rightStick"
	FieldLeftTrigger  = "leftTrigger"
	FieldRightTrigger = "rightTrigger"
	FieldHat          = "hat"
)

// ChangeSet names the state fields that differ between two snapshots.
type ChangeSet map[string]struct{}

func (c ChangeSet) Empty() bool {
	return len(c) == 0
}

func (c ChangeSet) Has(field string) bool {
	_, ok := c[field]
	return ok
}

func (c ChangeSet) add(field string) {
	c[field] = struct{}{}
}

// Fields lists the changed identifiers sorted for stable logs.
func (c ChangeSet) Fields() []string {
	fields := make([]string, 0, len(c))
	for f := range c {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

func (c ChangeSet) AnyButton() bool {
	for _, entry := range buttonTable {
		if c.Has(entry.name) {
			return true
		}
	}
	return false
}

func (c ChangeSet) AnyStick() bool {
	return c.Has(FieldLeftStick) || c.Has(FieldRightStick)
}

func (c ChangeSet) AnyTrigger() bool {
	return c.Has(FieldLeftTrigger) || c.Has(FieldRightTrigger)
}

// Compare diffs two snapshots field by field. Axis comparison is exact
// integer equality: no dead zone, no epsilon. The hat is a derivation
// of the D-pad bits, so its identifier only ever shows up next to a
// D-pad name; it still gets one because the opposite does not hold
// (releasing Up and Down together moves neither hat axis).
func Compare(prev, cur State) ChangeSet {
	changes := make(ChangeSet)
	for _, entry := range buttonTable {
		if prev.Buttons.Has(entry.mask) != cur.Buttons.Has(entry.mask) {
			changes.add(entry.name)
		}
	}
	if prev.Hat() != cur.Hat() {
		changes.add(FieldHat)
	}
	if prev.LeftStick != cur.LeftStick {
		changes.add(FieldLeftStick)
	}
	if prev.RightStick != cur.RightStick {
		changes.add(FieldRightStick)
	}
	if prev.LeftTrigger != cur.LeftTrigger {
		changes.add(FieldLeftTrigger)
	}
	if prev.RightTrigger != cur.RightTrigger {
		changes.add(FieldRightTrigger)
	}
	return changes
}

// RawChanged is the byte-level diff the discovery engine runs against
// its baseline. Only the first len(cur) bytes participate: a short
// reply leaves the tail of a longer baseline alone, a reply longer
// than the baseline always counts as a change.
func RawChanged(baseline, cur []byte) bool {
	if len(cur) > len(baseline) {
		return true
	}
	return !bytes.Equal(baseline[:len(cur)], cur)
}
