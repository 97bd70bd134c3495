package xpad

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestGridCell(t *testing.T) {
	const c = (GridSize - 1) / 2
	cases := []struct {
		x, y int
		want byte
	}{
		{c, c, '+'},
		{c, c / 2, '|'},
		{c / 2, c, '-'},
		{0, 0, ' '},
		// cardinal ring points sit exactly at distance c
		{c, 0, '.'},
		{0, c, '.'},
		{GridSize - 1, c, '.'},
		{c, GridSize - 1, '.'},
	}
	for _, tc := range cases {
		if got := gridCell(tc.x, tc.y); got != tc.want {
			t.Errorf("gridCell(%d, %d) = %q, want %q", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDrawStickGrid(t *testing.T) {
	const c = (GridSize - 1) / 2

	lines := drawStickGrid("Left Stick", Stick{})
	if len(lines) != GridSize+1 {
		t.Fatalf("grid has %d lines, want %d", len(lines), GridSize+1)
	}
	if !strings.HasPrefix(lines[0], "Left Stick") || !strings.Contains(lines[0], "X=     0") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1+c][c] != 'O' {
		t.Errorf("rest position marker not centered: %q", lines[1+c])
	}

	// full deflections land on the ring and must override it
	up := drawStickGrid("up", Stick{Y: 32767})
	if up[1][c] != 'O' {
		t.Errorf("full up row: %q", up[1])
	}
	down := drawStickGrid("down", Stick{Y: -32768})
	if down[1+GridSize-1][c] != 'O' {
		t.Errorf("full down row: %q", down[1+GridSize-1])
	}
	right := drawStickGrid("right", Stick{X: 32767})
	if right[1+c][GridSize-1] != 'O' {
		t.Errorf("full right row: %q", right[1+c])
	}
	left := drawStickGrid("left", Stick{X: -32768})
	if left[1+c][0] != 'O' {
		t.Errorf("full left row: %q", left[1+c])
	}
}

func TestDrawStickGridRowWidths(t *testing.T) {
	lines := drawStickGrid("x", Stick{X: 9000, Y: -21000})
	for i, row := range lines[1:] {
		if len(row) != GridSize {
			t.Errorf("row %d is %d wide, want %d", i, len(row), GridSize)
		}
	}
}

func TestVisualModelUpdate(t *testing.T) {
	var m tea.Model = visualModel{}

	m, cmd := m.Update(stateMsg(State{Buttons: Buttons(A)}))
	if cmd != nil {
		t.Error("state message produced a command")
	}
	view := m.View()
	if !strings.Contains(view, "held: A") || !strings.Contains(view, "Right Stick") {
		t.Errorf("view missing expected content:\n%s", view)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q did not quit")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c did not quit")
	}
}

func TestViewRendersEveryCycle(t *testing.T) {
	m := visualModel{state: State{LeftTrigger: 255}}
	first := m.View()
	second := m.View()
	if first != second {
		t.Error("view not a pure function of the model")
	}
	if !strings.Contains(first, "100.0%") {
		t.Errorf("trigger percentage missing:\n%s", first)
	}
}
