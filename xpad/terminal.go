package xpad

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"dio.wtf/xpad/xpad/log"
)

// GridSize is the side of each stick grid, odd so the rest position
// lands exactly on a cell.
const GridSize = 21

type stateMsg State

type visualModel struct {
	state State
}

func (m visualModel) Init() tea.Cmd {
	return nil
}

func (m visualModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case stateMsg:
		m.state = State(msg)
	}
	return m, nil
}

func (m visualModel) View() string {
	var builder strings.Builder
	s := m.state

	builder.WriteString("xpad live monitor - q quits\n\n")
	builder.WriteString(fmt.Sprintf("buttons 0x%08X  held: %s\n", uint32(s.Buttons), s.Buttons))
	builder.WriteString(fmt.Sprintf("LT %3d (%5.1f%%)   RT %3d (%5.1f%%)\n\n",
		s.LeftTrigger, s.LeftTrigger.Percent(),
		s.RightTrigger, s.RightTrigger.Percent()))

	left := drawStickGrid("Left Stick", s.LeftStick)
	right := drawStickGrid("Right Stick", s.RightStick)
	for i := range left {
		builder.WriteString(fmt.Sprintf("%-*s    %s\n", GridSize+10, left[i], right[i]))
	}
	return builder.String()
}

// drawStickGrid renders one stick as a ring with an axis cross and an
// O marker, header line first. Screen rows grow downward, so the
// marker row subtracts the normalized Y: pushing the stick up moves
// the marker up.
func drawStickGrid(title string, s Stick) []string {
	const c = (GridSize - 1) / 2

	mx := c + int(math.Round(s.XNorm()*c))
	my := c - int(math.Round(s.YNorm()*c))
	if mx < 0 {
		mx = 0
	} else if mx >= GridSize {
		mx = GridSize - 1
	}
	if my < 0 {
		my = 0
	} else if my >= GridSize {
		my = GridSize - 1
	}

	lines := make([]string, 0, GridSize+1)
	lines = append(lines, fmt.Sprintf("%-12s X=%6d Y=%6d", title, s.X, s.Y))
	for y := 0; y < GridSize; y++ {
		var row [GridSize]byte
		for x := 0; x < GridSize; x++ {
			row[x] = gridCell(x, y)
		}
		if y == my {
			row[mx] = 'O'
		}
		lines = append(lines, string(row[:]))
	}
	return lines
}

// gridCell picks the background glyph. The ring wins over the axis
// cross where they touch.
func gridCell(x, y int) byte {
	const c = (GridSize - 1) / 2
	dx, dy := float64(x-c), float64(y-c)
	switch {
	case math.Abs(math.Hypot(dx, dy)-float64(c)) < 0.55:
		return '.'
	case x == c && y == c:
		return '+'
	case x == c:
		return '|'
	case y == c:
		return '-'
	default:
		return ' '
	}
}

// TerminalSink drives the full-screen visualizer. It repaints every
// cycle whether or not anything changed, so a stalling poller is
// immediately visible.
type TerminalSink struct {
	program *tea.Program
	done    chan struct{}
}

func NewTerminalSink() *TerminalSink {
	t := &TerminalSink{
		program: tea.NewProgram(visualModel{}, tea.WithAltScreen()),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		if _, err := t.program.Run(); nil != err {
			log.ErrorF("terminal: %s", err)
		}
	}()
	return t
}

func (t *TerminalSink) Emit(s State, _ ChangeSet) error {
	select {
	case <-t.done:
		// the user quit the view; unwind the whole run
		return fmt.Errorf("%w: terminal closed", ErrSinkFatal)
	default:
	}
	t.program.Send(stateMsg(s))
	return nil
}

func (t *TerminalSink) Close() error {
	t.program.Quit()
	<-t.done
	return nil
}
