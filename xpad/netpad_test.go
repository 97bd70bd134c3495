package xpad

import (
	"net"
	"testing"
)

type recordPad struct {
	applied []State
	closed  bool
}

func (p *recordPad) Apply(s State) error {
	p.applied = append(p.applied, s)
	return nil
}

func (p *recordPad) Close() error {
	p.closed = true
	return nil
}

func TestPadUpdateState(t *testing.T) {
	update := padUpdate{
		Buttons: map[string]bool{
			"a":       true,
			"DPAD_UP": true,
			"lb":      false,
			"bogus":   true,
		},
		Axes: map[string]float64{
			"lx":      0.5,
			"ly":      -1,
			"lt":      2.0,  // clamps to 1
			"rt":      -0.5, // clamps to 0
			"unknown": 9,
		},
	}
	s := update.state()

	if !s.Buttons.Has(A) || !s.Buttons.Has(DpadUp) {
		t.Errorf("buttons = %s", s.Buttons)
	}
	if s.Buttons.Has(LB) {
		t.Error("explicit false held LB")
	}
	if got, want := uint32(s.Buttons), uint32(A|DpadUp); got != want {
		t.Errorf("unmapped keys leaked into the word: 0x%08X want 0x%08X", got, want)
	}

	if got := s.LeftStick.X; got != 16384 {
		t.Errorf("lx 0.5 scaled to %d, want 16384", got)
	}
	if got := s.LeftStick.Y; got != -32767 {
		t.Errorf("ly -1 scaled to %d, want -32767", got)
	}
	if s.LeftTrigger != 255 {
		t.Errorf("lt clamped to %d, want 255", s.LeftTrigger)
	}
	if s.RightTrigger != 0 {
		t.Errorf("rt clamped to %d, want 0", s.RightTrigger)
	}
	if s.RightStick != (Stick{}) {
		t.Errorf("missing axes defaulted to %+v", s.RightStick)
	}
}

func TestPadUpdateStateEmpty(t *testing.T) {
	if s := (padUpdate{}).state(); s != (State{}) {
		t.Errorf("empty message decoded to %+v", s)
	}
}

func TestServeAppliesEachMessage(t *testing.T) {
	pad := &recordPad{}
	server := NewPadServer("", pad)

	client, conn := net.Pipe()
	done := make(chan struct{})
	go func() {
		server.serve(conn)
		close(done)
	}()

	messages := []string{
		`{"buttons":{"a":true,"rb":true},"axes":{"lx":1,"ry":-2.5}}`,
		`{"axes":{"rt":0.5}}`,
		`{"buttons":{"junk":true},"trailing":"ignored"}`,
	}
	for _, msg := range messages {
		if _, err := client.Write([]byte(msg)); nil != err {
			t.Fatalf("write: %v", err)
		}
	}
	client.Close()
	<-done

	if len(pad.applied) != len(messages) {
		t.Fatalf("%d applies for %d messages", len(pad.applied), len(messages))
	}

	first := pad.applied[0]
	if !first.Buttons.Has(A) || !first.Buttons.Has(RB) {
		t.Errorf("first message buttons = %s", first.Buttons)
	}
	if first.LeftStick.X != 32767 {
		t.Errorf("lx 1.0 scaled to %d", first.LeftStick.X)
	}
	if first.RightStick.Y != -32767 {
		t.Errorf("ry -2.5 clamped+scaled to %d, want -32767", first.RightStick.Y)
	}

	// each message overwrites everything it does not mention
	second := pad.applied[1]
	if second.Buttons != 0 || second.LeftStick != (Stick{}) {
		t.Errorf("second message kept stale fields: %+v", second)
	}
	if second.RightTrigger != 128 {
		t.Errorf("rt 0.5 scaled to %d, want 128", second.RightTrigger)
	}

	if third := pad.applied[2]; third != (State{}) {
		t.Errorf("unknown keys produced state %+v", third)
	}
}

func TestServeStopsOnGarbage(t *testing.T) {
	pad := &recordPad{}
	server := NewPadServer("", pad)

	client, conn := net.Pipe()
	done := make(chan struct{})
	go func() {
		server.serve(conn)
		close(done)
	}()

	client.Write([]byte(`{"axes":{"lt":1}}`))
	client.Write([]byte(`this is not json`))
	<-done
	client.Close()

	if len(pad.applied) != 1 {
		t.Fatalf("%d applies, want 1 before the garbage", len(pad.applied))
	}
	if pad.applied[0].LeftTrigger != 255 {
		t.Errorf("valid message before garbage lost: %+v", pad.applied[0])
	}
}
