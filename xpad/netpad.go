package xpad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"

	"dio.wtf/xpad/xpad/log"
)

// Pad is the writable side of a virtual controller, the slice of
// UinputPad the bridge needs. Tests substitute a recorder.
type Pad interface {
	Apply(s State) error
	Close() error
}

// padUpdate is one producer message. Unknown keys fall away in
// unmarshalling, missing ones leave their fields zero.
type padUpdate struct {
	Buttons map[string]bool    `json:"buttons"`
	Axes    map[string]float64 `json:"axes"`
}

// state turns a message into a full snapshot. Button keys are the
// table names, case-insensitive ("a", "dpad_up", "l3"). Stick axes
// come in as [-1,1], triggers as [0,1]; out-of-range values clamp, the
// rest scales to wire units.
func (u padUpdate) state() State {
	var s State
	for name, held := range u.Buttons {
		if !held {
			continue
		}
		for _, entry := range buttonTable {
			if strings.EqualFold(entry.name, name) {
				s.Buttons |= Buttons(entry.mask)
				break
			}
		}
	}
	s.LeftStick = Stick{scaleAxis(u.Axes["lx"]), scaleAxis(u.Axes["ly"])}
	s.RightStick = Stick{scaleAxis(u.Axes["rx"]), scaleAxis(u.Axes["ry"])}
	s.LeftTrigger = scaleTrigger(u.Axes["lt"])
	s.RightTrigger = scaleTrigger(u.Axes["rt"])
	return s
}

func scaleAxis(v float64) int16 {
	if v < -1 {
		v = -1
	} else if v > 1 {
		v = 1
	}
	return int16(math.Round(v * 32767))
}

func scaleTrigger(v float64) Trigger {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return Trigger(math.Round(v * 255))
}

// PadServer feeds a local virtual pad from a remote JSON producer: the
// exact inverse of the poll pipeline. One producer holds the pad at a
// time, the next gets accepted once it hangs up.
type PadServer struct {
	pad  Pad
	addr string

	mu sync.Mutex // single-writer discipline on the pad
}

func NewPadServer(addr string, pad Pad) *PadServer {
	return &PadServer{pad: pad, addr: addr}
}

// ListenAndServe accepts producers until ctx ends. Every applied
// message overwrites the whole pad state and flushes once.
func (s *PadServer) ListenAndServe(ctx context.Context) error {
	var config net.ListenConfig
	listener, err := config.Listen(ctx, "tcp", s.addr)
	if nil != err {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	defer listener.Close()
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	log.DebugF("serving pad on %s", listener.Addr())
	for {
		conn, err := listener.Accept()
		if nil != err {
			if nil != ctx.Err() {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.serve(conn)
	}
}

// serve drains one producer. A malformed message ends the session; the
// pad keeps whatever was applied last.
func (s *PadServer) serve(conn net.Conn) {
	defer conn.Close()

	session := uuid.NewString()
	log.DebugF("producer %s connected from %s", session, conn.RemoteAddr())

	decoder := json.NewDecoder(conn)
	for {
		var update padUpdate
		if err := decoder.Decode(&update); nil != err {
			if errors.Is(err, io.EOF) {
				log.DebugF("producer %s finished", session)
			} else {
				log.ErrorF("producer %s dropped: %s", session, err)
			}
			return
		}
		s.mu.Lock()
		err := s.pad.Apply(update.state())
		s.mu.Unlock()
		if nil != err {
			log.ErrorF("apply update from %s: %s", session, err)
			return
		}
	}
}
