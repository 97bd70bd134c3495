package probe

import (
	"context"
	"fmt"
	"time"

	"dio.wtf/xpad/xpad"
	"dio.wtf/xpad/xpad/log"
	"dio.wtf/xpad/xpad/report"
)

// Phase tracks where a probe run stands. It only moves forward.
type Phase uint8

const (
	PhaseInit Phase = iota
	PhaseArmed
	PhaseBaseline
	PhaseSearching
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseArmed:
		return "armed"
	case PhaseBaseline:
		return "baseline"
	case PhaseSearching:
		return "searching"
	case PhaseDone:
		return "done"
	default:
		return "UNKNOWN"
	}
}

const (
	DefaultDelay   = 2 * time.Millisecond
	DefaultTimeout = 200 * time.Millisecond
)

// Params is one point of the search space.
type Params struct {
	Request uint8
	Value   uint16
	Index   uint16
}

func (p Params) String() string {
	return fmt.Sprintf("req=0x%02X val=0x%04X idx=0x%04X", p.Request, p.Value, p.Index)
}

// Hit is a probe that moved the status reply.
type Hit struct {
	Params Params
	// Sent counts the OUT transfers the device accepted so far,
	// this one included.
	Sent int
	Old  report.PollReport
	New  report.PollReport
}

// Config bounds the search space.
type Config struct {
	Arm        bool
	Requests   Range
	Values     Range
	Indexes    Range
	PayloadLen int
	Pattern    Pattern
	Delay      time.Duration
	Timeout    time.Duration
}

func (c Config) withDefaults() Config {
	if c.Delay <= 0 {
		c.Delay = DefaultDelay
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Space is the full iteration count, for progress arithmetic.
func (c Config) Space() uint64 {
	return c.Requests.Count() * c.Values.Count() * c.Indexes.Count()
}

// Engine walks the parameter space one transfer at a time: single
// goroutine, one outstanding transfer, a pacing delay after every
// attempt. Slow on purpose, unknown commands can wedge the device.
type Engine struct {
	transport xpad.Transport
	cfg       Config
	phase     Phase
	sent      int
	baseline  [report.PollLength]byte

	// wait paces the loop; tests swap it to count pacing calls.
	wait func(context.Context, time.Duration) error
}

func NewEngine(t xpad.Transport, cfg Config) *Engine {
	return &Engine{
		transport: t,
		cfg:       cfg.withDefaults(),
		wait:      sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (e *Engine) Phase() Phase {
	return e.phase
}

// Run walks the whole space in a fixed order (request outer, then
// value, then index) and hands each hit to onHit as it lands. It
// returns nil on exhaustion and ctx.Err() on cancellation. A probe
// that fails is skipped, never retried: a command that stalled once
// will stall again, and the search has to keep moving.
func (e *Engine) Run(ctx context.Context, onHit func(Hit)) error {
	cfg := e.cfg

	if cfg.Arm {
		if err := xpad.Arm(e.transport, cfg.Timeout); nil != err {
			log.ErrorF("arm failed, searching anyway: %s", err)
		}
		e.phase = PhaseArmed
	}

	buf := report.Alloc()
	defer report.Free(buf)

	// The baseline stays zero when the first poll fails; a dead reply
	// channel makes every later comparison meaningless anyway and the
	// log line says what happened.
	e.phase = PhaseBaseline
	if raw, err := xpad.Poll(e.transport, *buf, cfg.Timeout); nil != err {
		log.ErrorF("baseline poll failed, starting from zeros: %s", err)
	} else {
		copy(e.baseline[:], raw)
		log.DebugF("baseline (%d bytes): %s", len(raw), raw)
	}

	e.phase = PhaseSearching
	log.DebugF("searching %d probes: req %s val %s idx %s len %d pattern %s",
		cfg.Space(), cfg.Requests, cfg.Values, cfg.Indexes, cfg.PayloadLen, cfg.Pattern)

	payload := make([]byte, cfg.PayloadLen)
	for req := cfg.Requests.Start; req <= cfg.Requests.End; req++ {
		for val := cfg.Values.Start; val <= cfg.Values.End; val++ {
			for idx := cfg.Indexes.Start; idx <= cfg.Indexes.End; idx++ {
				if err := ctx.Err(); nil != err {
					return err
				}
				params := Params{Request: uint8(req), Value: uint16(val), Index: uint16(idx)}
				if hit := e.probe(params, payload, *buf); nil != hit {
					if onHit != nil {
						onHit(*hit)
					}
				}
				// pace every iteration, hit or miss, so the bus never
				// sees back-to-back probes
				if err := e.wait(ctx, cfg.Delay); nil != err {
					return err
				}
			}
		}
	}

	e.phase = PhaseDone
	log.DebugF("space exhausted, %d sends accepted", e.sent)
	return nil
}

// probe sends one OUT then reads the status back once. Either transfer
// failing means "no effect here".
func (e *Engine) probe(params Params, payload []byte, pollBuf report.PollReport) *Hit {
	e.cfg.Pattern.Fill(payload, params.Request)
	if _, err := e.transport.ControlOut(params.Request, params.Value, params.Index, payload, e.cfg.Timeout); nil != err {
		log.DebugF("%s: send: %s", params, err)
		return nil
	}
	e.sent++

	raw, err := xpad.Poll(e.transport, pollBuf, e.cfg.Timeout)
	if nil != err {
		log.DebugF("%s: readback: %s", params, err)
		return nil
	}
	if !xpad.RawChanged(e.baseline[:], raw) {
		return nil
	}

	hit := &Hit{
		Params: params,
		Sent:   e.sent,
		Old:    append(report.PollReport(nil), e.baseline[:]...),
		New:    append(report.PollReport(nil), raw...),
	}
	// adopt the new reply, otherwise this one change would re-report
	// on every probe after it
	copy(e.baseline[:len(raw)], raw)
	return hit
}
