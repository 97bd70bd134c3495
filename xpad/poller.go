package xpad

import (
	"context"
	"errors"
	"time"

	"dio.wtf/xpad/xpad/log"
	"dio.wtf/xpad/xpad/report"
)

// DefaultInterval is the poll cadence. The pad serves fresh state well
// above 500 Hz.
const DefaultInterval = 2 * time.Millisecond

// Poller owns the transport and fans every decoded snapshot out to its
// sinks from a single loop.
type Poller struct {
	transport Transport
	sinks     []Sink
	interval  time.Duration
	timeout   time.Duration
}

func NewPoller(t Transport, interval time.Duration, sinks ...Sink) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		transport: t,
		sinks:     sinks,
		interval:  interval,
		timeout:   DefaultTimeout,
	}
}

// Run arms the device and polls until ctx ends or a sink fails
// fatally. A failed or truncated poll never zeroes anything: the
// previous snapshot stands until a full reply lands.
func (p *Poller) Run(ctx context.Context) error {
	if err := Arm(p.transport, p.timeout); nil != err {
		log.ErrorF("arm failed, continuing on the chance the device is armed: %s", err)
	}

	buf := report.Alloc()
	defer report.Free(buf)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var prev State
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		raw, err := Poll(p.transport, *buf, p.timeout)
		if nil != err {
			log.DebugF("poll: %s", err)
			continue
		}
		cur, err := DecodeState(raw)
		if nil != err {
			log.DebugF("decode %d bytes: %s", len(raw), err)
			continue
		}

		changes := Compare(prev, cur)
		for _, sink := range p.sinks {
			if err = sink.Emit(cur, changes); nil != err {
				if errors.Is(err, ErrSinkFatal) {
					return err
				}
				log.ErrorF("emit: %s", err)
			}
		}
		prev = cur
	}
}
