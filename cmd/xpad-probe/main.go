package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"dio.wtf/xpad/xpad"
	"dio.wtf/xpad/xpad/log"
	"dio.wtf/xpad/xpad/probe"
)

var (
	vendor   = flag.Uint("vid", uint(xpad.DefaultVendor), "vendor id")
	product  = flag.Uint("pid", uint(xpad.DefaultProduct), "product id")
	requests = flag.String("req", "0x00:0xff", "request range, start:end inclusive")
	values   = flag.String("val", "0x00:0xff", "value range")
	indexes  = flag.String("idx", "0x00:0x0f", "index range")
	length   = flag.Int("len", 0, "payload bytes per probe")
	pattern  = flag.String("pat", "increment", "payload fill: zero, ones, increment, xor")
	delay    = flag.Duration("delay", probe.DefaultDelay, "pause after every probe")
	timeout  = flag.Duration("timeout", probe.DefaultTimeout, "per-transfer timeout")
	noArm    = flag.Bool("no-arm", false, "skip the arm command first")
)

// Walks the vendor request space looking for commands that move the
// status reply. Anything it finds is a lead, not an answer: a hit says
// "this triple did something", nothing more.
func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); nil != err {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg := probe.Config{
		Arm:        !*noArm,
		PayloadLen: *length,
		Delay:      *delay,
		Timeout:    *timeout,
	}

	var err error
	if cfg.Requests, err = probe.ParseRange(*requests); nil != err {
		return err
	}
	if cfg.Values, err = probe.ParseRange(*values); nil != err {
		return err
	}
	if cfg.Indexes, err = probe.ParseRange(*indexes); nil != err {
		return err
	}
	if cfg.Requests.End > 0xFF {
		return fmt.Errorf("request range %s: requests are one byte", cfg.Requests)
	}
	if cfg.Pattern, err = probe.ParsePattern(*pattern); nil != err {
		return err
	}

	device, err := xpad.OpenDevice(uint16(*vendor), uint16(*product))
	if nil != err {
		return err
	}
	defer device.Close()

	fmt.Printf("probing %d combinations, %s between probes\n", cfg.Space(), cfg.Delay)
	start := time.Now()
	hits := 0
	err = probe.NewEngine(device, cfg).Run(ctx, func(h probe.Hit) {
		hits++
		fmt.Printf("*** %s (sent %d)\n    old: %s\n    new: %s\n", h.Params, h.Sent, h.Old, h.New)
	})
	if nil != err {
		fmt.Printf("stopped after %s: %d hits\n", time.Since(start).Round(time.Second), hits)
		return nil
	}

	fmt.Printf("exhausted in %s: %d hits\n", time.Since(start).Round(time.Second), hits)
	return nil
}
