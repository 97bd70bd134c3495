package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dio.wtf/xpad/xpad"
	"dio.wtf/xpad/xpad/log"
	"dio.wtf/xpad/xpad/probe"
)

var (
	vendor  = flag.Uint("vid", uint(xpad.DefaultVendor), "vendor id")
	product = flag.Uint("pid", uint(xpad.DefaultProduct), "product id")
	length  = flag.Int("len", 0, "payload bytes to send")
	pattern = flag.String("pat", "increment", "payload fill: zero, ones, increment, xor")
	timeout = flag.Duration("timeout", xpad.DefaultTimeout, "per-transfer timeout")
)

// Fires one known vendor command by hand, the follow-up tool once the
// prober has produced a lead worth repeating.
func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <request> <value> <index> [count] [delay]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); nil != err {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	if flag.NArg() < 3 {
		flag.Usage()
		os.Exit(2)
	}

	request, err := parseArg(flag.Arg(0), 8)
	if nil != err {
		return err
	}
	value, err := parseArg(flag.Arg(1), 16)
	if nil != err {
		return err
	}
	index, err := parseArg(flag.Arg(2), 16)
	if nil != err {
		return err
	}
	count := uint64(1)
	if flag.NArg() > 3 {
		if count, err = parseArg(flag.Arg(3), 32); nil != err {
			return err
		}
	}
	delay := 100 * time.Millisecond
	if flag.NArg() > 4 {
		if delay, err = time.ParseDuration(flag.Arg(4)); nil != err {
			return err
		}
	}

	fill, err := probe.ParsePattern(*pattern)
	if nil != err {
		return err
	}
	payload := make([]byte, *length)
	fill.Fill(payload, uint8(request))

	device, err := xpad.OpenDevice(uint16(*vendor), uint16(*product))
	if nil != err {
		return err
	}
	defer device.Close()

	if err = xpad.Arm(device, *timeout); nil != err {
		log.ErrorF("arm failed, sending anyway: %s", err)
	}

	for i := uint64(0); i < count; i++ {
		n, err := device.ControlOut(uint8(request), uint16(value), uint16(index), payload, *timeout)
		if nil != err {
			fmt.Printf("%d/%d: req=0x%02X val=0x%04X idx=0x%04X: %s\n", i+1, count, request, value, index, err)
		} else {
			fmt.Printf("%d/%d: req=0x%02X val=0x%04X idx=0x%04X: %d bytes accepted\n", i+1, count, request, value, index, n)
		}
		if i+1 == count {
			break
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}
	return nil
}

func parseArg(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bits)
	if nil != err {
		return 0, fmt.Errorf("argument %q: %w", s, err)
	}
	return v, nil
}
