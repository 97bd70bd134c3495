package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"dio.wtf/xpad/xpad"
	"dio.wtf/xpad/xpad/log"
)

var (
	vendor   = flag.Uint("vid", uint(xpad.DefaultVendor), "vendor id")
	product  = flag.Uint("pid", uint(xpad.DefaultProduct), "product id")
	interval = flag.Duration("interval", xpad.DefaultInterval, "poll interval")
	name     = flag.String("name", "Microsoft X-Box 360 pad", "virtual device name")
)

// Bridges the vendor-protocol pad onto a regular evdev node, so
// everything that speaks evdev sees a normal controller.
func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); nil != err {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	device, err := xpad.OpenDevice(uint16(*vendor), uint16(*product))
	if nil != err {
		return err
	}
	defer device.Close()

	pad, err := xpad.NewUinputPad(*name, uint16(*vendor), uint16(*product))
	if nil != err {
		return err
	}
	defer pad.Close()

	return xpad.NewPoller(device, *interval, pad).Run(ctx)
}
