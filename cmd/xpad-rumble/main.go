package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"dio.wtf/xpad/xpad"
	"dio.wtf/xpad/xpad/log"
)

var (
	vendor   = flag.Uint("vid", uint(xpad.DefaultVendor), "vendor id")
	product  = flag.Uint("pid", uint(xpad.ReceiverProduct), "product id (the receiver, not the pad)")
	left     = flag.Uint("left", 0xFF, "left motor strength 0-255")
	right    = flag.Uint("right", 0xFF, "right motor strength 0-255")
	duration = flag.Duration("for", time.Second, "how long to rumble")
)

// The receiver takes rumble over its interrupt OUT endpoint rather
// than a control transfer, so this is the one tool in the set that
// claims an endpoint.
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

	endpoint, err := device.InterruptOut()
	if nil != err {
		return err
	}

	rumble := []byte{0x00, 0x08, byte(*left), byte(*right), 0x00, 0x00, 0x00, 0x00}
	stop := []byte{0x00, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

	if _, err = endpoint.Write(rumble); nil != err {
		return err
	}
	log.DebugF("rumbling left=%d right=%d for %s", *left, *right, *duration)

	select {
	case <-ctx.Done():
	case <-time.After(*duration):
	}

	_, err = endpoint.Write(stop)
	return err
}
