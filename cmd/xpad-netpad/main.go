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
	listen  = flag.String("listen", ":5045", "tcp address for producers")
	name    = flag.String("name", "xpad network pad", "virtual device name")
	vendor  = flag.Uint("vid", uint(xpad.DefaultVendor), "virtual device vendor id")
	product = flag.Uint("pid", uint(xpad.DefaultProduct), "virtual device product id")
)

// The reverse of xpad-evdev: no physical pad involved, a remote JSON
// producer drives a local virtual one.
func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); nil != err {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	pad, err := xpad.NewUinputPad(*name, uint16(*vendor), uint16(*product))
	if nil != err {
		return err
	}
	defer pad.Close()

	return xpad.NewPadServer(*listen, pad).ListenAndServe(ctx)
}
