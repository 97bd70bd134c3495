package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"dio.wtf/xpad/xpad"
	"dio.wtf/xpad/xpad/log"
)

var (
	vendor   = flag.Uint("vid", uint(xpad.DefaultVendor), "vendor id")
	product  = flag.Uint("pid", uint(xpad.DefaultProduct), "product id")
	interval = flag.Duration("interval", xpad.DefaultInterval, "poll interval")
	plain    = flag.Bool("plain", false, "one line per change instead of the full-screen view")
	logFile  = flag.String("log", "", "append logs to this file (the full-screen view owns the terminal)")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); nil != err {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if nil != err {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	} else if !*plain {
		log.SetOutput(io.Discard)
	}

	device, err := xpad.OpenDevice(uint16(*vendor), uint16(*product))
	if nil != err {
		return err
	}
	defer device.Close()

	var sink xpad.Sink
	if *plain {
		sink = xpad.NewConsoleSink(os.Stdout)
	} else {
		sink = xpad.NewTerminalSink()
	}
	defer sink.Close()

	err = xpad.NewPoller(device, *interval, sink).Run(ctx)
	if errors.Is(err, xpad.ErrSinkFatal) {
		// the user closed the view
		return nil
	}
	return err
}
