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
	broker   = flag.String("broker", "tcp://localhost:1883", "mqtt broker url")
	topic    = flag.String("topic", "xpad/0", "topic prefix, groups publish under it")
	clientID = flag.String("client-id", "xpad-mqtt", "mqtt client id")
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
	device, err := xpad.OpenDevice(uint16(*vendor), uint16(*product))
	if nil != err {
		return err
	}
	defer device.Close()

	sink, err := xpad.NewMQTTSink(*broker, *topic, *clientID)
	if nil != err {
		return err
	}
	defer sink.Close()

	return xpad.NewPoller(device, *interval, sink).Run(ctx)
}
