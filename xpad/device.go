package xpad

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/gousb"

	"dio.wtf/xpad/xpad/log"
	"dio.wtf/xpad/xpad/report"
)

// https://github.com/Grumbel/xboxdrv/blob/master/PROTOCOL

const (
	// Defaults match the wired clone pad this grew up around. Nothing
	// below hardcodes them; the binaries take both as flags.
	DefaultVendor  uint16 = 0x045E
	DefaultProduct uint16 = 0x028F
	// ReceiverProduct is the wireless receiver. It speaks interrupt
	// endpoints instead of vendor control transfers; rumble goes there.
	ReceiverProduct uint16 = 0x0719

	armRequest  uint8  = 0x48
	armValue    uint16 = 0x0006
	pollRequest uint8  = 0xC2

	requestTypeOut = gousb.ControlOut | gousb.ControlVendor | gousb.ControlDevice
	requestTypeIn  = gousb.ControlIn | gousb.ControlVendor | gousb.ControlDevice

	DefaultTimeout = time.Second
)

var ErrNoDevice = errors.New("no matching usb device")

// Transport is the control-transfer surface everything above the USB
// stack runs against. The decode, poll and probe paths only ever see
// this, so tests drive them with scripted replies.
type Transport interface {
	ControlOut(request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error)
	ControlIn(request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error)
	Close() error
}

// Device owns one claimed USB handle. It is not safe for concurrent
// use; the loop driving it is its single owner.
type Device struct {
	ctx    *gousb.Context
	dev    *gousb.Device
	config *gousb.Config
	intf   *gousb.Interface
}

// OpenDevice claims interface 0 of configuration 1 on the first device
// matching vid:pid, detaching whatever kernel driver held it.
func OpenDevice(vid, pid uint16) (*Device, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if nil != err {
		ctx.Close()
		return nil, fmt.Errorf("open %04x:%04x: %w", vid, pid, err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("%w: %04x:%04x", ErrNoDevice, vid, pid)
	}

	if err = dev.SetAutoDetach(true); nil != err {
		log.DebugF("auto detach unavailable: %s", err)
	}

	config, err := dev.Config(1)
	if nil != err {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("claim configuration 1: %w", err)
	}

	intf, err := config.Interface(0, 0)
	if nil != err {
		config.Close()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("claim interface 0: %w", err)
	}

	log.DebugF("opened %s at bus %03d addr %03d", dev, dev.Desc.Bus, dev.Desc.Address)
	return &Device{ctx: ctx, dev: dev, config: config, intf: intf}, nil
}

func (d *Device) ControlOut(request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error) {
	d.dev.ControlTimeout = timeout
	return d.dev.Control(requestTypeOut, request, value, index, data)
}

func (d *Device) ControlIn(request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error) {
	d.dev.ControlTimeout = timeout
	return d.dev.Control(requestTypeIn, request, value, index, data)
}

// InterruptOut locates the interrupt OUT endpoint on the claimed
// interface. Only the receiver has one; rumble and LED packets are
// written through it.
func (d *Device) InterruptOut() (*gousb.OutEndpoint, error) {
	for _, ep := range d.intf.Setting.Endpoints {
		if ep.Direction == gousb.EndpointDirectionOut && ep.TransferType == gousb.TransferTypeInterrupt {
			return d.intf.OutEndpoint(ep.Number)
		}
	}
	return nil, fmt.Errorf("no interrupt OUT endpoint on %s", d.dev)
}

// Close releases everything in claim order reverse. Safe on every exit
// path; the binaries defer it right after OpenDevice.
func (d *Device) Close() error {
	d.intf.Close()
	if err := d.config.Close(); nil != err {
		log.ErrorF("release configuration: %s", err)
	}
	if err := d.dev.Close(); nil != err {
		log.ErrorF("close device: %s", err)
	}
	return d.ctx.Close()
}

// Arm sends the vendor wake-up without which the status request serves
// nothing useful. Callers treat failure as non-fatal: a previously
// armed device keeps serving.
func Arm(t Transport, timeout time.Duration) error {
	_, err := t.ControlOut(armRequest, armValue, 0, nil, timeout)
	return err
}

// Poll issues one status request into buf and returns the prefix the
// device actually filled. Length varies call to call; callers must not
// assume PollLength came back.
func Poll(t Transport, buf report.PollReport, timeout time.Duration) (report.PollReport, error) {
	n, err := t.ControlIn(pollRequest, 0, 0, buf[:report.PollLength], timeout)
	if nil != err {
		return nil, err
	}
	return buf[:n], nil
}
