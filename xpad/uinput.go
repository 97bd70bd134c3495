package xpad

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"dio.wtf/xpad/xpad/log"
)

// The corner of linux/uinput.h and input-event-codes.h this needs.
const (
	uinputPath = "/dev/uinput"

	uiSetEvBit   = 0x40045564 // _IOW('U', 100, int)
	uiSetKeyBit  = 0x40045565 // _IOW('U', 101, int)
	uiSetAbsBit  = 0x40045567 // _IOW('U', 103, int)
	uiDevSetup   = 0x405c5503 // _IOW('U', 3, struct uinput_setup)
	uiAbsSetup   = 0x401c5504 // _IOW('U', 4, struct uinput_abs_setup)
	uiDevCreate  = 0x5501     // _IO('U', 1)
	uiDevDestroy = 0x5502     // _IO('U', 2)

	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	synReport = 0

	btnSouth  = 0x130 // carries the BTN_A alias
	btnEast   = 0x131 // BTN_B
	btnNorth  = 0x133 // BTN_X, the naming swap is the kernel's
	btnWest   = 0x134 // BTN_Y
	btnTL     = 0x136
	btnTR     = 0x137
	btnSelect = 0x13a
	btnStart  = 0x13b
	btnMode   = 0x13c
	btnThumbL = 0x13d
	btnThumbR = 0x13e

	absX     = 0x00
	absY     = 0x01
	absZ     = 0x02
	absRX    = 0x03
	absRY    = 0x04
	absRZ    = 0x05
	absHat0X = 0x10
	absHat0Y = 0x11

	busUSB = 0x03

	eventSize = 24
)

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type uinputSetup struct {
	ID           inputID
	Name         [80]byte
	FFEffectsMax uint32
}

type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

type uinputAbsSetup struct {
	Code uint16
	_    uint16
	Info absInfo
}

var buttonCodes = []struct {
	mask Button
	code uint16
}{
	{A, btnSouth},
	{B, btnEast},
	{X, btnNorth},
	{Y, btnWest},
	{LB, btnTL},
	{RB, btnTR},
	{Back, btnSelect},
	{Start, btnStart},
	{Guide, btnMode},
	{ThumbL, btnThumbL},
	{ThumbR, btnThumbR},
}

var padAxes = []struct {
	code uint16
	info absInfo
}{
	{absX, absInfo{Minimum: -32768, Maximum: 32767, Fuzz: 16, Flat: 128}},
	{absY, absInfo{Minimum: -32768, Maximum: 32767, Fuzz: 16, Flat: 128}},
	{absRX, absInfo{Minimum: -32768, Maximum: 32767, Fuzz: 16, Flat: 128}},
	{absRY, absInfo{Minimum: -32768, Maximum: 32767, Fuzz: 16, Flat: 128}},
	{absZ, absInfo{Minimum: 0, Maximum: 255}},
	{absRZ, absInfo{Minimum: 0, Maximum: 255}},
	{absHat0X, absInfo{Minimum: -1, Maximum: 1}},
	{absHat0Y, absInfo{Minimum: -1, Maximum: 1}},
}

// UinputPad is a kernel-side virtual controller. Apply rewrites the
// whole device state and commits it with a single SYN_REPORT; as a
// Sink it only bothers the kernel when something actually moved.
type UinputPad struct {
	file *os.File
	buf  []byte
}

// NewUinputPad creates the virtual node. The identity triple is what
// games see, so keeping the real pad's vid:pid makes remapping
// software treat both the same.
func NewUinputPad(name string, vendor, product uint16) (*UinputPad, error) {
	file, err := os.OpenFile(uinputPath, os.O_WRONLY, 0)
	if nil != err {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("open %s (modprobe uinput first): %w", uinputPath, err)
		}
		return nil, fmt.Errorf("open %s: %w", uinputPath, err)
	}

	pad := &UinputPad{file: file, buf: make([]byte, 0, eventSize*(len(buttonCodes)+len(padAxes)+1))}
	if err = pad.setup(name, vendor, product); nil != err {
		file.Close()
		return nil, err
	}

	log.DebugF("created uinput pad %q (%04x:%04x)", name, vendor, product)
	return pad, nil
}

func (u *UinputPad) setup(name string, vendor, product uint16) error {
	fd := int(u.file.Fd())

	if err := unix.IoctlSetInt(fd, uiSetEvBit, evKey); nil != err {
		return fmt.Errorf("enable EV_KEY: %w", err)
	}
	for _, entry := range buttonCodes {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(entry.code)); nil != err {
			return fmt.Errorf("enable key 0x%03x: %w", entry.code, err)
		}
	}

	if err := unix.IoctlSetInt(fd, uiSetEvBit, evAbs); nil != err {
		return fmt.Errorf("enable EV_ABS: %w", err)
	}
	for _, axis := range padAxes {
		if err := unix.IoctlSetInt(fd, uiSetAbsBit, int(axis.code)); nil != err {
			return fmt.Errorf("enable abs 0x%02x: %w", axis.code, err)
		}
		abs := uinputAbsSetup{Code: axis.code, Info: axis.info}
		if err := ioctlPointer(fd, uiAbsSetup, unsafe.Pointer(&abs)); nil != err {
			return fmt.Errorf("setup abs 0x%02x: %w", axis.code, err)
		}
	}

	setup := uinputSetup{ID: inputID{Bustype: busUSB, Vendor: vendor, Product: product, Version: 1}}
	copy(setup.Name[:len(setup.Name)-1], name)
	if err := ioctlPointer(fd, uiDevSetup, unsafe.Pointer(&setup)); nil != err {
		return fmt.Errorf("device setup: %w", err)
	}
	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); nil != err {
		return fmt.Errorf("device create: %w", err)
	}
	return nil
}

func (u *UinputPad) Emit(s State, changes ChangeSet) error {
	if changes.Empty() {
		return nil
	}
	return u.Apply(s)
}

// Apply pushes every field of s to the kernel followed by one
// SYN_REPORT, in a single write.
func (u *UinputPad) Apply(s State) error {
	buf := appendStateEvents(u.buf[:0], s)
	if _, err := u.file.Write(buf); nil != err {
		return fmt.Errorf("%w: write uinput: %s", ErrSinkFatal, err)
	}
	u.buf = buf
	return nil
}

func (u *UinputPad) Close() error {
	if err := unix.IoctlSetInt(int(u.file.Fd()), uiDevDestroy, 0); nil != err {
		log.ErrorF("destroy uinput pad: %s", err)
	}
	return u.file.Close()
}

// appendStateEvents packs the full event batch for one snapshot:
// buttons, hat, sticks, triggers, SYN last. Event times stay zero, the
// kernel stamps them.
func appendStateEvents(buf []byte, s State) []byte {
	for _, entry := range buttonCodes {
		buf = appendEvent(buf, evKey, entry.code, btoi(s.Buttons.Has(entry.mask)))
	}
	hat := s.Hat()
	buf = appendEvent(buf, evAbs, absHat0X, int32(hat.X))
	buf = appendEvent(buf, evAbs, absHat0Y, int32(hat.Y))
	buf = appendEvent(buf, evAbs, absX, int32(s.LeftStick.X))
	// evdev Y grows downward, the pad reports up as positive
	buf = appendEvent(buf, evAbs, absY, -int32(s.LeftStick.Y))
	buf = appendEvent(buf, evAbs, absRX, int32(s.RightStick.X))
	buf = appendEvent(buf, evAbs, absRY, -int32(s.RightStick.Y))
	buf = appendEvent(buf, evAbs, absZ, int32(s.LeftTrigger))
	buf = appendEvent(buf, evAbs, absRZ, int32(s.RightTrigger))
	return appendEvent(buf, evSyn, synReport, 0)
}

func appendEvent(buf []byte, typ, code uint16, value int32) []byte {
	var ev [eventSize]byte
	binary.LittleEndian.PutUint16(ev[16:], typ)
	binary.LittleEndian.PutUint16(ev[18:], code)
	binary.LittleEndian.PutUint32(ev[20:], uint32(value))
	return append(buf, ev[:]...)
}

func btoi(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func ioctlPointer(fd int, req uint, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg)); errno != 0 {
		return errno
	}
	return nil
}
