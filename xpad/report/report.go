package report

import (
	"errors"
	"fmt"
	"strings"
)

// https://github.com/Grumbel/xboxdrv/blob/master/PROTOCOL

const (
	// PollLength is how many bytes the status request asks for.
	PollLength = 20
	// MinDecode is the smallest reply the decoder accepts: button
	// dword, both triggers and all four stick axes end at byte 14.
	MinDecode = 14
)

var ErrTruncated = errors.New("truncated poll report")

// PollReport is the raw reply to the vendor status request. The slice
// length is whatever the device actually returned, which varies.
type PollReport []byte

func (r PollReport) Validate() error {
	if len(r) < MinDecode {
		return ErrTruncated
	}
	return nil
}

// Word is the full 32-bit button field, unknown bits included. The
// trigger bytes alias its upper half, so those show up here too.
func (r PollReport) Word() uint32 {
	return uint32(r.Extract(FieldButtons))
}

func (r PollReport) LeftTrigger() uint8 {
	return uint8(r.Extract(FieldLeftTrigger))
}

func (r PollReport) RightTrigger() uint8 {
	return uint8(r.Extract(FieldRightTrigger))
}

func (r PollReport) LeftX() int16 {
	return int16(r.Extract(FieldLeftX))
}

func (r PollReport) LeftY() int16 {
	return int16(r.Extract(FieldLeftY))
}

func (r PollReport) RightX() int16 {
	return int16(r.Extract(FieldRightX))
}

func (r PollReport) RightY() int16 {
	return int16(r.Extract(FieldRightY))
}

func (r PollReport) String() string {
	var builder strings.Builder
	for i, p := range r {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(fmt.Sprintf("%02X", p))
	}
	return builder.String()
}
