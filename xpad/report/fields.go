package report

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Field names one region of the poll report. Multi-byte fields are
// little-endian on the wire.
type Field struct {
	Name   string
	Offset int
	Width  int
	Signed bool
}

var (
	FieldButtons      = Field{"buttons", 2, 4, false}
	FieldLeftTrigger  = Field{"lt", 4, 1, false}
	FieldRightTrigger = Field{"rt", 5, 1, false}
	FieldLeftX        = Field{"lx", 6, 2, true}
	FieldLeftY        = Field{"ly", 8, 2, true}
	FieldRightX       = Field{"rx", 10, 2, true}
	FieldRightY       = Field{"ry", 12, 2, true}
)

// Layout is the wire order of every known field. The trigger bytes sit
// inside the button dword: the device really does pack them into bits
// 16..31 of the same 32-bit field the button mask lives in.
var Layout = []Field{
	FieldButtons,
	FieldLeftTrigger,
	FieldRightTrigger,
	FieldLeftX,
	FieldLeftY,
	FieldRightX,
	FieldRightY,
}

// Extract reads one field out of the raw report. Signed fields are
// sign-extended from their wire width, everything else zero-extended.
func (r PollReport) Extract(f Field) int32 {
	var raw uint32
	switch f.Width {
	case 1:
		raw = uint32(r[f.Offset])
	case 2:
		raw = uint32(binary.LittleEndian.Uint16(r[f.Offset:]))
	case 4:
		raw = binary.LittleEndian.Uint32(r[f.Offset:])
	}
	if f.Signed {
		switch f.Width {
		case 1:
			return int32(int8(raw))
		case 2:
			return int32(int16(raw))
		}
	}
	return int32(raw)
}

// DumpUnknown formats the regions Layout does not name: the two lead-in
// bytes and whatever trails the stick block. Probe runs log it when
// hunting for undocumented fields.
func (r PollReport) DumpUnknown() string {
	var builder strings.Builder
	if len(r) >= 2 {
		builder.WriteString(fmt.Sprintf("head=%02X %02X", r[0], r[1]))
	}
	if len(r) > MinDecode {
		builder.WriteString(" tail=")
		builder.WriteString(PollReport(r[MinDecode:]).String())
	}
	return builder.String()
}
