package probe

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive parameter interval. Bounds are u32 so a loop
// walking 0x0000..0xFFFF terminates.
type Range struct {
	Start, End uint32
}

func (r Range) Count() uint64 {
	return uint64(r.End-r.Start) + 1
}

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("0x%02X", r.Start)
	}
	return fmt.Sprintf("0x%02X:0x%02X", r.Start, r.End)
}

// ParseRange reads "start:end" with either bound in any base strconv
// accepts ("0x48", "72"). A bare "0x48" is the one-element range.
func ParseRange(s string) (Range, error) {
	head, tail, hasEnd := strings.Cut(s, ":")
	start, err := strconv.ParseUint(head, 0, 16)
	if nil != err {
		return Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	end := start
	if hasEnd {
		if end, err = strconv.ParseUint(tail, 0, 16); nil != err {
			return Range{}, fmt.Errorf("range %q: %w", s, err)
		}
	}
	if end < start {
		return Range{}, fmt.Errorf("range %q: end below start", s)
	}
	return Range{uint32(start), uint32(end)}, nil
}
