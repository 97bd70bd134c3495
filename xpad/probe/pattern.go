package probe

import (
	"fmt"
	"strings"
)

// Pattern selects the probe payload filler. The increment and xor
// variants give every byte position a distinct value, so a device that
// echoes payload back reveals where the bytes landed.
type Pattern uint8

const (
	PatternZero Pattern = iota
	PatternOnes
	PatternIncrement
	PatternRequestXorIndex
)

func (p Pattern) String() string {
	switch p {
	case PatternZero:
		return "zero"
	case PatternOnes:
		return "ones"
	case PatternIncrement:
		return "increment"
	case PatternRequestXorIndex:
		return "request-xor-index"
	default:
		return "UNKNOWN"
	}
}

// Fill writes the pattern over buf. request seeds the xor variant.
func (p Pattern) Fill(buf []byte, request uint8) {
	for i := range buf {
		switch p {
		case PatternOnes:
			buf[i] = 0xFF
		case PatternIncrement:
			buf[i] = byte(i)
		case PatternRequestXorIndex:
			buf[i] = request ^ byte(i)
		default:
			buf[i] = 0x00
		}
	}
}

// ParsePattern accepts both the numeric flag values and the names.
func ParsePattern(s string) (Pattern, error) {
	switch strings.ToLower(s) {
	case "0", "zero":
		return PatternZero, nil
	case "1", "ones":
		return PatternOnes, nil
	case "2", "inc", "increment":
		return PatternIncrement, nil
	case "3", "xor", "request-xor-index":
		return PatternRequestXorIndex, nil
	}
	return 0, fmt.Errorf("unknown fill pattern %q", s)
}
