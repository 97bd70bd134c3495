package probe

import (
	"bytes"
	"testing"
)

func TestPatternFill(t *testing.T) {
	for _, tc := range []struct {
		pattern Pattern
		request uint8
		want    []byte
	}{
		{PatternZero, 0x47, []byte{0x00, 0x00, 0x00, 0x00}},
		{PatternOnes, 0x47, []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{PatternIncrement, 0x47, []byte{0x00, 0x01, 0x02, 0x03}},
		{PatternRequestXorIndex, 0x47, []byte{0x47, 0x46, 0x45, 0x44}},
	} {
		buf := []byte{0xAA, 0xAA, 0xAA, 0xAA}
		tc.pattern.Fill(buf, tc.request)
		if !bytes.Equal(buf, tc.want) {
			t.Errorf("%s: got % 02X, want % 02X", tc.pattern, buf, tc.want)
		}
	}
}

func TestParsePattern(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Pattern
	}{
		{"0", PatternZero},
		{"zero", PatternZero},
		{"1", PatternOnes},
		{"ONES", PatternOnes},
		{"2", PatternIncrement},
		{"inc", PatternIncrement},
		{"increment", PatternIncrement},
		{"3", PatternRequestXorIndex},
		{"xor", PatternRequestXorIndex},
		{"request-xor-index", PatternRequestXorIndex},
	} {
		got, err := ParsePattern(tc.in)
		if nil != err {
			t.Errorf("ParsePattern(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePattern(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
	if _, err := ParsePattern("random"); nil == err {
		t.Error("ParsePattern accepted an unknown name")
	}
}

func TestParseRange(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Range
	}{
		{"0x48", Range{0x48, 0x48}},
		{"72", Range{72, 72}},
		{"0x00:0xff", Range{0x00, 0xFF}},
		{"0:15", Range{0, 15}},
		{"0x48:0x48", Range{0x48, 0x48}},
	} {
		got, err := ParseRange(tc.in)
		if nil != err {
			t.Errorf("ParseRange(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRange(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseRangeRejects(t *testing.T) {
	for _, in := range []string{"", "pad", "0x10:0x01", "1:2:3", "0x48:", "0x10000"} {
		if _, err := ParseRange(in); nil == err {
			t.Errorf("ParseRange(%q) accepted garbage", in)
		}
	}
}

func TestRangeCount(t *testing.T) {
	for _, tc := range []struct {
		r    Range
		want uint64
	}{
		{Range{0, 0}, 1},
		{Range{0x48, 0x48}, 1},
		{Range{0x00, 0xFF}, 256},
		{Range{0x0000, 0xFFFF}, 65536},
	} {
		if got := tc.r.Count(); got != tc.want {
			t.Errorf("%s.Count() = %d, want %d", tc.r, got, tc.want)
		}
	}
}

func TestRangeString(t *testing.T) {
	if got := (Range{0x48, 0x48}).String(); got != "0x48" {
		t.Errorf("single-element String() = %q", got)
	}
	if got := (Range{0x00, 0xFF}).String(); got != "0x00:0xFF" {
		t.Errorf("interval String() = %q", got)
	}
}
