package mcc

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func TestTimeCodeFormatRoundTrip(t *testing.T) {
	for _, f := range TimeCodeFormats() {
		got, ok := ParseTimeCodeFormat(f.String())
		if !ok || got != f {
			t.Fatalf("%v: round trip gave %v, %v", f, got, ok)
		}
	}
}

func TestParseTimeCodeFormat(t *testing.T) {
	cases := []struct {
		in   string
		want TimeCodeFormat
		ok   bool
	}{
		{"30DF", Fps30DropFrame, true},
		{"60", Fps60, true},
		{"24", Fps24, true},
		{"30DFF", 0, false},
		{"30df", 0, false},
		{" 30", 0, false},
		{"29.97", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseTimeCodeFormat(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%q: got %v, %v want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTimeCodeFormatProperties(t *testing.T) {
	if DefaultTimeCodeFormat != Fps30 {
		t.Fatalf("default rate is %v", DefaultTimeCodeFormat)
	}
	if TimeCodeFormat(0).IsValid() || TimeCodeFormat(0).String() != "invalid" {
		t.Fatal("zero value must be invalid")
	}
	if Fps30DropFrame.FrameRate() != 30 || !Fps30DropFrame.DropFrame() {
		t.Fatal("30DF properties")
	}
	if Fps25.DropFrame() || Fps25.FrameRate() != 25 {
		t.Fatal("25 properties")
	}
	if _, err := TimeCodeFormat(0).MarshalText(); !errors.Is(err, ErrUnknownTimeCodeRate) {
		t.Fatalf("expected ErrUnknownTimeCodeRate, got %v", err)
	}
	var f TimeCodeFormat
	if err := f.UnmarshalText([]byte("60DF")); err != nil || f != Fps60DropFrame {
		t.Fatalf("unmarshal: %v %v", f, err)
	}
	if err := f.UnmarshalText([]byte("23.976")); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseTimeCode(t *testing.T) {
	tc, err := ParseTimeCode("01:02:03:04")
	if err != nil {
		t.Fatal(err)
	}
	if tc != (TimeCode{Hour: 1, Minute: 2, Second: 3, Frame: 4}) {
		t.Fatalf("unexpected time code %#v", tc)
	}
	if tc.String() != "01:02:03;04" {
		t.Fatalf("unexpected display %q", tc.String())
	}

	tc, err = ParseTimeCode("1:2:3:45")
	if err != nil {
		t.Fatal(err)
	}
	if tc.String() != "01:02:03;45" {
		t.Fatalf("unexpected display %q", tc.String())
	}

	// Frames are not checked against any rate.
	if tc, err = ParseTimeCode("00:00:00:99"); err != nil || tc.Frame != 99 {
		t.Fatalf("unexpected %v %v", tc, err)
	}
	if tc, err = ParseTimeCode("100:00:00:00"); err != nil || tc.String() != "100:00:00;00" {
		t.Fatalf("unexpected %v %v", tc, err)
	}
}

func TestParseTimeCodeErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"01:02:03",
		"01:02:03;04",
		"01-02-03-04",
		"01:02::04",
		"a1:02:03:04",
		"01:02:03:04x",
		"4294967296:00:00:00",
		"-1:00:00:00",
	} {
		if _, err := ParseTimeCode(in); !errors.Is(err, ErrInvalidTimeCode) {
			t.Fatalf("%q: expected ErrInvalidTimeCode, got %v", in, err)
		}
	}
}

func TestFrameCount(t *testing.T) {
	cases := []struct {
		tc   string
		f    TimeCodeFormat
		want uint64
	}{
		{"00:00:01:00", Fps24, 24},
		{"01:00:00:00", Fps25, 90000},
		{"00:00:59:29", Fps30DropFrame, 1799},
		{"00:01:00:02", Fps30DropFrame, 1800},
		{"00:10:00:00", Fps30DropFrame, 17982},
		{"01:00:00:00", Fps30DropFrame, 107892},
		{"00:01:00:04", Fps60DropFrame, 3600},
		{"00:01:00:00", Fps60, 3600},
	}
	for _, c := range cases {
		tc, err := ParseTimeCode(c.tc)
		if err != nil {
			t.Fatal(err)
		}
		if got := tc.FrameCount(c.f); got != c.want {
			t.Fatalf("%s @ %v: got %d want %d", c.tc, c.f, got, c.want)
		}
	}
}

func TestTimeCodeDuration(t *testing.T) {
	tc := TimeCode{Second: 2}
	if d := tc.Duration(Fps24); d != 2*time.Second {
		t.Fatalf("unexpected duration %v", d)
	}
	tc = TimeCode{Frame: 30}
	if d := tc.Duration(Fps30DropFrame); d != 1001*time.Millisecond {
		t.Fatalf("unexpected drop-frame duration %v", d)
	}
	if d := tc.Duration(TimeCodeFormat(0)); d != 0 {
		t.Fatalf("invalid rate should give zero, got %v", d)
	}
}

func TestTimeCodeDurationSaturates(t *testing.T) {
	if d := (TimeCode{Hour: 2_000_000}).Duration(Fps24); d != 2_000_000*time.Hour {
		t.Fatalf("unexpected duration %v", d)
	}
	huge := TimeCode{Hour: math.MaxUint32, Minute: math.MaxUint32, Second: math.MaxUint32, Frame: math.MaxUint32}
	for _, tc := range []TimeCode{{Hour: 3_000_000}, huge} {
		for _, f := range TimeCodeFormats() {
			if d := tc.Duration(f); d != math.MaxInt64 {
				t.Fatalf("%v @ %v: expected saturation, got %v", tc, f, d)
			}
		}
	}
}

func TestTimeCodeTextRoundTrip(t *testing.T) {
	in := TimeCode{Hour: 10, Minute: 20, Second: 30, Frame: 7}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"10:20:30;07"` {
		t.Fatalf("unexpected json %s", b)
	}
	var out TimeCode
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %v vs %v", out, in)
	}
	if err := out.UnmarshalText([]byte("1:2:3:4")); err != nil || out != (TimeCode{Hour: 1, Minute: 2, Second: 3, Frame: 4}) {
		t.Fatalf("unexpected %v %v", out, err)
	}
}
