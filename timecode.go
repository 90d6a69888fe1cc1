package mcc

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"
)

// TimeCodeFormat is the frame rate declared by the "Time Code Rate" header field.
type TimeCodeFormat uint8

const (
	Fps24 TimeCodeFormat = iota + 1
	Fps25
	Fps30
	Fps30DropFrame
	Fps50
	Fps60
	Fps60DropFrame
)

// DefaultTimeCodeFormat is the placeholder rate for callers that need one.
// Parsing never falls back to it.
const DefaultTimeCodeFormat = Fps30

// TimeCodeFormats returns every supported rate in declaration order.
func TimeCodeFormats() []TimeCodeFormat {
	return []TimeCodeFormat{Fps24, Fps25, Fps30, Fps30DropFrame, Fps50, Fps60, Fps60DropFrame}
}

// ParseTimeCodeFormat maps a rate token such as "30DF" to its format.
// The match is exact and case-sensitive; ok is false for any other token.
func ParseTimeCodeFormat(token string) (f TimeCodeFormat, ok bool) {
	switch token {
	case "24":
		return Fps24, true
	case "25":
		return Fps25, true
	case "30":
		return Fps30, true
	case "30DF":
		return Fps30DropFrame, true
	case "50":
		return Fps50, true
	case "60":
		return Fps60, true
	case "60DF":
		return Fps60DropFrame, true
	default:
		return 0, false
	}
}

// String returns the canonical rate token.
func (f TimeCodeFormat) String() string {
	switch f {
	case Fps24:
		return "24"
	case Fps25:
		return "25"
	case Fps30:
		return "30"
	case Fps30DropFrame:
		return "30DF"
	case Fps50:
		return "50"
	case Fps60:
		return "60"
	case Fps60DropFrame:
		return "60DF"
	default:
		return "invalid"
	}
}

// IsValid reports whether f is one of the seven declared rates. The zero
// value is not.
func (f TimeCodeFormat) IsValid() bool {
	return f >= Fps24 && f <= Fps60DropFrame
}

// FrameRate returns the nominal (integer) frames per second.
func (f TimeCodeFormat) FrameRate() uint32 {
	switch f {
	case Fps24:
		return 24
	case Fps25:
		return 25
	case Fps30, Fps30DropFrame:
		return 30
	case Fps50:
		return 50
	case Fps60, Fps60DropFrame:
		return 60
	default:
		return 0
	}
}

// DropFrame reports whether f is 30DF or 60DF.
func (f TimeCodeFormat) DropFrame() bool {
	return f == Fps30DropFrame || f == Fps60DropFrame
}

// rational returns the real frame rate as num/den.
func (f TimeCodeFormat) rational() (num, den uint64) {
	if f.DropFrame() {
		return uint64(f.FrameRate()) * 1000, 1001
	}
	return uint64(f.FrameRate()), 1
}

// MarshalText emits the header token, failing for invalid rates.
func (f TimeCodeFormat) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTimeCodeRate, uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText accepts exactly the tokens ParseTimeCodeFormat does.
func (f *TimeCodeFormat) UnmarshalText(b []byte) error {
	v, ok := ParseTimeCodeFormat(string(b))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTimeCodeRate, b)
	}
	*f = v
	return nil
}

// TimeCode is an hour/minute/second/frame position. Fields are not range
// checked against any frame rate.
type TimeCode struct {
	Hour   uint32
	Minute uint32
	Second uint32
	Frame  uint32
}

// String renders the canonical HH:MM:SS;FF form.
func (tc TimeCode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d;%02d", tc.Hour, tc.Minute, tc.Second, tc.Frame)
}

// ParseTimeCode parses the H:M:S:F literal used by caption lines.
func ParseTimeCode(s string) (TimeCode, error) {
	tc, n, err := scanTimeCode(s)
	if err != nil {
		return TimeCode{}, err
	}
	if n != len(s) {
		return TimeCode{}, fmt.Errorf("%w: trailing input %q", ErrInvalidTimeCode, snippet(s[n:]))
	}
	return tc, nil
}

// scanTimeCode reads a time code from the front of s and returns the number
// of bytes consumed.
func scanTimeCode(s string) (TimeCode, int, error) {
	var fields [4]uint32
	pos := 0
	for i := range fields {
		if i > 0 {
			if pos >= len(s) || s[pos] != ':' {
				return TimeCode{}, pos, fmt.Errorf("%w: expected ':' after field %d", ErrInvalidTimeCode, i)
			}
			pos++
		}
		start := pos
		for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
			pos++
		}
		if start == pos {
			return TimeCode{}, start, fmt.Errorf("%w: expected digits for field %d", ErrInvalidTimeCode, i+1)
		}
		v, err := strconv.ParseUint(s[start:pos], 10, 32)
		if err != nil {
			return TimeCode{}, start, fmt.Errorf("%w: field %d out of range", ErrInvalidTimeCode, i+1)
		}
		fields[i] = uint32(v)
	}
	return TimeCode{Hour: fields[0], Minute: fields[1], Second: fields[2], Frame: fields[3]}, pos, nil
}

// FrameCount returns the absolute frame number of tc at rate f. Drop-frame
// rates skip the first two (30DF) or four (60DF) frame numbers of every
// minute except each tenth minute.
func (tc TimeCode) FrameCount(f TimeCodeFormat) uint64 {
	fps := uint64(f.FrameRate())
	seconds := uint64(tc.Hour)*3600 + uint64(tc.Minute)*60 + uint64(tc.Second)
	frames := seconds*fps + uint64(tc.Frame)
	if f.DropFrame() {
		drop := fps / 15
		minutes := uint64(tc.Hour)*60 + uint64(tc.Minute)
		dropped := drop * (minutes - minutes/10)
		if dropped > frames {
			return 0
		}
		frames -= dropped
	}
	return frames
}

// Duration returns the wall-clock offset of tc from zero at rate f. Offsets
// beyond the range of time.Duration saturate at math.MaxInt64.
func (tc TimeCode) Duration(f TimeCodeFormat) time.Duration {
	if !f.IsValid() {
		return 0
	}
	return framesToDuration(tc.FrameCount(f), f)
}

func framesToDuration(frames uint64, f TimeCodeFormat) time.Duration {
	num, den := f.rational()
	scaled := frames * den
	secs := scaled / num
	rem := scaled % num
	if secs > math.MaxInt64/uint64(time.Second) {
		return math.MaxInt64
	}
	ns := secs*uint64(time.Second) + rem*uint64(time.Second)/num
	if ns > math.MaxInt64 {
		return math.MaxInt64
	}
	return time.Duration(ns)
}

func (tc TimeCode) MarshalText() ([]byte, error) {
	return []byte(tc.String()), nil
}

// UnmarshalText accepts the H:M:S:F input form and, for round trips, the
// canonical H:M:S;F form.
func (tc *TimeCode) UnmarshalText(b []byte) error {
	s := bytes.Clone(b)
	if i := bytes.LastIndexByte(s, ';'); i >= 0 {
		s[i] = ':'
	}
	v, err := ParseTimeCode(string(s))
	if err != nil {
		return err
	}
	*tc = v
	return nil
}

