package mcc

// fillerUnit is the three-byte padding triplet repeated by the G..O codes.
var fillerUnit = [3]byte{0xFA, 0x00, 0x00}

// specialCodes maps each escape letter to its byte expansion.
var specialCodes = buildSpecialCodes()

func buildSpecialCodes() map[byte][]byte {
	m := make(map[byte][]byte, 16)
	for i := 0; i < 9; i++ {
		seq := make([]byte, 0, 3*(i+1))
		for j := 0; j <= i; j++ {
			seq = append(seq, fillerUnit[:]...)
		}
		m['G'+byte(i)] = seq
	}
	m['P'] = []byte{0xFB, 0x80, 0x80}
	m['Q'] = []byte{0xFC, 0x80, 0x80}
	m['R'] = []byte{0xFD, 0x80, 0x80}
	m['S'] = []byte{0x96, 0x69}
	m['T'] = []byte{0x61, 0x01}
	m['U'] = []byte{0xE1, 0x00, 0x00, 0x00}
	m['Z'] = []byte{0x00}
	return m
}

// Expansion returns the byte sequence an escape letter stands for, or nil
// if c is not an escape letter. The returned slice must not be modified.
func Expansion(c byte) []byte {
	return specialCodes[c]
}

// DecodePayload converts the text after a caption line's tab into raw bytes.
//
// The payload is a sequence of tokens with no separators. A token is either
// one escape letter (G-U, Z) or two hex digits. Decoding fails with a
// *ParseError wrapping ErrInvalidPayload at the first position where neither
// token form matches, including a lone trailing hex digit.
func DecodePayload(payload string) ([]byte, error) {
	n, err := PayloadLen(payload)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, n)
	for i := 0; i < len(payload); {
		if seq, ok := specialCodes[payload[i]]; ok {
			out = append(out, seq...)
			i++
			continue
		}
		b, _ := hexByte(payload, i)
		out = append(out, b)
		i += 2
	}
	return out, nil
}

// PayloadLen validates payload and returns the number of bytes it decodes to.
func PayloadLen(payload string) (int, error) {
	n := 0
	for i := 0; i < len(payload); {
		if seq, ok := specialCodes[payload[i]]; ok {
			n += len(seq)
			i++
			continue
		}
		if _, ok := hexByte(payload, i); !ok {
			return 0, &ParseError{
				Column:   i + 1,
				Expected: "hex byte or escape letter",
				Near:     snippet(payload[i:]),
				Err:      ErrInvalidPayload,
			}
		}
		n++
		i += 2
	}
	return n, nil
}

func hexByte(s string, i int) (byte, bool) {
	if i+1 >= len(s) {
		return 0, false
	}
	hi, ok1 := hexVal(s[i])
	lo, ok2 := hexVal(s[i+1])
	if !ok1 || !ok2 {
		return 0, false
	}
	return hi<<4 | lo, true
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

