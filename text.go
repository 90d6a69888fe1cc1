package mcc

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// normalizeText converts raw file bytes to UTF-8 text. A UTF-8 byte order
// mark is dropped; UTF-16 input is accepted only with a byte order mark.
func normalizeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidText, err)
		}
		data = out
	}
	data = bytes.TrimPrefix(data, bomUTF8)
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: input is not valid UTF-8", ErrInvalidText)
	}
	return string(data), nil
}
