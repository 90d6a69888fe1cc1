package mcc

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Header tags in the order they appear at the top of an MCC file.
const (
	tagFileFormat      = "File Format="
	tagUUID            = "UUID="
	tagCreationProgram = "Creation Program="
	tagCreationDate    = "Creation Date="
	tagCreationTime    = "Creation Time="
	tagTimeCodeRate    = "Time Code Rate="
)

// Header holds the fixed metadata block of an MCC file. String fields are
// the verbatim remainder of their line after the tag.
type Header struct {
	Format          string
	UUID            string
	CreationProgram string
	CreationDate    string
	CreationTime    string
	TimeCodeFormat  TimeCodeFormat
}

// ParseUUID interprets the UUID field. Decoding never validates it, so files
// with non-standard identifiers still load.
func (h Header) ParseUUID() (uuid.UUID, error) {
	return uuid.Parse(h.UUID)
}

// Line is one decoded caption event.
type Line struct {
	// Number is the 1-based line number in the source text.
	Number   int
	TimeCode TimeCode
	Data     []byte
}

// Hex renders Data as uppercase hex pairs, the plain form of the payload.
func (l Line) Hex() string {
	return strings.ToUpper(hex.EncodeToString(l.Data))
}

// Document is a decoded MCC file. Lines are in file order.
type Document struct {
	Header Header
	Lines  []Line
}

// Len returns the number of caption lines.
func (d *Document) Len() int { return len(d.Lines) }

// Duration returns the time between the first and last caption line at the
// header's rate. It is zero for documents with fewer than two lines.
func (d *Document) Duration() time.Duration {
	if len(d.Lines) < 2 {
		return 0
	}
	f := d.Header.TimeCodeFormat
	first := d.Lines[0].TimeCode.Duration(f)
	last := d.Lines[len(d.Lines)-1].TimeCode.Duration(f)
	if last < first {
		return 0
	}
	return last - first
}
