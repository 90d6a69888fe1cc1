package mcc

import (
	"fmt"
	"strings"
)

// cursor walks the decoded text line by line. The text itself is never
// modified; every read returns a view into it.
type cursor struct {
	text string
	pos  int
	line int // number of the most recently read line
}

func (c *cursor) eof() bool { return c.pos >= len(c.text) }

// peekLine returns the next line without its line ending and reports whether
// a line ending followed it.
func (c *cursor) peekLine() (line string, next int, terminated bool) {
	rest := c.text[c.pos:]
	i := strings.IndexByte(rest, '\n')
	if i < 0 {
		return rest, len(c.text), false
	}
	line = rest[:i]
	if strings.HasSuffix(line, "\r") {
		line = line[:len(line)-1]
	}
	return line, c.pos + i + 1, true
}

func (c *cursor) readLine() (string, bool) {
	line, next, terminated := c.peekLine()
	c.pos = next
	c.line++
	return line, terminated
}

func parseHeader(c *cursor) (Header, error) {
	var h Header
	var err error
	if h.Format, err = headerField(c, tagFileFormat); err != nil {
		return Header{}, err
	}
	skipComments(c)
	if h.UUID, err = headerField(c, tagUUID); err != nil {
		return Header{}, err
	}
	if h.CreationProgram, err = headerField(c, tagCreationProgram); err != nil {
		return Header{}, err
	}
	if h.CreationDate, err = headerField(c, tagCreationDate); err != nil {
		return Header{}, err
	}
	if h.CreationTime, err = headerField(c, tagCreationTime); err != nil {
		return Header{}, err
	}
	rate, err := headerField(c, tagTimeCodeRate)
	if err != nil {
		return Header{}, err
	}
	if h.TimeCodeFormat, err = parseRateToken(rate, c.line); err != nil {
		return Header{}, err
	}
	return h, nil
}

// headerField reads the next line, which must start with tag and end with a
// line ending, and returns the rest of the line verbatim.
func headerField(c *cursor, tag string) (string, error) {
	expected := fmt.Sprintf("%q line", tag)
	if c.eof() {
		return "", &ParseError{Line: c.line + 1, Expected: expected, Err: ErrInvalidHeader}
	}
	line, terminated := c.readLine()
	value, ok := strings.CutPrefix(line, tag)
	if !ok {
		return "", &ParseError{Line: c.line, Column: 1, Expected: expected, Near: snippet(line), Err: ErrInvalidHeader}
	}
	if !terminated {
		return "", &ParseError{Line: c.line, Column: len(line) + 1, Expected: "line ending", Err: ErrInvalidHeader}
	}
	return value, nil
}

// skipComments discards blank lines and lines starting with "//".
func skipComments(c *cursor) {
	for !c.eof() {
		line, next, terminated := c.peekLine()
		if !strings.HasPrefix(line, "//") && !(line == "" && terminated) {
			return
		}
		c.pos = next
		c.line++
	}
}

func parseRateToken(token string, line int) (TimeCodeFormat, error) {
	col := len(tagTimeCodeRate) + 1
	if token == "" {
		return 0, &ParseError{Line: line, Column: col, Expected: "time code rate", Err: ErrInvalidHeader}
	}
	for i := 0; i < len(token); i++ {
		ch := token[i]
		if (ch < '0' || ch > '9') && ch != 'D' && ch != 'F' {
			return 0, &ParseError{Line: line, Column: col + i, Expected: "time code rate", Near: snippet(token[i:]), Err: ErrInvalidHeader}
		}
	}
	f, ok := ParseTimeCodeFormat(token)
	if !ok {
		return 0, &ParseError{Line: line, Column: col, Expected: "one of 24, 25, 30, 30DF, 50, 60, 60DF", Near: token, Err: ErrUnknownTimeCodeRate}
	}
	return f, nil
}
