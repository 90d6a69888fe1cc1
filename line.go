package mcc

import (
	"errors"
	"fmt"
)

// parseLine decodes one caption line of the form H:M:S:F<TAB>payload.
// number is the 1-based source line used in errors.
func parseLine(text string, number int) (Line, error) {
	tc, n, err := scanTimeCode(text)
	if err != nil {
		return Line{}, &ParseError{Line: number, Column: n + 1, Expected: "time code H:M:S:F", Near: snippet(text[n:]), Err: err}
	}
	if n >= len(text) || text[n] != '\t' {
		return Line{}, &ParseError{Line: number, Column: n + 1, Expected: "tab after time code", Near: snippet(text[n:]), Err: ErrInvalidLine}
	}
	data, err := DecodePayload(text[n+1:])
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Line = number
			pe.Column += n + 1
		}
		return Line{}, err
	}
	return Line{Number: number, TimeCode: tc, Data: data}, nil
}

// parseLines decodes every remaining line. Blank lines are skipped.
func parseLines(c *cursor, limits Limits) ([]Line, error) {
	var lines []Line
	for !c.eof() {
		text, _ := c.readLine()
		if text == "" {
			continue
		}
		if len(text) > limits.MaxLineBytes {
			return nil, fmt.Errorf("%w: line %d is %d bytes", ErrLimitExceeded, c.line, len(text))
		}
		if len(lines) >= limits.MaxLines {
			return nil, fmt.Errorf("%w: more than %d caption lines", ErrLimitExceeded, limits.MaxLines)
		}
		l, err := parseLine(text, c.line)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}
