package mcc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIO                  = errors.New("mcc: read failed")
	ErrParse               = errors.New("mcc: parse failed")
	ErrInvalidHeader       = errors.New("mcc: invalid header")
	ErrUnknownTimeCodeRate = errors.New("mcc: unknown time code rate")
	ErrInvalidTimeCode     = errors.New("mcc: invalid time code")
	ErrInvalidLine         = errors.New("mcc: invalid caption line")
	ErrInvalidPayload      = errors.New("mcc: invalid payload")
	ErrInvalidText         = errors.New("mcc: invalid text encoding")
	ErrLimitExceeded       = errors.New("mcc: limit exceeded")
)

// ParseError describes a grammar violation and where decoding stopped.
//
// Line and Column are 1-based. Column counts bytes from the start of the line.
// Near holds a short snippet of the remaining input at the failure position.
type ParseError struct {
	Line     int
	Column   int
	Expected string
	Near     string
	Err      error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(ErrParse.Error())
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ", column %d", e.Column)
		}
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, ": expected %s", e.Expected)
	}
	if e.Near != "" {
		fmt.Fprintf(&b, " near %q", e.Near)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports every ParseError as ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

const nearLen = 16

func snippet(s string) string {
	if len(s) > nearLen {
		return s[:nearLen] + "..."
	}
	return s
}
