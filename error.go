// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jload

import "fmt"

// errorTextLen is the capacity of a composed error message. A message that
// would exceed it is truncated rather than overflowing.
const errorTextLen = 160

// contextLen is the maximum number of saved input bytes quoted in an error
// message as context.
const contextLen = 20

// An Error describes a failure to decode a JSON document, locating the
// failure within its input.
//
// Line is 1-based; Column is 0-based and counted in code points rather than
// bytes. Position is the byte offset from the start of the input. An error
// reported before scanning begins, such as an argument error, carries Line
// and Column -1 and Position 0.
type Error struct {
	Source   string // a label for the input, e.g. "<string>" or a file path
	Line     int
	Column   int
	Position int64
	Message  string
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Message)
}

// newError returns an error record for the given source label with its
// position fields at their sentinel values.
func newError(source string) *Error {
	return &Error{Source: source, Line: -1, Column: -1}
}

// truncate bounds s to the message capacity.
func truncate(s string) string {
	if len(s) > errorTextLen {
		return s[:errorTextLen]
	}
	return s
}

// setError formats a message into e with positional context taken from lx.
// lx may be nil when no scan is in progress, in which case the position
// fields keep their sentinels. A nil e discards the message. The first
// message set wins: once e carries a message, later calls are no-ops, so
// the error surfaced to the caller is the first one encountered.
func setError(e *Error, lx *lexer, format string, args ...any) {
	if e == nil || e.Message != "" {
		return
	}
	text := truncate(fmt.Sprintf(format, args...))
	if lx == nil {
		e.Message = text
		return
	}

	e.Line = lx.stream.line
	e.Column = lx.stream.column
	e.Position = lx.stream.position

	if len(lx.saved) > 0 {
		n := min(contextLen, len(lx.saved))
		text = truncate(fmt.Sprintf("%s near '%s'", text, lx.saved[:n]))
	} else if lx.stream.state != streamError {
		// Decode errors carry no textual context.
		text = truncate(text + " near end of file")
	}
	e.Message = text
}
