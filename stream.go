// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jload

import "unicode/utf8"

// Sentinels returned by stream.get in place of a byte value.
const (
	eofInput = -1 // end of input reached
	badUTF8  = -2 // invalid UTF-8 sequence in the input
)

// Internal states of a stream.
const (
	streamOK = iota
	streamEOF
	streamError
)

// A stream is a byte cursor over a byte source. It buffers one UTF-8 unit
// at a time, validating each multi-byte sequence in full before yielding
// any of its bytes, and tracks the line, column, and byte offset of the
// cursor. End of input and decode failures are sticky: once reached, every
// further read returns the same sentinel.
type stream struct {
	src byteSource

	buf  [utf8.UTFMax]byte // raw bytes of the current UTF-8 unit
	fill int               // number of buffered bytes
	next int               // read position within buf

	state   int
	badByte byte // the offending lead byte after a decode failure

	line     int   // current line, 1-based
	column   int   // current column, 0-based, counted in code points
	lastCol  int   // column at the end of the previous line
	position int64 // byte offset from the start of the input
}

func (s *stream) init(src byteSource) {
	s.src = src
	s.state = streamOK
	s.line = 1
}

// get returns the next input byte, or a sentinel. The bytes of a multi-byte
// sequence are returned one at a time, but the whole sequence is buffered
// so that unget can step backward over it and error reporting can recover
// the complete character.
func (s *stream) get() int {
	switch s.state {
	case streamEOF:
		return eofInput
	case streamError:
		return badUTF8
	}

	if s.next == s.fill {
		c, err := s.src.ReadByte()
		if err != nil {
			s.state = streamEOF
			return eofInput
		}
		s.buf[0] = c
		s.fill, s.next = 1, 0

		if c >= 0x80 {
			count := seqLen(c)
			if count == 0 {
				return s.fail(c)
			}
			for i := 1; i < count; i++ {
				cc, err := s.src.ReadByte()
				if err != nil {
					return s.fail(c)
				}
				s.buf[i] = cc
			}
			s.fill = count
			if !utf8.Valid(s.buf[:count]) {
				return s.fail(c)
			}
		}
	}

	c := s.buf[s.next]
	s.next++
	s.position++
	if c == '\n' {
		s.line++
		s.lastCol = s.column
		s.column = 0
	} else if !isContinuation(c) {
		// Columns count code points, so only the first byte of a sequence
		// advances the column.
		s.column++
	}
	return int(c)
}

func (s *stream) fail(c byte) int {
	s.state = streamError
	s.badByte = c
	return badUTF8
}

// unget steps the cursor back over c, which must be the value returned by
// the most recent call to get. Ungetting a sentinel is a no-op.
func (s *stream) unget(c int) {
	if c == eofInput || c == badUTF8 {
		return
	}
	if s.next == 0 || s.buf[s.next-1] != byte(c) {
		panic("unget does not match the last get")
	}
	s.position--
	if c == '\n' {
		s.line--
		s.column = s.lastCol
	} else if !isContinuation(byte(c)) {
		s.column--
	}
	s.next--
}

// drainCached consumes and returns the unread remainder of the buffered
// unit. The lexer uses this to complete an out-of-context UTF-8 sequence so
// that error messages show a whole character instead of a partial byte.
func (s *stream) drainCached() []byte {
	rest := s.buf[s.next:s.fill]
	s.position += int64(len(rest))
	s.next = s.fill
	return rest
}

// seqLen reports the byte length of a UTF-8 sequence whose lead byte is c,
// or 0 if c cannot begin a sequence.
func seqLen(c byte) int {
	switch {
	case c < 0x80:
		return 1
	case c < 0xC0:
		return 0 // continuation byte
	case c < 0xE0:
		return 2
	case c < 0xF0:
		return 3
	case c < 0xF8:
		return 4
	}
	return 0
}

func isContinuation(c byte) bool { return c >= 0x80 && c < 0xC0 }
