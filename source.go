// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jload

import (
	"bufio"
	"io"
)

// A byteSource yields the bytes of an input document one at a time. It is
// the only capability the stream cursor requires of its input.
type byteSource = io.ByteReader

// A stringSource reads the bytes of a string, treating a NUL byte as end of
// input, matching the convention of a C string.
type stringSource struct {
	s   string
	pos int
}

func (s *stringSource) ReadByte() (byte, error) {
	if s.pos >= len(s.s) || s.s[s.pos] == 0 {
		return 0, io.EOF
	}
	c := s.s[s.pos]
	s.pos++
	return c, nil
}

// newReaderSource adapts an arbitrary io.Reader to a byte source, adding
// buffering if r does not already provide it.
func newReaderSource(r io.Reader) byteSource {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// A ChunkFunc is a pull callback that fills buf with up to len(buf) bytes
// of input and reports the number of bytes written. Returning zero or a
// negative value signals end of input.
type ChunkFunc func(buf []byte) int

// chunkBufSize is the scratch capacity handed to a ChunkFunc per call.
const chunkBufSize = 1024

// A chunkSource reads input a chunk at a time through a ChunkFunc.
type chunkSource struct {
	fn   ChunkFunc
	buf  [chunkBufSize]byte
	fill int
	pos  int
	done bool
}

func (c *chunkSource) ReadByte() (byte, error) {
	if c.pos >= c.fill {
		if c.done {
			return 0, io.EOF
		}
		n := c.fn(c.buf[:])
		if n <= 0 {
			c.done = true
			return 0, io.EOF
		}
		if n > chunkBufSize {
			n = chunkBufSize
		}
		c.fill, c.pos = n, 0
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}
