// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jload

import (
	"strings"
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func newTestStream(input string) *stream {
	s := new(stream)
	s.init(strings.NewReader(input))
	return s
}

func TestStreamGet(t *testing.T) {
	tests := []struct {
		input string
		want  []int
	}{
		{"", []int{eofInput}},
		{"ab", []int{'a', 'b', eofInput}},

		// A multi-byte sequence is returned one byte at a time.
		{"aéb", []int{'a', 0xC3, 0xA9, 'b', eofInput}},
		{"√", []int{0xE2, 0x88, 0x9A, eofInput}},
		{"\U0001F600", []int{0xF0, 0x9F, 0x98, 0x80, eofInput}},

		// Invalid sequences report the lead byte and stick.
		{"\x80", []int{badUTF8, badUTF8}},         // lone continuation byte
		{"\xc3\x28", []int{badUTF8, badUTF8}},     // bad continuation
		{"\xc0\x80", []int{badUTF8}},              // overlong encoding
		{"\xed\xa0\x80", []int{badUTF8}},          // surrogate code point
		{"\xe2\x88", []int{badUTF8}},              // truncated at end of input
		{"a\xff", []int{'a', badUTF8, badUTF8}},   // not a lead byte
		{"x\x80y", []int{'x', badUTF8, badUTF8}},  // sticky, y is unreachable
	}
	for _, test := range tests {
		s := newTestStream(test.input)
		var got []int
		for range test.want {
			got = append(got, s.get())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nBytes: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamPosition(t *testing.T) {
	// Columns count code points; lines advance on newline; the byte offset
	// counts every byte.
	s := newTestStream("aé\nb")

	check := func(label string, line, column int, position int64) {
		t.Helper()
		if s.line != line || s.column != column || s.position != position {
			t.Errorf("%s: got %d:%d offset %d, want %d:%d offset %d",
				label, s.line, s.column, s.position, line, column, position)
		}
	}

	s.get() // a
	check("after a", 1, 1, 1)
	s.get() // lead byte of é
	check("after lead byte", 1, 2, 2)
	s.get() // continuation byte of é
	check("after continuation", 1, 2, 3)

	c := s.get() // newline
	if c != '\n' {
		t.Fatalf("get: got %d, want newline", c)
	}
	check("after newline", 2, 0, 4)

	s.unget(c)
	check("after unget newline", 1, 2, 3)

	s.get() // newline again
	s.get() // b
	check("after b", 2, 1, 5)
}

func TestStreamUnget(t *testing.T) {
	s := newTestStream("ok")

	// Ungetting a sentinel is a no-op.
	s.unget(eofInput)
	s.unget(badUTF8)

	c := s.get()
	s.unget(c)
	if got := s.get(); got != c {
		t.Errorf("get after unget: got %d, want %d", got, c)
	}

	// Ungetting a value other than the last get is a contract violation.
	mtest.MustPanic(t, func() { s.unget('z') })
}

func TestStreamDrainCached(t *testing.T) {
	s := newTestStream("é")

	if c := s.get(); c != 0xC3 {
		t.Fatalf("get: got %#x, want 0xc3", c)
	}
	rest := s.drainCached()
	if diff := cmp.Diff([]byte{0xA9}, rest); diff != "" {
		t.Errorf("Cached bytes: (-want, +got)\n%s", diff)
	}
	if s.position != 2 {
		t.Errorf("Position: got %d, want 2", s.position)
	}
	if c := s.get(); c != eofInput {
		t.Errorf("get after drain: got %d, want end of input", c)
	}
}

func TestStreamBadByte(t *testing.T) {
	s := newTestStream("\xc3\x28")
	if c := s.get(); c != badUTF8 {
		t.Fatalf("get: got %d, want decode error", c)
	}
	if s.badByte != 0xC3 {
		t.Errorf("badByte: got %#x, want 0xc3", s.badByte)
	}
}
