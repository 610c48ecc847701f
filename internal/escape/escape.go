// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package escape handles decoding and encoding of JSON string escapes.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes the contents of a JSON string literal whose enclosing
// quotation marks have already been removed. The scanner has verified the
// surface form, so every escape sequence is well-formed; Unicode escapes,
// however, may still name invalid code points.
//
// Escape sequences are replaced by their decoded equivalents, re-encoded as
// UTF-8, and a surrogate pair combines into a single code point. Unquote
// reports an error for an unpaired surrogate half and for an escaped NUL,
// which is rejected even though it is structurally legal. The result needs
// at most as many bytes as the input.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())

	var rbuf [utf8.UTFMax]byte
	i := 0
	for i < src.Len() {
		b := src.At(i)
		if b != '\\' {
			dec = append(dec, b)
			i++
			continue
		}

		b = src.At(i + 1)
		i += 2
		if b != 'u' {
			switch b {
			case '"', '\\', '/':
				dec = append(dec, b)
			case 'b':
				dec = append(dec, '\b')
			case 'f':
				dec = append(dec, '\f')
			case 'n':
				dec = append(dec, '\n')
			case 'r':
				dec = append(dec, '\r')
			case 't':
				dec = append(dec, '\t')
			}
			continue
		}

		v := decodeHex4(src, i)
		i += 4
		if v >= 0xD800 && v <= 0xDBFF {
			// A high surrogate must be followed by an escaped low
			// surrogate; together they name one code point above U+FFFF.
			if i+1 < src.Len() && src.At(i) == '\\' && src.At(i+1) == 'u' {
				v2 := decodeHex4(src, i+2)
				i += 6
				if v2 < 0xDC00 || v2 > 0xDFFF {
					return nil, fmt.Errorf(`invalid Unicode '\u%04X\u%04X'`, v, v2)
				}
				v = ((v - 0xD800) << 10) + (v2 - 0xDC00) + 0x10000
			} else {
				return nil, fmt.Errorf(`invalid Unicode '\u%04X'`, v)
			}
		} else if v >= 0xDC00 && v <= 0xDFFF {
			return nil, fmt.Errorf(`invalid Unicode '\u%04X'`, v)
		} else if v == 0 {
			return nil, errors.New(`\u0000 is not allowed`)
		}

		n := utf8.EncodeRune(rbuf[:], rune(v))
		dec = append(dec, rbuf[:n]...)
	}
	return dec, nil
}

// decodeHex4 decodes the four hex digits of src at offset i, already
// validated by the scanner.
func decodeHex4(src mem.RO, i int) int {
	var v int
	for j := i; j < i+4; j++ {
		b := src.At(j)
		v <<= 4
		switch {
		case b >= '0' && b <= '9':
			v += int(b - '0')
		case b >= 'a' && b <= 'f':
			v += int(b-'a') + 10
		default:
			v += int(b-'A') + 10
		}
	}
	return v
}

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src as the contents of a JSON string literal, escaping
// characters as required. The enclosing quotation marks are not added.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	putByte := func(bs ...byte) { buf = append(buf, bs...) }

	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					putByte('\\', b)
				} else {
					putByte('\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
				}
			} else if r == '\\' || r == '"' {
				putByte('\\', byte(r))
			} else {
				putByte(byte(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		var rbuf [utf8.UTFMax]byte
		nb := utf8.EncodeRune(rbuf[:], r)
		buf = append(buf, rbuf[:nb]...)
		src = src.SliceFrom(n)
	}
	return buf
}
