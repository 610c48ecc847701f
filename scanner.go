// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jload

import (
	"errors"
	"math"
	"strconv"

	"github.com/creachadair/jload/internal/escape"
	"go4.org/mem"
)

// A token is the kind of a lexical token in the JSON grammar.
type token int8

// Constants defining the valid token values.
const (
	tokInvalid token = iota // invalid token
	tokEOF                  // end of input
	tokLBrace               // left brace "{"
	tokRBrace               // right brace "}"
	tokLSquare              // left square bracket "["
	tokRSquare              // right square bracket "]"
	tokColon                // colon ":"
	tokComma                // comma ","
	tokString               // quoted string
	tokInteger              // number without fraction or exponent
	tokReal                 // number with fraction and/or exponent
	tokTrue                 // constant: true
	tokFalse                // constant: false
	tokNull                 // constant: null
)

var tokenStr = [...]string{
	tokInvalid: "invalid token",
	tokEOF:     "end of input",
	tokLBrace:  `"{"`,
	tokRBrace:  `"}"`,
	tokLSquare: `"["`,
	tokRSquare: `"]"`,
	tokColon:   `":"`,
	tokComma:   `","`,
	tokString:  "string",
	tokInteger: "integer",
	tokReal:    "real",
	tokTrue:    "true",
	tokFalse:   "false",
	tokNull:    "null",
}

func (t token) String() string {
	if int(t) >= len(tokenStr) {
		return tokenStr[tokInvalid]
	}
	return tokenStr[t]
}

// selfDelim maps a punctuation byte to its token.
func selfDelim(c int) (token, bool) {
	switch c {
	case '{':
		return tokLBrace, true
	case '}':
		return tokRBrace, true
	case '[':
		return tokLSquare, true
	case ']':
		return tokRSquare, true
	case ':':
		return tokColon, true
	case ',':
		return tokComma, true
	}
	return tokInvalid, false
}

// A tokenValue is the decoded payload of a scanned token. Exactly one
// concrete type is meaningful for any given token kind.
type tokenValue interface{ isTokenValue() }

// A stringValue holds the decoded text of a string token, with escape
// sequences resolved and re-encoded as UTF-8.
type stringValue struct{ text []byte }

// An intValue holds the value of an integer token.
type intValue int64

// A realValue holds the value of a real token.
type realValue float64

func (*stringValue) isTokenValue() {}
func (intValue) isTokenValue()     {}
func (realValue) isTokenValue()    {}

// A lexer scans the tokens of a JSON document from a stream cursor. Each
// call to scan advances exactly one token. The decoded payload of the
// current token, if any, is held by the lexer until the next scan or until
// the parser takes ownership of it with stealString.
type lexer struct {
	stream stream
	saved  []byte // raw source text of the current token
	token  token
	value  tokenValue // payload of a string, integer, or real token
}

func newLexer(src byteSource) *lexer {
	lx := new(lexer)
	lx.stream.init(src)
	lx.token = tokInvalid
	return lx
}

// get reads the next input byte, reporting a decode failure into err the
// first time the stream goes bad. Later reads return the sentinel without
// reporting again.
func (lx *lexer) get(err *Error) int {
	wasOK := lx.stream.state == streamOK
	c := lx.stream.get()
	if c == badUTF8 && wasOK {
		setError(err, lx, "unable to decode byte 0x%x", lx.stream.badByte)
	}
	return c
}

func (lx *lexer) save(c int) { lx.saved = append(lx.saved, byte(c)) }

func (lx *lexer) getSave(err *Error) int {
	c := lx.get(err)
	if c != eofInput && c != badUTF8 {
		lx.save(c)
	}
	return c
}

// ungetUnsave reverses the most recent getSave, removing the byte from the
// saved text as well as from the stream. Sentinels are ignored.
func (lx *lexer) ungetUnsave(c int) {
	if c == eofInput || c == badUTF8 {
		return
	}
	lx.stream.unget(c)
	d := lx.saved[len(lx.saved)-1]
	lx.saved = lx.saved[:len(lx.saved)-1]
	if int(d) != c {
		panic("unsave does not match the last save")
	}
}

// stealString transfers ownership of the decoded text of the current string
// token to the caller, leaving the lexer's copy empty. It returns nil if
// the current token is not a string.
func (lx *lexer) stealString() []byte {
	sv, ok := lx.value.(*stringValue)
	if lx.token != tokString || !ok {
		return nil
	}
	text := sv.text
	lx.value = nil
	return text
}

// scan advances to the next token of the input and returns its kind.
func (lx *lexer) scan(err *Error) token {
	lx.saved = lx.saved[:0]
	lx.value = nil

	c := lx.get(err)
	for c == ' ' || c == '\t' || c == '\n' || c == '\r' {
		c = lx.get(err)
	}

	if c == eofInput {
		lx.token = tokEOF
		return lx.token
	} else if c == badUTF8 {
		lx.token = tokInvalid
		return lx.token
	}

	lx.save(c)

	if t, ok := selfDelim(c); ok {
		lx.token = t
	} else if c == '"' {
		lx.scanString(err)
	} else if isDigit(c) || c == '-' {
		lx.scanNumber(c, err)
	} else if isAlpha(c) {
		lx.scanKeyword(err)
	} else {
		// Pull in the rest of the buffered sequence so the error message
		// shows a whole UTF-8 character, not a partial byte.
		lx.saved = append(lx.saved, lx.stream.drainCached()...)
		lx.token = tokInvalid
	}
	return lx.token
}

// scanKeyword consumes a maximal run of letters and classifies it against
// the JSON constants. Eating the whole word, rather than stopping at the
// first mismatch, gives clearer error messages for inputs like "truex".
func (lx *lexer) scanKeyword(err *Error) {
	c := lx.getSave(err)
	for isAlpha(c) {
		c = lx.getSave(err)
	}
	lx.ungetUnsave(c)

	switch string(lx.saved) {
	case "true":
		lx.token = tokTrue
	case "false":
		lx.token = tokFalse
	case "null":
		lx.token = tokNull
	default:
		lx.token = tokInvalid
	}
}

// scanString consumes a string literal. The first pass validates the
// surface form while accumulating the raw text; the second pass decodes the
// escape sequences into the token value.
func (lx *lexer) scanString(err *Error) {
	lx.token = tokInvalid

	c := lx.getSave(err)
	for c != '"' {
		if c == badUTF8 {
			return
		} else if c == eofInput {
			setError(err, lx, "premature end of input")
			return
		} else if c <= 0x1F {
			// Raw control characters are not allowed inside a string.
			lx.ungetUnsave(c)
			if c == '\n' {
				setError(err, lx, "unexpected newline")
			} else {
				setError(err, lx, "control character 0x%x", c)
			}
			return
		} else if c == '\\' {
			c = lx.getSave(err)
			if c == 'u' {
				c = lx.getSave(err)
				for i := 0; i < 4; i++ {
					if !isHexDigit(c) {
						setError(err, lx, "invalid escape")
						return
					}
					c = lx.getSave(err)
				}
			} else if isShortEscape(c) {
				c = lx.getSave(err)
			} else {
				setError(err, lx, "invalid escape")
				return
			}
		} else {
			c = lx.getSave(err)
		}
	}

	// The decoded value needs at most as many bytes as the raw text: every
	// escape form is at least as long as its decoding.
	text, derr := escape.Unquote(mem.B(lx.saved[1 : len(lx.saved)-1]))
	if derr != nil {
		setError(err, lx, "%s", derr)
		return
	}
	lx.value = &stringValue{text: text}
	lx.token = tokString
}

// scanNumber consumes a number literal whose first character is c, a digit
// or a minus sign. A character that ends the literal is ungotten without
// being saved, so later stages see the correct position.
func (lx *lexer) scanNumber(c int, err *Error) {
	lx.token = tokInvalid

	if c == '-' {
		c = lx.getSave(err)
	}

	if c == '0' {
		c = lx.getSave(err)
		if isDigit(c) {
			// Extra leading zeroes are not allowed.
			lx.ungetUnsave(c)
			return
		}
	} else if isDigit(c) {
		c = lx.getSave(err)
		for isDigit(c) {
			c = lx.getSave(err)
		}
	} else {
		lx.ungetUnsave(c)
		return
	}

	if c != '.' && c != 'e' && c != 'E' {
		lx.ungetUnsave(c)

		v, cerr := strconv.ParseInt(string(lx.saved), 10, 64)
		if cerr != nil {
			// The grammar leaves range as the only failure mode.
			if lx.saved[0] == '-' {
				setError(err, lx, "too big negative integer")
			} else {
				setError(err, lx, "too big integer")
			}
			return
		}
		lx.value = intValue(v)
		lx.token = tokInteger
		return
	}

	if c == '.' {
		c = lx.get(err)
		if !isDigit(c) {
			lx.stream.unget(c)
			return
		}
		lx.save(c)

		c = lx.getSave(err)
		for isDigit(c) {
			c = lx.getSave(err)
		}
	}

	if c == 'e' || c == 'E' {
		c = lx.getSave(err)
		if c == '+' || c == '-' {
			c = lx.getSave(err)
		}
		if !isDigit(c) {
			lx.ungetUnsave(c)
			return
		}
		c = lx.getSave(err)
		for isDigit(c) {
			c = lx.getSave(err)
		}
	}

	lx.ungetUnsave(c)

	v, cerr := strconv.ParseFloat(string(lx.saved), 64)
	if cerr != nil {
		if !errors.Is(cerr, strconv.ErrRange) || math.IsInf(v, 0) {
			setError(err, lx, "real number overflow")
			return
		}
		// Underflow is accepted: the nearest representable value, possibly
		// zero, stands in.
	}
	lx.value = realValue(v)
	lx.token = tokReal
}

func isDigit(c int) bool { return c >= '0' && c <= '9' }

func isAlpha(c int) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isHexDigit(c int) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isShortEscape(c int) bool {
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return true
	}
	return false
}
