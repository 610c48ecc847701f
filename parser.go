// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jload

import "github.com/creachadair/jload/ast"

// Options is a bit mask of optional relaxations and restrictions of the
// decoder. The zero value is the strict default: the document root must be
// an object or array, duplicate object keys silently keep the last value,
// and the input must end immediately after the document.
type Options uint

const (
	// DecodeAny permits any JSON value at the document root, not only an
	// object or array.
	DecodeAny Options = 1 << iota

	// RejectDuplicates reports an error for a duplicate object key instead
	// of keeping the last value.
	RejectDuplicates

	// DisableEOFCheck permits trailing input after a complete document.
	DisableEOFCheck
)

// parseValue builds the value for the current token, consuming any nested
// structure. On failure it reports into err and returns nil; the first
// error encountered ends the parse, and partial values are discarded.
func parseValue(lx *lexer, opts Options, err *Error) ast.Value {
	switch lx.token {
	case tokString:
		return ast.String(lx.stealString())
	case tokInteger:
		return ast.Int(lx.value.(intValue))
	case tokReal:
		return ast.Real(lx.value.(realValue))
	case tokTrue:
		return ast.Bool(true)
	case tokFalse:
		return ast.Bool(false)
	case tokNull:
		return ast.Null{}
	case tokLBrace:
		return parseObject(lx, opts, err)
	case tokLSquare:
		return parseArray(lx, opts, err)
	case tokInvalid:
		setError(err, lx, "invalid token")
		return nil
	default:
		setError(err, lx, "unexpected token")
		return nil
	}
}

// parseObject consumes the members of an object whose opening brace is the
// current token, through the closing brace.
func parseObject(lx *lexer, opts Options, err *Error) ast.Value {
	obj := new(ast.Object)

	if lx.scan(err) == tokRBrace {
		return obj
	}
	for {
		if lx.token != tokString {
			setError(err, lx, "string or '}' expected")
			return nil
		}
		key := string(lx.stealString())

		if opts&RejectDuplicates != 0 && obj.Find(key) != nil {
			setError(err, lx, "duplicate object key")
			return nil
		}

		if lx.scan(err) != tokColon {
			setError(err, lx, "':' expected")
			return nil
		}

		lx.scan(err)
		value := parseValue(lx, opts, err)
		if value == nil {
			return nil
		}
		obj.Set(key, value)

		if lx.scan(err) != tokComma {
			break
		}
		lx.scan(err)
	}

	if lx.token != tokRBrace {
		setError(err, lx, "'}' expected")
		return nil
	}
	return obj
}

// parseArray consumes the elements of an array whose opening bracket is the
// current token, through the closing bracket.
func parseArray(lx *lexer, opts Options, err *Error) ast.Value {
	arr := new(ast.Array)

	if lx.scan(err) == tokRSquare {
		return arr
	}
	for lx.token != tokEOF {
		elt := parseValue(lx, opts, err)
		if elt == nil {
			return nil
		}
		arr.Values = append(arr.Values, elt)

		if lx.scan(err) != tokComma {
			break
		}
		lx.scan(err)
	}

	if lx.token != tokRSquare {
		setError(err, lx, "']' expected")
		return nil
	}
	return arr
}

// parseDocument drives a complete parse: one value, by default constrained
// to an object or array at the root, by default followed immediately by end
// of input.
func parseDocument(lx *lexer, opts Options, err *Error) ast.Value {
	lx.scan(err)
	if opts&DecodeAny == 0 && lx.token != tokLBrace && lx.token != tokLSquare {
		setError(err, lx, "'[' or '{' expected")
		return nil
	}

	result := parseValue(lx, opts, err)
	if result == nil {
		return nil
	}

	if opts&DisableEOFCheck == 0 {
		if lx.scan(err) != tokEOF {
			setError(err, lx, "end of file expected")
			return nil
		}
	}

	// Record the position even though there was no error, so callers can
	// tell how much input was consumed.
	if err != nil {
		err.Position = lx.stream.position
	}
	return result
}
