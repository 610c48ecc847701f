// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jload

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/creachadair/jload/ast"
)

// DecodeSource decodes a single JSON document from src, labelling any error
// with the given source name. It returns the decoded value and the number
// of input bytes consumed. With DisableEOFCheck set, input following the
// document is left unread; the consumed count tells the caller where the
// document ended. A decoding failure is reported as a *Error.
func DecodeSource(src io.ByteReader, label string, opts Options) (ast.Value, int64, error) {
	err := newError(label)
	if src == nil {
		setError(err, nil, "wrong arguments")
		return nil, 0, err
	}

	lx := newLexer(src)
	v := parseDocument(lx, opts, err)
	if v == nil {
		return nil, err.Position, err
	}
	return v, err.Position, nil
}

// DecodeString decodes a JSON document from s. Following the convention of
// a C string, a NUL byte ends the input.
func DecodeString(s string, opts Options) (ast.Value, error) {
	v, _, err := DecodeSource(&stringSource{s: s}, "<string>", opts)
	return v, err
}

// DecodeBytes decodes a JSON document from data, which may contain NUL
// bytes.
func DecodeBytes(data []byte, opts Options) (ast.Value, error) {
	v, _, err := DecodeSource(bytes.NewReader(data), "<buffer>", opts)
	return v, err
}

// Decode decodes a JSON document from r.
func Decode(r io.Reader, opts Options) (ast.Value, error) {
	label := "<stream>"
	if r == os.Stdin {
		label = "<stdin>"
	}
	if r == nil {
		err := newError(label)
		setError(err, nil, "wrong arguments")
		return nil, err
	}
	v, _, err := DecodeSource(newReaderSource(r), label, opts)
	return v, err
}

// DecodeFile decodes a JSON document from the file at path. The file is
// closed before DecodeFile returns.
func DecodeFile(path string, opts Options) (ast.Value, error) {
	f, oerr := os.Open(path)
	if oerr != nil {
		var pe *fs.PathError
		if errors.As(oerr, &pe) {
			oerr = pe.Err // report only the system error text
		}
		err := newError(path)
		setError(err, nil, "unable to open %s: %s", path, oerr)
		return nil, err
	}
	defer f.Close()
	return Decode(f, opts)
}

// DecodeFunc decodes a JSON document pulled from fn, which is called with a
// fresh scratch buffer as often as more input is needed.
func DecodeFunc(fn ChunkFunc, opts Options) (ast.Value, error) {
	if fn == nil {
		err := newError("<callback>")
		setError(err, nil, "wrong arguments")
		return nil, err
	}
	v, _, err := DecodeSource(&chunkSource{fn: fn}, "<callback>", opts)
	return v, err
}
