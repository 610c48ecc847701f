// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package jload implements a strict JSON decoder: it converts a stream of
// bytes into a tree of [ast.Value] values, or fails with a precisely
// located syntax error.
//
// # Decoding
//
// Each entry point decodes one complete document from its input:
//
//	v, err := jload.DecodeString(`{"a": [1, 2.5, null]}`, 0)
//	if err != nil {
//	   log.Fatalf("Decode failed: %v", err)
//	}
//	fmt.Println(v.JSON())
//
// DecodeBytes, Decode, DecodeFile, and DecodeFunc read from a byte slice,
// an io.Reader, a file path, and a pull callback respectively. DecodeSource
// is the general form: it accepts any io.ByteReader together with a label
// used to identify the input in error messages, and additionally reports
// the number of bytes consumed.
//
// # Options
//
// The Options bit mask relaxes or tightens the strict defaults. By default
// the document root must be an object or array, duplicate object keys keep
// the last value seen, and the input must end immediately after the
// document:
//
//	v, err := jload.DecodeString(`"bare string"`, jload.DecodeAny)
//
// # Errors
//
// A decoding failure is reported as a [*Error] carrying the source label,
// the 1-based line and 0-based column (counted in code points) where the
// error occurred, the byte offset from the start of input, and a bounded
// message that quotes up to twenty bytes of the offending source text:
//
//	_, err := jload.DecodeString(`{"a": tru}`, 0)
//	// err.Error() == `<string>:1:9: invalid token near 'tru'`
//
// The first error encountered ends the parse; there is no resynchronization
// and no partial result.
//
// The input must be valid UTF-8. An invalid byte sequence stops the decoder
// with an error naming the offending byte, whatever token it occurs in.
package jload
