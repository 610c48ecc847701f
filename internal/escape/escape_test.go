// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/jload/internal/escape"
	"go4.org/mem"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"no escapes here", "no escapes here"},
		{`a\"b\\c\/d`, `a"b\c/d`},
		{`\b\f\n\r\t`, "\b\f\n\r\t"},
		{`\u0041\u007A`, "Az"},
		{`\u00e9`, "é"},
		{`\u221A`, "√"},
		{`mixed \u0026 match`, "mixed & match"},

		// A surrogate pair decodes to one code point.
		{`\uD83D\uDE00`, "\U0001F600"},
		{`x\uD83D\uDE00y`, "x\U0001F600y"},

		// Multibyte input outside escapes passes through unchanged.
		{"π\\n√", "π\n√"},
	}
	for _, test := range tests {
		got, err := escape.Unquote(mem.S(test.input))
		if err != nil {
			t.Errorf("Unquote %#q: unexpected error: %v", test.input, err)
			continue
		}
		if string(got) != test.want {
			t.Errorf("Unquote %#q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestUnquoteErrors(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`\uD800`, `invalid Unicode '\uD800'`},
		{`\uD800x`, `invalid Unicode '\uD800'`},
		{`\uD800\n`, `invalid Unicode '\uD800'`},
		{`\uDFFF`, `invalid Unicode '\uDFFF'`},
		{`\uD800\u0041`, `invalid Unicode '\uD800\u0041'`},
		{`\uD800\uD800`, `invalid Unicode '\uD800\uD800'`},
		{`\u0000`, `\u0000 is not allowed`},
	}
	for _, test := range tests {
		got, err := escape.Unquote(mem.S(test.input))
		if err == nil {
			t.Errorf("Unquote %#q: got %#q, want error", test.input, got)
		} else if err.Error() != test.want {
			t.Errorf("Unquote %#q: got error %#q, want %#q", test.input, err, test.want)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"a\"b\\c", `a\"b\\c`},
		{"\b\f\n\r\t", `\b\f\n\r\t`},
		{"\x00\x01\x1f", `\u0000\u0001\u001f`},
		{"solidus / is left alone", "solidus / is left alone"},
		{"π √ \U0001F600", "π √ \U0001F600"},
	}
	for _, test := range tests {
		if got := escape.Quote(mem.S(test.input)); string(got) != test.want {
			t.Errorf("Quote %#q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"ordinary text",
		"with \"quotes\" and \\slashes\\",
		"control \x01\x02 and spacing \t\n",
		"π, √, and \U0001F600 survive both directions",
	}
	for _, input := range inputs {
		q := escape.Quote(mem.S(input))
		got, err := escape.Unquote(mem.B(q))
		if err != nil {
			t.Errorf("Unquote %#q: unexpected error: %v", q, err)
		} else if string(got) != input {
			t.Errorf("Round trip %#q: got %#q", input, got)
		}
	}
}
