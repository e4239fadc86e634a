// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package mdf_test

import (
	"testing"

	"github.com/creachadair/mdf"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"a b c", `"a b c"`},
		{"a\tb", `"a\tb"`},
		{"\t\r\n\\", `"\t\r\n\\"`},
		{`say "what"`, `"say \"what\""`},
		{"päron", `"päron"`},
	}
	for _, test := range tests {
		if got := mdf.Quote(test.input); got != test.want {
			t.Errorf("Quote(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{`""`, "", false},
		{`"a b c"`, "a b c", false},
		{`"a\tb"`, "a\tb", false},
		{`"\t\r\n\\\""`, "\t\r\n\\\"", false},

		{``, "", true},          // no quotations
		{`"`, "", true},         // unpaired quotation
		{`abc`, "", true},       // no quotations
		{`"a\xb"`, "", true},    // invalid escape
		{"\"a\\\"", "", true},   // incomplete escape
	}
	for _, test := range tests {
		got, err := mdf.Unquote([]byte(test.input))
		if test.fail {
			if err == nil {
				t.Errorf("Unquote(%#q): got %#q, want error", test.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unquote(%#q): unexpected error: %v", test.input, err)
		} else if string(got) != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	inputs := []string{
		"", "plain", "tab\there", `back\slash`, `"quoted"`,
		"multi\nline\r\nmixed", "unicode £5 ©",
	}
	for _, input := range inputs {
		q := mdf.Quote(input)
		dec, err := mdf.Unquote([]byte(q))
		if err != nil {
			t.Errorf("Unquote(%#q): unexpected error: %v", q, err)
		} else if string(dec) != input {
			t.Errorf("Round trip of %#q: got %#q", input, dec)
		}
	}
}
