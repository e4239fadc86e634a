// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package mdf

import (
	"errors"

	"github.com/creachadair/mdf/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as an MDF string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string {
	return `"` + string(escape.Quote(mem.S(src))) + `"`
}

// Unquote decodes an MDF string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
// Unquote reports an error for an unknown or incomplete escape sequence.
func Unquote(src []byte) ([]byte, error) {
	if len(src) < 2 || src[0] != '"' || src[len(src)-1] != '"' {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.B(src[1 : len(src)-1]))
}
