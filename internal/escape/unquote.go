// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of MDF string values.
package escape

import (
	"errors"
	"fmt"

	"go4.org/mem"
)

// Unquote decodes the body of an MDF string value. The input must have the
// enclosing double quotation marks already removed.
//
// The escape sequences \t, \r, \n, \\, and \" are replaced with their
// unescaped equivalents. Unquote reports an error for an unknown or
// incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
		dec = mem.Append(dec, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)

		switch r {
		case 't':
			dec = append(dec, '\t')
		case 'r':
			dec = append(dec, '\r')
		case 'n':
			dec = append(dec, '\n')
		case '\\', '"':
			dec = append(dec, byte(r))
		default:
			return nil, fmt.Errorf(`invalid escape sequence "\%c"`, r)
		}
	}
}
