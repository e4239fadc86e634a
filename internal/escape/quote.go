// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

// Quote encodes a string to escape characters for inclusion in an MDF string
// value. Tab, carriage return, line feed, backslash, and double quotation
// marks are escaped; all other characters are copied through literally.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		switch r {
		case '\t':
			buf = append(buf, '\\', 't')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\\', '"':
			buf = append(buf, '\\', byte(r))
		default:
			var rbuf [utf8.UTFMax]byte
			m := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:m]...)
		}
		src = src.SliceFrom(n)
	}
	return buf
}
