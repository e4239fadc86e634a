// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package mdf implements a scanner and parser for MDF, a minimal
// configuration data format.
//
// An MDF document is a sequence of name/value pairs. Names are unquoted
// strings starting with a letter or underscore, followed by any number of
// letters, digits, or underscores. Values are any of the following:
//
//   - A double-quoted string, with \t, \r, \n, \\, and \" escapes;
//   - A 64-bit integer (hexadecimal if starting with 0x, octal if starting
//     with a leading 0, otherwise decimal);
//   - A 64-bit float;
//   - A container, started with "{" and ended with "}", holding a new
//     sequence of name/value pairs.
//
// Comments run from "#" to the end of the line. Line endings are
// normalized, so CR, LF, and CRLF each count as a single line break. A value
// without a name of its own takes the name of the value before it, so
// repeated keys can be written once:
//
//	Endpoint {
//	    Host "localhost"
//	    Port 9001 9002 9003    # three objects, all named Port
//	}
//
// # Sources
//
// A Source delivers normalized characters from one of four backing media:
// a named file (Open), an already-open *os.File (OpenFile), a duplicated
// file descriptor (OpenFD), or an in-memory string (OpenString). A Source
// tracks the current line, and retains the first error encountered while
// parsing its contents:
//
//	src, err := mdf.Open("config.mdf")
//	if err != nil {
//	   log.Fatalf("Open failed: %v", err)
//	}
//	defer src.Close()
//
// # Scanning
//
// The Scanner type implements a lexical scanner for MDF. Construct a scanner
// from a Source and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := mdf.NewScanner(src)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other
// error indicates an I/O or lexical error in the input, reported as
// "label:line: detail" where the label names the source.
//
// # Streaming
//
// The Stream type implements an event-driven parser for MDF. The parser
// works by calling methods on a Handler value to report the structure of the
// input. In case of error, parsing is terminated and an error of concrete
// type *mdf.SyntaxError is returned.
//
//	st := mdf.NewStream(src)
//	if err := st.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// A handler that additionally implements CommentHandler receives each "#"
// comment as well; otherwise comments are discarded.
//
// Most callers do not use Stream directly: the ast subpackage provides a
// handler that builds the parsed input into a tree of typed objects.
//
// # Concurrency
//
// A Source and the Scanner or Stream reading it mutate shared state without
// synchronization and must be confined to one goroutine. Parses of distinct
// Sources are independent and may run concurrently.
package mdf
