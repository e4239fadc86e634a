// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package mdf

import (
	"bufio"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/sys/unix"
)

// A Source delivers a normalized stream of characters from a file, an open
// file handle, a duplicated file descriptor, or an in-memory string.  Any
// end-of-line sequence (CR, LF, or CRLF) is collapsed into a single line
// feed, and a line counter is maintained as line feeds are delivered.
//
// A Source supports one character of pushback, and records the first error
// that occurs while parsing its contents. It is not safe for concurrent use;
// callers needing parallelism must use one Source per goroutine.
type Source struct {
	label string
	line  int // current line, 1-based

	r   *bufio.Reader // nil for string-backed sources
	str string        // backing string, if r == nil
	pos int           // read offset into str

	f     *os.File // underlying handle, if any
	owned bool     // whether Close should release f

	pending    rune // one-character pushback slot
	hasPending bool

	err error // first recorded failure, never overwritten
}

// Open opens the named file for reading and returns a Source that reads from
// it. The file name is used as the source label in diagnostics. The returned
// Source owns the open handle; Close releases it.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Source{label: path, line: 1, r: bufio.NewReader(f), f: f, owned: true}, nil
}

// OpenFile returns a Source that reads from the already-open file f.  The
// Source does not take ownership of f: Close does not release it, and the
// caller remains responsible for closing it. Since no file name is available,
// the source label is probed from the underlying medium ("<file>",
// "<device>", "<fifo>", "<socket>", or "<unknown>").
func OpenFile(f *os.File) *Source {
	return &Source{label: sourceLabel(f), line: 1, r: bufio.NewReader(f), f: f}
}

// OpenFD duplicates the file descriptor fd and returns a Source that reads
// from the duplicate. The original descriptor remains open and valid after
// the Source is closed; the duplicate is always released by Close.
func OpenFD(fd int) (*Source, error) {
	nfd, err := unix.Dup(fd)
	if err != nil {
		return nil, err
	}
	f := os.NewFile(uintptr(nfd), "")
	return &Source{label: sourceLabel(f), line: 1, r: bufio.NewReader(f), f: f, owned: true}, nil
}

// OpenString returns a Source that reads from s. No OS resources are
// involved; Close is a no-op. The source label is "<string>".
func OpenString(s string) *Source {
	return &Source{label: "<string>", line: 1, str: s}
}

// Label reports the descriptive label of s used in diagnostics: the file
// name if one was supplied to Open, otherwise a marker for the medium the
// source reads from.
func (s *Source) Label() string { return s.label }

// Line reports the current 1-based line number of s.
func (s *Source) Line() int { return s.line }

// Err returns the first error recorded against s, or nil.  Once set, the
// error is retained until the source is closed; later failures do not
// replace it.
func (s *Source) Err() error { return s.err }

// Close releases the resources held by s. The underlying OS handle is closed
// only if s opened it itself: a handle supplied to OpenFile is left open for
// the caller, while the duplicate made by OpenFD is always closed.
func (s *Source) Close() error {
	if s.owned && s.f != nil {
		err := s.f.Close()
		s.f = nil
		return err
	}
	return nil
}

// ReadChar returns the next logical character of the input, or io.EOF when
// the input is exhausted. A CR or CRLF sequence is delivered as a single
// '\n', and the line counter advances on each '\n' delivered.
func (s *Source) ReadChar() (rune, error) {
	ch, err := s.read()
	if err != nil {
		return 0, err
	}
	if ch == '\r' {
		// Peek past the CR; a following LF is absorbed into it, anything
		// else is pushed back. Either way exactly one '\n' is delivered.
		c2, err := s.read()
		if err == nil && c2 != '\n' {
			s.UnreadChar(c2)
		} else if err != nil && err != io.EOF {
			return 0, err
		}
		ch = '\n'
	}
	if ch == '\n' {
		s.line++
	}
	return ch, nil
}

// UnreadChar returns ch to the front of the input, decrementing the line
// counter if ch is a line feed. At most one character can be pending; it is
// an error (reported by panic) to push back two characters without an
// intervening read.
//
// For a string-backed source the pushback is a logical rewind: when ch
// matches the character already at the rewound position the read offset
// moves back, and the immutable backing string is never modified.
func (s *Source) UnreadChar(ch rune) {
	if s.hasPending {
		panic("mdf: UnreadChar called twice without a read")
	}
	if ch == '\n' {
		s.line--
	}
	if s.r == nil && s.pos > 0 {
		if prev, n := utf8.DecodeLastRuneInString(s.str[:s.pos]); prev == ch {
			s.pos -= n
			return
		}
	}
	s.pending, s.hasPending = ch, true
}

// read returns the next raw character, honoring the pushback slot.
func (s *Source) read() (rune, error) {
	if s.hasPending {
		s.hasPending = false
		return s.pending, nil
	}
	if s.r == nil {
		if s.pos >= len(s.str) {
			return 0, io.EOF
		}
		ch, n := utf8.DecodeRuneInString(s.str[s.pos:])
		s.pos += n
		return ch, nil
	}
	ch, _, err := s.r.ReadRune()
	return ch, err
}

// setErr records err as the source's failure unless one is already set, and
// returns the retained error.
func (s *Source) setErr(err error) error {
	if s.err == nil {
		s.err = err
	}
	return s.err
}

// resetLine rewinds the line counter for a fresh top-level parse.
func (s *Source) resetLine() { s.line = 1 }

// sourceLabel probes the medium behind f for use as a diagnostic label when
// no explicit file name is available.
func sourceLabel(f *os.File) string {
	fi, err := f.Stat()
	if err != nil {
		return "<unknown>"
	}
	switch mode := fi.Mode(); {
	case mode.IsRegular():
		return "<file>"
	case mode&os.ModeDevice != 0:
		return "<device>"
	case mode&os.ModeNamedPipe != 0:
		return "<fifo>"
	case mode&os.ModeSocket != 0:
		return "<socket>"
	default:
		return "<unknown>"
	}
}
