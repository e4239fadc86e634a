// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package mdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is the type of a lexical token in the MDF grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{", opens a container
	RBrace               // right brace "}", closes a container
	Name                 // unquoted name: letter or "_" followed by letters, digits, "_"
	String               // double-quoted string
	Integer              // number: signed integer (decimal, 0x hex, leading-0 octal)
	Float                // number: floating-point
	LineComment          // comment: # ... <LF>
)

var tokenStr = [...]string{
	Invalid:     "invalid token",
	LBrace:      `"{"`,
	RBrace:      `"}"`,
	Name:        "name",
	String:      "string",
	Integer:     "integer",
	Float:       "float",
	LineComment: "line comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from a Source. Each call to Next advances
// the scanner to the next token, or reports an error. Errors are formatted
// as "label:line: detail" and the first one is also retained by the Source.
type Scanner struct {
	src      *Source
	qesc     bool         // allow \" escapes in strings
	comments bool         // emit comment tokens
	buf      bytes.Buffer // current token text (undecoded)
	tok      Token
	tline    int // line on which the current token began
	err      error
}

// NewScanner constructs a new lexical scanner that consumes input from src.
// By default the \" escape is recognized and comment tokens are skipped.
func NewScanner(src *Source) *Scanner {
	return &Scanner{src: src, qesc: true}
}

// AllowQuoteEscape configures the scanner to accept (true) or reject (false)
// the \" escape inside string values. The escape is recognized by default;
// disabling it matches data written for readers that predate it.
func (s *Scanner) AllowQuoteEscape(ok bool) { s.qesc = ok }

// KeepComments configures the scanner to report (true) or silently discard
// (false) comment tokens. Comments run from "#" to the end of the line and
// are discarded by default.
func (s *Scanner) KeepComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	for {
		s.buf.Reset()
		s.tok = Invalid

		ch, err := s.src.ReadChar()
		if err == io.EOF {
			s.err = io.EOF
			return io.EOF
		} else if err != nil {
			return s.fail(s.src.Line(), "%v", err)
		}
		s.tline = s.src.Line()

		switch {
		case ch == '#':
			if err := s.scanComment(ch); err != nil {
				return err
			}
			if s.comments {
				return nil
			}
			continue // comments are discarded, rescan

		case ch == '{':
			s.buf.WriteRune(ch)
			s.tok = LBrace
			return nil

		case ch == '}':
			s.buf.WriteRune(ch)
			s.tok = RBrace
			return nil

		case ch == '"':
			return s.scanString(ch)

		case isNameStart(ch):
			return s.scanName(ch)

		case isNumStart(ch):
			return s.scanNumber(ch)

		case isSpace(ch):
			continue

		default:
			return s.unexpected(ch)
		}
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. String tokens
// include their enclosing quotation marks; use Unquote to decode them.
// The return value is only valid until the next call of Next.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return append([]byte(nil), s.buf.Bytes()...) }

// Location returns the location at which the current token began.
func (s *Scanner) Location() Location {
	return Location{Source: s.src.Label(), Line: s.tline}
}

// scanName accumulates an unquoted name. The terminating character is
// pushed back for the next scan.
func (s *Scanner) scanName(first rune) error {
	s.buf.WriteRune(first)
	for {
		ch, err := s.src.ReadChar()
		if err == io.EOF {
			return s.failEOF()
		} else if err != nil {
			return s.fail(s.src.Line(), "%v", err)
		}
		if isNameStart(ch) || isDigit(ch) {
			s.buf.WriteRune(ch)
		} else if isSpace(ch) || ch == '{' || ch == '}' {
			s.src.UnreadChar(ch)
			s.tok = Name
			return nil
		} else {
			return s.unexpected(ch)
		}
	}
}

// scanString accumulates a quoted string, including the enclosing quotes.
// Escape sequences are validated but left undecoded.
func (s *Scanner) scanString(open rune) error {
	s.buf.WriteRune(open)
	for {
		ch, err := s.src.ReadChar()
		if err == io.EOF {
			return s.failEOF()
		} else if err != nil {
			return s.fail(s.src.Line(), "%v", err)
		}
		switch {
		case ch == open:
			s.buf.WriteRune(ch)
			s.tok = String
			return nil
		case ch == '\\':
			esc, err := s.src.ReadChar()
			if err == io.EOF {
				return s.failEOF()
			} else if err != nil {
				return s.fail(s.src.Line(), "%v", err)
			}
			switch esc {
			case 't', 'r', 'n', '\\':
				// ok
			case '"':
				if !s.qesc {
					return s.fail(s.src.Line(), `invalid escape sequence "\%c"`, esc)
				}
			default:
				return s.fail(s.src.Line(), `invalid escape sequence "\%c"`, esc)
			}
			s.buf.WriteRune(ch)
			s.buf.WriteRune(esc)
		case isPrint(ch):
			s.buf.WriteRune(ch)
		default:
			return s.unexpected(ch)
		}
	}
}

// scanNumber accumulates a numeric literal and classifies it as Integer or
// Float. Anything that can occur in a hexadecimal, octal, decimal, or
// floating-point literal is accepted greedily, and the accumulated text is
// interpreted once a terminator is found.
func (s *Scanner) scanNumber(first rune) error {
	s.buf.WriteRune(first)
	for {
		ch, err := s.src.ReadChar()
		if err == io.EOF {
			return s.interpretNumber()
		} else if err != nil {
			return s.fail(s.src.Line(), "%v", err)
		}
		if isHexDigit(ch) || ch == 'x' || ch == '.' || ch == 'e' || ch == 'E' || ch == '+' || ch == '-' {
			s.buf.WriteRune(ch)
		} else if isSpace(ch) || ch == '{' || ch == '}' {
			s.src.UnreadChar(ch)
			return s.interpretNumber()
		} else {
			return s.unexpected(ch)
		}
	}
}

// interpretNumber resolves the accumulated literal as an integer if possible,
// falling back to floating-point, or reports an unrecognized-value error.
func (s *Scanner) interpretNumber() error {
	text := s.buf.String()
	if !hasBinPrefix(text) {
		if _, err := strconv.ParseInt(text, 0, 64); err == nil || errors.Is(err, strconv.ErrRange) {
			s.tok = Integer
			return nil
		}
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		s.tok = Float
		return nil
	}
	return s.fail(s.tline, "unrecognized value %q", text)
}

// scanComment accumulates a "#" comment through the end of the line.
// The terminating line feed, if present, is included in the token text.
func (s *Scanner) scanComment(first rune) error {
	s.buf.WriteRune(first)
	for {
		ch, err := s.src.ReadChar()
		if err == io.EOF {
			s.tok = LineComment
			return nil
		} else if err != nil {
			return s.fail(s.src.Line(), "%v", err)
		}
		s.buf.WriteRune(ch)
		if ch == '\n' {
			s.tok = LineComment
			return nil
		}
	}
}

func (s *Scanner) fail(line int, msg string, args ...any) error {
	err := &SyntaxError{
		Location: Location{Source: s.src.Label(), Line: line},
		Message:  fmt.Sprintf(msg, args...),
	}
	s.err = err
	s.src.setErr(err)
	return err
}

func (s *Scanner) failEOF() error {
	return s.fail(s.src.Line(), "unexpected end of file")
}

func (s *Scanner) unexpected(ch rune) error {
	return s.fail(s.src.Line(), "unexpected character %q (ascii %d)", ch, ch)
}

func isNameStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isNumStart(ch rune) bool { return ch == '+' || ch == '-' || ch == '.' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\v' || ch == '\f' || ch == '\r'
}

// isPrint reports whether ch may appear literally inside a string value.
func isPrint(ch rune) bool {
	if ch < ' ' || ch == 0x7f {
		return false
	}
	return ch < 0x80 || unicode.IsPrint(ch)
}

// hasBinPrefix reports whether text (after an optional sign) carries a
// binary-literal prefix, which integer parsing must not accept: base
// auto-detection recognizes only 0x hex, leading-0 octal, and decimal.
func hasBinPrefix(text string) bool {
	text = strings.TrimLeft(text, "+-")
	return strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B")
}
