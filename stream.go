// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package mdf

import (
	"fmt"
	"io"
)

// An Anchor represents a location in source text. The methods of an Anchor
// report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() []byte       // Returns a view of the raw (undecoded) text of the anchor
	Copy() []byte       // Returns a copy of the raw text of the anchor
	Location() Location // Returns the location at which the anchor began
}

// A Handler handles events from parsing an input stream. If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures containers are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new container, whose open brace is at loc. Any name preceding
	// the brace was reported by an earlier Name event and belongs to the
	// container itself, not to its first element.
	BeginContainer(loc Anchor) error

	// End the most-recently-opened container, whose close brace is at loc.
	EndContainer(loc Anchor) error

	// Report a name at the given location. The next Value or BeginContainer
	// event carries the value this name belongs to.
	Name(loc Anchor) error

	// Report a scalar value at the given location. The type of the value can
	// be recovered from the token. String tokens are quoted; see Unquote.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// CommentHandler is an optional interface that a Handler may implement to
// observe comment tokens. If a handler implements this method, Comment is
// called for each "#" comment in the input, including its leading "#" and
// trailing newline (if present). Otherwise comments are silently discarded.
type CommentHandler interface {
	Comment(loc Anchor)
}

// defaultMaxDepth bounds container nesting so that adversarial inputs
// cannot exhaust the goroutine stack through parser recursion.
const defaultMaxDepth = 1000

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
type Stream struct {
	s        *Scanner
	maxDepth int
}

// NewStream constructs a new Stream that consumes input from src.
func NewStream(src *Source) *Stream {
	return &Stream{s: NewScanner(src), maxDepth: defaultMaxDepth}
}

// NewStreamWithScanner constructs a new Stream that consumes input from s.
func NewStreamWithScanner(s *Scanner) *Stream {
	return &Stream{s: s, maxDepth: defaultMaxDepth}
}

// AllowQuoteEscape configures the scanner associated with s to accept (true)
// or reject (false) the \" escape inside string values.
func (s *Stream) AllowQuoteEscape(ok bool) { s.s.AllowQuoteEscape(ok) }

// SetMaxDepth sets the maximum container nesting depth s will accept.
// Values less than 1 reset the default.
func (s *Stream) SetMaxDepth(n int) {
	if n < 1 {
		n = defaultMaxDepth
	}
	s.maxDepth = n
}

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses the input stream and delivers events to h until either an
// error occurs or the input is exhausted. The source's line counter is reset
// before parsing begins. In case of a syntax error, the returned error has
// type [*SyntaxError] and is also retained by the Source.
func (s *Stream) Parse(h Handler) (err error) {
	defer s.recoverParseError(&err)

	if _, ok := h.(CommentHandler); ok {
		s.s.KeepComments(true)
	}
	s.s.src.resetLine()
	s.parseSequence(h, 0)
	h.EndOfInput(s.s)
	return nil
}

// parseSequence consumes name/value pairs until the sequence ends: at the
// matching close brace for depth > 0, or at end of input for depth 0.
func (s *Stream) parseSequence(h Handler, depth int) {
	for {
		if err := s.nextToken(h); err == io.EOF {
			if depth > 0 {
				s.syntaxError("unexpected end of file")
			}
			return
		} else if err != nil {
			s.propagate(err)
		}

		switch tok := s.s.Token(); tok {
		case Name:
			s.checkError(h.Name(s.s))
		case String, Integer, Float:
			s.checkError(h.Value(s.s))
		case LBrace:
			if depth+1 > s.maxDepth {
				s.syntaxError("containers nested deeper than %d levels", s.maxDepth)
			}
			s.checkError(h.BeginContainer(s.s))
			s.parseSequence(h, depth+1)
			s.checkError(h.EndContainer(s.s))
		case RBrace:
			if depth == 0 {
				s.syntaxError("unbalanced '}'")
			}
			return
		default:
			s.syntaxError("unknown token %v", tok)
		}
	}
}

func (s *Stream) nextToken(h Handler) error {
	for {
		if err := s.s.Next(); err != nil {
			return err
		}
		// Comment tokens are reported to the handler if it implements
		// CommentHandler, and discarded either way.
		if s.s.Token() == LineComment {
			if ch, ok := h.(CommentHandler); ok {
				ch.Comment(s.s)
			}
			continue
		}
		return nil
	}
}

// propagate re-raises an error already reported by the scanner.
func (s *Stream) propagate(err error) {
	if serr, ok := err.(*SyntaxError); ok {
		panic(serr)
	}
	s.syntaxError("%v", err)
}

func (s *Stream) syntaxError(msg string, args ...any) {
	err := &SyntaxError{
		Location: Location{Source: s.s.src.Label(), Line: s.s.src.Line()},
		Message:  fmt.Sprintf(msg, args...),
	}
	s.s.src.setErr(err)
	panic(err)
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// SyntaxError is the concrete type of errors reported by the stream parser.
type SyntaxError struct {
	Location Location
	Message  string
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", s.Location, s.Message)
}
