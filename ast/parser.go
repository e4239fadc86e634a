// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/creachadair/mdf"
)

// Parse parses the contents of src and returns the root of the resulting
// object sequence. The root may be nil without error if the input held
// nothing but whitespace and comments.
//
// On failure Parse returns a nil root and an error of concrete type
// [*mdf.SyntaxError], which src also retains for later inspection; no
// partially-built tree survives. Parse resets the line counter of src, and a
// source should not be parsed more than once.
func Parse(src *mdf.Source) (*Object, error) {
	return ParseStream(mdf.NewStream(src))
}

// ParseStream is like [Parse], but reads from a Stream the caller has
// configured (for example with a different escape variant or nesting limit).
func ParseStream(st *mdf.Stream) (*Object, error) {
	h := &parseHandler{stk: make([]frame, 1)}
	if err := st.Parse(h); err != nil {
		return nil, err
	}
	return h.stk[0].root, nil
}

// A frame tracks the object sequence under construction at one nesting
// level. The pending name, once set, is consumed by the next object emitted
// into the same sequence.
type frame struct {
	owner      *Object // container owning this sequence; nil at the top level
	root, last *Object // head and tail of the sequence built so far
	name       string  // pending name awaiting its value
	named      bool
}

// A parseHandler implements the mdf.Handler interface to construct object
// trees from MDF input.
type parseHandler struct {
	stk []frame
}

func (h *parseHandler) top() *frame { return &h.stk[len(h.stk)-1] }

// add appends o to the sequence at the current nesting level, resolving its
// name: the pending name if one is set, otherwise the name (or anonymity) of
// the preceding sibling, otherwise none.
func (h *parseHandler) add(o *Object) {
	f := h.top()
	if f.named {
		o.name, o.named = f.name, true
		f.name, f.named = "", false
	} else if f.last != nil {
		o.name, o.named = f.last.name, f.last.named
	}
	if f.last == nil {
		f.root = o
	} else {
		f.last.Next = o
	}
	f.last = o
}

func (h *parseHandler) Name(loc mdf.Anchor) error {
	f := h.top()
	f.name, f.named = string(loc.Text()), true
	return nil
}

func (h *parseHandler) Value(loc mdf.Anchor) error {
	o := &Object{Loc: loc.Location()}
	text := loc.Text()
	switch loc.Token() {
	case mdf.String:
		dec, err := mdf.Unquote(text)
		if err != nil {
			return err
		}
		o.Kind = String
		o.s = string(dec)
	case mdf.Integer:
		// The scanner has already vetted the literal; out-of-range values
		// saturate, matching the integer interpretation at scan time.
		v, err := strconv.ParseInt(string(text), 0, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return err
		}
		o.Kind = Int
		o.i = v
	case mdf.Float:
		v, err := strconv.ParseFloat(string(text), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return err
		}
		o.Kind = Float
		o.f = v
	default:
		return fmt.Errorf("unknown value %v", loc.Token())
	}
	h.add(o)
	return nil
}

func (h *parseHandler) BeginContainer(loc mdf.Anchor) error {
	o := &Object{Kind: Container, Loc: loc.Location()}
	h.add(o)
	h.stk = append(h.stk, frame{owner: o})
	return nil
}

func (h *parseHandler) EndContainer(loc mdf.Anchor) error {
	f := h.top()
	f.owner.c = f.root
	h.stk = h.stk[:len(h.stk)-1]
	return nil
}

func (h *parseHandler) EndOfInput(loc mdf.Anchor) {}
