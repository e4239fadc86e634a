// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines the object tree produced by parsing MDF input, and a
// parser that constructs object trees from MDF source.
//
// A parse result is a sequence of objects linked through their Next fields.
// An object of kind Container heads a nested sequence of its own, reached
// through its Children method. Trees are ordinary garbage-collected values;
// there is no explicit release step, and all traversal helpers accept a nil
// root as an empty sequence.
package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/mdf"
)

// Kind identifies the type of value an Object carries.
type Kind int

// Constants defining the valid Kind values.
const (
	String    Kind = iota // a double-quoted string
	Int                   // a 64-bit signed integer
	Float                 // a 64-bit float
	Container             // a container holding a nested object sequence
)

var kindStr = [...]string{
	String:    "string",
	Int:       "int",
	Float:     "float",
	Container: "container",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// An Object is a single name/value node in a parse result.
//
// An object may be anonymous: a name is distinct from an empty name, and an
// object created without an explicit name inherits the name of its
// immediately preceding sibling (if any). The value accessors panic when
// called on an object of the wrong kind; check Kind first when the shape of
// the input is not known.
type Object struct {
	Kind Kind         // the type of the object's value
	Loc  mdf.Location // where the object's value began
	Next *Object      // the next sibling in the same sequence, or nil

	name  string
	named bool

	s string
	i int64
	f float64
	c *Object
}

// Name reports the name of o and whether o has one.
func (o *Object) Name() (string, bool) { return o.name, o.named }

// Text returns the decoded string value of o. It panics if o is not of kind
// String.
func (o *Object) Text() string {
	o.mustKind(String)
	return o.s
}

// Int64 returns the integer value of o. It panics if o is not of kind Int.
func (o *Object) Int64() int64 {
	o.mustKind(Int)
	return o.i
}

// Float64 returns the floating-point value of o. It panics if o is not of
// kind Float.
func (o *Object) Float64() float64 {
	o.mustKind(Float)
	return o.f
}

// Children returns the head of the sequence contained in o, which is nil for
// an empty container. It panics if o is not of kind Container.
func (o *Object) Children() *Object {
	o.mustKind(Container)
	return o.c
}

func (o *Object) mustKind(k Kind) {
	if o.Kind != k {
		panic(fmt.Sprintf("mdf/ast: object is a %v, not a %v", o.Kind, k))
	}
}

// String renders o in the diagnostic dump format: the object's name (or
// "(null)" if it has none) followed by its value, with container contents
// between braces. String values are quoted.
func (o *Object) String() string {
	var sb strings.Builder
	o.dump(&sb)
	return sb.String()
}

func (o *Object) dump(sb *strings.Builder) {
	if o.named {
		sb.WriteString(o.name)
	} else {
		sb.WriteString("(null)")
	}
	sb.WriteByte(' ')
	switch o.Kind {
	case String:
		sb.WriteString(mdf.Quote(o.s))
	case Int:
		sb.WriteString(strconv.FormatInt(o.i, 10))
	case Float:
		sb.WriteString(strconv.FormatFloat(o.f, 'g', -1, 64))
	case Container:
		sb.WriteByte('{')
		for kid := o.c; kid != nil; kid = kid.Next {
			sb.WriteByte(' ')
			kid.dump(sb)
		}
		sb.WriteString(" }")
	}
}

// Format renders the sequence headed by root in the diagnostic dump format,
// one object after another separated by spaces. A nil root renders as the
// empty string.
func Format(root *Object) string {
	var sb strings.Builder
	for o := root; o != nil; o = o.Next {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		o.dump(&sb)
	}
	return sb.String()
}

// Len reports the number of objects in the sequence headed by root, not
// counting the contents of containers. Len of a nil root is 0.
func Len(root *Object) int {
	var n int
	for o := root; o != nil; o = o.Next {
		n++
	}
	return n
}

// At returns the object at 0-based position i in the sequence headed by
// root, or nil if the sequence is shorter than that.
func At(root *Object, i int) *Object {
	o := root
	for ; o != nil && i > 0; o = o.Next {
		i--
	}
	return o
}

// Find returns the first object in the sequence headed by root whose name is
// name, or nil. Objects without a name are never matched.
func Find(root *Object, name string) *Object {
	for o := root; o != nil; o = o.Next {
		if o.named && o.name == name {
			return o
		}
	}
	return nil
}

// Path descends through nested containers along the given names, using Find
// at each level, and returns the object it arrives at. It returns nil if any
// name is missing or if descent reaches a non-container before the names are
// exhausted.
func Path(root *Object, names ...string) *Object {
	o := root
	for i, name := range names {
		if i > 0 {
			if o.Kind != Container {
				return nil
			}
			o = o.c
		}
		if o = Find(o, name); o == nil {
			return nil
		}
	}
	return o
}

// Write renders the sequence headed by root to w as parsable MDF text, one
// name/value pair per line with container contents indented. Inherited names
// are materialized during parsing, so writing a parse result and parsing the
// output yields an equal tree.
func Write(w io.Writer, root *Object) error {
	return writeSeq(w, root, 0)
}

// formatFloat renders f so that re-parsing yields a float, not an integer.
func formatFloat(f float64) string {
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	return text
}

func writeSeq(w io.Writer, root *Object, indent int) error {
	pad := strings.Repeat("  ", indent)
	for o := root; o != nil; o = o.Next {
		var sb strings.Builder
		sb.WriteString(pad)
		if o.named {
			sb.WriteString(o.name)
			sb.WriteByte(' ')
		}
		switch o.Kind {
		case String:
			sb.WriteString(mdf.Quote(o.s))
		case Int:
			sb.WriteString(strconv.FormatInt(o.i, 10))
		case Float:
			sb.WriteString(formatFloat(o.f))
		case Container:
			sb.WriteString("{\n")
			if _, err := io.WriteString(w, sb.String()); err != nil {
				return err
			}
			if err := writeSeq(w, o.c, indent+1); err != nil {
				return err
			}
			if _, err := io.WriteString(w, pad+"}\n"); err != nil {
				return err
			}
			continue
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}
