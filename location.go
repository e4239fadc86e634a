// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package mdf

import "fmt"

// A Location describes where a token or object began in source text.
// Lines are numbered starting from 1. The line of a numeric literal is
// pinned to the line its first character occurred on, even when scanning
// consumed a line break while probing for the end of the number.
type Location struct {
	Source string // label of the originating source
	Line   int    // line number, 1-based
}

func (loc Location) String() string { return fmt.Sprintf("%s:%d", loc.Source, loc.Line) }
