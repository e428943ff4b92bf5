// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popts

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned when an option cannot be registered at all.
var (
	ErrNoNames     = errors.New("option has no names")
	ErrUnknownKind = errors.New("unknown option kind")
	ErrBadDefault  = errors.New("invalid default value")
	ErrBadArity    = errors.New("invalid arity")
)

// Match is one recorded match as seen by a diagnostic.
type Match struct {
	Position int
	Token    string
	// Missing is set when the option's name was the last token, so there
	// is no token at Position.
	Missing bool
}

func (m Match) quoted() string {
	if m.Missing {
		return "<null>"
	}
	return "'" + m.Token + "'"
}

// DuplicateNameError reports a name registered by more than one option.
// It is returned by AddOption for the later registration and is also one of
// the diagnostics collected by HasDuplicateNames.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate name: %s", e.Name)
}

// ValueError reports the matches of one option whose value could not be
// converted, or whose name was the final token.
type ValueError struct {
	Option  string // first name of the option
	Matches []Match
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("error matches for option '%s': %s", e.Option, quoteList(e.Matches))
}

// RepeatedOptionError reports a single-valued option supplied more than once.
type RepeatedOptionError struct {
	Option string
	Flag   bool
	// Matches holds every supplied value. It is empty for flags.
	Matches []Match
}

func (e *RepeatedOptionError) Error() string {
	if e.Flag {
		return fmt.Sprintf("multiple matches for single option '%s'", e.Option)
	}
	return fmt.Sprintf("multiple matches for single option '%s': %s", e.Option, quoteList(e.Matches))
}

// ConflictError reports a token position claimed twice, typically a value
// of one option that is also the name of another.
type ConflictError struct {
	Position int
	Token    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("name consumed as argument before: '%s'", e.Token)
}

// HoleError reports an unparsed token sitting between two parsed tokens.
type HoleError struct {
	Position int
	Token    string
	// NextPosition and Next identify the first parsed token after the hole.
	NextPosition int
	Next         string
}

func (e *HoleError) Error() string {
	return fmt.Sprintf("unparsed argument '%s' before parsed '%s'", e.Token, e.Next)
}

func quoteList(matches []Match) string {
	quoted := make([]string, len(matches))
	for i, m := range matches {
		quoted[i] = m.quoted()
	}
	return strings.Join(quoted, ", ")
}
