// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popts

import (
	"slices"
)

// Arity says how many effective values an option has.
type Arity int

const (
	// Single options have exactly one effective value: the first match, or
	// the default when there is none.
	Single Arity = iota + 1
	// Many options collect every match in discovery order.
	Many
)

func (a Arity) String() string {
	switch a {
	case Single:
		return "single"
	case Many:
		return "many"
	}
	return "unknown"
}

// Option is one registered option definition together with the outcome of
// matching it against the registry's tokens. Options are created by an
// Options registry and are read-only for callers.
type Option struct {
	names       []string
	description string
	arity       Arity
	flag        bool
	conv        Converter
	def         any
	defText     string

	// Positions are indices into the registry's tokens. A match is one past
	// the matched name: the value position for value options. parseErrors
	// is a subset of matches; len(tokens) marks a name with nothing after it.
	matches     []int
	parseErrors []int
	values      []any
}

// Name returns the first name, used when reporting.
func (o *Option) Name() string { return o.names[0] }

// Names returns all aliases in declaration order.
func (o *Option) Names() []string { return slices.Clone(o.names) }

func (o *Option) Description() string { return o.description }
func (o *Option) Arity() Arity        { return o.arity }
func (o *Option) IsFlag() bool        { return o.flag }
func (o *Option) Kind() Kind          { return o.conv.Kind() }

// Default returns the default value and its rendered text.
func (o *Option) Default() (any, string) { return o.def, o.defText }

// DefaultText returns the rendered default value.
func (o *Option) DefaultText() string { return o.defText }

// Matches returns the recorded match positions.
func (o *Option) Matches() []int { return slices.Clone(o.matches) }

// ParseErrors returns the match positions that did not yield a value.
func (o *Option) ParseErrors() []int { return slices.Clone(o.parseErrors) }

// Present reports whether any of the option's names appeared.
func (o *Option) Present() bool { return len(o.matches) > 0 }

// Values returns the converted values in discovery order. For Single
// options the default is the last element, so Values()[0] is always the
// effective value.
func (o *Option) Values() []any { return slices.Clone(o.values) }

// Value returns the effective value of a Single option, or the first value
// of a Many option. ok is false for a Many option with no values.
func (o *Option) Value() (v any, ok bool) {
	if len(o.values) == 0 {
		return nil, false
	}
	return o.values[0], true
}

// Texts returns Values rendered through the option's converter.
func (o *Option) Texts() []string {
	out := make([]string, len(o.values))
	for i, v := range o.values {
		out[i] = o.conv.RenderValue(v)
	}
	return out
}

func (o *Option) hasName(token string) bool {
	return slices.Contains(o.names, token)
}

// parseMatches records one past every position from 1 on that holds one of
// the option's names. Scanning resumes right after the name, so a value
// token that is itself a name of this option is matched again.
func (o *Option) parseMatches(tokens []string) int {
	o.matches = o.matches[:0]
	for i := 1; i < len(tokens); i++ {
		if o.hasName(tokens[i]) {
			o.matches = append(o.matches, i+1)
		}
	}
	return len(o.matches)
}

// parseArguments scans tokens and converts the matches.
func (o *Option) parseArguments(tokens []string) {
	o.parseMatches(tokens)

	o.values = o.values[:0]
	o.parseErrors = o.parseErrors[:0]

	if o.flag {
		for range o.matches {
			o.values = append(o.values, o.conv.FlagValue())
		}
	} else {
		for _, m := range o.matches {
			if m >= len(tokens) {
				o.parseErrors = append(o.parseErrors, m)
				continue
			}
			v, ok := o.conv.ParseText(tokens[m])
			if !ok {
				o.parseErrors = append(o.parseErrors, m)
				continue
			}
			o.values = append(o.values, v)
		}
	}

	if o.arity == Single {
		o.values = append(o.values, o.def)
	}
}

// consumed appends every token position the option used: the name of each
// match and, for value options, the value when there is one.
func (o *Option) consumed(dst []int, n int) []int {
	for _, m := range o.matches {
		dst = append(dst, m-1)
		if !o.flag && m < n {
			dst = append(dst, m)
		}
	}
	return dst
}

// lastConsumed returns the highest position the option used.
func (o *Option) lastConsumed(n int) (int, bool) {
	if len(o.matches) == 0 {
		return 0, false
	}
	m := o.matches[len(o.matches)-1]
	if o.flag || m >= n {
		return m - 1, true
	}
	return m, true
}

// match builds the diagnostic view of position p.
func match(tokens []string, p int) Match {
	if p >= len(tokens) {
		return Match{Position: p, Missing: true}
	}
	return Match{Position: p, Token: tokens[p]}
}
