// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popts

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"tailscale.com/util/set"
)

// The checks below share one shape: collect diagnostics as typed errors,
// stopping at the first one unless all is set. The Has* queries pass
// all = (w != nil) so that callers without a sink pay for nothing more
// than the answer.

// HasDuplicateNames reports whether any name is registered by more than one
// option. If w is non-nil every duplicated name is written to it, one per
// line.
func (o *Options) HasDuplicateNames(w io.Writer) bool {
	return report(w, o.duplicateNames(w != nil))
}

// HasErrorMatches reports whether any option failed to convert a value or
// lacked one, whether any Single option was matched more than once, and
// whether any token position was claimed twice (for example a value of one
// option that is also the name of another). If w is non-nil every fault is
// written to it, one per line.
func (o *Options) HasErrorMatches(w io.Writer) bool {
	return report(w, o.errorMatches(w != nil))
}

// HasConsistentTail reports whether every unconsumed token comes after the
// last consumed one. An unconsumed token between two consumed tokens is a
// hole; if w is non-nil each hole is written to it, one per line.
func (o *Options) HasConsistentTail(w io.Writer) bool {
	return !report(w, o.holes(w != nil))
}

// Diagnostics returns every problem the three queries would report, as
// *DuplicateNameError, *ValueError, *RepeatedOptionError, *ConflictError and
// *HoleError values, in that order.
func (o *Options) Diagnostics() []error {
	var errs []error
	errs = append(errs, o.duplicateNames(true)...)
	errs = append(errs, o.errorMatches(true)...)
	errs = append(errs, o.holes(true)...)
	return errs
}

// Validate returns Diagnostics joined into one error, or nil.
func (o *Options) Validate() error {
	return errors.Join(o.Diagnostics()...)
}

func report(w io.Writer, errs []error) bool {
	if w != nil {
		for _, err := range errs {
			fmt.Fprintln(w, err)
		}
	}
	return len(errs) > 0
}

func (o *Options) duplicateNames(all bool) []error {
	var errs []error
	seen := set.Set[string]{}
	reported := set.Set[string]{}
	for _, opt := range o.opts {
		for _, name := range opt.names {
			if !seen.Contains(name) {
				seen.Add(name)
				continue
			}
			if reported.Contains(name) {
				continue
			}
			reported.Add(name)
			errs = append(errs, &DuplicateNameError{Name: name})
			if !all {
				return errs
			}
		}
	}
	return errs
}

func (o *Options) errorMatches(all bool) []error {
	n := len(o.tokens)
	var errs []error
	var claims []int
	for _, opt := range o.opts {
		if len(opt.parseErrors) > 0 {
			e := &ValueError{Option: opt.Name()}
			for _, p := range opt.parseErrors {
				e.Matches = append(e.Matches, match(o.tokens, p))
			}
			errs = append(errs, e)
			if !all {
				return errs
			}
		}

		if opt.arity == Single && len(opt.matches) > 1 {
			e := &RepeatedOptionError{Option: opt.Name(), Flag: opt.flag}
			if !opt.flag {
				for _, m := range opt.matches {
					e.Matches = append(e.Matches, match(o.tokens, m))
				}
			}
			errs = append(errs, e)
			if !all {
				return errs
			}
		}

		// Value options claim both the name and the value position, flags
		// only the name. A position claimed twice was read both ways.
		claims = opt.consumed(claims, n)
	}

	slices.Sort(claims)
	for i := 1; i < len(claims); i++ {
		if claims[i] != claims[i-1] || (i > 1 && claims[i-2] == claims[i]) {
			continue
		}
		errs = append(errs, &ConflictError{Position: claims[i], Token: o.tokens[claims[i]]})
		if !all {
			return errs
		}
	}
	return errs
}

func (o *Options) holes(all bool) []error {
	n := len(o.tokens)
	var consumed []int
	for _, opt := range o.opts {
		consumed = opt.consumed(consumed, n)
	}
	slices.Sort(consumed)
	consumed = slices.Compact(consumed)

	var errs []error
	for i := 0; i+1 < len(consumed); i++ {
		next := consumed[i+1]
		for p := consumed[i] + 1; p < next && p < n; p++ {
			errs = append(errs, &HoleError{
				Position:     p,
				Token:        o.tokens[p],
				NextPosition: next,
				Next:         o.tokens[next],
			})
			if !all {
				return errs
			}
		}
	}
	return errs
}
