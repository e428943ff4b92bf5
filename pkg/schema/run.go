// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/yeetrun/popts/pkg/popts"
	"golang.org/x/sync/errgroup"
)

// Build registers every option of f against tokens. convs are made available
// in addition to the built-in kinds.
//
// Options that cannot be registered (no names, unknown type, bad default)
// are reported in the returned error; the registry is still returned with
// the remaining options. Duplicate names are not errors here, they are left
// for Options.HasDuplicateNames.
func (f *File) Build(tokens []string, convs popts.Converters) (*popts.Options, error) {
	o := popts.New(tokens)
	for _, conv := range convs {
		o.RegisterConverter(conv)
	}
	var errs []error
	for _, opt := range f.Options {
		_, err := o.AddOption(opt.Spec())
		var dup *popts.DuplicateNameError
		if err != nil && !errors.As(err, &dup) {
			errs = append(errs, fmt.Errorf("option %s: %w", opt.Key(), err))
		}
	}
	return o, errors.Join(errs...)
}

// Lookup returns the option registered for key, an option ID or any of its
// names.
func (f *File) Lookup(o *popts.Options, key string) *popts.Option {
	for _, opt := range f.Options {
		if opt.ID == key && len(opt.Names) > 0 {
			return o.Lookup(opt.Names[0])
		}
	}
	return o.Lookup(key)
}

// Mismatch is one expectation a case did not meet.
type Mismatch struct {
	Field string
	Want  string
	Got   string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: got %s, want %s", m.Field, m.Got, m.Want)
}

// Quote renders ss as a bracketed list of Go-quoted strings, the form used
// for token lists in mismatches and reports.
func Quote(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(q, " ") + "]"
}

// Result is the outcome of running one case.
type Result struct {
	Case    Case
	Tokens  []string
	Options *popts.Options
	// Err is set when the case could not be evaluated at all.
	Err        error
	Mismatches []Mismatch
}

// Passed reports whether the case was evaluated and met every expectation.
func (r *Result) Passed() bool {
	return r.Err == nil && len(r.Mismatches) == 0
}

// Run evaluates one case.
func (f *File) Run(c Case, convs popts.Converters) *Result {
	r := &Result{Case: c}
	tokens, err := c.CommandLine(f.Program)
	if err != nil {
		r.Err = err
		return r
	}
	r.Tokens = tokens
	o, err := f.Build(tokens, convs)
	r.Options = o
	if err != nil {
		r.Err = err
		return r
	}

	checkBool := func(field string, want *bool, got bool) {
		if want != nil && *want != got {
			r.Mismatches = append(r.Mismatches, Mismatch{Field: field, Want: fmt.Sprint(*want), Got: fmt.Sprint(got)})
		}
	}
	checkBool("errors", c.Errors, o.HasErrorMatches(nil))
	checkBool("duplicates", c.Duplicates, o.HasDuplicateNames(nil))
	checkBool("consistent", c.Consistent, o.HasConsistentTail(nil))

	if c.Tail != nil {
		if got := o.Tail(); !slices.Equal(got, *c.Tail) {
			r.Mismatches = append(r.Mismatches, Mismatch{Field: "tail", Want: Quote(*c.Tail), Got: Quote(got)})
		}
	}

	keys := make([]string, 0, len(c.Values))
	for k := range c.Values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		want := c.Values[k]
		field := "values[" + k + "]"
		opt := f.Lookup(o, k)
		if opt == nil {
			r.Mismatches = append(r.Mismatches, Mismatch{Field: field, Want: Quote(want), Got: "no such option"})
			continue
		}
		if got := opt.Texts(); !slices.Equal(got, want) {
			r.Mismatches = append(r.Mismatches, Mismatch{Field: field, Want: Quote(want), Got: Quote(got)})
		}
	}
	return r
}

// RunAll evaluates every case of f concurrently and returns the results in
// case order. It stops early only when ctx is done.
func (f *File) RunAll(ctx context.Context, convs popts.Converters) ([]*Result, error) {
	results := make([]*Result, len(f.Cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range f.Cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = f.Run(c, convs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
