// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema describes a program's options as data and checks recorded
// command lines against them.
//
// A schema file lists options and cases. Each option becomes one
// popts.AddOption call; each case is a command line together with what the
// registry is expected to report for it. Files are TOML, YAML or HCL, chosen
// by extension, optionally zstd-compressed (".toml.zst"):
//
//	program = "copyfile"
//
//	[[option]]
//	id = "infile"
//	names = ["-i", "--infile"]
//	default = "--"
//
//	[[case]]
//	name = "reads file"
//	line = "-i in.txt"
//	errors = false
//	[case.values]
//	infile = ["in.txt", "--"]
package schema

import (
	"errors"
	"fmt"

	"github.com/google/shlex"
	"github.com/yeetrun/popts/pkg/popts"
	"tailscale.com/util/set"
)

// File is a decoded schema file.
type File struct {
	// Path is where the file was loaded from, if anywhere.
	Path string `toml:"-" yaml:"-"`

	Program string   `toml:"program" yaml:"program"`
	Options []Option `toml:"option" yaml:"option"`
	Cases   []Case   `toml:"case" yaml:"case"`
}

// Option declares one option.
type Option struct {
	// ID names the option in case expectations. It defaults to the first
	// name.
	ID    string   `toml:"id,omitempty" yaml:"id,omitempty"`
	Names []string `toml:"names" yaml:"names"`
	// Type is a popts.Kind; empty means "string".
	Type        string `toml:"type,omitempty" yaml:"type,omitempty"`
	Default     string `toml:"default,omitempty" yaml:"default,omitempty"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
	Many        bool   `toml:"many,omitempty" yaml:"many,omitempty"`
	Flag        bool   `toml:"flag,omitempty" yaml:"flag,omitempty"`
}

// Case is one command line and its expected outcome. Expectations left
// unset are not checked.
type Case struct {
	Name string `toml:"name" yaml:"name"`
	// Line is the command line after the program name, split like a shell
	// would. Tokens gives the words directly; a case sets at most one of
	// the two, and an empty Tokens list means no arguments.
	Line   string   `toml:"line,omitempty" yaml:"line,omitempty"`
	Tokens []string `toml:"tokens,omitempty" yaml:"tokens,omitempty"`

	Errors     *bool     `toml:"errors" yaml:"errors,omitempty"`
	Duplicates *bool     `toml:"duplicates" yaml:"duplicates,omitempty"`
	Consistent *bool     `toml:"consistent" yaml:"consistent,omitempty"`
	Tail       *[]string `toml:"tail" yaml:"tail,omitempty"`
	// Values maps an option ID or name to its rendered values, default
	// included for single options.
	Values map[string][]string `toml:"values,omitempty" yaml:"values,omitempty"`
}

// Key returns the option's ID, or its first name when it has none.
func (o Option) Key() string {
	if o.ID != "" {
		return o.ID
	}
	if len(o.Names) > 0 {
		return o.Names[0]
	}
	return ""
}

// Spec returns the registration for o.
func (o Option) Spec() popts.Spec {
	s := popts.Spec{
		Names:       o.Names,
		Kind:        popts.Kind(o.Type),
		Default:     o.Default,
		Arity:       popts.Single,
		Flag:        o.Flag,
		Description: o.Description,
	}
	if s.Kind == "" {
		s.Kind = popts.KindString
	}
	if o.Many {
		s.Arity = popts.Many
	}
	return s
}

// CommandLine returns the full token sequence for c, program name first.
func (c Case) CommandLine(program string) ([]string, error) {
	tokens := []string{program}
	if c.Tokens != nil {
		return append(tokens, c.Tokens...), nil
	}
	words, err := shlex.Split(c.Line)
	if err != nil {
		return nil, fmt.Errorf("case %q: splitting line: %w", c.Name, err)
	}
	return append(tokens, words...), nil
}

// Validate checks that the file is usable: every option has names, option
// IDs are unique, and every case has a unique name and at most one of line
// and tokens. Duplicate option names are allowed, since a case may expect
// them.
func (f *File) Validate() error {
	var errs []error
	if f.Program == "" {
		errs = append(errs, errors.New("program is not set"))
	}
	ids := set.Set[string]{}
	for i, o := range f.Options {
		if len(o.Names) == 0 {
			errs = append(errs, fmt.Errorf("option %d (%s): no names", i+1, o.ID))
			continue
		}
		if ids.Contains(o.Key()) {
			errs = append(errs, fmt.Errorf("option %d: duplicate id %q", i+1, o.Key()))
		}
		ids.Add(o.Key())
	}
	names := set.Set[string]{}
	for i, c := range f.Cases {
		switch {
		case c.Name == "":
			errs = append(errs, fmt.Errorf("case %d: no name", i+1))
		case names.Contains(c.Name):
			errs = append(errs, fmt.Errorf("case %d: duplicate name %q", i+1, c.Name))
		}
		names.Add(c.Name)
		if c.Line != "" && c.Tokens != nil {
			errs = append(errs, fmt.Errorf("case %d (%s): line and tokens are mutually exclusive", i+1, c.Name))
		}
	}
	return errors.Join(errs...)
}
