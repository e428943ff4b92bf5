// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders popts diagnostics and schema results for people.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/yeetrun/popts/pkg/popts"
	"github.com/yeetrun/popts/pkg/schema"
)

// Mode selects when output is colored.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// ParseMode returns the Mode named by s. An empty s means ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeAlways, ModeNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Enabled decides whether to color output. In auto mode color is used only
// on a terminal, and never when NO_COLOR is set or TERM is empty or dumb.
func Enabled(mode Mode, tty bool) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	if !tty || os.Getenv("NO_COLOR") != "" {
		return false
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

// Printer writes reports to an io.Writer.
type Printer struct {
	w io.Writer

	red, green, yellow, dim, bold *color.Color
}

// NewPrinter returns a Printer writing to w, colored when enabled is true.
// The package-wide color.NoColor setting is not consulted.
func NewPrinter(w io.Writer, enabled bool) *Printer {
	p := &Printer{
		w:      w,
		red:    color.New(color.FgRed),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		dim:    color.New(color.FgHiBlack),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.red, p.green, p.yellow, p.dim, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Diagnostics prints one line per diagnostic, labeled by its kind.
func (p *Printer) Diagnostics(errs []error) {
	for _, err := range errs {
		label, c := p.classify(err)
		fmt.Fprintf(p.w, "%s %v\n", c.Sprintf("%-9s", label), err)
	}
}

func (p *Printer) classify(err error) (string, *color.Color) {
	var (
		dup      *popts.DuplicateNameError
		value    *popts.ValueError
		repeated *popts.RepeatedOptionError
		conflict *popts.ConflictError
		hole     *popts.HoleError
	)
	switch {
	case errors.As(err, &dup):
		return "duplicate", p.red
	case errors.As(err, &conflict):
		return "conflict", p.red
	case errors.As(err, &value):
		return "value", p.yellow
	case errors.As(err, &repeated):
		return "repeated", p.yellow
	case errors.As(err, &hole):
		return "hole", p.dim
	}
	return "error", p.red
}

// Options prints every registered option with its rendered values, then the
// tail.
func (p *Printer) Options(o *popts.Options) {
	defs := o.Definitions()
	heads := make([]string, len(defs))
	width := 0
	for i, opt := range defs {
		heads[i] = strings.Join(opt.Names(), ", ")
		width = max(width, len(heads[i]))
	}
	for i, opt := range defs {
		marker := " "
		if opt.Present() {
			marker = "*"
		}
		fmt.Fprintf(p.w, "%s %-*s  %-8s %s\n", marker, width, heads[i], opt.Kind(), p.bold.Sprint(schema.Quote(opt.Texts())))
	}
	fmt.Fprintf(p.w, "tail: %s\n", p.bold.Sprint(schema.Quote(o.Tail())))
}

// Result prints the outcome of one schema case.
func (p *Printer) Result(file string, r *schema.Result) {
	if r.Passed() {
		fmt.Fprintf(p.w, "%s %s: %s\n", p.green.Sprint("PASS"), file, r.Case.Name)
		return
	}
	fmt.Fprintf(p.w, "%s %s: %s\n", p.red.Sprint("FAIL"), file, r.Case.Name)
	if r.Err != nil {
		fmt.Fprintf(p.w, "    %v\n", r.Err)
		return
	}
	for _, m := range r.Mismatches {
		fmt.Fprintf(p.w, "    %s: got %s, want %s\n", m.Field, p.yellow.Sprint(m.Got), m.Want)
	}
}

// FileError prints a schema file that could not be checked at all.
func (p *Printer) FileError(file string, err error) {
	fmt.Fprintf(p.w, "%s %s\n    %v\n", p.red.Sprint("FAIL"), file, err)
}

// Summary prints the final pass/fail count.
func (p *Printer) Summary(pass, fail int) {
	if fail == 0 {
		fmt.Fprintf(p.w, "%s %d passed\n", p.green.Sprint("ok"), pass)
		return
	}
	fmt.Fprintf(p.w, "%s %d failed, %d passed\n", p.red.Sprint("FAIL"), fail, pass)
}
