// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popts

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"tailscale.com/util/mak"
)

// Help flag names registered by WithHelp.
const (
	helpFlagShort = "-h"
	helpFlagLong  = "--help"
)

// Options owns a token sequence and the options registered against it.
//
// Every registration scans the whole sequence immediately; the parsed value
// is available as soon as the registering call returns. Options is not safe
// for concurrent use.
type Options struct {
	tokens []string
	opts   []*Option
	convs  Converters
	index  map[string]int // name -> index into opts of its first registration
	errs   []error
	help   *Option
}

// New returns a registry over a copy of tokens. tokens[0] is the program
// name and is never matched.
func New(tokens []string) *Options {
	return &Options{
		tokens: slices.Clone(tokens),
		convs:  DefaultConverters(),
	}
}

// FromArgs returns a registry over os.Args.
func FromArgs() *Options {
	return New(os.Args)
}

// RegisterConverter makes conv available to AddOption under its kind.
// Registering a built-in kind replaces the built-in converter for later
// registrations, including those made by the typed helpers when conv has
// the matching Go type.
func (o *Options) RegisterConverter(conv Converter) *Options {
	if o.convs == nil {
		o.convs = DefaultConverters()
	}
	o.convs.Register(conv)
	return o
}

// Converter returns the converter registered for k.
func (o *Options) Converter(k Kind) (Converter, bool) {
	return o.convs.Lookup(k)
}

// WithHelp registers -h and --help as a flag. See HelpRequested.
func (o *Options) WithHelp() *Options {
	if o.help == nil {
		o.help, _ = o.add([]string{helpFlagShort, helpFlagLong}, BoolCodec, false, Single, true, "Show this help")
	}
	return o
}

// HelpRequested reports whether WithHelp was called and a help flag appeared.
func (o *Options) HelpRequested() bool {
	return o.help != nil && o.help.Present()
}

// Tokens returns a copy of the token sequence.
func (o *Options) Tokens() []string { return slices.Clone(o.tokens) }

// Definitions returns the registered options in registration order.
func (o *Options) Definitions() []*Option { return slices.Clone(o.opts) }

// Lookup returns the first option registered under name, or nil.
func (o *Options) Lookup(name string) *Option {
	i, ok := o.index[name]
	if !ok {
		return nil
	}
	return o.opts[i]
}

// Err returns every registration error so far, joined. Registration errors
// include duplicate names; see also HasDuplicateNames.
func (o *Options) Err() error {
	return errors.Join(o.errs...)
}

// Spec describes an option for AddOption.
type Spec struct {
	Names []string
	Kind  Kind
	// Default is parsed with the kind's converter. An empty Default means
	// the converter's zero value.
	Default     string
	Arity       Arity // zero means Single
	Flag        bool
	Description string
}

// AddOption registers an option described by s, scans the tokens for it and
// converts its matches.
//
// The option is not registered when s has no names, names an unknown kind,
// has an arity other than Single or Many, or carries a default the converter
// rejects. A *DuplicateNameError is returned
// when one of the names is already taken; in that case the option is still
// registered and scanned, and the duplicate stays visible through Err and
// HasDuplicateNames.
func (o *Options) AddOption(s Spec) (*Option, error) {
	conv, ok := o.convs.Lookup(s.Kind)
	if !ok {
		err := fmt.Errorf("%w %q", ErrUnknownKind, s.Kind)
		o.errs = append(o.errs, err)
		return nil, err
	}
	arity := s.Arity
	if arity == 0 {
		arity = Single
	}
	if arity != Single && arity != Many {
		err := fmt.Errorf("%w %d", ErrBadArity, int(s.Arity))
		o.errs = append(o.errs, err)
		return nil, err
	}
	def := conv.Zero()
	if s.Default != "" {
		v, ok := conv.ParseText(s.Default)
		if !ok {
			err := fmt.Errorf("%w %q for %s option", ErrBadDefault, s.Default, s.Kind)
			o.errs = append(o.errs, err)
			return nil, err
		}
		def = v
	}
	return o.add(s.Names, conv, def, arity, s.Flag, s.Description)
}

func (o *Options) add(names []string, conv Converter, def any, arity Arity, flag bool, desc string) (*Option, error) {
	if len(names) == 0 {
		o.errs = append(o.errs, ErrNoNames)
		return nil, ErrNoNames
	}
	opt := &Option{
		names:       slices.Clone(names),
		description: desc,
		arity:       arity,
		flag:        flag,
		conv:        conv,
		def:         def,
		defText:     conv.RenderValue(def),
	}
	opt.parseArguments(o.tokens)
	o.opts = append(o.opts, opt)

	var errs []error
	for _, name := range opt.names {
		if _, taken := o.index[name]; taken {
			errs = append(errs, &DuplicateNameError{Name: name})
			continue
		}
		mak.Set(&o.index, name, len(o.opts)-1)
	}
	if len(errs) == 0 {
		return opt, nil
	}
	o.errs = append(o.errs, errs...)
	return opt, errors.Join(errs...)
}

// TailStart returns the position of the first tail token: one past the last
// position consumed by any option, and at least 1.
func (o *Options) TailStart() int {
	n := len(o.tokens)
	start := min(1, n)
	for _, opt := range o.opts {
		if last, ok := opt.lastConsumed(n); ok && last+1 > start {
			start = last + 1
		}
	}
	return min(start, n)
}

// Tail returns the tokens after the last consumed one: the positional
// arguments not claimed by any option.
func (o *Options) Tail() []string {
	return slices.Clone(o.tokens[o.TailStart():])
}

// MakeOption registers a Single option converted with codec and returns its
// effective value: the first match, or def.
func MakeOption[T any](o *Options, codec Codec[T], names []string, def T, desc string) T {
	opt, _ := o.add(names, codec, def, Single, false, desc)
	if opt == nil {
		return def
	}
	v, _ := opt.values[0].(T)
	return v
}

// MakeOptions registers a Many option converted with codec and returns every
// converted match in discovery order.
func MakeOptions[T any](o *Options, codec Codec[T], names []string, desc string) []T {
	var zero T
	opt, _ := o.add(names, codec, zero, Many, false, desc)
	if opt == nil {
		return nil
	}
	return typed[T](opt.values)
}

func typed[T any](values []any) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[i], _ = v.(T)
	}
	return out
}

// Flag registers a boolean flag and reports whether it appeared.
func (o *Options) Flag(names []string, desc string) bool {
	opt, _ := o.add(names, codecFor(o.convs, KindBool, BoolCodec), false, Single, true, desc)
	if opt == nil {
		return false
	}
	v, _ := opt.values[0].(bool)
	return v
}

// Flags registers a repeatable boolean flag and returns one true per
// appearance.
func (o *Options) Flags(names []string, desc string) []bool {
	opt, _ := o.add(names, codecFor(o.convs, KindBool, BoolCodec), false, Many, true, desc)
	if opt == nil {
		return nil
	}
	return typed[bool](opt.values)
}

func (o *Options) String(names []string, def string, desc string) string {
	return MakeOption(o, codecFor(o.convs, KindString, StringCodec), names, def, desc)
}

func (o *Options) Strings(names []string, desc string) []string {
	return MakeOptions(o, codecFor(o.convs, KindString, StringCodec), names, desc)
}

func (o *Options) Bool(names []string, def bool, desc string) bool {
	return MakeOption(o, codecFor(o.convs, KindBool, BoolCodec), names, def, desc)
}

func (o *Options) Bools(names []string, desc string) []bool {
	return MakeOptions(o, codecFor(o.convs, KindBool, BoolCodec), names, desc)
}

func (o *Options) Int(names []string, def int64, desc string) int64 {
	return MakeOption(o, codecFor(o.convs, KindInt, IntCodec), names, def, desc)
}

func (o *Options) Ints(names []string, desc string) []int64 {
	return MakeOptions(o, codecFor(o.convs, KindInt, IntCodec), names, desc)
}

func (o *Options) Float(names []string, def float64, desc string) float64 {
	return MakeOption(o, codecFor(o.convs, KindFloat, FloatCodec), names, def, desc)
}

func (o *Options) Floats(names []string, desc string) []float64 {
	return MakeOptions(o, codecFor(o.convs, KindFloat, FloatCodec), names, desc)
}

// Duration registers a Single duration option. A negative def is returned
// and described as is, but its text cannot be given as an argument or as a
// Spec default.
func (o *Options) Duration(names []string, def time.Duration, desc string) time.Duration {
	return MakeOption(o, codecFor(o.convs, KindDuration, DurationCodec), names, def, desc)
}

func (o *Options) Durations(names []string, desc string) []time.Duration {
	return MakeOptions(o, codecFor(o.convs, KindDuration, DurationCodec), names, desc)
}
