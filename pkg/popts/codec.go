// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popts

import (
	"fmt"
	"maps"
)

// Kind tags the value type an option holds. Built-in kinds are listed
// below; callers may register converters for any other kind.
type Kind string

// Built-in kinds.
const (
	KindString   Kind = "string"
	KindBool     Kind = "bool"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindDuration Kind = "duration"
)

// Converter is the untyped face of a Codec. Options hold one converter each
// and only ever go through this interface, so any Codec[T] can back an
// option regardless of T.
type Converter interface {
	// Kind returns the tag the converter is registered under.
	Kind() Kind
	// ParseText converts token text. The returned value is discarded when
	// ok is false.
	ParseText(text string) (v any, ok bool)
	// RenderValue formats a value produced by this converter.
	RenderValue(v any) string
	// FlagValue is the value recorded for every match of a flag option.
	FlagValue() any
	// Zero is the value used when an option is registered without a default.
	Zero() any
}

// Codec is a parse/render pair for values of type T. It implements
// Converter.
//
// Example:
//
//	hex := popts.Codec[uint64]{
//	    Tag: "hex",
//	    Parse: func(s string) (uint64, bool) {
//	        v, err := strconv.ParseUint(s, 16, 64)
//	        return v, err == nil
//	    },
//	    Render: func(v uint64) string { return strconv.FormatUint(v, 16) },
//	}
type Codec[T any] struct {
	Tag    Kind
	Parse  func(text string) (T, bool)
	Render func(v T) string
	// Flag is recorded for each match when the option is a flag. For bool
	// codecs this is true; for most other types the zero value is the only
	// sensible choice.
	Flag T
}

// Kind implements Converter.
func (c Codec[T]) Kind() Kind { return c.Tag }

// ParseText implements Converter.
func (c Codec[T]) ParseText(text string) (any, bool) {
	if c.Parse == nil {
		return nil, false
	}
	v, ok := c.Parse(text)
	if !ok {
		return nil, false
	}
	return v, true
}

// RenderValue implements Converter.
func (c Codec[T]) RenderValue(v any) string {
	t, ok := v.(T)
	if !ok || c.Render == nil {
		return fmt.Sprint(v)
	}
	return c.Render(t)
}

// FlagValue implements Converter.
func (c Codec[T]) FlagValue() any { return c.Flag }

// Zero implements Converter.
func (c Codec[T]) Zero() any {
	var zero T
	return zero
}

// Converters is a registry of converters keyed by kind.
type Converters map[Kind]Converter

// DefaultConverters returns a fresh registry holding the built-in kinds.
func DefaultConverters() Converters {
	c := make(Converters)
	c.Register(StringCodec)
	c.Register(BoolCodec)
	c.Register(IntCodec)
	c.Register(FloatCodec)
	c.Register(DurationCodec)
	return c
}

// Register adds conv under its kind, replacing any earlier converter.
func (c Converters) Register(conv Converter) {
	c[conv.Kind()] = conv
}

// Lookup returns the converter registered for k.
func (c Converters) Lookup(k Kind) (Converter, bool) {
	conv, ok := c[k]
	return conv, ok
}

// Clone returns a shallow copy of c.
func (c Converters) Clone() Converters {
	return maps.Clone(c)
}

// codecFor returns the Codec[T] registered for k, or fallback when the
// registry holds nothing for k or holds a converter of another type.
func codecFor[T any](convs Converters, k Kind, fallback Codec[T]) Codec[T] {
	if conv, ok := convs.Lookup(k); ok {
		if c, ok := conv.(Codec[T]); ok {
			return c
		}
	}
	return fallback
}
