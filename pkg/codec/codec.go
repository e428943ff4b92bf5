// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codec provides option converters for types outside the popts
// built-ins. Each codec is a popts.Codec and can be used directly with
// popts.MakeOption or registered with Options.RegisterConverter.
package codec

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/yeetrun/popts/pkg/popts"
)

// Kinds of the codecs in this package.
const (
	KindSemver     popts.Kind = "semver"
	KindConstraint popts.Kind = "constraint"
	KindUUID       popts.Kind = "uuid"
	KindURL        popts.Kind = "url"
	KindComplex    popts.Kind = "complex"
)

// Semver parses semantic versions. A leading "v" and missing minor or patch
// parts are accepted; rendering uses the canonical form.
var Semver = popts.Codec[*semver.Version]{
	Tag: KindSemver,
	Parse: func(s string) (*semver.Version, bool) {
		v, err := semver.NewVersion(s)
		return v, err == nil
	},
	Render: func(v *semver.Version) string {
		if v == nil {
			return ""
		}
		return v.String()
	},
}

// Constraint parses version constraints such as ">= 1.2, < 2".
var Constraint = popts.Codec[*semver.Constraints]{
	Tag: KindConstraint,
	Parse: func(s string) (*semver.Constraints, bool) {
		c, err := semver.NewConstraint(s)
		return c, err == nil
	},
	Render: func(c *semver.Constraints) string {
		if c == nil {
			return ""
		}
		return c.String()
	},
}

// UUID parses UUIDs in any form accepted by uuid.Parse.
var UUID = popts.Codec[uuid.UUID]{
	Tag: KindUUID,
	Parse: func(s string) (uuid.UUID, bool) {
		u, err := uuid.Parse(s)
		return u, err == nil
	},
	Render: uuid.UUID.String,
}

// URL parses absolute URLs. Text without a scheme is rejected so that a
// stray file name is not silently taken as a relative reference.
var URL = popts.Codec[*url.URL]{
	Tag: KindURL,
	Parse: func(s string) (*url.URL, bool) {
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" {
			return nil, false
		}
		return u, true
	},
	Render: func(u *url.URL) string {
		if u == nil {
			return ""
		}
		return u.String()
	},
}

// Complex128 parses complex numbers written either as Go literals ("1+2i",
// "3i", "4") or as a parenthesized pair ("(1,2)", "(1)").
var Complex128 = popts.Codec[complex128]{
	Tag:    KindComplex,
	Parse:  ParseComplex,
	Render: FormatComplex,
}

// ParseComplex is the parse half of Complex128.
func ParseComplex(s string) (complex128, bool) {
	if inner, ok := strings.CutPrefix(s, "("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return 0, false
		}
		re, im, pair := strings.Cut(inner, ",")
		r, err := strconv.ParseFloat(strings.TrimSpace(re), 64)
		if err != nil {
			return 0, false
		}
		if !pair {
			return complex(r, 0), true
		}
		i, err := strconv.ParseFloat(strings.TrimSpace(im), 64)
		if err != nil {
			return 0, false
		}
		return complex(r, i), true
	}
	c, err := strconv.ParseComplex(s, 128)
	return c, err == nil
}

// FormatComplex renders c as a parenthesized pair, the form ParseComplex
// reads back most simply.
func FormatComplex(c complex128) string {
	return "(" + strconv.FormatFloat(real(c), 'g', -1, 64) + "," + strconv.FormatFloat(imag(c), 'g', -1, 64) + ")"
}

// All returns every codec in this package.
func All() []popts.Converter {
	return []popts.Converter{Semver, Constraint, UUID, URL, Complex128}
}

// Register adds every codec in this package to convs and returns it.
func Register(convs popts.Converters) popts.Converters {
	for _, c := range All() {
		convs.Register(c)
	}
	return convs
}
