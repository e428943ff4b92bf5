// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popts

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Built-in codecs. They are ordinary Codec values and can be replaced in a
// registry with RegisterConverter.
var (
	StringCodec = Codec[string]{
		Tag:    KindString,
		Parse:  func(s string) (string, bool) { return s, true },
		Render: func(s string) string { return s },
	}

	BoolCodec = Codec[bool]{
		Tag:    KindBool,
		Parse:  ParseBool,
		Render: strconv.FormatBool,
		Flag:   true,
	}

	IntCodec = Codec[int64]{
		Tag: KindInt,
		Parse: func(s string) (int64, bool) {
			v, err := strconv.ParseInt(s, 10, 64)
			return v, err == nil
		},
		Render: func(v int64) string { return strconv.FormatInt(v, 10) },
	}

	FloatCodec = Codec[float64]{
		Tag: KindFloat,
		Parse: func(s string) (float64, bool) {
			v, err := strconv.ParseFloat(s, 64)
			return v, err == nil
		},
		Render: func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
	}

	DurationCodec = Codec[time.Duration]{
		Tag:    KindDuration,
		Parse:  ParseDuration,
		Render: FormatDuration,
	}
)

var (
	truthy = []string{"true", "1", "on", "yes", "y"}
	falsy  = []string{"false", "0", "off", "no", "n"}
)

// ParseBool recognizes true/1/on/yes/y and false/0/off/no/n in any case.
// Any other text yields (true, false): callers must look at ok, not at the
// value.
func ParseBool(s string) (v bool, ok bool) {
	lower := strings.ToLower(s)
	switch {
	case slices.Contains(truthy, lower):
		return true, true
	case slices.Contains(falsy, lower):
		return false, true
	}
	return true, false
}

var durationRe = regexp.MustCompile(`^([0-9]+)(ns|ms|d|h|m|s)$`)

type durationUnit struct {
	suffix string
	size   time.Duration
}

// Ordered from largest to smallest; FormatDuration relies on it.
var durationUnits = []durationUnit{
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
	{"ms", time.Millisecond},
	{"ns", time.Nanosecond},
}

// ParseDuration accepts exactly <digits><unit> where unit is one of ns, ms,
// s, m, h or d. Fractions, signs and combined units are rejected, as are
// values that do not fit in a time.Duration.
func ParseDuration(s string) (time.Duration, bool) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	for _, u := range durationUnits {
		if u.suffix != m[2] {
			continue
		}
		if n > math.MaxInt64/int64(u.size) {
			return 0, false
		}
		return time.Duration(n) * u.size, true
	}
	return 0, false
}

// FormatDuration renders d in the largest unit that divides it exactly, so
// that the result parses back with ParseDuration for non-negative values.
// A negative d renders with a leading "-" that ParseDuration rejects.
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	for _, u := range durationUnits {
		if d%u.size == 0 {
			return strconv.FormatInt(int64(d/u.size), 10) + u.suffix
		}
	}
	return strconv.FormatInt(int64(d), 10) + "ns"
}
