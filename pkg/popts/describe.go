// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package popts

import (
	"fmt"
	"strings"
)

// descriptionGap separates the widest name column from the descriptions.
const descriptionGap = 4

// Description returns a usage reference for the registered options in
// registration order:
//
//	Usage 'copyfile' [options]
//	-h, --help            Show this help
//	-i, --infile [=--]    Specify input file or '--' for stdin
//
// Many options are marked with " (...)" and Single value options show their
// rendered default.
func (o *Options) Description() string {
	heads := make([]string, len(o.opts))
	width := 0
	for i, opt := range o.opts {
		heads[i] = opt.head()
		width = max(width, len(heads[i]))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Usage '%s' [options]\n", o.programName())
	for i, opt := range o.opts {
		fmt.Fprintf(&b, "%-*s%s\n", width+descriptionGap, heads[i], opt.description)
	}
	return b.String()
}

// head is the name column of the option's description line.
func (o *Option) head() string {
	var b strings.Builder
	b.WriteString(strings.Join(o.names, ", "))
	if o.arity == Many {
		b.WriteString(" (...)")
	}
	if o.arity == Single && !o.flag {
		b.WriteString(" [=" + o.defText + "]")
	}
	return b.String()
}

// programName is token 0 with any directory part removed.
func (o *Options) programName() string {
	if len(o.tokens) == 0 {
		return ""
	}
	name := o.tokens[0]
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}
