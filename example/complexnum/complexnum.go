// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command complexnum reads a complex number with -c and prints it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/yeetrun/popts/pkg/codec"
	"github.com/yeetrun/popts/pkg/popts"
)

func run(args []string, stdout, stderr io.Writer) int {
	opts := popts.New(args)
	c := popts.MakeOption(opts, codec.Complex128, []string{"-c"}, 0, "A complex number")
	if opts.HasErrorMatches(stderr) {
		return 2
	}
	fmt.Fprint(stdout, codec.FormatComplex(c))
	return 0
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
