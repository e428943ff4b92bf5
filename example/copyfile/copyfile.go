// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command copyfile copies its input to its output. Both default to "--",
// meaning stdin and stdout.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/yeetrun/popts/pkg/popts"
)

const stdio = "--"

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := popts.New(args)
	help := opts.Flag([]string{"-h", "--help"}, "Show this help")
	infile := opts.String([]string{"-i", "--infile"}, stdio, "Specify input file or '--' for stdin")
	outfile := opts.String([]string{"-o", "--outfile"}, stdio, "Specify output file or '--' for stdout")
	verbose := opts.Flag([]string{"-v"}, "Toggle verbosity")

	if help {
		fmt.Fprintln(stdout, opts.Description())
		return 0
	}
	if !opts.HasErrorMatches(stderr) {
		// Matching problems are reported but do not stop the copy.
		opts.HasConsistentTail(stderr)
	}

	logger := log.New(stderr, "copyfile: ", 0)
	if err := copyFile(infile, outfile, stdin, stdout); err != nil {
		if verbose {
			logger.Printf("an error occurred: %v", err)
		}
		return 1
	}
	return 0
}

func copyFile(infile, outfile string, stdin io.Reader, stdout io.Writer) error {
	in, out := stdin, stdout
	if infile != stdio {
		f, err := os.Open(infile)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	if outfile != stdio {
		f, err := os.Create(outfile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	_, err := io.Copy(out, in)
	return err
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
