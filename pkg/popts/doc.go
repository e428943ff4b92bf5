// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package popts is a declarative command-line option matcher.
//
// Callers register named options against an already split token list. Each
// registration scans the whole list at once, converts the tokens that follow
// the option's names and returns the value. Nothing is consumed or reordered:
// options may overlap, and the registry can be asked afterwards whether the
// result is trustworthy.
//
// The package follows these rules:
//   - Token 0 is the program name and is never matched
//   - A flag's value is its presence; a value option reads the next token
//   - Single options take the first match and fall back to their default
//   - Many options collect every match in order
//   - Parsing never stops on a bad token; problems are reported by queries
//
// # Basic Usage
//
//	opts := popts.FromArgs().WithHelp()
//	infile := opts.String([]string{"-i", "--infile"}, "--", "Input file")
//	verbose := opts.Flag([]string{"-v"}, "Toggle verbosity")
//
//	if opts.HelpRequested() {
//	    fmt.Print(opts.Description())
//	    return
//	}
//	if err := opts.Validate(); err != nil {
//	    fmt.Fprintln(os.Stderr, err)
//	    os.Exit(2)
//	}
//	files := opts.Tail()
//
// # Consistency Queries
//
// Three queries look at all registered options together. Each takes an
// optional io.Writer; when it is nil the query stops at the first problem.
//
//   - HasDuplicateNames: a name is registered by more than one option
//   - HasErrorMatches: a value failed to convert or was missing, a Single
//     option was given twice, or a token was read both as a value and as a
//     name (for "-f -g x" with value options -f and -g)
//   - HasConsistentTail: false when an unparsed token sits between parsed
//     ones (for "-f x -g y" with flags -f and -g, "x" is such a hole)
//
// Validate and Diagnostics return the same findings as typed errors.
//
// # Custom Types
//
// Any type can back an option through a Codec:
//
//	c := popts.MakeOption(opts, codec.Complex128, []string{"-c"}, 0, "A complex number")
//
// Codecs can also be registered under a Kind with RegisterConverter so that
// AddOption can build options from data, as the schema package does.
package popts
