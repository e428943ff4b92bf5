// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command poptscheck checks option schema files and shows how a schema
// matches a command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"

	"github.com/shayne/yargs"
	"github.com/yeetrun/popts/pkg/codec"
	"github.com/yeetrun/popts/pkg/popts"
	"github.com/yeetrun/popts/pkg/report"
	"golang.org/x/term"
)

const colorEnv = "POPTSCHECK_COLOR"

type globalFlagsParsed struct {
	Verbose bool   `flag:"verbose" short:"v" help:"Log per-file timing to stderr"`
	Color   string `flag:"color" help:"Color output (auto|always|never) (POPTSCHECK_COLOR)"`
}

var isTerminalFn = term.IsTerminal

// app is the state shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer
	out    *report.Printer
	errOut *report.Printer

	verbose bool
	cfg     *configLocation
	convs   popts.Converters
	// tokens are the arguments after "--", kept away from flag parsing.
	tokens []string
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// splitTokens cuts args at the first "--". Everything after it is a
// command line to match and must not be seen as poptscheck flags.
func splitTokens(args []string) (flags, tokens []string) {
	i := slices.Index(args, "--")
	if i < 0 {
		return args, nil
	}
	return args[:i], slices.Clone(args[i+1:])
}

func colorMode(flag string, cfg *configLocation) (report.Mode, error) {
	if flag != "" {
		return report.ParseMode(flag)
	}
	if env := os.Getenv(colorEnv); env != "" {
		return report.ParseMode(env)
	}
	if cfg != nil {
		return report.ParseMode(cfg.Config.Color)
	}
	return report.ModeAuto, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminalFn(int(f.Fd()))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	args, tokens := splitTokens(args)
	globalFlags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfigFromCwd()
	if err != nil {
		return err
	}
	mode, err := colorMode(globalFlags.Color, cfg)
	if err != nil {
		return err
	}
	a := &app{
		stdout:  stdout,
		stderr:  stderr,
		out:     report.NewPrinter(stdout, report.Enabled(mode, isTerminal(stdout))),
		errOut:  report.NewPrinter(stderr, report.Enabled(mode, isTerminal(stderr))),
		verbose: globalFlags.Verbose,
		cfg:     cfg,
		convs:   codec.Register(popts.Converters{}),
		tokens:  tokens,
	}
	handlers := map[string]yargs.SubcommandHandler{
		"check":    a.handleCheck,
		"describe": a.handleDescribe,
		"parse":    a.handleParse,
		"convert":  a.handleConvert,
	}
	return yargs.RunSubcommandsWithGroups(ctx, remaining, buildHelpConfig(), globalFlagsParsed{}, handlers, nil)
}

// jobs returns how many schema files to check at once.
func (a *app) jobs(flag int) int {
	if flag > 0 {
		return flag
	}
	if a.cfg != nil && a.cfg.Config.Jobs > 0 {
		return a.cfg.Config.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, err)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		printCLIError(os.Stderr, err)
		os.Exit(1)
	}
}
