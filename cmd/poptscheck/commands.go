// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shayne/yargs"
	"github.com/yeetrun/popts/pkg/fileutil"
	"github.com/yeetrun/popts/pkg/schema"
	"golang.org/x/sync/errgroup"
)

// subArgs drops the subcommand name that yargs leaves in front.
func subArgs(args []string, name string) []string {
	if len(args) > 0 && args[0] == name {
		return args[1:]
	}
	return args
}

// loadOne loads the single schema file named by pos.
func loadOne(cmd string, pos []string) (*schema.File, error) {
	switch len(pos) {
	case 0:
		return nil, fmt.Errorf("%s: missing schema file argument", cmd)
	case 1:
		return schema.Load(pos[0])
	}
	return nil, fmt.Errorf("%s takes one schema file, got %d", cmd, len(pos))
}

type checkFlagsParsed struct {
	Jobs  int  `flag:"jobs" short:"j" help:"Schema files to check at once"`
	Quiet bool `flag:"quiet" short:"q" help:"Only print failing cases"`
}

type fileReport struct {
	path    string
	results []*schema.Result
	err     error
	elapsed time.Duration
}

func (a *app) handleCheck(ctx context.Context, args []string) error {
	result, err := yargs.ParseFlags[checkFlagsParsed](subArgs(args, "check"))
	if err != nil {
		return err
	}
	paths := result.Args
	if len(paths) == 0 {
		if a.cfg == nil {
			return fmt.Errorf("check: no schema files given and no %s found", configName)
		}
		if paths, err = a.cfg.schemaPaths(); err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("check: %s lists no schemas", a.cfg.Path)
		}
	}

	reports := make([]fileReport, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.jobs(result.Flags.Jobs))
	for i, path := range paths {
		g.Go(func() error {
			start := time.Now()
			f, err := schema.Load(path)
			if err != nil {
				reports[i] = fileReport{path: path, err: err}
				return nil
			}
			results, err := f.RunAll(ctx, a.convs)
			if err != nil {
				return err
			}
			reports[i] = fileReport{path: path, results: results, elapsed: time.Since(start)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var pass, fail int
	for _, rep := range reports {
		if rep.err != nil {
			a.out.FileError(rep.path, rep.err)
			fail++
			continue
		}
		if a.verbose {
			log.Printf("%s: %d cases in %v", rep.path, len(rep.results), rep.elapsed.Round(time.Microsecond))
		}
		for _, r := range rep.results {
			if r.Passed() {
				pass++
			} else {
				fail++
			}
			if !r.Passed() || !result.Flags.Quiet {
				a.out.Result(rep.path, r)
			}
		}
	}
	a.out.Summary(pass, fail)
	if fail > 0 {
		return fmt.Errorf("check: %d of %d cases failed", fail, pass+fail)
	}
	return nil
}

func (a *app) handleDescribe(_ context.Context, args []string) error {
	result, err := yargs.ParseFlags[struct{}](subArgs(args, "describe"))
	if err != nil {
		return err
	}
	f, err := loadOne("describe", result.Args)
	if err != nil {
		return err
	}
	o, err := f.Build([]string{f.Program}, a.convs)
	if err != nil {
		return err
	}
	fmt.Fprint(a.stdout, o.Description())
	// Without arguments only duplicate names can be reported.
	a.errOut.Diagnostics(o.Diagnostics())
	return nil
}

type parseFlagsParsed struct {
	Case string `flag:"case" help:"Use the command line of the named case"`
}

func (a *app) handleParse(_ context.Context, args []string) error {
	result, err := yargs.ParseFlags[parseFlagsParsed](subArgs(args, "parse"))
	if err != nil {
		return err
	}
	f, err := loadOne("parse", result.Args)
	if err != nil {
		return err
	}

	tokens := append([]string{f.Program}, a.tokens...)
	if name := result.Flags.Case; name != "" {
		if len(a.tokens) > 0 {
			return errors.New("parse: --case and -- TOKENS are mutually exclusive")
		}
		c, ok := findCase(f, name)
		if !ok {
			return fmt.Errorf("parse: no case named %q in %s", name, f.Path)
		}
		if tokens, err = c.CommandLine(f.Program); err != nil {
			return err
		}
	}

	o, err := f.Build(tokens, a.convs)
	if err != nil {
		return err
	}
	a.out.Options(o)
	diags := o.Diagnostics()
	if len(diags) == 0 {
		return nil
	}
	a.out.Diagnostics(diags)
	return fmt.Errorf("parse: %d diagnostics for %q", len(diags), strings.Join(tokens, " "))
}

func findCase(f *schema.File, name string) (schema.Case, bool) {
	for _, c := range f.Cases {
		if c.Name == name {
			return c, true
		}
	}
	return schema.Case{}, false
}

type convertFlagsParsed struct {
	To  string `flag:"to" help:"Output format (toml|yaml|hcl); default from --out"`
	Out string `flag:"out" short:"o" help:"Write to PATH instead of stdout; a .zst suffix compresses"`
}

func (a *app) handleConvert(_ context.Context, args []string) error {
	result, err := yargs.ParseFlags[convertFlagsParsed](subArgs(args, "convert"))
	if err != nil {
		return err
	}
	f, err := loadOne("convert", result.Args)
	if err != nil {
		return err
	}

	out := result.Flags.Out
	format := schema.Format(strings.ToLower(result.Flags.To))
	if format == "" {
		if out == "" {
			return errors.New("convert: need --to or --out")
		}
		if format, err = schema.FormatOf(out); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := f.Encode(&buf, format); err != nil {
		return err
	}
	if out == "" {
		_, err := a.stdout.Write(buf.Bytes())
		return err
	}
	data := buf.Bytes()
	if strings.HasSuffix(out, ".zst") {
		if data, err = schema.Compress(data); err != nil {
			return fmt.Errorf("failed to compress: %w", err)
		}
	}
	if err := fileutil.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	if a.verbose {
		log.Printf("wrote %s (%s, %d bytes)", out, format, len(data))
	}
	return nil
}
