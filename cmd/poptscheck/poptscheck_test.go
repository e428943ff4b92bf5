// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/popts/pkg/report"
	"github.com/yeetrun/popts/pkg/schema"
)

const copyfileSchema = `program = "copyfile"

[[option]]
id = "infile"
names = ["-i", "--infile"]
default = "--"
description = "Specify input file"

[[option]]
names = ["-v"]
type = "bool"
flag = true
description = "Toggle verbosity"

[[case]]
name = "files"
line = "-v -i in.txt rest"
errors = false
tail = ["rest"]
[case.values]
infile = ["in.txt", "--"]

[[case]]
name = "hole"
line = "-i in.txt stray -v"
consistent = false
`

// workspace creates a directory holding the given files and makes it the
// working directory for the rest of the test.
func workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
	return dir
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv(colorEnv, "")
	var out, errOut bytes.Buffer
	err = run(context.Background(), append([]string{"--color", "never"}, args...), &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantFlags  []string
		wantTokens []string
	}{
		{"no separator", []string{"check", "-q"}, []string{"check", "-q"}, nil},
		{"separator", []string{"parse", "a.toml", "--", "-v", "--help"}, []string{"parse", "a.toml"}, []string{"-v", "--help"}},
		{"second separator is a token", []string{"parse", "--", "--", "x"}, []string{"parse"}, []string{"--", "x"}},
		{"trailing separator", []string{"parse", "--"}, []string{"parse"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, tokens := splitTokens(tt.args)
			if diff := cmp.Diff(tt.wantFlags, flags); diff != "" {
				t.Errorf("flags mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantTokens, tokens); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseGlobalFlags(t *testing.T) {
	flags, remaining, err := parseGlobalFlags([]string{"-v", "check", "--color", "always", "a.toml", "-q"})
	if err != nil {
		t.Fatal(err)
	}
	want := globalFlagsParsed{Verbose: true, Color: "always"}
	if flags != want {
		t.Fatalf("flags = %+v, want %+v", flags, want)
	}
	if diff := cmp.Diff([]string{"check", "a.toml", "-q"}, remaining); diff != "" {
		t.Fatalf("remaining mismatch (-want +got):\n%s", diff)
	}
}

func TestColorMode(t *testing.T) {
	cfg := &configLocation{Config: &Config{Color: "never"}}
	tests := []struct {
		name string
		flag string
		env  string
		cfg  *configLocation
		want report.Mode
	}{
		{"default", "", "", nil, report.ModeAuto},
		{"config", "", "", cfg, report.ModeNever},
		{"env beats config", "", "always", cfg, report.ModeAlways},
		{"flag beats env", "auto", "always", cfg, report.ModeAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(colorEnv, tt.env)
			got, err := colorMode(tt.flag, tt.cfg)
			if err != nil || got != tt.want {
				t.Fatalf("colorMode() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}

	t.Setenv(colorEnv, "")
	if _, err := colorMode("rainbow", nil); err == nil {
		t.Fatal("colorMode(rainbow) succeeded")
	}
}

func TestIsTerminal(t *testing.T) {
	oldIsTerminal := isTerminalFn
	t.Cleanup(func() { isTerminalFn = oldIsTerminal })

	isTerminalFn = func(int) bool { return true }
	if isTerminal(&bytes.Buffer{}) {
		t.Fatal("isTerminal(buffer) = true")
	}
	if !isTerminal(os.Stdout) {
		t.Fatal("isTerminal(stdout) = false")
	}
}

func TestCheck(t *testing.T) {
	workspace(t, map[string]string{"copyfile.toml": copyfileSchema})

	stdout, _, err := runCLI(t, "check", "copyfile.toml")
	if err != nil {
		t.Fatalf("check error = %v\n%s", err, stdout)
	}
	want := strings.Join([]string{
		"PASS copyfile.toml: files",
		"PASS copyfile.toml: hole",
		"ok 2 passed",
		"",
	}, "\n")
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Fatalf("check output mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckFailures(t *testing.T) {
	broken := strings.Replace(copyfileSchema, `tail = ["rest"]`, `tail = ["other"]`, 1)
	workspace(t, map[string]string{
		"copyfile.toml": broken,
		"bad.yaml":      "program: p\nbogus: 1\n",
	})

	stdout, _, err := runCLI(t, "check", "-q", "copyfile.toml", "bad.yaml")
	if err == nil || err.Error() != "check: 2 of 3 cases failed" {
		t.Fatalf("check error = %v", err)
	}
	lines := strings.Split(stdout, "\n")
	want := []string{
		"FAIL copyfile.toml: files",
		`    tail: got ["rest"], want ["other"]`,
		"FAIL bad.yaml",
	}
	if diff := cmp.Diff(want, lines[:3]); diff != "" {
		t.Fatalf("check output mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasSuffix(stdout, "FAIL 2 failed, 1 passed\n") {
		t.Fatalf("check output = %q, want failure summary", stdout)
	}
}

func TestCheckFromConfig(t *testing.T) {
	dir := workspace(t, map[string]string{
		configName:                "schemas = [\"schemas/*.toml\"]\njobs = 1\n",
		"schemas/copyfile.toml":   copyfileSchema,
		"schemas/notes.txt":       "ignored",
		"sub/dir/placeholder.txt": "",
	})
	t.Chdir(filepath.Join(dir, "sub", "dir"))

	stdout, _, err := runCLI(t, "check", "--quiet")
	if err != nil {
		t.Fatalf("check error = %v\n%s", err, stdout)
	}
	if stdout != "ok 2 passed\n" {
		t.Fatalf("check output = %q", stdout)
	}
}

func TestCheckWithoutSchemas(t *testing.T) {
	workspace(t, nil)
	if _, _, err := runCLI(t, "check"); err == nil || !strings.Contains(err.Error(), "no schema files given") {
		t.Fatalf("check error = %v", err)
	}
}

func TestDescribe(t *testing.T) {
	workspace(t, map[string]string{
		"copyfile.toml": strings.Replace(copyfileSchema, "[[case]]", "[[option]]\nid = \"verbose\"\nnames = [\"-v\"]\ntype = \"bool\"\nflag = true\n\n[[case]]", 1),
	})

	stdout, stderr, err := runCLI(t, "describe", "copyfile.toml")
	if err != nil {
		t.Fatalf("describe error = %v", err)
	}
	want := strings.Join([]string{
		"Usage 'copyfile' [options]",
		"-i, --infile [=--]    Specify input file",
		"-v                    Toggle verbosity",
		"-v                    ",
		"",
	}, "\n")
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Fatalf("describe output mismatch (-want +got):\n%s", diff)
	}
	if stderr != "duplicate duplicate name: -v\n" {
		t.Fatalf("describe stderr = %q", stderr)
	}

	if _, _, err := runCLI(t, "describe"); err == nil {
		t.Fatal("describe without a file succeeded")
	}
}

func TestParse(t *testing.T) {
	workspace(t, map[string]string{"copyfile.toml": copyfileSchema})

	stdout, _, err := runCLI(t, "parse", "copyfile.toml", "--", "-v", "-i", "in.txt", "rest")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	want := strings.Join([]string{
		`* -i, --infile  string   ["in.txt" "--"]`,
		`* -v            bool     ["true" "false"]`,
		`tail: ["rest"]`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Fatalf("parse output mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCase(t *testing.T) {
	workspace(t, map[string]string{"copyfile.toml": copyfileSchema})

	stdout, _, err := runCLI(t, "parse", "copyfile.toml", "--case", "hole")
	if err == nil || !strings.HasPrefix(err.Error(), "parse: 1 diagnostics") {
		t.Fatalf("parse error = %v", err)
	}
	if !strings.HasSuffix(stdout, "tail: []\nhole      unparsed argument 'stray' before parsed '-v'\n") {
		t.Fatalf("parse output = %q", stdout)
	}

	if _, _, err := runCLI(t, "parse", "copyfile.toml", "--case", "nope"); err == nil {
		t.Fatal("parse with an unknown case succeeded")
	}
	if _, _, err := runCLI(t, "parse", "copyfile.toml", "--case", "hole", "--", "-v"); err == nil {
		t.Fatal("parse with --case and tokens succeeded")
	}
}

func TestConvert(t *testing.T) {
	dir := workspace(t, map[string]string{"copyfile.toml": copyfileSchema})
	src, err := schema.Load("copyfile.toml")
	if err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "convert", "copyfile.toml", "--to", "yaml")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	got, err := schema.Decode("stdout.yaml", []byte(stdout))
	if err != nil {
		t.Fatalf("Decode() error = %v\n%s", err, stdout)
	}
	got.Path = src.Path
	if diff := cmp.Diff(src, got); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}

	out := filepath.Join(dir, "copyfile.hcl.zst")
	if _, _, err := runCLI(t, "convert", "copyfile.toml", "-o", out); err != nil {
		t.Fatalf("convert error = %v", err)
	}
	got, err = schema.Load(out)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Program != "copyfile" || len(got.Cases) != 2 {
		t.Fatalf("converted file = %+v", got)
	}

	if _, _, err := runCLI(t, "convert", "copyfile.toml"); err == nil {
		t.Fatal("convert without a target succeeded")
	}
}

func TestConvertEmptyTokens(t *testing.T) {
	noArgs := copyfileSchema + "\n[[case]]\nname = \"bare\"\ntokens = []\ntail = []\n"
	workspace(t, map[string]string{
		"copyfile.toml": noArgs,
		"both.toml":     strings.Replace(noArgs, "tokens = []", "line = \"-v\"\ntokens = []", 1),
	})

	stdout, _, err := runCLI(t, "convert", "copyfile.toml", "--to", "yaml")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	f, err := schema.Decode("stdout.yaml", []byte(stdout))
	if err != nil {
		t.Fatalf("Decode() error = %v\n%s", err, stdout)
	}
	c, ok := findCase(f, "bare")
	if !ok {
		t.Fatalf("case bare missing from\n%s", stdout)
	}
	line, err := c.CommandLine(f.Program)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"copyfile"}, line); diff != "" {
		t.Fatalf("CommandLine() mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := runCLI(t, "convert", "both.toml", "--to", "yaml"); err == nil || !strings.Contains(err.Error(), "line and tokens are mutually exclusive") {
		t.Fatalf("convert error = %v", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	workspace(t, nil)
	if _, _, err := runCLI(t, "frobnicate"); err == nil || !strings.Contains(err.Error(), "unknown command: frobnicate") {
		t.Fatalf("error = %v", err)
	}
}
