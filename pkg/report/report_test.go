// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/popts/pkg/popts"
	"github.com/yeetrun/popts/pkg/schema"
)

func TestEnabled(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		tty     bool
		noColor string
		term    string
		want    bool
	}{
		{"always", ModeAlways, false, "1", "dumb", true},
		{"never", ModeNever, true, "", "xterm", false},
		{"auto tty", ModeAuto, true, "", "xterm-256color", true},
		{"auto pipe", ModeAuto, false, "", "xterm", false},
		{"auto NO_COLOR", ModeAuto, true, "1", "xterm", false},
		{"auto dumb", ModeAuto, true, "", "dumb", false},
		{"auto no TERM", ModeAuto, true, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("TERM", tt.term)
			if got := Enabled(tt.mode, tt.tty); got != tt.want {
				t.Fatalf("Enabled(%q, %v) = %v, want %v", tt.mode, tt.tty, got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeAuto, "auto": ModeAuto, "Always": ModeAlways, "never": ModeNever} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMode("sometimes"); err == nil {
		t.Error("ParseMode(sometimes) succeeded")
	}
}

func TestDiagnostics(t *testing.T) {
	o := popts.New([]string{"p", "-f", "-g", "x", "stray", "-v"})
	o.String([]string{"-f"}, "", "")
	o.String([]string{"-g"}, "", "")
	o.Flag([]string{"-v"}, "")
	o.Flag([]string{"-v"}, "")

	var buf bytes.Buffer
	NewPrinter(&buf, false).Diagnostics(append(o.Diagnostics(), errors.New("other")))
	want := strings.Join([]string{
		"duplicate duplicate name: -v",
		"conflict  name consumed as argument before: '-g'",
		"conflict  name consumed as argument before: '-v'",
		"hole      unparsed argument 'stray' before parsed '-v'",
		"error     other",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("Diagnostics() mismatch (-want +got):\n%s", diff)
	}
}

func TestColor(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)
	p.Summary(1, 2)
	if !strings.Contains(buf.String(), "\x1b[31mFAIL\x1b[0m") {
		t.Fatalf("Summary() = %q, want red FAIL", buf.String())
	}

	buf.Reset()
	NewPrinter(&buf, false).FileError("x.toml", errors.New("boom"))
	if got := buf.String(); got != "FAIL x.toml\n    boom\n" {
		t.Fatalf("FileError() = %q", got)
	}

	buf.Reset()
	NewPrinter(&buf, false).Summary(1, 2)
	if got := buf.String(); got != "FAIL 2 failed, 1 passed\n" {
		t.Fatalf("Summary() = %q", got)
	}
}

func TestOptions(t *testing.T) {
	o := popts.New([]string{"p", "-i", "in", "rest"})
	o.String([]string{"-i", "--infile"}, "--", "")
	o.Flag([]string{"-v"}, "")

	var buf bytes.Buffer
	NewPrinter(&buf, false).Options(o)
	want := strings.Join([]string{
		`* -i, --infile  string   ["in" "--"]`,
		`  -v            bool     ["false"]`,
		`tail: ["rest"]`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("Options() mismatch (-want +got):\n%s", diff)
	}
}

func TestResult(t *testing.T) {
	f := &schema.File{
		Program: "p",
		Options: []schema.Option{{ID: "n", Names: []string{"-n"}, Type: "int", Default: "1"}},
	}
	yes := true

	var buf bytes.Buffer
	pr := NewPrinter(&buf, false)
	pr.Result("a.toml", f.Run(schema.Case{Name: "ok", Line: "-n 2"}, nil))
	pr.Result("a.toml", f.Run(schema.Case{Name: "bad", Line: "-n 2", Errors: &yes}, nil))
	pr.Result("a.toml", f.Run(schema.Case{Name: "quote", Line: `-n "2`}, nil))

	got := strings.Split(buf.String(), "\n")
	want := []string{
		"PASS a.toml: ok",
		"FAIL a.toml: bad",
		"    errors: got false, want true",
		"FAIL a.toml: quote",
	}
	if diff := cmp.Diff(want, got[:4]); diff != "" {
		t.Fatalf("Result() mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(got[4], `    case "quote": splitting line:`) {
		t.Fatalf("Result() error line = %q", got[4])
	}
}
