// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"testing"
)

func TestRun(t *testing.T) {
	tests := []struct {
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{[]string{"complexnum"}, 0, "(0,0)", ""},
		{[]string{"complexnum", "-c", "(1.5,-2)"}, 0, "(1.5,-2)", ""},
		{[]string{"complexnum", "-c", "3i"}, 0, "(0,3)", ""},
		{[]string{"complexnum", "-c", "x"}, 2, "", "error matches for option '-c': 'x'\n"},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		if code := run(tt.args, &stdout, &stderr); code != tt.wantCode {
			t.Errorf("run(%q) = %d, want %d", tt.args, code, tt.wantCode)
		}
		if stdout.String() != tt.wantStdout || stderr.String() != tt.wantStderr {
			t.Errorf("run(%q) wrote %q, %q; want %q, %q", tt.args, stdout.String(), stderr.String(), tt.wantStdout, tt.wantStderr)
		}
	}
}
