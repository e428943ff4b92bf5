// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "github.com/shayne/yargs"

func buildHelpConfig() yargs.HelpConfig {
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "poptscheck",
			Description: "Check option schema files and match command lines against them.",
			Examples: []string{
				"poptscheck check",
				"poptscheck check testdata/*.toml --quiet",
				"poptscheck parse copyfile.toml -- -i in.txt -v rest",
				"poptscheck convert copyfile.toml --to yaml",
			},
		},
		SubCommands: map[string]yargs.SubCommandInfo{
			"check": {
				Name:        "check",
				Description: "Run every case in the given schema files (default: schemas from poptscheck.toml)",
				Usage:       "[FILE...] [--jobs N] [--quiet]",
				Examples:    []string{"poptscheck check copyfile.toml dupes.yaml"},
			},
			"describe": {
				Name:        "describe",
				Description: "Print the usage text a schema produces",
				Usage:       "FILE",
				Aliases:     []string{"usage"},
			},
			"parse": {
				Name:        "parse",
				Description: "Match a command line against a schema and print values and diagnostics",
				Usage:       "FILE [--case NAME] [-- TOKENS...]",
				Examples: []string{
					"poptscheck parse copyfile.toml -- -i in.txt rest",
					"poptscheck parse copyfile.toml --case hole",
				},
			},
			"convert": {
				Name:        "convert",
				Description: "Rewrite a schema file in another format",
				Usage:       "FILE [--to toml|yaml|hcl] [--out PATH]",
				Examples: []string{
					"poptscheck convert copyfile.toml --to hcl",
					"poptscheck convert copyfile.toml --out copyfile.yaml.zst",
				},
			},
		},
	}
}
